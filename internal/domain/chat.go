package domain

import (
	"context"
	"io"
	"time"
)

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

type ChatMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type ChatRequest struct {
	Message  string        `json:"message"`
	History  []ChatMessage `json:"history,omitempty"`
	ImageURL string        `json:"imageUrl,omitempty"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}

// Upload is a file headed for /api/doctor-ai/upload.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

type UploadResult struct {
	URL string `json:"url"`
}

// ChatSender is the one call a chat session needs from its backend.
type ChatSender interface {
	Send(ctx context.Context, req ChatRequest) (*ChatReply, error)
}

// ChatbotRepository is the general shop/clinic assistant (/api/chatbot).
type ChatbotRepository interface {
	ChatSender
}

// DoctorAIRepository is the veterinary assistant (/api/doctor-ai).
type DoctorAIRepository interface {
	ChatSender
	History(ctx context.Context) ([]ChatMessage, error)
	Upload(ctx context.Context, file Upload) (*UploadResult, error)
}

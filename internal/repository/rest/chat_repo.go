package restrepo

import (
	"context"

	"petclinic-client/internal/domain"
)

type chatbotRepository struct {
	client *Client
}

func NewChatbotRepository(client *Client) domain.ChatbotRepository {
	return &chatbotRepository{client: client}
}

func (r *chatbotRepository) Send(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	var reply domain.ChatReply
	if err := r.client.post(ctx, "/api/chatbot", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

type doctorAIRepository struct {
	client *Client
}

func NewDoctorAIRepository(client *Client) domain.DoctorAIRepository {
	return &doctorAIRepository{client: client}
}

func (r *doctorAIRepository) Send(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	var reply domain.ChatReply
	if err := r.client.post(ctx, "/api/doctor-ai/chat", req, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *doctorAIRepository) History(ctx context.Context) ([]domain.ChatMessage, error) {
	var msgs []domain.ChatMessage
	if err := r.client.get(ctx, "/api/doctor-ai/chat", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *doctorAIRepository) Upload(ctx context.Context, file domain.Upload) (*domain.UploadResult, error) {
	var res domain.UploadResult
	if err := r.client.upload(ctx, "/api/doctor-ai/upload", "image", file, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

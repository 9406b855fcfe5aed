package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sync"

	"petclinic-client/config"
	"petclinic-client/internal/domain"
	"petclinic-client/pkg/logger"
	"petclinic-client/pkg/utils"
)

// DefaultHistoryLimit caps how many past messages go out with each request.
const DefaultHistoryLimit = 20

// ChatSession is one open chat widget. It keeps at most one request in
// flight: a new Send cancels the previous one, and Close cancels whatever
// is outstanding. Only the latest request may record its reply.
type ChatSession struct {
	sender       domain.ChatSender
	historyLimit int

	mu      sync.Mutex
	history []domain.ChatMessage
	cancel  context.CancelCauseFunc
	seq     uint64
	closed  bool
}

func NewChatSession(sender domain.ChatSender, history []domain.ChatMessage) *ChatSession {
	return &ChatSession{
		sender:       sender,
		historyLimit: DefaultHistoryLimit,
		history:      append([]domain.ChatMessage(nil), history...),
	}
}

// Send posts message and waits for the reply. If another Send starts
// before this one finishes, this call returns domain.ErrSuperseded; if the
// session is closed meanwhile, domain.ErrSessionClosed. In both cases the
// exchange is not added to the history.
func (s *ChatSession) Send(ctx context.Context, message, imageURL string) (*domain.ChatMessage, error) {
	return s.Start(ctx, message, imageURL)()
}

// Start registers message as the session's current request and returns a
// func that performs it. Registration order, not call order of the
// returned funcs, decides which request wins.
func (s *ChatSession) Start(ctx context.Context, message, imageURL string) func() (*domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() (*domain.ChatMessage, error) { return nil, domain.ErrSessionClosed }
	}
	if s.cancel != nil {
		s.cancel(domain.ErrSuperseded)
	}
	reqCtx, cancel := context.WithCancelCause(ctx)
	s.cancel = cancel
	s.seq++
	mine := s.seq
	req := domain.ChatRequest{
		Message:  message,
		History:  s.recent(),
		ImageURL: imageURL,
	}

	return func() (*domain.ChatMessage, error) {
		reply, err := s.sender.Send(reqCtx, req)
		return s.finish(reqCtx, cancel, mine, req, reply, err)
	}
}

func (s *ChatSession) finish(reqCtx context.Context, cancel context.CancelCauseFunc, mine uint64, req domain.ChatRequest, reply *domain.ChatReply, err error) (*domain.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cause := context.Cause(reqCtx); errors.Is(cause, domain.ErrSuperseded) || errors.Is(cause, domain.ErrSessionClosed) {
		return nil, cause
	}
	if mine != s.seq {
		cancel(domain.ErrSuperseded)
		return nil, domain.ErrSuperseded
	}
	s.cancel = nil
	cancel(nil)

	if err != nil {
		return nil, err
	}

	answer := domain.ChatMessage{Role: domain.ChatRoleAssistant, Content: reply.Reply}
	s.history = append(s.history,
		domain.ChatMessage{Role: domain.ChatRoleUser, Content: req.Message, ImageURL: req.ImageURL},
		answer,
	)
	return &answer, nil
}

// recent must be called with mu held.
func (s *ChatSession) recent() []domain.ChatMessage {
	h := s.history
	if s.historyLimit > 0 && len(h) > s.historyLimit {
		h = h[len(h)-s.historyLimit:]
	}
	return append([]domain.ChatMessage(nil), h...)
}

// History returns a copy of the completed exchanges.
func (s *ChatSession) History() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ChatMessage(nil), s.history...)
}

// Close aborts the in-flight request, if any. Further sends fail.
func (s *ChatSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel(domain.ErrSessionClosed)
		s.cancel = nil
	}
}

type ChatUsecase struct {
	chatbot  domain.ChatbotRepository
	doctorAI domain.DoctorAIRepository
	cfg      *config.Config
}

func NewChatUsecase(chatbot domain.ChatbotRepository, doctorAI domain.DoctorAIRepository, cfg *config.Config) *ChatUsecase {
	return &ChatUsecase{
		chatbot:  chatbot,
		doctorAI: doctorAI,
		cfg:      cfg,
	}
}

// NewChatbotSession opens the shop assistant with an empty history.
func (u *ChatUsecase) NewChatbotSession() *ChatSession {
	return NewChatSession(u.chatbot, nil)
}

// NewDoctorAISession opens the vet assistant seeded with the server-side
// conversation so far.
func (u *ChatUsecase) NewDoctorAISession(ctx context.Context) (*ChatSession, error) {
	history, err := u.DoctorAIHistory(ctx)
	if err != nil {
		return nil, err
	}
	return NewChatSession(u.doctorAI, history), nil
}

func (u *ChatUsecase) DoctorAIHistory(ctx context.Context) ([]domain.ChatMessage, error) {
	return u.doctorAI.History(ctx)
}

// UploadImage sends a photo to the vet assistant. Images are downscaled and
// re-encoded before upload; other files go up unchanged.
func (u *ChatUsecase) UploadImage(ctx context.Context, filename string, r io.Reader) (*domain.UploadResult, error) {
	maxBytes := u.cfg.MaxUploadSizeMB << 20
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %s is larger than %dMB", domain.ErrUploadTooLarge, filepath.Base(filename), u.cfg.MaxUploadSizeMB)
	}

	upload := domain.Upload{
		Filename:    filepath.Base(filename),
		ContentType: http.DetectContentType(data),
		Body:        bytes.NewReader(data),
	}

	if utils.IsImage(upload.ContentType) {
		processed, contentType, name, err := utils.ProcessImage(bytes.NewReader(data), upload.Filename, u.cfg.UploadMaxWidth)
		if err != nil {
			logger.Warn().Err(err).Str("file", upload.Filename).Msg("Image processing failed, uploading original")
		} else {
			upload = domain.Upload{Filename: name, ContentType: contentType, Body: bytes.NewReader(processed)}
		}
	}

	return u.doctorAI.Upload(ctx, upload)
}

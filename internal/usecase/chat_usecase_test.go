package usecase

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petclinic-client/internal/domain"
)

type result struct {
	msg *domain.ChatMessage
	err error
}

func sendAsync(s *ChatSession, text string) <-chan result {
	out := make(chan result, 1)
	go func() {
		msg, err := s.Send(context.Background(), text, "")
		out <- result{msg, err}
	}()
	return out
}

func waitStarted(t *testing.T, b *blockingSender) domain.ChatRequest {
	t.Helper()
	select {
	case req := <-b.started:
		return req
	case <-time.After(2 * time.Second):
		t.Fatal("request never reached the sender")
		return domain.ChatRequest{}
	}
}

func TestChatSession_RecordsExchange(t *testing.T) {
	s := NewChatSession(echoSender{}, nil)

	reply, err := s.Send(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, "re: hello", reply.Content)

	_, err = s.Send(context.Background(), "again", "")
	require.NoError(t, err)

	h := s.History()
	require.Len(t, h, 4)
	assert.Equal(t, domain.ChatRoleUser, h[0].Role)
	assert.Equal(t, domain.ChatRoleAssistant, h[3].Role)
	assert.Equal(t, "re: again", h[3].Content)
}

func TestChatSession_NewSendSupersedesOld(t *testing.T) {
	b := newBlockingSender()
	s := NewChatSession(b, nil)

	first := sendAsync(s, "first")
	waitStarted(t, b)

	second := sendAsync(s, "second")
	waitStarted(t, b)

	r1 := <-first
	assert.ErrorIs(t, r1.err, domain.ErrSuperseded)

	b.answer(1, "answer to second")
	r2 := <-second
	require.NoError(t, r2.err)
	assert.Equal(t, "answer to second", r2.msg.Content)

	h := s.History()
	require.Len(t, h, 2)
	assert.Equal(t, "second", h[0].Content)
}

func TestChatSession_LateReplyOfSupersededRequestIsDropped(t *testing.T) {
	b := newBlockingSender()
	s := NewChatSession(b, nil)

	first := sendAsync(s, "first")
	waitStarted(t, b)
	second := sendAsync(s, "second")
	waitStarted(t, b)

	// the first reply arrives anyway
	b.answer(0, "stale")
	assert.ErrorIs(t, (<-first).err, domain.ErrSuperseded)

	b.answer(1, "fresh")
	require.NoError(t, (<-second).err)

	for _, m := range s.History() {
		assert.NotEqual(t, "stale", m.Content)
	}
}

func TestChatSession_CloseAbortsInFlight(t *testing.T) {
	b := newBlockingSender()
	s := NewChatSession(b, nil)

	pending := sendAsync(s, "are you there")
	waitStarted(t, b)

	s.Close()
	assert.ErrorIs(t, (<-pending).err, domain.ErrSessionClosed)
	assert.Empty(t, s.History())

	_, err := s.Send(context.Background(), "after close", "")
	assert.ErrorIs(t, err, domain.ErrSessionClosed)

	s.Close()
}

func TestChatSession_SenderErrorIsReturned(t *testing.T) {
	boom := errors.New("model overloaded")
	s := NewChatSession(senderFunc(func(context.Context, domain.ChatRequest) (*domain.ChatReply, error) {
		return nil, boom
	}), nil)

	_, err := s.Send(context.Background(), "hi", "")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.History())
}

func TestChatSession_HistoryIsCapped(t *testing.T) {
	var seen []domain.ChatRequest
	s := NewChatSession(senderFunc(func(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
		seen = append(seen, req)
		return &domain.ChatReply{Reply: "ok"}, nil
	}), nil)
	s.historyLimit = 4

	for i := 0; i < 5; i++ {
		_, err := s.Send(context.Background(), "m", "")
		require.NoError(t, err)
	}
	assert.Len(t, seen[4].History, 4)
	assert.Len(t, s.History(), 10)
}

type senderFunc func(context.Context, domain.ChatRequest) (*domain.ChatReply, error)

func (f senderFunc) Send(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	return f(ctx, req)
}

func TestChatUsecase_DoctorAISessionSeedsHistory(t *testing.T) {
	ai := &fakeDoctorAI{history: []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "my cat sneezes"}}}
	uc := NewChatUsecase(echoSender{}, ai, testConfig())

	s, err := uc.NewDoctorAISession(context.Background())
	require.NoError(t, err)
	assert.Len(t, s.History(), 1)

	bot := uc.NewChatbotSession()
	assert.Empty(t, bot.History())
}

func TestChatUsecase_UploadImageReencodes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	for x := 0; x < 200; x++ {
		img.Set(x, 50, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	ai := &fakeDoctorAI{}
	uc := NewChatUsecase(echoSender{}, ai, testConfig())

	res, err := uc.UploadImage(context.Background(), "/tmp/photos/rash.png", &buf)
	require.NoError(t, err)
	require.Len(t, ai.uploaded, 1)

	up := ai.uploaded[0]
	assert.NotEqual(t, "rash.png", up.Filename)
	assert.True(t, strings.HasPrefix(up.Filename, "rash."))
	assert.Contains(t, []string{"image/webp", "image/jpeg"}, up.ContentType)
	assert.Equal(t, "https://cdn.test/"+up.Filename, res.URL)

	decoded, _, err := image.Decode(bytes.NewReader(ai.bodies[0]))
	if err == nil {
		assert.Equal(t, 64, decoded.Bounds().Dx())
	}
}

func TestChatUsecase_UploadNonImagePassesThrough(t *testing.T) {
	ai := &fakeDoctorAI{}
	uc := NewChatUsecase(echoSender{}, ai, testConfig())

	_, err := uc.UploadImage(context.Background(), "notes.txt", strings.NewReader("vomited twice"))
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", ai.uploaded[0].Filename)
	assert.Equal(t, "vomited twice", string(ai.bodies[0]))
}

func TestChatUsecase_UploadTooLarge(t *testing.T) {
	ai := &fakeDoctorAI{}
	uc := NewChatUsecase(echoSender{}, ai, testConfig())

	big := bytes.NewReader(make([]byte, (1<<20)+1))
	_, err := uc.UploadImage(context.Background(), "huge.bin", big)
	assert.ErrorIs(t, err, domain.ErrUploadTooLarge)
	assert.Empty(t, ai.uploaded)
}

func TestChatSession_RegistrationOrderDecides(t *testing.T) {
	s := NewChatSession(echoSender{}, nil)

	first := s.Start(context.Background(), "first", "")
	second := s.Start(context.Background(), "second", "")

	reply, err := second()
	require.NoError(t, err)
	assert.Equal(t, "re: second", reply.Content)

	_, err = first()
	assert.ErrorIs(t, err, domain.ErrSuperseded)

	require.Len(t, s.History(), 2)
	assert.Equal(t, "second", s.History()[0].Content)
}

func TestChatSession_StartAfterClose(t *testing.T) {
	s := NewChatSession(echoSender{}, nil)
	s.Close()

	_, err := s.Start(context.Background(), "late", "")()
	assert.ErrorIs(t, err, domain.ErrSessionClosed)
}

package usecase

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"petclinic-client/config"
	"petclinic-client/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		CacheDirectoryTTL: time.Minute,
		CacheProductTTL:   time.Minute,
		MaxUploadSizeMB:   1,
		UploadMaxWidth:    64,
	}
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test"))
	require.NoError(t, err)
	return tok
}

type fakeAuthRepo struct {
	result    *domain.AuthResult
	err       error
	requested []domain.RegisterRequest
}

func (f *fakeAuthRepo) RequestRegistration(_ context.Context, req domain.RegisterRequest) error {
	f.requested = append(f.requested, req)
	return f.err
}

func (f *fakeAuthRepo) VerifyRegistration(context.Context, domain.VerifyRegisterRequest) (*domain.AuthResult, error) {
	return f.result, f.err
}

func (f *fakeAuthRepo) Login(context.Context, domain.LoginRequest) (*domain.AuthResult, error) {
	return f.result, f.err
}

func (f *fakeAuthRepo) Refresh(context.Context, string) (*domain.AuthTokens, error) {
	return nil, f.err
}

type fakeDirectory struct {
	mu          sync.Mutex
	clinicCalls int
	doctorCalls int
	listCalls   int
	productHits int
	doctors     map[string]domain.Doctor
	products    map[string]domain.Product
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{doctors: map[string]domain.Doctor{}, products: map[string]domain.Product{}}
}

func (f *fakeDirectory) List(context.Context) ([]domain.Clinic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clinicCalls++
	return []domain.Clinic{{ID: "c1", Name: "Downtown"}}, nil
}

func (f *fakeDirectory) GetByID(_ context.Context, id string) (*domain.Clinic, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clinicCalls++
	return &domain.Clinic{ID: id}, nil
}

// doctorRepo and productRepo adapt fakeDirectory to the other interfaces.
type doctorRepo struct{ *fakeDirectory }

func (d doctorRepo) List(_ context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listCalls++
	var out []domain.Doctor
	for _, doc := range d.doctors {
		if filter.ClinicID == "" || doc.ClinicID == filter.ClinicID {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (d doctorRepo) GetByID(_ context.Context, id string) (*domain.Doctor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.doctorCalls++
	doc, ok := d.doctors[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

func (d doctorRepo) Create(_ context.Context, req domain.CreateDoctorRequest) (*domain.Doctor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	doc := domain.Doctor{ID: "d" + req.Name, Name: req.Name, ClinicID: req.ClinicID}
	d.doctors[doc.ID] = doc
	return &doc, nil
}

type productRepo struct{ *fakeDirectory }

func (p productRepo) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, domain.Pagination, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.productHits++
	var out []domain.Product
	for _, pr := range p.products {
		out = append(out, pr)
	}
	return out, domain.Pagination{Page: filter.Page, Limit: filter.Limit, TotalItems: int64(len(out))}, nil
}

func (p productRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.productHits++
	pr, ok := p.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &pr, nil
}

type fakeAppointments struct {
	booked   []domain.Appointment
	created  []domain.BookAppointmentRequest
	updated  map[string]domain.UpdateAppointmentRequest
	statuses map[string]string
	filters  []domain.AppointmentFilter
}

func newFakeAppointments(booked ...domain.Appointment) *fakeAppointments {
	return &fakeAppointments{
		booked:   booked,
		updated:  map[string]domain.UpdateAppointmentRequest{},
		statuses: map[string]string{},
	}
}

func (f *fakeAppointments) List(_ context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	f.filters = append(f.filters, filter)
	return append([]domain.Appointment(nil), f.booked...), nil
}

func (f *fakeAppointments) Create(_ context.Context, req domain.BookAppointmentRequest) (*domain.Appointment, error) {
	f.created = append(f.created, req)
	return &domain.Appointment{ID: "a1", StartsAt: req.StartsAt, Status: domain.AppointmentStatusPending}, nil
}

func (f *fakeAppointments) Update(_ context.Context, id string, req domain.UpdateAppointmentRequest) (*domain.Appointment, error) {
	f.updated[id] = req
	return &domain.Appointment{ID: id}, nil
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, id, status string) (*domain.Appointment, error) {
	f.statuses[id] = status
	return &domain.Appointment{ID: id, Status: status}, nil
}

// blockingSender answers each request once release is closed for it, or
// fails with the context error when the request is cancelled first.
type blockingSender struct {
	mu       sync.Mutex
	started  chan domain.ChatRequest
	releases []chan string
}

func newBlockingSender() *blockingSender {
	return &blockingSender{started: make(chan domain.ChatRequest, 16)}
}

func (b *blockingSender) Send(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	release := make(chan string, 1)
	b.mu.Lock()
	b.releases = append(b.releases, release)
	b.mu.Unlock()
	b.started <- req

	select {
	case reply := <-release:
		return &domain.ChatReply{Reply: reply}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *blockingSender) answer(i int, reply string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.releases[i] <- reply
}

type echoSender struct{}

func (echoSender) Send(_ context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	return &domain.ChatReply{Reply: "re: " + req.Message}, nil
}

type fakeDoctorAI struct {
	echoSender
	history  []domain.ChatMessage
	uploaded []domain.Upload
	bodies   [][]byte
}

func (f *fakeDoctorAI) History(context.Context) ([]domain.ChatMessage, error) {
	return f.history, nil
}

func (f *fakeDoctorAI) Upload(_ context.Context, file domain.Upload) (*domain.UploadResult, error) {
	buf, err := io.ReadAll(file.Body)
	if err != nil {
		return nil, err
	}
	f.uploaded = append(f.uploaded, file)
	f.bodies = append(f.bodies, buf)
	return &domain.UploadResult{URL: "https://cdn.test/" + file.Filename}, nil
}

type fakeUsers struct {
	banned   map[string]bool
	created  []domain.CreateUserRequest
	listArgs []domain.UserFilter
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{banned: map[string]bool{}}
}

func (f *fakeUsers) List(_ context.Context, filter domain.UserFilter) ([]domain.User, domain.Pagination, error) {
	f.listArgs = append(f.listArgs, filter)
	return []domain.User{{ID: "u1"}}, domain.Pagination{Page: 1}, nil
}

func (f *fakeUsers) Create(_ context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	f.created = append(f.created, req)
	return &domain.User{ID: "u2", Email: req.Email, Role: req.Role}, nil
}

func (f *fakeUsers) Ban(_ context.Context, id string) error {
	f.banned[id] = true
	return nil
}

func (f *fakeUsers) Unban(_ context.Context, id string) error {
	delete(f.banned, id)
	return nil
}

type staticGuard struct {
	err error
}

func (g staticGuard) RequireRole(...string) (*SessionInfo, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &SessionInfo{Claims: domain.Claims{Role: domain.RoleAdmin}}, nil
}

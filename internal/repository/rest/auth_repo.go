package restrepo

import (
	"context"

	"petclinic-client/internal/domain"
)

// authRepository runs on the unauthenticated client: a 401 from login
// means bad credentials, not an expired session.
type authRepository struct {
	client *Client
}

func NewAuthRepository(client *Client) domain.AuthRepository {
	return &authRepository{client: client}
}

func (r *authRepository) RequestRegistration(ctx context.Context, req domain.RegisterRequest) error {
	return r.client.post(ctx, "/api/auth/register-request", req, nil)
}

func (r *authRepository) VerifyRegistration(ctx context.Context, req domain.VerifyRegisterRequest) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := r.client.post(ctx, "/api/auth/verify-register", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *authRepository) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := r.client.post(ctx, "/api/auth/login", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *authRepository) Refresh(ctx context.Context, refreshToken string) (*domain.AuthTokens, error) {
	var res domain.AuthTokens
	body := map[string]string{"refreshToken": refreshToken}
	if err := r.client.post(ctx, "/api/auth/refresh-token", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

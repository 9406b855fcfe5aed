package usecase

import (
	"context"
	"fmt"
	"time"

	"petclinic-client/internal/domain"
	"petclinic-client/pkg/logger"
	"petclinic-client/pkg/utils"
)

type AuthUsecase struct {
	repo    domain.AuthRepository
	session domain.SessionStore
	now     func() time.Time
}

func NewAuthUsecase(repo domain.AuthRepository, session domain.SessionStore) *AuthUsecase {
	return &AuthUsecase{
		repo:    repo,
		session: session,
		now:     time.Now,
	}
}

// SessionInfo describes the stored session as far as the client can tell
// from its own token. The API remains the authority.
type SessionInfo struct {
	domain.Claims
	ExpiresAt time.Time
	Expired   bool
}

// RequestRegistration asks the API to email a one-time code.
func (u *AuthUsecase) RequestRegistration(ctx context.Context, req domain.RegisterRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return err
	}
	return u.repo.RequestRegistration(ctx, req)
}

// VerifyRegistration completes sign-up with the emailed code and logs in.
func (u *AuthUsecase) VerifyRegistration(ctx context.Context, req domain.VerifyRegisterRequest) (*domain.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	res, err := u.repo.VerifyRegistration(ctx, req)
	if err != nil {
		return nil, err
	}
	return u.persist(res)
}

func (u *AuthUsecase) Login(ctx context.Context, req domain.LoginRequest) (*domain.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	res, err := u.repo.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	return u.persist(res)
}

func (u *AuthUsecase) persist(res *domain.AuthResult) (*domain.User, error) {
	if res == nil || res.AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token in response", domain.ErrUnauthorized)
	}
	if err := u.session.Save(res.AuthTokens); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	user := res.User
	if user == nil {
		// Older endpoints return tokens only.
		claims, err := utils.ExtractClaims(res.AccessToken)
		if err != nil {
			return nil, err
		}
		user = &domain.User{ID: claims.UserID, Email: claims.Email, Role: claims.Role}
	}
	logger.Info().Str("user_id", user.ID).Msg("Logged in")
	return user, nil
}

// Logout drops the local session. There is no server-side logout endpoint.
func (u *AuthUsecase) Logout() error {
	return u.session.Clear()
}

// CurrentUser reads the identity out of the stored access token.
func (u *AuthUsecase) CurrentUser() (*SessionInfo, error) {
	tokens, err := u.session.Load()
	if err != nil {
		return nil, err
	}
	claims, err := utils.ExtractClaims(tokens.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionExpired, err)
	}

	info := &SessionInfo{Claims: *claims}
	if exp, ok, _ := utils.TokenExpiry(tokens.AccessToken); ok {
		info.ExpiresAt = exp
		info.Expired = !u.now().Before(exp)
	}
	return info, nil
}

// RequireRole fails with ErrForbidden unless the stored session carries
// one of roles. It saves a round trip for commands the API would reject.
func (u *AuthUsecase) RequireRole(roles ...string) (*SessionInfo, error) {
	info, err := u.CurrentUser()
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if info.Role == r {
			return info, nil
		}
	}
	return nil, fmt.Errorf("%w: requires role %v", domain.ErrForbidden, roles)
}

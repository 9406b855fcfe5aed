package domain

import (
	"context"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Avatar    string    `json:"avatar,omitempty"`
	Banned    bool      `json:"isBanned"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// AuthTokens is what the auth endpoints hand back and what the session
// store persists between runs.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResult is the body of a successful login or registration verification.
type AuthResult struct {
	AuthTokens
	User *User `json:"user"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Password string `json:"password" validate:"required,min=8"`
}

type VerifyRegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=customer doctor admin"`
}

type UserFilter struct {
	Page   int
	Limit  int
	Search string
	Role   string
}

// AuthRepository talks to /api/auth.
type AuthRepository interface {
	RequestRegistration(ctx context.Context, req RegisterRequest) error
	VerifyRegistration(ctx context.Context, req VerifyRegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)
}

type UserRepository interface {
	List(ctx context.Context, filter UserFilter) ([]User, Pagination, error)
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	Ban(ctx context.Context, id string) error
	Unban(ctx context.Context, id string) error
}

// SessionStore persists tokens between runs.
type SessionStore interface {
	Load() (*AuthTokens, error)
	Save(tokens AuthTokens) error
	Clear() error
}

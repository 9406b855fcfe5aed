package usecase

import (
	"context"
	"fmt"

	"petclinic-client/internal/domain"
	"petclinic-client/pkg/logger"
	"petclinic-client/pkg/utils"
)

// RoleGuard checks the local session before admin calls.
type RoleGuard interface {
	RequireRole(roles ...string) (*SessionInfo, error)
}

type AdminUsecase struct {
	users domain.UserRepository
	guard RoleGuard
}

func NewAdminUsecase(users domain.UserRepository, guard RoleGuard) *AdminUsecase {
	return &AdminUsecase{users: users, guard: guard}
}

func (u *AdminUsecase) ListUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, domain.Pagination, error) {
	if err := u.requireAdmin(); err != nil {
		return nil, domain.Pagination{}, err
	}
	return u.users.List(ctx, filter)
}

func (u *AdminUsecase) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.User, error) {
	if err := u.requireAdmin(); err != nil {
		return nil, err
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	return u.users.Create(ctx, req)
}

func (u *AdminUsecase) Ban(ctx context.Context, userID string) error {
	if err := u.requireAdmin(); err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if err := u.users.Ban(ctx, userID); err != nil {
		return err
	}
	logger.Info().Str("target_user", userID).Msg("User banned")
	return nil
}

func (u *AdminUsecase) Unban(ctx context.Context, userID string) error {
	if err := u.requireAdmin(); err != nil {
		return err
	}
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}
	if err := u.users.Unban(ctx, userID); err != nil {
		return err
	}
	logger.Info().Str("target_user", userID).Msg("User unbanned")
	return nil
}

func (u *AdminUsecase) requireAdmin() error {
	if u.guard == nil {
		return nil
	}
	_, err := u.guard.RequireRole(domain.RoleAdmin)
	return err
}

package usecase

import (
	"context"

	"petclinic-client/internal/domain"
	"petclinic-client/pkg/utils"
)

type PetUsecase struct {
	repo domain.PetRepository
}

func NewPetUsecase(repo domain.PetRepository) *PetUsecase {
	return &PetUsecase{repo: repo}
}

func (u *PetUsecase) List(ctx context.Context) ([]domain.Pet, error) {
	return u.repo.List(ctx)
}

func (u *PetUsecase) Get(ctx context.Context, id string) (*domain.Pet, error) {
	return u.repo.GetByID(ctx, id)
}

func (u *PetUsecase) Create(ctx context.Context, req domain.CreatePetRequest) (*domain.Pet, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	return u.repo.Create(ctx, req)
}

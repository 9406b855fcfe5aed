package restrepo

import (
	"context"

	"petclinic-client/internal/domain"
)

type petRepository struct {
	client *Client
}

func NewPetRepository(client *Client) domain.PetRepository {
	return &petRepository{client: client}
}

func (r *petRepository) List(ctx context.Context) ([]domain.Pet, error) {
	var pets []domain.Pet
	if err := r.client.get(ctx, "/api/pets", nil, &pets); err != nil {
		return nil, err
	}
	return pets, nil
}

func (r *petRepository) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	var pet domain.Pet
	if err := r.client.get(ctx, "/api/pets/"+escape(id), nil, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *petRepository) Create(ctx context.Context, req domain.CreatePetRequest) (*domain.Pet, error) {
	var pet domain.Pet
	if err := r.client.post(ctx, "/api/pets", req, &pet); err != nil {
		return nil, err
	}
	return &pet, nil
}

package domain

import (
	"context"
	"time"
)

type Pet struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	WeightKg  float64    `json:"weight,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
}

type CreatePetRequest struct {
	Name      string     `json:"name" validate:"required,max=60"`
	Species   string     `json:"species" validate:"required,oneof=dog cat bird rabbit hamster fish reptile other"`
	Breed     string     `json:"breed,omitempty" validate:"max=60"`
	Gender    string     `json:"gender,omitempty" validate:"omitempty,oneof=male female unknown"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	WeightKg  float64    `json:"weight,omitempty" validate:"gte=0,lte=500"`
}

type PetRepository interface {
	List(ctx context.Context) ([]Pet, error)
	GetByID(ctx context.Context, id string) (*Pet, error)
	Create(ctx context.Context, req CreatePetRequest) (*Pet, error)
}

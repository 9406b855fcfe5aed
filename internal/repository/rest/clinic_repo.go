package restrepo

import (
	"context"
	"net/url"

	"petclinic-client/internal/domain"
)

type clinicRepository struct {
	client *Client
}

func NewClinicRepository(client *Client) domain.ClinicRepository {
	return &clinicRepository{client: client}
}

func (r *clinicRepository) List(ctx context.Context) ([]domain.Clinic, error) {
	var clinics []domain.Clinic
	if err := r.client.get(ctx, "/api/clinics", nil, &clinics); err != nil {
		return nil, err
	}
	return clinics, nil
}

func (r *clinicRepository) GetByID(ctx context.Context, id string) (*domain.Clinic, error) {
	var clinic domain.Clinic
	if err := r.client.get(ctx, "/api/clinics/"+escape(id), nil, &clinic); err != nil {
		return nil, err
	}
	return &clinic, nil
}

type doctorRepository struct {
	client *Client
}

func NewDoctorRepository(client *Client) domain.DoctorRepository {
	return &doctorRepository{client: client}
}

func (r *doctorRepository) List(ctx context.Context, filter domain.DoctorFilter) ([]domain.Doctor, error) {
	q := url.Values{}
	if filter.ClinicID != "" {
		q.Set("clinicId", filter.ClinicID)
	}
	if filter.Specialty != "" {
		q.Set("specialty", filter.Specialty)
	}

	var doctors []domain.Doctor
	if err := r.client.get(ctx, "/api/doctors", q, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) GetByID(ctx context.Context, id string) (*domain.Doctor, error) {
	var doctor domain.Doctor
	if err := r.client.get(ctx, "/api/doctors/"+escape(id), nil, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) Create(ctx context.Context, req domain.CreateDoctorRequest) (*domain.Doctor, error) {
	var doctor domain.Doctor
	if err := r.client.post(ctx, "/api/doctors", req, &doctor); err != nil {
		return nil, err
	}
	return &doctor, nil
}

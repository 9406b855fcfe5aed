package restrepo

import (
	"context"
	"net/url"

	"petclinic-client/internal/domain"
)

type appointmentRepository struct {
	client *Client
}

func NewAppointmentRepository(client *Client) domain.AppointmentRepository {
	return &appointmentRepository{client: client}
}

func (r *appointmentRepository) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	q := url.Values{}
	if filter.DoctorID != "" {
		q.Set("doctorId", filter.DoctorID)
	}
	if filter.ClinicID != "" {
		q.Set("clinicId", filter.ClinicID)
	}
	if filter.PetID != "" {
		q.Set("petId", filter.PetID)
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if !filter.Date.IsZero() {
		q.Set("date", filter.Date.Format("2006-01-02"))
	}

	var appts []domain.Appointment
	if err := r.client.get(ctx, "/api/appointments", q, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

func (r *appointmentRepository) Create(ctx context.Context, req domain.BookAppointmentRequest) (*domain.Appointment, error) {
	var appt domain.Appointment
	if err := r.client.post(ctx, "/api/appointments", req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, id string, req domain.UpdateAppointmentRequest) (*domain.Appointment, error) {
	var appt domain.Appointment
	if err := r.client.patch(ctx, "/api/appointments/"+escape(id), req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id, status string) (*domain.Appointment, error) {
	var appt domain.Appointment
	body := map[string]string{"status": status}
	if err := r.client.patch(ctx, "/api/appointments/"+escape(id)+"/status", body, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

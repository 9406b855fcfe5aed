package domain

import (
	"context"
	"time"
)

type Appointment struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId,omitempty"`
	PetID           string    `json:"petId"`
	DoctorID        string    `json:"doctorId"`
	ClinicID        string    `json:"clinicId"`
	StartsAt        time.Time `json:"startsAt"`
	DurationMinutes int       `json:"durationMinutes,omitempty"`
	Reason          string    `json:"reason,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// EndsAt falls back to the given slot length when the API omits a duration.
func (a Appointment) EndsAt(fallback time.Duration) time.Time {
	if a.DurationMinutes > 0 {
		return a.StartsAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
	}
	return a.StartsAt.Add(fallback)
}

// Blocks reports whether the appointment still occupies its slot.
func (a Appointment) Blocks() bool {
	return a.Status != AppointmentStatusCancelled && a.Status != AppointmentStatusRejected
}

type BookAppointmentRequest struct {
	PetID    string    `json:"petId" validate:"required"`
	DoctorID string    `json:"doctorId" validate:"required"`
	ClinicID string    `json:"clinicId" validate:"required"`
	StartsAt time.Time `json:"startsAt" validate:"required"`
	Reason   string    `json:"reason,omitempty" validate:"max=500"`
}

// UpdateAppointmentRequest is a partial update; nil fields are left alone.
type UpdateAppointmentRequest struct {
	StartsAt *time.Time `json:"startsAt,omitempty"`
	DoctorID *string    `json:"doctorId,omitempty"`
	Reason   *string    `json:"reason,omitempty" validate:"omitempty,max=500"`
	Notes    *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type AppointmentFilter struct {
	DoctorID string
	ClinicID string
	PetID    string
	Status   string
	// Date limits results to one calendar day (YYYY-MM-DD) when non-zero.
	Date time.Time
}

type AppointmentRepository interface {
	List(ctx context.Context, filter AppointmentFilter) ([]Appointment, error)
	Create(ctx context.Context, req BookAppointmentRequest) (*Appointment, error)
	Update(ctx context.Context, id string, req UpdateAppointmentRequest) (*Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) (*Appointment, error)
}

package domain

import (
	"context"
	"time"
)

type Clinic struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Address      string `json:"address"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	OpeningHours string `json:"openingHours,omitempty"`
	Image        string `json:"image,omitempty"`
	Description  string `json:"description,omitempty"`
}

type Doctor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Specialty   string `json:"specialty"`
	ClinicID    string `json:"clinicId"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty"`
	Avatar      string `json:"avatar,omitempty"`
	// WorkStart and WorkEnd are wall-clock "HH:MM" in the clinic's zone.
	WorkStart   string         `json:"workStart"`
	WorkEnd     string         `json:"workEnd"`
	SlotMinutes int            `json:"slotMinutes"`
	WorkingDays []time.Weekday `json:"workingDays,omitempty"`
}

// Clone returns a copy that shares no slices with d.
func (d Doctor) Clone() Doctor {
	d.WorkingDays = append([]time.Weekday(nil), d.WorkingDays...)
	return d
}

// WorksOn reports whether the doctor sees patients on the given weekday.
// An empty WorkingDays list means every day.
func (d Doctor) WorksOn(day time.Weekday) bool {
	if len(d.WorkingDays) == 0 {
		return true
	}
	for _, wd := range d.WorkingDays {
		if wd == day {
			return true
		}
	}
	return false
}

type CreateDoctorRequest struct {
	Name        string         `json:"name" validate:"required,min=2"`
	Specialty   string         `json:"specialty" validate:"required"`
	ClinicID    string         `json:"clinicId" validate:"required"`
	Email       string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string         `json:"phone,omitempty"`
	WorkStart   string         `json:"workStart" validate:"required,datetime=15:04"`
	WorkEnd     string         `json:"workEnd" validate:"required,datetime=15:04"`
	SlotMinutes int            `json:"slotMinutes" validate:"required,min=5,max=240"`
	WorkingDays []time.Weekday `json:"workingDays,omitempty" validate:"dive,min=0,max=6"`
}

type DoctorFilter struct {
	ClinicID  string
	Specialty string
}

type ClinicRepository interface {
	List(ctx context.Context) ([]Clinic, error)
	GetByID(ctx context.Context, id string) (*Clinic, error)
}

type DoctorRepository interface {
	List(ctx context.Context, filter DoctorFilter) ([]Doctor, error)
	GetByID(ctx context.Context, id string) (*Doctor, error)
	Create(ctx context.Context, req CreateDoctorRequest) (*Doctor, error)
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"petclinic-client/internal/domain"
	"petclinic-client/pkg/utils"
)

// DefaultSlotMinutes applies to doctors whose record has no slot length.
const DefaultSlotMinutes = 30

// DoctorLookup is the part of the catalog the scheduler needs.
type DoctorLookup interface {
	GetDoctor(ctx context.Context, id string) (*domain.Doctor, error)
}

type AppointmentUsecase struct {
	repo    domain.AppointmentRepository
	doctors DoctorLookup
	now     func() time.Time
}

func NewAppointmentUsecase(repo domain.AppointmentRepository, doctors DoctorLookup) *AppointmentUsecase {
	return &AppointmentUsecase{
		repo:    repo,
		doctors: doctors,
		now:     time.Now,
	}
}

func (u *AppointmentUsecase) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error) {
	if filter.Status != "" && !domain.IsAppointmentStatus(filter.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, filter.Status)
	}
	appts, err := u.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(appts, func(i, j int) bool {
		return appts[i].StartsAt.Before(appts[j].StartsAt)
	})
	return appts, nil
}

// Book validates the request and refuses slots that are already in the past.
// Whether the slot is still free is the API's call; a 409 surfaces as
// domain.ErrSlotTaken.
func (u *AppointmentUsecase) Book(ctx context.Context, req domain.BookAppointmentRequest) (*domain.Appointment, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !req.StartsAt.After(u.now()) {
		return nil, fmt.Errorf("%w: startsAt must be in the future", domain.ErrValidation)
	}
	return u.repo.Create(ctx, req)
}

func (u *AppointmentUsecase) Update(ctx context.Context, id string, req domain.UpdateAppointmentRequest) (*domain.Appointment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: appointment id is required", domain.ErrValidation)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}
	return u.repo.Update(ctx, id, req)
}

// Reschedule moves an appointment to a new start time.
func (u *AppointmentUsecase) Reschedule(ctx context.Context, id string, startsAt time.Time) (*domain.Appointment, error) {
	if !startsAt.After(u.now()) {
		return nil, fmt.Errorf("%w: startsAt must be in the future", domain.ErrValidation)
	}
	return u.Update(ctx, id, domain.UpdateAppointmentRequest{StartsAt: &startsAt})
}

func (u *AppointmentUsecase) UpdateStatus(ctx context.Context, id, status string) (*domain.Appointment, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: appointment id is required", domain.ErrValidation)
	}
	if !domain.IsAppointmentStatus(status) {
		return nil, fmt.Errorf("%w: status must be one of %v", domain.ErrValidation, domain.AppointmentStatuses)
	}
	return u.repo.UpdateStatus(ctx, id, status)
}

// FreeSlots lists the bookable start times for a doctor on day.
func (u *AppointmentUsecase) FreeSlots(ctx context.Context, doctorID string, day time.Time) ([]time.Time, error) {
	doctor, err := u.doctors.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	booked, err := u.repo.List(ctx, domain.AppointmentFilter{DoctorID: doctorID, Date: day})
	if err != nil {
		return nil, err
	}
	return AvailableSlots(*doctor, day, booked, u.now())
}

// AvailableSlots enumerates slot start times in [WorkStart, WorkEnd) on
// day's calendar date, stepping by the doctor's slot length, and drops
// slots that overlap a blocking appointment or do not start after now.
// Times are interpreted in day's location. The result is ascending.
func AvailableSlots(doctor domain.Doctor, day time.Time, booked []domain.Appointment, now time.Time) ([]time.Time, error) {
	if !doctor.WorksOn(day.Weekday()) {
		return []time.Time{}, nil
	}

	start, err := clockOn(day, doctor.WorkStart)
	if err != nil {
		return nil, fmt.Errorf("%w: workStart: %v", domain.ErrValidation, err)
	}
	end, err := clockOn(day, doctor.WorkEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: workEnd: %v", domain.ErrValidation, err)
	}

	minutes := doctor.SlotMinutes
	if minutes <= 0 {
		minutes = DefaultSlotMinutes
	}
	length := time.Duration(minutes) * time.Minute

	slots := []time.Time{}
	for t := start; t.Before(end); t = t.Add(length) {
		if !t.After(now) {
			continue
		}
		if collides(t, t.Add(length), booked, length) {
			continue
		}
		slots = append(slots, t)
	}
	return slots, nil
}

func collides(from, to time.Time, booked []domain.Appointment, fallback time.Duration) bool {
	for _, a := range booked {
		if !a.Blocks() {
			continue
		}
		if a.StartsAt.Before(to) && from.Before(a.EndsAt(fallback)) {
			return true
		}
	}
	return false
}

func clockOn(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

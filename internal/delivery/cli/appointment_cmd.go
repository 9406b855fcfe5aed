package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"petclinic-client/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	slotLayout = "2006-01-02T15:04"
)

func newAppointmentsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appt"},
		Short:   "List, book and manage appointments",
	}

	var filter domain.AppointmentFilter
	var date string
	list := &cobra.Command{
		Use:   "list",
		Short: "List appointments visible to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				d, err := parseDate(date)
				if err != nil {
					return err
				}
				filter.Date = d
			}
			appts, err := app.Appointments.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if len(appts) == 0 {
				app.Notify.Info("No appointments")
				return nil
			}
			rows := make([][]string, 0, len(appts))
			for _, a := range appts {
				rows = append(rows, []string{a.ID, clock(a.StartsAt), a.PetID, a.DoctorID, a.Status, a.Reason})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "When", "Pet", "Doctor", "Status", "Reason"}, rows)
			return nil
		},
	}
	list.Flags().StringVar(&filter.DoctorID, "doctor", "", "doctor id")
	list.Flags().StringVar(&filter.ClinicID, "clinic", "", "clinic id")
	list.Flags().StringVar(&filter.PetID, "pet", "", "pet id")
	list.Flags().StringVar(&filter.Status, "status", "", "one of "+strings.Join(domain.AppointmentStatuses, ", "))
	list.Flags().StringVar(&date, "date", "", "day, YYYY-MM-DD")

	var slotDate string
	slots := &cobra.Command{
		Use:   "slots <doctor-id>",
		Short: "Show a doctor's free slots for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := time.Now()
			if slotDate != "" {
				d, err := parseDate(slotDate)
				if err != nil {
					return err
				}
				day = d
			}
			free, err := app.Appointments.FreeSlots(cmd.Context(), args[0], day)
			if err != nil {
				return err
			}
			if len(free) == 0 {
				app.Notify.Info("No free slots on %s", day.Format(dateLayout))
				return nil
			}
			out := cmd.OutOrStdout()
			for _, s := range free {
				fmt.Fprintln(out, s.Format(slotLayout))
			}
			return nil
		},
	}
	slots.Flags().StringVar(&slotDate, "date", "", "day, YYYY-MM-DD (default today)")

	var book domain.BookAppointmentRequest
	var at string
	bookCmd := &cobra.Command{
		Use:   "book",
		Short: "Book an appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			startsAt, err := parseSlot(at)
			if err != nil {
				return err
			}
			book.StartsAt = startsAt
			appt, err := app.Appointments.Book(cmd.Context(), book)
			if err != nil {
				return err
			}
			app.Notify.Success("Booked for %s (id %s, %s)", clock(appt.StartsAt), appt.ID, appt.Status)
			return nil
		},
	}
	bookCmd.Flags().StringVar(&book.PetID, "pet", "", "pet id")
	bookCmd.Flags().StringVar(&book.DoctorID, "doctor", "", "doctor id")
	bookCmd.Flags().StringVar(&book.ClinicID, "clinic", "", "clinic id")
	bookCmd.Flags().StringVar(&book.Reason, "reason", "", "reason for the visit")
	bookCmd.Flags().StringVar(&at, "at", "", "start, YYYY-MM-DDTHH:MM local time")

	var newAt string
	reschedule := &cobra.Command{
		Use:   "reschedule <id>",
		Short: "Move an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startsAt, err := parseSlot(newAt)
			if err != nil {
				return err
			}
			appt, err := app.Appointments.Reschedule(cmd.Context(), args[0], startsAt)
			if err != nil {
				return err
			}
			app.Notify.Success("Appointment %s moved to %s", appt.ID, clock(startsAt))
			return nil
		},
	}
	reschedule.Flags().StringVar(&newAt, "at", "", "new start, YYYY-MM-DDTHH:MM local time")

	status := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Confirm, complete, cancel or reject an appointment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			appt, err := app.Appointments.UpdateStatus(cmd.Context(), args[0], strings.ToLower(args[1]))
			if err != nil {
				return err
			}
			app.Notify.Success("Appointment %s is now %s", appt.ID, appt.Status)
			return nil
		},
	}

	cmd.AddCommand(list, slots, bookCmd, reschedule, status)
	return cmd
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	return d, nil
}

func parseSlot(s string) (time.Time, error) {
	for _, layout := range []string{slotLayout, "2006-01-02 15:04", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: time must be YYYY-MM-DDTHH:MM", domain.ErrValidation)
}

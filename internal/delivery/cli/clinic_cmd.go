package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"petclinic-client/internal/domain"
)

func newClinicsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clinics [id]",
		Short: "List clinics, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				c, err := app.Catalog.GetClinic(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\n%s\n", c.Name, c.Address)
				for _, line := range []string{c.Phone, c.Email, c.OpeningHours, c.Description} {
					if line != "" {
						fmt.Fprintln(out, line)
					}
				}
				return nil
			}

			clinics, err := app.Catalog.ListClinics(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(clinics))
			for _, c := range clinics {
				rows = append(rows, []string{c.ID, c.Name, c.Address, c.Phone})
			}
			renderTable(out, []string{"ID", "Name", "Address", "Phone"}, rows)
			return nil
		},
	}
	return cmd
}

func newDoctorsCommand(app *App) *cobra.Command {
	var filter domain.DoctorFilter
	cmd := &cobra.Command{
		Use:   "doctors [id]",
		Short: "List doctors, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				d, err := app.Catalog.GetDoctor(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s (%s)\nclinic: %s\nhours:  %s-%s, %d min slots\ndays:   %s\n",
					d.Name, d.Specialty, d.ClinicID, d.WorkStart, d.WorkEnd, d.SlotMinutes, weekdays(d.WorkingDays))
				return nil
			}

			doctors, err := app.Catalog.ListDoctors(cmd.Context(), filter)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(doctors))
			for _, d := range doctors {
				rows = append(rows, []string{d.ID, d.Name, d.Specialty, d.ClinicID, d.WorkStart + "-" + d.WorkEnd})
			}
			renderTable(out, []string{"ID", "Name", "Specialty", "Clinic", "Hours"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.ClinicID, "clinic", "", "only doctors of this clinic")
	cmd.Flags().StringVar(&filter.Specialty, "specialty", "", "only this specialty")

	var req domain.CreateDoctorRequest
	var days string
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a doctor (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			wd, err := parseWeekdays(days)
			if err != nil {
				return err
			}
			req.WorkingDays = wd
			d, err := app.Catalog.CreateDoctor(cmd.Context(), req)
			if err != nil {
				return err
			}
			app.Notify.Success("Doctor %s added with id %s", d.Name, d.ID)
			return nil
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "doctor's name")
	create.Flags().StringVar(&req.Specialty, "specialty", "", "specialty")
	create.Flags().StringVar(&req.ClinicID, "clinic", "", "clinic id")
	create.Flags().StringVar(&req.Email, "email", "", "email")
	create.Flags().StringVar(&req.Phone, "phone", "", "phone")
	create.Flags().StringVar(&req.WorkStart, "start", "09:00", "first slot, HH:MM")
	create.Flags().StringVar(&req.WorkEnd, "end", "17:00", "end of day, HH:MM")
	create.Flags().IntVar(&req.SlotMinutes, "slot", 30, "slot length in minutes")
	create.Flags().StringVar(&days, "days", "", "working days, e.g. mon,tue,wed or 1-5 (empty means every day)")

	cmd.AddCommand(create)
	return cmd
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// parseWeekdays accepts "mon,wed", "1,3" and ranges like "1-5".
func parseWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if from, to, ok := strings.Cut(part, "-"); ok {
			a, errA := weekday(from)
			b, errB := weekday(to)
			if errA != nil || errB != nil || a > b {
				return nil, fmt.Errorf("%w: bad day range %q", domain.ErrValidation, part)
			}
			for d := a; d <= b; d++ {
				out = append(out, d)
			}
			continue
		}
		d, err := weekday(part)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func weekday(s string) (time.Weekday, error) {
	if d, ok := weekdayNames[s]; ok {
		return d, nil
	}
	if len(s) > 3 {
		if d, ok := weekdayNames[s[:3]]; ok {
			return d, nil
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 6 {
		return 0, fmt.Errorf("%w: unknown day %q", domain.ErrValidation, s)
	}
	return time.Weekday(n), nil
}

func weekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return "every day"
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ", ")
}

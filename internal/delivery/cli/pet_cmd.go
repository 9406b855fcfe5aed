package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"petclinic-client/internal/domain"
)

func newPetsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pets [id]",
		Short: "List your pets, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				p, err := app.Pets.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s, %s", p.Name, p.Species)
				if p.Breed != "" {
					fmt.Fprintf(out, " (%s)", p.Breed)
				}
				fmt.Fprintln(out)
				if p.BirthDate != nil {
					fmt.Fprintf(out, "born %s\n", p.BirthDate.Format(dateLayout))
				}
				if p.WeightKg > 0 {
					fmt.Fprintf(out, "%.1f kg\n", p.WeightKg)
				}
				return nil
			}

			pets, err := app.Pets.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(pets))
			for _, p := range pets {
				rows = append(rows, []string{p.ID, p.Name, p.Species, p.Breed})
			}
			renderTable(out, []string{"ID", "Name", "Species", "Breed"}, rows)
			return nil
		},
	}

	var req domain.CreatePetRequest
	var born string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a pet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if born != "" {
				d, err := parseDate(born)
				if err != nil {
					return err
				}
				req.BirthDate = &d
			}
			p, err := app.Pets.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			app.Notify.Success("%s registered with id %s", p.Name, p.ID)
			return nil
		},
	}
	add.Flags().StringVar(&req.Name, "name", "", "pet's name")
	add.Flags().StringVar(&req.Species, "species", "", "dog, cat, bird, rabbit, hamster, fish, reptile or other")
	add.Flags().StringVar(&req.Breed, "breed", "", "breed")
	add.Flags().StringVar(&req.Gender, "gender", "", "male, female or unknown")
	add.Flags().Float64Var(&req.WeightKg, "weight", 0, "weight in kg")
	add.Flags().StringVar(&born, "born", "", "birth date, YYYY-MM-DD")

	cmd.AddCommand(add)
	return cmd
}

package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"petclinic-client/internal/domain"
)

func newAdminCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "User administration",
	}

	var filter domain.UserFilter
	users := &cobra.Command{
		Use:   "users",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, meta, err := app.Admin.ListUsers(cmd.Context(), filter)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(list))
			for _, u := range list {
				rows = append(rows, []string{u.ID, u.Name, u.Email, u.Role, strconv.FormatBool(u.Banned)})
			}
			out := cmd.OutOrStdout()
			renderTable(out, []string{"ID", "Name", "Email", "Role", "Banned"}, rows)
			pageFooter(out, meta)
			return nil
		},
	}
	users.Flags().IntVar(&filter.Page, "page", 1, "page")
	users.Flags().IntVar(&filter.Limit, "limit", domain.DefaultLimit, "page size")
	users.Flags().StringVarP(&filter.Search, "search", "q", "", "name or email")
	users.Flags().StringVar(&filter.Role, "role", "", "customer, doctor or admin")

	var req domain.CreateUserRequest
	create := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := app.Admin.CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			app.Notify.Success("Created %s (%s) with id %s", u.Email, u.Role, u.ID)
			return nil
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "full name")
	create.Flags().StringVar(&req.Email, "email", "", "email")
	create.Flags().StringVar(&req.Password, "password", "", "initial password")
	create.Flags().StringVar(&req.Role, "role", domain.RoleCustomer, "customer, doctor or admin")

	ban := &cobra.Command{
		Use:   "ban <user-id>",
		Short: "Ban a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Admin.Ban(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.Notify.Success("User %s banned", args[0])
			return nil
		},
	}

	unban := &cobra.Command{
		Use:   "unban <user-id>",
		Short: "Lift a ban",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Admin.Unban(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.Notify.Success("User %s unbanned", args[0])
			return nil
		},
	}

	cmd.AddCommand(users, create, ban, unban)
	return cmd
}

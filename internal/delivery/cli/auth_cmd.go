package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"petclinic-client/internal/domain"
)

func newAuthCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Sign up, log in and inspect the current session",
	}

	var email, password string
	login := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = prompt(app, "Password: "); err != nil {
					return err
				}
			}
			user, err := app.Auth.Login(cmd.Context(), domain.LoginRequest{Email: email, Password: password})
			if err != nil {
				return err
			}
			app.Notify.Success("Welcome back, %s", displayName(user))
			return nil
		},
	}
	login.Flags().StringVar(&email, "email", "", "account email")
	login.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	_ = login.MarkFlagRequired("email")

	var reg domain.RegisterRequest
	register := &cobra.Command{
		Use:   "register",
		Short: "Request a sign-up code by email",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.RequestRegistration(cmd.Context(), reg); err != nil {
				return err
			}
			app.Notify.Success("Check %s for your 6-digit code, then run `petclinic auth verify`", reg.Email)
			return nil
		},
	}
	register.Flags().StringVar(&reg.Name, "name", "", "full name")
	register.Flags().StringVar(&reg.Email, "email", "", "email")
	register.Flags().StringVar(&reg.Phone, "phone", "", "phone number")
	register.Flags().StringVar(&reg.Password, "password", "", "password, at least 8 characters")

	var verify domain.VerifyRegisterRequest
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Finish sign-up with the emailed code",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.Auth.VerifyRegistration(cmd.Context(), verify)
			if err != nil {
				return err
			}
			app.Notify.Success("Account created. Logged in as %s", displayName(user))
			return nil
		},
	}
	verifyCmd.Flags().StringVar(&verify.Email, "email", "", "email used at registration")
	verifyCmd.Flags().StringVar(&verify.OTP, "code", "", "6-digit code")

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(); err != nil {
				return err
			}
			app.Notify.Success("Logged out")
			return nil
		},
	}

	whoami := &cobra.Command{
		Use:   "whoami",
		Short: "Show who the stored session belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := app.Auth.CurrentUser()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "user:  %s\nemail: %s\nrole:  %s\n", info.UserID, info.Email, info.Role)
			if !info.ExpiresAt.IsZero() {
				state := "valid for " + time.Until(info.ExpiresAt).Round(time.Second).String()
				if info.Expired {
					state = "expired, will refresh on next call"
				}
				fmt.Fprintf(out, "token: %s\n", state)
			}
			return nil
		},
	}

	cmd.AddCommand(login, register, verifyCmd, logout, whoami)
	return cmd
}

func displayName(u *domain.User) string {
	if u.Name != "" {
		return u.Name
	}
	if u.Email != "" {
		return u.Email
	}
	return u.ID
}

// prompt reads one line from the app's input.
func prompt(app *App, label string) (string, error) {
	fmt.Fprint(app.out(), label)
	line, err := bufio.NewReader(app.in()).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

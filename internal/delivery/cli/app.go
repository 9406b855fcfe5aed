// Package cli is the command-line front end: one cobra command tree over
// the usecases, with results printed as tables and feedback as toasts.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"petclinic-client/internal/usecase"
	"petclinic-client/pkg/logger"
)

// App carries everything the commands need. main builds it once.
type App struct {
	Auth         *usecase.AuthUsecase
	Catalog      *usecase.CatalogUsecase
	Appointments *usecase.AppointmentUsecase
	Cart         *usecase.CartUsecase
	Chat         *usecase.ChatUsecase
	Admin        *usecase.AdminUsecase
	Pets         *usecase.PetUsecase
	Forum        *usecase.ForumUsecase

	Version string
	In      io.Reader
	Out     io.Writer
	Notify  *Notifier
}

func (a *App) in() io.Reader {
	if a.In == nil {
		return os.Stdin
	}
	return a.In
}

func (a *App) out() io.Writer {
	if a.Out == nil {
		return os.Stdout
	}
	return a.Out
}

// NewRootCommand assembles the command tree.
func NewRootCommand(app *App) *cobra.Command {
	if app.Notify == nil {
		app.Notify = NewNotifier(app.out())
	}

	root := &cobra.Command{
		Use:           "petclinic",
		Short:         "Pet clinic client",
		Long:          `Book vet appointments, manage your pets, shop for supplies and talk to the clinic assistants from the terminal.`,
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(app.in())
	root.SetOut(app.out())

	root.AddCommand(
		newAuthCommand(app),
		newClinicsCommand(app),
		newDoctorsCommand(app),
		newAppointmentsCommand(app),
		newPetsCommand(app),
		newShopCommand(app),
		newChatCommand(app),
		newDoctorAICommand(app),
		newForumCommand(app),
		newAdminCommand(app),
	)
	return root
}

// Run executes args against the command tree. A failing command is
// reported once, as an error toast, and its error returned.
func Run(ctx context.Context, app *App, args []string) error {
	root := NewRootCommand(app)
	root.SetArgs(args)

	name := "petclinic"
	if len(args) > 0 {
		name += " " + args[0]
	}
	logger.CommandStart(name, app.Version)
	err := root.ExecuteContext(ctx)
	logger.CommandStop(name, err)

	if err != nil {
		app.Notify.Error(err)
	}
	return err
}

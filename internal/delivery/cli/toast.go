package cli

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"petclinic-client/internal/domain"
	restrepo "petclinic-client/internal/repository/rest"
)

// Notifier prints short, styled status lines: the terminal version of a
// toast. Every success and failure a command reports goes through it.
type Notifier struct {
	mu     sync.Mutex
	out    io.Writer
	styles toastStyles
}

type toastStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Muted   lipgloss.Style
}

func defaultToastStyles(r *lipgloss.Renderer) toastStyles {
	return toastStyles{
		Success: r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF5F87")).Bold(true),
		Info:    r.NewStyle().Foreground(lipgloss.Color("#7D56F4")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("#626262")),
	}
}

func NewNotifier(out io.Writer) *Notifier {
	return &Notifier{
		out:    out,
		styles: defaultToastStyles(lipgloss.NewRenderer(out)),
	}
}

func (n *Notifier) Success(format string, args ...interface{}) {
	n.print(n.styles.Success, "✓ ", format, args...)
}

func (n *Notifier) Info(format string, args ...interface{}) {
	n.print(n.styles.Info, "• ", format, args...)
}

// Error shows err the way a user should read it.
func (n *Notifier) Error(err error) {
	if err == nil {
		return
	}
	n.print(n.styles.Error, "✗ ", "%s", Describe(err))
}

// Println writes a plain line, serialised with the toasts.
func (n *Notifier) Println(s string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, s)
}

func (n *Notifier) print(style lipgloss.Style, icon, format string, args ...interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, style.Render(icon+fmt.Sprintf(format, args...)))
}

// Describe turns an error into the message a toast shows: the API's own
// message when there is one, a fixed hint for session problems.
func Describe(err error) string {
	var apiErr *restrepo.APIError
	switch {
	case errors.Is(err, domain.ErrSessionExpired):
		return "Your session has expired. Run `petclinic auth login` again."
	case errors.Is(err, domain.ErrNotLoggedIn):
		return "You are not logged in. Run `petclinic auth login` first."
	case errors.As(err, &apiErr):
		return apiErr.Message
	}
	return err.Error()
}

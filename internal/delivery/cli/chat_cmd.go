package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"petclinic-client/internal/domain"
	"petclinic-client/internal/usecase"
)

func newChatCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the clinic's shop assistant",
		Long: `Opens the shop assistant. Type a message and press enter.
Sending a new message while a reply is pending abandons the old one.
Type /quit or press Ctrl-D to leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session := app.Chat.NewChatbotSession()
			return runChat(cmd.Context(), app, session, cmd.InOrStdin(), nil)
		},
	}
}

func newDoctorAICommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor-ai",
		Short: "Ask the veterinary assistant",
		Long: `Opens the veterinary assistant, resuming your previous conversation.
Use "/upload <path>" to attach a photo to your next message.
Type /quit or press Ctrl-D to leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := app.Chat.NewDoctorAISession(cmd.Context())
			if err != nil {
				return err
			}
			if n := len(session.History()); n > 0 {
				app.Notify.Info("Resuming conversation (%d messages)", n)
			}
			return runChat(cmd.Context(), app, session, cmd.InOrStdin(), app.Chat)
		},
	}

	history := &cobra.Command{
		Use:   "history",
		Short: "Print the conversation so far",
		RunE: func(cmd *cobra.Command, args []string) error {
			msgs, err := app.Chat.DoctorAIHistory(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, m := range msgs {
				fmt.Fprintf(out, "%s: %s\n", m.Role, m.Content)
				if m.ImageURL != "" {
					fmt.Fprintf(out, "  [image] %s\n", m.ImageURL)
				}
			}
			return nil
		},
	}

	upload := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a photo and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := uploadFile(cmd.Context(), app.Chat, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.URL)
			return nil
		},
	}

	cmd.AddCommand(history, upload)
	return cmd
}

func uploadFile(ctx context.Context, chat *usecase.ChatUsecase, path string) (*domain.UploadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return chat.UploadImage(ctx, path, f)
}

// runChat reads lines and sends each one without waiting for the previous
// reply, so a new line supersedes a pending request. uploader is nil for
// chats that take no attachments.
func runChat(ctx context.Context, app *App, session *usecase.ChatSession, in io.Reader, uploader *usecase.ChatUsecase) error {
	var wg sync.WaitGroup
	defer func() {
		session.Close()
		wg.Wait()
	}()

	stop := context.AfterFunc(ctx, session.Close)
	defer stop()

	var attachment string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case line == "/quit" || line == "/exit":
			return nil
		case strings.HasPrefix(line, "/upload "):
			if uploader == nil {
				app.Notify.Error(errors.New("this assistant does not take attachments"))
				continue
			}
			res, err := uploadFile(ctx, uploader, strings.TrimSpace(strings.TrimPrefix(line, "/upload ")))
			if err != nil {
				app.Notify.Error(err)
				continue
			}
			attachment = res.URL
			app.Notify.Success("Photo attached to your next message")
			continue
		}

		send := session.Start(ctx, line, attachment)
		attachment = ""
		wg.Add(1)
		go func() {
			defer wg.Done()
			reply, err := send()
			switch {
			case errors.Is(err, domain.ErrSuperseded), errors.Is(err, domain.ErrSessionClosed):
				// a newer message or the user leaving took over
			case err != nil:
				app.Notify.Error(err)
			default:
				app.Notify.Println("assistant: " + reply.Content)
			}
		}()
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	// Input ended: let the last request finish before closing.
	wg.Wait()
	return nil
}

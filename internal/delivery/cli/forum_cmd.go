package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"petclinic-client/internal/domain"
	"petclinic-client/pkg/utils"
)

func newForumCommand(app *App) *cobra.Command {
	var page, limit int
	cmd := &cobra.Command{
		Use:   "forum",
		Short: "Read the community feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, meta, err := app.Forum.Feed(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range posts {
				author := p.AuthorName
				if author == "" {
					author = p.AuthorID
				}
				fmt.Fprintf(out, "%s  %s  (%d likes, %d comments)\n", clock(p.CreatedAt), author, p.Likes, p.Comments)
				fmt.Fprintf(out, "  %s\n\n", utils.Truncate(strings.ReplaceAll(p.Content, "\n", " "), 280))
			}
			pageFooter(out, meta)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page")
	cmd.Flags().IntVar(&limit, "limit", 10, "posts per page")

	var images []string
	post := &cobra.Command{
		Use:   "post <text>",
		Short: "Publish a post",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Forum.Publish(cmd.Context(), domain.CreatePostRequest{
				Content: strings.Join(args, " "),
				Images:  images,
			})
			if err != nil {
				return err
			}
			app.Notify.Success("Posted (id %s)", p.ID)
			return nil
		},
	}
	post.Flags().StringSliceVar(&images, "image", nil, "image URL, repeatable")

	cmd.AddCommand(post)
	return cmd
}

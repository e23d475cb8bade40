package cli

import (
	"fmt"

	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/usecase"
	"github.com/spf13/cobra"
)

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <KEY> <NAME>",
		Short: "Open an attachment with the configured viewer",
		Long: `Write an attachment to the local attachment directory and open it with
the [viewer] command from the profile (xdg-open or open by default).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := openIssue(cmd.Context(), c, cmd.ErrOrStderr(), usecase.FetchIssueInput{IssueKey: args[0]})
			if err != nil {
				return err
			}
			res, err := c.ShowAttachmentUseCase().Execute(cmd.Context(), usecase.ShowAttachmentInput{
				Set:  out.Set,
				Name: args[1],
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Opened %s\n", res.Path)
			return nil
		},
	}
	return cmd
}

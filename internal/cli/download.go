package cli

import (
	"fmt"

	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/usecase"
	"github.com/spf13/cobra"
)

// newDownloadCommand creates the download command.
func newDownloadCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Dir   string
		Force bool
	}

	cmd := &cobra.Command{
		Use:   "download <KEY> [NAME...]",
		Short: "Save attachments to a local directory",
		Long: `Save attachments of an issue to a directory, using their current names
(pending renames from the saved draft included). Without NAME arguments
every attachment is saved. Existing files are kept unless --force is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := openIssue(cmd.Context(), c, cmd.ErrOrStderr(), usecase.FetchIssueInput{IssueKey: args[0]})
			if err != nil {
				return err
			}

			res, err := c.DownloadAttachmentsUseCase().Execute(cmd.Context(), usecase.DownloadAttachmentsInput{
				Set:   out.Set,
				Dir:   opts.Dir,
				Names: args[1:],
				Force: opts.Force,
			})
			if res != nil {
				for _, p := range res.Paths {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.Dir, "dir", "C", ".", "Target directory")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "Overwrite existing files")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogsCommand creates the logs command.
func newLogsCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Lines int
	}

	cmd := &cobra.Command{
		Use:   "logs [KEY]",
		Short: "Show the operational log",
		Long: `Show the operational log. Without KEY the global log is shown,
otherwise the log of that issue.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ShowLogsInput{Lines: opts.Lines}
			if len(args) == 1 {
				in.IssueKey = args[0]
			}
			out, err := c.ShowLogsUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Lines, "lines", "n", 0, "Number of lines to show from the end (0 = all)")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/usecase"
	"github.com/spf13/cobra"
)

// newHistoryCommand creates the history command.
func newHistoryCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Output string
		Limit  int
	}

	cmd := &cobra.Command{
		Use:   "history [KEY]",
		Short: "Show the change log of applied renames",
		Long: `Show applied and failed renames, newest first. Records of one apply
share a batch ID. With KEY only that issue's records are shown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(opts.Output)
			if err != nil {
				return err
			}
			in := usecase.ListChangesInput{Limit: opts.Limit}
			if len(args) == 1 {
				in.IssueKey = args[0]
			}

			out, err := c.ListChangesUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			if format != formatTable {
				return writeStructured(cmd.OutOrStdout(), format, out.Records)
			}
			if len(out.Records) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes recorded")
				return nil
			}
			printChanges(cmd.OutOrStdout(), out.Records)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Number of records to show (0 = all)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", formatTable, "Output format: table, json or yaml")

	return cmd
}

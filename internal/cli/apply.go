package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/usecase"
	"github.com/spf13/cobra"
)

// newApplyCommand creates the apply command.
func newApplyCommand(c *app.Container) *cobra.Command {
	var opts struct {
		From   string
		DryRun bool
	}

	cmd := &cobra.Command{
		Use:   "apply <KEY>",
		Short: "Apply a rename plan or the saved draft",
		Long: `Upload renamed attachments of an issue.

Without --from, the pending renames saved as a draft (by the TUI or by
"rename --draft-only") are applied. With --from, renames are read from a
YAML file ("-" reads stdin) and the saved draft is left untouched:

  renames:
    alps.jpg: mountains.jpg
    scan 1.pdf: invoice

Examples:
  jira-attach apply TES-3
  jira-attach apply TES-3 --from plan.yaml --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var plan *usecase.RenamePlan
			if opts.From != "" {
				var err error
				plan, err = readPlan(cmd.InOrStdin(), opts.From)
				if err != nil {
					return err
				}
			}

			out, err := openIssue(cmd.Context(), c, cmd.ErrOrStderr(), usecase.FetchIssueInput{
				IssueKey:  args[0],
				SkipDraft: plan != nil,
			})
			if err != nil {
				return err
			}
			if plan != nil {
				if err := planRenames(cmd, c, out.Set, plan.Renames, false); err != nil {
					return err
				}
			}

			err = applyAndReport(cmd, c, out.Set, applyOptions{DryRun: opts.DryRun, KeepDraft: plan != nil})
			if isNoChanges(err) && plan == nil {
				return fmt.Errorf("%w for %s (no saved draft)", err, out.Set.IssueKey())
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.From, "from", "f", "", "YAML rename plan to apply (- for stdin)")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would change without uploading")

	return cmd
}

func readPlan(stdin io.Reader, path string) (*usecase.RenamePlan, error) {
	if path == "-" {
		return usecase.ParseRenamePlan(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rename plan: %w", err)
	}
	defer func() { _ = f.Close() }()
	return usecase.ParseRenamePlan(f)
}

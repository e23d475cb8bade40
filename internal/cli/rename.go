package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/usecase"
	"github.com/spf13/cobra"
)

// newRenameCommand creates the rename command.
func newRenameCommand(c *app.Container) *cobra.Command {
	var opts struct {
		DryRun    bool
		DraftOnly bool
	}

	cmd := &cobra.Command{
		Use:   "rename <KEY> <OLD=NEW>...",
		Short: "Rename attachments and upload them",
		Long: `Rename attachments of an issue. Each argument names an attachment by its
current name and gives the new name, separated by the first "=".

The file type is kept: "alps.jpg=mountains" and "alps.jpg=mountains.jpg"
both produce mountains.jpg. Each renamed file is uploaded under its new
name and the original is deleted afterwards.

Only the renames given on the command line are uploaded; a saved draft
is neither applied nor changed. With --draft-only the renames are added
to the saved draft instead of being uploaded.

Examples:
  jira-attach rename TES-3 alps.jpg=mountains
  jira-attach rename TES-3 "scan 1.pdf=invoice 2024" --dry-run

  # Keep the renames as a draft and apply them later
  jira-attach rename TES-3 alps.jpg=mountains --draft-only
  jira-attach apply TES-3`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			renames, err := parseRenamePairs(args[1:])
			if err != nil {
				return err
			}

			saveDraft := opts.DraftOnly && !opts.DryRun
			out, err := openIssue(cmd.Context(), c, cmd.ErrOrStderr(), usecase.FetchIssueInput{
				IssueKey:  args[0],
				SkipDraft: !opts.DraftOnly,
			})
			if err != nil {
				return err
			}
			if err := planRenames(cmd, c, out.Set, renames, saveDraft); err != nil {
				return err
			}
			if saveDraft {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Saved %d pending rename(s) for %s\n", len(out.Set.Changes()), out.Set.IssueKey())
				return nil
			}
			return applyAndReport(cmd, c, out.Set, applyOptions{DryRun: opts.DryRun, KeepDraft: true})
		},
	}

	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would change without uploading")
	cmd.Flags().BoolVar(&opts.DraftOnly, "draft-only", false, "Only save the renames as a draft")

	return cmd
}

// parseRenamePairs parses OLD=NEW arguments.
func parseRenamePairs(args []string) (map[string]string, error) {
	renames := make(map[string]string, len(args))
	for _, arg := range args {
		oldName, newName, ok := strings.Cut(arg, "=")
		if !ok || oldName == "" {
			return nil, fmt.Errorf("invalid rename %q: want OLD=NEW", arg)
		}
		if _, dup := renames[oldName]; dup {
			return nil, fmt.Errorf("%s is renamed twice", oldName)
		}
		renames[oldName] = newName
	}
	return renames, nil
}

// planRenames applies renames to the set, saving the draft when saveDraft is set.
func planRenames(cmd *cobra.Command, c *app.Container, set *domain.RenameSet, renames map[string]string, saveDraft bool) error {
	_, err := c.PlanRenamesUseCase().Execute(cmd.Context(), usecase.PlanRenamesInput{
		Set:       set,
		Renames:   renames,
		SaveDraft: saveDraft,
	})
	return err
}

type applyOptions struct {
	DryRun    bool
	KeepDraft bool // the set was not loaded from the draft
}

// applyAndReport applies the pending changes of set and prints one line per
// change followed by a summary.
func applyAndReport(cmd *cobra.Command, c *app.Container, set *domain.RenameSet, opts applyOptions) error {
	out, err := c.ApplyRenamesUseCase().Execute(cmd.Context(), usecase.ApplyRenamesInput{
		Set:       set,
		DryRun:    opts.DryRun,
		KeepDraft: opts.KeepDraft,
	})
	if out == nil {
		return err
	}
	printApplyResult(cmd.OutOrStdout(), out, opts.DryRun)
	if err != nil && out.Failed > 0 {
		return fmt.Errorf("%d of %d renames failed: %w", out.Failed, len(out.Records), err)
	}
	return err
}

func printApplyResult(w io.Writer, out *usecase.ApplyRenamesOutput, dryRun bool) {
	if dryRun {
		for _, r := range out.Records {
			_, _ = fmt.Fprintf(w, "would rename %s -> %s\n", r.OldName, r.NewName)
		}
		_, _ = fmt.Fprintf(w, "%d rename(s) planned, nothing uploaded\n", len(out.Records))
		return
	}
	for _, r := range out.Records {
		if r.Status == domain.ChangeFailed {
			_, _ = fmt.Fprintf(w, "failed  %s -> %s\n", r.OldName, r.NewName)
			continue
		}
		_, _ = fmt.Fprintf(w, "renamed %s -> %s\n", r.OldName, r.NewName)
	}
	_, _ = fmt.Fprintf(w, "Applied %d, failed %d (batch %s)\n", out.Applied, out.Failed, out.BatchID)
}

// isNoChanges reports whether err only says there was nothing to apply.
func isNoChanges(err error) bool {
	return errors.Is(err, domain.ErrNoChanges)
}

package cli

import (
	"fmt"

	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/usecase"
	"github.com/spf13/cobra"
)

// newDraftCommand creates the draft command.
func newDraftCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage saved drafts of unapplied renames",
	}
	cmd.AddCommand(newDraftListCommand(c), newDraftDiscardCommand(c))
	return cmd
}

func newDraftListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List issues with unapplied renames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListDraftsUseCase().Execute(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(out.Drafts) == 0 {
				_, _ = fmt.Fprintln(w, "No drafts")
				return nil
			}
			t := newTable("ISSUE", "RENAMES", "UPDATED")
			for _, d := range out.Drafts {
				t.add(d.IssueKey, fmt.Sprint(len(d.Renames)), d.Updated.Local().Format(timeLayout))
			}
			t.write(w)
			return nil
		},
	}
}

func newDraftDiscardCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "discard <KEY>",
		Short: "Drop the unapplied renames of an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DiscardDraftUseCase().Execute(cmd.Context(), usecase.DiscardDraftInput{IssueKey: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Discarded %d pending rename(s) for %s\n", len(out.Draft.Renames), out.Draft.IssueKey)
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/infra/config"
	"github.com/runoshun/jira-attach/internal/usecase"
)

// ensureLogin logs in with the configured profile unless the session is
// already logged in.
func ensureLogin(ctx context.Context, c *app.Container) error {
	if c.Session.LoggedIn() {
		return nil
	}
	profile := c.AppConfig.Profile()
	if !profile.Complete() {
		return fmt.Errorf("%w: run 'jira-attach login --remember' or set %sSERVER, %sUSERNAME and %sPASSWORD",
			domain.ErrNotLoggedIn, config.EnvPrefix, config.EnvPrefix, config.EnvPrefix)
	}
	_, err := c.LoginUseCase().Execute(ctx, usecase.LoginInput{Profile: profile})
	return err
}

// openIssue logs in if needed and fetches the issue. Draft problems are
// reported on stderr and do not fail the command.
func openIssue(ctx context.Context, c *app.Container, stderr io.Writer, in usecase.FetchIssueInput) (*usecase.FetchIssueOutput, error) {
	if err := ensureLogin(ctx, c); err != nil {
		return nil, err
	}
	out, err := c.FetchIssueUseCase().Execute(ctx, in)
	if err != nil {
		return nil, err
	}
	if out.DraftError != nil {
		_, _ = fmt.Fprintf(stderr, "Warning: saved draft not restored: %v\n", out.DraftError)
	}
	if out.DraftRestored > 0 {
		_, _ = fmt.Fprintf(stderr, "Restored %d pending rename(s) from the saved draft", out.DraftRestored)
		if out.DraftSkipped > 0 {
			_, _ = fmt.Fprintf(stderr, " (%d no longer apply)", out.DraftSkipped)
		}
		_, _ = fmt.Fprintln(stderr)
	}
	return out, nil
}

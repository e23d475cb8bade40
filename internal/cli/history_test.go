package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCommand(t *testing.T) {
	// Setup
	env := newTestEnv(t)
	env.history.Records = []domain.ChangeRecord{
		{ID: 1, Time: testNow.Add(-time.Hour), IssueKey: "TES-3", OldName: "a.jpg", NewName: "b.jpg", Status: domain.ChangeApplied},
		{ID: 2, Time: testNow, IssueKey: "TES-4", OldName: "c.pdf", NewName: "d.pdf", Status: domain.ChangeFailed, Error: "upload: HTTP 500"},
	}

	// Execute
	out, _, err := run(newHistoryCommand(env.c))

	// Assert
	require.NoError(t, err)
	assert.Contains(t, out, "TIME")
	assert.Contains(t, out, "upload: HTTP 500")
	assert.Less(t, strings.Index(out, "TES-4"), strings.Index(out, "TES-3"), "newest first")
}

func TestHistoryCommand_FilterJSON(t *testing.T) {
	env := newTestEnv(t)
	env.history.Records = []domain.ChangeRecord{
		{ID: 1, IssueKey: "TES-3", BatchID: "b1", OldName: "a.jpg", NewName: "b.jpg", Status: domain.ChangeApplied},
		{ID: 2, IssueKey: "TES-4", BatchID: "b2", OldName: "c.pdf", NewName: "d.pdf", Status: domain.ChangeApplied},
	}

	out, _, err := run(newHistoryCommand(env.c), "tes-3", "--output", "json")

	require.NoError(t, err)
	var records []domain.ChangeRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "b1", records[0].BatchID)
}

func TestHistoryCommand_Empty(t *testing.T) {
	env := newTestEnv(t)

	out, _, err := run(newHistoryCommand(env.c))

	require.NoError(t, err)
	assert.Equal(t, "No changes recorded\n", out)
}

func TestLogsCommand(t *testing.T) {
	// Setup
	env := newTestEnv(t)
	path := domain.IssueLogPath(env.c.Config.DataDir, "TES-3")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))

	// Execute
	out, _, err := run(newLogsCommand(env.c), "tes-3", "-n", "2")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "two\nthree\n", out)
}

func TestLogsCommand_NoLog(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := run(newLogsCommand(env.c))

	assert.ErrorContains(t, err, "no log file found")
}

func TestDraftCommands(t *testing.T) {
	// Setup
	env := newTestEnv(t)
	env.drafts.Drafts["TES-3"] = &domain.Draft{IssueKey: "TES-3", Updated: testNow, Renames: []domain.DraftRename{
		{AttachmentID: "100", OldName: "alps.jpg", NewName: "mountains.jpg"},
		{AttachmentID: "102", OldName: "scan.pdf", NewName: "invoice.pdf"},
	}}

	// Execute: list
	out, _, err := run(newDraftCommand(env.c), "list")

	require.NoError(t, err)
	assert.Contains(t, out, "ISSUE")
	assert.Regexp(t, `TES-3\s+2\s`, out)

	// Execute: discard
	out, _, err = run(newDraftCommand(env.c), "discard", "tes-3")

	require.NoError(t, err)
	assert.Equal(t, "Discarded 2 pending rename(s) for TES-3\n", out)
	assert.Empty(t, env.drafts.Drafts)

	// Discarding again fails
	_, _, err = run(newDraftCommand(env.c), "discard", "TES-3")
	assert.ErrorIs(t, err, domain.ErrNoDraft)

	out, _, err = run(newDraftCommand(env.c), "list")
	require.NoError(t, err)
	assert.Equal(t, "No drafts\n", out)
}

package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/testutil"
	"github.com/spf13/cobra"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

// testEnv bundles a container with the doubles behind it.
type testEnv struct {
	c       *app.Container
	tracker *testutil.MockTracker
	factory *testutil.MockTrackerFactory
	history *testutil.MockChangeLog
	drafts  *testutil.MockDraftRepository
	stagers *testutil.MockStagerFactory
	viewer  *testutil.MockViewer
	manager *testutil.MockConfigManager
	loader  *testutil.MockConfigLoader
}

// newTestEnv creates an app.Container with mock dependencies and a
// complete profile, so commands log in automatically.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tracker := testutil.NewMockTracker()
	tracker.AddIssue(&domain.Issue{
		Key:     "TES-3",
		Summary: "Screenshots",
		Attachments: []domain.Attachment{
			{ID: "100", Filename: "alps.jpg", Author: "Bob", Size: 300, Created: testNow.Add(-3 * time.Hour)},
			{ID: "101", Filename: "notes.txt", Author: "alice", Size: 100, Created: testNow.Add(-1 * time.Hour)},
			{ID: "102", Filename: "scan.pdf", Author: "Carol", Size: 2048, Created: testNow.Add(-2 * time.Hour)},
		},
	}, "jpeg", "text", "pdf")

	cfg := domain.NewDefaultConfig()
	cfg.Server.URL = "https://jira.example.com"
	cfg.Server.Username = "alice"
	cfg.Server.Password = "secret"

	env := &testEnv{
		tracker: tracker,
		factory: &testutil.MockTrackerFactory{Tracker: tracker},
		history: &testutil.MockChangeLog{},
		drafts:  testutil.NewMockDraftRepository(),
		stagers: &testutil.MockStagerFactory{Root: t.TempDir()},
		viewer:  &testutil.MockViewer{},
		manager: &testutil.MockConfigManager{FilePath: "/cfg/jira-attach/config.toml"},
		loader:  &testutil.MockConfigLoader{Config: cfg},
	}
	env.c = app.NewWithDeps(app.NewConfig("/cfg/jira-attach/config.toml", t.TempDir()), app.Deps{
		Trackers:      env.factory,
		History:       env.history,
		Drafts:        env.drafts,
		Stagers:       env.stagers,
		Viewer:        env.viewer,
		Clock:         &testutil.MockClock{NowTime: testNow},
		ConfigLoader:  env.loader,
		ConfigManager: env.manager,
		AppConfig:     cfg,
	})
	return env
}

// run executes cmd with args and returns stdout and stderr.
func run(cmd *cobra.Command, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

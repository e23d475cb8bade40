package executor

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test on Windows")
	}

	client := NewClient()

	t.Run("executes simple echo command", func(t *testing.T) {
		output, err := client.Execute(domain.NewCommand("echo", []string{"hello"}, ""))
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(output))
	})

	t.Run("executes command in specified directory", func(t *testing.T) {
		dir := t.TempDir()
		output, err := client.Execute(domain.NewCommand("pwd", nil, dir))
		require.NoError(t, err)
		assert.Contains(t, strings.TrimSpace(string(output)), filepath.Base(dir))
	})

	t.Run("returns error for non-existent command", func(t *testing.T) {
		_, err := client.Execute(domain.NewCommand("nonexistent-command-xyz", nil, ""))
		require.Error(t, err)
	})
}

func TestClient_Start(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test on Windows")
	}

	client := NewClient()

	t.Run("starts without waiting", func(t *testing.T) {
		dir := t.TempDir()
		marker := filepath.Join(dir, "marker")

		err := client.Start(domain.NewCommand("touch", []string{marker}, dir))
		require.NoError(t, err)

		assert.Eventually(t, func() bool {
			_, err := os.Stat(marker)
			return err == nil
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("returns error for non-existent command", func(t *testing.T) {
		err := client.Start(domain.NewCommand("nonexistent-command-xyz", nil, ""))
		require.Error(t, err)
	})
}

type recordingExecutor struct {
	started []*domain.ExecCommand
}

func (r *recordingExecutor) Start(cmd *domain.ExecCommand) error {
	r.started = append(r.started, cmd)
	return nil
}

func TestViewer_Open(t *testing.T) {
	rec := &recordingExecutor{}
	viewer := NewViewer(rec, "xdg-open")

	require.NoError(t, viewer.Open("/data/attachments/TES-3/alps.jpg"))

	require.Len(t, rec.started, 1)
	assert.Equal(t, "xdg-open", rec.started[0].Program)
	assert.Equal(t, []string{"/data/attachments/TES-3/alps.jpg"}, rec.started[0].Args)
}

func TestViewer_Open_NoCommand(t *testing.T) {
	viewer := NewViewer(&recordingExecutor{}, "")

	err := viewer.Open("/tmp/a.png")

	assert.ErrorIs(t, err, domain.ErrNoViewer)
}

package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestShowLogs_Execute_Global(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	logContent := "line1\nline2\nline3\n"
	writeLog(t, domain.GlobalLogPath(dataDir), logContent)
	uc := NewShowLogs(dataDir)

	// Execute
	out, err := uc.Execute(context.Background(), ShowLogsInput{})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.GlobalLogPath(dataDir), out.LogPath)
	assert.Equal(t, logContent, out.Content)
}

func TestShowLogs_Execute_IssueLastLines(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	writeLog(t, domain.IssueLogPath(dataDir, "TES-3"), "line1\nline2\nline3\nline4\nline5\n")
	uc := NewShowLogs(dataDir)

	// Execute
	out, err := uc.Execute(context.Background(), ShowLogsInput{IssueKey: "tes-3", Lines: 2})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.IssueLogPath(dataDir, "TES-3"), out.LogPath)
	assert.Equal(t, "line4\nline5\n", out.Content)
}

func TestShowLogs_Execute_NoLogFile(t *testing.T) {
	uc := NewShowLogs(t.TempDir())

	_, err := uc.Execute(context.Background(), ShowLogsInput{IssueKey: "TES-3"})

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorContains(t, err, "no log file found")
}

func TestShowLogs_Execute_InvalidKey(t *testing.T) {
	uc := NewShowLogs(t.TempDir())

	_, err := uc.Execute(context.Background(), ShowLogsInput{IssueKey: "../etc"})

	assert.ErrorIs(t, err, domain.ErrInvalidIssueKey)
}

package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadAttachments_Execute_All(t *testing.T) {
	// Setup
	session, _ := loggedIn()
	dir := t.TempDir()
	uc := NewDownloadAttachments(session, &testutil.MockStagerFactory{}, domain.NopLogger{})
	set := newSet()
	_, _ = set.Rename("alps.jpg", "mountains")

	// Execute
	out, err := uc.Execute(context.Background(), DownloadAttachmentsInput{Set: set, Dir: dir})

	// Assert
	require.NoError(t, err)
	assert.Len(t, out.Paths, 3)
	data, err := os.ReadFile(filepath.Join(dir, "mountains.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestDownloadAttachments_Execute_Selected(t *testing.T) {
	session, _ := loggedIn()
	dir := t.TempDir()
	uc := NewDownloadAttachments(session, &testutil.MockStagerFactory{}, domain.NopLogger{})

	out, err := uc.Execute(context.Background(), DownloadAttachmentsInput{
		Set:   newSet(),
		Dir:   dir,
		Names: []string{"scan.pdf", "missing.doc"},
	})

	assert.ErrorIs(t, err, domain.ErrAttachmentNotFound)
	assert.Equal(t, []string{filepath.Join(dir, "scan.pdf")}, out.Paths)
}

func TestDownloadAttachments_Execute_NoOverwrite(t *testing.T) {
	session, _ := loggedIn()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("mine"), 0o600))
	uc := NewDownloadAttachments(session, &testutil.MockStagerFactory{}, domain.NopLogger{})

	_, err := uc.Execute(context.Background(), DownloadAttachmentsInput{Set: newSet(), Dir: dir})
	assert.ErrorIs(t, err, domain.ErrFileExists)
	data, _ := os.ReadFile(filepath.Join(dir, "notes.txt"))
	assert.Equal(t, "mine", string(data))

	_, err = uc.Execute(context.Background(), DownloadAttachmentsInput{Set: newSet(), Dir: dir, Force: true})
	require.NoError(t, err)
	data, _ = os.ReadFile(filepath.Join(dir, "notes.txt"))
	assert.Equal(t, "text", string(data))
}

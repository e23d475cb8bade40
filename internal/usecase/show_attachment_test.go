package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowAttachment_Execute(t *testing.T) {
	// Setup
	session, tracker := loggedIn()
	dataDir := t.TempDir()
	viewer := &testutil.MockViewer{}
	uc := NewShowAttachment(session, &testutil.MockStagerFactory{}, viewer, domain.NopLogger{}, dataDir)
	set := newSet()
	_, _ = set.Rename("alps.jpg", "mountains")

	// Execute
	out, err := uc.Execute(context.Background(), ShowAttachmentInput{Set: set, Name: "mountains.jpg"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(domain.ViewDir(dataDir, "TES-3"), "mountains.jpg"), out.Path)
	assert.Equal(t, []string{out.Path}, viewer.Opened)
	data, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	// Second view reuses the cached blob.
	_, err = uc.Execute(context.Background(), ShowAttachmentInput{Set: set, Name: "mountains.jpg"})
	require.NoError(t, err)
	assert.Len(t, tracker.Downloads, 1)
}

func TestShowAttachment_Execute_Errors(t *testing.T) {
	t.Run("unknown attachment", func(t *testing.T) {
		session, _ := loggedIn()
		uc := NewShowAttachment(session, &testutil.MockStagerFactory{}, &testutil.MockViewer{}, domain.NopLogger{}, t.TempDir())

		_, err := uc.Execute(context.Background(), ShowAttachmentInput{Set: newSet(), Name: "nope.png"})

		assert.ErrorIs(t, err, domain.ErrAttachmentNotFound)
	})

	t.Run("viewer fails", func(t *testing.T) {
		session, _ := loggedIn()
		viewer := &testutil.MockViewer{Err: errors.New("exec: \"xdg-open\": not found")}
		uc := NewShowAttachment(session, &testutil.MockStagerFactory{}, viewer, domain.NopLogger{}, t.TempDir())

		_, err := uc.Execute(context.Background(), ShowAttachmentInput{Set: newSet(), Name: "alps.jpg"})

		assert.ErrorContains(t, err, "open viewer")
	})
}

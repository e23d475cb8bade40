package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(list []domain.Attachment) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Filename)
	}
	return out
}

func TestFetchIssue_Execute_Success(t *testing.T) {
	// Setup
	session, tracker := loggedIn()
	uc := NewFetchIssue(session, testutil.NewMockDraftRepository(), domain.NopLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), FetchIssueInput{IssueKey: " tes-3 "})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "TES-3", out.Issue.Key)
	assert.Equal(t, 3, out.Set.Len())
	assert.Equal(t, []string{"alps.jpg", "notes.txt", "scan.pdf"}, names(out.Attachments))
	assert.Empty(t, tracker.Downloads)
	assert.False(t, out.Set.Dirty())
}

func TestFetchIssue_Execute_Prefetch(t *testing.T) {
	session, tracker := loggedIn()
	uc := NewFetchIssue(session, testutil.NewMockDraftRepository(), domain.NopLogger{})

	out, err := uc.Execute(context.Background(), FetchIssueInput{IssueKey: "TES-3", Prefetch: true})

	require.NoError(t, err)
	assert.Len(t, tracker.Downloads, 3)
	blob, ok := out.Set.Blob("100")
	assert.True(t, ok)
	assert.Equal(t, "jpeg", string(blob))
}

func TestFetchIssue_Execute_PrefetchError(t *testing.T) {
	session, tracker := loggedIn()
	tracker.DownloadErr["101"] = errors.New("HTTP 500")
	uc := NewFetchIssue(session, testutil.NewMockDraftRepository(), domain.NopLogger{})

	_, err := uc.Execute(context.Background(), FetchIssueInput{IssueKey: "TES-3", Prefetch: true})

	assert.ErrorContains(t, err, "notes.txt")
}

func TestFetchIssue_Execute_SortAndFilter(t *testing.T) {
	tests := []struct {
		name  string
		in    FetchIssueInput
		names []string
	}{
		{"size", FetchIssueInput{Sort: domain.SortBySize}, []string{"notes.txt", "scan.pdf", "alps.jpg"}},
		{"size desc", FetchIssueInput{Sort: domain.SortBySize, Desc: true}, []string{"alps.jpg", "scan.pdf", "notes.txt"}},
		{"created", FetchIssueInput{Sort: domain.SortByCreated}, []string{"alps.jpg", "scan.pdf", "notes.txt"}},
		{"author", FetchIssueInput{Sort: domain.SortByAuthor}, []string{"notes.txt", "alps.jpg", "scan.pdf"}},
		{"filter", FetchIssueInput{Types: []string{"PDF", ".jpg"}}, []string{"alps.jpg", "scan.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, _ := loggedIn()
			uc := NewFetchIssue(session, testutil.NewMockDraftRepository(), domain.NopLogger{})
			tt.in.IssueKey = "TES-3"

			out, err := uc.Execute(context.Background(), tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.names, names(out.Attachments))
		})
	}
}

func TestFetchIssue_Execute_Errors(t *testing.T) {
	t.Run("invalid key", func(t *testing.T) {
		session, _ := loggedIn()
		uc := NewFetchIssue(session, testutil.NewMockDraftRepository(), domain.NopLogger{})

		_, err := uc.Execute(context.Background(), FetchIssueInput{IssueKey: "not a key"})

		assert.ErrorIs(t, err, domain.ErrInvalidIssueKey)
	})

	t.Run("not logged in", func(t *testing.T) {
		uc := NewFetchIssue(domain.NewSession(), testutil.NewMockDraftRepository(), domain.NopLogger{})

		_, err := uc.Execute(context.Background(), FetchIssueInput{IssueKey: "TES-3"})

		assert.ErrorIs(t, err, domain.ErrNotLoggedIn)
	})

	t.Run("issue not found", func(t *testing.T) {
		session, _ := loggedIn()
		uc := NewFetchIssue(session, testutil.NewMockDraftRepository(), domain.NopLogger{})

		_, err := uc.Execute(context.Background(), FetchIssueInput{IssueKey: "TES-404"})

		assert.ErrorIs(t, err, domain.ErrIssueNotFound)
	})
}

func TestFetchIssue_Execute_RestoresDraft(t *testing.T) {
	// Setup
	session, _ := loggedIn()
	drafts := testutil.NewMockDraftRepository()
	drafts.Drafts["TES-3"] = &domain.Draft{
		IssueKey: "TES-3",
		Renames: []domain.DraftRename{
			{AttachmentID: "100", OldName: "alps.jpg", NewName: "mountains.jpg"},
			{AttachmentID: "999", OldName: "gone.png", NewName: "x.png"},
		},
	}
	uc := NewFetchIssue(session, drafts, domain.NopLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), FetchIssueInput{IssueKey: "TES-3"})

	// Assert
	require.NoError(t, err)
	assert.NoError(t, out.DraftError)
	assert.Equal(t, 1, out.DraftRestored)
	assert.Equal(t, 1, out.DraftSkipped)
	cur, _ := out.Set.Current("100")
	assert.Equal(t, "mountains.jpg", cur)
	assert.Contains(t, names(out.Attachments), "mountains.jpg")
}

func TestFetchIssue_Execute_StaleDraft(t *testing.T) {
	session, _ := loggedIn()
	drafts := testutil.NewMockDraftRepository()
	drafts.Drafts["TES-3"] = &domain.Draft{
		IssueKey: "TES-3",
		Renames:  []domain.DraftRename{{AttachmentID: "100", OldName: "renamed-elsewhere.jpg", NewName: "x.jpg"}},
	}
	logger := &testutil.MockLogger{}
	uc := NewFetchIssue(session, drafts, logger)

	out, err := uc.Execute(context.Background(), FetchIssueInput{IssueKey: "TES-3"})

	require.NoError(t, err)
	assert.ErrorIs(t, out.DraftError, domain.ErrDraftStale)
	assert.False(t, out.Set.Dirty())
}

func TestFetchIssue_Execute_SkipDraft(t *testing.T) {
	session, _ := loggedIn()
	drafts := testutil.NewMockDraftRepository()
	drafts.Drafts["TES-3"] = &domain.Draft{
		IssueKey: "TES-3",
		Renames:  []domain.DraftRename{{AttachmentID: "100", OldName: "alps.jpg", NewName: "mountains.jpg"}},
	}
	uc := NewFetchIssue(session, drafts, domain.NopLogger{})

	out, err := uc.Execute(context.Background(), FetchIssueInput{IssueKey: "TES-3", SkipDraft: true})

	require.NoError(t, err)
	assert.False(t, out.Set.Dirty())
}

package usecase

import (
	"context"
	"testing"

	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscardDraft_Execute(t *testing.T) {
	// Setup
	drafts := testutil.NewMockDraftRepository()
	drafts.Drafts["TES-3"] = &domain.Draft{IssueKey: "TES-3", Renames: []domain.DraftRename{{AttachmentID: "100"}}}
	uc := NewDiscardDraft(drafts, domain.NopLogger{})

	// Execute
	out, err := uc.Execute(context.Background(), DiscardDraftInput{IssueKey: "tes-3"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "TES-3", out.Draft.IssueKey)
	assert.Empty(t, drafts.Drafts)
}

func TestDiscardDraft_Execute_NoDraft(t *testing.T) {
	uc := NewDiscardDraft(testutil.NewMockDraftRepository(), domain.NopLogger{})

	_, err := uc.Execute(context.Background(), DiscardDraftInput{IssueKey: "TES-3"})

	assert.ErrorIs(t, err, domain.ErrNoDraft)
}

func TestListDrafts_Execute(t *testing.T) {
	drafts := testutil.NewMockDraftRepository()
	drafts.Drafts["TES-9"] = &domain.Draft{IssueKey: "TES-9"}
	drafts.Drafts["ABC-1"] = &domain.Draft{IssueKey: "ABC-1"}

	out, err := NewListDrafts(drafts).Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, out.Drafts, 2)
	assert.Equal(t, "ABC-1", out.Drafts[0].IssueKey)
}

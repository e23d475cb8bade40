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

func TestRenameAttachment_Execute(t *testing.T) {
	// Setup
	drafts := testutil.NewMockDraftRepository()
	clock := &testutil.MockClock{NowTime: testNow}
	uc := NewRenameAttachment(drafts, clock, domain.NopLogger{})
	set := newSet()

	// Execute
	out, err := uc.Execute(context.Background(), RenameAttachmentInput{Set: set, Name: "alps.jpg", NewBase: "mountains"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "mountains.jpg", out.NewName)
	assert.Equal(t, 1, out.Pending)
	draft := drafts.Drafts["TES-3"]
	require.NotNil(t, draft)
	assert.Equal(t, testNow, draft.Updated)
	assert.Equal(t, []domain.DraftRename{{AttachmentID: "100", OldName: "alps.jpg", NewName: "mountains.jpg"}}, draft.Renames)
}

func TestRenameAttachment_Execute_Reset(t *testing.T) {
	drafts := testutil.NewMockDraftRepository()
	uc := NewRenameAttachment(drafts, &testutil.MockClock{NowTime: testNow}, domain.NopLogger{})
	set := newSet()
	_, err := uc.Execute(context.Background(), RenameAttachmentInput{Set: set, Name: "alps.jpg", NewBase: "mountains"})
	require.NoError(t, err)

	out, err := uc.Execute(context.Background(), RenameAttachmentInput{Set: set, Name: "mountains.jpg", Reset: true})

	require.NoError(t, err)
	assert.Equal(t, "alps.jpg", out.NewName)
	assert.Zero(t, out.Pending)
	assert.NotContains(t, drafts.Drafts, "TES-3")
}

func TestRenameAttachment_Execute_ResetAll(t *testing.T) {
	drafts := testutil.NewMockDraftRepository()
	uc := NewRenameAttachment(drafts, &testutil.MockClock{NowTime: testNow}, domain.NopLogger{})
	set := domain.NewRenameSet(&domain.Issue{
		Key: "TES-3",
		Attachments: []domain.Attachment{
			{ID: "1", Filename: "a.jpg"},
			{ID: "2", Filename: "c.jpg"},
		},
	}, nil)
	for _, r := range [][2]string{{"a.jpg", "x"}, {"c.jpg", "a"}} {
		_, err := uc.Execute(context.Background(), RenameAttachmentInput{Set: set, Name: r[0], NewBase: r[1]})
		require.NoError(t, err)
	}
	require.Contains(t, drafts.Drafts, "TES-3")

	// x.jpg cannot go back alone while c.jpg holds its name.
	_, err := uc.Execute(context.Background(), RenameAttachmentInput{Set: set, Name: "x.jpg", Reset: true})
	require.ErrorIs(t, err, domain.ErrDuplicateName)

	out, err := uc.Execute(context.Background(), RenameAttachmentInput{Set: set, Reset: true, All: true})

	require.NoError(t, err)
	assert.Zero(t, out.Pending)
	assert.False(t, set.Dirty())
	assert.NotContains(t, drafts.Drafts, "TES-3")
}

func TestRenameAttachment_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      RenameAttachmentInput
		wantErr error
	}{
		{"unknown name", RenameAttachmentInput{Name: "nope.png", NewBase: "x"}, domain.ErrAttachmentNotFound},
		{"empty base", RenameAttachmentInput{Name: "alps.jpg", NewBase: "  "}, domain.ErrEmptyName},
		{"slash", RenameAttachmentInput{Name: "alps.jpg", NewBase: "a/b"}, domain.ErrInvalidName},
		{"duplicate", RenameAttachmentInput{Name: "notes.txt", NewBase: "notes.txt"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewRenameAttachment(testutil.NewMockDraftRepository(), &testutil.MockClock{}, domain.NopLogger{})
			tt.in.Set = newSet()

			_, err := uc.Execute(context.Background(), tt.in)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRenameAttachment_Execute_Duplicate(t *testing.T) {
	issue := testIssue()
	issue.Attachments = append(issue.Attachments, domain.Attachment{ID: "103", Filename: "beach.jpg"})
	set := domain.NewRenameSet(issue, nil)
	uc := NewRenameAttachment(testutil.NewMockDraftRepository(), &testutil.MockClock{}, domain.NopLogger{})

	_, err := uc.Execute(context.Background(), RenameAttachmentInput{Set: set, Name: "alps.jpg", NewBase: "beach"})

	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestRenameAttachment_Execute_DraftSaveFails(t *testing.T) {
	drafts := testutil.NewMockDraftRepository()
	drafts.SaveErr = errors.New("read-only")
	uc := NewRenameAttachment(drafts, &testutil.MockClock{}, domain.NopLogger{})

	_, err := uc.Execute(context.Background(), RenameAttachmentInput{Set: newSet(), Name: "alps.jpg", NewBase: "x"})

	assert.ErrorContains(t, err, "save draft")
}

package usecase

import (
	"context"

	"github.com/runoshun/jira-attach/internal/domain"
)

// DiscardDraftInput contains the parameters for discarding a draft.
type DiscardDraftInput struct {
	IssueKey string
}

// DiscardDraftOutput contains the discarded draft.
type DiscardDraftOutput struct {
	Draft *domain.Draft
}

// DiscardDraft drops the saved unapplied renames of an issue.
type DiscardDraft struct {
	drafts domain.DraftRepository
	logger domain.Logger
}

// NewDiscardDraft creates a new DiscardDraft use case.
func NewDiscardDraft(drafts domain.DraftRepository, logger domain.Logger) *DiscardDraft {
	return &DiscardDraft{drafts: drafts, logger: logger}
}

// Execute removes the draft. Returns ErrNoDraft if there is none.
func (uc *DiscardDraft) Execute(_ context.Context, in DiscardDraftInput) (*DiscardDraftOutput, error) {
	key, err := domain.NormalizeIssueKey(in.IssueKey)
	if err != nil {
		return nil, err
	}
	draft, err := uc.drafts.Get(key)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, domain.ErrNoDraft
	}
	if err := uc.drafts.Delete(key); err != nil {
		return nil, err
	}
	uc.logger.Info(key, "draft", "discarded")
	return &DiscardDraftOutput{Draft: draft}, nil
}

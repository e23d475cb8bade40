package usecase

import (
	"context"

	"github.com/runoshun/jira-attach/internal/domain"
)

// ListDraftsOutput contains all saved drafts.
type ListDraftsOutput struct {
	Drafts []*domain.Draft
}

// ListDrafts lists the issues with unapplied renames.
type ListDrafts struct {
	drafts domain.DraftRepository
}

// NewListDrafts creates a new ListDrafts use case.
func NewListDrafts(drafts domain.DraftRepository) *ListDrafts {
	return &ListDrafts{drafts: drafts}
}

// Execute returns the drafts ordered by issue key.
func (uc *ListDrafts) Execute(_ context.Context) (*ListDraftsOutput, error) {
	drafts, err := uc.drafts.List()
	if err != nil {
		return nil, err
	}
	return &ListDraftsOutput{Drafts: drafts}, nil
}

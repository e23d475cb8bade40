package usecase

import (
	"context"

	"github.com/runoshun/jira-attach/internal/domain"
)

// ListChangesInput contains the parameters for reading the change log.
type ListChangesInput struct {
	IssueKey string // Empty = all issues
	Limit    int    // 0 = no limit
}

// ListChangesOutput contains change records, newest first.
type ListChangesOutput struct {
	Records []domain.ChangeRecord
}

// ListChanges reads the persistent change log.
type ListChanges struct {
	history domain.ChangeLog
}

// NewListChanges creates a new ListChanges use case.
func NewListChanges(history domain.ChangeLog) *ListChanges {
	return &ListChanges{history: history}
}

// Execute returns the matching records.
func (uc *ListChanges) Execute(ctx context.Context, in ListChangesInput) (*ListChangesOutput, error) {
	filter := domain.ChangeFilter{Limit: in.Limit}
	if in.IssueKey != "" {
		key, err := domain.NormalizeIssueKey(in.IssueKey)
		if err != nil {
			return nil, err
		}
		filter.IssueKey = key
	}
	records, err := uc.history.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListChangesOutput{Records: records}, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/jira-attach/internal/domain"
)

// FetchIssueInput contains the parameters for fetching an issue.
// Fields are ordered to minimize memory padding.
type FetchIssueInput struct {
	IssueKey  string           // Case-insensitive, e.g. "tes-3"
	Sort      domain.SortField // Empty = name
	Types     []string         // Only list these file types (optional)
	Desc      bool
	Prefetch  bool // Download every attachment now rather than on demand
	SkipDraft bool // Do not restore a saved draft
}

// FetchIssueOutput contains the fetched issue and its rename state.
type FetchIssueOutput struct {
	Issue         *domain.Issue
	Set           *domain.RenameSet
	Attachments   []domain.Attachment // Current names, sorted and filtered
	DraftError    error               // Why a saved draft could not be restored
	DraftRestored int
	DraftSkipped  int
}

// FetchIssue loads an issue's attachments and starts a rename session.
type FetchIssue struct {
	session *domain.Session
	drafts  domain.DraftRepository
	logger  domain.Logger
}

// NewFetchIssue creates a new FetchIssue use case.
func NewFetchIssue(session *domain.Session, drafts domain.DraftRepository, logger domain.Logger) *FetchIssue {
	return &FetchIssue{
		session: session,
		drafts:  drafts,
		logger:  logger,
	}
}

// Execute fetches the issue, optionally downloads the attachments and
// replays a saved draft.
func (uc *FetchIssue) Execute(ctx context.Context, in FetchIssueInput) (*FetchIssueOutput, error) {
	key, err := domain.NormalizeIssueKey(in.IssueKey)
	if err != nil {
		return nil, err
	}
	tracker, err := uc.session.Tracker()
	if err != nil {
		return nil, err
	}

	issue, err := tracker.GetIssue(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get issue %s: %w", key, err)
	}

	var blobs map[string][]byte
	if in.Prefetch {
		blobs = make(map[string][]byte, len(issue.Attachments))
		for _, a := range issue.Attachments {
			data, err := tracker.Download(ctx, a)
			if err != nil {
				return nil, fmt.Errorf("download %s: %w", a.Filename, err)
			}
			blobs[a.ID] = data
		}
	}

	set := domain.NewRenameSet(issue, blobs)
	out := &FetchIssueOutput{Issue: issue, Set: set}

	if !in.SkipDraft {
		uc.restoreDraft(set, out)
	}

	out.Attachments = ListView(set, in.Sort, in.Desc, in.Types)
	uc.logger.Info(key, "fetch", fmt.Sprintf("%d attachments", len(issue.Attachments)))
	return out, nil
}

func (uc *FetchIssue) restoreDraft(set *domain.RenameSet, out *FetchIssueOutput) {
	key := set.IssueKey()
	draft, err := uc.drafts.Get(key)
	if err != nil {
		out.DraftError = fmt.Errorf("load draft: %w", err)
		return
	}
	if draft == nil {
		return
	}
	restored, skipped, err := draft.ApplyTo(set)
	out.DraftRestored, out.DraftSkipped, out.DraftError = restored, skipped, err
	switch {
	case errors.Is(err, domain.ErrDraftStale):
		uc.logger.Warn(key, "draft", err.Error())
	case restored > 0:
		uc.logger.Info(key, "draft", fmt.Sprintf("restored %d renames, skipped %d", restored, skipped))
	}
}

// ListView returns the set's attachments with current names, filtered by
// types and sorted.
func ListView(set *domain.RenameSet, field domain.SortField, desc bool, types []string) []domain.Attachment {
	list := domain.FilterByType(set.Attachments(), types)
	if field == "" {
		field = domain.SortByName
	}
	domain.SortAttachments(list, field, desc)
	return list
}

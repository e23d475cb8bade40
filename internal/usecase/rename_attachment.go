package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/jira-attach/internal/domain"
)

// RenameAttachmentInput contains the parameters for renaming one attachment.
type RenameAttachmentInput struct {
	Set     *domain.RenameSet
	Name    string // Current name of the attachment
	NewBase string // New base name; the suffix is kept
	Reset   bool   // Restore the original name instead of renaming
	All     bool   // With Reset, restore every attachment; Name is ignored
}

// RenameAttachmentOutput contains the result of a rename.
type RenameAttachmentOutput struct {
	NewName string // Current name after the operation
	Pending int    // Number of unapplied renames in the set
}

// RenameAttachment renames (or resets) one attachment in a rename set and
// saves the pending renames as a draft.
type RenameAttachment struct {
	drafts domain.DraftRepository
	clock  domain.Clock
	logger domain.Logger
}

// NewRenameAttachment creates a new RenameAttachment use case.
func NewRenameAttachment(drafts domain.DraftRepository, clock domain.Clock, logger domain.Logger) *RenameAttachment {
	return &RenameAttachment{
		drafts: drafts,
		clock:  clock,
		logger: logger,
	}
}

// Execute applies the rename to the set. The server is not contacted.
func (uc *RenameAttachment) Execute(_ context.Context, in RenameAttachmentInput) (*RenameAttachmentOutput, error) {
	if in.Set == nil {
		return nil, domain.ErrNotLoggedIn
	}
	if in.Reset && in.All {
		in.Set.ResetAll()
		if err := saveDraft(uc.drafts, in.Set, uc.clock); err != nil {
			return nil, err
		}
		uc.logger.Debug(in.Set.IssueKey(), "rename", "reset all")
		return &RenameAttachmentOutput{}, nil
	}

	att, ok := in.Set.Lookup(in.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, in.Name)
	}

	var newName string
	if in.Reset {
		if err := in.Set.Reset(in.Name); err != nil {
			return nil, err
		}
		newName, _ = in.Set.Current(att.ID)
	} else {
		n, err := in.Set.Rename(in.Name, in.NewBase)
		if err != nil {
			return nil, err
		}
		newName = n
	}

	if err := saveDraft(uc.drafts, in.Set, uc.clock); err != nil {
		return nil, err
	}
	uc.logger.Debug(in.Set.IssueKey(), "rename", fmt.Sprintf("%s -> %s", in.Name, newName))
	return &RenameAttachmentOutput{
		NewName: newName,
		Pending: len(in.Set.Changes()),
	}, nil
}

// saveDraft persists the pending renames of set. No renames removes the draft.
func saveDraft(drafts domain.DraftRepository, set *domain.RenameSet, clock domain.Clock) error {
	if err := drafts.Save(domain.NewDraft(set, clock.Now())); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

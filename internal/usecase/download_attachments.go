package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/jira-attach/internal/domain"
)

// DownloadAttachmentsInput contains the parameters for saving attachments locally.
type DownloadAttachmentsInput struct {
	Set   *domain.RenameSet
	Dir   string   // Target directory
	Names []string // Current names; empty = all
	Force bool     // Overwrite existing files
}

// DownloadAttachmentsOutput lists the files written.
type DownloadAttachmentsOutput struct {
	Paths []string
}

// DownloadAttachments writes attachments to a directory using their current
// names.
type DownloadAttachments struct {
	session *domain.Session
	stagers domain.StagerFactory
	logger  domain.Logger
}

// NewDownloadAttachments creates a new DownloadAttachments use case.
func NewDownloadAttachments(session *domain.Session, stagers domain.StagerFactory, logger domain.Logger) *DownloadAttachments {
	return &DownloadAttachments{
		session: session,
		stagers: stagers,
		logger:  logger,
	}
}

// Execute saves each selected attachment. Existing files are kept unless
// Force is set. Failures do not stop the remaining downloads.
func (uc *DownloadAttachments) Execute(ctx context.Context, in DownloadAttachmentsInput) (*DownloadAttachmentsOutput, error) {
	if in.Set == nil {
		return nil, domain.ErrNotLoggedIn
	}
	tracker, err := uc.session.Tracker()
	if err != nil {
		return nil, err
	}

	type target struct{ id, name string }
	var (
		targets []target
		errs    []error
	)
	if len(in.Names) == 0 {
		for _, a := range in.Set.Attachments() {
			targets = append(targets, target{a.ID, a.Filename})
		}
	} else {
		for _, name := range in.Names {
			att, ok := in.Set.Lookup(name)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, name))
				continue
			}
			cur, _ := in.Set.Current(att.ID)
			targets = append(targets, target{att.ID, cur})
		}
	}

	stager := uc.stagers.Dir(in.Dir, in.Force)
	out := &DownloadAttachmentsOutput{}
	for _, t := range targets {
		data, err := blobFor(ctx, tracker, in.Set, t.id)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.name, err))
			continue
		}
		path, err := stager.Stage(t.name, data)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.name, err))
			continue
		}
		out.Paths = append(out.Paths, path)
	}

	uc.logger.Info(in.Set.IssueKey(), "download", fmt.Sprintf("%d files to %s", len(out.Paths), in.Dir))
	return out, errors.Join(errs...)
}

package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/jira-attach/internal/domain"
)

// ShowAttachmentInput contains the parameters for viewing an attachment.
type ShowAttachmentInput struct {
	Set  *domain.RenameSet
	Name string // Current name of the attachment
}

// ShowAttachmentOutput contains the result of viewing an attachment.
type ShowAttachmentOutput struct {
	Path string // Local copy handed to the viewer
}

// ShowAttachment writes an attachment to the issue's view directory under its
// current name and opens it with the viewer.
type ShowAttachment struct {
	session *domain.Session
	stagers domain.StagerFactory
	viewer  domain.Viewer
	logger  domain.Logger
	dataDir string
}

// NewShowAttachment creates a new ShowAttachment use case.
func NewShowAttachment(
	session *domain.Session,
	stagers domain.StagerFactory,
	viewer domain.Viewer,
	logger domain.Logger,
	dataDir string,
) *ShowAttachment {
	return &ShowAttachment{
		session: session,
		stagers: stagers,
		viewer:  viewer,
		logger:  logger,
		dataDir: dataDir,
	}
}

// Execute downloads the attachment if needed, writes it and starts the viewer.
func (uc *ShowAttachment) Execute(ctx context.Context, in ShowAttachmentInput) (*ShowAttachmentOutput, error) {
	if in.Set == nil {
		return nil, domain.ErrNotLoggedIn
	}
	att, ok := in.Set.Lookup(in.Name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, in.Name)
	}
	tracker, err := uc.session.Tracker()
	if err != nil {
		return nil, err
	}

	data, err := blobFor(ctx, tracker, in.Set, att.ID)
	if err != nil {
		return nil, err
	}

	key := in.Set.IssueKey()
	path, err := uc.stagers.Dir(domain.ViewDir(uc.dataDir, key), true).Stage(in.Name, data)
	if err != nil {
		return nil, err
	}
	if err := uc.viewer.Open(path); err != nil {
		return nil, fmt.Errorf("open viewer: %w", err)
	}
	uc.logger.Debug(key, "view", path)
	return &ShowAttachmentOutput{Path: path}, nil
}

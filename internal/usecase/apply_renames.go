package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/runoshun/jira-attach/internal/domain"
)

// ApplyRenamesInput contains the parameters for applying renames.
type ApplyRenamesInput struct {
	Set    *domain.RenameSet
	DryRun    bool // Report the plan without contacting the server
	KeepDraft bool // The set was not built from the saved draft; leave it alone
}

// ApplyRenamesOutput contains one record per change, in the order applied.
type ApplyRenamesOutput struct {
	BatchID string
	Records []domain.ChangeRecord
	Applied int
	Failed  int
}

// ApplyRenames uploads each renamed attachment under its new name and then
// deletes the original.
// Fields are ordered to minimize memory padding.
type ApplyRenames struct {
	session *domain.Session
	stagers domain.StagerFactory
	history domain.ChangeLog
	drafts  domain.DraftRepository
	clock   domain.Clock
	logger  domain.Logger
	newID   func() string
}

// NewApplyRenames creates a new ApplyRenames use case.
func NewApplyRenames(
	session *domain.Session,
	stagers domain.StagerFactory,
	history domain.ChangeLog,
	drafts domain.DraftRepository,
	clock domain.Clock,
	logger domain.Logger,
) *ApplyRenames {
	return &ApplyRenames{
		session: session,
		stagers: stagers,
		history: history,
		drafts:  drafts,
		clock:   clock,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

// Execute applies every pending change. A failure on one attachment does not
// stop the others; the returned error joins all failures and the output
// still lists every record. The original is deleted only after its
// replacement was uploaded.
func (uc *ApplyRenames) Execute(ctx context.Context, in ApplyRenamesInput) (*ApplyRenamesOutput, error) {
	if in.Set == nil {
		return nil, domain.ErrNotLoggedIn
	}
	changes := in.Set.Changes()
	if len(changes) == 0 {
		return nil, domain.ErrNoChanges
	}

	key := in.Set.IssueKey()
	out := &ApplyRenamesOutput{BatchID: uc.newID()}

	if in.DryRun {
		for _, c := range changes {
			out.Records = append(out.Records, uc.newRecord(out.BatchID, key, c, domain.ChangePlanned))
		}
		return out, nil
	}

	tracker, err := uc.session.Tracker()
	if err != nil {
		return nil, err
	}

	stager := uc.stagers.Temp()
	defer func() {
		if err := stager.Cleanup(); err != nil {
			uc.logger.Warn(key, "apply", fmt.Sprintf("cleanup staging: %v", err))
		}
	}()

	var errs []error
	for _, c := range changes {
		rec := uc.newRecord(out.BatchID, key, c, domain.ChangeApplied)
		newID, err := uc.applyOne(ctx, tracker, stager, in.Set, c)
		rec.NewAttachmentID = newID
		if err != nil {
			err = fmt.Errorf("%s -> %s: %w", c.OldName, c.NewName, err)
			rec.Status = domain.ChangeFailed
			rec.Error = err.Error()
			errs = append(errs, err)
			out.Failed++
			uc.logger.Error(key, "apply", err.Error())
		} else {
			out.Applied++
			uc.logger.Info(key, "apply", fmt.Sprintf("%s -> %s (attachment %s replaced by %s)", c.OldName, c.NewName, c.AttachmentID, newID))
		}

		stored, err := uc.history.Record(ctx, rec)
		if err != nil {
			errs = append(errs, fmt.Errorf("record change: %w", err))
			stored = rec
		}
		out.Records = append(out.Records, stored)
	}

	if out.Failed == 0 && !in.KeepDraft {
		if err := uc.drafts.Delete(key); err != nil {
			errs = append(errs, fmt.Errorf("delete draft: %w", err))
		}
	}
	return out, errors.Join(errs...)
}

// applyOne uploads the renamed copy and deletes the original. It returns the
// ID of the uploaded attachment even if the delete fails.
func (uc *ApplyRenames) applyOne(
	ctx context.Context,
	tracker domain.Tracker,
	stager domain.Stager,
	set *domain.RenameSet,
	c domain.Change,
) (string, error) {
	data, err := blobFor(ctx, tracker, set, c.AttachmentID)
	if err != nil {
		return "", err
	}

	path, err := stager.Stage(c.NewName, data)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open staged file: %w", err)
	}
	defer func() { _ = f.Close() }()

	att, err := tracker.AddAttachment(ctx, set.IssueKey(), c.NewName, f)
	if err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}

	if err := tracker.DeleteAttachment(ctx, c.AttachmentID); err != nil {
		return att.ID, fmt.Errorf("delete original (new copy %s kept): %w", att.ID, err)
	}
	return att.ID, nil
}

func (uc *ApplyRenames) newRecord(batchID, key string, c domain.Change, status domain.ChangeStatus) domain.ChangeRecord {
	return domain.ChangeRecord{
		Time:         uc.clock.Now(),
		BatchID:      batchID,
		IssueKey:     key,
		AttachmentID: c.AttachmentID,
		OldName:      c.OldName,
		NewName:      c.NewName,
		Status:       status,
	}
}

// blobFor returns the contents of an attachment, downloading and caching
// them in set when they were not fetched yet.
func blobFor(ctx context.Context, tracker domain.Tracker, set *domain.RenameSet, id string) ([]byte, error) {
	if data, ok := set.Blob(id); ok {
		return data, nil
	}
	var att domain.Attachment
	found := false
	for _, a := range set.Originals() {
		if a.ID == id {
			att, found = a, true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: id %s", domain.ErrAttachmentNotFound, id)
	}
	data, err := tracker.Download(ctx, att)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	set.SetBlob(id, data)
	return data, nil
}

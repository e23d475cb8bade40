package domain

import (
	"errors"
	"time"
)

// Draft holds renames that were made but not yet applied, so they survive
// closing the program.
type Draft struct {
	Updated  time.Time     `json:"updated"`
	IssueKey string        `json:"issueKey"`
	Renames  []DraftRename `json:"renames"`
}

// DraftRename is one pending rename, keyed by attachment ID.
type DraftRename struct {
	AttachmentID string `json:"attachmentId"`
	OldName      string `json:"oldName"`
	NewName      string `json:"newName"`
}

// NewDraft captures the pending changes of a RenameSet.
func NewDraft(set *RenameSet, now time.Time) *Draft {
	changes := set.Changes()
	d := &Draft{
		IssueKey: set.IssueKey(),
		Updated:  now,
		Renames:  make([]DraftRename, 0, len(changes)),
	}
	for _, c := range changes {
		d.Renames = append(d.Renames, DraftRename(c))
	}
	return d
}

// ApplyTo replays the draft onto set. Renames whose attachment is gone or
// whose original name changed on the server are skipped. Renames blocked by
// another pending rename are retried until no progress is made, so chains
// restore in any order. It returns the number of renames restored and
// skipped. ErrDraftStale is returned when nothing could be restored.
func (d *Draft) ApplyTo(set *RenameSet) (restored, skipped int, err error) {
	var pending []DraftRename
	for _, r := range d.Renames {
		orig, ok := set.Original(r.AttachmentID)
		if !ok || !sameName(orig, r.OldName) {
			skipped++
			continue
		}
		pending = append(pending, r)
	}

	var errs []error
	for len(pending) > 0 {
		var next []DraftRename
		var lastErrs []error
		for _, r := range pending {
			base, _ := SplitFilename(r.NewName)
			if _, err := set.RenameByID(r.AttachmentID, base); err != nil {
				next = append(next, r)
				lastErrs = append(lastErrs, err)
				continue
			}
			restored++
		}
		if len(next) == len(pending) {
			skipped += len(next)
			errs = lastErrs
			break
		}
		pending = next
	}

	if restored == 0 && len(d.Renames) > 0 {
		return 0, skipped, errors.Join(append([]error{ErrDraftStale}, errs...)...)
	}
	return restored, skipped, nil
}

package domain

import "time"

// ChangeStatus is the outcome of applying one rename.
type ChangeStatus string

// Change statuses.
const (
	ChangeApplied ChangeStatus = "applied"
	ChangeFailed  ChangeStatus = "failed"
	ChangePlanned ChangeStatus = "planned" // Dry run; never stored
)

// ChangeRecord is an entry of the change log.
// Fields are ordered to minimize memory padding.
type ChangeRecord struct {
	Time            time.Time    `json:"time" yaml:"time"`
	BatchID         string       `json:"batchId" yaml:"batch_id"` // Shared by all records of one apply
	IssueKey        string       `json:"issueKey" yaml:"issue_key"`
	AttachmentID    string       `json:"attachmentId" yaml:"attachment_id"`                           // ID of the original attachment
	NewAttachmentID string       `json:"newAttachmentId,omitempty" yaml:"new_attachment_id,omitempty"` // ID of the uploaded replacement, if any
	OldName         string       `json:"oldName" yaml:"old_name"`
	NewName         string       `json:"newName" yaml:"new_name"`
	Status          ChangeStatus `json:"status" yaml:"status"`
	Error           string       `json:"error,omitempty" yaml:"error,omitempty"`
	ID              int64        `json:"id" yaml:"id"`
}

// ChangeFilter selects change log entries.
type ChangeFilter struct {
	IssueKey string // Empty = all issues
	Limit    int    // 0 = no limit
}

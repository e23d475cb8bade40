// Package domain contains the core types, ports and rename rules of jira-attach.
package domain

import (
	"context"
	"io"
	"time"
)

// Tracker is an authenticated connection to an issue tracker.
type Tracker interface {
	// Myself returns the authenticated user. It is used to verify credentials.
	Myself(ctx context.Context) (*User, error)

	// GetIssue retrieves an issue with its attachment metadata.
	// Returns ErrIssueNotFound if the issue does not exist.
	GetIssue(ctx context.Context, key string) (*Issue, error)

	// Download retrieves the contents of an attachment.
	Download(ctx context.Context, att Attachment) ([]byte, error)

	// AddAttachment uploads a file to an issue and returns the created attachment.
	AddAttachment(ctx context.Context, issueKey, filename string, r io.Reader) (*Attachment, error)

	// DeleteAttachment removes an attachment by ID.
	DeleteAttachment(ctx context.Context, id string) error
}

// TrackerFactory creates Tracker connections.
type TrackerFactory interface {
	// Connect builds a Tracker for the profile. It does not contact the server.
	Connect(p Profile) (Tracker, error)
}

// ChangeLog persists the history of applied renames.
type ChangeLog interface {
	// Record appends a change record and returns it with its ID set.
	Record(ctx context.Context, rec ChangeRecord) (ChangeRecord, error)

	// List returns change records, newest first.
	List(ctx context.Context, filter ChangeFilter) ([]ChangeRecord, error)
}

// DraftRepository persists unapplied renames per issue.
type DraftRepository interface {
	// Get returns the draft for an issue, or nil if none exists.
	Get(issueKey string) (*Draft, error)

	// Save creates or replaces the draft of an issue.
	Save(draft *Draft) error

	// Delete removes the draft of an issue. Missing drafts are not an error.
	Delete(issueKey string) error

	// List returns all drafts ordered by issue key.
	List() ([]*Draft, error)
}

// Stager writes attachment contents to local files.
type Stager interface {
	// Stage writes data to a file called name and returns its path.
	Stage(name string, data []byte) (string, error)

	// Cleanup removes everything staged so far.
	Cleanup() error
}

// StagerFactory creates staging areas.
type StagerFactory interface {
	// Temp returns an area in a fresh temporary directory.
	Temp() Stager

	// Dir returns an area writing into dir. Unless overwrite is set,
	// staging over an existing file fails with ErrFileExists.
	Dir(dir string, overwrite bool) Stager
}

// Viewer opens a local file with an external program.
type Viewer interface {
	Open(path string) error
}

// CommandExecutor runs external commands.
type CommandExecutor interface {
	// Start launches the command without waiting for it to finish.
	Start(cmd *ExecCommand) error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the configuration with defaults, file and environment merged.
	Load() (*Config, error)
}

// ConfigManager manages the configuration file.
type ConfigManager interface {
	// Path returns the configuration file path.
	Path() string

	// Exists reports whether the configuration file exists.
	Exists() bool

	// Info returns the path and raw content of the configuration file.
	Info() ConfigInfo

	// Init writes the configuration template.
	// Returns ErrConfigExists if the file exists and force is false.
	Init(force bool) error

	// SaveProfile stores server, username and (sealed) password,
	// keeping the other settings of the file.
	SaveProfile(p Profile) error
}

// Logger writes operational logs.
// issueKey scopes an entry to one issue; empty means global only.
type Logger interface {
	Info(issueKey, category, msg string)
	Debug(issueKey, category, msg string)
	Warn(issueKey, category, msg string)
	Error(issueKey, category, msg string)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// NopLogger discards all log entries.
type NopLogger struct{}

func (NopLogger) Info(_, _, _ string)  {}
func (NopLogger) Debug(_, _, _ string) {}
func (NopLogger) Warn(_, _, _ string)  {}
func (NopLogger) Error(_, _, _ string) {}

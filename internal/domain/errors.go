package domain

import "errors"

// Domain errors.
var (
	ErrNoServer           = errors.New("no JIRA server configured")
	ErrLoginFailed        = errors.New("login failed")
	ErrNotLoggedIn        = errors.New("not logged in")
	ErrInvalidIssueKey    = errors.New("invalid issue key")
	ErrIssueNotFound      = errors.New("issue not found")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrInvalidName        = errors.New("name contains invalid characters")
	ErrDuplicateName      = errors.New("another attachment already has this name")
	ErrNoChanges          = errors.New("no renamed attachments")
	ErrFileExists         = errors.New("file already exists")
	ErrConfigExists       = errors.New("config file already exists")
	ErrNoDraft            = errors.New("no saved draft for issue")
	ErrDraftStale         = errors.New("saved draft no longer matches the issue")
	ErrNoViewer           = errors.New("no viewer command configured")
)

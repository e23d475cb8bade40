package tui

import (
	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/usecase"
)

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgLoggedIn is sent after a successful login.
type MsgLoggedIn struct {
	User    *domain.User
	Profile domain.Profile
}

func (MsgLoggedIn) sealed() {}

// MsgLoginFailed is sent when a login attempt fails. The form stays open.
type MsgLoginFailed struct {
	Err error
}

func (MsgLoginFailed) sealed() {}

// MsgIssueLoaded is sent when an issue and its attachments are fetched.
type MsgIssueLoaded struct {
	Out *usecase.FetchIssueOutput
}

func (MsgIssueLoaded) sealed() {}

// MsgRenamed is sent after a rename or undo changed the rename set.
type MsgRenamed struct {
	NewName string
	Pending int
}

func (MsgRenamed) sealed() {}

// MsgApplied is sent when an apply finished, successfully or not.
type MsgApplied struct {
	Out *usecase.ApplyRenamesOutput
	Err error
}

func (MsgApplied) sealed() {}

// MsgViewed is sent after an attachment was handed to the viewer.
type MsgViewed struct {
	Path string
}

func (MsgViewed) sealed() {}

// MsgChangesLoaded is sent when the change log is read.
type MsgChangesLoaded struct {
	Records []domain.ChangeRecord
}

func (MsgChangesLoaded) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError is sent to clear the current error message.
type MsgClearError struct{}

func (MsgClearError) sealed() {}

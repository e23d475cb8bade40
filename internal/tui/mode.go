// Package tui provides the terminal user interface for jira-attach.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeLogin      Mode = iota // Login form
	ModeIssueKey               // Issue key input
	ModeNormal                 // Attachment list navigation
	ModeRename                 // Inline base-name input
	ModeFilter                 // File type filter input
	ModeConfirm                // Apply confirmation dialog
	ModeChangeLog              // Change log view
	ModeHelp                   // Help overlay
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeLogin:
		return "login"
	case ModeIssueKey:
		return "issue_key"
	case ModeNormal:
		return "normal"
	case ModeRename:
		return "rename"
	case ModeFilter:
		return "filter"
	case ModeConfirm:
		return "confirm"
	case ModeChangeLog:
		return "change_log"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeLogin, ModeIssueKey, ModeRename, ModeFilter:
		return true
	case ModeNormal, ModeConfirm, ModeChangeLog, ModeHelp:
		return false
	}
	return false
}

// LoginField identifies the focused input of the login form.
type LoginField int

const (
	FieldServer LoginField = iota
	FieldUsername
	FieldPassword
)

// next returns the field after f, wrapping around.
func (f LoginField) next() LoginField {
	return (f + 1) % 3
}

// prev returns the field before f, wrapping around.
func (f LoginField) prev() LoginField {
	return (f + 2) % 3
}

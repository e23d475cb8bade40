package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeLogin, "login"},
		{ModeIssueKey, "issue_key"},
		{ModeNormal, "normal"},
		{ModeRename, "rename"},
		{ModeFilter, "filter"},
		{ModeConfirm, "confirm"},
		{ModeChangeLog, "change_log"},
		{ModeHelp, "help"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.String())
		})
	}
}

func TestMode_IsInputMode(t *testing.T) {
	tests := []struct {
		mode Mode
		want bool
	}{
		{ModeLogin, true},
		{ModeIssueKey, true},
		{ModeNormal, false},
		{ModeRename, true},
		{ModeFilter, true},
		{ModeConfirm, false},
		{ModeChangeLog, false},
		{ModeHelp, false},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.IsInputMode())
		})
	}
}

func TestLoginField_Cycle(t *testing.T) {
	assert.Equal(t, FieldUsername, FieldServer.next())
	assert.Equal(t, FieldPassword, FieldUsername.next())
	assert.Equal(t, FieldServer, FieldPassword.next())

	assert.Equal(t, FieldPassword, FieldServer.prev())
	assert.Equal(t, FieldServer, FieldUsername.prev())
}

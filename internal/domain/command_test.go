package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewViewerCommand(t *testing.T) {
	tests := []struct {
		name        string
		commandLine string
		wantProgram string
		wantArgs    []string
	}{
		{"single program", "xdg-open", "xdg-open", []string{"/tmp/v/a.png"}},
		{"program with args", "rundll32 url.dll,FileProtocolHandler", "rundll32", []string{"url.dll,FileProtocolHandler", "/tmp/v/a.png"}},
		{"extra spaces", "  open   -a  Preview ", "open", []string{"-a", "Preview", "/tmp/v/a.png"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := NewViewerCommand(tt.commandLine, "/tmp/v/a.png")
			require.NoError(t, err)
			assert.Equal(t, tt.wantProgram, cmd.Program)
			assert.Equal(t, tt.wantArgs, cmd.Args)
			assert.Equal(t, "/tmp/v", cmd.Dir)
		})
	}
}

func TestNewViewerCommand_Blank(t *testing.T) {
	_, err := NewViewerCommand("   ", "/tmp/a.png")
	assert.ErrorIs(t, err, ErrNoViewer)
}

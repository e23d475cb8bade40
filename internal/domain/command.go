package domain

import (
	"path/filepath"
	"strings"
)

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
}

// NewCommand creates an ExecCommand.
func NewCommand(program string, args []string, dir string) *ExecCommand {
	return &ExecCommand{Program: program, Args: args, Dir: dir}
}

// NewViewerCommand builds the command that opens path with commandLine.
// commandLine is split on whitespace; path is appended as the last argument.
// Returns ErrNoViewer if commandLine is blank.
func NewViewerCommand(commandLine, path string) (*ExecCommand, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, ErrNoViewer
	}
	args := append(fields[1:len(fields):len(fields)], path)
	return NewCommand(fields[0], args, filepath.Dir(path)), nil
}

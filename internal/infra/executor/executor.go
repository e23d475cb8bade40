// Package executor provides command execution functionality.
package executor

import (
	"os/exec"

	"github.com/runoshun/jira-attach/internal/domain"
)

// Client implements domain.CommandExecutor interface.
type Client struct{}

// NewClient creates a new command executor client.
func NewClient() *Client {
	return &Client{}
}

// Ensure Client implements domain.CommandExecutor interface.
var _ domain.CommandExecutor = (*Client)(nil)

// Start launches the command and reaps it in the background.
func (c *Client) Start(cmd *domain.ExecCommand) error {
	// #nosec G204 - the program comes from the user's own configuration
	execCmd := exec.Command(cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	if err := execCmd.Start(); err != nil {
		return err
	}
	go func() { _ = execCmd.Wait() }()
	return nil
}

// Execute runs the command and returns its combined output.
func (c *Client) Execute(cmd *domain.ExecCommand) ([]byte, error) {
	// #nosec G204 - the program comes from the user's own configuration
	execCmd := exec.Command(cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	return execCmd.CombinedOutput()
}

// Viewer opens files with the configured viewer command.
type Viewer struct {
	exec    domain.CommandExecutor
	command string
}

// Ensure Viewer implements domain.Viewer interface.
var _ domain.Viewer = (*Viewer)(nil)

// NewViewer creates a Viewer running command through exec.
func NewViewer(exec domain.CommandExecutor, command string) *Viewer {
	return &Viewer{exec: exec, command: command}
}

// Open starts the viewer on path without waiting for it to exit.
func (v *Viewer) Open(path string) error {
	cmd, err := domain.NewViewerCommand(v.command, path)
	if err != nil {
		return err
	}
	return v.exec.Start(cmd)
}

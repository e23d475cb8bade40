// Package cli provides the command-line interface for jira-attach.
package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/tui"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupSetup   = "setup"
	groupIssue   = "issue"
	groupHistory = "history"
)

// ProfileFlag is the persistent flag selecting the profile (config file).
// main reads it before the container is built.
const ProfileFlag = "profile"

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for jira-attach.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var issueKey string

	root := &cobra.Command{
		Use:   "jira-attach",
		Short: "Rename JIRA issue attachments",
		Long: `jira-attach logs into a JIRA server, lists the attachments of an issue,
renames them and re-uploads the renamed files. Every applied rename is
recorded in a local change log.

Without a subcommand the interactive terminal UI is started.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}
			if c.LoadErr != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: config not loaded, using defaults: %v\n", c.LoadErr)
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c, issueKey)
		},
	}

	root.PersistentFlags().String(ProfileFlag, "", "Profile (config file) to use instead of the default")
	root.Flags().StringVarP(&issueKey, "issue", "i", "", "Open this issue right after login")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupIssue, Title: "Attachment Commands:"},
		&cobra.Group{ID: groupHistory, Title: "History Commands:"},
	)

	// Setup commands
	loginCmd := newLoginCommand(c)
	loginCmd.GroupID = groupSetup

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	// Attachment commands
	listCmd := newListCommand(c)
	listCmd.GroupID = groupIssue

	renameCmd := newRenameCommand(c)
	renameCmd.GroupID = groupIssue

	applyCmd := newApplyCommand(c)
	applyCmd.GroupID = groupIssue

	downloadCmd := newDownloadCommand(c)
	downloadCmd.GroupID = groupIssue

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupIssue

	draftCmd := newDraftCommand(c)
	draftCmd.GroupID = groupIssue

	// History commands
	historyCmd := newHistoryCommand(c)
	historyCmd.GroupID = groupHistory

	logsCmd := newLogsCommand(c)
	logsCmd.GroupID = groupHistory

	root.AddCommand(
		loginCmd,
		configCmd,
		listCmd,
		renameCmd,
		applyCmd,
		downloadCmd,
		showCmd,
		draftCmd,
		historyCmd,
		logsCmd,
	)

	return root
}

// launchTUI runs the interactive UI until the user quits.
func launchTUI(c *app.Container, issueKey string) error {
	model := tui.New(c, issueKey)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

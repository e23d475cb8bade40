package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// Issue
	Fetch   key.Binding // Enter an issue key and fetch it
	Refresh key.Binding // Reload the current issue

	// Renaming
	Rename  key.Binding // Rename the selected attachment
	Undo    key.Binding // Restore the selected attachment's name
	UndoAll key.Binding // Restore every name
	Apply   key.Binding // Upload renamed attachments

	// View
	Sort      key.Binding // Cycle sort field
	Reverse   key.Binding // Toggle descending order
	Filter    key.Binding // Filter by file type
	View      key.Binding // Open the selected attachment
	ChangeLog key.Binding // Show the change log
	Fold      key.Binding // Hide the original-names panel
	Unfold    key.Binding // Show the original-names panel
	Help      key.Binding // Show help

	// General
	Quit    key.Binding // Quit application
	Escape  key.Binding // Cancel/back
	Enter   key.Binding // Submit input
	Confirm key.Binding // Confirm action (in confirm mode)
	Tab     key.Binding // Next field
	BackTab key.Binding // Previous field
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l", "pgdown"),
			key.WithHelp("→/l", "next page"),
		),
		Fetch: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "open issue"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R", "ctrl+r"),
			key.WithHelp("R", "reload"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r", "enter"),
			key.WithHelp("r/enter", "rename"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo rename"),
		),
		UndoAll: key.NewBinding(
			key.WithKeys("U"),
			key.WithHelp("U", "undo all"),
		),
		Apply: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "apply"),
		),
		Sort: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sort"),
		),
		Reverse: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "reverse"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter type"),
		),
		View: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view"),
		),
		ChangeLog: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "change log"),
		),
		Fold: key.NewBinding(
			key.WithKeys("<"),
			key.WithHelp("<", "fold originals"),
		),
		Unfold: key.NewBinding(
			key.WithKeys(">"),
			key.WithHelp(">", "unfold originals"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		BackTab: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev field"),
		),
	}
}

// ShortHelp returns keybindings to show in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fetch, k.Rename, k.Apply, k.ChangeLog, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.Fetch, k.Refresh, k.View, k.ChangeLog},
		{k.Rename, k.Undo, k.UndoAll, k.Apply},
		{k.Sort, k.Reverse, k.Filter, k.Fold, k.Unfold},
		{k.Help, k.Escape, k.Quit},
	}
}

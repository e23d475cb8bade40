package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/jira-attach/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	// Base colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	// Title/text colors
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color
	DescSelected  lipgloss.Color

	// Rename colors
	Renamed  lipgloss.Color
	Original lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	DescNormal:    lipgloss.Color("#636E72"), // Gray
	DescSelected:  lipgloss.Color("#B2BEC3"), // Light gray

	Renamed:  lipgloss.Color("#FDCB6E"), // Yellow
	Original: lipgloss.Color("#74B9FF"), // Light blue
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	// App
	App lipgloss.Style

	// Header
	Header     lipgloss.Style
	HeaderText lipgloss.Style
	IssueKey   lipgloss.Style

	// Attachment list
	SelectionIndicator lipgloss.Style
	ItemName           lipgloss.Style
	ItemNameSelected   lipgloss.Style
	ItemRenamed        lipgloss.Style
	ItemMeta           lipgloss.Style
	ItemMetaSelected   lipgloss.Style

	// Original-names panel
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style
	Original   lipgloss.Style

	// Change log
	StatusApplied lipgloss.Style
	StatusFailed  lipgloss.Style
	StatusPlanned lipgloss.Style

	// Help
	Help     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style

	// Input
	Input       lipgloss.Style
	InputPrompt lipgloss.Style
	InputLabel  lipgloss.Style

	// Messages
	ErrorMsg lipgloss.Style
	Notice   lipgloss.Style
	Spinner  lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		IssueKey: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),

		SelectionIndicator: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected),

		ItemName: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		ItemNameSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		ItemRenamed: lipgloss.NewStyle().
			Foreground(Colors.Renamed).
			Italic(true),

		ItemMeta: lipgloss.NewStyle().
			Foreground(Colors.DescNormal),

		ItemMetaSelected: lipgloss.NewStyle().
			Foreground(Colors.DescSelected),

		Panel: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		PanelTitle: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Bold(true),

		Original: lipgloss.NewStyle().
			Foreground(Colors.Original),

		StatusApplied: lipgloss.NewStyle().
			Foreground(Colors.Success),

		StatusFailed: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		StatusPlanned: lipgloss.NewStyle().
			Foreground(Colors.Warning),

		Help: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Muted),

		HelpKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary),

		DialogPrompt: lipgloss.NewStyle(),

		Input: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Primary),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		InputLabel: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(10),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		Notice: lipgloss.NewStyle().
			Foreground(Colors.Success),

		Spinner: lipgloss.NewStyle().
			Foreground(Colors.Secondary),
	}
}

// StatusStyle returns the style for a change status.
func (s Styles) StatusStyle(status domain.ChangeStatus) lipgloss.Style {
	switch status {
	case domain.ChangeApplied:
		return s.StatusApplied
	case domain.ChangeFailed:
		return s.StatusFailed
	case domain.ChangePlanned:
		return s.StatusPlanned
	default:
		return s.ItemMeta
	}
}

// StatusIcon returns an icon for a change status.
func StatusIcon(status domain.ChangeStatus) string {
	switch status {
	case domain.ChangeApplied:
		return "✓"
	case domain.ChangeFailed:
		return "✗"
	case domain.ChangePlanned:
		return "○"
	default:
		return "?"
	}
}

package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusLineInfo contains information for rendering the status line.
// Fields are ordered to minimize memory padding.
type StatusLineInfo struct {
	Pagination string // Optional pagination info (e.g., "1/3")
	Pending    string // Optional pending rename count
	KeyHints   []KeyHint
	Mode       Mode
}

// KeyHint represents a key and its description.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusLine renders a unified status line at the bottom of the screen.
// Fields are ordered to minimize memory padding.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a new StatusLine with the given width and styles.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{
		width:  width,
		styles: styles,
	}
}

// SetWidth updates the status line width.
func (s *StatusLine) SetWidth(width int) {
	s.width = width
}

// Render renders the status line with the given info.
func (s *StatusLine) Render(info StatusLineInfo) string {
	keyStyle := s.styles.FooterKey
	mutedStyle := lipgloss.NewStyle().Foreground(Colors.Muted)

	hints := make([]string, 0, len(info.KeyHints))
	for _, h := range info.KeyHints {
		hints = append(hints, keyStyle.Render(h.Key)+" "+h.Desc)
	}
	content := strings.Join(hints, "  ")

	right := make([]string, 0, 3)
	if info.Pending != "" {
		right = append(right, s.styles.ItemRenamed.Render(info.Pending))
	}
	if info.Pagination != "" {
		right = append(right, info.Pagination)
	}
	right = append(right, mutedStyle.Render("mode:"+info.Mode.String()))
	rightContent := strings.Join(right, "  ")

	contentWidth := s.width - 2 // Account for padding
	rightLen := lipgloss.Width(rightContent)
	contentLen := lipgloss.Width(content)

	// Truncate content if needed
	maxContentWidth := contentWidth - rightLen - 2
	if contentLen > maxContentWidth {
		if maxContentWidth <= 3 {
			content = "..."
		} else {
			truncateStyle := lipgloss.NewStyle().MaxWidth(maxContentWidth - 3)
			content = truncateStyle.Render(content) + "..."
		}
		contentLen = lipgloss.Width(content)
	}

	spacing := max(contentWidth-contentLen-rightLen, 1)

	fullContent := content + strings.Repeat(" ", spacing) + rightContent
	return s.styles.Footer.Width(s.width).Render(fullContent)
}

// GetStatusInfo returns status line info for the TUI model.
func (m *Model) GetStatusInfo() StatusLineInfo {
	info := StatusLineInfo{Mode: m.mode}
	if n := len(m.changes); n > 0 {
		info.Pending = pluralize(n, "pending rename")
	}

	switch m.mode {
	case ModeNormal:
		if m.attList.Paginator.TotalPages > 1 {
			info.Pagination = m.attList.Paginator.View()
		}
		info.KeyHints = []KeyHint{
			{Key: "j/k", Desc: "nav"},
			{Key: "r", Desc: "rename"},
			{Key: "u", Desc: "undo"},
			{Key: "a", Desc: "apply"},
			{Key: "v", Desc: "view"},
			{Key: "g", Desc: "issue"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	case ModeIssueKey, ModeFilter:
		info.KeyHints = []KeyHint{
			{Key: "enter", Desc: "apply"},
			{Key: "esc", Desc: "cancel"},
		}
	case ModeRename:
		info.KeyHints = []KeyHint{
			{Key: "enter", Desc: "rename"},
			{Key: "esc", Desc: "cancel"},
		}
	case ModeChangeLog:
		info.KeyHints = []KeyHint{
			{Key: "j/k", Desc: "scroll"},
			{Key: "esc", Desc: "back"},
		}
	case ModeLogin, ModeConfirm, ModeHelp:
		// Hints are shown in the dialogs themselves
		info.KeyHints = nil
	}

	return info
}

// pluralize renders "1 item" or "n items".
func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/runoshun/jira-attach/internal/domain"
)

const timeLayout = "2006-01-02 15:04"

type attachmentItem struct {
	att      domain.Attachment // Filename is the current name
	original string            // Set when renamed
}

func (a attachmentItem) FilterValue() string {
	return a.att.Filename
}

// escapeNewlines replaces newline characters with spaces for single-line display.
func escapeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// truncate shortens s to width display cells.
func truncate(s string, width int) string {
	if width < 4 {
		width = 4
	}
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "...")
	}
	return s
}

// padRight fills a styled line with spaces up to width display cells.
func padRight(line string, width int) string {
	if w := lipgloss.Width(line); w < width {
		return line + fmt.Sprintf("%*s", width-w, "")
	}
	return line
}

// metaLine describes the uploader, creation time and size of a.
func metaLine(a domain.Attachment) string {
	author := a.Author
	if author == "" {
		author = "unknown"
	}
	created := "-"
	if !a.Created.IsZero() {
		created = a.Created.Local().Format(timeLayout)
	}
	return fmt.Sprintf("%s · %s · %s", author, created, humanize.Bytes(uint64(max(a.Size, 0))))
}

type attachmentDelegate struct {
	styles Styles
}

func newAttachmentDelegate(styles Styles) attachmentDelegate {
	return attachmentDelegate{styles: styles}
}

func (d attachmentDelegate) Height() int {
	return 2
}

func (d attachmentDelegate) Spacing() int {
	return 0
}

func (d attachmentDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d attachmentDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ai, ok := item.(attachmentItem)
	if !ok {
		return
	}
	selected := index == m.Index()
	listWidth := m.Width()

	indicator := " "
	nameStyle := d.styles.ItemName
	metaStyle := d.styles.ItemMeta
	if selected {
		indicator = ">"
		nameStyle = d.styles.ItemNameSelected
		metaStyle = d.styles.ItemMetaSelected
	}

	name := truncate(escapeNewlines(ai.att.Filename), listWidth-6)
	line := "  " + d.styles.SelectionIndicator.Render(indicator) + " " + nameStyle.Render(name)
	if ai.original != "" {
		line += " " + d.styles.ItemRenamed.Render("*")
	}
	_, _ = fmt.Fprintln(w, padRight(line, listWidth))

	meta := "    " + truncate(metaLine(ai.att), listWidth-6)
	_, _ = fmt.Fprint(w, metaStyle.Render(padRight(meta, listWidth)))
}

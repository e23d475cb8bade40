package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/jira-attach/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeLogin:
		content = m.viewLogin()
	case ModeHelp:
		content = m.viewHelp()
	case ModeChangeLog:
		content = m.viewChangeLog()
	case ModeIssueKey, ModeNormal, ModeRename, ModeFilter, ModeConfirm:
		content = m.viewMain()
	}

	return m.styles.App.Render(content)
}

// viewLogin renders the login form.
func (m *Model) viewLogin() string {
	title := m.styles.DialogTitle.Render("Log in to JIRA")

	fields := []struct {
		label string
		view  string
	}{
		{"Server", m.serverInput.View()},
		{"Username", m.userInput.View()},
		{"Password", m.passInput.View()},
	}
	rows := make([]string, 0, len(fields))
	for i, f := range fields {
		label := m.styles.InputLabel.Render(f.label)
		if LoginField(i) == m.loginField {
			label = m.styles.InputPrompt.Render(f.label)
		}
		rows = append(rows, label, m.styles.Input.Render(f.view))
	}

	parts := []string{title, ""}
	parts = append(parts, rows...)
	parts = append(parts, "", m.viewStatus())
	parts = append(parts, m.styles.Footer.Render(
		m.styles.FooterKey.Render("tab")+" next  "+
			m.styles.FooterKey.Render("enter")+" login  "+
			m.styles.FooterKey.Render("esc")+" quit",
	))

	return m.styles.Dialog.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// viewMain renders the issue view.
func (m *Model) viewMain() string {
	var b strings.Builder

	// Header
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	// Input line for the active prompt
	switch m.mode {
	case ModeIssueKey:
		b.WriteString(m.styles.InputPrompt.Render("Issue: "))
		b.WriteString(m.keyInput.View())
		b.WriteString("\n")
	case ModeRename:
		b.WriteString(m.styles.InputPrompt.Render("Rename " + m.renaming + ": "))
		b.WriteString(m.renameInput.View())
		b.WriteString(m.styles.ItemMeta.Render(m.renameSuffix()))
		b.WriteString("\n")
	case ModeFilter:
		b.WriteString(m.styles.InputPrompt.Render("Types: "))
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	case ModeNormal, ModeConfirm, ModeLogin, ModeChangeLog, ModeHelp:
		b.WriteString(m.viewListInfo())
		b.WriteString("\n")
	}

	if status := m.viewStatus(); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Attachments and pending renames
	switch {
	case m.set == nil:
		b.WriteString(m.styles.ItemMeta.Render("No issue loaded. Press g to open one."))
	case len(m.attList.Items()) == 0:
		b.WriteString(m.styles.ItemMeta.Render("No attachments match."))
	default:
		if m.folded {
			b.WriteString(m.attList.View())
		} else {
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.attList.View(), " ", m.viewPanel()))
		}
	}

	if m.mode == ModeConfirm {
		b.WriteString("\n")
		b.WriteString(m.viewConfirmDialog())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(m.statusLine.Render(m.GetStatusInfo()))

	return b.String()
}

// viewHeader renders the title and the logged-in user.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render(domain.AppName)
	if m.issue != nil {
		title += "  " + m.styles.IssueKey.Render(m.issue.Key) + " " + truncate(m.issue.Summary, max(m.width/2, 10))
	}

	var who string
	if m.user != nil {
		who = m.user.Name + "@" + m.profile.Server
	}
	rightText := lipgloss.NewStyle().Foreground(Colors.Muted).Render(who)

	headerWidth := max(m.width-6, 40)
	spacing := max(headerWidth-lipgloss.Width(title)-lipgloss.Width(rightText), 1)

	return m.styles.Header.Render(title + strings.Repeat(" ", spacing) + rightText)
}

// viewListInfo renders the attachment count, sort order and type filter.
func (m *Model) viewListInfo() string {
	if m.set == nil {
		return ""
	}
	order := "↑"
	if m.desc {
		order = "↓"
	}
	info := fmt.Sprintf("%d of %d attachments · sort: %s %s", len(m.attList.Items()), m.set.Len(), m.sortField, order)
	if len(m.types) > 0 {
		info += " · types: " + strings.Join(m.types, ", ")
	}
	return m.styles.ItemMeta.Render(info)
}

// viewStatus renders the spinner, error or notice line.
func (m *Model) viewStatus() string {
	switch {
	case m.loading:
		return m.spinner.View() + " " + m.styles.ItemMeta.Render("Working...")
	case m.err != nil:
		return m.styles.ErrorMsg.Render("Error: " + m.err.Error())
	case m.notice != "":
		return m.styles.Notice.Render(m.notice)
	}
	return ""
}

// renameSuffix returns the suffix kept by the rename in progress.
func (m *Model) renameSuffix() string {
	_, suffix := domain.SplitFilename(m.renaming)
	return suffix
}

// viewPanel renders the pending renames next to the list.
func (m *Model) viewPanel() string {
	width := m.panelWidth()
	inner := max(width-4, 8)

	lines := []string{m.styles.PanelTitle.Render("Original names")}
	if len(m.changes) == 0 {
		lines = append(lines, m.styles.ItemMeta.Render("No pending renames"))
	}
	for _, c := range m.changes {
		lines = append(lines,
			m.styles.Original.Render(truncate(c.OldName, inner)),
			m.styles.ItemRenamed.Render("→ "+truncate(c.NewName, inner-2)),
		)
	}
	return m.styles.Panel.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// viewConfirmDialog renders the apply confirmation.
func (m *Model) viewConfirmDialog() string {
	color := Colors.Warning
	title := m.styles.DialogTitle.Foreground(color).Render(
		fmt.Sprintf("Upload %d renamed attachment(s) to %s?", len(m.changes), m.set.IssueKey()))

	var list strings.Builder
	for _, c := range m.changes {
		fmt.Fprintf(&list, "%s → %s\n", c.OldName, m.styles.ItemRenamed.Render(c.NewName))
	}
	prompt := m.styles.DialogPrompt.Render("The originals are deleted after each upload.")

	yesBtn := m.styles.HelpKey.Render("[ y ] Apply")
	noBtn := m.styles.Footer.Render("[ n ] Cancel")
	buttons := lipgloss.JoinHorizontal(lipgloss.Left, yesBtn, "  ", noBtn)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		strings.TrimRight(list.String(), "\n"),
		"",
		prompt,
		"",
		buttons,
	)

	return m.styles.Dialog.BorderForeground(color).Render(content)
}

// viewChangeLog renders the change log view.
func (m *Model) viewChangeLog() string {
	title := "Change log"
	if m.set != nil {
		title += " · " + m.set.IssueKey()
	}
	header := m.styles.Header.Render(m.styles.HeaderText.Render(title))
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.logView.View(),
		m.statusLine.Render(m.GetStatusInfo()),
	)
}

// renderChangeLog renders the loaded change records, newest first.
func (m *Model) renderChangeLog() string {
	if len(m.records) == 0 {
		return m.styles.ItemMeta.Render("No changes recorded")
	}
	var b strings.Builder
	for _, r := range m.records {
		style := m.styles.StatusStyle(r.Status)
		fmt.Fprintf(&b, "%s %s %s  %s → %s",
			m.styles.ItemMeta.Render(r.Time.Local().Format("2006-01-02 15:04")),
			style.Render(StatusIcon(r.Status)),
			m.styles.IssueKey.Render(r.IssueKey),
			r.OldName,
			m.styles.ItemRenamed.Render(r.NewName),
		)
		if r.Error != "" {
			b.WriteString("  " + m.styles.StatusFailed.Render(escapeNewlines(r.Error)))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// viewHelp renders the help view.
func (m *Model) viewHelp() string {
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")
	m.help.ShowAll = true
	content := m.help.View(m.keys)
	return m.styles.Dialog.
		BorderForeground(Colors.Primary).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", content))
}

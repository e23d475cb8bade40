package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/jira-attach/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayoutSizes()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case MsgLoggedIn:
		m.loading = false
		m.user = msg.User
		m.profile = msg.Profile
		m.passInput.Blur()
		if m.initialKey != "" {
			issueKey := m.initialKey
			m.initialKey = ""
			m.mode = ModeIssueKey
			m.keyInput.SetValue(issueKey)
			m.keyInput.Focus()
			return m, m.fetch(issueKey)
		}
		return m, m.openIssueKeyInput()

	case MsgLoginFailed:
		m.loading = false
		m.autoLogin = false
		m.err = msg.Err
		m.mode = ModeLogin
		m.focusLoginField(m.firstEmptyField())
		return m, textinput.Blink

	case MsgIssueLoaded:
		m.loading = false
		m.mode = ModeNormal
		m.keyInput.Blur()
		m.issue = msg.Out.Issue
		m.set = msg.Out.Set
		m.attList.ResetSelected()
		m.refreshList()
		if n := draftNotice(msg.Out.DraftRestored, msg.Out.DraftSkipped); n != "" {
			m.notice = n
		}
		if msg.Out.DraftError != nil {
			m.err = msg.Out.DraftError
		}
		return m, nil

	case MsgRenamed:
		m.refreshList()
		switch {
		case msg.Pending == 0:
			m.notice = "No pending renames"
		default:
			m.notice = fmt.Sprintf("%d pending rename(s)", msg.Pending)
		}
		return m, nil

	case MsgApplied:
		m.loading = false
		m.mode = ModeNormal
		if msg.Out != nil {
			m.notice = fmt.Sprintf("Applied %d, failed %d", msg.Out.Applied, msg.Out.Failed)
		}
		m.err = msg.Err
		if m.set == nil {
			return m, nil
		}
		// Attachment IDs change on upload; reload to pick up the new ones.
		return m, m.fetch(m.set.IssueKey())

	case MsgViewed:
		m.loading = false
		m.notice = "Opened " + filepath.Base(msg.Path)
		return m, nil

	case MsgChangesLoaded:
		m.records = msg.Records
		m.logView.SetContent(m.renderChangeLog())
		m.logView.GotoTop()
		m.mode = ModeChangeLog
		return m, nil

	case MsgError:
		m.loading = false
		m.err = msg.Err
		if m.mode == ModeConfirm {
			m.mode = ModeNormal
		}
		return m, nil

	case MsgClearError:
		m.err = nil
		return m, nil
	}

	return m, nil
}

// draftNotice describes a restored draft.
func draftNotice(restored, skipped int) string {
	if restored == 0 {
		return ""
	}
	s := fmt.Sprintf("Restored %d pending rename(s) from the saved draft", restored)
	if skipped > 0 {
		s += fmt.Sprintf(" (%d no longer apply)", skipped)
	}
	return s
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	// Requests in flight own the rename set
	if m.loading {
		return m, nil
	}

	// Clear error and notice on any key press
	m.err = nil
	m.notice = ""

	switch m.mode {
	case ModeLogin:
		return m.handleLoginMode(msg)
	case ModeIssueKey:
		return m.handleIssueKeyMode(msg)
	case ModeNormal:
		return m.handleNormalMode(msg)
	case ModeRename:
		return m.handleRenameMode(msg)
	case ModeFilter:
		return m.handleFilterMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeChangeLog:
		return m.handleChangeLogMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}

	return m, nil
}

// handleLoginMode handles keys in the login form.
func (m *Model) handleLoginMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, tea.Quit

	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		m.focusLoginField(m.loginField.next())
		return m, textinput.Blink

	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		m.focusLoginField(m.loginField.prev())
		return m, textinput.Blink

	case msg.Type == tea.KeyEnter:
		if m.loginField != FieldPassword {
			m.focusLoginField(m.loginField.next())
			return m, textinput.Blink
		}
		p := m.formProfile()
		if err := p.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.login(p)
	}

	var cmd tea.Cmd
	switch m.loginField {
	case FieldServer:
		m.serverInput, cmd = m.serverInput.Update(msg)
	case FieldUsername:
		m.userInput, cmd = m.userInput.Update(msg)
	case FieldPassword:
		m.passInput, cmd = m.passInput.Update(msg)
	}
	return m, cmd
}

// openIssueKeyInput switches to the issue key prompt.
func (m *Model) openIssueKeyInput() tea.Cmd {
	m.mode = ModeIssueKey
	m.keyInput.Reset()
	m.keyInput.Focus()
	return textinput.Blink
}

// handleIssueKeyMode handles keys in the issue key prompt.
func (m *Model) handleIssueKeyMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.keyInput.Blur()
		if m.set == nil {
			return m, tea.Quit
		}
		m.mode = ModeNormal
		return m, nil

	case msg.Type == tea.KeyEnter:
		issueKey, err := domain.NormalizeIssueKey(m.keyInput.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, m.fetch(issueKey)
	}

	var cmd tea.Cmd
	m.keyInput, cmd = m.keyInput.Update(msg)
	return m, cmd
}

// handleNormalMode handles keys in the attachment list.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.returnMode = m.mode
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Fetch):
		return m, m.openIssueKeyInput()

	case key.Matches(msg, m.keys.Refresh):
		if m.set == nil {
			return m, nil
		}
		return m, m.fetch(m.set.IssueKey())

	case key.Matches(msg, m.keys.ChangeLog):
		return m, m.loadChanges()

	case key.Matches(msg, m.keys.Fold):
		m.folded = true
		m.updateLayoutSizes()
		return m, nil

	case key.Matches(msg, m.keys.Unfold):
		m.folded = false
		m.updateLayoutSizes()
		return m, nil
	}

	if m.set == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Rename):
		att := m.SelectedAttachment()
		if att == nil {
			return m, nil
		}
		base, _ := domain.SplitFilename(att.Filename)
		m.renaming = att.Filename
		m.renameInput.SetValue(base)
		m.renameInput.CursorEnd()
		m.renameInput.Focus()
		m.mode = ModeRename
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Undo):
		att := m.SelectedAttachment()
		if att == nil {
			return m, nil
		}
		return m, m.rename(att.Filename, "", true)

	case key.Matches(msg, m.keys.UndoAll):
		return m, m.resetAll()

	case key.Matches(msg, m.keys.Apply):
		if !m.set.Dirty() {
			m.err = domain.ErrNoChanges
			return m, nil
		}
		m.mode = ModeConfirm
		return m, nil

	case key.Matches(msg, m.keys.View):
		att := m.SelectedAttachment()
		if att == nil {
			return m, nil
		}
		return m, m.viewAttachment(att.Filename)

	case key.Matches(msg, m.keys.Sort):
		m.sortField = m.sortField.Next()
		m.refreshList()
		return m, nil

	case key.Matches(msg, m.keys.Reverse):
		m.desc = !m.desc
		m.refreshList()
		return m, nil

	case key.Matches(msg, m.keys.Filter):
		m.filterInput.SetValue(strings.Join(m.types, ", "))
		m.filterInput.CursorEnd()
		m.filterInput.Focus()
		m.mode = ModeFilter
		return m, textinput.Blink
	}

	var cmd tea.Cmd
	m.attList, cmd = m.attList.Update(msg)
	return m, cmd
}

// handleRenameMode handles keys while editing a base name.
func (m *Model) handleRenameMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.renameInput.Blur()
		m.renaming = ""
		return m, nil

	case msg.Type == tea.KeyEnter:
		cmd := m.rename(m.renaming, m.renameInput.Value(), false)
		m.mode = ModeNormal
		m.renameInput.Blur()
		m.renaming = ""
		return m, cmd
	}

	var cmd tea.Cmd
	m.renameInput, cmd = m.renameInput.Update(msg)
	return m, cmd
}

// handleFilterMode handles keys in the type filter input.
func (m *Model) handleFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.filterInput.Blur()
		return m, nil

	case msg.Type == tea.KeyEnter:
		m.mode = ModeNormal
		m.filterInput.Blur()
		m.types = parseTypes(m.filterInput.Value())
		m.attList.ResetSelected()
		m.refreshList()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

// handleConfirmMode handles keys in the apply confirmation dialog.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), msg.String() == "n", msg.String() == "N":
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m, m.apply()
	}

	return m, nil
}

// handleChangeLogMode handles keys in the change log view.
func (m *Model) handleChangeLogMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.ChangeLog), key.Matches(msg, m.keys.Quit):
		m.mode = m.baseMode()
		return m, nil
	}

	var cmd tea.Cmd
	m.logView, cmd = m.logView.Update(msg)
	return m, cmd
}

// handleHelpMode handles keys in the help view.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.mode = m.returnMode
		return m, nil
	}

	return m, nil
}

// baseMode is the mode to return to from an overlay.
func (m *Model) baseMode() Mode {
	if m.set == nil {
		return ModeIssueKey
	}
	return ModeNormal
}

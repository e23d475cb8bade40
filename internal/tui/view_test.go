package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_BeforeResize(t *testing.T) {
	env := newTestEnv(t)
	m := New(env.c, "")
	assert.Equal(t, "Loading...", m.View())
}

func TestView_LoginForm(t *testing.T) {
	env := newTestEnv(t)
	env.cfg.Server.Password = ""
	m := New(env.c, "")
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	out := m.View()
	assert.Contains(t, out, "Log in to JIRA")
	assert.Contains(t, out, "Server")
	assert.Contains(t, out, "https://jira.example.com")
	assert.Contains(t, out, "alice")

	m.passInput.SetValue("hunter2")
	assert.NotContains(t, m.View(), "hunter2")

	m.err = errors.New("bad credentials")
	assert.Contains(t, m.View(), "Error: bad credentials")
}

func TestView_IssueList(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)

	out := m.View()
	assert.Contains(t, out, "TES-3")
	assert.Contains(t, out, "Screenshots")
	assert.Contains(t, out, "alice@https://jira.example.com")
	assert.Contains(t, out, "alps.jpg")
	assert.Contains(t, out, "scan.pdf")
	assert.Contains(t, out, "3 of 3 attachments")
	assert.Contains(t, out, "sort: name ↑")
	assert.Contains(t, out, "Original names")
	assert.Contains(t, out, "No pending renames")
	assert.Contains(t, out, "mode:normal")
}

func TestView_PendingRenamePanel(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)

	press(m, "r")
	out := m.View()
	assert.Contains(t, out, "Rename alps.jpg:")
	assert.Contains(t, out, ".jpg")

	m.renameInput.SetValue("summit")
	press(m, "enter")

	out = m.View()
	assert.Contains(t, out, "→ summit.jpg")
	assert.Contains(t, out, "1 pending rename")

	press(m, "<")
	assert.NotContains(t, m.View(), "Original names")
}

func TestView_ConfirmDialog(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)

	press(m, "r")
	m.renameInput.SetValue("summit")
	press(m, "enter")
	press(m, "a")

	out := m.View()
	assert.Contains(t, out, "Upload 1 renamed attachment(s) to TES-3?")
	assert.Contains(t, out, "[ y ] Apply")
	assert.Contains(t, out, "[ n ] Cancel")
}

func TestView_EmptyFilterResult(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)

	press(m, "f")
	m.filterInput.SetValue("png")
	press(m, "enter")

	out := m.View()
	assert.Contains(t, out, "No attachments match.")
	assert.Contains(t, out, "types: png")
}

func TestView_ChangeLog(t *testing.T) {
	env := newTestEnv(t)
	env.history.Records = []domain.ChangeRecord{
		{IssueKey: "TES-3", OldName: "a.png", NewName: "b.png", Status: domain.ChangeApplied, Time: testNow},
		{IssueKey: "TES-3", OldName: "c.png", NewName: "d.png", Status: domain.ChangeFailed, Error: "upload\nfailed", Time: testNow},
	}
	m := loadedModel(t, env)
	press(m, "L")
	require.Equal(t, ModeChangeLog, m.mode)

	out := m.View()
	assert.Contains(t, out, "Change log · TES-3")
	assert.Contains(t, out, "a.png")
	assert.Contains(t, out, "b.png")
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗")
}

func TestRenderChangeLog_Empty(t *testing.T) {
	env := newTestEnv(t)
	m := New(env.c, "")
	assert.Contains(t, m.renderChangeLog(), "No changes recorded")
}

func TestView_Help(t *testing.T) {
	env := newTestEnv(t)
	m := loadedModel(t, env)
	press(m, "?")

	out := m.View()
	assert.Contains(t, out, "KEYBOARD SHORTCUTS")
	assert.Contains(t, out, "rename")
	assert.Contains(t, out, "change log")
}

func TestStatusLine_Render(t *testing.T) {
	styles := DefaultStyles()
	s := NewStatusLine(80, &styles)

	out := s.Render(StatusLineInfo{
		Mode:     ModeNormal,
		Pending:  "2 pending renames",
		KeyHints: []KeyHint{{Key: "r", Desc: "rename"}, {Key: "q", Desc: "quit"}},
	})
	assert.Contains(t, out, "rename")
	assert.Contains(t, out, "2 pending renames")
	assert.Contains(t, out, "mode:normal")

	s.SetWidth(20)
	out = s.Render(StatusLineInfo{Mode: ModeNormal, KeyHints: []KeyHint{{Key: "r", Desc: "rename everything now"}}})
	assert.Contains(t, out, "...")
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "1 pending rename", pluralize(1, "pending rename"))
	assert.Equal(t, "3 pending renames", pluralize(3, "pending rename"))
}

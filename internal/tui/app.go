package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/jira-attach/internal/app"
	"github.com/runoshun/jira-attach/internal/domain"
	"github.com/runoshun/jira-attach/internal/usecase"
)

// changeLogLimit is the number of change records shown by the change log view.
const changeLogLimit = 200

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error

	// Issue state. set is only touched from Update, never while loading.
	set     *domain.RenameSet
	issue   *domain.Issue
	user    *domain.User
	changes []domain.Change // Pending renames, cached for rendering
	records []domain.ChangeRecord
	types   []string

	// Components (structs with pointers)
	keys       KeyMap
	styles     Styles
	help       help.Model
	spinner    spinner.Model
	attList    list.Model
	logView    viewport.Model
	statusLine *StatusLine

	// Input state (large structs)
	serverInput textinput.Model
	userInput   textinput.Model
	passInput   textinput.Model
	keyInput    textinput.Model
	renameInput textinput.Model
	filterInput textinput.Model

	profile    domain.Profile
	notice     string
	initialKey string
	renaming   string // Current name of the attachment being renamed
	sortField  domain.SortField

	// Numeric state (smaller types last)
	mode       Mode
	returnMode Mode // Mode to restore when leaving help
	loginField LoginField
	width      int
	height     int
	desc       bool
	loading    bool
	folded     bool // Original-names panel hidden
	autoLogin  bool
}

// New creates a new TUI Model with the given container.
// issueKey, when set, is fetched right after login.
func New(c *app.Container, issueKey string) *Model {
	profile := c.AppConfig.Profile()

	si := textinput.New()
	si.Placeholder = "https://jira.example.com"
	si.CharLimit = 500
	si.SetValue(profile.Server)

	ui := textinput.New()
	ui.Placeholder = "username"
	ui.CharLimit = 200
	ui.SetValue(profile.Username)

	pi := textinput.New()
	pi.Placeholder = "password or API token"
	pi.CharLimit = 500
	pi.EchoMode = textinput.EchoPassword
	pi.EchoCharacter = '•'
	pi.SetValue(profile.Password)

	ki := textinput.New()
	ki.Placeholder = "TES-3"
	ki.CharLimit = 50

	ri := textinput.New()
	ri.CharLimit = 255

	fi := textinput.New()
	fi.Placeholder = "jpg, png (empty = all)"
	fi.CharLimit = 100

	styles := DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	attList := list.New([]list.Item{}, newAttachmentDelegate(styles), 0, 0)
	attList.SetShowTitle(false)
	attList.SetShowStatusBar(false)
	attList.SetShowHelp(false)
	attList.SetShowPagination(true)
	attList.SetFilteringEnabled(false)
	attList.DisableQuitKeybindings()

	sortField, err := domain.ParseSortField(c.AppConfig.List.Sort)
	if err != nil {
		sortField = domain.SortByName
	}

	m := &Model{
		container:   c,
		keys:        DefaultKeyMap(),
		styles:      styles,
		help:        help.New(),
		spinner:     sp,
		attList:     attList,
		logView:     viewport.New(0, 0),
		statusLine:  NewStatusLine(0, &styles),
		serverInput: si,
		userInput:   ui,
		passInput:   pi,
		keyInput:    ki,
		renameInput: ri,
		filterInput: fi,
		profile:     profile,
		initialKey:  issueKey,
		sortField:   sortField,
		desc:        c.AppConfig.List.Desc,
		mode:        ModeLogin,
		autoLogin:   profile.Complete(),
	}
	m.focusLoginField(m.firstEmptyField())
	return m
}

// Init initializes the model and returns the initial command.
// A complete profile logs in without showing the form.
func (m *Model) Init() tea.Cmd {
	if m.autoLogin {
		return m.login(m.profile)
	}
	return textinput.Blink
}

// firstEmptyField returns the first login field without a value.
func (m *Model) firstEmptyField() LoginField {
	switch {
	case m.serverInput.Value() == "":
		return FieldServer
	case m.userInput.Value() == "":
		return FieldUsername
	default:
		return FieldPassword
	}
}

func (m *Model) focusLoginField(f LoginField) {
	m.loginField = f
	inputs := []*textinput.Model{&m.serverInput, &m.userInput, &m.passInput}
	for i, in := range inputs {
		if LoginField(i) == f {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// formProfile returns the configured profile with the form's values.
func (m *Model) formProfile() domain.Profile {
	p := m.profile
	p.Server = strings.TrimRight(strings.TrimSpace(m.serverInput.Value()), "/")
	p.Username = strings.TrimSpace(m.userInput.Value())
	p.Password = m.passInput.Value()
	return p
}

// startLoading marks the model busy and returns the spinner tick.
func (m *Model) startLoading() tea.Cmd {
	m.loading = true
	return m.spinner.Tick
}

// login returns a command that logs in with p.
func (m *Model) login(p domain.Profile) tea.Cmd {
	uc := m.container.LoginUseCase()
	return tea.Batch(m.startLoading(), func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.LoginInput{Profile: p})
		if err != nil {
			return MsgLoginFailed{Err: err}
		}
		return MsgLoggedIn{User: out.User, Profile: p}
	})
}

// fetch returns a command that loads an issue.
func (m *Model) fetch(key string) tea.Cmd {
	uc := m.container.FetchIssueUseCase()
	in := usecase.FetchIssueInput{IssueKey: key, Sort: m.sortField, Desc: m.desc, Types: m.types, Prefetch: true}
	return tea.Batch(m.startLoading(), func() tea.Msg {
		out, err := uc.Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgIssueLoaded{Out: out}
	})
}

// apply returns a command that uploads the pending renames.
func (m *Model) apply() tea.Cmd {
	uc := m.container.ApplyRenamesUseCase()
	set := m.set
	return tea.Batch(m.startLoading(), func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.ApplyRenamesInput{Set: set})
		return MsgApplied{Out: out, Err: err}
	})
}

// viewAttachment returns a command that opens an attachment in the viewer.
func (m *Model) viewAttachment(name string) tea.Cmd {
	uc := m.container.ShowAttachmentUseCase()
	set := m.set
	return tea.Batch(m.startLoading(), func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.ShowAttachmentInput{Set: set, Name: name})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgViewed{Path: out.Path}
	})
}

// loadChanges returns a command that reads the change log of the current issue.
func (m *Model) loadChanges() tea.Cmd {
	uc := m.container.ListChangesUseCase()
	in := usecase.ListChangesInput{Limit: changeLogLimit}
	if m.set != nil {
		in.IssueKey = m.set.IssueKey()
	}
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgChangesLoaded{Records: out.Records}
	}
}

// rename renames or resets one attachment. It runs synchronously: the
// server is not contacted and the set must not change behind Update.
func (m *Model) rename(name, newBase string, reset bool) tea.Cmd {
	out, err := m.container.RenameAttachmentUseCase().Execute(context.Background(), usecase.RenameAttachmentInput{
		Set:     m.set,
		Name:    name,
		NewBase: newBase,
		Reset:   reset,
	})
	if err != nil {
		return func() tea.Msg { return MsgError{Err: err} }
	}
	return func() tea.Msg { return MsgRenamed{NewName: out.NewName, Pending: out.Pending} }
}

// resetAll restores every pending rename.
func (m *Model) resetAll() tea.Cmd {
	if !m.set.Dirty() {
		return nil
	}
	out, err := m.container.RenameAttachmentUseCase().Execute(context.Background(), usecase.RenameAttachmentInput{
		Set:   m.set,
		Reset: true,
		All:   true,
	})
	if err != nil {
		return func() tea.Msg { return MsgError{Err: err} }
	}
	return func() tea.Msg { return MsgRenamed{Pending: out.Pending} }
}

// SelectedAttachment returns the selected attachment, or nil if none.
func (m *Model) SelectedAttachment() *domain.Attachment {
	item, ok := m.attList.SelectedItem().(attachmentItem)
	if !ok {
		return nil
	}
	return &item.att
}

// refreshList rebuilds the list from the rename set, keeping the selection.
func (m *Model) refreshList() {
	if m.set == nil {
		m.attList.SetItems(nil)
		m.changes = nil
		return
	}
	var selectedID string
	if a := m.SelectedAttachment(); a != nil {
		selectedID = a.ID
	}

	atts := usecase.ListView(m.set, m.sortField, m.desc, m.types)
	items := make([]list.Item, 0, len(atts))
	selected := 0
	for i, a := range atts {
		item := attachmentItem{att: a}
		if orig, ok := m.set.Original(a.ID); ok && orig != a.Filename {
			item.original = orig
		}
		if a.ID == selectedID {
			selected = i
		}
		items = append(items, item)
	}
	m.attList.SetItems(items)
	m.attList.Select(selected)
	m.changes = m.set.Changes()
}

// parseTypes splits a filter such as "jpg, .png pdf" into types.
func parseTypes(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// panelWidth returns the width of the original-names panel.
func (m *Model) panelWidth() int {
	if m.folded {
		return 0
	}
	return min(44, max(24, m.width/3))
}

// updateLayoutSizes resizes the components after a resize or fold.
func (m *Model) updateLayoutSizes() {
	contentWidth := max(m.width-6, 20)
	listWidth := contentWidth
	if pw := m.panelWidth(); pw > 0 {
		listWidth = max(contentWidth-pw-1, 20)
	}
	listHeight := max(m.height-12, 4)
	m.attList.SetSize(listWidth, listHeight)
	m.logView.Width = contentWidth
	m.logView.Height = max(m.height-8, 4)
	m.statusLine.SetWidth(contentWidth)
	m.help.Width = contentWidth
}

// issueTitle returns "KEY  Summary" for the loaded issue.
func (m *Model) issueTitle() string {
	if m.issue == nil {
		return ""
	}
	return fmt.Sprintf("%s  %s", m.issue.Key, m.issue.Summary)
}

// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/runoshun/jira-attach/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// Upload records one AddAttachment call.
type Upload struct {
	IssueKey string
	Filename string
	Data     []byte
}

// MockTracker is an in-memory domain.Tracker.
// Uploads and deletions change the stored issues, so a later GetIssue sees them.
// Fields are ordered to minimize memory padding.
type MockTracker struct {
	User        *domain.User
	Issues      map[string]*domain.Issue
	Blobs       map[string][]byte // attachment ID -> contents
	DownloadErr map[string]error  // attachment ID -> error
	AddErr      map[string]error  // filename -> error
	DeleteErr   map[string]error  // attachment ID -> error
	MyselfErr   error
	GetIssueErr error
	Uploads     []Upload
	Deleted     []string
	Downloads   []string
	mu          sync.Mutex
	NextID      int
}

// NewMockTracker creates a MockTracker with initialized maps.
func NewMockTracker() *MockTracker {
	return &MockTracker{
		User:        &domain.User{Name: "alice", DisplayName: "Alice"},
		Issues:      make(map[string]*domain.Issue),
		Blobs:       make(map[string][]byte),
		DownloadErr: make(map[string]error),
		AddErr:      make(map[string]error),
		DeleteErr:   make(map[string]error),
		NextID:      1000,
	}
}

// AddIssue stores an issue and the contents of its attachments.
// blobs is matched to attachments by index.
func (m *MockTracker) AddIssue(issue *domain.Issue, blobs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Issues[issue.Key] = issue
	for i, b := range blobs {
		if i < len(issue.Attachments) {
			m.Blobs[issue.Attachments[i].ID] = []byte(b)
		}
	}
}

// Myself returns the configured user.
func (m *MockTracker) Myself(_ context.Context) (*domain.User, error) {
	if m.MyselfErr != nil {
		return nil, m.MyselfErr
	}
	return m.User, nil
}

// GetIssue returns a copy of a stored issue.
func (m *MockTracker) GetIssue(_ context.Context, key string) (*domain.Issue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetIssueErr != nil {
		return nil, m.GetIssueErr
	}
	issue, ok := m.Issues[key]
	if !ok {
		return nil, domain.ErrIssueNotFound
	}
	cp := *issue
	cp.Attachments = slices.Clone(issue.Attachments)
	return &cp, nil
}

// Download returns stored contents.
func (m *MockTracker) Download(_ context.Context, att domain.Attachment) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Downloads = append(m.Downloads, att.ID)
	if err := m.DownloadErr[att.ID]; err != nil {
		return nil, err
	}
	data, ok := m.Blobs[att.ID]
	if !ok {
		return nil, domain.ErrAttachmentNotFound
	}
	return data, nil
}

// AddAttachment stores the upload as a new attachment of the issue.
func (m *MockTracker) AddAttachment(_ context.Context, issueKey, filename string, r io.Reader) (*domain.Attachment, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.AddErr[filename]; err != nil {
		return nil, err
	}
	issue, ok := m.Issues[issueKey]
	if !ok {
		return nil, domain.ErrIssueNotFound
	}

	m.NextID++
	att := domain.Attachment{
		ID:       strconv.Itoa(m.NextID),
		Filename: filename,
		Author:   m.User.DisplayName,
		Size:     int64(len(data)),
	}
	issue.Attachments = append(issue.Attachments, att)
	m.Blobs[att.ID] = data
	m.Uploads = append(m.Uploads, Upload{IssueKey: issueKey, Filename: filename, Data: data})
	return &att, nil
}

// DeleteAttachment removes an attachment from whichever issue holds it.
func (m *MockTracker) DeleteAttachment(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.DeleteErr[id]; err != nil {
		return err
	}
	for _, issue := range m.Issues {
		for i, a := range issue.Attachments {
			if a.ID == id {
				issue.Attachments = slices.Delete(issue.Attachments, i, i+1)
				delete(m.Blobs, id)
				m.Deleted = append(m.Deleted, id)
				return nil
			}
		}
	}
	return domain.ErrAttachmentNotFound
}

// MockTrackerFactory is a test double for domain.TrackerFactory.
type MockTrackerFactory struct {
	Tracker  domain.Tracker
	Err      error
	Profiles []domain.Profile
}

// Connect records the profile and returns the configured tracker.
func (m *MockTrackerFactory) Connect(p domain.Profile) (domain.Tracker, error) {
	m.Profiles = append(m.Profiles, p)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Tracker, nil
}

// MockChangeLog is an in-memory domain.ChangeLog.
type MockChangeLog struct {
	RecordErr error
	ListErr   error
	Records   []domain.ChangeRecord
	mu        sync.Mutex
}

// Record appends a record.
func (m *MockChangeLog) Record(_ context.Context, rec domain.ChangeRecord) (domain.ChangeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RecordErr != nil {
		return rec, m.RecordErr
	}
	rec.ID = int64(len(m.Records) + 1)
	m.Records = append(m.Records, rec)
	return rec, nil
}

// List returns matching records, newest first.
func (m *MockChangeLog) List(_ context.Context, filter domain.ChangeFilter) ([]domain.ChangeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	var out []domain.ChangeRecord
	for i := len(m.Records) - 1; i >= 0; i-- {
		r := m.Records[i]
		if filter.IssueKey != "" && r.IssueKey != filter.IssueKey {
			continue
		}
		out = append(out, r)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// MockDraftRepository is an in-memory domain.DraftRepository.
type MockDraftRepository struct {
	Drafts  map[string]*domain.Draft
	GetErr  error
	SaveErr error
}

// NewMockDraftRepository creates a MockDraftRepository with an initialized map.
func NewMockDraftRepository() *MockDraftRepository {
	return &MockDraftRepository{Drafts: make(map[string]*domain.Draft)}
}

// Get returns the draft, or nil.
func (m *MockDraftRepository) Get(issueKey string) (*domain.Draft, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Drafts[issueKey], nil
}

// Save stores the draft; an empty draft removes it.
func (m *MockDraftRepository) Save(d *domain.Draft) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if len(d.Renames) == 0 {
		delete(m.Drafts, d.IssueKey)
		return nil
	}
	m.Drafts[d.IssueKey] = d
	return nil
}

// Delete removes the draft.
func (m *MockDraftRepository) Delete(issueKey string) error {
	delete(m.Drafts, issueKey)
	return nil
}

// List returns drafts ordered by key.
func (m *MockDraftRepository) List() ([]*domain.Draft, error) {
	keys := make([]string, 0, len(m.Drafts))
	for k := range m.Drafts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	out := make([]*domain.Draft, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.Drafts[k])
	}
	return out, nil
}

// MockStager writes staged files into Dir so they can be read back.
type MockStager struct {
	StageErr  error
	Files     map[string][]byte
	Dir       string
	Cleaned   bool
	Overwrite bool
}

// Stage writes data to Dir/name.
func (m *MockStager) Stage(name string, data []byte) (string, error) {
	if m.StageErr != nil {
		return "", m.StageErr
	}
	if m.Files == nil {
		m.Files = make(map[string][]byte)
	}
	path := filepath.Join(m.Dir, name)
	if !m.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%w: %s", domain.ErrFileExists, path)
		}
	}
	if err := os.MkdirAll(m.Dir, 0o750); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	m.Files[name] = bytes.Clone(data)
	return path, nil
}

// Cleanup marks the stager as cleaned.
func (m *MockStager) Cleanup() error {
	m.Cleaned = true
	return nil
}

// MockStagerFactory hands out MockStagers below Root.
type MockStagerFactory struct {
	Root    string
	Stagers []*MockStager
}

// Temp returns a stager in a new subdirectory of Root.
func (m *MockStagerFactory) Temp() domain.Stager {
	s := &MockStager{Dir: filepath.Join(m.Root, fmt.Sprintf("batch-%d", len(m.Stagers))), Overwrite: true}
	m.Stagers = append(m.Stagers, s)
	return s
}

// Dir returns a stager writing into dir.
func (m *MockStagerFactory) Dir(dir string, overwrite bool) domain.Stager {
	s := &MockStager{Dir: dir, Overwrite: overwrite}
	m.Stagers = append(m.Stagers, s)
	return s
}

// MockViewer records opened paths.
type MockViewer struct {
	Err    error
	Opened []string
}

// Open records path.
func (m *MockViewer) Open(path string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Opened = append(m.Opened, path)
	return nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config *domain.Config
	Err    error
}

// Load returns the configured config, or defaults.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
type MockConfigManager struct {
	InitErr   error
	SaveErr   error
	FilePath  string
	Content   string
	Saved     []domain.Profile
	InitCalls int
	Present   bool
}

// Path returns FilePath.
func (m *MockConfigManager) Path() string { return m.FilePath }

// Exists returns Present.
func (m *MockConfigManager) Exists() bool { return m.Present }

// Info returns the configured file info.
func (m *MockConfigManager) Info() domain.ConfigInfo {
	return domain.ConfigInfo{Path: m.FilePath, Content: m.Content, Exists: m.Present}
}

// Init writes the template unless the file is present.
func (m *MockConfigManager) Init(force bool) error {
	m.InitCalls++
	if m.InitErr != nil {
		return m.InitErr
	}
	if m.Present && !force {
		return domain.ErrConfigExists
	}
	m.Present = true
	m.Content = domain.ConfigTemplate()
	return nil
}

// SaveProfile records p.
func (m *MockConfigManager) SaveProfile(p domain.Profile) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, p)
	return nil
}

// LogEntry is one captured log line.
type LogEntry struct {
	Level    string
	IssueKey string
	Category string
	Msg      string
}

// MockLogger captures log entries.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level, key, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, IssueKey: key, Category: category, Msg: msg})
}

// Info records an info entry.
func (m *MockLogger) Info(key, category, msg string) { m.add("INFO", key, category, msg) }

// Debug records a debug entry.
func (m *MockLogger) Debug(key, category, msg string) { m.add("DEBUG", key, category, msg) }

// Warn records a warning entry.
func (m *MockLogger) Warn(key, category, msg string) { m.add("WARN", key, category, msg) }

// Error records an error entry.
func (m *MockLogger) Error(key, category, msg string) { m.add("ERROR", key, category, msg) }

// Compile-time interface checks.
var (
	_ domain.Tracker         = (*MockTracker)(nil)
	_ domain.TrackerFactory  = (*MockTrackerFactory)(nil)
	_ domain.ChangeLog       = (*MockChangeLog)(nil)
	_ domain.DraftRepository = (*MockDraftRepository)(nil)
	_ domain.Stager          = (*MockStager)(nil)
	_ domain.StagerFactory   = (*MockStagerFactory)(nil)
	_ domain.Viewer          = (*MockViewer)(nil)
	_ domain.ConfigLoader    = (*MockConfigLoader)(nil)
	_ domain.ConfigManager   = (*MockConfigManager)(nil)
	_ domain.Logger          = (*MockLogger)(nil)
	_ domain.Clock           = (*MockClock)(nil)
)

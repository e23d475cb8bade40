// Package draftstore provides a JSON file-based implementation of DraftRepository.
package draftstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/runoshun/jira-attach/internal/domain"
)

// Ensure Store implements DraftRepository.
var _ domain.DraftRepository = (*Store)(nil)

// storeData represents the JSON file structure.
type storeData struct {
	Drafts map[string]*domain.Draft `json:"drafts"`
}

// Store implements domain.DraftRepository using a JSON file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; it will be created on first write.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Get returns the draft for an issue, or nil if none exists.
func (s *Store) Get(issueKey string) (*domain.Draft, error) {
	var draft *domain.Draft
	err := s.withLock(func(data *storeData) error {
		draft = data.Drafts[issueKey]
		return nil
	})
	return draft, err
}

// List returns all drafts ordered by issue key.
func (s *Store) List() ([]*domain.Draft, error) {
	var drafts []*domain.Draft
	err := s.withLock(func(data *storeData) error {
		for _, d := range data.Drafts {
			drafts = append(drafts, d)
		}
		return nil
	})

	slices.SortFunc(drafts, func(a, b *domain.Draft) int {
		return strings.Compare(a.IssueKey, b.IssueKey)
	})
	return drafts, err
}

// Save creates or replaces the draft of an issue.
// A draft without renames removes the entry.
func (s *Store) Save(draft *domain.Draft) error {
	return s.withLockWrite(func(data *storeData) error {
		if len(draft.Renames) == 0 {
			delete(data.Drafts, draft.IssueKey)
			return nil
		}
		data.Drafts[draft.IssueKey] = draft
		return nil
	})
}

// Delete removes the draft of an issue.
func (s *Store) Delete(issueKey string) error {
	return s.withLockWrite(func(data *storeData) error {
		delete(data.Drafts, issueKey)
		return nil
	})
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}
	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}
	if err := fn(data); err != nil {
		return err
	}
	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(s.lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

// read loads the file. A missing file reads as an empty store.
func (s *Store) read() (*storeData, error) {
	data := &storeData{}
	content, err := os.ReadFile(s.path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read drafts file: %w", err)
	default:
		if err := json.Unmarshal(content, data); err != nil {
			return nil, fmt.Errorf("parse drafts file: %w", err)
		}
	}
	if data.Drafts == nil {
		data.Drafts = make(map[string]*domain.Draft)
	}
	return data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal drafts: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

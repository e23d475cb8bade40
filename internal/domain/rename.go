package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Change is one attachment whose current name differs from its original name.
type Change struct {
	AttachmentID string
	OldName      string
	NewName      string
}

type renameEntry struct {
	attachment Attachment
	current    string
	blob       []byte
	hasBlob    bool
}

// RenameSet tracks renames of one issue's attachments.
// It maps each attachment's original name to its current name and holds the
// attachment contents fetched so far. It is not safe for concurrent use.
type RenameSet struct {
	byID     map[string]*renameEntry
	issueKey string
	entries  []*renameEntry
}

// NewRenameSet creates a RenameSet for issue. blobs maps attachment IDs to
// contents that are already downloaded; it may be nil.
func NewRenameSet(issue *Issue, blobs map[string][]byte) *RenameSet {
	s := &RenameSet{
		issueKey: issue.Key,
		byID:     make(map[string]*renameEntry, len(issue.Attachments)),
		entries:  make([]*renameEntry, 0, len(issue.Attachments)),
	}
	for _, a := range issue.Attachments {
		e := &renameEntry{attachment: a, current: a.Filename}
		if b, ok := blobs[a.ID]; ok {
			e.blob = b
			e.hasBlob = true
		}
		s.entries = append(s.entries, e)
		s.byID[a.ID] = e
	}
	return s
}

// IssueKey returns the key of the issue the set belongs to.
func (s *RenameSet) IssueKey() string {
	return s.issueKey
}

// Len returns the number of attachments.
func (s *RenameSet) Len() int {
	return len(s.entries)
}

// Attachments returns the attachments with Filename set to the current name.
func (s *RenameSet) Attachments() []Attachment {
	out := make([]Attachment, 0, len(s.entries))
	for _, e := range s.entries {
		a := e.attachment
		a.Filename = e.current
		out = append(out, a)
	}
	return out
}

// Originals returns the attachments as fetched from the server.
func (s *RenameSet) Originals() []Attachment {
	out := make([]Attachment, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.attachment)
	}
	return out
}

// Original returns the original name of an attachment.
func (s *RenameSet) Original(id string) (string, bool) {
	e, ok := s.byID[id]
	if !ok {
		return "", false
	}
	return e.attachment.Filename, true
}

// Current returns the current name of an attachment.
func (s *RenameSet) Current(id string) (string, bool) {
	e, ok := s.byID[id]
	if !ok {
		return "", false
	}
	return e.current, true
}

// Blob returns the downloaded contents of an attachment.
func (s *RenameSet) Blob(id string) ([]byte, bool) {
	e, ok := s.byID[id]
	if !ok || !e.hasBlob {
		return nil, false
	}
	return e.blob, true
}

// SetBlob stores downloaded contents for an attachment.
func (s *RenameSet) SetBlob(id string, data []byte) {
	if e, ok := s.byID[id]; ok {
		e.blob = data
		e.hasBlob = true
	}
}

// Lookup finds an attachment by its current name.
// The returned attachment carries its original Filename.
func (s *RenameSet) Lookup(name string) (Attachment, bool) {
	e := s.find(name)
	if e == nil {
		return Attachment{}, false
	}
	return e.attachment, true
}

func (s *RenameSet) find(name string) *renameEntry {
	for _, e := range s.entries {
		if sameName(e.current, name) {
			return e
		}
	}
	return nil
}

// sameName reports whether two names are equal after NFC normalization.
// Servers return names in whatever form the uploader used.
func sameName(a, b string) bool {
	return a == b || norm.NFC.String(a) == norm.NFC.String(b)
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// Rename changes the base name of the attachment currently called name.
// The suffix is kept; if newBase already ends with it, it is not doubled.
// It returns the resulting full name.
func (s *RenameSet) Rename(name, newBase string) (string, error) {
	e := s.find(name)
	if e == nil {
		return "", fmt.Errorf("%w: %q", ErrAttachmentNotFound, name)
	}
	return s.rename(e, newBase)
}

// RenameByID is Rename addressed by attachment ID.
func (s *RenameSet) RenameByID(id, newBase string) (string, error) {
	e, ok := s.byID[id]
	if !ok {
		return "", fmt.Errorf("%w: id %s", ErrAttachmentNotFound, id)
	}
	return s.rename(e, newBase)
}

func (s *RenameSet) rename(e *renameEntry, newBase string) (string, error) {
	base := norm.NFC.String(strings.TrimSpace(newBase))
	_, suffix := SplitFilename(e.attachment.Filename)
	if suffix != "" && hasSuffixFold(base, suffix) {
		base = base[:len(base)-len(suffix)]
	}
	if err := ValidateBaseName(base); err != nil {
		return "", err
	}
	newName := base + suffix
	if sameName(newName, e.current) {
		return e.current, nil
	}
	for _, other := range s.entries {
		if other != e && sameName(other.current, newName) {
			return "", fmt.Errorf("%w: %q", ErrDuplicateName, newName)
		}
	}
	if sameName(newName, e.attachment.Filename) {
		newName = e.attachment.Filename
	}
	e.current = newName
	return newName, nil
}

// Reset restores the original name of the attachment currently called name.
func (s *RenameSet) Reset(name string) error {
	e := s.find(name)
	if e == nil {
		return fmt.Errorf("%w: %q", ErrAttachmentNotFound, name)
	}
	for _, other := range s.entries {
		if other != e && sameName(other.current, e.attachment.Filename) {
			return fmt.Errorf("%w: %q", ErrDuplicateName, e.attachment.Filename)
		}
	}
	e.current = e.attachment.Filename
	return nil
}

// ResetAll restores every original name.
func (s *RenameSet) ResetAll() {
	for _, e := range s.entries {
		e.current = e.attachment.Filename
	}
}

// Changes diffs current names against original names.
// The result is sorted by old name.
func (s *RenameSet) Changes() []Change {
	var changes []Change
	for _, e := range s.entries {
		if e.current != e.attachment.Filename {
			changes = append(changes, Change{
				AttachmentID: e.attachment.ID,
				OldName:      e.attachment.Filename,
				NewName:      e.current,
			})
		}
	}
	slices.SortFunc(changes, func(a, b Change) int {
		if c := cmp.Compare(a.OldName, b.OldName); c != 0 {
			return c
		}
		return cmp.Compare(a.AttachmentID, b.AttachmentID)
	})
	return changes
}

// Dirty reports whether any attachment has been renamed.
func (s *RenameSet) Dirty() bool {
	for _, e := range s.entries {
		if e.current != e.attachment.Filename {
			return true
		}
	}
	return false
}

// ValidateBaseName checks a base name typed by the user.
func ValidateBaseName(base string) error {
	if base == "" {
		return ErrEmptyName
	}
	if base == "." || base == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, base)
	}
	for _, r := range base {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q", ErrInvalidName, base)
		}
	}
	return nil
}

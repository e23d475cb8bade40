package domain

import (
	"cmp"
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"
	"time"
)

// Attachment is a file attached to an issue.
// Fields are ordered to minimize memory padding.
type Attachment struct {
	Created    time.Time
	ID         string
	Filename   string
	Author     string
	MimeType   string
	ContentURL string // Download URL reported by the server
	Size       int64
}

// Issue is an issue with its attachments.
type Issue struct {
	Key         string
	Summary     string
	Attachments []Attachment
}

// User is the account a tracker session is authenticated as.
type User struct {
	Name        string
	DisplayName string
	Email       string
}

// issueKeyPattern matches project-prefixed keys such as TES-3.
var issueKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*-[0-9]+$`)

// NormalizeIssueKey trims and upper-cases an issue key and validates it.
func NormalizeIssueKey(key string) (string, error) {
	k := strings.ToUpper(strings.TrimSpace(key))
	if !issueKeyPattern.MatchString(k) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIssueKey, key)
	}
	return k, nil
}

// SplitFilename splits a filename into base name and suffix.
// The suffix is the final extension including the dot. A leading dot
// alone does not start a suffix, so ".env" has no suffix.
func SplitFilename(name string) (base, suffix string) {
	ext := path.Ext(name)
	if ext == "" || ext == name {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}

// SortField selects the attachment attribute used for ordering.
type SortField string

// Sort fields.
const (
	SortByName    SortField = "name"
	SortByCreated SortField = "created"
	SortByAuthor  SortField = "author"
	SortBySize    SortField = "size"
)

// AllSortFields lists the sort fields in cycling order.
var AllSortFields = []SortField{SortByName, SortByCreated, SortByAuthor, SortBySize}

// ParseSortField parses a sort field name. Empty means name.
func ParseSortField(s string) (SortField, error) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return SortByName, nil
	case SortByName, SortByCreated, SortByAuthor, SortBySize:
		return f, nil
	default:
		return "", fmt.Errorf("unknown sort field %q (want name, created, author or size)", s)
	}
}

// Next returns the field after f in AllSortFields, wrapping around.
func (f SortField) Next() SortField {
	i := slices.Index(AllSortFields, f)
	return AllSortFields[(i+1)%len(AllSortFields)]
}

// SortAttachments sorts attachments in place by field.
// Ties are broken by filename so the order is deterministic.
func SortAttachments(list []Attachment, field SortField, desc bool) {
	slices.SortStableFunc(list, func(a, b Attachment) int {
		var c int
		switch field {
		case SortByCreated:
			c = a.Created.Compare(b.Created)
		case SortByAuthor:
			c = cmp.Compare(strings.ToLower(a.Author), strings.ToLower(b.Author))
		case SortBySize:
			c = cmp.Compare(a.Size, b.Size)
		case SortByName:
		}
		if c == 0 {
			c = cmp.Compare(strings.ToLower(a.Filename), strings.ToLower(b.Filename))
		}
		if desc {
			return -c
		}
		return c
	})
}

// FilterByType keeps attachments whose suffix matches one of types.
// Types are compared case-insensitively; the leading dot is optional.
// An empty types list keeps everything.
func FilterByType(list []Attachment, types []string) []Attachment {
	if len(types) == 0 {
		return list
	}
	want := make(map[string]bool, len(types))
	for _, t := range types {
		t = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "."))
		if t != "" {
			want["."+t] = true
		}
	}
	if len(want) == 0 {
		return list
	}
	out := make([]Attachment, 0, len(list))
	for _, a := range list {
		_, suffix := SplitFilename(a.Filename)
		if want[strings.ToLower(suffix)] {
			out = append(out, a)
		}
	}
	return out
}

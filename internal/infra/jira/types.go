package jira

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/runoshun/jira-attach/internal/domain"
)

// timeLayout is the timestamp format of the JIRA REST API.
const timeLayout = "2006-01-02T15:04:05.000-0700"

// userJSON represents a JIRA user.
type userJSON struct {
	Name         string `json:"name"`
	Key          string `json:"key,omitempty"`
	AccountID    string `json:"accountId,omitempty"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// attachmentJSON represents an attachment in issue fields and upload responses.
type attachmentJSON struct {
	Author   *userJSON `json:"author,omitempty"`
	ID       string    `json:"id"`
	Filename string    `json:"filename"`
	Created  string    `json:"created"`
	MimeType string    `json:"mimeType"`
	Content  string    `json:"content"`
	Size     int64     `json:"size"`
}

// issueJSON represents an issue restricted to the fields we request.
type issueJSON struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields struct {
		Summary    string           `json:"summary"`
		Attachment []attachmentJSON `json:"attachment"`
	} `json:"fields"`
}

// errorJSON is the error body JIRA returns for 4xx responses.
type errorJSON struct {
	Errors        map[string]string `json:"errors"`
	ErrorMessages []string          `json:"errorMessages"`
}

// errorMessage extracts a readable message from an error response body.
func errorMessage(body []byte) string {
	var e errorJSON
	if err := json.Unmarshal(body, &e); err != nil {
		return string(body)
	}
	msgs := append([]string(nil), e.ErrorMessages...)
	keys := make([]string, 0, len(e.Errors))
	for k := range e.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		msgs = append(msgs, k+": "+e.Errors[k])
	}
	if len(msgs) == 0 {
		return string(body)
	}
	return strings.Join(msgs, "; ")
}

// parseTime parses a JIRA timestamp; unparsable values give the zero time.
func parseTime(s string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (u *userJSON) display() string {
	if u == nil {
		return ""
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Name
}

func (a attachmentJSON) toDomain() domain.Attachment {
	return domain.Attachment{
		ID:         a.ID,
		Filename:   a.Filename,
		Author:     a.Author.display(),
		Created:    parseTime(a.Created),
		Size:       a.Size,
		MimeType:   a.MimeType,
		ContentURL: a.Content,
	}
}

func (i issueJSON) toDomain() *domain.Issue {
	issue := &domain.Issue{
		Key:         i.Key,
		Summary:     i.Fields.Summary,
		Attachments: make([]domain.Attachment, 0, len(i.Fields.Attachment)),
	}
	for _, a := range i.Fields.Attachment {
		issue.Attachments = append(issue.Attachments, a.toDomain())
	}
	return issue
}

// Package jira implements domain.Tracker against the JIRA REST API (v2).
package jira

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/runoshun/jira-attach/internal/domain"
)

// Ensure interface compliance.
var (
	_ domain.Tracker        = (*Client)(nil)
	_ domain.TrackerFactory = (*Factory)(nil)
)

// Client is an authenticated JIRA REST client.
type Client struct {
	t *transport
}

// Factory creates Clients from profiles.
type Factory struct {
	// Transport overrides the HTTP transport (tests).
	Transport http.RoundTripper
	// UserAgent overrides the User-Agent header.
	UserAgent string
}

// NewFactory creates a Factory using the default transport.
func NewFactory(userAgent string) *Factory {
	return &Factory{UserAgent: userAgent}
}

// Connect builds a Client for the profile without contacting the server.
func (f *Factory) Connect(p domain.Profile) (domain.Tracker, error) {
	return NewClient(p, f.Transport, f.UserAgent)
}

// NewClient creates a Client. A nil rt uses http.DefaultTransport, with TLS
// verification disabled when the profile asks for it.
func NewClient(p domain.Profile, rt http.RoundTripper, userAgent string) (*Client, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	base, err := url.Parse(p.Server)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q", p.Server)
	}

	if rt == nil && p.Insecure {
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // Requested by the user for self-signed servers
		rt = tr
	}

	return &Client{t: newTransport(transportConfig{
		BaseURL:    p.Server,
		Username:   p.Username,
		Password:   p.Password,
		Timeout:    p.Timeout,
		RateLimit:  p.RateLimit,
		MaxRetries: p.MaxRetries,
		UserAgent:  userAgent,
		Transport:  rt,
	})}, nil
}

// Myself returns the authenticated user.
func (c *Client) Myself(ctx context.Context) (*domain.User, error) {
	resp, err := c.t.do(ctx, &request{Method: http.MethodGet, Path: "/rest/api/2/myself"})
	if err != nil {
		return nil, mapAuthError(err)
	}

	var u userJSON
	if err := json.Unmarshal(resp.Body, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &domain.User{Name: u.Name, DisplayName: u.display(), Email: u.EmailAddress}, nil
}

// GetIssue retrieves an issue with its attachments.
func (c *Client) GetIssue(ctx context.Context, key string) (*domain.Issue, error) {
	resp, err := c.t.do(ctx, &request{
		Method: http.MethodGet,
		Path:   "/rest/api/2/issue/" + url.PathEscape(key),
		Query:  url.Values{"fields": {"summary,attachment"}},
	})
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrIssueNotFound, key)
		}
		return nil, mapAuthError(err)
	}

	var issue issueJSON
	if err := json.Unmarshal(resp.Body, &issue); err != nil {
		return nil, fmt.Errorf("decode issue: %w", err)
	}
	return issue.toDomain(), nil
}

// Download retrieves the contents of an attachment.
func (c *Client) Download(ctx context.Context, att domain.Attachment) ([]byte, error) {
	path := att.ContentURL
	if path == "" {
		path = "/secure/attachment/" + url.PathEscape(att.ID) + "/" + url.PathEscape(att.Filename)
	}
	resp, err := c.t.do(ctx, &request{
		Method:  http.MethodGet,
		Path:    path,
		Headers: map[string]string{"Accept": "*/*"},
	})
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, att.Filename)
		}
		return nil, mapAuthError(err)
	}
	return resp.Body, nil
}

// AddAttachment uploads a file to an issue.
func (c *Client) AddAttachment(ctx context.Context, issueKey, filename string, r io.Reader) (*domain.Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	resp, err := c.t.do(ctx, &request{
		Method: http.MethodPost,
		Path:   "/rest/api/2/issue/" + url.PathEscape(issueKey) + "/attachments",
		Body:   buf.Bytes(),
		Headers: map[string]string{
			"Content-Type":      mw.FormDataContentType(),
			"X-Atlassian-Token": "no-check",
		},
	})
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", domain.ErrIssueNotFound, issueKey)
		}
		return nil, mapAuthError(err)
	}

	var created []attachmentJSON
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		return nil, fmt.Errorf("decode attachment: %w", err)
	}
	if len(created) == 0 {
		return nil, errors.New("server returned no attachment")
	}
	att := created[0].toDomain()
	return &att, nil
}

// DeleteAttachment removes an attachment.
func (c *Client) DeleteAttachment(ctx context.Context, id string) error {
	_, err := c.t.do(ctx, &request{
		Method: http.MethodDelete,
		Path:   "/rest/api/2/attachment/" + url.PathEscape(id),
	})
	if err != nil {
		if statusCode(err) == http.StatusNotFound {
			return fmt.Errorf("%w: id %s", domain.ErrAttachmentNotFound, id)
		}
		return mapAuthError(err)
	}
	return nil
}

// mapAuthError turns 401/403 into ErrLoginFailed.
func mapAuthError(err error) error {
	switch statusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", domain.ErrLoginFailed, err)
	}
	return err
}

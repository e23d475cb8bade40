// Package history stores the change log in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/runoshun/jira-attach/internal/domain"
)

// Ensure Store implements domain.ChangeLog.
var _ domain.ChangeLog = (*Store)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS changes (
	id INTEGER PRIMARY KEY,
	batch_id TEXT NOT NULL,
	issue_key TEXT NOT NULL,
	attachment_id TEXT NOT NULL,
	new_attachment_id TEXT NOT NULL DEFAULT '',
	old_name TEXT NOT NULL,
	new_name TEXT NOT NULL,
	status TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_changes_issue ON changes(issue_key, id);
`

// Store implements domain.ChangeLog on SQLite.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("sqlite mkdir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Record appends rec and returns it with its ID set.
func (s *Store) Record(ctx context.Context, rec domain.ChangeRecord) (domain.ChangeRecord, error) {
	if rec.Status == domain.ChangePlanned {
		return rec, fmt.Errorf("record change: planned changes are not stored")
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO changes (batch_id, issue_key, attachment_id, new_attachment_id, old_name, new_name, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.BatchID, rec.IssueKey, rec.AttachmentID, rec.NewAttachmentID,
		rec.OldName, rec.NewName, string(rec.Status), rec.Error,
		rec.Time.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return rec, fmt.Errorf("record change: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return rec, fmt.Errorf("record change: %w", err)
	}
	rec.ID = id
	return rec, nil
}

// List returns change records, newest first.
func (s *Store) List(ctx context.Context, filter domain.ChangeFilter) ([]domain.ChangeRecord, error) {
	var (
		where []string
		args  []any
	)
	if filter.IssueKey != "" {
		where = append(where, "issue_key = ?")
		args = append(args, filter.IssueKey)
	}

	q := `SELECT id, batch_id, issue_key, attachment_id, new_attachment_id, old_name, new_name, status, error, created_at FROM changes`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC"
	if filter.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list changes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.ChangeRecord
	for rows.Next() {
		var (
			rec     domain.ChangeRecord
			status  string
			created string
		)
		if err := rows.Scan(&rec.ID, &rec.BatchID, &rec.IssueKey, &rec.AttachmentID, &rec.NewAttachmentID,
			&rec.OldName, &rec.NewName, &status, &rec.Error, &created); err != nil {
			return nil, fmt.Errorf("list changes: %w", err)
		}
		rec.Status = domain.ChangeStatus(status)
		t, err := parseTime(created, "list changes")
		if err != nil {
			return nil, err
		}
		rec.Time = t
		out = append(out, rec)
	}
	return out, rows.Err()
}

// parseTime parses RFC3339Nano or returns zero time and error.
func parseTime(s, context string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: parse timestamp %q: %w", context, s, err)
	}
	return t, nil
}

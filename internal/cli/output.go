package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/runoshun/jira-attach/internal/domain"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

const timeLayout = "2006-01-02 15:04"

func parseOutputFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "", formatTable:
		return formatTable, nil
	case formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// writeStructured writes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// attachmentRow is the structured form of a listed attachment.
type attachmentRow struct {
	Created  time.Time `json:"created" yaml:"created"`
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Original string    `json:"original,omitempty" yaml:"original,omitempty"` // Set when renamed
	Author   string    `json:"author" yaml:"author"`
	MimeType string    `json:"mimeType,omitempty" yaml:"mime_type,omitempty"`
	Size     int64     `json:"size" yaml:"size"`
}

func attachmentRows(set *domain.RenameSet, list []domain.Attachment) []attachmentRow {
	rows := make([]attachmentRow, 0, len(list))
	for _, a := range list {
		row := attachmentRow{
			ID:       a.ID,
			Name:     a.Filename,
			Author:   a.Author,
			Created:  a.Created,
			Size:     a.Size,
			MimeType: a.MimeType,
		}
		if orig, ok := set.Original(a.ID); ok && orig != a.Filename {
			row.Original = orig
		}
		rows = append(rows, row)
	}
	return rows
}

// printAttachments prints attachments as an aligned table.
func printAttachments(w io.Writer, rows []attachmentRow) {
	t := newTable("NAME", "ORIGINAL", "AUTHOR", "CREATED", "SIZE")
	for _, r := range rows {
		orig := "-"
		if r.Original != "" {
			orig = r.Original
		}
		t.add(r.Name, orig, r.Author, r.Created.Local().Format(timeLayout), humanize.Bytes(uint64(max(r.Size, 0))))
	}
	t.write(w)
}

// printChanges prints change records as an aligned table.
func printChanges(w io.Writer, records []domain.ChangeRecord) {
	t := newTable("TIME", "ISSUE", "STATUS", "OLD NAME", "NEW NAME", "ERROR")
	for _, r := range records {
		t.add(r.Time.Local().Format(timeLayout), r.IssueKey, string(r.Status), r.OldName, r.NewName, r.Error)
	}
	t.write(w)
}

// table aligns columns by display width, so wide characters in file
// names do not break the layout.
type table struct {
	rows [][]string
}

func newTable(header ...string) *table {
	return &table{rows: [][]string{header}}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) write(w io.Writer) {
	widths := make([]int, len(t.rows[0]))
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	for _, row := range t.rows {
		var b strings.Builder
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
			b.WriteString("  ")
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}
}

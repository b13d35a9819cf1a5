// package formatter provides functions to export catalog artifacts to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/tunevault/internal/catalog"
	"github.com/desertthunder/tunevault/internal/models"
	"github.com/desertthunder/tunevault/internal/shared"
)

// Format is an export file format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// Formats lists every supported [Format].
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

// ParseFormat accepts a format name or a common alias ("markdown", "text").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, s)
	}
}

// Entry is one artifact as it appears in an export, with its content decoded.
type Entry struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Content  string `json:"content"`
	Created  string `json:"creation_date"`
	Modified string `json:"modification_date"`
	Checksum string `json:"checksum"`
}

// Export is a snapshot of the catalog.
type Export struct {
	ExportedAt string  `json:"exported_at"`
	Entries    []Entry `json:"artifacts"`
}

// NewExport builds an [Export] from stored artifacts, reversing the content transform.
func NewExport(artifacts []*models.Artifact, exportedAt time.Time) *Export {
	entries := make([]Entry, 0, len(artifacts))
	for _, a := range artifacts {
		entries = append(entries, Entry{
			ID:       a.ID(),
			Title:    a.Title(),
			Artist:   a.Artist(),
			Content:  catalog.TransformContent(a.Content()),
			Created:  shared.FormatTimestamp(a.CreatedAt()),
			Modified: shared.FormatTimestamp(a.UpdatedAt()),
			Checksum: a.Checksum(),
		})
	}
	return &Export{ExportedAt: shared.FormatTimestamp(exportedAt), Entries: entries}
}

// ExportToCSV converts an Export to CSV format with columns: ID, Title, Artist, Created, Modified, Checksum
func ExportToCSV(export *Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Created", "Modified", "Checksum"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range export.Entries {
		record := []string{
			strconv.FormatInt(e.ID, 10),
			e.Title,
			e.Artist,
			e.Created,
			e.Modified,
			e.Checksum,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an Export to Markdown with one section per artifact
func ExportToMarkdown(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Catalog\n\n")
	buf.WriteString(fmt.Sprintf("**Exported**: %s\n", export.ExportedAt))
	buf.WriteString(fmt.Sprintf("**Artifacts**: %d\n\n", len(export.Entries)))

	for _, e := range export.Entries {
		buf.WriteString(fmt.Sprintf("## %d. %s - %s\n\n", e.ID, e.Artist, e.Title))
		buf.WriteString(fmt.Sprintf("- Created: %s\n", e.Created))
		buf.WriteString(fmt.Sprintf("- Modified: %s\n", e.Modified))
		buf.WriteString(fmt.Sprintf("- Checksum: `%s`\n\n", e.Checksum))
		if e.Content != "" {
			buf.WriteString("```\n")
			buf.WriteString(e.Content)
			if !strings.HasSuffix(e.Content, "\n") {
				buf.WriteString("\n")
			}
			buf.WriteString("```\n\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts an Export to plain text format
func ExportToText(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Artifacts: %d\n\n", len(export.Entries)))
	for _, e := range export.Entries {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n", e.ID, e.Artist, e.Title, e.Modified))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts an Export to indented JSON
func ExportToJSON(export *Export) ([]byte, error) {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Render converts export to format.
func Render(export *Export, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatText:
		return ExportToText(export)
	case FormatJSON:
		return ExportToJSON(export)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// Write renders export to w.
func Write(w io.Writer, export *Export, format Format) error {
	data, err := Render(export, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// WriteFile renders export to path.
//
// Defaults to catalog.{format} as the filename. Returns the path written.
func WriteFile(export *Export, format Format, path string) (string, error) {
	if path == "" {
		path = "catalog." + string(format)
	}

	data, err := Render(export, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

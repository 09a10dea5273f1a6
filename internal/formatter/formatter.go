// package formatter provides functions to export favorites and history to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/desertthunder/tunebox/internal/models"
	"github.com/desertthunder/tunebox/internal/shared"
)

// Supported export formats.
const (
	FormatCSV      = "csv"
	FormatMarkdown = "md"
	FormatText     = "txt"
)

// Entry is one song in an export. Title and Artist are empty when the ID is not in the catalog.
type Entry struct {
	Position int
	ID       string
	Title    string
	Artist   string
	Chart    string
}

// Known reports whether the entry was resolved against the catalog.
func (e Entry) Known() bool { return e.Title != "" }

// Label renders the entry for humans, falling back to the raw ID.
func (e Entry) Label() string {
	switch {
	case !e.Known():
		return e.ID
	case e.Artist == "":
		return e.Title
	default:
		return fmt.Sprintf("%s - %s", e.Artist, e.Title)
	}
}

// Export is a named, ordered song collection ready to be rendered.
type Export struct {
	Name    string // Name is the collection, e.g. "favorites" or "history"
	Owner   string // Owner is the username, empty for the anonymous partition
	Entries []Entry
}

// NewExport resolves ids against songs, preserving the order of ids.
func NewExport(name, owner string, ids []string, songs []*models.Song) *Export {
	byID := make(map[string]*models.Song, len(songs))
	for _, s := range songs {
		byID[s.ID()] = s
	}

	export := &Export{Name: name, Owner: owner, Entries: make([]Entry, 0, len(ids))}
	for i, id := range ids {
		entry := Entry{Position: i + 1, ID: id}
		if s, ok := byID[id]; ok {
			entry.Title = s.Title()
			entry.Artist = s.Artist()
			entry.Chart = s.Chart()
		}
		export.Entries = append(export.Entries, entry)
	}
	return export
}

func (e *Export) owner() string {
	if e.Owner == "" {
		return "anonymous"
	}
	return e.Owner
}

// ExportToCSV converts an Export to CSV format with columns: Position, ID, Title, Artist, Chart
func ExportToCSV(export *Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "ID", "Title", "Artist", "Chart"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range export.Entries {
		record := []string{
			strconv.Itoa(entry.Position),
			entry.ID,
			entry.Title,
			entry.Artist,
			entry.Chart,
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

// ExportToMarkdown converts an Export to Markdown format
func ExportToMarkdown(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", titleCase(export.Name))
	fmt.Fprintf(&buf, "**Owner**: %s\n", export.owner())
	fmt.Fprintf(&buf, "**Songs**: %d\n\n", len(export.Entries))

	if len(export.Entries) == 0 {
		buf.WriteString("_Empty._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("## Songs\n\n")
	for _, entry := range export.Entries {
		chartPart := ""
		if entry.Chart != "" {
			chartPart = fmt.Sprintf(" [%s]", entry.Chart)
		}
		fmt.Fprintf(&buf, "%d. %s%s\n", entry.Position, entry.Label(), chartPart)
	}

	return buf.Bytes(), nil
}

// ExportToText converts an Export to plain text format
func ExportToText(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s (%s)\n", titleCase(export.Name), export.owner())
	fmt.Fprintf(&buf, "Songs: %d\n\n", len(export.Entries))

	for _, entry := range export.Entries {
		fmt.Fprintf(&buf, "%d. %s\n", entry.Position, entry.Label())
	}

	return buf.Bytes(), nil
}

// CheckFormat returns an error wrapping [shared.ErrInvalidFlag] for unsupported formats.
func CheckFormat(format string) error {
	switch Extension(format) {
	case FormatCSV, FormatMarkdown, FormatText:
		return nil
	default:
		return fmt.Errorf("%w: unsupported format %q (use csv, md or txt)", shared.ErrInvalidFlag, format)
	}
}

// Render dispatches to the exporter for format.
func Render(export *Export, format string) ([]byte, error) {
	if err := CheckFormat(format); err != nil {
		return nil, err
	}

	switch Extension(format) {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	default:
		return ExportToText(export)
	}
}

// WriteExport renders export and writes it to path.
//
// Defaults to {owner}_{name}.{format} as the filename.
func WriteExport(export *Export, format, path string) (string, error) {
	data, err := Render(export, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = fmt.Sprintf("%s_%s.%s", url.PathEscape(export.owner()), export.Name, Extension(format))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// Extension normalizes a format name ("markdown", "TXT") to its file extension.
func Extension(format string) string {
	switch strings.ToLower(format) {
	case "markdown":
		return FormatMarkdown
	case "text":
		return FormatText
	default:
		return strings.ToLower(format)
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

package formatter

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/tunevault/internal/catalog"
	"github.com/desertthunder/tunevault/internal/models"
	"github.com/desertthunder/tunevault/internal/shared"
	th "github.com/desertthunder/tunevault/internal/testing"
)

func testExport() *Export {
	created := time.Date(2024, 2, 3, 10, 0, 0, 0, time.Local)
	artifacts := []*models.Artifact{
		models.NewArtifact(1, "Song One", "Artist One", catalog.TransformContent("hello"), catalog.Checksum("hello"), created),
		models.NewArtifact(2, "Song, Two", "Artist Two", catalog.TransformContent("la la\nla"), catalog.Checksum("la la\nla"), created),
	}
	return NewExport(artifacts, created.Add(time.Hour))
}

func TestNewExport(t *testing.T) {
	export := testExport()

	if len(export.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(export.Entries))
	}
	if export.Entries[0].Content != "hello" {
		t.Errorf("expected decoded content, got %q", export.Entries[0].Content)
	}
	if export.Entries[0].Created != "2024-02-03T10:00:00.000000" {
		t.Errorf("unexpected created timestamp %s", export.Entries[0].Created)
	}
	if export.ExportedAt != "2024-02-03T11:00:00.000000" {
		t.Errorf("unexpected export timestamp %s", export.ExportedAt)
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.HasPrefix(output, "ID,Title,Artist,Created,Modified,Checksum\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "1,Song One,Artist One,") {
			t.Errorf("CSV missing first record")
		}
		if !strings.Contains(output, `"Song, Two"`) {
			t.Errorf("CSV should quote titles containing commas")
		}
		if !strings.Contains(output, catalog.Checksum("hello")) {
			t.Errorf("CSV missing checksum")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testExport())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		for _, want := range []string{
			"# Catalog",
			"**Artifacts**: 2",
			"## 1. Artist One - Song One",
			"```\nhello\n```",
			"```\nla la\nla\n```",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Artifacts: 2") {
			t.Errorf("Text missing count")
		}
		if !strings.Contains(output, "2. Artist Two - Song, Two [2024-02-03T10:00:00.000000]") {
			t.Errorf("Text missing second entry, got:\n%s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(testExport())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded Export
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded.Entries) != 2 || decoded.Entries[1].Content != "la la\nla" {
			t.Errorf("unexpected decoded export: %+v", decoded)
		}
		if !strings.Contains(string(data), `"creation_date"`) {
			t.Errorf("JSON should use column names")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		export := NewExport(nil, time.Now())
		for _, f := range Formats {
			if _, err := Render(export, f); err != nil {
				t.Errorf("Render(%s) failed on empty export: %v", f, err)
			}
		}
	})
}

func TestParseFormat(t *testing.T) {
	tc := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "csv", want: FormatCSV},
		{in: "Markdown", want: FormatMarkdown},
		{in: "md", want: FormatMarkdown},
		{in: "text", want: FormatText},
		{in: " json ", want: FormatJSON},
		{in: "xml", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestWrite(t *testing.T) {
	t.Run("writer error", func(t *testing.T) {
		if err := Write(&th.FWriter{}, testExport(), FormatText); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		var sb strings.Builder
		if err := Write(&sb, testExport(), Format("yaml")); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestWriteFile(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")

		got, err := WriteFile(testExport(), FormatCSV, path)
		if err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}

		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.Contains(content, "Song One") {
			t.Errorf("file missing content: %s", content)
		}
	})

	t.Run("default path", func(t *testing.T) {
		th.MustChdir(t, t.TempDir())

		got, err := WriteFile(testExport(), FormatMarkdown, "")
		if err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
		if got != "catalog.md" {
			t.Errorf("expected catalog.md, got %s", got)
		}
		th.AssertFileExists(t, got)
	})

	t.Run("unwritable path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "dir", "out.txt")
		if _, err := WriteFile(testExport(), FormatText, path); err == nil {
			t.Error("expected error for missing directory")
		}
	})
}

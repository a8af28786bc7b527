package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bundlestats/bundlestats/internal/build"
	"github.com/bundlestats/bundlestats/internal/catalog"
	"github.com/bundlestats/bundlestats/internal/options"
)

// sampleRecord builds a small session with one asset and one warning.
func sampleRecord() *build.Record {
	return &build.Record{
		Hash:    "9a1b2c3d4e5f",
		Version: "5.4.1",
		Assets: []build.Asset{
			{Name: "main.js", Size: 120, Chunks: []int{0}, ChunkNames: []string{"main"}, Emitted: true},
		},
		Warnings: []build.Problem{
			{Message: "Critical dependency"},
		},
	}
}

// generate runs the full extraction stage for tests.
func generate(t *testing.T, opts options.Options) *Report {
	t.Helper()

	rec := sampleRecord()
	rep, err := NewGenerator(catalog.Default()).Generate(
		context.Background(), build.NewMemorySession(rec), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rep
}

// TestTextWriter tests the terminal rendering of a one-asset report.
func TestTextWriter(t *testing.T) {
	t.Parallel()

	rep := generate(t, options.Options{"assets": true})

	var buf bytes.Buffer
	w := NewTextWriter(&buf, catalog.Default())

	n, err := w.Write(rep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}

	out := buf.String()
	if !strings.Contains(out, "Asset") {
		t.Errorf("expected table header in output: %s", out)
	}
	if !strings.Contains(out, "main.js") {
		t.Errorf("expected asset name in output: %s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("expected trailing newline")
	}
}

// TestTextWriterEmptyReport tests that a fully gated-off report writes
// nothing.
func TestTextWriterEmptyReport(t *testing.T) {
	t.Parallel()

	rep := generate(t, options.Options{})

	var buf bytes.Buffer
	n, err := NewTextWriter(&buf, catalog.Default()).Write(rep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 || buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

// TestJSONWriter tests compact and pretty output.
func TestJSONWriter(t *testing.T) {
	t.Parallel()

	rep := generate(t, options.Options{"assets": true})

	t.Run("compact is one line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		out := buf.String()
		if strings.Count(out, "\n") != 1 || !strings.HasSuffix(out, "\n") {
			t.Errorf("expected single-line output: %q", out)
		}
		if !json.Valid([]byte(out)) {
			t.Errorf("expected valid JSON: %s", out)
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(rep); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !strings.Contains(buf.String(), "\n  \"assets\"") {
			t.Errorf("expected indented output: %s", buf.String())
		}
	})
}

// TestFullJSONWriter tests the versioned envelope.
func TestFullJSONWriter(t *testing.T) {
	t.Parallel()

	rep := generate(t, options.Options{"assets": true})
	rep.RecordPath = "stats.json"

	var buf bytes.Buffer
	if _, err := NewFullJSONWriter(&buf).Write(rep); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var envelope struct {
		Version    string          `json:"version"`
		RecordPath string          `json:"recordPath"`
		Report     json.RawMessage `json:"report"`
	}
	if err := json.Unmarshal(buf.Bytes(), &envelope); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if envelope.Version != FormatVersion {
		t.Errorf("expected version %q, got %q", FormatVersion, envelope.Version)
	}
	if envelope.RecordPath != "stats.json" {
		t.Errorf("expected record path, got %q", envelope.RecordPath)
	}
	if !strings.Contains(string(envelope.Report), "main.js") {
		t.Errorf("expected report tree in envelope: %s", envelope.Report)
	}
}

// TestMarkdownWriter tests the Markdown sections.
func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	rep := generate(t, options.Options{
		"hash":     true,
		"assets":   true,
		"warnings": true,
	})

	var buf bytes.Buffer
	n, err := NewMarkdownWriter(&buf).Write(rep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != buf.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}

	out := buf.String()
	for _, want := range []string{
		"# Build Report",
		"9a1b2c3d4e5f",
		"## Assets",
		"main.js",
		"[!WARNING]",
		"## Warnings",
		"Critical dependency",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

// TestMultiWriter tests fan-out and byte accounting.
func TestMultiWriter(t *testing.T) {
	t.Parallel()

	rep := generate(t, options.Options{"assets": true})

	var a, b bytes.Buffer
	mw := NewMultiWriter(NewJSONWriter(&a), NewJSONWriter(&b))

	n, err := mw.Write(rep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != a.Len()+b.Len() {
		t.Errorf("reported %d bytes, wrote %d", n, a.Len()+b.Len())
	}
	if a.String() != b.String() {
		t.Error("expected identical output from both writers")
	}
}

// TestGeneratorCancelled tests that a cancelled context stops
// generation before extraction.
func TestGeneratorCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator(catalog.Default()).Generate(
		ctx, build.NewMemorySession(sampleRecord()), options.Options{"assets": true})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// TestGeneratorFileMissing tests the missing-record error.
func TestGeneratorFileMissing(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(catalog.Default()).GenerateFile(
		context.Background(), filepath.Join(t.TempDir(), "absent.json"), options.Options{})
	if !errors.Is(err, build.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

// TestBatch tests ordering and per-record error capture.
func TestBatch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	data, err := json.Marshal(sampleRecord())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(good, data, 0o600); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.json")

	b := NewBatch(NewGenerator(catalog.Default()), WithConcurrency(2))
	results, err := b.Run(context.Background(), []string{good, missing}, options.Options{"assets": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Path != good || results[0].Err != nil || results[0].Report == nil {
		t.Errorf("expected first record to succeed: %+v", results[0])
	}
	if results[0].Report.RecordPath != good {
		t.Errorf("expected record path %q, got %q", good, results[0].Report.RecordPath)
	}
	if results[1].Path != missing || !errors.Is(results[1].Err, build.ErrRecordNotFound) {
		t.Errorf("expected second record to fail with ErrRecordNotFound: %+v", results[1])
	}
}

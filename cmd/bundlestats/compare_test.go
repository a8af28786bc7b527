package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bundlestats/bundlestats/internal/build"
)

// runCompareCommand executes the compare command with the given args.
func runCompareCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	cmd := NewCompareCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// comparisonRecords builds a pair of records covering every change kind:
// one grown, one removed, one added, one unchanged asset.
func comparisonRecords() (*build.Record, *build.Record) {
	oldRecord := &build.Record{
		Hash: "aaaa1111",
		Assets: []build.Asset{
			{Name: "main.js", Size: 100},
			{Name: "legacy.js", Size: 50},
			{Name: "styles.css", Size: 30},
		},
	}
	newRecord := &build.Record{
		Hash: "bbbb2222",
		Assets: []build.Asset{
			{Name: "main.js", Size: 180},
			{Name: "vendor.js", Size: 70},
			{Name: "styles.css", Size: 30},
		},
	}
	return oldRecord, newRecord
}

// TestNewCompareCmd tests the compare command flags.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	for _, flag := range []string{"json", "markdown", "all"} {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("expected %s flag", flag)
		}
	}
}

// TestCompareRecords tests the diff computation.
func TestCompareRecords(t *testing.T) {
	t.Parallel()

	oldRecord, newRecord := comparisonRecords()
	result := compareRecords(oldRecord, newRecord, false)

	if result.Direction != sizeDirectionGrew {
		t.Errorf("expected direction %q, got %q", sizeDirectionGrew, result.Direction)
	}
	if result.TotalDelta != 100 {
		t.Errorf("expected total delta 100, got %d", result.TotalDelta)
	}
	if result.UnchangedCount != 1 {
		t.Errorf("expected 1 unchanged asset, got %d", result.UnchangedCount)
	}

	// Changes sort by name: legacy.js, main.js, vendor.js.
	wantStatuses := map[string]string{
		"legacy.js": assetStatusRemoved,
		"main.js":   assetStatusGrown,
		"vendor.js": assetStatusAdded,
	}
	if len(result.Changes) != len(wantStatuses) {
		t.Fatalf("expected %d changes, got %d", len(wantStatuses), len(result.Changes))
	}
	for _, ch := range result.Changes {
		if want := wantStatuses[ch.Name]; ch.Status != want {
			t.Errorf("asset %s: expected status %q, got %q", ch.Name, want, ch.Status)
		}
	}

	t.Run("include unchanged", func(t *testing.T) {
		t.Parallel()

		all := compareRecords(oldRecord, newRecord, true)
		if len(all.Changes) != 4 {
			t.Errorf("expected 4 changes with --all, got %d", len(all.Changes))
		}
	})

	t.Run("shrinking build", func(t *testing.T) {
		t.Parallel()

		reversed := compareRecords(newRecord, oldRecord, false)
		if reversed.Direction != sizeDirectionShrank {
			t.Errorf("expected direction %q, got %q", sizeDirectionShrank, reversed.Direction)
		}
		if reversed.TotalDelta != -100 {
			t.Errorf("expected total delta -100, got %d", reversed.TotalDelta)
		}
	})
}

// TestCompareCmdText tests the human-readable output.
func TestCompareCmdText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	oldRecord, newRecord := comparisonRecords()
	oldPath := writeRecordFile(t, dir, "old.json", oldRecord)
	newPath := writeRecordFile(t, dir, "new.json", newRecord)

	out, err := runCompareCommand(t, oldPath, newPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Build Comparison",
		"GREW by 100 B",
		"main.js",
		"+80 B",
		"vendor.js",
		"added",
		"legacy.js",
		"removed",
		"Unchanged: 1 assets",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	// Unchanged assets hide unless requested.
	if strings.Contains(out, "styles.css") {
		t.Errorf("expected unchanged asset to be hidden:\n%s", out)
	}
}

// TestCompareCmdAll tests that --all shows unchanged assets.
func TestCompareCmdAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	oldRecord, newRecord := comparisonRecords()
	oldPath := writeRecordFile(t, dir, "old.json", oldRecord)
	newPath := writeRecordFile(t, dir, "new.json", newRecord)

	out, err := runCompareCommand(t, "--all", oldPath, newPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "styles.css") || !strings.Contains(out, "unchanged") {
		t.Errorf("expected unchanged asset in output:\n%s", out)
	}
}

// TestCompareCmdJSON tests the JSON output shape.
func TestCompareCmdJSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	oldRecord, newRecord := comparisonRecords()
	oldPath := writeRecordFile(t, dir, "old.json", oldRecord)
	newPath := writeRecordFile(t, dir, "new.json", newRecord)

	out, err := runCompareCommand(t, "--json", oldPath, newPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result ComparisonResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.OldRecord.Path != oldPath || result.NewRecord.Path != newPath {
		t.Errorf("expected record paths in result: %+v", result)
	}
	if result.Direction != sizeDirectionGrew {
		t.Errorf("expected direction %q, got %q", sizeDirectionGrew, result.Direction)
	}
	if len(result.Changes) != 3 {
		t.Errorf("expected 3 changes, got %d", len(result.Changes))
	}
}

// TestCompareCmdMarkdown tests the Markdown output.
func TestCompareCmdMarkdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	oldRecord, newRecord := comparisonRecords()
	oldPath := writeRecordFile(t, dir, "old.json", oldRecord)
	newPath := writeRecordFile(t, dir, "new.json", newRecord)

	out, err := runCompareCommand(t, "--markdown", oldPath, newPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"# Build Comparison", "| Asset |", "main.js", "## Changed Assets"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

// TestCompareCmdErrors tests the failure modes.
func TestCompareCmdErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	oldRecord, newRecord := comparisonRecords()
	oldPath := writeRecordFile(t, dir, "old.json", oldRecord)
	newPath := writeRecordFile(t, dir, "new.json", newRecord)

	t.Run("conflicting formats", func(t *testing.T) {
		t.Parallel()

		_, err := runCompareCommand(t, "--json", "--markdown", oldPath, newPath)
		if err == nil || !strings.Contains(err.Error(), "conflicting report formats") {
			t.Errorf("expected conflicting-format error, got %v", err)
		}
	})

	t.Run("missing record", func(t *testing.T) {
		t.Parallel()

		_, err := runCompareCommand(t, oldPath, dir+"/absent.json")
		if err == nil {
			t.Error("expected error for missing record")
		}
	})

	t.Run("wrong argument count", func(t *testing.T) {
		t.Parallel()

		_, err := runCompareCommand(t, oldPath)
		if err == nil {
			t.Error("expected error for single argument")
		}
	})
}

// TestFormatSizeDelta tests signed size rendering.
func TestFormatSizeDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delta int64
		want  string
	}{
		{120, "+120 B"},
		{-120, "-120 B"},
		{0, "0"},
	}

	for _, tt := range tests {
		if got := formatSizeDelta(tt.delta); got != tt.want {
			t.Errorf("formatSizeDelta(%d) = %q, want %q", tt.delta, got, tt.want)
		}
	}
}

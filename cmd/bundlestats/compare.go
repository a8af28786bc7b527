package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bundlestats/bundlestats/internal/build"
	"github.com/bundlestats/bundlestats/internal/stats"
)

// Asset change statuses and size direction summaries.
const (
	assetStatusAdded     = "added"
	assetStatusRemoved   = "removed"
	assetStatusGrown     = "grown"
	assetStatusShrunk    = "shrunk"
	assetStatusUnchanged = "unchanged"

	sizeDirectionGrew      = "grew"
	sizeDirectionShrank    = "shrank"
	sizeDirectionUnchanged = "unchanged"
)

// NewCompareCmd creates the compare command.
// This command compares the emitted assets of two build records.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <old-record> <new-record>",
		Short: "Compare the emitted assets of two build records",
		Long: `Compare displays per-asset size differences between two build records.

It shows:
- Assets added or removed between the builds
- Per-asset size deltas for assets present in both
- The total output size change

Examples:
  # Compare two builds
  bundlestats compare before.json after.json

  # Include assets whose size did not change
  bundlestats compare --all before.json after.json

  # Output comparison in JSON format
  bundlestats compare --json before.json after.json`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	// Output format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output comparison result in Markdown format")

	// Detail flags
	cmd.Flags().BoolP("all", "a", false,
		"Include assets whose size did not change")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return fmt.Errorf("conflicting report formats: --json and --markdown cannot be used together")
	}

	includeUnchanged, err := cmd.Flags().GetBool("all")
	if err != nil {
		return err
	}

	oldRecord, err := build.LoadRecord(args[0])
	if err != nil {
		return fmt.Errorf("load record %s: %w", args[0], err)
	}
	newRecord, err := build.LoadRecord(args[1])
	if err != nil {
		return fmt.Errorf("load record %s: %w", args[1], err)
	}

	result := compareRecords(oldRecord, newRecord, includeUnchanged)
	result.OldRecord.Path = args[0]
	result.NewRecord.Path = args[1]

	out := cmd.OutOrStdout()
	if jsonOutput {
		return outputComparisonJSON(out, result)
	}
	if markdownOutput {
		return outputComparisonMarkdown(out, result)
	}
	return outputComparisonText(out, result)
}

// ComparisonResult holds the result of comparing two build records.
type ComparisonResult struct {
	// OldRecord contains metadata about the baseline build.
	OldRecord BuildMetadata `json:"old_record"`

	// NewRecord contains metadata about the compared build.
	NewRecord BuildMetadata `json:"new_record"`

	// Changes lists the per-asset differences, sorted by asset name.
	Changes []AssetChange `json:"changes,omitempty"`

	// UnchangedCount is the number of assets whose size did not change.
	// Unchanged assets appear in Changes only when requested.
	UnchangedCount int `json:"unchanged_count"`

	// TotalDelta is the change in total emitted bytes.
	TotalDelta int64 `json:"total_delta"`

	// Direction is "grew", "shrank", or "unchanged".
	Direction string `json:"direction"`
}

// BuildMetadata contains record metadata for comparison display.
type BuildMetadata struct {
	// Path is the record file.
	Path string `json:"path"`

	// Hash is the build hash.
	Hash string `json:"hash,omitempty"`

	// Version is the bundler version.
	Version string `json:"version,omitempty"`

	// BuiltAt is the build completion time.
	BuiltAt time.Time `json:"built_at,omitzero"`

	// AssetCount is the number of emitted assets.
	AssetCount int `json:"asset_count"`

	// TotalSize is the sum of all asset sizes in bytes.
	TotalSize int64 `json:"total_size"`
}

// AssetChange describes one asset's difference between the builds.
type AssetChange struct {
	// Name is the asset file name.
	Name string `json:"name"`

	// OldSize is the asset's size in the baseline build, 0 when added.
	OldSize int64 `json:"old_size"`

	// NewSize is the asset's size in the compared build, 0 when removed.
	NewSize int64 `json:"new_size"`

	// Delta is NewSize - OldSize.
	Delta int64 `json:"delta"`

	// Status is "added", "removed", "grown", "shrunk", or "unchanged".
	Status string `json:"status"`
}

// compareRecords compares the assets of two build records.
func compareRecords(oldRecord, newRecord *build.Record, includeUnchanged bool) *ComparisonResult {
	result := &ComparisonResult{
		OldRecord: recordMetadata(oldRecord),
		NewRecord: recordMetadata(newRecord),
	}

	oldSizes := make(map[string]int64, len(oldRecord.Assets))
	for _, a := range oldRecord.Assets {
		oldSizes[a.Name] = a.Size
	}
	newSizes := make(map[string]int64, len(newRecord.Assets))
	for _, a := range newRecord.Assets {
		newSizes[a.Name] = a.Size
	}

	for name, newSize := range newSizes {
		oldSize, existed := oldSizes[name]
		switch {
		case !existed:
			result.Changes = append(result.Changes, AssetChange{
				Name: name, NewSize: newSize, Delta: newSize, Status: assetStatusAdded,
			})
		case newSize > oldSize:
			result.Changes = append(result.Changes, AssetChange{
				Name: name, OldSize: oldSize, NewSize: newSize, Delta: newSize - oldSize, Status: assetStatusGrown,
			})
		case newSize < oldSize:
			result.Changes = append(result.Changes, AssetChange{
				Name: name, OldSize: oldSize, NewSize: newSize, Delta: newSize - oldSize, Status: assetStatusShrunk,
			})
		default:
			result.UnchangedCount++
			if includeUnchanged {
				result.Changes = append(result.Changes, AssetChange{
					Name: name, OldSize: oldSize, NewSize: newSize, Status: assetStatusUnchanged,
				})
			}
		}
	}

	for name, oldSize := range oldSizes {
		if _, exists := newSizes[name]; !exists {
			result.Changes = append(result.Changes, AssetChange{
				Name: name, OldSize: oldSize, Delta: -oldSize, Status: assetStatusRemoved,
			})
		}
	}

	sort.Slice(result.Changes, func(i, j int) bool {
		return result.Changes[i].Name < result.Changes[j].Name
	})

	result.TotalDelta = result.NewRecord.TotalSize - result.OldRecord.TotalSize
	switch {
	case result.TotalDelta > 0:
		result.Direction = sizeDirectionGrew
	case result.TotalDelta < 0:
		result.Direction = sizeDirectionShrank
	default:
		result.Direction = sizeDirectionUnchanged
	}

	return result
}

// recordMetadata extracts the comparison metadata of one record.
func recordMetadata(rec *build.Record) BuildMetadata {
	meta := BuildMetadata{
		Hash:       rec.Hash,
		Version:    rec.Version,
		BuiltAt:    rec.BuiltAt,
		AssetCount: len(rec.Assets),
	}
	for _, a := range rec.Assets {
		meta.TotalSize += a.Size
	}
	return meta
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(out io.Writer, result *ComparisonResult) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonMarkdown outputs the comparison result in Markdown format.
func outputComparisonMarkdown(out io.Writer, result *ComparisonResult) error {
	fmt.Fprintf(out, "# Build Comparison\n\n")

	fmt.Fprintln(out, "## Summary")
	fmt.Fprintf(out, "\n**Total Size:** %s\n\n", formatSizeDirection(result))

	fmt.Fprintln(out, "| Metric | Old | New | Change |")
	fmt.Fprintln(out, "|--------|-----|-----|--------|")
	fmt.Fprintf(out, "| Record | `%s` | `%s` | - |\n", result.OldRecord.Path, result.NewRecord.Path)
	if result.OldRecord.Hash != "" || result.NewRecord.Hash != "" {
		fmt.Fprintf(out, "| Hash | `%s` | `%s` | - |\n", result.OldRecord.Hash, result.NewRecord.Hash)
	}
	fmt.Fprintf(out, "| Assets | %d | %d | %s |\n",
		result.OldRecord.AssetCount,
		result.NewRecord.AssetCount,
		formatCountDelta(result.NewRecord.AssetCount-result.OldRecord.AssetCount))
	fmt.Fprintf(out, "| **Size** | **%s** | **%s** | **%s** |\n",
		stats.DefaultSizeFormatter(result.OldRecord.TotalSize),
		stats.DefaultSizeFormatter(result.NewRecord.TotalSize),
		formatSizeDelta(result.TotalDelta))

	if len(result.Changes) > 0 {
		fmt.Fprintf(out, "\n## Changed Assets (%d)\n\n", len(result.Changes))
		fmt.Fprintln(out, "| Asset | Old Size | New Size | Change | Status |")
		fmt.Fprintln(out, "|-------|----------|----------|--------|--------|")
		for _, ch := range result.Changes {
			fmt.Fprintf(out, "| %s | %s | %s | %s | %s |\n",
				ch.Name,
				formatOptionalSize(ch.OldSize, ch.Status == assetStatusAdded),
				formatOptionalSize(ch.NewSize, ch.Status == assetStatusRemoved),
				formatSizeDelta(ch.Delta),
				ch.Status)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Fprintf(out, "\n---\n\n*%d assets unchanged*\n", result.UnchangedCount)
	}

	return nil
}

// outputComparisonText outputs the comparison result in human-readable
// text format.
func outputComparisonText(out io.Writer, result *ComparisonResult) error {
	fmt.Fprintf(out, "Build Comparison: %s -> %s\n", result.OldRecord.Path, result.NewRecord.Path)
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nTotal Size: %s\n", formatSizeDirection(result))

	fmt.Fprintf(out, "\nOld build: %d assets, %s total\n",
		result.OldRecord.AssetCount, stats.DefaultSizeFormatter(result.OldRecord.TotalSize))
	fmt.Fprintf(out, "New build: %d assets, %s total\n",
		result.NewRecord.AssetCount, stats.DefaultSizeFormatter(result.NewRecord.TotalSize))

	if len(result.Changes) > 0 {
		fmt.Fprintln(out)
		rows := [][]string{{"Asset", "Old Size", "New Size", "Change", "Status"}}
		for _, ch := range result.Changes {
			rows = append(rows, []string{
				ch.Name,
				formatOptionalSize(ch.OldSize, ch.Status == assetStatusAdded),
				formatOptionalSize(ch.NewSize, ch.Status == assetStatusRemoved),
				formatSizeDelta(ch.Delta),
				ch.Status,
			})
		}
		table, ok := stats.FormatTable(rows, []stats.Align{
			stats.AlignLeft, stats.AlignRight, stats.AlignRight, stats.AlignRight, stats.AlignLeft,
		}, "")
		if ok {
			fmt.Fprintln(out, table)
		}
	}

	if result.UnchangedCount > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d assets\n", result.UnchangedCount)
	}

	return nil
}

// formatSizeDirection formats the overall size direction for display.
func formatSizeDirection(result *ComparisonResult) string {
	switch result.Direction {
	case sizeDirectionGrew:
		return fmt.Sprintf("GREW by %s", stats.DefaultSizeFormatter(result.TotalDelta))
	case sizeDirectionShrank:
		return fmt.Sprintf("SHRANK by %s", stats.DefaultSizeFormatter(-result.TotalDelta))
	default:
		return "UNCHANGED"
	}
}

// formatSizeDelta formats a byte delta with sign for display.
func formatSizeDelta(delta int64) string {
	if delta > 0 {
		return "+" + stats.DefaultSizeFormatter(delta)
	}
	if delta < 0 {
		return stats.DefaultSizeFormatter(delta)
	}
	return "0"
}

// formatCountDelta formats a numeric delta with sign for display.
func formatCountDelta(delta int) string {
	if delta > 0 {
		return fmt.Sprintf("+%d", delta)
	}
	return fmt.Sprintf("%d", delta)
}

// formatOptionalSize renders a size cell, blanking the side an added or
// removed asset does not have.
func formatOptionalSize(size int64, absent bool) string {
	if absent {
		return "-"
	}
	return stats.DefaultSizeFormatter(size)
}

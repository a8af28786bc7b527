package stats

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Align is a per-column cell alignment.
type Align string

// Column alignments. Right alignment pads on the left, left alignment
// pads on the right.
const (
	AlignLeft  Align = "l"
	AlignRight Align = "r"
)

// DefaultColumnGap separates table columns unless a caller overrides it.
const DefaultColumnGap = "  "

// ansiPattern matches SGR escape sequences so colored cells measure by
// their visible width.
var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// FormatTable renders rows of fixed-width cell arrays as aligned columns.
//
// Cell widths are display widths (escape sequences stripped, wide runes
// counted double). Zero-width columns are omitted together with their
// separator, which hides optional empty columns while preserving the
// alignment of the rest. The last rendered column carries no trailing
// padding. Zero rows yield false so callers suppress the whole block
// instead of emitting a bare header.
func FormatTable(rows [][]string, aligns []Align, separator string) (string, bool) {
	if len(rows) == 0 {
		return "", false
	}
	if separator == "" {
		separator = DefaultColumnGap
	}

	columns := 0
	for _, row := range rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	widths := make([]int, columns)
	for _, row := range rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lastVisible := -1
	for i := columns - 1; i >= 0; i-- {
		if widths[i] > 0 {
			lastVisible = i
			break
		}
	}
	if lastVisible < 0 {
		return "", false
	}

	var b strings.Builder
	for ri, row := range rows {
		if ri > 0 {
			b.WriteByte('\n')
		}
		first := true
		for ci := 0; ci <= lastVisible && ci < columns; ci++ {
			if widths[ci] == 0 {
				continue
			}
			var cell string
			if ci < len(row) {
				cell = row[ci]
			}
			if !first {
				b.WriteString(separator)
			}
			first = false

			align := AlignLeft
			if ci < len(aligns) {
				align = aligns[ci]
			}
			pad := strings.Repeat(" ", widths[ci]-displayWidth(cell))
			switch {
			case align == AlignRight:
				b.WriteString(pad)
				b.WriteString(cell)
			case ci == lastVisible:
				// No trailing padding on the last column.
				b.WriteString(cell)
			default:
				b.WriteString(cell)
				b.WriteString(pad)
			}
		}
	}
	return b.String(), true
}

// displayWidth measures the visible width of a cell.
func displayWidth(s string) int {
	return runewidth.StringWidth(ansiPattern.ReplaceAllString(s, ""))
}

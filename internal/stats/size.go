package stats

import "github.com/dustin/go-humanize"

// SizeFormatter renders a byte count human-readably. The printing stage
// never formats sizes itself; the formatter is supplied through the print
// context so machine-oriented callers can substitute their own.
type SizeFormatter func(bytes int64) string

// DefaultSizeFormatter renders binary-prefixed sizes ("120 B",
// "1.2 KiB"). Negative values, which occur in build comparisons, keep
// their sign.
func DefaultSizeFormatter(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

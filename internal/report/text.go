package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/bundlestats/bundlestats/internal/stats"
)

// TextWriter renders the report tree as human-readable terminal text
// using the printing pipeline: an aligned asset table, module lines,
// and colored problem blocks.
type TextWriter struct {
	baseWriter
	registry   *stats.Registry
	colors     bool
	formatSize stats.SizeFormatter
	logger     *slog.Logger
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithColor enables or disables ANSI color in the output.
// Color is disabled by default so piped output stays clean.
func WithColor(enabled bool) TextWriterOption {
	return func(w *TextWriter) {
		w.colors = enabled
	}
}

// WithSizeFormatter sets the byte-count formatter used for asset,
// module, and chunk sizes.
func WithSizeFormatter(f stats.SizeFormatter) TextWriterOption {
	return func(w *TextWriter) {
		if f != nil {
			w.formatSize = f
		}
	}
}

// WithTextLogger sets the logger threaded through the printing stage.
func WithTextLogger(logger *slog.Logger) TextWriterOption {
	return func(w *TextWriter) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewTextWriter creates a TextWriter rendering through the given
// handler registry.
func NewTextWriter(output io.Writer, registry *stats.Registry, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		registry:   registry,
		formatSize: stats.DefaultSizeFormatter,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write renders the report tree and writes it followed by a trailing
// newline. A report whose every field is absent writes nothing.
func (w *TextWriter) Write(report *Report) (int, error) {
	c := &stats.PrintContext{
		Colors:     stats.NewColorizer(w.colors, nil),
		FormatSize: w.formatSize,
		Logger:     w.logger,
	}

	text, ok, err := stats.NewPrinter(w.registry).Print("compilation", report.Tree, c)
	if err != nil {
		return 0, fmt.Errorf("render report: %w", err)
	}
	if !ok {
		return 0, nil
	}

	return fmt.Fprintln(w.output, text)
}

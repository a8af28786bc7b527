package log

import (
	"context"
	"io"
	"log/slog"
	"unicode/utf8"
)

// DefaultMaxValueLen is the width string attribute values are capped at
// unless a caller overrides it. Long enough to keep a full module path,
// short enough that a symbol list does not swallow the line.
const DefaultMaxValueLen = 160

// truncationMark ends every shortened value.
const truncationMark = "..."

// TruncateHandler wraps an slog.Handler and caps oversized string
// attribute values before passing records on. Diagnostics in the report
// pipelines attach raw build data as attributes, and some of it (symbol
// sets, joined module lists) runs to kilobytes.
//
// Design decision: a handler wrapper rather than call-site truncation,
// because it covers every call uniformly, works with any underlying
// handler (text, JSON), and keeps the pipelines free of formatting
// concerns.
type TruncateHandler struct {
	// handler is the underlying slog handler receiving capped records.
	handler slog.Handler

	// maxLen is the maximum rune length of a string attribute value.
	maxLen int
}

// NewTruncateHandler creates a TruncateHandler wrapping the given
// handler. A nil handler falls back to slog.Default().Handler(); a
// non-positive maxLen falls back to DefaultMaxValueLen.
func NewTruncateHandler(handler slog.Handler, maxLen int) *TruncateHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxValueLen
	}
	return &TruncateHandler{handler: handler, maxLen: maxLen}
}

// Enabled delegates to the underlying handler.
func (h *TruncateHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle caps the record's attributes and passes it on.
func (h *TruncateHandler) Handle(ctx context.Context, r slog.Record) error {
	capped := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		capped.AddAttrs(h.truncateAttr(a))
		return true
	})
	return h.handler.Handle(ctx, capped)
}

// WithAttrs returns a handler with the given attributes added, capped.
func (h *TruncateHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	capped := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		capped[i] = h.truncateAttr(a)
	}
	return &TruncateHandler{handler: h.handler.WithAttrs(capped), maxLen: h.maxLen}
}

// WithGroup returns a handler with the given group name.
func (h *TruncateHandler) WithGroup(name string) slog.Handler {
	return &TruncateHandler{handler: h.handler.WithGroup(name), maxLen: h.maxLen}
}

// truncateAttr caps a single attribute, recursively handling groups.
func (h *TruncateHandler) truncateAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		capped := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			capped[i] = h.truncateAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(capped...)}
	}

	if a.Value.Kind() == slog.KindString {
		if v, shortened := truncate(a.Value.String(), h.maxLen); shortened {
			return slog.String(a.Key, v)
		}
	}
	return a
}

// truncate caps s at maxLen runes, reporting whether it was shortened.
// The cap applies to rune count, not bytes, so multi-byte names never
// split mid-rune.
func truncate(s string, maxLen int) (string, bool) {
	if utf8.RuneCountInString(s) <= maxLen {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:maxLen-len(truncationMark)]) + truncationMark, true
}

// NewLogger creates the application logger: a text handler on w behind a
// TruncateHandler. Verbose mode lowers the level to Debug; the default
// level is Warn so report output stays clean.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTruncateHandler(textHandler, DefaultMaxValueLen))
}

// NewJSONLogger is NewLogger with a JSON handler, for log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTruncateHandler(jsonHandler, DefaultMaxValueLen))
}

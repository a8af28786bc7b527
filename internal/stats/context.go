package stats

import (
	"log/slog"

	"github.com/bundlestats/bundlestats/internal/build"
)

// ExtractContext carries the per-request collaborators of the extraction
// stage. Handlers use Session for graph and derived-fact queries about
// the items they extract.
//
// Child session extraction rebinds Session to the child; everything else
// passes through unchanged.
type ExtractContext struct {
	// Session is the build result being reported on.
	Session build.Reader

	// Logger receives per-stage diagnostics.
	Logger *slog.Logger
}

// WithSession returns a copy of the context bound to another session.
// Used when recursing into child build sessions.
func (c *ExtractContext) WithSession(session build.Reader) *ExtractContext {
	out := *c
	out.Session = session
	return &out
}

// PrintContext is the per-call bag of derived helpers for the printing
// stage. It is computed once per top-level print call and threaded
// unchanged through all recursion; handlers must never re-derive or
// globally share any of it.
type PrintContext struct {
	// Colors renders colored spans, honoring the request's color-enable
	// flag and any per-color escape overrides.
	Colors *Colorizer

	// FormatSize renders byte counts human-readably.
	FormatSize SizeFormatter

	// GroupKind is the ambient discriminator label for chunk-group
	// shaped nodes, e.g. "Entrypoint". The same node shape renders
	// under different labels depending on which field reached it.
	GroupKind string

	// Logger receives per-stage diagnostics.
	Logger *slog.Logger
}

// WithGroupKind returns a copy of the context carrying another group
// label. The receiver is unchanged.
func (c *PrintContext) WithGroupKind(kind string) *PrintContext {
	out := *c
	out.GroupKind = kind
	return &out
}

package report

import (
	"encoding/json"
	"io"

	"github.com/bundlestats/bundlestats/internal/tree"
)

// FormatVersion identifies the JSON envelope layout written by
// FullJSONWriter. Bump on incompatible envelope changes.
const FormatVersion = "1.0"

// JSONWriter outputs the bare report tree as JSON. Field order follows
// insertion order, so the JSON reads the same way the text report does.
type JSONWriter struct {
	baseWriter
	prefix string
	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent sets custom indentation for pretty-printed output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.prefix = prefix
		w.indent = indent
	}
}

// WithPrettyPrint enables two-space indented output.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter with the given output destination.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report tree as JSON followed by a newline.
func (w *JSONWriter) Write(report *Report) (int, error) {
	return w.writeJSON(report.Tree)
}

func (w *JSONWriter) writeJSON(v any) (int, error) {
	var (
		data []byte
		err  error
	)
	if w.indent != "" || w.prefix != "" {
		data, err = json.MarshalIndent(v, w.prefix, w.indent)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}

// jsonEnvelope is the versioned wrapper written by FullJSONWriter.
type jsonEnvelope struct {
	Version    string       `json:"version"`
	RecordPath string       `json:"recordPath,omitempty"`
	Name       string       `json:"name,omitempty"`
	Report     *tree.Object `json:"report"`
}

// FullJSONWriter outputs the report tree inside a versioned envelope
// carrying the record path and session name. Machine consumers that
// archive reports use this; the bare JSONWriter matches the bundler's
// own stats layout.
type FullJSONWriter struct {
	JSONWriter
}

// NewFullJSONWriter creates a FullJSONWriter with the given output
// destination.
func NewFullJSONWriter(output io.Writer, opts ...JSONWriterOption) *FullJSONWriter {
	w := &FullJSONWriter{JSONWriter: JSONWriter{baseWriter: newBaseWriter(output)}}

	for _, opt := range opts {
		opt(&w.JSONWriter)
	}

	return w
}

// Write outputs the enveloped report as JSON followed by a newline.
func (w *FullJSONWriter) Write(report *Report) (int, error) {
	return w.writeJSON(jsonEnvelope{
		Version:    FormatVersion,
		RecordPath: report.RecordPath,
		Name:       report.Name,
		Report:     report.Tree,
	})
}

package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nao1215/markdown"

	"github.com/bundlestats/bundlestats/internal/stats"
	"github.com/bundlestats/bundlestats/internal/tree"
)

// MarkdownWriter outputs reports in GitHub Flavored Markdown, suitable
// for CI job summaries and pull request comments.
type MarkdownWriter struct {
	baseWriter
	formatSize stats.SizeFormatter
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithMarkdownSizeFormatter sets the byte-count formatter used in
// tables.
func WithMarkdownSizeFormatter(f stats.SizeFormatter) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		if f != nil {
			w.formatSize = f
		}
	}
}

// NewMarkdownWriter creates a MarkdownWriter with the given output
// destination.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		formatSize: stats.DefaultSizeFormatter,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report as Markdown.
func (w *MarkdownWriter) Write(report *Report) (int, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	w.writeHeader(md, report)
	w.writeAlert(md, report.Tree)
	w.writeAssets(md, report.Tree)
	w.writeEntrypoints(md, report.Tree)
	w.writeModules(md, report.Tree)
	w.writeProblems(md, report.Tree, "errors", "Errors")
	w.writeProblems(md, report.Tree, "warnings", "Warnings")
	w.writeFooter(md)

	if err := md.Build(); err != nil {
		return 0, fmt.Errorf("build markdown: %w", err)
	}

	return w.output.Write(buf.Bytes())
}

// writeHeader writes the title and build metadata.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *Report) {
	title := "Build Report"
	if report.Name != "" {
		title = fmt.Sprintf("Build Report: %s", report.Name)
	}
	md.H1(title)
	md.PlainText("")

	var meta []string
	if v, ok := treeString(report.Tree, "hash"); ok {
		meta = append(meta, fmt.Sprintf("**Hash**: `%s`", v))
	}
	if v, ok := treeString(report.Tree, "version"); ok {
		meta = append(meta, fmt.Sprintf("**Version**: %s", v))
	}
	if v, ok := treeInt64(report.Tree, "time"); ok {
		meta = append(meta, fmt.Sprintf("**Time**: %dms", v))
	}
	if v, ok := report.Tree.Get("builtAt"); ok {
		if t, isTime := v.(time.Time); isTime {
			meta = append(meta, fmt.Sprintf("**Built at**: %s", t.Format("2006-01-02 15:04:05")))
		}
	}
	if report.RecordPath != "" {
		meta = append(meta, fmt.Sprintf("**Record**: `%s`", report.RecordPath))
	}

	if len(meta) > 0 {
		md.BulletList(meta...)
		md.PlainText("")
	}
}

// writeAlert writes an appropriate alert based on problem counts.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, t *tree.Object) {
	errs := len(treeSlice(t, "errors"))
	warns := len(treeSlice(t, "warnings"))

	switch {
	case errs > 0:
		md.Cautionf("Build failed with %d error(s).", errs)
	case warns > 0:
		md.Warningf("Build completed with %d warning(s).", warns)
	default:
		md.Tip("Build completed without errors or warnings.")
	}
	md.PlainText("")
}

// writeAssets writes the emitted artifact table.
func (w *MarkdownWriter) writeAssets(md *markdown.Markdown, t *tree.Object) {
	assets := treeSlice(t, "assets")
	if len(assets) == 0 {
		return
	}

	md.H2("Assets")
	md.PlainText("")

	rows := make([][]string, 0, len(assets))
	for _, a := range assets {
		node, ok := a.(*tree.Object)
		if !ok {
			continue
		}

		name, _ := treeString(node, "name")
		size := "-"
		if n, ok := treeInt64(node, "size"); ok {
			size = w.formatSize(n)
		}
		status := ""
		if emitted, ok := treeBool(node, "emitted"); ok && emitted {
			status = "emitted"
		}

		rows = append(rows, []string{
			name,
			size,
			joinValues(treeSlice(node, "chunks")),
			joinValues(treeSlice(node, "chunkNames")),
			status,
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Asset", "Size", "Chunks", "Chunk Names", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	if hidden, ok := treeInt64(t, "filteredAssets"); ok && hidden > 0 {
		md.PlainTextf("*%d asset(s) hidden by the active preset.*", hidden)
		md.PlainText("")
	}
}

// writeEntrypoints writes the deployment entry list.
func (w *MarkdownWriter) writeEntrypoints(md *markdown.Markdown, t *tree.Object) {
	v, ok := t.Get("entrypoints")
	if !ok {
		return
	}
	merged, ok := v.(*tree.Object)
	if !ok || merged.Len() == 0 {
		return
	}

	md.H2("Entrypoints")
	md.PlainText("")

	items := make([]string, 0, merged.Len())
	for _, key := range merged.Keys() {
		entry, _ := merged.Get(key)
		node, ok := entry.(*tree.Object)
		if !ok {
			continue
		}
		items = append(items, fmt.Sprintf("**%s** = %s", key, joinValues(treeSlice(node, "assets"))))
	}

	md.BulletList(items...)
	md.PlainText("")
}

// writeModules writes the module table.
func (w *MarkdownWriter) writeModules(md *markdown.Markdown, t *tree.Object) {
	modules := treeSlice(t, "modules")
	if len(modules) == 0 {
		return
	}

	md.H2("Modules")
	md.PlainText("")

	rows := make([][]string, 0, len(modules))
	for _, m := range modules {
		node, ok := m.(*tree.Object)
		if !ok {
			continue
		}

		name, _ := treeString(node, "name")
		size := "-"
		if n, ok := treeInt64(node, "size"); ok {
			size = w.formatSize(n)
		}

		rows = append(rows, []string{
			truncateCell(name, 60),
			size,
			joinValues(treeSlice(node, "chunks")),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Module", "Size", "Chunks"},
		Rows:   rows,
	})
	md.PlainText("")

	if hidden, ok := treeInt64(t, "filteredModules"); ok && hidden > 0 {
		md.PlainTextf("*%d module(s) hidden by the active preset.*", hidden)
		md.PlainText("")
	}
}

// writeProblems writes one problem section as a table.
func (w *MarkdownWriter) writeProblems(md *markdown.Markdown, t *tree.Object, key, heading string) {
	problems := treeSlice(t, key)
	if len(problems) == 0 {
		return
	}

	md.H2(heading)
	md.PlainText("")

	rows := make([][]string, 0, len(problems))
	for _, p := range problems {
		node, ok := p.(*tree.Object)
		if !ok {
			continue
		}

		location := "-"
		if name, ok := treeString(node, "moduleName"); ok && name != "" {
			location = truncateCell(name, 40)
		}
		message, _ := treeString(node, "message")

		rows = append(rows, []string{location, truncateCell(message, 80)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Location", "Message"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [bundlestats](https://github.com/bundlestats/bundlestats)*")
}

// treeString reads a string field from a tree node.
func treeString(t *tree.Object, key string) (string, bool) {
	v, ok := t.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// treeInt64 reads a numeric field from a tree node. Extraction stores
// sizes as int64 and counters as int; both are accepted.
func treeInt64(t *tree.Object, key string) (int64, bool) {
	v, ok := t.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// treeBool reads a boolean field from a tree node.
func treeBool(t *tree.Object, key string) (bool, bool) {
	v, ok := t.Get(key)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// treeSlice reads an array field from a tree node, empty when absent.
func treeSlice(t *tree.Object, key string) []any {
	v, ok := t.Get(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	return items
}

// joinValues formats array elements with a comma separator.
func joinValues(items []any) string {
	parts := make([]string, len(items))
	for i, v := range items {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

// truncateCell shortens a table cell to maxLen characters with an
// ellipsis so one long module path cannot blow up the table layout.
func truncateCell(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

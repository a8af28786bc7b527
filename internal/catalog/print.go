package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/bundlestats/bundlestats/internal/hooks"
	"github.com/bundlestats/bundlestats/internal/stats"
	"github.com/bundlestats/bundlestats/internal/tree"
)

// bigAssetBytes is the size above which an asset renders as oversized.
const bigAssetBytes = 250 * 1024

func registerPrint(r *stats.Registry) {
	registerCompilationPrint(r)
	registerAssetPrint(r)
	registerModulePrint(r)
	registerChunkPrint(r)
	registerEntrypointPrint(r)
	registerProblemPrint(r)
}

// compilationOrder is the preferred field order of a session report.
// The "sep!" pseudo-entries mark block boundaries for the joiner.
var compilationOrder = []string{
	"name", "hash", "version", "time", "builtAt",
	"sep!", "assets", "filteredAssets",
	"sep!", "entrypoints",
	"sep!", "chunks", "modules", "filteredModules",
	"sep!", "warnings",
	"sep!", "errors", "needAdditionalPass",
	"sep!", "children",
}

func registerCompilationPrint(r *stats.Registry) {
	r.Print.Register("sep!", hooks.Always(), func(_ *stats.Printer, _ any, _ *stats.PrintContext) (string, bool, error) {
		return "", true, nil
	})

	r.Print.Register("compilation.name", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		name, ok := v.(string)
		if !ok {
			return "", false, nil
		}
		return c.Colors.Bold("Child " + name), true, nil
	})

	r.Print.Register("compilation.hash", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		h, ok := v.(string)
		if !ok {
			return "", false, nil
		}
		return "Hash: " + c.Colors.Bold(h), true, nil
	})

	r.Print.Register("compilation.version", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		ver, ok := v.(string)
		if !ok {
			return "", false, nil
		}
		return "Version: " + c.Colors.Bold(ver), true, nil
	})

	r.Print.Register("compilation.time", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		ms, ok := v.(int64)
		if !ok {
			return "", false, nil
		}
		return "Time: " + c.Colors.Bold(fmt.Sprintf("%dms", ms)), true, nil
	})

	r.Print.Register("compilation.builtAt", hooks.Always(), func(_ *stats.Printer, v any, _ *stats.PrintContext) (string, bool, error) {
		t, ok := v.(time.Time)
		if !ok {
			return "", false, nil
		}
		return "Built at: " + t.Format("2006-01-02 15:04:05"), true, nil
	})

	r.Print.Register("compilation.filteredAssets", hooks.Always(), func(_ *stats.Printer, v any, _ *stats.PrintContext) (string, bool, error) {
		n, ok := v.(int)
		if !ok || n <= 0 {
			return "", false, nil
		}
		return fmt.Sprintf("+ %d hidden assets", n), true, nil
	})

	r.Print.Register("compilation.filteredModules", hooks.Always(), func(_ *stats.Printer, v any, _ *stats.PrintContext) (string, bool, error) {
		n, ok := v.(int)
		if !ok || n <= 0 {
			return "", false, nil
		}
		return fmt.Sprintf("+ %d hidden modules", n), true, nil
	})

	r.Print.Register("compilation.needAdditionalPass", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		if b, ok := v.(bool); !ok || !b {
			return "", false, nil
		}
		return c.Colors.Yellow("Compilation needs an additional pass and will compile again."), true, nil
	})

	r.SortElements.Register("compilation", hooks.Always(), func(fields []string, _ *tree.Object, _ *stats.PrintContext) ([]string, bool) {
		return stats.CreateOrder(fields, compilationOrder), true
	})

	// Block joiner: fields stack on their own lines, with one blank line
	// between blocks that both rendered something.
	r.PrintElements.Register("compilation", hooks.Always(), func(pairs []stats.Pair, _ *stats.PrintContext) (string, bool) {
		var lines []string
		pending := false
		for _, p := range pairs {
			if stats.IsReserved(p.Field) {
				pending = true
				continue
			}
			if p.Content == "" {
				continue
			}
			if pending && len(lines) > 0 {
				lines = append(lines, "")
			}
			pending = false
			lines = append(lines, p.Content)
		}
		if len(lines) == 0 {
			return "", false
		}
		return strings.Join(lines, "\n"), true
	})

	r.PrintItems.Register("children", hooks.Always(), func(items []string, _ *stats.PrintContext) (string, bool) {
		return strings.Join(items, "\n\n"), true
	})
}

func registerAssetPrint(r *stats.Registry) {
	r.Print.Register("asset.name", hooks.Always(), func(_ *stats.Printer, v any, _ *stats.PrintContext) (string, bool, error) {
		name, ok := v.(string)
		return name, ok, nil
	})

	r.Print.Register("asset.size", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		size, ok := v.(int64)
		if !ok {
			return "", false, nil
		}
		s := c.FormatSize(size)
		if size > bigAssetBytes {
			s = c.Colors.Yellow(s)
		}
		return s, true, nil
	})

	r.Print.Register("asset.chunks", hooks.Always(), printJoined(", "))
	r.Print.Register("asset.chunkNames", hooks.Always(), printJoined(", "))

	r.Print.Register("asset.emitted", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		if b, ok := v.(bool); !ok || !b {
			return "", false, nil
		}
		return c.Colors.Green("[emitted]"), true, nil
	})

	// Asset fields become fixed table cells. The tab separation is an
	// internal carrier between the element joiner and the table joiner
	// below; asset names never contain tabs.
	r.PrintElements.Register("asset", hooks.Always(), func(pairs []stats.Pair, c *stats.PrintContext) (string, bool) {
		name, ok := pairContent(pairs, "name")
		if !ok {
			return "", false
		}
		emitted, _ := pairContent(pairs, "emitted")
		if emitted != "" {
			name = c.Colors.Green(name)
		}
		size, _ := pairContent(pairs, "size")
		chunks, _ := pairContent(pairs, "chunks")
		chunkNames, _ := pairContent(pairs, "chunkNames")
		return strings.Join([]string{name, size, chunks, emitted, chunkNames}, "\t"), true
	})

	r.PrintItems.Register("assets", hooks.Always(), func(items []string, c *stats.PrintContext) (string, bool) {
		rows := make([][]string, 0, len(items)+1)
		rows = append(rows, []string{
			c.Colors.Bold("Asset"),
			c.Colors.Bold("Size"),
			c.Colors.Bold("Chunks"),
			"",
			c.Colors.Bold("Chunk Names"),
		})
		for _, item := range items {
			rows = append(rows, strings.Split(item, "\t"))
		}
		aligns := []stats.Align{
			stats.AlignLeft, stats.AlignRight, stats.AlignRight,
			stats.AlignLeft, stats.AlignLeft,
		}
		return stats.FormatTable(rows, aligns, "")
	})
}

// moduleOrder front-loads the inline cells; the trailing fields render
// as indented detail lines.
var moduleOrder = []string{
	"id", "name", "chunks", "size",
	"cacheable", "built", "optional", "prefetched", "failed",
	"warnings", "errors",
	"depth", "issuerPath", "usedExports", "providedExports", "reasons",
}

func registerModulePrint(r *stats.Registry) {
	r.Print.Register("module.id", hooks.Always(), func(_ *stats.Printer, v any, _ *stats.PrintContext) (string, bool, error) {
		return fmt.Sprint(v), true, nil
	})

	r.Print.Register("module.name", hooks.Always(), func(_ *stats.Printer, v any, _ *stats.PrintContext) (string, bool, error) {
		name, ok := v.(string)
		return name, ok, nil
	})

	r.Print.Register("module.size", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		size, ok := v.(int64)
		if !ok {
			return "", false, nil
		}
		return c.FormatSize(size), true, nil
	})

	r.Print.Register("module.chunks", hooks.Always(), printJoined(", "))

	r.Print.Register("module.cacheable", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		if b, ok := v.(bool); !ok || b {
			return "", false, nil
		}
		return c.Colors.Yellow("[not cacheable]"), true, nil
	})

	r.Print.Register("module.built", hooks.Always(), printFlag("[built]", (*stats.Colorizer).Green))
	r.Print.Register("module.optional", hooks.Always(), printFlag("[optional]", nil))
	r.Print.Register("module.prefetched", hooks.Always(), printFlag("[prefetched]", nil))
	r.Print.Register("module.failed", hooks.Always(), printFlag("[failed]", (*stats.Colorizer).Red))

	r.Print.Register("module.warnings", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		n, ok := v.(int)
		if !ok || n <= 0 {
			return "", false, nil
		}
		return c.Colors.Yellow(countFlag(n, "warning")), true, nil
	})

	r.Print.Register("module.errors", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		n, ok := v.(int)
		if !ok || n <= 0 {
			return "", false, nil
		}
		return c.Colors.Red(countFlag(n, "error")), true, nil
	})

	r.Print.Register("module.depth", hooks.Always(), func(_ *stats.Printer, v any, _ *stats.PrintContext) (string, bool, error) {
		n, ok := v.(int)
		if !ok {
			return "", false, nil
		}
		return fmt.Sprintf("depth %d", n), true, nil
	})

	r.Print.Register("module.issuerPath", hooks.Always(), func(_ *stats.Printer, v any, _ *stats.PrintContext) (string, bool, error) {
		joined, ok := joinAny(v, " -> ")
		if !ok {
			return "", false, nil
		}
		return "issuer path: " + joined, true, nil
	})

	r.Print.Register("module.usedExports", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		joined, ok := joinAny(v, ", ")
		if !ok {
			return "", false, nil
		}
		return c.Colors.Cyan("[used exports: " + joined + "]"), true, nil
	})

	r.Print.Register("module.providedExports", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		joined, ok := joinAny(v, ", ")
		if !ok {
			return "", false, nil
		}
		return c.Colors.Cyan("[provided exports: " + joined + "]"), true, nil
	})

	r.SortElements.Register("module", hooks.Always(), func(fields []string, _ *tree.Object, _ *stats.PrintContext) ([]string, bool) {
		return stats.CreateOrder(fields, moduleOrder), true
	})

	// One line per module, detail blocks indented beneath it. The name
	// cell disappears when it only repeats the id.
	r.PrintElements.Register("module", hooks.Always(), func(pairs []stats.Pair, c *stats.PrintContext) (string, bool) {
		id, ok := pairContent(pairs, "id")
		if !ok {
			return "", false
		}
		head := []string{"[" + id + "]"}
		if name, _ := pairContent(pairs, "name"); name != "" && name != id {
			head = append(head, c.Colors.Bold(name))
		}
		if chunks, _ := pairContent(pairs, "chunks"); chunks != "" {
			head = append(head, "{"+chunks+"}")
		}
		if size, _ := pairContent(pairs, "size"); size != "" {
			head = append(head, size)
		}
		var details []string
		for _, p := range pairs {
			if p.Content == "" {
				continue
			}
			switch p.Field {
			case "id", "name", "chunks", "size":
			case "depth", "issuerPath", "usedExports", "providedExports", "reasons":
				details = append(details, p.Content)
			default:
				head = append(head, p.Content)
			}
		}
		line := strings.Join(head, " ")
		for _, d := range details {
			line += "\n" + indent(d, "    ")
		}
		return line, true
	})

	r.Print.Register("reason.type", hooks.Always(), printString())
	r.Print.Register("reason.request", hooks.Always(), printString())
	r.Print.Register("reason.moduleId", hooks.Always(), func(_ *stats.Printer, v any, _ *stats.PrintContext) (string, bool, error) {
		return "[" + fmt.Sprint(v) + "]", true, nil
	})
	r.Print.Register("reason.moduleName", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		name, ok := v.(string)
		if !ok {
			return "", false, nil
		}
		return c.Colors.Cyan(name), true, nil
	})
}

func registerChunkPrint(r *stats.Registry) {
	r.Print.Register("chunk.id", hooks.Always(), func(_ *stats.Printer, v any, _ *stats.PrintContext) (string, bool, error) {
		return fmt.Sprint(v), true, nil
	})
	r.Print.Register("chunk.names", hooks.Always(), printJoined(", "))
	r.Print.Register("chunk.files", hooks.Always(), printJoined(", "))
	r.Print.Register("chunk.parents", hooks.Always(), printJoined(", "))
	r.Print.Register("chunk.size", hooks.Always(), func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		size, ok := v.(int64)
		if !ok {
			return "", false, nil
		}
		return c.FormatSize(size), true, nil
	})
	r.Print.Register("chunk.entry", hooks.Always(), printFlag("[entry]", (*stats.Colorizer).Yellow))

	r.PrintElements.Register("chunk", hooks.Always(), func(pairs []stats.Pair, c *stats.PrintContext) (string, bool) {
		id, ok := pairContent(pairs, "id")
		if !ok {
			return "", false
		}
		head := []string{c.Colors.Bold("chunk") + " {" + id + "}"}
		if files, _ := pairContent(pairs, "files"); files != "" {
			head = append(head, files)
		}
		if names, _ := pairContent(pairs, "names"); names != "" {
			head = append(head, "("+names+")")
		}
		if size, _ := pairContent(pairs, "size"); size != "" {
			head = append(head, size)
		}
		if parents, _ := pairContent(pairs, "parents"); parents != "" {
			head = append(head, "<{"+parents+"}>")
		}
		if entry, _ := pairContent(pairs, "entry"); entry != "" {
			head = append(head, entry)
		}
		line := strings.Join(head, " ")
		for _, field := range []string{"origins", "modules"} {
			if block, _ := pairContent(pairs, field); block != "" {
				line += "\n" + indent(block, "    ")
			}
		}
		return line, true
	})

	r.PrintElements.Register("origin", hooks.Always(), func(pairs []stats.Pair, _ *stats.PrintContext) (string, bool) {
		request, ok := pairContent(pairs, "request")
		if !ok {
			return "", false
		}
		line := "> " + request
		if name, _ := pairContent(pairs, "moduleName"); name != "" {
			line += " from " + name
		}
		return line, true
	})
	r.Print.Register("origin.request", hooks.Always(), printString())
	r.Print.Register("origin.moduleName", hooks.Always(), printString())
}

func registerEntrypointPrint(r *stats.Registry) {
	// The merged entrypoints node re-prints as an array of groups under
	// the "Entrypoint" label. The handler declines when the value is
	// already an array, which is what its own recursion produces.
	r.Print.Register("compilation.entrypoints", hooks.Always(), func(p *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		obj, ok := v.(*tree.Object)
		if !ok {
			return "", false, nil
		}
		items := make([]any, 0, obj.Len())
		for _, k := range obj.Keys() {
			val, _ := obj.Get(k)
			items = append(items, val)
		}
		return p.Print("compilation.entrypoints", items, c.WithGroupKind("Entrypoint"))
	})

	r.Print.Register("entrypoint.name", hooks.Always(), printString())
	r.Print.Register("entrypoint.assets", hooks.Always(), printJoined(" "))

	r.PrintElements.Register("entrypoint", hooks.Always(), func(pairs []stats.Pair, c *stats.PrintContext) (string, bool) {
		name, ok := pairContent(pairs, "name")
		if !ok {
			return "", false
		}
		label := c.GroupKind
		if label == "" {
			label = "Chunk Group"
		}
		line := c.Colors.Bold(label + " " + name)
		if assets, _ := pairContent(pairs, "assets"); assets != "" {
			line += " = " + assets
		}
		return line, true
	})
}

func registerProblemPrint(r *stats.Registry) {
	for _, key := range []string{"error", "warning"} {
		r.Print.Register(key+".message", hooks.Always(), printString())
		r.Print.Register(key+".moduleName", hooks.Always(), printString())
	}

	r.PrintElements.Register("error", hooks.Always(), problemJoiner("ERROR", func(c *stats.PrintContext, s string) string {
		return c.Colors.Red(s)
	}))
	r.PrintElements.Register("warning", hooks.Always(), problemJoiner("WARNING", func(c *stats.PrintContext, s string) string {
		return c.Colors.Yellow(s)
	}))

	join := func(items []string, _ *stats.PrintContext) (string, bool) {
		return strings.Join(items, "\n\n"), true
	}
	r.PrintItems.Register("errors", hooks.Always(), join)
	r.PrintItems.Register("warnings", hooks.Always(), join)
}

// problemJoiner renders one problem as a painted heading plus the
// message body.
func problemJoiner(prefix string, paint func(*stats.PrintContext, string) string) stats.ElementsJoiner {
	return func(pairs []stats.Pair, c *stats.PrintContext) (string, bool) {
		msg, ok := pairContent(pairs, "message")
		if !ok {
			return "", false
		}
		if name, _ := pairContent(pairs, "moduleName"); name != "" {
			return paint(c, prefix+" in "+name) + "\n" + msg, true
		}
		return paint(c, prefix) + " " + msg, true
	}
}

// printString renders a string value as itself.
func printString() stats.PrintFunc {
	return func(_ *stats.Printer, v any, _ *stats.PrintContext) (string, bool, error) {
		s, ok := v.(string)
		return s, ok, nil
	}
}

// printJoined renders a list value by joining its elements.
func printJoined(separator string) stats.PrintFunc {
	return func(_ *stats.Printer, v any, _ *stats.PrintContext) (string, bool, error) {
		joined, ok := joinAny(v, separator)
		return joined, ok, nil
	}
}

// printFlag renders a boolean field as a marker when true. A nil paint
// leaves the marker uncolored.
func printFlag(marker string, paint func(*stats.Colorizer, string) string) stats.PrintFunc {
	return func(_ *stats.Printer, v any, c *stats.PrintContext) (string, bool, error) {
		if b, ok := v.(bool); !ok || !b {
			return "", false, nil
		}
		if paint != nil {
			return paint(c.Colors, marker), true, nil
		}
		return marker, true, nil
	}
}

// pairContent returns the rendered content of the named field.
func pairContent(pairs []stats.Pair, field string) (string, bool) {
	for _, p := range pairs {
		if p.Field == field {
			return p.Content, true
		}
	}
	return "", false
}

// joinAny joins the elements of a []any value. Empty lists report false
// so the field stays absent.
func joinAny(v any, separator string) (string, bool) {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return "", false
	}
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprint(item)
	}
	return strings.Join(parts, separator), true
}

// countFlag renders a problem counter marker with number agreement.
func countFlag(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("[1 %s]", noun)
	}
	return fmt.Sprintf("[%d %ss]", n, noun)
}

// indent prefixes every non-empty line of a block with the given prefix.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

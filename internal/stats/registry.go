package stats

import (
	"strings"

	"github.com/bundlestats/bundlestats/internal/hooks"
	"github.com/bundlestats/bundlestats/internal/tree"
)

// ExtractFunc enriches the output node for one item. All gated-in
// extractors for a path run in registration order against the same node,
// so later handlers observe earlier mutations. typePath is the position
// being extracted; handlers use it to build nested paths of the form
// typePath + ".field[]".
type ExtractFunc func(f *Factory, out *tree.Object, item any, typePath string, c *ExtractContext) error

// NameFunc resolves the semantic item name for elements of an array path,
// selecting which catalog subset applies to them. Returning false passes
// to the next handler.
type NameFunc func(item any) (string, bool)

// FactoryFunc substitutes the sub-factory used for one item, letting a
// nested child report run under a different option set. Returning false
// keeps the current factory.
type FactoryFunc func(f *Factory, item any, c *ExtractContext) (*Factory, bool)

// MergeFunc collapses an ordered list of named item nodes into one
// name-keyed node. Returning false passes to the next handler.
type MergeFunc func(items []*tree.Object, c *ExtractContext) (any, bool)

// PrintFunc renders one value. Returning false means this handler has no
// rendering for the value; the next handler, or the default recursion for
// objects and arrays, takes over. Returning an error aborts the whole
// request.
type PrintFunc func(p *Printer, value any, c *PrintContext) (string, bool, error)

// SortFunc reorders the present fields of an object node before printing.
// Returning false passes to the next handler.
type SortFunc func(fields []string, node *tree.Object, c *PrintContext) ([]string, bool)

// Pair is one printed field of an object node.
type Pair struct {
	// Field is the field name, or a reserved pseudo-entry ending in "!".
	Field string

	// Content is the rendered text. May be empty for pseudo-entries that
	// only mark a separator position.
	Content string
}

// ElementsJoiner joins the printed fields of one object node into a
// single string. Returning false falls through to the default space join.
type ElementsJoiner func(pairs []Pair, c *PrintContext) (string, bool)

// ItemsJoiner joins the rendered elements of one array into a single
// string. Returning false falls through to the default newline join.
type ItemsJoiner func(items []string, c *PrintContext) (string, bool)

// Registry holds the handler tables for every hook kind, keyed by type
// path. It is written during startup registration and read-only afterwards.
type Registry struct {
	// Extract handlers build report nodes. Composable: all gated-in
	// handlers run, sharing one output node.
	Extract *hooks.Table[ExtractFunc]

	// Print handlers render single values. First non-absent result wins.
	Print *hooks.Table[PrintFunc]

	// SortElements handlers reorder object fields. First result wins.
	SortElements *hooks.Table[SortFunc]

	// GetItemName handlers bind array paths to semantic item names.
	// Shared by both pipelines. First result wins.
	GetItemName *hooks.Table[NameFunc]

	// GetItemFactory handlers swap the factory for nested items. First
	// result wins.
	GetItemFactory *hooks.Table[FactoryFunc]

	// Merge handlers collapse item arrays into name-keyed nodes. First
	// result wins.
	Merge *hooks.Table[MergeFunc]

	// PrintItems handlers join rendered array elements. First result
	// wins.
	PrintItems *hooks.Table[ItemsJoiner]

	// PrintElements handlers join rendered object fields. First result
	// wins.
	PrintElements *hooks.Table[ElementsJoiner]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		Extract:        hooks.NewTable[ExtractFunc](),
		Print:          hooks.NewTable[PrintFunc](),
		SortElements:   hooks.NewTable[SortFunc](),
		GetItemName:    hooks.NewTable[NameFunc](),
		GetItemFactory: hooks.NewTable[FactoryFunc](),
		Merge:          hooks.NewTable[MergeFunc](),
		PrintItems:     hooks.NewTable[ItemsJoiner](),
		PrintElements:  hooks.NewTable[ElementsJoiner](),
	}
}

// levels returns the lookup sequence for a type path: the path itself,
// then each suffix produced by stripping one leading segment at a time.
// "compilation.chunks[].modules[].module.id" is tried before
// "module.id" before "id".
func levels(typePath string) []string {
	out := []string{typePath}
	for {
		i := strings.Index(typePath, ".")
		if i < 0 {
			return out
		}
		typePath = typePath[i+1:]
		out = append(out, typePath)
	}
}

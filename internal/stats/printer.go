package stats

import (
	"fmt"
	"strings"

	"github.com/bundlestats/bundlestats/internal/tree"
)

// Printer is the printing pipeline: it renders a report tree to text by
// dispatching every value through the registered print handlers, field
// orders, and joiners.
type Printer struct {
	// Registry is the process-wide handler registry.
	Registry *Registry
}

// NewPrinter creates a printer over a registry.
func NewPrinter(registry *Registry) *Printer {
	return &Printer{Registry: registry}
}

// Print renders the node at typePath. The second result is false when the
// node contributes nothing; an absent subtree is removed from its
// parent's join without affecting siblings.
//
// Dispatch order per value: the most specific registered print handler
// wins; without one, object and array nodes recurse and scalars are
// silently absent (a missing handler is not an error).
func (p *Printer) Print(typePath string, node any, c *PrintContext) (string, bool, error) {
	for _, level := range levels(typePath) {
		for _, h := range p.Registry.Print.Handlers(level, nil) {
			content, ok, err := h(p, node, c)
			if err != nil {
				return "", false, fmt.Errorf("print %s: %w", typePath, err)
			}
			if ok {
				return content, true, nil
			}
		}
	}

	switch n := node.(type) {
	case *tree.Object:
		return p.printObject(typePath, n, c)
	case []any:
		return p.printArray(typePath, n, c)
	default:
		return "", false, nil
	}
}

// printObject renders an object node: order the present fields, print
// each, and join the resulting pairs.
func (p *Printer) printObject(typePath string, node *tree.Object, c *PrintContext) (string, bool, error) {
	fields := node.Keys()
	for _, level := range levels(typePath) {
		reordered := false
		for _, h := range p.Registry.SortElements.Handlers(level, nil) {
			if sorted, ok := h(fields, node, c); ok {
				fields = sorted
				reordered = true
				break
			}
		}
		if reordered {
			break
		}
	}

	pairs := make([]Pair, 0, len(fields))
	for _, field := range fields {
		fieldPath := typePath + "." + field

		// Reserved pseudo-entries are not present in the node; they print
		// through their handler alone, typically as synthetic labels or
		// separator markers for the joiner.
		if strings.HasSuffix(field, "!") {
			content, ok, err := p.Print(fieldPath, nil, c)
			if err != nil {
				return "", false, err
			}
			if ok {
				pairs = append(pairs, Pair{Field: field, Content: content})
			}
			continue
		}

		value, present := node.Get(field)
		if !present {
			continue
		}
		content, ok, err := p.Print(fieldPath, value, c)
		if err != nil {
			return "", false, err
		}
		if ok {
			pairs = append(pairs, Pair{Field: field, Content: content})
		}
	}

	for _, level := range levels(typePath) {
		for _, h := range p.Registry.PrintElements.Handlers(level, nil) {
			if joined, ok := h(pairs, c); ok {
				return joined, true, nil
			}
		}
	}
	return joinDefault(pairs, " ")
}

// printArray renders an array: print each element under the "[]" path
// (extended by the element's semantic name, if bound) and join the
// rendered items.
func (p *Printer) printArray(typePath string, items []any, c *PrintContext) (string, bool, error) {
	elemBase := typePath + "[]"

	rendered := make([]string, 0, len(items))
	for _, item := range items {
		elemPath := elemBase
		if name, ok := p.itemName(elemBase, item); ok {
			elemPath = elemBase + "." + name
		}
		content, ok, err := p.Print(elemPath, item, c)
		if err != nil {
			return "", false, err
		}
		if ok {
			rendered = append(rendered, content)
		}
	}
	if len(rendered) == 0 {
		return "", false, nil
	}

	for _, level := range levels(typePath) {
		for _, h := range p.Registry.PrintItems.Handlers(level, nil) {
			if joined, ok := h(rendered, c); ok {
				return joined, true, nil
			}
		}
	}
	joined := strings.Join(rendered, "\n")
	return joined, joined != "", nil
}

// itemName resolves the semantic name for elements of an array path.
func (p *Printer) itemName(elemBase string, item any) (string, bool) {
	for _, level := range levels(elemBase) {
		for _, h := range p.Registry.GetItemName.Handlers(level, nil) {
			if name, ok := h(item); ok {
				return name, true
			}
		}
	}
	return "", false
}

// joinDefault space-joins the non-empty pair contents. No non-empty
// content means the object contributes nothing.
func joinDefault(pairs []Pair, separator string) (string, bool, error) {
	contents := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		if pair.Content != "" {
			contents = append(contents, pair.Content)
		}
	}
	if len(contents) == 0 {
		return "", false, nil
	}
	return strings.Join(contents, separator), true, nil
}

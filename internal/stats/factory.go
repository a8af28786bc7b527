package stats

import (
	"fmt"

	"github.com/bundlestats/bundlestats/internal/options"
	"github.com/bundlestats/bundlestats/internal/tree"
)

// Factory is the extraction pipeline: it builds report nodes for items at
// a type path by running the registered extractors that the request's
// option set gates in.
//
// A Factory pairs the process-wide Registry with one request's option
// set. Constructing one is cheap; child reports get their own Factory
// sharing the same Registry via With.
type Factory struct {
	// Registry is the process-wide handler registry.
	Registry *Registry

	// Options is the option set gating this factory's extractors.
	Options options.Options
}

// NewFactory creates a factory for one request.
func NewFactory(registry *Registry, opts options.Options) *Factory {
	return &Factory{Registry: registry, Options: opts}
}

// With returns a factory sharing the registry but bound to another option
// set. Used for child session reports.
func (f *Factory) With(opts options.Options) *Factory {
	return &Factory{Registry: f.Registry, Options: opts}
}

// Create builds one report node per item at typePath.
//
// The semantic name for the items is resolved through the GetItemName
// hook (default: the type path itself) and selects which extractors
// apply. Per item, the GetItemFactory hook may substitute a different
// factory, which is how child session reports run under their own option
// sets. All gated-in extractors then run in registration order against a
// shared fresh node.
//
// The result is deterministic for a fixed option set and build result.
// An extractor error aborts the whole request; partial trees are never
// returned.
func (f *Factory) Create(typePath string, items []any, c *ExtractContext) ([]*tree.Object, error) {
	var sample any
	if len(items) > 0 {
		sample = items[0]
	}
	name := f.ItemName(typePath, sample)

	nodes := make([]*tree.Object, 0, len(items))
	for _, item := range items {
		sub := f
		for _, level := range levels(typePath) {
			substituted := false
			for _, h := range f.Registry.GetItemFactory.Handlers(level, f.Options.Truthy) {
				if alt, ok := h(f, item, c); ok {
					sub = alt
					substituted = true
					break
				}
			}
			if substituted {
				break
			}
		}

		out := tree.NewObject()
		for _, level := range levels(name) {
			for _, h := range f.Registry.Extract.Handlers(level, sub.Options.Truthy) {
				if err := h(sub, out, item, typePath, c); err != nil {
					return nil, fmt.Errorf("extract %s: %w", typePath, err)
				}
			}
		}
		nodes = append(nodes, out)
	}
	return nodes, nil
}

// CreateMerged builds the nodes for typePath and applies the path's merge
// binding, if any, returning either the name-keyed merged node or the
// plain array. Callers needing a filtered count (requested minus
// produced) must compute it from the item list before calling, since the
// merged form discards array length.
func (f *Factory) CreateMerged(typePath string, items []any, c *ExtractContext) (any, error) {
	nodes, err := f.Create(typePath, items, c)
	if err != nil {
		return nil, err
	}
	if merged, ok := f.MergeItems(typePath, nodes, c); ok {
		return merged, nil
	}
	arr := make([]any, len(nodes))
	for i, n := range nodes {
		arr[i] = n
	}
	return arr, nil
}

// MergeItems applies the merge binding for typePath to already-created
// nodes. Returns false when no binding exists.
func (f *Factory) MergeItems(typePath string, nodes []*tree.Object, c *ExtractContext) (any, bool) {
	for _, level := range levels(typePath) {
		for _, h := range f.Registry.Merge.Handlers(level, f.Options.Truthy) {
			if merged, ok := h(nodes, c); ok {
				return merged, true
			}
		}
	}
	return nil, false
}

// ItemName resolves the semantic name for items at typePath, defaulting
// to the type path itself when no binding matches.
func (f *Factory) ItemName(typePath string, item any) string {
	for _, level := range levels(typePath) {
		for _, h := range f.Registry.GetItemName.Handlers(level, f.Options.Truthy) {
			if name, ok := h(item); ok {
				return name
			}
		}
	}
	return typePath
}

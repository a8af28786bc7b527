package stats

import "github.com/bundlestats/bundlestats/internal/tree"

// MergeByName collapses an ordered list of item nodes into one node keyed
// by each item's nameField value. Array order is discarded; items without
// a string name are skipped.
//
// Duplicate names silently keep the last item (last-write-wins). The only
// consumer is display grouping, where callers guarantee unique names; an
// explicit collision policy would be needed before relying on merges for
// anything stronger.
func MergeByName(items []*tree.Object, nameField string) *tree.Object {
	merged := tree.NewObject()
	for _, item := range items {
		v, ok := item.Get(nameField)
		if !ok {
			continue
		}
		name, ok := v.(string)
		if !ok {
			continue
		}
		merged.Set(name, item)
	}
	return merged
}

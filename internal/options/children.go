package options

import "log/slog"

// childMode distinguishes the accepted shapes of the "children" option.
type childMode int

const (
	// childrenOff means no child reports are produced.
	childrenOff childMode = iota
	// childrenInherit means every child reuses the parent option set.
	childrenInherit
	// childrenShared means every child uses one nested option set.
	childrenShared
	// childrenPositional means child i uses the i-th option set from a
	// list; children beyond the list fall back to a no-op set.
	childrenPositional
)

// ChildSpec is the normalized form of the "children" option.
type ChildSpec struct {
	mode   childMode
	parent Options
	shared Options
	list   []Options
}

// ChildSpec normalizes the "children" option of the set. Malformed values
// degrade to the boolean-true behavior (children enabled, inheriting the
// parent options) and are logged at warn level; configuration problems
// never abort a report request. A nil logger suppresses the warning.
func (o Options) ChildSpec(logger *slog.Logger) ChildSpec {
	if o == nil {
		return ChildSpec{mode: childrenOff}
	}
	v, ok := o["children"]
	if !ok {
		return ChildSpec{mode: childrenOff}
	}

	switch t := v.(type) {
	case bool:
		if !t {
			return ChildSpec{mode: childrenOff}
		}
		return ChildSpec{mode: childrenInherit, parent: o}
	case nil:
		return ChildSpec{mode: childrenOff}
	}

	if nested, ok := fromAny(v); ok {
		return ChildSpec{mode: childrenShared, shared: nested}
	}

	if items, ok := v.([]any); ok {
		list := make([]Options, 0, len(items))
		valid := true
		for _, item := range items {
			nested, ok := fromAny(item)
			if !ok {
				valid = false
				break
			}
			list = append(list, nested)
		}
		if valid {
			return ChildSpec{mode: childrenPositional, list: list}
		}
	}

	if logger != nil {
		logger.Warn("unexpected shape for children option, treating as true",
			"value", v,
		)
	}
	return ChildSpec{mode: childrenInherit, parent: o}
}

// Enabled reports whether child reports should be produced at all.
func (s ChildSpec) Enabled() bool {
	return s.mode != childrenOff
}

// ForChild returns the option set for the child at position i.
// Positional children beyond the configured list receive an empty set, so
// the child still appears in the report with its unconditional fields
// rather than being omitted.
func (s ChildSpec) ForChild(i int) Options {
	switch s.mode {
	case childrenInherit:
		return s.parent
	case childrenShared:
		return s.shared
	case childrenPositional:
		if i >= 0 && i < len(s.list) {
			return s.list[i]
		}
		return Options{}
	default:
		return nil
	}
}

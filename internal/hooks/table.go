package hooks

// Table is an ordered multi-handler registry keyed by type path.
// H is the handler signature of one hook kind.
type Table[H any] struct {
	entries map[string][]entry[H]
	paths   []string
}

// entry pairs a handler with its gate.
type entry[H any] struct {
	gate    Gate
	handler H
}

// NewTable creates an empty handler table.
func NewTable[H any]() *Table[H] {
	return &Table[H]{
		entries: make(map[string][]entry[H]),
	}
}

// Register appends a handler for typePath. Handlers registered under the
// same path keep their arrival order. Registering under a path with no
// prior handlers records the path for Paths.
func (t *Table[H]) Register(typePath string, gate Gate, handler H) {
	if _, ok := t.entries[typePath]; !ok {
		t.paths = append(t.paths, typePath)
	}
	t.entries[typePath] = append(t.entries[typePath], entry[H]{gate: gate, handler: handler})
}

// Handlers returns the handlers registered for typePath whose gates admit
// the request described by truthy, in registration order. A path with no
// registrations yields nil; absence of handlers is never an error.
func (t *Table[H]) Handlers(typePath string, truthy func(string) bool) []H {
	registered := t.entries[typePath]
	if len(registered) == 0 {
		return nil
	}
	handlers := make([]H, 0, len(registered))
	for _, e := range registered {
		if e.gate.Admits(truthy) {
			handlers = append(handlers, e.handler)
		}
	}
	return handlers
}

// Count returns the number of handlers registered for typePath regardless
// of gating. Intended for diagnostics and tests.
func (t *Table[H]) Count(typePath string) int {
	return len(t.entries[typePath])
}

// Paths returns every path with at least one registration, in first-seen
// order. The returned slice is a snapshot; order within is stable.
func (t *Table[H]) Paths() []string {
	paths := make([]string, len(t.paths))
	copy(paths, t.paths)
	return paths
}

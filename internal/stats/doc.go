// Package stats implements the two-stage report pipeline: extraction
// turns a build session into a plain report tree, printing renders a
// report tree to text. Both stages dispatch exclusively through handlers
// registered in a Registry under hierarchical type paths, so every field
// of the report, built-in or plugin-supplied, flows through the same
// mechanism.
//
// A type path addresses a position in the report tree, e.g. "compilation",
// "compilation.assets[]", "compilation.chunks[].modules[]". The "[]"
// suffix means "once per element of the array produced here". Handler
// lookup walks the path from most to least specific by stripping leading
// segments, so a handler registered under "module.id" serves both
// "compilation.modules[].module.id" and
// "compilation.chunks[].modules[].module.id".
//
// The Registry is assembled once at startup (see the catalog package for
// the built-in registrations) and is read-only while requests run. Each
// request owns its option set and print context; nothing request-scoped
// ever lives in the Registry, which is what makes concurrent independent
// requests safe without locking.
package stats

// Package hooks provides the path-keyed, arrival-ordered handler tables
// that both report pipelines dispatch through.
//
// A Table stores handlers of one kind (extract, print, joiner, ...) under
// hierarchical type paths such as "compilation.assets[]". Each registration
// carries a Gate deciding whether the handler participates in a given
// request: Always() handlers run unconditionally, WhenOption(name) handlers
// run only when the request's option set reports name as truthy.
//
// The table itself only stores and selects handlers; invocation semantics
// belong to the pipelines. Extraction runs every selected handler in
// registration order against a shared output object, while single-result
// kinds (item names, item factories) and transform pickers (element and
// item joiners) take the first handler that yields a result.
//
// Design decision: tables are written exclusively during process startup
// registration and are read-only while requests run, so no locking is
// needed. Pipelines receive tables explicitly rather than reaching for a
// package-level registry, which keeps tests isolated.
package hooks

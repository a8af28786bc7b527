// Package tree defines the plain report tree produced by extraction and
// consumed by printing and machine clients.
//
// A report tree is an acyclic nesting of *Object nodes, []any arrays, and
// scalar values. It is built once per report request and treated as
// immutable once printing begins.
//
// Design decision: Object preserves field insertion order instead of using
// a plain map. Printing derives its default field order from the order in
// which extractors set fields, and JSON output must be stable across runs
// so that two extractions of the same build result compare equal
// byte-for-byte.
package tree

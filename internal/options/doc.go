// Package options defines the externally supplied option set that gates
// extractor execution and controls recursive child reports.
//
// An option set maps option names to boolean or enum-like values. Option
// sets are supplied once per report request and never mutated by the
// pipelines; process-wide handler registrations consult them read-only
// through Truthy.
//
// The "children" option is special: it accepts a boolean, a single nested
// option set applied to every child build session, or a positional list of
// option sets. Unexpected shapes degrade to the boolean-true behavior
// rather than failing the request, keeping reporting best-effort in the
// face of malformed configuration.
package options

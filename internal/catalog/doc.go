// Package catalog installs the default field handlers for build session
// reports: which facts each domain concept contributes to the report
// tree, and how every field renders as terminal text.
//
// The catalog covers five concepts. A compilation is one build session;
// an asset is one emitted artifact; a module is one source-level work
// unit; a chunk is one bundle group; an entrypoint is one deployment
// group. Everything the catalog registers goes through the ordinary
// hook tables, so callers can layer their own handlers before or after
// the defaults on an equal footing.
package catalog

package build

import "time"

// Reader is the read-only data-access interface extraction consults.
//
// Design decision: the iteration methods accept an optional comparator
// instead of exposing pre-sorted variants per field. Extraction decides
// the order it wants (usually by name or id) and the implementation sorts
// a copy, so callers never observe each other's orderings.
type Reader interface {
	// Hash returns the build hash.
	Hash() string

	// Version returns the bundler version that produced the session.
	Version() string

	// BuiltAt returns the wall-clock completion time of the build.
	BuiltAt() time.Time

	// Duration returns how long the build took.
	Duration() time.Duration

	// Assets returns the emitted artifacts. A non-nil less sorts the
	// returned copy; nil keeps emission order.
	Assets(less func(a, b *Asset) bool) []*Asset

	// Modules returns the work units. A non-nil less sorts the returned
	// copy; nil keeps build order.
	Modules(less func(a, b *Module) bool) []*Module

	// Chunks returns the bundle groups. A non-nil less sorts the
	// returned copy; nil keeps creation order.
	Chunks(less func(a, b *Chunk) bool) []*Chunk

	// Entrypoints returns the deployment groups in declaration order.
	Entrypoints() []*Entrypoint

	// ModuleByID looks a work unit up by id.
	ModuleByID(id string) (*Module, bool)

	// ChunkByID looks a bundle group up by id.
	ChunkByID(id int) (*Chunk, bool)

	// IncomingReferences returns the dependency edges pointing at the
	// module, in build order.
	IncomingReferences(moduleID string) []Reference

	// IssuerChain returns the chain of modules that led to the module
	// being requested, outermost first. Entry modules yield an empty
	// chain.
	IssuerChain(moduleID string) []*Module

	// ModuleDepth returns the module's distance from the nearest entry.
	ModuleDepth(moduleID string) int

	// ModuleSize returns the module's byte size for one source type, or
	// the total size when sourceType is empty.
	ModuleSize(moduleID string, sourceType string) int64

	// UsedSymbols returns the module's consumed export names, or nil
	// when the build did not track usage.
	UsedSymbols(moduleID string) []string

	// ProvidedSymbols returns the module's exported names, or nil when
	// the build did not track them.
	ProvidedSymbols(moduleID string) []string

	// Errors and Warnings return the session's problems.
	Errors() []Problem
	Warnings() []Problem

	// NeedAdditionalPass is true when the build requested another pass.
	NeedAdditionalPass() bool

	// Children returns nested child sessions, in build order.
	Children() []Reader
}

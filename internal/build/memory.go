package build

import (
	"sort"
	"time"
)

// MemorySession adapts a Record to the Reader interface. All queries are
// answered from memory; nothing is cached between report requests beyond
// the id lookup maps built at construction time, which only index the
// record rather than derive report data from it.
type MemorySession struct {
	record *Record

	modulesByID map[string]*Module
	chunksByID  map[int]*Chunk
	children    []Reader
}

// Compile-time interface check.
var _ Reader = (*MemorySession)(nil)

// NewMemorySession wraps a record in a Reader. The record must not be
// mutated while the session is in use.
func NewMemorySession(record *Record) *MemorySession {
	s := &MemorySession{
		record:      record,
		modulesByID: make(map[string]*Module, len(record.Modules)),
		chunksByID:  make(map[int]*Chunk, len(record.Chunks)),
	}
	for i := range record.Modules {
		m := &record.Modules[i]
		s.modulesByID[m.ID] = m
	}
	for i := range record.Chunks {
		c := &record.Chunks[i]
		s.chunksByID[c.ID] = c
	}
	for i := range record.Children {
		s.children = append(s.children, NewMemorySession(&record.Children[i]))
	}
	return s
}

// Name returns the session name from the record. Not part of Reader;
// callers holding a concrete MemorySession use it for report labeling.
func (s *MemorySession) Name() string {
	return s.record.Name
}

// Hash returns the build hash.
func (s *MemorySession) Hash() string {
	return s.record.Hash
}

// Version returns the bundler version.
func (s *MemorySession) Version() string {
	return s.record.Version
}

// BuiltAt returns the build completion time.
func (s *MemorySession) BuiltAt() time.Time {
	return s.record.BuiltAt
}

// Duration returns the build duration.
func (s *MemorySession) Duration() time.Duration {
	return time.Duration(s.record.TimeMs) * time.Millisecond
}

// Assets returns the emitted artifacts, optionally sorted.
func (s *MemorySession) Assets(less func(a, b *Asset) bool) []*Asset {
	out := make([]*Asset, len(s.record.Assets))
	for i := range s.record.Assets {
		out[i] = &s.record.Assets[i]
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// Modules returns the work units, optionally sorted.
func (s *MemorySession) Modules(less func(a, b *Module) bool) []*Module {
	out := make([]*Module, len(s.record.Modules))
	for i := range s.record.Modules {
		out[i] = &s.record.Modules[i]
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// Chunks returns the bundle groups, optionally sorted.
func (s *MemorySession) Chunks(less func(a, b *Chunk) bool) []*Chunk {
	out := make([]*Chunk, len(s.record.Chunks))
	for i := range s.record.Chunks {
		out[i] = &s.record.Chunks[i]
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

// Entrypoints returns the deployment groups in declaration order.
func (s *MemorySession) Entrypoints() []*Entrypoint {
	out := make([]*Entrypoint, len(s.record.Entrypoints))
	for i := range s.record.Entrypoints {
		out[i] = &s.record.Entrypoints[i]
	}
	return out
}

// ModuleByID looks a work unit up by id.
func (s *MemorySession) ModuleByID(id string) (*Module, bool) {
	m, ok := s.modulesByID[id]
	return m, ok
}

// ChunkByID looks a bundle group up by id.
func (s *MemorySession) ChunkByID(id int) (*Chunk, bool) {
	c, ok := s.chunksByID[id]
	return c, ok
}

// IncomingReferences returns the dependency edges pointing at the module.
func (s *MemorySession) IncomingReferences(moduleID string) []Reference {
	m, ok := s.modulesByID[moduleID]
	if !ok {
		return nil
	}
	return m.Reasons
}

// IssuerChain walks the issuer links from the module to its entry,
// returning the chain outermost first. Cycles in corrupt records are cut
// by refusing to revisit a module.
func (s *MemorySession) IssuerChain(moduleID string) []*Module {
	var chain []*Module
	seen := map[string]bool{moduleID: true}

	m, ok := s.modulesByID[moduleID]
	for ok && m.Issuer != "" && !seen[m.Issuer] {
		seen[m.Issuer] = true
		m, ok = s.modulesByID[m.Issuer]
		if ok {
			chain = append(chain, m)
		}
	}

	// Reverse so the outermost issuer comes first.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// ModuleDepth returns the module's distance from the nearest entry.
func (s *MemorySession) ModuleDepth(moduleID string) int {
	if m, ok := s.modulesByID[moduleID]; ok {
		return m.Depth
	}
	return 0
}

// ModuleSize returns the module's byte size, total or per source type.
func (s *MemorySession) ModuleSize(moduleID string, sourceType string) int64 {
	m, ok := s.modulesByID[moduleID]
	if !ok {
		return 0
	}
	if sourceType == "" {
		return m.Size
	}
	return m.Sizes[sourceType]
}

// UsedSymbols returns the module's consumed export names.
func (s *MemorySession) UsedSymbols(moduleID string) []string {
	if m, ok := s.modulesByID[moduleID]; ok {
		return m.UsedExports
	}
	return nil
}

// ProvidedSymbols returns the module's exported names.
func (s *MemorySession) ProvidedSymbols(moduleID string) []string {
	if m, ok := s.modulesByID[moduleID]; ok {
		return m.ProvidedExports
	}
	return nil
}

// Errors returns the session's errors.
func (s *MemorySession) Errors() []Problem {
	return s.record.Errors
}

// Warnings returns the session's warnings.
func (s *MemorySession) Warnings() []Problem {
	return s.record.Warnings
}

// NeedAdditionalPass reports whether the build requested another pass.
func (s *MemorySession) NeedAdditionalPass() bool {
	return s.record.NeedAdditionalPass
}

// Children returns nested child sessions.
func (s *MemorySession) Children() []Reader {
	return s.children
}

package catalog

import (
	"strings"

	"github.com/bundlestats/bundlestats/internal/build"
	"github.com/bundlestats/bundlestats/internal/hooks"
	"github.com/bundlestats/bundlestats/internal/stats"
	"github.com/bundlestats/bundlestats/internal/tree"
)

// named is the optional labeling interface of build sessions.
type named interface {
	Name() string
}

// childSession pairs a nested build session with its position among its
// siblings, so the factory override can pick the matching per-child
// option set.
type childSession struct {
	build.Reader
	index int
}

// Name forwards the label of the wrapped session, if it carries one.
func (s *childSession) Name() string {
	if n, ok := s.Reader.(named); ok {
		return n.Name()
	}
	return ""
}

// registerNames binds array paths to the semantic item names of the
// domain concepts. The bindings are what let handlers registered under
// short keys like "asset.name" serve every nesting level.
func registerNames(r *stats.Registry) {
	bind := func(path, name string) {
		r.GetItemName.Register(path, hooks.Always(), func(any) (string, bool) {
			return name, true
		})
	}
	bind("assets[]", "asset")
	bind("modules[]", "module")
	bind("chunks[]", "chunk")
	bind("entrypoints[]", "entrypoint")
	bind("reasons[]", "reason")
	bind("origins[]", "origin")
	bind("errors[]", "error")
	bind("warnings[]", "warning")
	bind("children[]", "compilation")
}

func registerExtract(r *stats.Registry) {
	registerCompilationExtract(r)
	registerAssetExtract(r)
	registerModuleExtract(r)
	registerChunkExtract(r)
	registerEntrypointExtract(r)
	registerProblemExtract(r)
}

// registerCompilationExtract wires the session-level extractors. Each
// field group is gated by its option; nested groups recurse through the
// factory so their own handlers apply.
func registerCompilationExtract(r *stats.Registry) {
	r.Extract.Register("compilation", hooks.Always(), func(_ *stats.Factory, out *tree.Object, item any, _ string, _ *stats.ExtractContext) error {
		if n, ok := item.(named); ok {
			if name := n.Name(); name != "" {
				out.Set("name", name)
			}
		}
		return nil
	})

	r.Extract.Register("compilation", hooks.WhenOption("hash"), func(_ *stats.Factory, out *tree.Object, item any, _ string, _ *stats.ExtractContext) error {
		if s, ok := item.(build.Reader); ok && s.Hash() != "" {
			out.Set("hash", s.Hash())
		}
		return nil
	})

	r.Extract.Register("compilation", hooks.WhenOption("version"), func(_ *stats.Factory, out *tree.Object, item any, _ string, _ *stats.ExtractContext) error {
		if s, ok := item.(build.Reader); ok && s.Version() != "" {
			out.Set("version", s.Version())
		}
		return nil
	})

	r.Extract.Register("compilation", hooks.WhenOption("timings"), func(_ *stats.Factory, out *tree.Object, item any, _ string, _ *stats.ExtractContext) error {
		if s, ok := item.(build.Reader); ok {
			out.Set("time", s.Duration().Milliseconds())
		}
		return nil
	})

	r.Extract.Register("compilation", hooks.WhenOption("builtAt"), func(_ *stats.Factory, out *tree.Object, item any, _ string, _ *stats.ExtractContext) error {
		if s, ok := item.(build.Reader); ok && !s.BuiltAt().IsZero() {
			out.Set("builtAt", s.BuiltAt())
		}
		return nil
	})

	r.Extract.Register("compilation", hooks.WhenOption("entrypoints"), func(f *stats.Factory, out *tree.Object, item any, typePath string, c *stats.ExtractContext) error {
		s, ok := item.(build.Reader)
		if !ok {
			return nil
		}
		eps := s.Entrypoints()
		if len(eps) == 0 {
			return nil
		}
		items := make([]any, len(eps))
		for i, e := range eps {
			items[i] = e
		}
		merged, err := f.CreateMerged(typePath+".entrypoints[]", items, c)
		if err != nil {
			return err
		}
		out.Set("entrypoints", merged)
		return nil
	})

	r.Extract.Register("compilation", hooks.WhenOption("assets"), func(f *stats.Factory, out *tree.Object, item any, typePath string, c *stats.ExtractContext) error {
		s, ok := item.(build.Reader)
		if !ok {
			return nil
		}
		all := s.Assets(func(a, b *build.Asset) bool { return a.Name < b.Name })
		exclude := f.Options.Strings("excludeAssets")
		kept := make([]any, 0, len(all))
		for _, a := range all {
			if nameExcluded(a.Name, exclude) {
				continue
			}
			kept = append(kept, a)
		}
		nodes, err := f.Create(typePath+".assets[]", kept, c)
		if err != nil {
			return err
		}
		out.Set("assets", nodesToAny(nodes))
		out.Set("filteredAssets", len(all)-len(kept))
		return nil
	})

	r.Extract.Register("compilation", hooks.WhenOption("chunks"), func(f *stats.Factory, out *tree.Object, item any, typePath string, c *stats.ExtractContext) error {
		s, ok := item.(build.Reader)
		if !ok {
			return nil
		}
		chunks := s.Chunks(func(a, b *build.Chunk) bool { return a.ID < b.ID })
		items := make([]any, len(chunks))
		for i, ch := range chunks {
			items[i] = ch
		}
		nodes, err := f.Create(typePath+".chunks[]", items, c)
		if err != nil {
			return err
		}
		out.Set("chunks", nodesToAny(nodes))
		return nil
	})

	r.Extract.Register("compilation", hooks.WhenOption("modules"), func(f *stats.Factory, out *tree.Object, item any, typePath string, c *stats.ExtractContext) error {
		s, ok := item.(build.Reader)
		if !ok {
			return nil
		}
		all := s.Modules(func(a, b *build.Module) bool { return a.Name < b.Name })
		exclude := f.Options.Strings("excludeModules")
		kept := make([]any, 0, len(all))
		for _, m := range all {
			if nameExcluded(m.Name, exclude) {
				continue
			}
			kept = append(kept, m)
		}
		nodes, err := f.Create(typePath+".modules[]", kept, c)
		if err != nil {
			return err
		}
		out.Set("modules", nodesToAny(nodes))
		out.Set("filteredModules", len(all)-len(kept))
		return nil
	})

	r.Extract.Register("compilation", hooks.WhenOption("warnings"), func(f *stats.Factory, out *tree.Object, item any, typePath string, c *stats.ExtractContext) error {
		s, ok := item.(build.Reader)
		if !ok {
			return nil
		}
		nodes, err := f.Create(typePath+".warnings[]", problemsToAny(s.Warnings()), c)
		if err != nil {
			return err
		}
		out.Set("warnings", nodesToAny(nodes))
		return nil
	})

	r.Extract.Register("compilation", hooks.WhenOption("errors"), func(f *stats.Factory, out *tree.Object, item any, typePath string, c *stats.ExtractContext) error {
		s, ok := item.(build.Reader)
		if !ok {
			return nil
		}
		nodes, err := f.Create(typePath+".errors[]", problemsToAny(s.Errors()), c)
		if err != nil {
			return err
		}
		out.Set("errors", nodesToAny(nodes))
		return nil
	})

	r.Extract.Register("compilation", hooks.Always(), func(_ *stats.Factory, out *tree.Object, item any, _ string, _ *stats.ExtractContext) error {
		if s, ok := item.(build.Reader); ok && s.NeedAdditionalPass() {
			out.Set("needAdditionalPass", true)
		}
		return nil
	})

	// Child sessions recurse as full compilations. Each child runs under
	// the option set its position selects and against its own session,
	// so nested graph queries resolve in the right build.
	r.Extract.Register("compilation", hooks.WhenOption("children"), func(f *stats.Factory, out *tree.Object, item any, typePath string, c *stats.ExtractContext) error {
		s, ok := item.(build.Reader)
		if !ok {
			return nil
		}
		kids := s.Children()
		if len(kids) == 0 {
			return nil
		}
		nodes := make([]any, 0, len(kids))
		for i, kid := range kids {
			created, err := f.Create(typePath+".children[]", []any{&childSession{Reader: kid, index: i}}, c.WithSession(kid))
			if err != nil {
				return err
			}
			for _, n := range created {
				nodes = append(nodes, n)
			}
		}
		out.Set("children", nodes)
		return nil
	})

	r.GetItemFactory.Register("children[]", hooks.Always(), func(f *stats.Factory, item any, c *stats.ExtractContext) (*stats.Factory, bool) {
		cs, ok := item.(*childSession)
		if !ok {
			return nil, false
		}
		return f.With(f.Options.ChildSpec(c.Logger).ForChild(cs.index)), true
	})
}

func registerAssetExtract(r *stats.Registry) {
	r.Extract.Register("asset", hooks.Always(), func(_ *stats.Factory, out *tree.Object, item any, _ string, _ *stats.ExtractContext) error {
		a, ok := item.(*build.Asset)
		if !ok {
			return nil
		}
		out.Set("name", a.Name)
		out.Set("size", a.Size)
		out.Set("chunks", intsToAny(a.Chunks))
		out.Set("chunkNames", stringsToAny(a.ChunkNames))
		out.Set("emitted", a.Emitted)
		return nil
	})
}

func registerModuleExtract(r *stats.Registry) {
	r.Extract.Register("module", hooks.Always(), func(_ *stats.Factory, out *tree.Object, item any, _ string, c *stats.ExtractContext) error {
		m, ok := item.(*build.Module)
		if !ok {
			return nil
		}
		size := m.Size
		if c.Session != nil {
			size = c.Session.ModuleSize(m.ID, "")
		}
		out.Set("id", m.ID)
		out.Set("name", m.Name)
		out.Set("size", size)
		out.Set("chunks", intsToAny(m.Chunks))
		if !m.Cacheable {
			out.Set("cacheable", false)
		}
		out.Set("built", m.Built)
		if m.Optional {
			out.Set("optional", true)
		}
		if m.Prefetched {
			out.Set("prefetched", true)
		}
		if m.Failed {
			out.Set("failed", true)
		}
		if m.Warnings > 0 {
			out.Set("warnings", m.Warnings)
		}
		if m.Errors > 0 {
			out.Set("errors", m.Errors)
		}
		return nil
	})

	r.Extract.Register("module", hooks.WhenOption("depth"), func(_ *stats.Factory, out *tree.Object, item any, _ string, c *stats.ExtractContext) error {
		m, ok := item.(*build.Module)
		if !ok {
			return nil
		}
		depth := m.Depth
		if c.Session != nil {
			depth = c.Session.ModuleDepth(m.ID)
		}
		out.Set("depth", depth)
		return nil
	})

	r.Extract.Register("module", hooks.WhenOption("issuerPath"), func(_ *stats.Factory, out *tree.Object, item any, _ string, c *stats.ExtractContext) error {
		m, ok := item.(*build.Module)
		if !ok || c.Session == nil {
			return nil
		}
		chain := c.Session.IssuerChain(m.ID)
		if len(chain) == 0 {
			return nil
		}
		names := make([]any, len(chain))
		for i, issuer := range chain {
			name := issuer.Name
			if name == "" {
				name = issuer.ID
			}
			names[i] = name
		}
		out.Set("issuerPath", names)
		return nil
	})

	r.Extract.Register("module", hooks.WhenOption("usedExports"), func(_ *stats.Factory, out *tree.Object, item any, _ string, c *stats.ExtractContext) error {
		m, ok := item.(*build.Module)
		if !ok {
			return nil
		}
		syms := m.UsedExports
		if c.Session != nil {
			syms = c.Session.UsedSymbols(m.ID)
		}
		if syms != nil {
			out.Set("usedExports", stringsToAny(syms))
		}
		return nil
	})

	r.Extract.Register("module", hooks.WhenOption("providedExports"), func(_ *stats.Factory, out *tree.Object, item any, _ string, c *stats.ExtractContext) error {
		m, ok := item.(*build.Module)
		if !ok {
			return nil
		}
		syms := m.ProvidedExports
		if c.Session != nil {
			syms = c.Session.ProvidedSymbols(m.ID)
		}
		if syms != nil {
			out.Set("providedExports", stringsToAny(syms))
		}
		return nil
	})

	r.Extract.Register("module", hooks.WhenOption("reasons"), func(f *stats.Factory, out *tree.Object, item any, typePath string, c *stats.ExtractContext) error {
		m, ok := item.(*build.Module)
		if !ok {
			return nil
		}
		refs := m.Reasons
		if c.Session != nil {
			refs = c.Session.IncomingReferences(m.ID)
		}
		if len(refs) == 0 {
			return nil
		}
		items := make([]any, len(refs))
		for i, ref := range refs {
			items[i] = ref
		}
		nodes, err := f.Create(typePath+".reasons[]", items, c)
		if err != nil {
			return err
		}
		out.Set("reasons", nodesToAny(nodes))
		return nil
	})

	r.Extract.Register("reason", hooks.Always(), func(_ *stats.Factory, out *tree.Object, item any, _ string, _ *stats.ExtractContext) error {
		ref, ok := item.(build.Reference)
		if !ok {
			return nil
		}
		out.Set("type", ref.Type)
		out.Set("request", ref.Request)
		out.Set("moduleId", ref.ModuleID)
		out.Set("moduleName", ref.ModuleName)
		return nil
	})
}

func registerChunkExtract(r *stats.Registry) {
	r.Extract.Register("chunk", hooks.Always(), func(_ *stats.Factory, out *tree.Object, item any, _ string, _ *stats.ExtractContext) error {
		ch, ok := item.(*build.Chunk)
		if !ok {
			return nil
		}
		out.Set("id", ch.ID)
		out.Set("names", stringsToAny(ch.Names))
		out.Set("size", ch.Size)
		out.Set("files", stringsToAny(ch.Files))
		if len(ch.Parents) > 0 {
			out.Set("parents", intsToAny(ch.Parents))
		}
		if ch.Entry {
			out.Set("entry", true)
		}
		return nil
	})

	r.Extract.Register("chunk", hooks.WhenOption("chunkModules"), func(f *stats.Factory, out *tree.Object, item any, typePath string, c *stats.ExtractContext) error {
		ch, ok := item.(*build.Chunk)
		if !ok || c.Session == nil {
			return nil
		}
		items := make([]any, 0, len(ch.Modules))
		for _, id := range ch.Modules {
			if m, ok := c.Session.ModuleByID(id); ok {
				items = append(items, m)
			}
		}
		if len(items) == 0 {
			return nil
		}
		nodes, err := f.Create(typePath+".modules[]", items, c)
		if err != nil {
			return err
		}
		out.Set("modules", nodesToAny(nodes))
		return nil
	})

	r.Extract.Register("chunk", hooks.WhenOption("chunkOrigins"), func(f *stats.Factory, out *tree.Object, item any, typePath string, c *stats.ExtractContext) error {
		ch, ok := item.(*build.Chunk)
		if !ok || len(ch.Origins) == 0 {
			return nil
		}
		items := make([]any, len(ch.Origins))
		for i, o := range ch.Origins {
			items[i] = o
		}
		nodes, err := f.Create(typePath+".origins[]", items, c)
		if err != nil {
			return err
		}
		out.Set("origins", nodesToAny(nodes))
		return nil
	})

	r.Extract.Register("origin", hooks.Always(), func(_ *stats.Factory, out *tree.Object, item any, _ string, _ *stats.ExtractContext) error {
		o, ok := item.(build.Origin)
		if !ok {
			return nil
		}
		out.Set("moduleName", o.ModuleName)
		out.Set("request", o.Request)
		return nil
	})
}

func registerEntrypointExtract(r *stats.Registry) {
	r.Extract.Register("entrypoint", hooks.Always(), func(_ *stats.Factory, out *tree.Object, item any, _ string, c *stats.ExtractContext) error {
		e, ok := item.(*build.Entrypoint)
		if !ok {
			return nil
		}
		out.Set("name", e.Name)
		out.Set("chunks", intsToAny(e.Chunks))
		if c.Session != nil {
			var files []any
			for _, id := range e.Chunks {
				ch, ok := c.Session.ChunkByID(id)
				if !ok {
					continue
				}
				for _, f := range ch.Files {
					files = append(files, f)
				}
			}
			if len(files) > 0 {
				out.Set("assets", files)
			}
		}
		return nil
	})

	// Entrypoints group by name: the report carries a name-keyed node
	// instead of an array.
	r.Merge.Register("entrypoints[]", hooks.Always(), func(items []*tree.Object, _ *stats.ExtractContext) (any, bool) {
		return stats.MergeByName(items, "name"), true
	})
}

func registerProblemExtract(r *stats.Registry) {
	extract := func(_ *stats.Factory, out *tree.Object, item any, _ string, c *stats.ExtractContext) error {
		p, ok := item.(build.Problem)
		if !ok {
			return nil
		}
		if p.ModuleID != "" {
			name := p.ModuleID
			if c.Session != nil {
				if m, ok := c.Session.ModuleByID(p.ModuleID); ok {
					name = m.Name
				}
			}
			out.Set("moduleName", name)
		}
		out.Set("message", p.Message)
		return nil
	}
	r.Extract.Register("error", hooks.Always(), extract)
	r.Extract.Register("warning", hooks.Always(), extract)
}

// nameExcluded reports whether a name matches any exclude pattern.
// Patterns match by substring, which covers the common directory-prefix
// and extension cases without a pattern language.
func nameExcluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.Contains(name, p) {
			return true
		}
	}
	return false
}

func nodesToAny(nodes []*tree.Object) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

func problemsToAny(problems []build.Problem) []any {
	out := make([]any, len(problems))
	for i, p := range problems {
		out[i] = p
	}
	return out
}

func intsToAny(values []int) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

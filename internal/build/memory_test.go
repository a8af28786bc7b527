package build

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testRecord builds a small two-module session for testing.
func testRecord() *Record {
	return &Record{
		Hash:    "abc123",
		Version: "1.0.0",
		BuiltAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
		TimeMs:  1234,
		Assets: []Asset{
			{Name: "main.js", Size: 120, Chunks: []int{0}, ChunkNames: []string{"main"}, Emitted: true},
			{Name: "vendor.js", Size: 4096, Chunks: []int{1}, ChunkNames: []string{"vendor"}},
		},
		Modules: []Module{
			{ID: "./src/index.js", Name: "./src/index.js", Size: 300, Chunks: []int{0}, Built: true, Cacheable: true},
			{
				ID: "./src/util.js", Name: "./src/util.js", Size: 80, Chunks: []int{0},
				Depth: 1, Issuer: "./src/index.js", Cacheable: true,
				Sizes:   map[string]int64{"javascript": 70, "css": 10},
				Reasons: []Reference{{ModuleID: "./src/index.js", ModuleName: "./src/index.js", Type: "import", Request: "./util"}},
			},
		},
		Chunks: []Chunk{
			{ID: 0, Names: []string{"main"}, Size: 380, Files: []string{"main.js"}, Entry: true, Modules: []string{"./src/index.js", "./src/util.js"}},
			{ID: 1, Names: []string{"vendor"}, Size: 4096, Files: []string{"vendor.js"}},
		},
		Entrypoints: []Entrypoint{{Name: "main", Chunks: []int{0}}},
		Children:    []Record{{Name: "worker", Hash: "def456", Version: "1.0.0"}},
	}
}

// TestMemorySessionBasics tests session metadata and lookups.
func TestMemorySessionBasics(t *testing.T) {
	t.Parallel()

	s := NewMemorySession(testRecord())

	if s.Hash() != "abc123" {
		t.Errorf("unexpected hash: %s", s.Hash())
	}
	if s.Duration() != 1234*time.Millisecond {
		t.Errorf("unexpected duration: %v", s.Duration())
	}

	m, ok := s.ModuleByID("./src/util.js")
	if !ok {
		t.Fatal("expected module lookup to succeed")
	}
	if m.Depth != 1 {
		t.Errorf("unexpected depth: %d", m.Depth)
	}

	c, ok := s.ChunkByID(0)
	if !ok || len(c.Files) != 1 || c.Files[0] != "main.js" {
		t.Error("unexpected chunk lookup result")
	}

	if _, ok := s.ModuleByID("missing"); ok {
		t.Error("expected missing module lookup to fail")
	}
}

// TestMemorySessionSorting tests comparator-driven iteration.
func TestMemorySessionSorting(t *testing.T) {
	t.Parallel()

	s := NewMemorySession(testRecord())

	byName := s.Assets(func(a, b *Asset) bool { return a.Name < b.Name })
	if byName[0].Name != "main.js" || byName[1].Name != "vendor.js" {
		t.Errorf("unexpected sorted order: %s, %s", byName[0].Name, byName[1].Name)
	}

	bySizeDesc := s.Assets(func(a, b *Asset) bool { return a.Size > b.Size })
	if bySizeDesc[0].Name != "vendor.js" {
		t.Errorf("unexpected size order: %s first", bySizeDesc[0].Name)
	}

	// nil comparator keeps record order and does not disturb other views.
	natural := s.Assets(nil)
	if natural[0].Name != "main.js" {
		t.Errorf("expected natural order, got %s first", natural[0].Name)
	}
}

// TestMemorySessionGraphQueries tests dependency-graph derived facts.
func TestMemorySessionGraphQueries(t *testing.T) {
	t.Parallel()

	s := NewMemorySession(testRecord())

	refs := s.IncomingReferences("./src/util.js")
	if len(refs) != 1 || refs[0].Request != "./util" {
		t.Errorf("unexpected references: %v", refs)
	}

	chain := s.IssuerChain("./src/util.js")
	if len(chain) != 1 || chain[0].ID != "./src/index.js" {
		t.Errorf("unexpected issuer chain: %v", chain)
	}
	if chain := s.IssuerChain("./src/index.js"); len(chain) != 0 {
		t.Errorf("expected empty chain for entry module, got %v", chain)
	}

	if got := s.ModuleSize("./src/util.js", ""); got != 80 {
		t.Errorf("unexpected total size: %d", got)
	}
	if got := s.ModuleSize("./src/util.js", "css"); got != 10 {
		t.Errorf("unexpected css size: %d", got)
	}
	if got := s.ModuleSize("missing", ""); got != 0 {
		t.Errorf("expected 0 for missing module, got %d", got)
	}
}

// TestMemorySessionChildren tests nested child sessions.
func TestMemorySessionChildren(t *testing.T) {
	t.Parallel()

	s := NewMemorySession(testRecord())
	children := s.Children()
	if len(children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(children))
	}
	if children[0].Hash() != "def456" {
		t.Errorf("unexpected child hash: %s", children[0].Hash())
	}
}

// TestIssuerChainCycle tests that corrupt records with issuer cycles do
// not hang the walk.
func TestIssuerChainCycle(t *testing.T) {
	t.Parallel()

	rec := &Record{
		Modules: []Module{
			{ID: "a", Issuer: "b"},
			{ID: "b", Issuer: "a"},
		},
	}
	s := NewMemorySession(rec)
	chain := s.IssuerChain("a")
	if len(chain) != 1 || chain[0].ID != "b" {
		t.Errorf("expected cycle to be cut after b, got %v", chain)
	}
}

// TestLoadRecord tests file loading in both formats.
func TestLoadRecord(t *testing.T) {
	t.Parallel()

	t.Run("yaml record", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "build.yaml")
		content := `hash: abc123
version: "1.0.0"
timeMs: 500
assets:
  - name: main.js
    size: 120
    chunks: [0]
    chunkNames: [main]
    emitted: true
entrypoints:
  - name: main
    chunks: [0]
`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		rec, err := LoadRecord(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Hash != "abc123" || len(rec.Assets) != 1 {
			t.Errorf("unexpected record: %+v", rec)
		}
		if rec.Assets[0].ChunkNames[0] != "main" {
			t.Errorf("unexpected chunk names: %v", rec.Assets[0].ChunkNames)
		}
	})

	t.Run("json record", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "build.json")
		content := `{"hash":"ff00","version":"2.0.0","timeMs":10,"assets":[],"modules":[],"chunks":[],"entrypoints":[]}`
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}

		rec, err := LoadRecord(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Hash != "ff00" {
			t.Errorf("unexpected hash: %s", rec.Hash)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadRecord("/nonexistent/build.yaml"); !errors.Is(err, ErrRecordNotFound) {
			t.Errorf("expected ErrRecordNotFound, got %v", err)
		}
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "build.txt")
		if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadRecord(path); !errors.Is(err, ErrUnsupportedRecordFormat) {
			t.Errorf("expected ErrUnsupportedRecordFormat, got %v", err)
		}
	})
}

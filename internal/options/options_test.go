package options

import (
	"errors"
	"testing"
)

// TestTruthy tests the option truthiness rules.
func TestTruthy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
		key  string
		want bool
	}{
		{"missing option", Options{}, "assets", false},
		{"nil set", nil, "assets", false},
		{"true bool", Options{"assets": true}, "assets", true},
		{"false bool", Options{"assets": false}, "assets", false},
		{"nil value", Options{"assets": nil}, "assets", false},
		{"empty string", Options{"mode": ""}, "mode", false},
		{"false string", Options{"mode": "false"}, "mode", false},
		{"enum string", Options{"mode": "detailed"}, "mode", true},
		{"zero int", Options{"limit": 0}, "limit", false},
		{"nonzero int", Options{"limit": 5}, "limit", true},
		{"zero float", Options{"limit": 0.0}, "limit", false},
		{"nested set", Options{"children": Options{"assets": true}}, "children", true},
		{"list value", Options{"children": []any{}}, "children", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.opts.Truthy(tt.key); got != tt.want {
				t.Errorf("Truthy(%s) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

// TestStrings tests list-valued option access.
func TestStrings(t *testing.T) {
	t.Parallel()

	o := Options{
		"excludeAssets": []any{"vendor.js", "sourcemap.map", 42},
		"typed":         []string{"a", "b"},
		"scalar":        "x",
	}

	if got := o.Strings("excludeAssets"); len(got) != 2 || got[0] != "vendor.js" {
		t.Errorf("unexpected list: %v", got)
	}
	if got := o.Strings("typed"); len(got) != 2 {
		t.Errorf("unexpected typed list: %v", got)
	}
	if got := o.Strings("scalar"); got != nil {
		t.Errorf("expected nil for scalar value, got %v", got)
	}
	if got := o.Strings("missing"); got != nil {
		t.Errorf("expected nil for missing option, got %v", got)
	}
}

// TestChildSpec tests normalization of the children option.
func TestChildSpec(t *testing.T) {
	t.Parallel()

	t.Run("missing or false disables children", func(t *testing.T) {
		t.Parallel()

		if (Options{}).ChildSpec(nil).Enabled() {
			t.Error("expected missing children option to disable children")
		}
		if (Options{"children": false}).ChildSpec(nil).Enabled() {
			t.Error("expected children=false to disable children")
		}
		if (Options(nil)).ChildSpec(nil).Enabled() {
			t.Error("expected nil options to disable children")
		}
	})

	t.Run("true inherits the parent options", func(t *testing.T) {
		t.Parallel()

		parent := Options{"assets": true, "children": true}
		spec := parent.ChildSpec(nil)
		if !spec.Enabled() {
			t.Fatal("expected children to be enabled")
		}
		child := spec.ForChild(0)
		if !child.Truthy("assets") {
			t.Error("expected child to inherit parent options")
		}
	})

	t.Run("single nested set applies to every child", func(t *testing.T) {
		t.Parallel()

		parent := Options{"children": map[string]any{"chunks": true}}
		spec := parent.ChildSpec(nil)
		for i := range 3 {
			child := spec.ForChild(i)
			if !child.Truthy("chunks") {
				t.Errorf("child %d: expected chunks to be truthy", i)
			}
			if child.Truthy("assets") {
				t.Errorf("child %d: unexpected assets option", i)
			}
		}
	})

	t.Run("positional list with no-op fallback", func(t *testing.T) {
		t.Parallel()

		parent := Options{"children": []any{
			map[string]any{"assets": true},
			map[string]any{"chunks": true},
		}}
		spec := parent.ChildSpec(nil)

		if !spec.ForChild(0).Truthy("assets") {
			t.Error("child 0: expected assets")
		}
		if !spec.ForChild(1).Truthy("chunks") {
			t.Error("child 1: expected chunks")
		}

		// Children beyond the list get an empty set, not a nil report.
		fallback := spec.ForChild(2)
		if fallback == nil {
			t.Fatal("expected a no-op option set, got nil")
		}
		if fallback.Truthy("assets") || fallback.Truthy("chunks") {
			t.Error("expected fallback set to enable nothing")
		}
	})

	t.Run("malformed shape degrades to true", func(t *testing.T) {
		t.Parallel()

		parent := Options{"assets": true, "children": 42}
		spec := parent.ChildSpec(nil)
		if !spec.Enabled() {
			t.Fatal("expected malformed children to degrade to enabled")
		}
		if !spec.ForChild(0).Truthy("assets") {
			t.Error("expected degraded children to inherit parent options")
		}
	})
}

// TestPreset tests built-in preset resolution.
func TestPreset(t *testing.T) {
	t.Parallel()

	t.Run("normal preset enables terminal defaults", func(t *testing.T) {
		t.Parallel()

		opts, err := Preset(PresetNormal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, name := range []string{"assets", "chunks", "entrypoints", "errors", "warnings"} {
			if !opts.Truthy(name) {
				t.Errorf("expected %s to be enabled", name)
			}
		}
		if opts.Truthy("reasons") {
			t.Error("expected reasons to be disabled in normal preset")
		}
	})

	t.Run("none preset enables nothing", func(t *testing.T) {
		t.Parallel()

		opts, err := Preset(PresetNone)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(opts) != 0 {
			t.Errorf("expected empty set, got %v", opts)
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		t.Parallel()

		if _, err := Preset("bogus"); !errors.Is(err, ErrUnknownPreset) {
			t.Errorf("expected ErrUnknownPreset, got %v", err)
		}
	})
}

// TestPresetFile tests YAML preset file loading and resolution.
func TestPresetFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadPresetFile("/nonexistent/presets.yaml"); !errors.Is(err, ErrPresetFileNotFound) {
			t.Errorf("expected ErrPresetFileNotFound, got %v", err)
		}
	})

	t.Run("file presets shadow built-ins and fall back", func(t *testing.T) {
		t.Parallel()

		pf := &PresetFile{Presets: map[string]Options{
			"ci": {"assets": true, "errors": true},
		}}

		opts, err := pf.Resolve("ci")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !opts.Truthy("assets") {
			t.Error("expected file preset to resolve")
		}

		opts, err = pf.Resolve(PresetNormal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !opts.Truthy("entrypoints") {
			t.Error("expected built-in fallback to resolve")
		}

		if _, err := pf.Resolve("bogus"); !errors.Is(err, ErrUnknownPreset) {
			t.Errorf("expected ErrUnknownPreset, got %v", err)
		}
	})

	t.Run("nil file resolves built-ins", func(t *testing.T) {
		t.Parallel()

		var pf *PresetFile
		opts, err := pf.Resolve(PresetMinimal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !opts.Truthy("assets") {
			t.Error("expected built-in resolution through nil file")
		}
	})
}

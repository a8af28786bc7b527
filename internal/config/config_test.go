package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// TestNewConfigDefaults tests the documented defaults.
func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	if c.Preset != DefaultPreset {
		t.Errorf("expected preset %q, got %q", DefaultPreset, c.Preset)
	}
	if c.Concurrency != DefaultConcurrency {
		t.Errorf("expected concurrency %d, got %d", DefaultConcurrency, c.Concurrency)
	}
	if c.JSONReport || c.MarkdownReport {
		t.Error("expected text output by default")
	}
}

// TestValidate tests the validation rules.
func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() *Config {
		c := NewConfig()
		c.RecordFiles = []string{"stats.yaml"}
		return c
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "no record files",
			mutate:  func(c *Config) { c.RecordFiles = nil },
			wantErr: ErrNoRecord,
		},
		{
			name:    "empty preset",
			mutate:  func(c *Config) { c.Preset = "" },
			wantErr: ErrNoPreset,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Concurrency = -1 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name: "conflicting formats",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := valid()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestFindPresetFile tests the search order.
func TestFindPresetFile(t *testing.T) {
	t.Run("explicit path wins when present", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "custom.yaml")
		if err := os.WriteFile(path, []byte("presets: {}\n"), 0o600); err != nil {
			t.Fatal(err)
		}

		if got := FindPresetFile(path); got != path {
			t.Errorf("expected %q, got %q", path, got)
		}
	})

	t.Run("missing explicit path yields nothing", func(t *testing.T) {
		t.Parallel()

		if got := FindPresetFile(filepath.Join(t.TempDir(), "absent.yaml")); got != "" {
			t.Errorf("expected empty result, got %q", got)
		}
	})

	t.Run("working directory file found", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultPresetFile)
		if err := os.WriteFile(path, []byte("presets: {}\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		t.Chdir(dir)

		got := FindPresetFile("")
		// Resolve symlinks so macOS temp paths compare cleanly.
		want, _ := filepath.EvalSymlinks(path)
		resolved, _ := filepath.EvalSymlinks(got)
		if resolved != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})
}

// TestXDGConfigDir tests the directory suffix.
func TestXDGConfigDir(t *testing.T) {
	t.Parallel()

	if got := XDGConfigDir(); filepath.Base(got) != AppName {
		t.Errorf("expected config dir to end in %q, got %q", AppName, got)
	}
}

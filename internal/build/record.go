package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Record is the serializable form of one finished build session. The CLI
// loads records from files written by the bundler; MemorySession adapts a
// Record to the Reader interface.
type Record struct {
	// Name optionally names the session, e.g. the child compiler name.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Hash is the build hash.
	Hash string `yaml:"hash" json:"hash"`

	// Version is the bundler version.
	Version string `yaml:"version" json:"version"`

	// BuiltAt is the build completion time.
	BuiltAt time.Time `yaml:"builtAt" json:"builtAt"`

	// TimeMs is the build duration in milliseconds.
	TimeMs int64 `yaml:"timeMs" json:"timeMs"`

	// Assets, Modules, Chunks, and Entrypoints hold the session's
	// derived graphs, precomputed by the bundler.
	Assets      []Asset      `yaml:"assets" json:"assets"`
	Modules     []Module     `yaml:"modules" json:"modules"`
	Chunks      []Chunk      `yaml:"chunks" json:"chunks"`
	Entrypoints []Entrypoint `yaml:"entrypoints" json:"entrypoints"`

	// Errors and Warnings hold the session's problems.
	Errors   []Problem `yaml:"errors,omitempty" json:"errors,omitempty"`
	Warnings []Problem `yaml:"warnings,omitempty" json:"warnings,omitempty"`

	// NeedAdditionalPass is true when the build requested another pass.
	NeedAdditionalPass bool `yaml:"needAdditionalPass,omitempty" json:"needAdditionalPass,omitempty"`

	// Children holds nested child sessions.
	Children []Record `yaml:"children,omitempty" json:"children,omitempty"`
}

// LoadRecord reads a build record from a YAML or JSON file, selected by
// file extension (.yaml, .yml, .json).
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided record path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	var rec Record
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rec); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, err
		}
	default:
		return nil, ErrUnsupportedRecordFormat
	}
	return &rec, nil
}

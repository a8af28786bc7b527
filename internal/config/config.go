package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "bundlestats"

	// DefaultPreset is the option preset used when none is requested.
	// "normal" matches what developers expect from a terminal build
	// summary: artifacts, bundle groups, deployment groups, problems.
	DefaultPreset = "normal"

	// DefaultConcurrency is the number of records reported on at once in
	// batch mode. Report generation is CPU-light and file-read-bound, so
	// a small constant works across machines without tuning.
	DefaultConcurrency = 4

	// DefaultPresetFile is the preset file name searched for in the
	// working directory.
	DefaultPresetFile = ".bundlestats.yaml"
)

// Config holds all configuration options for the CLI.
//
// Design decision: a single flat struct instead of nested sub-configs.
// The number of options is manageable, and nesting would add complexity
// without significant benefit.
type Config struct {
	// RecordFiles is the list of build record files to report on.
	// Must contain at least one path.
	RecordFiles []string

	// Preset names the option preset to resolve, either a built-in
	// ("none", "errors-only", "minimal", "normal", "verbose") or one
	// defined in a preset file.
	Preset string

	// PresetFilePath is an explicit preset file path. When empty, the
	// file is searched for in the working directory and then in the XDG
	// config directory.
	PresetFilePath string

	// JSONReport emits the raw report tree as JSON instead of text.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport emits the report as GitHub Flavored Markdown.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path. When empty the report goes to
	// stdout.
	ReportFile string

	// NoColor disables ANSI color in text reports. JSON and Markdown
	// output is never colored.
	NoColor bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Concurrency is the number of records reported on concurrently in
	// batch mode.
	Concurrency int
}

// NewConfig creates a Config with default values.
//
// Design decision: a constructor instead of relying on zero values,
// because several defaults are non-zero and the constructor doubles as
// their documentation.
func NewConfig() *Config {
	return &Config{
		Preset:      DefaultPreset,
		Concurrency: DefaultConcurrency,
	}
}

// Validate checks the configuration, returning the first problem found.
// It runs once after CLI parsing, before any report is generated.
func (c *Config) Validate() error {
	if len(c.RecordFiles) == 0 {
		return ErrNoRecord
	}
	if c.Preset == "" {
		return ErrNoPreset
	}
	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// XDGConfigDir returns the XDG config directory for the application.
// On Linux: ~/.config/bundlestats.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// FindPresetFile locates the preset file to consult:
//  1. the explicit path, when given
//  2. .bundlestats.yaml in the working directory
//  3. presets.yaml in the XDG config directory
//
// Returns the empty string when nothing is found; a missing preset file
// is not an error, it only means built-in presets apply.
func FindPresetFile(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		local := filepath.Join(cwd, DefaultPresetFile)
		if _, err := os.Stat(local); err == nil {
			return local
		}
	}

	shared := filepath.Join(XDGConfigDir(), "presets.yaml")
	if _, err := os.Stat(shared); err == nil {
		return shared
	}
	return ""
}

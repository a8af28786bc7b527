package options

import "errors"

// Preset resolution errors.
//
// Design decision: package-level sentinel errors rather than error values
// created at the call site, so that callers can branch with errors.Is while
// the messages stay human-readable.
var (
	// ErrUnknownPreset is returned when a preset name matches neither a
	// built-in preset nor a definition from a preset file.
	ErrUnknownPreset = errors.New("unknown preset: see 'bundlestats report --help' for built-in preset names")

	// ErrPresetFileNotFound is returned when the preset file path does not
	// exist. Callers that looked the path up implicitly should fall back to
	// built-ins; callers given an explicit path should surface the error.
	ErrPresetFileNotFound = errors.New("preset file not found")
)

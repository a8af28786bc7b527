package config

import "errors"

// Configuration validation errors, returned by Config.Validate().
//
// Design decision: package-level sentinel errors rather than fresh error
// instances in Validate(), so callers can use errors.Is() while the
// messages stay human-readable.
var (
	// ErrNoRecord is returned when no build record file is specified.
	ErrNoRecord = errors.New("no build record specified: provide at least one record file")

	// ErrNoPreset is returned when the preset name is empty. Callers
	// that want the default should leave NewConfig's value in place.
	ErrNoPreset = errors.New("no preset specified")

	// ErrInvalidConcurrency is returned when the batch concurrency is
	// not positive. Zero concurrency would mean no reports at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a
	// time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)

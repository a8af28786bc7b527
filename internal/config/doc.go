// Package config holds the CLI configuration: report format selection,
// preset choice, concurrency, and the preset file search path.
//
// The configuration is populated from CLI flags and passed through the
// application explicitly rather than via global state. Option presets
// themselves live in the options package; this package only decides
// which preset file to consult.
package config

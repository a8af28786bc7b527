// Package main provides the entry point for the bundlestats CLI.
//
// bundlestats renders bundler build records as terminal, JSON, or
// Markdown reports: emitted assets, module graphs, bundle groups, and
// build problems.
//
// Usage:
//
//	bundlestats report stats.json
//	bundlestats report --preset verbose stats.json
//	bundlestats compare old.json new.json
//
// See --help for all available options.
package main

// main is the entry point for bundlestats.
func main() {
	Execute()
}

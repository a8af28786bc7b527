package catalog

import "github.com/bundlestats/bundlestats/internal/stats"

// Register installs the default field catalog into a registry. It is
// meant to run once during startup, before the registry serves requests.
func Register(r *stats.Registry) {
	registerNames(r)
	registerExtract(r)
	registerPrint(r)
}

// Default returns a fresh registry carrying the default catalog.
func Default() *stats.Registry {
	r := stats.NewRegistry()
	Register(r)
	return r
}

// Package build defines the read-only view of one build session that the
// report pipelines consume.
//
// Computing the underlying graphs (dependency resolution, bundle grouping,
// artifact emission) is the bundler's job, not this package's. The Reader
// interface exposes what a finished build already knows: the emitted
// artifacts, the work units and bundle groups with their relationships,
// and derived facts such as byte sizes, symbol sets, and timing.
//
// MemorySession is the in-process implementation backed by a Record, the
// serializable form of a finished build that the CLI loads from YAML or
// JSON files.
//
// Design decision: extraction never caches anything derived from a Reader.
// The build result may have changed between two report requests, so each
// request reads fresh.
package build

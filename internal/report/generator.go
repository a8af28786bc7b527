package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bundlestats/bundlestats/internal/build"
	"github.com/bundlestats/bundlestats/internal/options"
	"github.com/bundlestats/bundlestats/internal/stats"
)

// Generator runs the extraction stage over a build session and wraps
// the result in a Report.
//
// Design decision: the generator holds the registry and logger but no
// per-run state, so one Generator can be shared across a batch. Each
// Generate call builds a fresh factory bound to that call's options.
type Generator struct {
	registry *stats.Registry
	logger   *slog.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets a custom logger for generation.
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator creates a Generator using the given handler registry.
func NewGenerator(registry *stats.Registry, opts ...GeneratorOption) *Generator {
	g := &Generator{
		registry: registry,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// named is satisfied by sessions that carry a label.
type named interface {
	Name() string
}

// Generate extracts the report tree for one build session under the
// given option set. The context is checked before extraction starts;
// extraction itself is CPU-bound and runs to completion once begun.
func (g *Generator) Generate(ctx context.Context, session build.Reader, opts options.Options) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	g.logger.Debug("starting extraction")

	f := stats.NewFactory(g.registry, opts)
	nodes, err := f.Create("compilation", []any{session}, &stats.ExtractContext{
		Session: session,
		Logger:  g.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("generate report: %w", err)
	}
	if len(nodes) != 1 {
		return nil, fmt.Errorf("generate report: expected one report tree, got %d", len(nodes))
	}

	rep := &Report{Tree: nodes[0]}
	if n, ok := session.(named); ok {
		rep.Name = n.Name()
	}

	g.logger.Debug("extraction complete",
		"fields", nodes[0].Len(),
		"elapsed", time.Since(start),
	)

	return rep, nil
}

// GenerateFile loads a build record from disk and generates its report.
func (g *Generator) GenerateFile(ctx context.Context, path string, opts options.Options) (*Report, error) {
	g.logger.Debug("loading record", "path", path)

	rec, err := build.LoadRecord(path)
	if err != nil {
		return nil, fmt.Errorf("load record %s: %w", path, err)
	}

	rep, err := g.Generate(ctx, build.NewMemorySession(rec), opts)
	if err != nil {
		return nil, err
	}

	rep.RecordPath = path
	return rep, nil
}

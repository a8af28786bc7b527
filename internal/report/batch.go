package report

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bundlestats/bundlestats/internal/options"
)

// BatchResult is the outcome of reporting on one record file. Exactly
// one of Report and Err is set.
type BatchResult struct {
	// Index is the record's position in the original path list.
	Index int

	// Path is the record file.
	Path string

	// Report is the generated report, nil when generation failed.
	Report *Report

	// Err records why generation failed, nil on success.
	Err error
}

// Batch generates reports for multiple record files concurrently.
// It respects the configured concurrency limit and context cancellation.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each record gets its own goroutine, but only 'concurrency' goroutines
// run simultaneously.
//
// Results come back in input order, one per path, with per-record
// failures captured in the result rather than aborting siblings. The
// error return is non-nil only when the batch itself was cancelled.
type Batch struct {
	generator   *Generator
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithBatchLogger sets a custom logger for batch-level progress.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithConcurrency sets the maximum number of concurrent generations.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatch creates a Batch around the given generator.
func NewBatch(generator *Generator, opts ...BatchOption) *Batch {
	b := &Batch{
		generator:   generator,
		concurrency: 4,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Run generates one report per record path.
func (b *Batch) Run(ctx context.Context, paths []string, opts options.Options) ([]BatchResult, error) {
	b.logger.Debug("starting batch",
		"total_records", len(paths),
		"concurrency", b.concurrency,
	)

	start := time.Now()

	// Pre-allocated and index-addressed, so results keep input order.
	results := make([]BatchResult, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rep, err := b.generator.GenerateFile(ctx, path, opts)

			mu.Lock()
			results[i] = BatchResult{Index: i, Path: path, Report: rep, Err: err}
			mu.Unlock()

			if err != nil {
				b.logger.Warn("report generation failed",
					"path", path,
					"error", err,
				)
				// Recorded in the result; keep the other records going.
				return nil
			}

			return nil
		})
	}

	err := g.Wait()

	b.logger.Debug("batch complete",
		"total_records", len(paths),
		"elapsed", time.Since(start),
	)

	return results, err
}

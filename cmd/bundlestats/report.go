package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bundlestats/bundlestats/internal/catalog"
	"github.com/bundlestats/bundlestats/internal/config"
	"github.com/bundlestats/bundlestats/internal/log"
	"github.com/bundlestats/bundlestats/internal/options"
	"github.com/bundlestats/bundlestats/internal/report"
)

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [record-file...]",
		Short: "Render build records as readable reports",
		Long: `Report reads one or more build record files (YAML or JSON) and renders
them as terminal, JSON, or Markdown reports.

What appears in a report is controlled by the active preset:
- none         nothing (useful as a base for custom presets)
- errors-only  build errors only
- minimal      emitted assets and errors
- normal       assets, bundle groups, entrypoints, and problems (default)
- verbose      everything, including per-module graph detail

Custom presets may be defined in a .bundlestats.yaml file in the
working directory or in the XDG config directory.

Examples:
  # Report on a single record with the default preset
  bundlestats report stats.json

  # Full detail
  bundlestats report --preset verbose stats.json

  # Report on many records concurrently
  bundlestats report build-*.yaml

  # Machine-readable output
  bundlestats report --json stats.json

  # Markdown report written to a file
  bundlestats report --markdown -o report.md stats.json`,
		Args: cobra.ArbitraryArgs,
		RunE: runReportCmd,
	}

	// Preset selection flags
	cmd.Flags().StringP("preset", "p", config.DefaultPreset,
		"Option preset controlling report detail")
	cmd.Flags().String("preset-file", "",
		"Preset file path (default: .bundlestats.yaml in current directory)")

	// Report format flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-color", false,
		"Disable ANSI color in terminal output")

	// Batch flags
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Number of records reported on concurrently")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	// Build config from flags
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Set up structured logging
	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	opts, err := resolveOptions(cfg)
	if err != nil {
		return err
	}

	return runReport(ctx, cfg, opts, cmd.OutOrStdout(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Preset, err = cmd.Flags().GetString("preset")
	if err != nil {
		return nil, err
	}

	cfg.PresetFilePath, err = cmd.Flags().GetString("preset-file")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.NoColor, err = cmd.Flags().GetBool("no-color")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments are the record files
	cfg.RecordFiles = args

	return cfg, nil
}

// resolveOptions turns the configured preset name into an option set.
// If the user explicitly specified a preset file path, error if not
// found. If no path specified, silently fall back to built-in presets.
func resolveOptions(cfg *config.Config) (options.Options, error) {
	explicitPath := cfg.PresetFilePath != ""
	path := config.FindPresetFile(cfg.PresetFilePath)

	var pf *options.PresetFile
	if path != "" {
		var err error
		pf, err = options.LoadPresetFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load preset file %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("preset file not found: %s", cfg.PresetFilePath)
	}

	opts, err := pf.Resolve(cfg.Preset)
	if err != nil {
		return nil, fmt.Errorf("unknown preset %q: %w", cfg.Preset, err)
	}
	return opts, nil
}

// runReport generates and writes reports for the configured records.
func runReport(ctx context.Context, cfg *config.Config, opts options.Options, stdout io.Writer, logger *slog.Logger) error {
	generator := report.NewGenerator(catalog.Default(), report.WithLogger(logger))

	output, cleanup, err := openOutput(cfg, stdout)
	if err != nil {
		return err
	}
	defer cleanup()

	writer := selectWriter(cfg, output)

	// Multiple records run through the batch; a single record skips the
	// goroutine machinery entirely.
	if len(cfg.RecordFiles) > 1 {
		return runBatchReport(ctx, cfg, opts, generator, writer, logger)
	}

	rep, err := generator.GenerateFile(ctx, cfg.RecordFiles[0], opts)
	if err != nil {
		return err
	}
	if _, err := writer.Write(rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// runBatchReport reports on many records concurrently, writing results
// in input order once all records finish.
func runBatchReport(ctx context.Context, cfg *config.Config, opts options.Options, generator *report.Generator, writer report.Writer, logger *slog.Logger) error {
	batch := report.NewBatch(generator,
		report.WithConcurrency(cfg.Concurrency),
		report.WithBatchLogger(logger),
	)

	results, err := batch.Run(ctx, cfg.RecordFiles, opts)
	if err != nil {
		return err
	}

	var failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "Report error for %s: %v\n", res.Path, res.Err)
			continue
		}
		if _, err := writer.Write(res.Report); err != nil {
			return fmt.Errorf("write report for %s: %w", res.Path, err)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d records failed", failed, len(results))
	}
	return nil
}

// openOutput resolves the report destination: the configured file, or
// the command's stdout. The returned cleanup closes the file, if any.
func openOutput(cfg *config.Config, stdout io.Writer) (io.Writer, func(), error) {
	if cfg.ReportFile == "" {
		return stdout, func() {}, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil //nolint:errcheck // Best effort close
}

// selectWriter picks the writer for the requested format. Color applies
// only to terminal text output written to stdout.
func selectWriter(cfg *config.Config, output io.Writer) report.Writer {
	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output)
	default:
		colors := !cfg.NoColor && cfg.ReportFile == ""
		return report.NewTextWriter(output, catalog.Default(), report.WithColor(colors))
	}
}

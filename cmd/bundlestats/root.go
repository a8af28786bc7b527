// Package main provides the entry point for the bundlestats CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for bundlestats.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bundlestats",
		Short: "Render bundler build records as readable reports",
		Long: `bundlestats reads build record files written by a bundler and renders
them as terminal, JSON, or Markdown reports: emitted assets, module
graphs, bundle groups, and build problems.

What appears in a report is controlled by option presets; use
--preset verbose for everything or define your own in .bundlestats.yaml.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bundlestats/bundlestats/internal/config"
)

//go:embed templates/bundlestats.yaml
var presetTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new bundlestats preset file",
		Long: `Init creates a new .bundlestats.yaml preset file in the current directory.

The generated file includes:
- A starter preset suitable for CI
- Commented examples for custom presets
- Documentation for all available options

Examples:
  # Create .bundlestats.yaml in current directory
  bundlestats init

  # Create preset file at a specific path
  bundlestats init -o mypresets.yaml

  # Force overwrite existing file
  bundlestats init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultPresetFile,
		"Output file path for the preset file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing preset file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("preset file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := presetTemplate.ReadFile("templates/bundlestats.yaml")
	if err != nil {
		return fmt.Errorf("failed to read preset template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write preset file
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created preset file: %s\n", outputPath)
	fmt.Fprintln(cmd.OutOrStdout(), "\nEdit this file to define project-specific presets such as:")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Asset name filters for CI size tracking")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Per-child option sets for multi-target builds")
	fmt.Fprintln(cmd.OutOrStdout(), "  - Reduced views for noisy builds")

	return nil
}

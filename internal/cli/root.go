// Package cli provides the Cobra command structure for cedar.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cedartree/cedar/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root cedar command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "cedar",
		Short: "An incremental parser for structured text",
		Long: `cedar parses structured text into concrete syntax trees and keeps those
trees up to date across edits by re-parsing only the changed region,
reusing every untouched subtree by reference.

It ships precompiled tables for a few small languages (json, javascript,
arithmetic) and reports syntax errors as ERROR regions inside the tree
rather than failing the parse.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newBatchCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

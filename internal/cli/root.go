// Package cli wires the envelope engine's command-line surface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "envelope-engine",
	Short: "Load-combination envelope engine for frame analysis",
	Long: `envelope-engine drives a structural solver through ACI 318 load
combinations and folds the per-element end forces into a design envelope:
the governing maxima and minima of every force component across all
analysed combinations, with the combination that produced each extreme.

The solver is an external sidecar reached over HTTP; combinations run
strictly one at a time because every solve overwrites the shared model.`,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Package cli provides the Cobra-based command tree for smokecheck.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/giantswarm/smokecheck/internal/version"
)

// NewRootCmd creates the root cobra command for smokecheck.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "smokecheck",
		Short: "Liveness verification for packaged example web applications",
		Long: `smokecheck - liveness verification for packaged example web applications

Smokecheck launches each packaged example as a subprocess on an ephemeral
port, polls its root endpoint until it returns the expected body, and
guarantees the process is terminated before the next run starts. After a
batch it audits coverage: every example directory on disk must have been
verified, and no verification may reference a directory that does not exist.`,
		Version:       version.FullVersion(),
		SilenceErrors: true, // error printing happens in main.go
		SilenceUsage:  true,
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newRunCmd(),
		newTargetsCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command with the given output writers.
// This is the main entry point from main.go.
func Execute(stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giantswarm/smokecheck"
	"github.com/giantswarm/smokecheck/internal/core"
)

func newTargetsCmd() *cobra.Command {
	var rootDir string
	var descriptorFile string

	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List example targets discovered on disk",
		Long: `List the example target directories the coverage audit would expect.

A subdirectory of the root counts as a target when it contains the
descriptor file. Hidden directories and build caches are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, err := core.DiscoverTargets(rootDir, descriptorFile)
			if err != nil {
				return err
			}
			for _, name := range targets {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&rootDir, "root", smokecheck.DefaultRootDir, "directory scanned for example targets")
	cmd.Flags().StringVar(&descriptorFile, "descriptor", smokecheck.DefaultDescriptorFile, "file marking a subdirectory as a target")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giantswarm/smokecheck/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print smokecheck version",
		Long:  "Print the smokecheck version string.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "smokecheck %s\n", version.FullVersion())
		},
	}

	return cmd
}

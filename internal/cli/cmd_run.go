package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/giantswarm/smokecheck"
)

func newRunCmd() *cobra.Command {
	var configPath string
	var noAudit bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Verify all targets from a batch configuration",
		Long: `Verify every target listed in the batch configuration.

Each target's artifacts are launched one at a time; runs are serialized
within and across processes. Failures do not stop the batch: every
remaining run still executes, and the command reports how many failed.

After the batch a coverage audit compares the verified target names
against the example directories on disk, unless --no-audit is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()

			cfg, err := LoadBatchConfig(configPath)
			if err != nil {
				return err
			}

			// Cancel in-flight runs on SIGINT; cleanup still runs.
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, os.Interrupt)
				<-sigCh
				cancel()
			}()

			verifier, err := smokecheck.New(ctx, cfg.Options()...)
			if err != nil {
				return err
			}
			defer func() { _ = verifier.Close() }()

			total, failed := 0, 0
			for _, target := range cfg.Targets {
				for _, artifact := range target.Artifacts {
					total++
					if err := verifier.Verify(ctx, target.Name, artifact); err != nil {
						failed++
						_, _ = fmt.Fprintf(stdout, "FAIL %s %s\n  %v\n", target.Name, artifact, err)
						continue
					}
					_, _ = fmt.Fprintf(stdout, "PASS %s %s\n", target.Name, artifact)
				}
			}
			_, _ = fmt.Fprintf(stdout, "ran %d verifications, %d failed\n", total, failed)

			var batchErr error
			if failed > 0 {
				batchErr = fmt.Errorf("%d of %d verifications failed", failed, total)
			}

			if !noAudit {
				if auditErr := verifier.Audit(); auditErr != nil {
					batchErr = errors.Join(batchErr, fmt.Errorf("coverage audit: %w", auditErr))
				}
			}
			return batchErr
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "smokecheck.toml", "path to the TOML batch configuration")
	cmd.Flags().BoolVar(&noAudit, "no-audit", false, "skip the coverage audit after the batch")

	return cmd
}

package smokecheck

import (
	"context"
	"os"
	"path/filepath"

	"github.com/giantswarm/smokecheck/internal/core"
)

// Compile-time interface satisfaction check.
var _ Verifier = (*verifierWrapper)(nil)

// verifierWrapper wraps core.Runner to implement the Verifier interface.
//
// The core.Runner is stored as a named (unexported) field rather than
// embedded to prevent callers from using type assertions to access internal
// methods that are not part of the public Verifier interface.
type verifierWrapper struct {
	runner *core.Runner
}

// Verify wraps core.Runner.Verify.
func (w *verifierWrapper) Verify(ctx context.Context, target, artifact string) error {
	return w.runner.Verify(ctx, target, artifact)
}

// Audit wraps core.Runner.Audit.
func (w *verifierWrapper) Audit() error {
	return w.runner.Audit()
}

// Verified wraps core.Runner.Verified.
func (w *verifierWrapper) Verified() []string {
	return w.runner.Verified()
}

// Close wraps core.Runner.Close.
func (w *verifierWrapper) Close() error {
	return w.runner.Close()
}

// defaultConfig returns a config populated with all default values. Both New
// and test helpers use this to avoid duplicating the default field
// assignments.
func defaultConfig() config {
	return config{RunnerConfig: core.RunnerConfig{
		RootDir:          DefaultRootDir,
		Program:          DefaultProgram,
		Subcommand:       DefaultSubcommand,
		StartupFlagsEnv:  DefaultStartupFlagsEnv,
		PortEnvVar:       DefaultPortEnvVar,
		ExpectedBody:     DefaultExpectedBody,
		DescriptorFile:   DefaultDescriptorFile,
		MaxAttempts:      DefaultMaxAttempts,
		PollInterval:     DefaultPollInterval,
		RequestTimeout:   DefaultRequestTimeout,
		StopTimeout:      DefaultStopTimeout,
		PortReleaseDelay: DefaultPortReleaseDelay,
		DataDir:          filepath.Join(os.TempDir(), DefaultDataDirName),
	}}
}

// New creates a Verifier with the given options. It prepares the data
// directory and opens the results ledger, so it performs I/O; callers should
// create one Verifier per batch of runs and Close it when done.
//
// Unless WithLedgerPath or WithoutLedger is applied, run outcomes are
// recorded in DefaultLedgerFileName inside the data directory.
//
// Panics if any option receives an invalid value. See individual With*
// functions for constraints.
//
//nolint:ireturn // Returns Verifier interface by design for testability (mockable).
func New(ctx context.Context, opts ...Option) (Verifier, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.ledgerSet {
		cfg.LedgerPath = filepath.Join(cfg.DataDir, DefaultLedgerFileName)
	}

	runner, err := core.NewRunner(ctx, cfg.toCoreConfig())
	if err != nil {
		return nil, err
	}
	return &verifierWrapper{runner: runner}, nil
}

package core

import (
	"errors"
	"time"
)

// RunnerConfig holds the configuration for a verification Runner.
// The public package wraps this type; defaults live there.
type RunnerConfig struct {
	// RootDir is the directory containing one subdirectory per target.
	RootDir string

	// Program is the launch program invoked for every run (e.g. "bazel").
	Program string

	// Subcommand is the fixed subcommand placed after any startup flags
	// (e.g. "run").
	Subcommand string

	// StartupFlagsEnv names an environment variable whose value, if set, is
	// shell-tokenized and inserted between Program and Subcommand. Empty
	// disables startup flag injection.
	StartupFlagsEnv string

	// PortEnvVar names the environment variable carrying the chosen port to
	// the launched process (e.g. "FLASK_RUN_PORT").
	PortEnvVar string

	// ExpectedBody is the exact literal the example's root endpoint must
	// return.
	ExpectedBody string

	// DescriptorFile marks a subdirectory of RootDir as a valid target
	// (e.g. "BUILD.bazel"). Used by the coverage audit.
	DescriptorFile string

	// MaxAttempts is the number of readiness probe attempts per run.
	MaxAttempts int

	// PollInterval is the fixed sleep between probe attempts.
	PollInterval time.Duration

	// RequestTimeout is the per-attempt HTTP timeout.
	RequestTimeout time.Duration

	// StopTimeout bounds the SIGTERM-grace-SIGKILL stop sequence during
	// cleanup.
	StopTimeout time.Duration

	// PortReleaseDelay is the pause after cleanup before the run lock is
	// released, giving the OS time to free the port for the next run.
	PortReleaseDelay time.Duration

	// DataDir holds process log files, the cross-process run lock, and the
	// default results ledger.
	DataDir string

	// LedgerPath is the SQLite results ledger location. Empty disables the
	// ledger.
	LedgerPath string
}

// validate checks that all required fields are set and returns an error
// describing the first missing or invalid field.
func (c RunnerConfig) validate() error {
	if c.RootDir == "" {
		return errors.New("root directory must not be empty")
	}
	if c.Program == "" {
		return errors.New("launch program must not be empty")
	}
	if c.Subcommand == "" {
		return errors.New("launch subcommand must not be empty")
	}
	if c.PortEnvVar == "" {
		return errors.New("port environment variable name must not be empty")
	}
	if c.DescriptorFile == "" {
		return errors.New("descriptor file name must not be empty")
	}
	if c.MaxAttempts <= 0 {
		return errors.New("max attempts must be positive")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.StopTimeout <= 0 {
		return errors.New("stop timeout must be positive")
	}
	if c.PortReleaseDelay < 0 {
		return errors.New("port release delay must not be negative")
	}
	if c.DataDir == "" {
		return errors.New("data directory must not be empty")
	}
	return nil
}

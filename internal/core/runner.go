package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/shlex"

	"github.com/giantswarm/smokecheck/internal/fileutil"
	"github.com/giantswarm/smokecheck/internal/ledger"
	"github.com/giantswarm/smokecheck/internal/netutil"
	"github.com/giantswarm/smokecheck/internal/probe"
	"github.com/giantswarm/smokecheck/internal/process"
	"github.com/giantswarm/smokecheck/internal/sentinel"
)

// ErrTargetNotFound is returned by Verify when the target directory does not
// exist under the configured root. No process is launched in that case.
const ErrTargetNotFound = sentinel.Error("target directory not found")

// ErrExitedPrematurely is returned by Verify when the launched process exits
// before its endpoint produced a response. The wrapping error carries the
// exit code.
const ErrExitedPrematurely = sentinel.Error("process exited prematurely")

// runLockFileName is the cross-process lock file kept in the data directory.
const runLockFileName = "run.lock"

// processLogDirName is the subdirectory of the data directory holding
// per-run stdout/stderr log files.
const processLogDirName = "logs"

// Runner executes verification runs one at a time and records which targets
// have been verified. It is the explicit run context shared by a batch: the
// batch driver creates one Runner, calls Verify per target and artifact, and
// finishes with Audit.
type Runner struct {
	cfg      RunnerConfig
	log      *slog.Logger
	logDir   string
	lockPath string

	// runSeq distinguishes log file names across runs of the same target.
	runSeq atomic.Uint64

	// mu serializes verification runs end to end, including cleanup and the
	// post-cleanup port release pause, and guards verified.
	mu       sync.Mutex
	verified map[string]struct{}

	// results is nil when the ledger is disabled.
	results *ledger.Ledger
}

// NewRunner validates the configuration, prepares the data directory, and
// opens the results ledger when configured.
func NewRunner(ctx context.Context, cfg RunnerConfig) (*Runner, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid runner config: %w", err)
	}

	logDir := filepath.Join(cfg.DataDir, processLogDirName)
	if err := fileutil.EnsureDir(logDir); err != nil {
		return nil, fmt.Errorf("prepare data directory: %w", err)
	}

	r := &Runner{
		cfg:      cfg,
		log:      Logger(),
		logDir:   logDir,
		lockPath: filepath.Join(cfg.DataDir, runLockFileName),
		verified: make(map[string]struct{}),
	}

	if cfg.LedgerPath != "" {
		led, err := ledger.Open(ctx, cfg.LedgerPath, r.log)
		if err != nil {
			return nil, fmt.Errorf("open results ledger: %w", err)
		}
		r.results = led
	}

	return r, nil
}

// Verify launches the target's artifact, waits for its root endpoint to
// return the expected body, and guarantees the process is gone before
// returning. The run holds both the in-process mutex and the cross-process
// file lock for its entire duration, including cleanup and the port release
// pause, so the next run can safely reuse the loopback port space.
func (r *Runner) Verify(ctx context.Context, target, artifact string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fl, err := acquireRunLock(ctx, r.lockPath)
	if err != nil {
		return err
	}
	defer releaseRunLock(r.log, fl)

	started := time.Now()
	port, attempts, verifyErr := r.runVerification(ctx, target, artifact)

	if r.results != nil {
		rec := ledger.Record{
			Target:    target,
			Artifact:  artifact,
			Port:      port,
			Outcome:   ledger.OutcomePass,
			Attempts:  attempts,
			Duration:  time.Since(started),
			StartedAt: started,
		}
		if verifyErr != nil {
			rec.Outcome = ledger.OutcomeFail
			rec.Detail = verifyErr.Error()
		}
		// Record the outcome even when the run's context has been canceled;
		// a canceled run is still a run.
		if recErr := r.results.Append(context.WithoutCancel(ctx), rec); recErr != nil {
			verifyErr = errors.Join(verifyErr, recErr)
		}
	}

	return verifyErr
}

// runVerification performs one verification while the locks are held. It
// returns the allocated port and the number of probe attempts made, for the
// ledger.
func (r *Runner) runVerification(ctx context.Context, target, artifact string) (port, attempts int, err error) {
	// Register before the existence check so the audit can flag runs that
	// reference targets missing from disk.
	r.verified[target] = struct{}{}

	dir := filepath.Join(r.cfg.RootDir, target)
	info, statErr := os.Stat(dir)
	if statErr != nil || !info.IsDir() {
		return 0, 0, fmt.Errorf("target %q at %s: %w", target, dir, ErrTargetNotFound)
	}

	port, err = netutil.EphemeralPort()
	if err != nil {
		return 0, 0, fmt.Errorf("allocate port for %q: %w", target, err)
	}

	args, err := r.launchArgs(artifact)
	if err != nil {
		return port, 0, err
	}

	cmd := exec.CommandContext(ctx, r.cfg.Program, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), fmt.Sprintf("%s=%d", r.cfg.PortEnvVar, port))

	runName := fmt.Sprintf("%s-%d", target, r.runSeq.Add(1))
	handle := process.NewHandle(runName, r.log, r.cfg.StopTimeout)

	r.log.Info("launching example process",
		"target", target, "artifact", artifact, "port", port,
		"command", strings.Join(cmd.Args, " "))

	if startErr := handle.Start(cmd, r.logDir); startErr != nil {
		return port, 0, fmt.Errorf("launch %q: %w", target, startErr)
	}

	defer func() {
		// Cleanup runs on every exit path. A stop failure propagates: a
		// leaked process would corrupt subsequent runs.
		if stopErr := handle.Stop(r.cfg.StopTimeout); stopErr != nil {
			err = errors.Join(err, fmt.Errorf("stop %q: %w", target, stopErr))
		}
		handle.Close()
		// Give the OS time to release the port before the next run begins.
		time.Sleep(r.cfg.PortReleaseDelay)
	}()

	// Fail fast if the process died right after launch; no HTTP attempt is
	// made in that case.
	select {
	case <-handle.Exited():
		return port, 0, fmt.Errorf("target %q: %w with exit code %d",
			target, ErrExitedPrematurely, handle.ExitCode())
	default:
	}

	stdoutPath, stderrPath := handle.LogPaths()

	attempts, probeErr := probe.WaitReady(ctx, probe.Config{
		Port:           port,
		ExpectedBody:   r.cfg.ExpectedBody,
		MaxAttempts:    r.cfg.MaxAttempts,
		Interval:       r.cfg.PollInterval,
		RequestTimeout: r.cfg.RequestTimeout,
		Name:           target,
		Logger:         r.log,
		ProcessExited:  handle.Exited(),
	})
	if probeErr != nil {
		if errors.Is(probeErr, probe.ErrProcessExited) {
			return port, attempts, fmt.Errorf("target %q: %w with exit code %d",
				target, ErrExitedPrematurely, handle.ExitCode())
		}
		return port, attempts, fmt.Errorf("target %q: %w (process logs: %s, %s)",
			target, probeErr, stdoutPath, stderrPath)
	}

	r.log.Info("verification succeeded",
		"target", target, "artifact", artifact, "port", port, "attempts", attempts)
	return port, attempts, nil
}

// launchArgs builds the argument list: startup flags from the configured
// environment variable (shell-tokenized), then the fixed subcommand, then
// the artifact reference.
func (r *Runner) launchArgs(artifact string) ([]string, error) {
	var args []string
	if r.cfg.StartupFlagsEnv != "" {
		if raw := os.Getenv(r.cfg.StartupFlagsEnv); raw != "" {
			flags, err := shlex.Split(raw)
			if err != nil {
				return nil, fmt.Errorf("parse startup flags from %s: %w", r.cfg.StartupFlagsEnv, err)
			}
			args = append(args, flags...)
		}
	}
	return append(args, r.cfg.Subcommand, artifact), nil
}

// Verified returns the names of targets that have been verified so far.
// The order is unspecified.
func (r *Runner) Verified() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.verified))
	for name := range r.verified {
		names = append(names, name)
	}
	return names
}

// Close releases resources held by the runner (currently the results
// ledger). It does not affect in-flight runs; callers must not call Close
// concurrently with Verify.
func (r *Runner) Close() error {
	if r.results == nil {
		return nil
	}
	return r.results.Close()
}

package process

import (
	"fmt"
	"log/slog"
	"os/exec"
	"sync/atomic"
	"time"

	"github.com/giantswarm/smokecheck/internal/sentinel"
)

// ErrAlreadyStarted is returned when Start is called on a handle that is
// already running. Callers must Stop the process before starting it again.
const ErrAlreadyStarted = sentinel.Error("process already started")

// ErrNilCmd is returned when Start is called with a nil *exec.Cmd.
const ErrNilCmd = sentinel.Error("cmd must not be nil")

// ErrEmptyCmdPath is returned when Start is called with an empty cmd.Path.
const ErrEmptyCmdPath = sentinel.Error("cmd.Path must not be empty")

// ErrEmptyLogDir is returned when Start is called with an empty log directory.
const ErrEmptyLogDir = sentinel.Error("log directory must not be empty")

// Handle owns one launched example process for its whole lifecycle.
//
// Handle is not safe for concurrent use. Callers must serialize access to all
// methods; in practice the core runner's verification mutex does this.
type Handle struct {
	cmd      *exec.Cmd
	waitDone <-chan error    // receives cmd.Wait result; consumed once by Stop
	exited   <-chan struct{} // closed when the process exits; readable by many goroutines
	logFiles LogFiles
	name     string // run name for logging and log file naming
	log      *slog.Logger

	// exitCode holds the process exit code, written by the wait goroutine
	// before exited is closed. Reads are only meaningful after observing the
	// exited channel close.
	exitCode atomic.Int64

	stopTimeout time.Duration // timeout for auto-stop in Close; zero uses DefaultStopTimeout
}

// NewHandle creates a Handle with the given run name, logger, and stop
// timeout. If stopTimeout is zero, DefaultStopTimeout is used by Close's
// auto-stop. If logger is nil, slog.Default() is used. Panics if name is
// empty, since an empty name produces useless error messages and log file
// names throughout the lifecycle.
func NewHandle(name string, logger *slog.Logger, stopTimeout time.Duration) Handle {
	if name == "" {
		panic("smokecheck: process run name must not be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return Handle{name: name, log: logger, stopTimeout: stopTimeout}
}

// Start creates log files under logDir, wires stdout/stderr, and starts the
// command. The cmd must already have Path, Args, Dir, and Env set; Start only
// touches Stdout and Stderr.
//
// A single goroutine calling cmd.Wait is started here so that exactly one
// Wait call is made per process. Its result channel is consumed by Stop; the
// exited broadcast channel is closed after the exit code has been recorded.
//
// Returns ErrAlreadyStarted if the process is already running.
func (h *Handle) Start(cmd *exec.Cmd, logDir string) error {
	if cmd == nil {
		return ErrNilCmd
	}
	if cmd.Path == "" {
		return ErrEmptyCmdPath
	}
	if logDir == "" {
		return ErrEmptyLogDir
	}
	if h.cmd != nil {
		return ErrAlreadyStarted
	}

	configureSysProcAttr(cmd)

	logFiles, err := StartCmd(cmd, logDir, h.name)
	if err != nil {
		return fmt.Errorf("start command: %w", err)
	}
	h.cmd = cmd
	h.logFiles = logFiles
	h.exitCode.Store(-1)

	// Two channels: done (buffered 1) carries the Wait error to Stop;
	// exited (closed) is a broadcast readable by the polling loop to detect
	// early process death. The exit code is stored before close(exited), so
	// any reader that observed the close sees the final value.
	done := make(chan error, 1)
	exited := make(chan struct{})
	go func() {
		waitErr := cmd.Wait()
		if state := cmd.ProcessState; state != nil {
			h.exitCode.Store(int64(state.ExitCode()))
		}
		done <- waitErr
		close(exited)
	}()
	h.waitDone = done
	h.exited = exited

	return nil
}

// Stop terminates the process with the given timeout using the
// SIGTERM-grace-SIGKILL sequence and waits for final exit. After Stop
// returns, IsStarted reports false regardless of whether the stop succeeded.
// Safe to call when the process was never started or Stop was already
// called; returns nil immediately in those cases.
func (h *Handle) Stop(timeout time.Duration) error {
	if h.cmd == nil || h.cmd.Process == nil {
		h.cmd = nil
		h.waitDone = nil
		h.exited = nil
		return nil
	}
	pid := h.cmd.Process.Pid
	err := stopWithDone(h.cmd, h.waitDone, timeout, h.name)
	if err != nil {
		h.log.Warn("process stop failed; process may be orphaned",
			"run", h.name, "pid", pid, "error", err)
	}
	h.cmd = nil
	h.waitDone = nil
	h.exited = nil
	return err
}

// Close closes log file handles. If the process is still running (Stop was
// not called first), Close logs a warning and stops it automatically to
// prevent a leaked process from corrupting subsequent runs. Callers should
// always call Stop before Close; the auto-stop is a safety net.
func (h *Handle) Close() {
	if h.cmd != nil {
		h.log.Warn("process.Close called without Stop; stopping automatically",
			"run", h.name)
		timeout := h.stopTimeout
		if timeout <= 0 {
			timeout = DefaultStopTimeout
		}
		if err := h.Stop(timeout); err != nil {
			h.log.Warn("auto-stop during Close failed",
				"run", h.name, "error", err)
		}
	}
	h.logFiles.Close()
}

// Exited returns a channel that is closed when the process exits. It is safe
// to select on from any number of goroutines. Returns nil if the process has
// not been started or has already been stopped.
func (h *Handle) Exited() <-chan struct{} {
	return h.exited
}

// ExitCode returns the process exit code. The value is only meaningful after
// the channel returned by Exited has been observed closed; before that it
// returns -1.
func (h *Handle) ExitCode() int {
	return int(h.exitCode.Load())
}

// IsStarted reports whether the process has been started and not yet stopped.
func (h *Handle) IsStarted() bool {
	return h.cmd != nil
}

// Logger returns the logger used by this handle.
func (h *Handle) Logger() *slog.Logger {
	return h.log
}

// LogPaths returns the stdout and stderr log file paths for the current run.
func (h *Handle) LogPaths() (stdout, stderr string) {
	return h.logFiles.StdoutPath(), h.logFiles.StderrPath()
}

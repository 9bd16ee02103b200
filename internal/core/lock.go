package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
)

// runLockRetryInterval is the interval between consecutive attempts to
// acquire the cross-process run lock. 50ms balances responsiveness (low wait
// after the holder releases) against CPU overhead from busy-polling.
const runLockRetryInterval = 50 * time.Millisecond

// acquireRunLock acquires an exclusive lock on the given file path. The lock
// serializes verification runs across harness processes sharing a machine,
// since all runs bind ports on the same loopback interface. Acquisition is
// retried at runLockRetryInterval until successful or the context is done.
func acquireRunLock(ctx context.Context, lockPath string) (*flock.Flock, error) {
	fl := flock.New(lockPath)

	locked, err := fl.TryLockContext(ctx, runLockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquiring run lock %s: %w", lockPath, err)
	}

	if !locked {
		// TryLockContext should return an error when it fails; handle the
		// case where it returns (false, nil) unexpectedly.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquiring run lock %s: %w", lockPath, ctx.Err())
		}
		return nil, fmt.Errorf("acquiring run lock %s: lock not acquired", lockPath)
	}

	return fl, nil
}

// releaseRunLock releases the file lock and closes the file descriptor. The
// lock file is intentionally left on disk to avoid a race where removing it
// could invalidate a lock concurrently acquired by another process. Errors
// are logged at debug level; this is best-effort cleanup.
func releaseRunLock(logger *slog.Logger, fl *flock.Flock) {
	if fl != nil {
		if err := fl.Close(); err != nil {
			logger.Debug("failed to release run lock", "path", fl.Path(), "err", err)
		}
	}
}

package smokecheck

import (
	"github.com/giantswarm/smokecheck/internal/core"
	"github.com/giantswarm/smokecheck/internal/probe"
)

// Sentinel errors for error inspection with errors.Is.
// These are immutable constants safe for use in wrapped error chain comparison.
const (
	// ErrTargetNotFound is returned by Verify when the target directory does
	// not exist under the root. No process is launched in that case, but the
	// target name is still registered for the audit.
	ErrTargetNotFound = core.ErrTargetNotFound

	// ErrExitedPrematurely is returned by Verify when the launched process
	// exits before its root endpoint produced a response. The error message
	// carries the exit code.
	ErrExitedPrematurely = core.ErrExitedPrematurely

	// ErrContentMismatch is returned by Verify when the first completed
	// response body differs from the expected one. The first response is
	// final; no further attempts are made.
	ErrContentMismatch = probe.ErrContentMismatch

	// ErrUnreachable is returned by Verify when every connection attempt
	// failed. The error message carries the full attempt log.
	ErrUnreachable = probe.ErrUnreachable

	// ErrUntestedTargets is returned by Audit when example directories on
	// disk were never verified.
	ErrUntestedTargets = core.ErrUntestedTargets

	// ErrPhantomTargets is returned by Audit when verifications ran against
	// target names that do not exist on disk.
	ErrPhantomTargets = core.ErrPhantomTargets
)

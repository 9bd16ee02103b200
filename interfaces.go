package smokecheck

import "context"

// Verifier runs liveness checks against packaged example applications and
// tracks which example directories have been covered.
//
// Callers follow this lifecycle ordering:
//
//	New → Verify (repeatable) → Audit → Close
//
// Verify is safe for concurrent use; calls are serialized internally. Audit
// may be called at any point but is only meaningful after all planned runs
// completed. Close must not be called concurrently with Verify.
type Verifier interface {
	// Verify launches the artifact packaged in the named example directory,
	// waits for GET / on the allocated port to return the expected body, and
	// terminates the process before returning. The target name is registered
	// for the coverage audit even when the run fails.
	//
	// Returns ErrTargetNotFound when the directory does not exist,
	// ErrExitedPrematurely when the process dies before responding,
	// ErrContentMismatch when the first response body differs from the
	// expected one, and ErrUnreachable when the attempt budget is exhausted
	// without any completed response.
	Verify(ctx context.Context, target, artifact string) error

	// Audit compares verified target names against the example directories
	// discovered on disk. Returns nil only when they match exactly; otherwise
	// an error matching ErrUntestedTargets, ErrPhantomTargets, or both
	// (joined).
	Audit() error

	// Verified returns the names of targets registered so far, in
	// unspecified order.
	Verified() []string

	// Close releases resources held by the verifier, including the results
	// ledger when one is configured.
	Close() error
}

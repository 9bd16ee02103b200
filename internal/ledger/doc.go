// Package ledger persists verification outcomes to a SQLite database.
//
// One row is written per verification run: target, artifact, port, outcome,
// attempt count, failure detail, and timing. The ledger exists for post-hoc
// inspection of CI batches; the in-memory registry used by the coverage audit
// does not depend on it.
package ledger

// Package core implements the verification runner.
//
// Runner launches one example process per verification run on an ephemeral
// port, probes its root endpoint, and tears the process down on every exit
// path. Runs are serialized by a mutex (and a cross-process file lock), so
// the loopback port space is exclusively owned for a run's duration. The
// runner also keeps the registry of verified targets that the coverage audit
// compares against the target directories discovered on disk.
package core

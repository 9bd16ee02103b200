// Package process manages the lifecycle of launched example processes.
//
// Handle owns a started command for its entire lifetime: it runs the single
// cmd.Wait goroutine, exposes exit detection through a broadcast channel,
// redirects stdout/stderr into per-run log files, and implements the
// SIGTERM-then-SIGKILL stop sequence that guarantees the process is gone on
// every exit path of a verification run.
package process

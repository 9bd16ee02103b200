// Package probe implements the HTTP readiness check for launched example
// processes.
//
// WaitReady issues plain GET requests against the example's root endpoint at
// a fixed interval, up to a bounded number of attempts. The first completed
// HTTP response is final: its body either matches the expected literal or the
// probe fails with a content mismatch. Connection-level errors are collected
// into an attempt log that is attached to the failure when every attempt has
// been exhausted.
package probe

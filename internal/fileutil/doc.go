// Package fileutil provides small file system helpers used when preparing
// the harness data directory and per-run process log files.
package fileutil

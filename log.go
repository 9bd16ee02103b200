package smokecheck

import (
	"log/slog"

	"github.com/giantswarm/smokecheck/internal/core"
)

// SetLogger replaces the package-level logger used by smokecheck.
// This allows applications to integrate smokecheck logging with their own
// logging infrastructure. The provided logger should already have any
// desired attributes; smokecheck will not add additional attributes.
//
// If l is nil, the logger resets to the default: slog.Default() with
// "component" attribute, re-derived on the next internal logger use and then
// cached. Call SetLogger(nil) after slog.SetDefault() to pick up changes.
//
// SetLogger is safe to call concurrently with other smokecheck operations,
// but a Verifier captures the logger at construction time; call SetLogger
// before New.
//
// Example:
//
//	smokecheck.SetLogger(myLogger.With("component", "smokecheck"))
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}

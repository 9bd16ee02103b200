package smokecheck

import "github.com/giantswarm/smokecheck/internal/core"

// config holds configuration for a Verifier. This unexported type wraps
// core.RunnerConfig via embedding, keeping internal/core types out of the
// public API signature while avoiding field-by-field duplication.
type config struct {
	core.RunnerConfig

	// ledgerSet records that WithLedgerPath or WithoutLedger was applied, so
	// New knows whether to derive the default ledger path from the final
	// data directory.
	ledgerSet bool
}

// toCoreConfig returns the embedded core.RunnerConfig.
func (c config) toCoreConfig() core.RunnerConfig {
	return c.RunnerConfig
}

package smokecheck

import "time"

// ConfigSnapshot holds a copy of config fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures actually mutate the config without accessing internals.
type ConfigSnapshot struct {
	RootDir          string
	Program          string
	Subcommand       string
	StartupFlagsEnv  string
	PortEnvVar       string
	ExpectedBody     string
	DescriptorFile   string
	MaxAttempts      int
	PollInterval     time.Duration
	RequestTimeout   time.Duration
	StopTimeout      time.Duration
	PortReleaseDelay time.Duration
	DataDir          string
	LedgerPath       string
	LedgerSet        bool
}

// ApplyOptionsForTesting creates a default config, applies the given options,
// and returns a ConfigSnapshot of the result. This tests the option closures
// directly without constructing a Verifier.
func ApplyOptionsForTesting(opts ...Option) ConfigSnapshot {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		RootDir:          cfg.RootDir,
		Program:          cfg.Program,
		Subcommand:       cfg.Subcommand,
		StartupFlagsEnv:  cfg.StartupFlagsEnv,
		PortEnvVar:       cfg.PortEnvVar,
		ExpectedBody:     cfg.ExpectedBody,
		DescriptorFile:   cfg.DescriptorFile,
		MaxAttempts:      cfg.MaxAttempts,
		PollInterval:     cfg.PollInterval,
		RequestTimeout:   cfg.RequestTimeout,
		StopTimeout:      cfg.StopTimeout,
		PortReleaseDelay: cfg.PortReleaseDelay,
		DataDir:          cfg.DataDir,
		LedgerPath:       cfg.LedgerPath,
		LedgerSet:        cfg.ledgerSet,
	}
}

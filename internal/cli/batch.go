package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/giantswarm/smokecheck"
)

// duration wraps time.Duration so TOML values like "5s" decode directly.
type duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// TargetConfig is one example target and the packaged artifacts to verify
// inside it.
type TargetConfig struct {
	Name      string   `toml:"name"`
	Artifacts []string `toml:"artifacts"`
}

// BatchConfig describes a batch of verification runs. Zero-valued fields fall
// back to the library defaults; only targets is required.
type BatchConfig struct {
	Root             string    `toml:"root"`
	Program          string    `toml:"program"`
	Subcommand       string    `toml:"subcommand"`
	StartupFlagsEnv  string    `toml:"startup_flags_env"`
	PortEnvVar       string    `toml:"port_env_var"`
	ExpectedBody     string    `toml:"expected_body"`
	DescriptorFile   string    `toml:"descriptor_file"`
	MaxAttempts      int       `toml:"max_attempts"`
	PollInterval     duration  `toml:"poll_interval"`
	RequestTimeout   duration  `toml:"request_timeout"`
	StopTimeout      duration  `toml:"stop_timeout"`
	PortReleaseDelay *duration `toml:"port_release_delay"`
	DataDir          string    `toml:"data_dir"`
	LedgerPath       string    `toml:"ledger_path"`
	NoLedger         bool      `toml:"no_ledger"`

	Targets []TargetConfig `toml:"targets"`
}

// LoadBatchConfig reads and validates a TOML batch configuration.
func LoadBatchConfig(path string) (BatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return BatchConfig{}, fmt.Errorf("batch config load failed (%s): %w", path, err)
	}

	var cfg BatchConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return BatchConfig{}, fmt.Errorf("batch config parse failed (%s): %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return BatchConfig{}, fmt.Errorf("batch config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func (c BatchConfig) validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("at least one [[targets]] entry is required")
	}
	for i, target := range c.Targets {
		if target.Name == "" {
			return fmt.Errorf("targets[%d] missing name", i)
		}
		if len(target.Artifacts) == 0 {
			return fmt.Errorf("target %q lists no artifacts", target.Name)
		}
	}
	if c.NoLedger && c.LedgerPath != "" {
		return fmt.Errorf("no_ledger and ledger_path are mutually exclusive")
	}
	return nil
}

// Options translates the set fields into verifier options, leaving unset
// fields to the library defaults.
func (c BatchConfig) Options() []smokecheck.Option {
	var opts []smokecheck.Option
	if c.Root != "" {
		opts = append(opts, smokecheck.WithRootDir(c.Root))
	}
	if c.Program != "" {
		opts = append(opts, smokecheck.WithProgram(c.Program))
	}
	if c.Subcommand != "" {
		opts = append(opts, smokecheck.WithSubcommand(c.Subcommand))
	}
	if c.StartupFlagsEnv != "" {
		opts = append(opts, smokecheck.WithStartupFlagsEnv(c.StartupFlagsEnv))
	}
	if c.PortEnvVar != "" {
		opts = append(opts, smokecheck.WithPortEnvVar(c.PortEnvVar))
	}
	if c.ExpectedBody != "" {
		opts = append(opts, smokecheck.WithExpectedBody(c.ExpectedBody))
	}
	if c.DescriptorFile != "" {
		opts = append(opts, smokecheck.WithDescriptorFile(c.DescriptorFile))
	}
	if c.MaxAttempts != 0 {
		opts = append(opts, smokecheck.WithMaxAttempts(c.MaxAttempts))
	}
	if c.PollInterval != 0 {
		opts = append(opts, smokecheck.WithPollInterval(time.Duration(c.PollInterval)))
	}
	if c.RequestTimeout != 0 {
		opts = append(opts, smokecheck.WithRequestTimeout(time.Duration(c.RequestTimeout)))
	}
	if c.StopTimeout != 0 {
		opts = append(opts, smokecheck.WithStopTimeout(time.Duration(c.StopTimeout)))
	}
	if c.PortReleaseDelay != nil {
		opts = append(opts, smokecheck.WithPortReleaseDelay(time.Duration(*c.PortReleaseDelay)))
	}
	if c.DataDir != "" {
		opts = append(opts, smokecheck.WithDataDir(c.DataDir))
	}
	if c.LedgerPath != "" {
		opts = append(opts, smokecheck.WithLedgerPath(c.LedgerPath))
	}
	if c.NoLedger {
		opts = append(opts, smokecheck.WithoutLedger())
	}
	return opts
}

package core

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns a RunnerConfig that passes validation.
func validConfig(t *testing.T) RunnerConfig {
	t.Helper()

	return RunnerConfig{
		RootDir:          t.TempDir(),
		Program:          "bazel",
		Subcommand:       "run",
		StartupFlagsEnv:  "BAZEL_STARTUP_FLAGS",
		PortEnvVar:       "FLASK_RUN_PORT",
		ExpectedBody:     "hello world!",
		DescriptorFile:   "BUILD.bazel",
		MaxAttempts:      30,
		PollInterval:     5 * time.Second,
		RequestTimeout:   5 * time.Second,
		StopTimeout:      10 * time.Second,
		PortReleaseDelay: time.Second,
		DataDir:          t.TempDir(),
	}
}

func TestRunnerConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate  func(*RunnerConfig)
		wantErr string // empty means valid
	}{
		"valid":                  {mutate: func(*RunnerConfig) {}},
		"empty startup flags ok": {mutate: func(c *RunnerConfig) { c.StartupFlagsEnv = "" }},
		"empty ledger path ok":   {mutate: func(c *RunnerConfig) { c.LedgerPath = "" }},
		"zero release delay ok":  {mutate: func(c *RunnerConfig) { c.PortReleaseDelay = 0 }},
		"missing root":           {mutate: func(c *RunnerConfig) { c.RootDir = "" }, wantErr: "root directory"},
		"missing program":        {mutate: func(c *RunnerConfig) { c.Program = "" }, wantErr: "launch program"},
		"missing subcommand":     {mutate: func(c *RunnerConfig) { c.Subcommand = "" }, wantErr: "subcommand"},
		"missing port env var":   {mutate: func(c *RunnerConfig) { c.PortEnvVar = "" }, wantErr: "port environment variable"},
		"missing descriptor":     {mutate: func(c *RunnerConfig) { c.DescriptorFile = "" }, wantErr: "descriptor file"},
		"zero attempts":          {mutate: func(c *RunnerConfig) { c.MaxAttempts = 0 }, wantErr: "max attempts"},
		"zero poll interval":     {mutate: func(c *RunnerConfig) { c.PollInterval = 0 }, wantErr: "poll interval"},
		"zero request timeout":   {mutate: func(c *RunnerConfig) { c.RequestTimeout = 0 }, wantErr: "request timeout"},
		"zero stop timeout":      {mutate: func(c *RunnerConfig) { c.StopTimeout = 0 }, wantErr: "stop timeout"},
		"negative release delay": {mutate: func(c *RunnerConfig) { c.PortReleaseDelay = -1 }, wantErr: "port release delay"},
		"missing data dir":       {mutate: func(c *RunnerConfig) { c.DataDir = "" }, wantErr: "data directory"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig(t)
			tc.mutate(&cfg)

			err := cfg.validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("validate() = nil, want error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("validate() = %v, want error containing %q", err, tc.wantErr)
			}
		})
	}
}

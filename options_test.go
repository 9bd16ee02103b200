package smokecheck_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/giantswarm/smokecheck"
)

// panicTestCase defines a test case for option validation panic tests.
type panicTestCase struct {
	name     string
	panics   bool
	panicMsg string
	fn       func()
}

// requirePanics calls fn and verifies it panics (or not) with the expected message.
func requirePanics(t *testing.T, shouldPanic bool, wantMsg string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if shouldPanic && r == nil {
			t.Fatal("expected panic but didn't get one")
		}
		if !shouldPanic && r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
		if shouldPanic && r != nil {
			msg := fmt.Sprint(r)
			if msg != wantMsg {
				t.Fatalf("expected panic message %q, got %q", wantMsg, msg)
			}
		}
	}()
	fn()
}

// runPanicTests runs a slice of panic test cases using requirePanics.
func runPanicTests(t *testing.T, tests []panicTestCase) {
	t.Helper()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			requirePanics(t, tt.panics, tt.panicMsg, tt.fn)
		})
	}
}

func TestWithMaxAttemptsPanicsOnInvalid(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "zero",
			panics:   true,
			panicMsg: "smokecheck: max attempts must be greater than 0, got 0",
			fn:       func() { smokecheck.WithMaxAttempts(0) },
		},
		{
			name:     "negative",
			panics:   true,
			panicMsg: "smokecheck: max attempts must be greater than 0, got -1",
			fn:       func() { smokecheck.WithMaxAttempts(-1) },
		},
		{name: "valid", fn: func() { smokecheck.WithMaxAttempts(30) }},
	})
}

func TestDurationOptionsPanicOnInvalid(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "poll interval zero",
			panics:   true,
			panicMsg: "smokecheck: poll interval must be greater than 0, got 0s",
			fn:       func() { smokecheck.WithPollInterval(0) },
		},
		{
			name:     "request timeout negative",
			panics:   true,
			panicMsg: "smokecheck: request timeout must be greater than 0, got -1s",
			fn:       func() { smokecheck.WithRequestTimeout(-1 * time.Second) },
		},
		{
			name:     "stop timeout zero",
			panics:   true,
			panicMsg: "smokecheck: stop timeout must be greater than 0, got 0s",
			fn:       func() { smokecheck.WithStopTimeout(0) },
		},
		{
			name:     "release delay negative",
			panics:   true,
			panicMsg: "smokecheck: port release delay must not be negative, got -1s",
			fn:       func() { smokecheck.WithPortReleaseDelay(-1 * time.Second) },
		},
		{name: "release delay zero ok", fn: func() { smokecheck.WithPortReleaseDelay(0) }},
		{name: "valid durations", fn: func() {
			smokecheck.WithPollInterval(time.Second)
			smokecheck.WithRequestTimeout(time.Second)
			smokecheck.WithStopTimeout(10 * time.Second)
			smokecheck.WithPortReleaseDelay(time.Second)
		}},
	})
}

func TestWithEmptyStringOptionsPanic(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "rootDir",
			panics:   true,
			panicMsg: "smokecheck: root directory must not be empty",
			fn:       func() { smokecheck.WithRootDir("") },
		},
		{
			name:     "program",
			panics:   true,
			panicMsg: "smokecheck: launch program must not be empty",
			fn:       func() { smokecheck.WithProgram("") },
		},
		{
			name:     "subcommand",
			panics:   true,
			panicMsg: "smokecheck: subcommand must not be empty",
			fn:       func() { smokecheck.WithSubcommand("") },
		},
		{
			name:     "startupFlagsEnv",
			panics:   true,
			panicMsg: "smokecheck: startup flags environment variable must not be empty",
			fn:       func() { smokecheck.WithStartupFlagsEnv("") },
		},
		{
			name:     "portEnvVar",
			panics:   true,
			panicMsg: "smokecheck: port environment variable must not be empty",
			fn:       func() { smokecheck.WithPortEnvVar("") },
		},
		{
			name:     "expectedBody",
			panics:   true,
			panicMsg: "smokecheck: expected body must not be empty",
			fn:       func() { smokecheck.WithExpectedBody("") },
		},
		{
			name:     "descriptorFile",
			panics:   true,
			panicMsg: "smokecheck: descriptor file must not be empty",
			fn:       func() { smokecheck.WithDescriptorFile("") },
		},
		{
			name:     "dataDir",
			panics:   true,
			panicMsg: "smokecheck: data directory must not be empty",
			fn:       func() { smokecheck.WithDataDir("") },
		},
		{
			name:     "ledgerPath",
			panics:   true,
			panicMsg: "smokecheck: ledger path must not be empty",
			fn:       func() { smokecheck.WithLedgerPath("") },
		},
	})
}

func TestOptionApplicationDefaults(t *testing.T) {
	t.Parallel()

	snap := smokecheck.ApplyOptionsForTesting()
	wantDataDir := filepath.Join(os.TempDir(), smokecheck.DefaultDataDirName)

	if snap.RootDir != smokecheck.DefaultRootDir {
		t.Errorf("RootDir = %q, want %q", snap.RootDir, smokecheck.DefaultRootDir)
	}
	if snap.Program != smokecheck.DefaultProgram {
		t.Errorf("Program = %q, want %q", snap.Program, smokecheck.DefaultProgram)
	}
	if snap.Subcommand != smokecheck.DefaultSubcommand {
		t.Errorf("Subcommand = %q, want %q", snap.Subcommand, smokecheck.DefaultSubcommand)
	}
	if snap.StartupFlagsEnv != smokecheck.DefaultStartupFlagsEnv {
		t.Errorf("StartupFlagsEnv = %q, want %q", snap.StartupFlagsEnv, smokecheck.DefaultStartupFlagsEnv)
	}
	if snap.PortEnvVar != smokecheck.DefaultPortEnvVar {
		t.Errorf("PortEnvVar = %q, want %q", snap.PortEnvVar, smokecheck.DefaultPortEnvVar)
	}
	if snap.ExpectedBody != smokecheck.DefaultExpectedBody {
		t.Errorf("ExpectedBody = %q, want %q", snap.ExpectedBody, smokecheck.DefaultExpectedBody)
	}
	if snap.DescriptorFile != smokecheck.DefaultDescriptorFile {
		t.Errorf("DescriptorFile = %q, want %q", snap.DescriptorFile, smokecheck.DefaultDescriptorFile)
	}
	if snap.MaxAttempts != smokecheck.DefaultMaxAttempts {
		t.Errorf("MaxAttempts = %d, want %d", snap.MaxAttempts, smokecheck.DefaultMaxAttempts)
	}
	if snap.PollInterval != smokecheck.DefaultPollInterval {
		t.Errorf("PollInterval = %v, want %v", snap.PollInterval, smokecheck.DefaultPollInterval)
	}
	if snap.RequestTimeout != smokecheck.DefaultRequestTimeout {
		t.Errorf("RequestTimeout = %v, want %v", snap.RequestTimeout, smokecheck.DefaultRequestTimeout)
	}
	if snap.StopTimeout != smokecheck.DefaultStopTimeout {
		t.Errorf("StopTimeout = %v, want %v", snap.StopTimeout, smokecheck.DefaultStopTimeout)
	}
	if snap.PortReleaseDelay != smokecheck.DefaultPortReleaseDelay {
		t.Errorf("PortReleaseDelay = %v, want %v", snap.PortReleaseDelay, smokecheck.DefaultPortReleaseDelay)
	}
	if snap.DataDir != wantDataDir {
		t.Errorf("DataDir = %q, want %q", snap.DataDir, wantDataDir)
	}
	if snap.LedgerSet {
		t.Error("LedgerSet = true with no ledger option applied")
	}
}

func TestOptionApplicationOverrides(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		opt    smokecheck.Option
		verify func(t *testing.T, snap smokecheck.ConfigSnapshot)
	}{
		{
			name: "WithRootDir",
			opt:  smokecheck.WithRootDir("/src/examples"),
			verify: func(t *testing.T, snap smokecheck.ConfigSnapshot) {
				t.Helper()
				if snap.RootDir != "/src/examples" {
					t.Errorf("RootDir = %q, want %q", snap.RootDir, "/src/examples")
				}
			},
		},
		{
			name: "WithProgram",
			opt:  smokecheck.WithProgram("/usr/local/bin/bazelisk"),
			verify: func(t *testing.T, snap smokecheck.ConfigSnapshot) {
				t.Helper()
				if snap.Program != "/usr/local/bin/bazelisk" {
					t.Errorf("Program = %q, want %q", snap.Program, "/usr/local/bin/bazelisk")
				}
			},
		},
		{
			name: "WithoutStartupFlags",
			opt:  smokecheck.WithoutStartupFlags(),
			verify: func(t *testing.T, snap smokecheck.ConfigSnapshot) {
				t.Helper()
				if snap.StartupFlagsEnv != "" {
					t.Errorf("StartupFlagsEnv = %q, want empty", snap.StartupFlagsEnv)
				}
			},
		},
		{
			name: "WithExpectedBody",
			opt:  smokecheck.WithExpectedBody("ok"),
			verify: func(t *testing.T, snap smokecheck.ConfigSnapshot) {
				t.Helper()
				if snap.ExpectedBody != "ok" {
					t.Errorf("ExpectedBody = %q, want %q", snap.ExpectedBody, "ok")
				}
			},
		},
		{
			name: "WithMaxAttempts",
			opt:  smokecheck.WithMaxAttempts(5),
			verify: func(t *testing.T, snap smokecheck.ConfigSnapshot) {
				t.Helper()
				if snap.MaxAttempts != 5 {
					t.Errorf("MaxAttempts = %d, want 5", snap.MaxAttempts)
				}
			},
		},
		{
			name: "WithLedgerPath",
			opt:  smokecheck.WithLedgerPath("/var/lib/smokecheck/results.db"),
			verify: func(t *testing.T, snap smokecheck.ConfigSnapshot) {
				t.Helper()
				if snap.LedgerPath != "/var/lib/smokecheck/results.db" {
					t.Errorf("LedgerPath = %q, want %q", snap.LedgerPath, "/var/lib/smokecheck/results.db")
				}
				if !snap.LedgerSet {
					t.Error("LedgerSet = false after WithLedgerPath")
				}
			},
		},
		{
			name: "WithoutLedger",
			opt:  smokecheck.WithoutLedger(),
			verify: func(t *testing.T, snap smokecheck.ConfigSnapshot) {
				t.Helper()
				if snap.LedgerPath != "" {
					t.Errorf("LedgerPath = %q, want empty", snap.LedgerPath)
				}
				if !snap.LedgerSet {
					t.Error("LedgerSet = false after WithoutLedger")
				}
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			snap := smokecheck.ApplyOptionsForTesting(tc.opt)
			tc.verify(t, snap)
		})
	}
}

func TestOptionApplicationLastWriteWins(t *testing.T) {
	t.Parallel()

	snap := smokecheck.ApplyOptionsForTesting(
		smokecheck.WithMaxAttempts(2),
		smokecheck.WithMaxAttempts(8),
	)

	if snap.MaxAttempts != 8 {
		t.Errorf("MaxAttempts = %d, want 8 (last write wins)", snap.MaxAttempts)
	}
}

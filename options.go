package smokecheck

import (
	"fmt"
	"time"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive[T int | time.Duration](name string, v T) {
	if v <= 0 {
		panic(fmt.Sprintf("smokecheck: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("smokecheck: %s must not be empty", name))
	}
}

// Option configures a Verifier during construction via New.
// Each With* function returns an Option that sets a specific field.
//
// Several With* functions panic on invalid input (empty names, non-positive
// durations). These panics are intentional: option values are typically
// compile-time constants, so an invalid value indicates a programmer error
// rather than a runtime condition. The pattern mirrors [regexp.MustCompile] —
// fail fast during initialization instead of returning errors that would be
// universally fatal anyway.
type Option func(*config)

// WithRootDir sets the directory scanned for example targets. Each target is
// a direct subdirectory; Verify resolves target names relative to this root
// and Audit discovers targets under it.
//
// Default: the current directory.
//
// Panics if dir is empty.
func WithRootDir(dir string) Option {
	requireNonEmpty("root directory", dir)
	return func(c *config) {
		c.RootDir = dir
	}
}

// WithProgram sets the launcher binary used to run packaged artifacts.
// Panics if program is empty.
func WithProgram(program string) Option {
	requireNonEmpty("launch program", program)
	return func(c *config) {
		c.Program = program
	}
}

// WithSubcommand sets the launcher subcommand placed between the startup
// flags and the artifact reference.
// Panics if subcommand is empty.
func WithSubcommand(subcommand string) Option {
	requireNonEmpty("subcommand", subcommand)
	return func(c *config) {
		c.Subcommand = subcommand
	}
}

// WithStartupFlagsEnv sets the environment variable read at launch time for
// extra launcher startup flags. The variable's value is tokenized with shell
// quoting rules. Use WithoutStartupFlags to disable the lookup entirely.
//
// Panics if name is empty.
func WithStartupFlagsEnv(name string) Option {
	requireNonEmpty("startup flags environment variable", name)
	return func(c *config) {
		c.StartupFlagsEnv = name
	}
}

// WithoutStartupFlags disables the startup flags environment lookup. The
// launcher is invoked with only the subcommand and the artifact reference.
func WithoutStartupFlags() Option {
	return func(c *config) {
		c.StartupFlagsEnv = ""
	}
}

// WithPortEnvVar sets the environment variable through which the allocated
// port is passed to the launched application.
// Panics if name is empty.
func WithPortEnvVar(name string) Option {
	requireNonEmpty("port environment variable", name)
	return func(c *config) {
		c.PortEnvVar = name
	}
}

// WithExpectedBody sets the exact body the application's root endpoint must
// return for a run to pass.
// Panics if body is empty.
func WithExpectedBody(body string) Option {
	requireNonEmpty("expected body", body)
	return func(c *config) {
		c.ExpectedBody = body
	}
}

// WithDescriptorFile sets the file whose presence marks a subdirectory of the
// root as an example target during the coverage audit.
// Panics if name is empty.
func WithDescriptorFile(name string) Option {
	requireNonEmpty("descriptor file", name)
	return func(c *config) {
		c.DescriptorFile = name
	}
}

// WithMaxAttempts sets the total number of connection attempts made against
// the application's root endpoint before giving up.
//
// Default: 30.
//
// Panics if n <= 0.
func WithMaxAttempts(n int) Option {
	requirePositive("max attempts", n)
	return func(c *config) {
		c.MaxAttempts = n
	}
}

// WithPollInterval sets the fixed sleep between connection attempts.
//
// Default: 5 seconds.
//
// Panics if d <= 0.
func WithPollInterval(d time.Duration) Option {
	requirePositive("poll interval", d)
	return func(c *config) {
		c.PollInterval = d
	}
}

// WithRequestTimeout sets the per-attempt HTTP timeout.
//
// Default: 5 seconds.
//
// Panics if d <= 0.
func WithRequestTimeout(d time.Duration) Option {
	requirePositive("request timeout", d)
	return func(c *config) {
		c.RequestTimeout = d
	}
}

// WithStopTimeout sets the maximum time allowed for the launched process to
// stop during cleanup. The process receives SIGTERM, is given a grace period,
// and is killed with SIGKILL if still running.
//
// Default: 10 seconds.
//
// Panics if d <= 0.
func WithStopTimeout(d time.Duration) Option {
	requirePositive("stop timeout", d)
	return func(c *config) {
		c.StopTimeout = d
	}
}

// WithPortReleaseDelay sets the pause after process cleanup before a run
// returns. A zero value skips the pause, which is only safe when no
// subsequent run reuses the port space immediately.
//
// Default: 1 second.
//
// Panics if d < 0.
func WithPortReleaseDelay(d time.Duration) Option {
	if d < 0 {
		panic(fmt.Sprintf("smokecheck: port release delay must not be negative, got %v", d))
	}
	return func(c *config) {
		c.PortReleaseDelay = d
	}
}

// WithDataDir sets the directory holding run locks, process logs, and the
// results ledger. Useful in CI environments where multiple projects verify
// examples simultaneously and need isolated data directories.
//
// The ledger path moves with the data directory unless WithLedgerPath set an
// explicit location.
//
// Panics if dir is empty.
func WithDataDir(dir string) Option {
	requireNonEmpty("data directory", dir)
	return func(c *config) {
		c.DataDir = dir
	}
}

// WithLedgerPath sets the SQLite file recording run outcomes.
// Panics if path is empty; use WithoutLedger to disable recording.
func WithLedgerPath(path string) Option {
	requireNonEmpty("ledger path", path)
	return func(c *config) {
		c.LedgerPath = path
		c.ledgerSet = true
	}
}

// WithoutLedger disables run outcome recording.
func WithoutLedger() Option {
	return func(c *config) {
		c.LedgerPath = ""
		c.ledgerSet = true
	}
}

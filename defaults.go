package smokecheck

import "time"

// Default configuration values for New.
// These constants are exported so callers can reference the defaults
// when building custom configurations relative to them (e.g.,
// 2 * DefaultRequestTimeout).
const (
	// DefaultProgram is the launcher binary used to run packaged artifacts,
	// located in PATH.
	DefaultProgram = "bazel"

	// DefaultSubcommand is the launcher subcommand placed between the startup
	// flags and the artifact reference.
	DefaultSubcommand = "run"

	// DefaultStartupFlagsEnv is the environment variable read at launch time
	// for extra launcher startup flags. Its value is tokenized with shell
	// quoting rules and inserted before the subcommand.
	DefaultStartupFlagsEnv = "BAZEL_STARTUP_FLAGS"

	// DefaultPortEnvVar is the environment variable through which the
	// allocated port is passed to the launched application.
	DefaultPortEnvVar = "FLASK_RUN_PORT"

	// DefaultExpectedBody is the exact body the application's root endpoint
	// must return for the run to pass.
	DefaultExpectedBody = "hello world!"

	// DefaultDescriptorFile is the file whose presence marks a subdirectory
	// of the root as an example target during the coverage audit.
	DefaultDescriptorFile = "BUILD.bazel"

	// DefaultRootDir is the directory scanned for example targets. Each
	// target is a direct subdirectory named after it.
	DefaultRootDir = "."

	// DefaultMaxAttempts is the total number of connection attempts made
	// against the application's root endpoint before giving up.
	DefaultMaxAttempts = 30

	// DefaultPollInterval is the fixed sleep between connection attempts.
	DefaultPollInterval = 5 * time.Second

	// DefaultRequestTimeout is the per-attempt HTTP timeout.
	DefaultRequestTimeout = 5 * time.Second

	// DefaultStopTimeout is the maximum time allowed for the launched
	// process to stop during cleanup, covering the SIGTERM grace period and
	// the SIGKILL fallback.
	DefaultStopTimeout = 10 * time.Second

	// DefaultPortReleaseDelay is the pause after process cleanup before the
	// run returns, giving the OS time to release the port for the next run.
	DefaultPortReleaseDelay = time.Second

	// DefaultDataDirName is the directory name under the system temp
	// directory where run locks, process logs, and the results ledger are
	// stored. The full path is computed as
	// filepath.Join(os.TempDir(), DefaultDataDirName).
	DefaultDataDirName = "smokecheck"

	// DefaultLedgerFileName is the SQLite results ledger file name inside
	// the data directory. Disable recording with WithoutLedger.
	DefaultLedgerFileName = "results.db"
)

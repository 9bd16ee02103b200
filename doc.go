// Package smokecheck verifies that packaged example web applications start,
// serve, and shut down cleanly.
//
// A verification run launches one packaged artifact as a subprocess on an
// ephemeral loopback port, polls its root endpoint until it returns the
// expected body, and guarantees the process is terminated before the run
// returns. Runs are serialized: within a process by a mutex, across processes
// by a file lock, so concurrent test binaries cannot interfere with each
// other's port usage.
//
// # Basic Usage
//
//	import "github.com/giantswarm/smokecheck"
//
//	ctx := context.Background()
//
//	v, err := smokecheck.New(ctx,
//	    smokecheck.WithRootDir("examples"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer v.Close()
//
//	if err := v.Verify(ctx, "rules_venv", "//:flask_hello_world.pex"); err != nil {
//	    log.Fatal(err)
//	}
//
//	// After all runs, confirm every example directory on disk was covered.
//	if err := v.Audit(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Coverage Audit
//
// Verify registers the target name before checking that the directory exists,
// so Audit catches both directions of drift: example directories that were
// never verified, and verifications that reference directories missing from
// disk.
package smokecheck

package smokecheck_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/giantswarm/smokecheck"
)

// newVerifier creates a Verifier with isolated root and data directories.
func newVerifier(t *testing.T, opts ...smokecheck.Option) smokecheck.Verifier {
	t.Helper()

	opts = append([]smokecheck.Option{
		smokecheck.WithRootDir(t.TempDir()),
		smokecheck.WithDataDir(t.TempDir()),
	}, opts...)

	v, err := smokecheck.New(context.Background(), opts...)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	t.Cleanup(func() { _ = v.Close() })
	return v
}

func TestNew_DerivesLedgerPathFromDataDir(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	v, err := smokecheck.New(context.Background(),
		smokecheck.WithRootDir(t.TempDir()),
		smokecheck.WithDataDir(dataDir),
	)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	defer func() { _ = v.Close() }()

	// Opening the ledger creates the file eagerly.
	ledgerPath := filepath.Join(dataDir, smokecheck.DefaultLedgerFileName)
	if _, err := os.Stat(ledgerPath); err != nil {
		t.Errorf("ledger not created at %s: %v", ledgerPath, err)
	}
}

func TestNew_WithoutLedger(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	v, err := smokecheck.New(context.Background(),
		smokecheck.WithRootDir(t.TempDir()),
		smokecheck.WithDataDir(dataDir),
		smokecheck.WithoutLedger(),
	)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	defer func() { _ = v.Close() }()

	ledgerPath := filepath.Join(dataDir, smokecheck.DefaultLedgerFileName)
	if _, err := os.Stat(ledgerPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("stat %s = %v, want not-exist", ledgerPath, err)
	}
}

func TestVerifier_AuditEmptyRoot(t *testing.T) {
	t.Parallel()

	v := newVerifier(t)

	if err := v.Audit(); err != nil {
		t.Errorf("Audit() = %v, want nil for empty root", err)
	}
}

func TestVerifier_MissingTargetIsRegistered(t *testing.T) {
	t.Parallel()

	v := newVerifier(t)

	err := v.Verify(context.Background(), "no_such_example", "//:app.pex")
	if !errors.Is(err, smokecheck.ErrTargetNotFound) {
		t.Fatalf("Verify() = %v, want ErrTargetNotFound", err)
	}

	if got := v.Verified(); !slices.Contains(got, "no_such_example") {
		t.Errorf("Verified() = %v, want it to contain no_such_example", got)
	}
	if err := v.Audit(); !errors.Is(err, smokecheck.ErrPhantomTargets) {
		t.Errorf("Audit() = %v, want ErrPhantomTargets", err)
	}
}

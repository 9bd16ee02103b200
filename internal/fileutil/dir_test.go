package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path func(base string) string
	}{
		"single level":     {path: func(base string) string { return filepath.Join(base, "a") }},
		"nested levels":    {path: func(base string) string { return filepath.Join(base, "a", "b", "c") }},
		"already existing": {path: func(base string) string { return base }},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := tc.path(t.TempDir())
			if err := EnsureDir(dir); err != nil {
				t.Fatalf("EnsureDir(%q) = %v", dir, err)
			}
			info, err := os.Stat(dir)
			if err != nil {
				t.Fatalf("stat %q: %v", dir, err)
			}
			if !info.IsDir() {
				t.Errorf("%q is not a directory", dir)
			}
		})
	}
}

func TestEnsureDirForFile(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "logs", "run-1", "stdout.log")
	if err := EnsureDirForFile(file); err != nil {
		t.Fatalf("EnsureDirForFile(%q) = %v", file, err)
	}
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file after EnsureDirForFile: %v", err)
	}
}

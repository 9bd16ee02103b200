package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/giantswarm/smokecheck/internal/sentinel"
)

// ErrUntestedTargets is returned by Audit when target directories discovered
// on disk were never verified. The wrapping error lists the missing names.
const ErrUntestedTargets = sentinel.Error("untested targets")

// ErrPhantomTargets is returned by Audit when verifications ran against
// target names that do not exist on disk. The wrapping error lists the
// extraneous names.
const ErrPhantomTargets = sentinel.Error("phantom targets")

// skipDirName reports whether a directory entry is excluded from target
// discovery: hidden directories and build caches.
func skipDirName(name string) bool {
	return strings.HasPrefix(name, ".") ||
		name == "__pycache__" ||
		strings.HasPrefix(name, "bazel-")
}

// DiscoverTargets scans rootDir for subdirectories containing the descriptor
// file and returns their names sorted. Hidden directories and cache
// directories are skipped. Descriptor checks for the remaining entries run
// concurrently.
func DiscoverTargets(rootDir, descriptorFile string) ([]string, error) {
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return nil, fmt.Errorf("read root directory %s: %w", rootDir, err)
	}

	var (
		mu    sync.Mutex
		found []string
		g     errgroup.Group
	)
	for _, entry := range entries {
		if !entry.IsDir() || skipDirName(entry.Name()) {
			continue
		}
		name := entry.Name()
		g.Go(func() error {
			_, err := os.Stat(filepath.Join(rootDir, name, descriptorFile))
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("stat descriptor in %s: %w", name, err)
			}
			mu.Lock()
			found = append(found, name)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.Sort(found)
	return found, nil
}

// Audit compares the registry of verified targets against the targets
// discovered on disk. Both invariant violations are reported as distinct
// conditions, joined when both occur:
//
//   - every discovered target directory was verified at least once, and
//   - no verification ran against a target directory missing from disk.
func (r *Runner) Audit() error {
	discovered, err := DiscoverTargets(r.cfg.RootDir, r.cfg.DescriptorFile)
	if err != nil {
		return fmt.Errorf("discover targets: %w", err)
	}

	r.mu.Lock()
	verified := make(map[string]struct{}, len(r.verified))
	for name := range r.verified {
		verified[name] = struct{}{}
	}
	r.mu.Unlock()

	discoveredSet := make(map[string]struct{}, len(discovered))
	for _, name := range discovered {
		discoveredSet[name] = struct{}{}
	}

	var untested []string
	for _, name := range discovered {
		if _, ok := verified[name]; !ok {
			untested = append(untested, name)
		}
	}

	var phantom []string
	for name := range verified {
		if _, ok := discoveredSet[name]; !ok {
			phantom = append(phantom, name)
		}
	}
	slices.Sort(phantom)

	var errs []error
	if len(untested) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrUntestedTargets, strings.Join(untested, ", ")))
	}
	if len(phantom) > 0 {
		errs = append(errs, fmt.Errorf("%w: %s", ErrPhantomTargets, strings.Join(phantom, ", ")))
	}
	return errors.Join(errs...)
}

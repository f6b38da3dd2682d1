// Package testutil provides testing utilities for termtune.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/goleak"
)

// VerifyNoLeaks should be deferred at the start of tests that spawn goroutines.
// It verifies that no goroutines were leaked during the test.
func VerifyNoLeaks(t *testing.T, opts ...goleak.Option) {
	t.Helper()
	goleak.VerifyNone(t, opts...)
}

// WriteFiles creates each relative path under root with the given content,
// making parent directories as needed. It returns the absolute paths in the
// order given.
func WriteFiles(t *testing.T, root string, files map[string]string, order ...string) []string {
	t.Helper()

	paths := make([]string, 0, len(order))
	for rel, content := range files {
		full := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(full), err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
	for _, rel := range order {
		paths = append(paths, filepath.Join(root, rel))
	}
	return paths
}

// TouchTracks creates empty files for each relative path under root and
// returns their absolute paths in order.
func TouchTracks(t *testing.T, root string, rels ...string) []string {
	t.Helper()

	files := make(map[string]string, len(rels))
	for _, rel := range rels {
		files[rel] = ""
	}
	return WriteFiles(t, root, files, rels...)
}

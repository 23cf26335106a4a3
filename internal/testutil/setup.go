// Package testutil builds synthetic input files for tests. Every builder
// produces bytes in memory; nothing is read from the repository.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// WriteFile writes data to name inside a per-test temporary directory and
// returns the full path.
//
// Example:
//
//	path := testutil.WriteFile(t, "empty.obj", testutil.Object{Machine: 0x14c}.Bytes())
func WriteFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// OpenFile writes data to a temporary file and maps it.
// The view is closed when the test ends.
func OpenFile(t *testing.T, name string, data []byte) *view.File {
	t.Helper()
	f, err := view.Open(WriteFile(t, name, data))
	if err != nil {
		t.Fatalf("Failed to open %s: %v", name, err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

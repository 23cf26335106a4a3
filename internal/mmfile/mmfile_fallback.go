//go:build !unix && !windows

// Package mmfile maps input files read-only, falling back to a plain read
// where no mapping primitive is available.
package mmfile

import (
	"fmt"
	"os"
)

// Map reads the whole file into memory. The cleanup function is a no-op.
func Map(path string) ([]byte, func() error, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("mmfile: read %s: %w", path, err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, func() error { return nil }, nil
}

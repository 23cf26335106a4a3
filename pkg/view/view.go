// Package view provides the read-only, bounds-checked byte view every
// format reader decodes from.
//
// A File is either backed by a memory-mapped file (Open), by caller-owned
// memory (FromBytes) or by a window into another File (Window). All reads
// go through IsValidRange first; a failed check returns ok = false and
// never panics.
package view

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vividos/ProgrammersGlasses/internal/buf"
	"github.com/vividos/ProgrammersGlasses/internal/mmfile"
)

// File is a read-only byte view over a file or a region of one.
type File struct {
	name    string
	data    []byte
	origin  int
	cleanup func() error
	closed  bool
}

// Open maps path read-only. The effective size is the smaller of the mapped
// length and the size reported by the file system.
func Open(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("view: %s is a directory", path)
	}
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, err
	}
	if reported := info.Size(); reported >= 0 && int64(len(data)) > reported {
		data = data[:reported]
	}
	return &File{name: path, data: data, cleanup: cleanup}, nil
}

// FromBytes wraps b without copying. The caller must not modify b while
// the view is in use.
func FromBytes(name string, b []byte) *File {
	return &File{name: name, data: b}
}

// Name returns the path or name the view was created with.
func (f *File) Name() string { return f.name }

// BaseName returns the last path element of Name.
func (f *File) BaseName() string { return filepath.Base(f.name) }

// Size returns the number of readable bytes.
func (f *File) Size() int {
	if f.closed {
		return 0
	}
	return len(f.data)
}

// Data returns the whole view. The slice must be treated as read-only.
func (f *File) Data() []byte {
	if f.closed {
		return nil
	}
	return f.data
}

// Origin returns the absolute offset of this view within the outermost
// file. It is zero for views created by Open or FromBytes.
func (f *File) Origin() int { return f.origin }

// IsValidOffset reports whether off addresses a byte inside the view.
func (f *File) IsValidOffset(off int) bool {
	return off >= 0 && off < f.Size()
}

// IsValidRange reports whether every byte of [off, off+n) lies inside the
// view. Empty and negative ranges are never valid.
func (f *File) IsValidRange(off, n int) bool {
	if n <= 0 || !f.IsValidOffset(off) {
		return false
	}
	last, ok := buf.AddOverflowSafe(off, n-1)
	return ok && f.IsValidOffset(last)
}

// Bytes returns the n bytes at off.
func (f *File) Bytes(off, n int) ([]byte, bool) {
	if !f.IsValidRange(off, n) {
		return nil, false
	}
	return f.data[off : off+n : off+n], true
}

// Tail returns everything from off to the end of the view.
func (f *File) Tail(off int) ([]byte, bool) {
	return f.Bytes(off, f.Size()-off)
}

// Window returns a sub-view of n bytes starting at off. Offsets inside the
// window are relative to off; Origin reports the absolute position. The
// returned view shares memory with f and owns no resources.
func (f *File) Window(off, n int) (*File, bool) {
	b, ok := f.Bytes(off, n)
	if !ok {
		return nil, false
	}
	return &File{name: f.name, data: b, origin: f.origin + off}, true
}

func (f *File) U8(off int) (uint8, bool) {
	b, ok := f.Bytes(off, 1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

func (f *File) U16LE(off int) (uint16, bool) {
	b, ok := f.Bytes(off, 2)
	return buf.U16LE(b), ok
}

func (f *File) U16BE(off int) (uint16, bool) {
	b, ok := f.Bytes(off, 2)
	return buf.U16BE(b), ok
}

func (f *File) U32LE(off int) (uint32, bool) {
	b, ok := f.Bytes(off, 4)
	return buf.U32LE(b), ok
}

func (f *File) U32BE(off int) (uint32, bool) {
	b, ok := f.Bytes(off, 4)
	return buf.U32BE(b), ok
}

// CString reads a NUL-terminated string at off, scanning at most max bytes
// (or to the end of the view when max <= 0). The terminator is optional.
func (f *File) CString(off, max int) (string, bool) {
	if !f.IsValidOffset(off) {
		return "", false
	}
	n := f.Size() - off
	if max > 0 && max < n {
		n = max
	}
	return string(buf.CString(f.data[off : off+n])), true
}

// Close releases the mapping. It is safe to call more than once; windows
// and byte-backed views only mark themselves closed.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	f.data = nil
	if f.cleanup == nil {
		return nil
	}
	err := f.cleanup()
	f.cleanup = nil
	return err
}

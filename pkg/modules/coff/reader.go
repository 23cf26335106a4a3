package coff

import (
	"github.com/vividos/ProgrammersGlasses/internal/logger"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// Reader builds the tree of a COFF object, import/anonymous object or
// archive library.
type Reader struct {
	file *view.File
	opts Options
	root *document.Node
}

// NewReader returns a reader bound to f.
func NewReader(f *view.File, opts Options) *Reader {
	return &Reader{file: f, opts: opts}
}

// Load classifies the file and builds its tree. Calling it again is a no-op.
func (r *Reader) Load() error {
	if r.root != nil {
		return nil
	}
	kind := Classify(r.file)
	logger.Debug("coff load", "file", r.file.Name(), "kind", kind.String(), "size", r.file.Size())
	switch kind {
	case KindObject:
		r.root = BuildObject(r.file, ObjectOptions{Options: r.opts}).Root
	case KindNonCoff:
		r.root = BuildNonCoff(r.file, r.opts).Root
	case KindArchive:
		r.root = BuildArchive(r.file, r.opts).Root
	default:
		logger.Error("coff reader opened for unrecognized file", "file", r.file.Name())
		r.root = document.NewTextNode("Summary", document.IconDocument,
			"Error: file is not a COFF object, import object or archive library\n")
	}
	return nil
}

// RootNode returns the tree built by Load.
func (r *Reader) RootNode() *document.Node { return r.root }

// Cleanup has nothing to release beyond the byte view.
func (r *Reader) Cleanup() error { return nil }

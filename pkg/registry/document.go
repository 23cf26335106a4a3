package registry

import (
	"errors"

	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// Document is an opened file together with the reader that decodes it.
type Document struct {
	File   *view.File
	Reader document.Reader
	Module document.Module
}

// Load builds the node tree.
func (d *Document) Load() error {
	return d.Reader.Load()
}

// Root returns the tree built by Load.
func (d *Document) Root() *document.Node {
	return d.Reader.RootNode()
}

// Close releases the reader and then the file.
func (d *Document) Close() error {
	return errors.Join(d.Reader.Cleanup(), d.File.Close())
}

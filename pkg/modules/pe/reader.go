package pe

import (
	"fmt"
	"strings"

	"github.com/vividos/ProgrammersGlasses/internal/logger"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/modules/coff"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

var signature = []byte("PE\x00\x00")

// IsExecutable reports whether f starts with the MZ magic number.
func IsExecutable(f *view.File) bool {
	b, ok := f.Bytes(0, 2)
	return ok && string(b) == "MZ"
}

// Reader builds the tree of an MZ/PE executable.
type Reader struct {
	file *view.File
	opts coff.Options
	root *document.Node
}

// NewReader returns a reader bound to f.
func NewReader(f *view.File, opts coff.Options) *Reader {
	return &Reader{file: f, opts: opts}
}

// Load builds the tree. Calling it again is a no-op.
func (r *Reader) Load() error {
	if r.root != nil {
		return nil
	}
	f := r.file
	root := document.NewNode("Summary", document.IconDocument, nil)

	var sb strings.Builder
	sb.WriteString("PE file: " + f.BaseName() + "\n\n")
	sb.WriteString("Summary:\n")
	root.AddChild(document.NewStructNode("MZ header", document.IconBinary, MZHeaderSchema, f, 0))

	lfanew, ok := f.U32LE(lfanewOffset)
	peOffset := int(lfanew)
	switch {
	case !ok:
		sb.WriteString("Warning: MZ header is truncated\n")
	case !f.IsValidRange(peOffset, SignatureSize):
		logger.Warn("pe header offset outside file", "file", f.Name(), "offset", lfanew, "size", f.Size())
		fmt.Fprintf(&sb, "Error: PE header offset 0x%08x is outside of the file size!\n", lfanew)
	case !hasSignature(f, peOffset):
		fmt.Fprintf(&sb, "DOS executable, no PE signature at offset 0x%08x\n", lfanew)
	default:
		r.addImage(root, &sb, peOffset)
	}

	root.SetText(sb.String())
	r.root = root
	return nil
}

func hasSignature(f *view.File, off int) bool {
	b, ok := f.Bytes(off, SignatureSize)
	return ok && string(b) == string(signature)
}

func (r *Reader) addImage(root *document.Node, sb *strings.Builder, peOffset int) {
	f := r.file
	fmt.Fprintf(sb, "PE signature at offset 0x%08x\n", peOffset)
	root.AddChild(document.NewStructNode("PE signature", document.IconBinary, SignatureSchema, f, peOffset))

	headerOffset := peOffset + SignatureSize
	obj := coff.BuildObject(f, coff.ObjectOptions{Options: r.opts, HeaderOffset: headerOffset, Image: true})
	root.AddChild(obj.Root)
	if !obj.Valid {
		sb.WriteString("Warning: COFF header is truncated\n")
		return
	}

	h := obj.Header
	fmt.Fprintf(sb, "Architecture: %s\n", coff.MachineName(h.Machine))
	fmt.Fprintf(sb, "Number of sections: %d\n", h.NumberOfSections)
	fmt.Fprintf(sb, "Creation date/time: %s\n", schema.FormatTime(h.TimeStamp))

	if h.OptionalHeaderSize >= 2 {
		if magic, ok := f.U16LE(headerOffset + coff.HeaderSize); ok {
			name, known := optionalMagicNames[uint32(magic)]
			if !known {
				name = "unknown"
			}
			fmt.Fprintf(sb, "Optional header: %s (0x%04x)\n", name, magic)
		}
	}
}

// RootNode returns the tree built by Load.
func (r *Reader) RootNode() *document.Node { return r.root }

// Cleanup has nothing to release.
func (r *Reader) Cleanup() error { return nil }

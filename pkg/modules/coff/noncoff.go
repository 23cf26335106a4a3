package coff

import (
	"fmt"
	"strings"

	"github.com/vividos/ProgrammersGlasses/internal/buf"
	"github.com/vividos/ProgrammersGlasses/internal/logger"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// NonCoff is a built import or anonymous object tree.
type NonCoff struct {
	Root    *document.Node
	Header  NonCoffHeader
	Summary string
	// Symbol and DLL are the names stored after an import object header.
	Symbol string
	DLL    string
}

// BuildNonCoff builds the node tree of the import or anonymous object
// record at the start of f.
func BuildNonCoff(f *view.File, opts Options) *NonCoff {
	root := document.NewNode("non-COFF Summary", document.IconLibrary, nil)
	obj := &NonCoff{Root: root}

	h, err := ParseNonCoffHeader(f, 0)
	if err != nil {
		root.SetText("Error: non-COFF object header is outside of the file size!\n")
		return obj
	}
	obj.Header = h

	var sb strings.Builder
	switch h.Version {
	case importObjectVersion:
		sb.WriteString("Import object\n")
		fmt.Fprintf(&sb, "Architecture: %s\n", MachineName(h.Machine))
		root.AddChild(document.NewStructNode("Import object header", document.IconBinary, ImportHeaderSchema, f, 0))
		addImportData(f, obj, &sb, opts)
	case anonObjectVersion:
		sb.WriteString("Anonymous object\n")
		fmt.Fprintf(&sb, "Architecture: %s\n", MachineName(h.Machine))
		root.AddChild(document.NewStructNode("Anonymous object header", document.IconBinary, AnonymousHeaderSchema, f, 0))
		if id, ok := f.Bytes(anonClassIDOffset, anonClassIDLen); ok {
			fmt.Fprintf(&sb, "Class ID: %s\n", schema.GUID(id))
		}
		if !f.IsValidRange(0, AnonymousHeaderSize) {
			sb.WriteString("Warning: Anonymous object header is truncated\n")
		}
	default:
		// Classify never routes other versions here.
		logger.Error("invalid non-COFF object header", "file", f.Name(), "version", h.Version)
		sb.WriteString("Invalid non-COFF object header\n")
	}

	obj.Summary = sb.String()
	root.SetText(obj.Summary)
	return obj
}

// addImportData reads the symbol and DLL names following the import header.
func addImportData(f *view.File, obj *NonCoff, sb *strings.Builder, opts Options) {
	size, ok := f.U32LE(impSizeOfDataOffset)
	if !ok {
		return
	}
	ordinal, _ := f.U16LE(impOrdinalOffset)
	fmt.Fprintf(sb, "Ordinal or hint: %d\n", ordinal)
	if size == 0 {
		return
	}
	data, ok := f.Bytes(ImportHeaderSize, int(size))
	if !ok {
		sb.WriteString("Warning: Import object data is outside of the file size\n")
		return
	}
	names := buf.SplitCStrings(data, 2)
	if len(names) > 0 {
		obj.Symbol = names[0]
		fmt.Fprintf(sb, "Symbol: %s\n", obj.Symbol)
		fmt.Fprintf(sb, "Undecorated symbol: %s\n", opts.resolver().Undecorate(obj.Symbol))
	}
	if len(names) > 1 {
		obj.DLL = names[1]
		fmt.Fprintf(sb, "DLL: %s\n", obj.DLL)
	}
}

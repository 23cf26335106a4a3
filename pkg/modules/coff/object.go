package coff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vividos/ProgrammersGlasses/internal/buf"
	"github.com/vividos/ProgrammersGlasses/internal/logger"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
	"github.com/vividos/ProgrammersGlasses/pkg/symbols"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// Options configures the COFF builders.
type Options struct {
	// Resolver undecorates symbol names. Defaults to symbols.Default().
	Resolver *symbols.Resolver
}

// DefaultOptions returns options using the process-wide resolver.
func DefaultOptions() Options {
	return Options{Resolver: symbols.Default()}
}

func (o Options) resolver() *symbols.Resolver {
	if o.Resolver == nil {
		return symbols.Default()
	}
	return o.Resolver
}

// ObjectOptions locates the COFF header inside a view.
type ObjectOptions struct {
	Options
	// HeaderOffset is where the COFF header starts. Section headers follow
	// the header and the optional header; the symbol table offset is
	// always relative to the start of the view.
	HeaderOffset int
	// Image marks the COFF header of an executable image.
	Image bool
}

// Object is a built COFF object tree.
type Object struct {
	Root   *document.Node
	Header Header
	// Valid is false when the header itself could not be read.
	Valid bool
	// Summary is the object part of the root text, without the header
	// description.
	Summary string
}

var (
	symbolColumns = []string{"Index", "Symbol", "Undecorated symbol"}
	stringColumns = []string{"Index", "Offset", "String", "Undecorated string"}
)

type objectBuilder struct {
	f       *view.File
	opts    ObjectOptions
	res     *symbols.Resolver
	hdr     Header
	summary strings.Builder
	strtab  *StringTable
}

// BuildObject builds the node tree of the COFF object whose header starts at
// opts.HeaderOffset in f. Content problems end up as error and warning
// lines in the tree; BuildObject never fails.
func BuildObject(f *view.File, opts ObjectOptions) *Object {
	b := &objectBuilder{f: f, opts: opts, res: opts.resolver()}
	return b.build()
}

func (b *objectBuilder) build() *Object {
	root := document.NewNode("COFF Summary", document.IconLibrary, nil)
	obj := &Object{Root: root}

	hdr, err := ParseHeader(b.f, b.opts.HeaderOffset)
	if err != nil {
		logger.Warn("coff header unreadable", "file", b.f.Name(), "offset", b.absolute(b.opts.HeaderOffset), "error", err)
		root.SetText("Error: COFF header is outside of the file size!\n")
		return obj
	}
	b.hdr = hdr
	obj.Header = hdr
	obj.Valid = true

	b.summary.WriteString("COFF object file\n")
	fmt.Fprintf(&b.summary, "Architecture: %s\n", MachineName(hdr.Machine))

	root.AddChild(document.NewStructNode("COFF header", document.IconBinary, HeaderSchema, b.f, b.opts.HeaderOffset))
	root.AddChild(b.sectionTable())

	if hdr.HasSymbolTable() {
		b.loadStringTable()
		if node := b.symbolTable(); node != nil {
			root.AddChild(node)
		}
		root.AddChild(b.stringTable())
	}

	obj.Summary = b.summary.String()
	root.SetText(b.headerText() + "\n" + obj.Summary)
	return obj
}

func (b *objectBuilder) absolute(off int) int { return b.f.Origin() + off }

func (b *objectBuilder) headerText() string {
	var sb strings.Builder
	h := b.hdr

	sb.WriteString("COFF file: " + b.f.BaseName())
	if abs := b.absolute(b.opts.HeaderOffset); abs > 0 {
		fmt.Fprintf(&sb, " at offset 0x%08x", abs)
	}
	sb.WriteString("\n\nCOFF Header\n")

	fmt.Fprintf(&sb, "Target machine: %s (0x%04x)\n", MachineName(h.Machine), h.Machine)
	fmt.Fprintf(&sb, "Number of sections: %d\n", h.NumberOfSections)
	fmt.Fprintf(&sb, "Creation date/time: %s\n", schema.FormatTime(h.TimeStamp))
	fmt.Fprintf(&sb, "Symbol table offset: 0x%08x\n", h.SymbolTableOffset)
	fmt.Fprintf(&sb, "Symbol table length: %d\n", h.NumberOfSymbols)
	if b.opts.Image && (h.SymbolTableOffset != 0 || h.NumberOfSymbols != 0) {
		sb.WriteString("Warning: COFF symbol table for images is deprecated\n")
	}
	fmt.Fprintf(&sb, "Optional header size: %d\n", h.OptionalHeaderSize)
	fmt.Fprintf(&sb, "Characteristics flags: 0x%08x (%s)\n",
		h.Characteristics, schema.FormatFlags(CharacteristicsBits, uint32(h.Characteristics)))
	return sb.String()
}

func (b *objectBuilder) sectionTable() *document.Node {
	node := document.NewNode("Section Table", document.IconDocument, nil)
	count := int(b.hdr.NumberOfSections)
	start := b.opts.HeaderOffset + HeaderSize + int(b.hdr.OptionalHeaderSize)

	if count > 0 && !b.f.IsValidRange(start, SectionHeaderSize) {
		node.SetText("Error: section header offset is outside of the file size!")
		return node
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Number of sections: %d\n", count)
	for i := 0; i < count; i++ {
		off := start + i*SectionHeaderSize
		sec, err := ParseSectionHeader(b.f, off)
		if err != nil {
			logger.Warn("section table truncated", "file", b.f.Name(), "section", i+1, "error", err)
			fmt.Fprintf(&sb, "Error: Section header #%d is outside of the file size!", i+1)
			break
		}
		fmt.Fprintf(&sb, "Section %d: %s at offset 0x%08x (size 0x%08x)\n",
			i+1, sec.Name, sec.PointerToRawData, sec.SizeOfRawData)
		node.AddChild(document.NewStructNode("Section header "+sec.Name, document.IconBinary, SectionHeaderSchema, b.f, off))
	}
	node.SetText(sb.String())
	return node
}

// stringTableOffset returns where the string table starts: right after the
// last symbol table slot.
func (b *objectBuilder) stringTableOffset() (int, bool) {
	size, ok := buf.MulOverflowSafe(int(b.hdr.NumberOfSymbols), SymbolSize)
	if !ok {
		return 0, false
	}
	return buf.AddOverflowSafe(int(b.hdr.SymbolTableOffset), size)
}

func (b *objectBuilder) loadStringTable() {
	off, ok := b.stringTableOffset()
	if ok {
		b.strtab, ok = LoadStringTable(b.f, off)
	}
	if !ok {
		b.strtab = newStringTable()
		b.summary.WriteString("Warning: String table is outside of the file size\n")
		return
	}
	if b.strtab.Truncated {
		b.summary.WriteString("Warning: String table is truncated\n")
	}
}

func (b *objectBuilder) symbolName(sym Symbol) string {
	offset, long := sym.StringTableOffset()
	if !long {
		return sym.InlineName()
	}
	if name, ok := b.strtab.Lookup(offset); ok {
		return name
	}
	return fmt.Sprintf("offset 0x%08x", offset)
}

func (b *objectBuilder) symbolTable() *document.Node {
	start := int(b.hdr.SymbolTableOffset)
	if !b.f.IsValidRange(start, SymbolSize) {
		b.summary.WriteString("Error: COFF symbol table offset is outside of the file size!\n")
		return nil
	}

	table := &document.TableContent{Columns: symbolColumns, Sortable: true}
	node := document.NewTableNode("Symbol Table", document.IconTable, table)

	count := int(b.hdr.NumberOfSymbols)
	cur := start
	for index := 0; index < count; {
		sym, err := ParseSymbol(b.f, cur)
		if err != nil {
			logger.Warn("symbol table truncated", "file", b.f.Name(), "index", index, "error", err)
			b.summary.WriteString("Warning: File ended while scanning the symbol table\n")
			break
		}
		name := b.symbolName(sym)
		table.AddRow(strconv.Itoa(index), name, b.res.Undecorate(name))
		node.AddChild(document.NewStructNode("Symbol table entry "+name, document.IconBinary, SymbolSchema, b.f, cur))

		// aux slots count as symbols and are skipped without decoding
		slots := 1 + int(sym.AuxCount)
		cur += slots * SymbolSize
		index += slots
	}

	fmt.Fprintf(&b.summary, "Symbol table with %d entries, length 0x%08x bytes.\n",
		b.hdr.NumberOfSymbols, cur-start)
	return node
}

func (b *objectBuilder) stringTable() *document.Node {
	table := &document.TableContent{Columns: stringColumns, Sortable: true}
	index := 0
	b.strtab.Each(func(offset uint32, text string) bool {
		table.AddRow(strconv.Itoa(index), fmt.Sprintf("0x%08x", offset), text, b.res.Undecorate(text))
		index++
		return true
	})
	fmt.Fprintf(&b.summary, "String table with %d entries, length 0x%08x bytes.\n", index, b.strtab.Length)
	return document.NewTableNode("String Table", document.IconTable, table)
}

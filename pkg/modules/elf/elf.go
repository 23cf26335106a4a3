// Package elf recognizes ELF shared objects. Only the identification bytes
// are described; there is no reader, so opening such a file reports that
// no reader is available.
package elf

import (
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// Magic starts every ELF file.
const Magic = "\x7fELF"

var classes = schema.Mapping{1: "ELFCLASS32", 2: "ELFCLASS64"}

var encodings = schema.Mapping{1: "ELFDATA2LSB", 2: "ELFDATA2MSB"}

var osABIs = schema.Mapping{
	0:  "ELFOSABI_NONE",
	3:  "ELFOSABI_LINUX",
	6:  "ELFOSABI_SOLARIS",
	9:  "ELFOSABI_FREEBSD",
	12: "ELFOSABI_OPENBSD",
}

// IdentSchema describes the 16 identification bytes.
var IdentSchema = schema.MustStruct("elf_ident",
	schema.ByteArray(0, 4, 1, "Magic"),
	schema.Value(4, 1, classes, "File class").WithDefault("ELFCLASSNONE"),
	schema.Value(5, 1, encodings, "Data encoding").WithDefault("ELFDATANONE"),
	schema.Uint(6, 1, "ELF header version"),
	schema.Value(7, 1, osABIs, "OS ABI"),
	schema.Uint(8, 1, "ABI version"),
	schema.ByteArray(9, 7, 1, "Padding"),
)

// IsELF reports whether f starts with the ELF magic.
func IsELF(f *view.File) bool {
	b, ok := f.Bytes(0, len(Magic))
	return ok && string(b) == Magic
}

// Module recognizes ELF files.
type Module struct{}

// NewModule creates the ELF module.
func NewModule() *Module { return &Module{} }

func (m *Module) DisplayName() string { return "ELF binary module" }

func (m *Module) Icon() document.ModuleIcon { return document.ModuleIconDevelopment }

func (m *Module) FilterStrings() string { return "ELF shared library files (*.so)|*.so|" }

func (m *Module) IsApplicable(f *view.File) bool { return IsELF(f) }

// OpenReader returns nil; ELF files are recognized but not decoded.
func (m *Module) OpenReader(*view.File) document.Reader { return nil }

func (m *Module) Schemas() []*schema.Struct { return []*schema.Struct{IdentSchema} }

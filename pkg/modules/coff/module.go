// Package coff reads COFF object files, import and anonymous object records
// and "ar" archive libraries.
//
// COFF objects carry no signature, so files are classified by trying the
// object check, the import/anonymous object check and the archive check in
// that order. Archive members are decoded through windows of the archive
// view with the same builders used for standalone files.
package coff

import (
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

const filterStrings = "COFF library files (*.lib;*.exp;*.a)|*.lib;*.exp;*.a|" +
	"COFF object files (*.obj;*.cof;*.o)|*.obj;*.cof;*.o|"

// Module recognizes COFF files.
type Module struct {
	opts Options
}

// NewModule creates the COFF module.
func NewModule(opts Options) *Module {
	return &Module{opts: opts}
}

func (m *Module) DisplayName() string { return "COFF module" }

func (m *Module) Icon() document.ModuleIcon { return document.ModuleIconDevelopment }

func (m *Module) FilterStrings() string { return filterStrings }

// IsApplicable accepts objects, import/anonymous objects and archives.
func (m *Module) IsApplicable(f *view.File) bool {
	return Classify(f) != KindUnknown
}

func (m *Module) OpenReader(f *view.File) document.Reader {
	return NewReader(f, m.opts)
}

// Schemas lists the record layouts for schema listings.
func (m *Module) Schemas() []*schema.Struct { return Schemas() }

// Package pe reads MS-DOS MZ and portable executable headers. The COFF
// file header of an image is decoded by the coff package.
package pe

import (
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/modules/coff"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

const filterStrings = "PE files (*.exe;*.dll;*.ocx;*.sys;*.ovl)|*.exe;*.dll;*.ocx;*.sys;*.ovl|"

// Module recognizes MZ executables.
type Module struct {
	opts coff.Options
}

// NewModule creates the PE module. opts configures the image COFF header.
func NewModule(opts coff.Options) *Module {
	return &Module{opts: opts}
}

func (m *Module) DisplayName() string { return "PE binary module" }

func (m *Module) Icon() document.ModuleIcon { return document.ModuleIconDevelopment }

func (m *Module) FilterStrings() string { return filterStrings }

func (m *Module) IsApplicable(f *view.File) bool { return IsExecutable(f) }

func (m *Module) OpenReader(f *view.File) document.Reader {
	return NewReader(f, m.opts)
}

func (m *Module) Schemas() []*schema.Struct { return Schemas() }

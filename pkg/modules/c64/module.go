// Package c64 lists the directory and block availability map of
// Commodore disk images (D64, D71 and D81), recognized by file size.
package c64

import (
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// Module recognizes C64 disk images.
type Module struct{}

// NewModule creates the disk image module.
func NewModule() *Module { return &Module{} }

func (m *Module) DisplayName() string { return "C64 disk image module" }

func (m *Module) Icon() document.ModuleIcon { return document.ModuleIconMisc }

func (m *Module) FilterStrings() string {
	return "C64 disk image files (*.d64, *.d71; *.d81)|*.d64;*.d71;*.d81|"
}

func (m *Module) IsApplicable(f *view.File) bool { return IsDiskImage(f) }

func (m *Module) OpenReader(f *view.File) document.Reader { return NewReader(f) }

func (m *Module) Schemas() []*schema.Struct { return Schemas() }

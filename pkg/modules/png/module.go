// Package png walks the chunk list of PNG images.
package png

import (
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// Module recognizes PNG images.
type Module struct{}

// NewModule creates the PNG module.
func NewModule() *Module { return &Module{} }

func (m *Module) DisplayName() string { return "PNG image module" }

func (m *Module) Icon() document.ModuleIcon { return document.ModuleIconImage }

func (m *Module) FilterStrings() string { return "PNG Images (*.png)|*.png|" }

func (m *Module) IsApplicable(f *view.File) bool { return IsImage(f) }

func (m *Module) OpenReader(f *view.File) document.Reader { return NewReader(f) }

func (m *Module) Schemas() []*schema.Struct { return Schemas() }

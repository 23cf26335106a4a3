// Package sid decodes the header of Commodore 64 SID tunes.
package sid

import (
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// Module recognizes PSID and RSID files.
type Module struct{}

// NewModule creates the SID module.
func NewModule() *Module { return &Module{} }

func (m *Module) DisplayName() string { return "SID C64 audio module" }

func (m *Module) Icon() document.ModuleIcon { return document.ModuleIconAudio }

func (m *Module) FilterStrings() string { return "SID files (*.sid, *.psid)|*.sid;*.psid|" }

func (m *Module) IsApplicable(f *view.File) bool { return IsSID(f) }

func (m *Module) OpenReader(f *view.File) document.Reader { return NewReader(f) }

func (m *Module) Schemas() []*schema.Struct { return Schemas() }

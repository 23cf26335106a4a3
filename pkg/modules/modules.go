// Package modules assembles the built-in format modules.
package modules

import (
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/modules/c64"
	"github.com/vividos/ProgrammersGlasses/pkg/modules/coff"
	"github.com/vividos/ProgrammersGlasses/pkg/modules/elf"
	"github.com/vividos/ProgrammersGlasses/pkg/modules/pe"
	"github.com/vividos/ProgrammersGlasses/pkg/modules/png"
	"github.com/vividos/ProgrammersGlasses/pkg/modules/sid"
	"github.com/vividos/ProgrammersGlasses/pkg/registry"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
)

// Default returns every built-in module in dispatch order.
func Default(opts coff.Options) []document.Module {
	return []document.Module{
		coff.NewModule(opts),
		elf.NewModule(),
		png.NewModule(),
		sid.NewModule(),
		pe.NewModule(opts),
		c64.NewModule(),
	}
}

// NewRegistry returns a registry holding the default modules.
func NewRegistry(opts coff.Options) *registry.Registry {
	return registry.New(Default(opts)...)
}

// Schemas collects the record layouts of all modules that expose them,
// keyed by schema name.
func Schemas(mods []document.Module) map[string]*schema.Struct {
	out := make(map[string]*schema.Struct)
	for _, m := range mods {
		p, ok := m.(document.SchemaProvider)
		if !ok {
			continue
		}
		for _, s := range p.Schemas() {
			out[s.Name()] = s
		}
	}
	return out
}

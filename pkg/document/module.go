package document

import (
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// Reader builds the node tree for one file. A Reader is used once and by
// one caller at a time.
type Reader interface {
	// Load builds the tree. Problems with the file content are reported as
	// "Error: ..." and "Warning: ..." text inside the tree; a returned error
	// means the reader itself could not run. Calling Load again is a no-op.
	Load() error
	// RootNode returns the tree built by Load, or nil before Load.
	RootNode() *Node
	// Cleanup releases resources acquired beyond the byte view.
	Cleanup() error
}

// ModuleIcon is the category a module shows in listings.
type ModuleIcon int

const (
	ModuleIconDevelopment ModuleIcon = iota
	ModuleIconImage
	ModuleIconAudio
	ModuleIconMisc
)

func (i ModuleIcon) String() string {
	switch i {
	case ModuleIconDevelopment:
		return "development"
	case ModuleIconImage:
		return "image"
	case ModuleIconAudio:
		return "audio"
	}
	return "misc"
}

// Module recognizes one file format. Modules are stateless.
type Module interface {
	DisplayName() string
	Icon() ModuleIcon
	// FilterStrings returns "<description> (<pat>;<pat>)|<pat>;<pat>|"
	// pairs. The registry appends the terminating "|".
	FilterStrings() string
	// IsApplicable confirms the format by content. It must be cheap and
	// must not keep references to file.
	IsApplicable(file *view.File) bool
	// OpenReader returns a reader bound to file. It returns nil when the
	// module recognizes the format but has no reader for it.
	OpenReader(file *view.File) Reader
}

// SchemaProvider is implemented by modules that expose their record layouts.
type SchemaProvider interface {
	Schemas() []*schema.Struct
}

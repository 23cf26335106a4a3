// Package registry holds the known format modules and dispatches files to
// the first module whose filter and content check both accept them.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vividos/ProgrammersGlasses/internal/logger"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

var (
	// ErrNoModule is returned when no module accepts a file.
	ErrNoModule = errors.New("registry: no suitable module found")
	// ErrNoReader is returned when the accepting module produces no reader.
	ErrNoReader = errors.New("registry: module could not initialize a reader")
)

// Registry is an ordered list of modules. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules []document.Module
}

// New creates a registry holding modules in dispatch order.
func New(modules ...document.Module) *Registry {
	return &Registry{modules: append([]document.Module(nil), modules...)}
}

// Register appends m to the dispatch order.
func (r *Registry) Register(m document.Module) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules = append(r.modules, m)
}

// Modules returns the registered modules in dispatch order.
func (r *Registry) Modules() []document.Module {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]document.Module(nil), r.modules...)
}

// FilterStrings concatenates the filter strings of all modules and adds
// the terminating '|'.
func (r *Registry) FilterStrings() string {
	var sb strings.Builder
	for _, m := range r.Modules() {
		sb.WriteString(m.FilterStrings())
	}
	sb.WriteByte('|')
	return sb.String()
}

// IsAvailable reports whether any module's filter matches the extension of
// filename. The content is not checked.
func (r *Registry) IsAvailable(filename string) bool {
	ext := filepath.Ext(filename)
	for _, m := range r.Modules() {
		if MatchesExtension(m.FilterStrings(), ext) {
			return true
		}
	}
	return false
}

// Find returns the first module whose filter matches the extension of
// file's name and whose content check accepts file.
func (r *Registry) Find(file *view.File) (document.Module, bool) {
	ext := filepath.Ext(file.Name())
	for _, m := range r.Modules() {
		if !MatchesExtension(m.FilterStrings(), ext) {
			continue
		}
		if m.IsApplicable(file) {
			logger.Debug("module selected", "file", file.Name(), "module", m.DisplayName())
			return m, true
		}
		logger.Debug("module rejected content", "file", file.Name(), "module", m.DisplayName())
	}
	return nil, false
}

// Open maps filename and dispatches it. The returned document owns the file
// and must be closed.
func (r *Registry) Open(filename string) (*Document, error) {
	f, err := view.Open(filename)
	if err != nil {
		return nil, err
	}
	doc, err := r.OpenFile(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return doc, nil
}

// OpenFile dispatches an already opened view. On success the document
// takes ownership of f.
func (r *Registry) OpenFile(f *view.File) (*Document, error) {
	m, ok := r.Find(f)
	if !ok {
		return nil, fmt.Errorf("%s: %w", f.Name(), ErrNoModule)
	}
	reader := m.OpenReader(f)
	if reader == nil {
		logger.Warn("module has no reader", "file", f.Name(), "module", m.DisplayName())
		return nil, fmt.Errorf("%s: %s: %w", f.Name(), m.DisplayName(), ErrNoReader)
	}
	return &Document{File: f, Reader: reader, Module: m}, nil
}

// ParseFilters splits a filter string into description and pattern list
// pairs. An odd trailing entry is ignored.
func ParseFilters(filter string) [][2]string {
	parts := strings.Split(filter, "|")
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	var pairs [][2]string
	for i := 0; i+1 < len(nonEmpty); i += 2 {
		pairs = append(pairs, [2]string{nonEmpty[i], nonEmpty[i+1]})
	}
	return pairs
}

// MatchesExtension reports whether ext (including the dot) matches one of
// the patterns in filter, ignoring case. Leading '*' of a pattern is dropped.
func MatchesExtension(filter, ext string) bool {
	if ext == "" {
		return false
	}
	for _, pair := range ParseFilters(filter) {
		for _, pattern := range strings.Split(pair[1], ";") {
			if strings.EqualFold(strings.TrimLeft(pattern, "*"), ext) {
				return true
			}
		}
	}
	return false
}

// Package printer renders document trees as indented text, JSON or YAML.
package printer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vividos/ProgrammersGlasses/pkg/document"
)

const (
	DefaultIndentSize = 2
	DefaultMaxDepth   = 0
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs indented human-readable text.
	FormatText Format = "text"

	// FormatJSON outputs one JSON object per tree.
	FormatJSON Format = "json"

	// FormatYAML outputs one YAML document per tree.
	FormatYAML Format = "yaml"
)

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatYAML:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
}

// Options controls printing behavior.
type Options struct {
	// Format specifies output format.
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per tree level (text format only).
	// Default: 2
	IndentSize int

	// MaxDepth limits recursion depth; the root is depth 1 (0 = unlimited).
	// Default: 0
	MaxDepth int

	// NamesOnly prints node names without their content.
	// Default: false
	NamesOnly bool

	// ShowIcons adds the icon category after each node name (text format only).
	// Default: false
	ShowIcons bool

	// Color styles node names with ANSI colors (text format only).
	// Default: false
	Color bool
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:     FormatText,
		IndentSize: DefaultIndentSize,
		MaxDepth:   DefaultMaxDepth,
	}
}

var (
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Printer writes document trees to a writer.
type Printer struct {
	opts   Options
	writer io.Writer
}

// New creates a new Printer.
//
// Example:
//
//	p := printer.New(os.Stdout, printer.DefaultOptions())
//	p.PrintTree(doc.Root())
func New(w io.Writer, opts Options) *Printer {
	if opts.IndentSize <= 0 {
		opts.IndentSize = DefaultIndentSize
	}
	return &Printer{writer: w, opts: opts}
}

// PrintTree prints root and its descendants.
func (p *Printer) PrintTree(root *document.Node) error {
	if root == nil {
		return fmt.Errorf("printer: nil tree")
	}
	switch p.opts.Format {
	case FormatJSON:
		return p.printTreeJSON(root)
	case FormatYAML:
		return p.printTreeYAML(root)
	default:
		return p.printTreeText(root)
	}
}

// within reports whether nodes at depth (root = 1) are printed.
func (p *Printer) within(depth int) bool {
	return p.opts.MaxDepth <= 0 || depth <= p.opts.MaxDepth
}

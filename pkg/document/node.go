// Package document defines the node tree produced by format readers and the
// Reader and Module contracts every format implements.
package document

import (
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
)

// Icon is the display category of a node.
type Icon int

const (
	IconDocument Icon = iota
	IconLibrary
	IconBinary
	IconItem
	IconObject
	IconTable
)

func (i Icon) String() string {
	switch i {
	case IconDocument:
		return "document"
	case IconLibrary:
		return "library"
	case IconBinary:
		return "binary"
	case IconItem:
		return "item"
	case IconObject:
		return "object"
	case IconTable:
		return "table"
	}
	return "unknown"
}

// Content is the view attached to a node. It is one of *TextContent,
// *StructContent or *TableContent.
type Content interface {
	isContent()
}

// TextContent is a block of multi-line text.
type TextContent struct {
	Text string
}

// StructContent decodes one record with a structure definition.
type StructContent struct {
	Definition *schema.Struct
	Source     schema.Source
	Offset     int
}

// Rows decodes the record.
func (c *StructContent) Rows() []schema.Row {
	return c.Definition.Rows(c.Source, c.Offset)
}

// TableContent is a list of rows with named columns.
type TableContent struct {
	Columns  []string
	Rows     [][]string
	Sortable bool
}

// AddRow appends a row; missing cells are padded with empty strings.
func (c *TableContent) AddRow(cells ...string) {
	if len(cells) < len(c.Columns) {
		cells = append(cells, make([]string, len(c.Columns)-len(cells))...)
	}
	c.Rows = append(c.Rows, cells)
}

func (*TextContent) isContent() {}
func (*StructContent) isContent() {}
func (*TableContent) isContent() {}

// Node is one entry of the document tree. A node owns its children; there
// are no parent links.
type Node struct {
	Name     string
	Icon     Icon
	children []*Node
	content  func() Content
}

// NewNode creates a node whose content is produced on demand by fn.
// fn may be nil for nodes without content.
func NewNode(name string, icon Icon, fn func() Content) *Node {
	return &Node{Name: name, Icon: icon, content: fn}
}

// NewTextNode creates a node showing text.
func NewTextNode(name string, icon Icon, text string) *Node {
	n := &Node{Name: name, Icon: icon}
	n.SetText(text)
	return n
}

// NewStructNode creates a node decoding the record at off in src.
func NewStructNode(name string, icon Icon, def *schema.Struct, src schema.Source, off int) *Node {
	return NewNode(name, icon, func() Content {
		return &StructContent{Definition: def, Source: src, Offset: off}
	})
}

// NewTableNode creates a node showing table. The table may keep growing
// until the tree is handed out.
func NewTableNode(name string, icon Icon, table *TableContent) *Node {
	return NewNode(name, icon, func() Content { return table })
}

// AddChild appends child and returns it.
func (n *Node) AddChild(child *Node) *Node {
	n.children = append(n.children, child)
	return child
}

// Children returns the child list. Callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// Content builds the node's content view, or returns nil.
func (n *Node) Content() Content {
	if n.content == nil {
		return nil
	}
	return n.content()
}

// SetText replaces the content with text.
func (n *Node) SetText(text string) {
	c := &TextContent{Text: text}
	n.content = func() Content { return c }
}

// Text returns the node's text content, or "" for other content kinds.
func (n *Node) Text() string {
	if c, ok := n.Content().(*TextContent); ok {
		return c.Text
	}
	return ""
}

// Child returns the first direct child called name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

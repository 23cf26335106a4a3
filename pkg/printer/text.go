package printer

import (
	"fmt"
	"strings"

	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
)

func (p *Printer) printTreeText(root *document.Node) error {
	return p.printNodeText(root, 1)
}

func (p *Printer) printNodeText(n *document.Node, depth int) error {
	if !p.within(depth) {
		return nil
	}
	indent := strings.Repeat(" ", (depth-1)*p.opts.IndentSize)

	name := "[" + n.Name + "]"
	if p.opts.Color {
		name = nameStyle.Render(name)
	}
	if p.opts.ShowIcons {
		name += " (" + n.Icon.String() + ")"
	}
	if _, err := fmt.Fprintf(p.writer, "%s%s\n", indent, name); err != nil {
		return err
	}

	if !p.opts.NamesOnly {
		inner := indent + strings.Repeat(" ", p.opts.IndentSize)
		if err := p.printContentText(n.Content(), inner); err != nil {
			return err
		}
	}

	for _, c := range n.Children() {
		if err := p.printNodeText(c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (p *Printer) printContentText(c document.Content, indent string) error {
	var sb strings.Builder
	switch c := c.(type) {
	case *document.TextContent:
		for _, line := range strings.Split(strings.TrimRight(c.Text, "\n"), "\n") {
			if line == "" {
				sb.WriteString("\n")
				continue
			}
			sb.WriteString(indent + p.styleLine(line) + "\n")
		}
	case *document.StructContent:
		for _, row := range c.Rows() {
			sb.WriteString(indent + formatRow(row) + "\n")
		}
	case *document.TableContent:
		sb.WriteString(indent + strings.Join(c.Columns, " | ") + "\n")
		for _, row := range c.Rows {
			sb.WriteString(indent + strings.Join(row, " | ") + "\n")
		}
	}
	_, err := p.writer.Write([]byte(sb.String()))
	return err
}

func (p *Printer) styleLine(line string) string {
	if !p.opts.Color {
		return line
	}
	switch {
	case strings.HasPrefix(line, "Error:"):
		return errorStyle.Render(line)
	case strings.HasPrefix(line, "Warning:"):
		return warningStyle.Render(line)
	}
	return line
}

// formatRow renders "0xOFFSET LEN  Description = Value [raw]".
func formatRow(row schema.Row) string {
	s := fmt.Sprintf("0x%08x %4d  %s = %s", row.Offset, row.Length, row.Description, row.Value)
	if row.Raw != "" {
		s += " [" + row.Raw + "]"
	}
	return s
}

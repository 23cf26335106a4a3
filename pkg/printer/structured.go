package printer

import (
	"encoding/json"
	"fmt"

	"github.com/Velocidex/ordereddict"
	"github.com/Velocidex/yaml"

	"github.com/vividos/ProgrammersGlasses/pkg/document"
)

// ToDict converts the tree below n into ordered dictionaries with the keys
// name, icon, then text, rows or table, then children.
func (p *Printer) ToDict(n *document.Node) *ordereddict.Dict {
	return p.toDict(n, 1)
}

func (p *Printer) toDict(n *document.Node, depth int) *ordereddict.Dict {
	d := ordereddict.NewDict().
		Set("name", n.Name).
		Set("icon", n.Icon.String())

	if !p.opts.NamesOnly {
		switch c := n.Content().(type) {
		case *document.TextContent:
			d.Set("text", c.Text)
		case *document.StructContent:
			rows := []*ordereddict.Dict{}
			for _, row := range c.Rows() {
				rows = append(rows, ordereddict.NewDict().
					Set("offset", row.Offset).
					Set("length", row.Length).
					Set("description", row.Description).
					Set("value", row.Value).
					Set("raw", row.Raw))
			}
			d.Set("structure", c.Definition.Name())
			d.Set("rows", rows)
		case *document.TableContent:
			rows := c.Rows
			if rows == nil {
				rows = [][]string{}
			}
			d.Set("table", ordereddict.NewDict().
				Set("columns", c.Columns).
				Set("rows", rows))
		}
	}

	if p.within(depth+1) && len(n.Children()) > 0 {
		children := []*ordereddict.Dict{}
		for _, c := range n.Children() {
			children = append(children, p.toDict(c, depth+1))
		}
		d.Set("children", children)
	}
	return d
}

func (p *Printer) printTreeJSON(root *document.Node) error {
	data, err := json.MarshalIndent(p.ToDict(root), "", "  ")
	if err != nil {
		return fmt.Errorf("printer: marshal json: %w", err)
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

// toMapSlice converts ordered dictionaries recursively so the YAML encoder
// keeps key order.
func toMapSlice(v interface{}) interface{} {
	switch v := v.(type) {
	case *ordereddict.Dict:
		out := yaml.MapSlice{}
		for _, k := range v.Keys() {
			item, _ := v.Get(k)
			out = append(out, yaml.MapItem{Key: k, Value: toMapSlice(item)})
		}
		return out
	case []*ordereddict.Dict:
		out := make([]interface{}, 0, len(v))
		for _, item := range v {
			out = append(out, toMapSlice(item))
		}
		return out
	}
	return v
}

func (p *Printer) printTreeYAML(root *document.Node) error {
	data, err := yaml.Marshal(toMapSlice(p.ToDict(root)))
	if err != nil {
		return fmt.Errorf("printer: marshal yaml: %w", err)
	}
	_, err = fmt.Fprintf(p.writer, "---\n%s", data)
	return err
}

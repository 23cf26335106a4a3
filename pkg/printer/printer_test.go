package printer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sebdah/goldie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

var testHeader = schema.MustStruct("test_header",
	schema.Uint(0, 2, "Magic"),
	schema.Text(2, 4, 1, "Name"),
	schema.Uint(8, 4, "Beyond"),
)

func sampleTree() *document.Node {
	src := view.FromBytes("a.bin", []byte{0x4d, 0x5a, 'a', 'b', 'c', 'd'})
	root := document.NewTextNode("Summary", document.IconDocument, "File: a.bin\n\nWarning: odd\n")
	header := root.AddChild(document.NewStructNode("Header", document.IconBinary, testHeader, src, 0))
	header.AddChild(document.NewTextNode("Note", document.IconItem, "nested"))
	table := &document.TableContent{Columns: []string{"Index", "Type"}}
	table.AddRow("0", "IHDR")
	table.AddRow("1", "IEND")
	root.AddChild(document.NewTableNode("Chunks", document.IconTable, table))
	return root
}

func render(t *testing.T, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, New(&buf, opts).PrintTree(sampleTree()))
	return buf.String()
}

func TestPrintTreeText(t *testing.T) {
	goldie.Assert(t, "TestPrintTreeText", []byte(render(t, DefaultOptions())))
}

func TestPrintTreeNamesOnly(t *testing.T) {
	opts := DefaultOptions()
	opts.NamesOnly = true
	opts.ShowIcons = true
	goldie.Assert(t, "TestPrintTreeNamesOnly", []byte(render(t, opts)))
}

func TestPrintTreeDepth(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 2
	out := render(t, opts)
	assert.Contains(t, out, "  [Header]\n")
	assert.NotContains(t, out, "[Note]")

	opts.MaxDepth = 1
	opts.IndentSize = 4
	out = render(t, opts)
	assert.Equal(t, "[Summary]\n    File: a.bin\n\n    Warning: odd\n", out)
}

func TestPrintTreeJSON(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatJSON
	out := render(t, opts)

	var tree struct {
		Name     string `json:"name"`
		Icon     string `json:"icon"`
		Text     string `json:"text"`
		Children []struct {
			Name      string `json:"name"`
			Structure string `json:"structure"`
			Rows      []struct {
				Offset      int    `json:"offset"`
				Length      int    `json:"length"`
				Description string `json:"description"`
				Value       string `json:"value"`
				Raw         string `json:"raw"`
			} `json:"rows"`
			Table *struct {
				Columns []string   `json:"columns"`
				Rows    [][]string `json:"rows"`
			} `json:"table"`
			Children []struct {
				Name string `json:"name"`
				Text string `json:"text"`
			} `json:"children"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &tree))

	assert.Equal(t, "Summary", tree.Name)
	assert.Equal(t, "document", tree.Icon)
	assert.Equal(t, "File: a.bin\n\nWarning: odd\n", tree.Text)
	require.Len(t, tree.Children, 2)

	header := tree.Children[0]
	assert.Equal(t, "test_header", header.Structure)
	require.Len(t, header.Rows, 3)
	assert.Equal(t, "abcd", header.Rows[1].Value)
	assert.Equal(t, "61 62 63 64", header.Rows[1].Raw)
	assert.Equal(t, schema.OutsideFile, header.Rows[2].Value)
	assert.Equal(t, "nested", header.Children[0].Text)

	table := tree.Children[1].Table
	require.NotNil(t, table)
	assert.Equal(t, []string{"Index", "Type"}, table.Columns)
	assert.Equal(t, [][]string{{"0", "IHDR"}, {"1", "IEND"}}, table.Rows)

	// keys keep insertion order
	name := strings.Index(out, `"name"`)
	icon := strings.Index(out, `"icon"`)
	text := strings.Index(out, `"text"`)
	children := strings.Index(out, `"children"`)
	assert.True(t, name < icon && icon < text && text < children)
}

func TestPrintTreeYAML(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = FormatYAML
	out := render(t, opts)

	assert.True(t, strings.HasPrefix(out, "---\nname: Summary\nicon: document\n"))
	assert.Contains(t, out, "structure: test_header")
	assert.Contains(t, out, "description: Magic")
	assert.Contains(t, out, "- name: Chunks")
	assert.Less(t, strings.Index(out, "name: Header"), strings.Index(out, "name: Chunks"))
}

func TestPrintTreeColor(t *testing.T) {
	opts := DefaultOptions()
	opts.Color = true
	out := render(t, opts)
	assert.Contains(t, out, "[Summary]")
	assert.Contains(t, out, "Warning: odd")
}

func TestPrintTreeNil(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, New(&buf, DefaultOptions()).PrintTree(nil))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

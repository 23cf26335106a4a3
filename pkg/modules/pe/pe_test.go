package pe

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividos/ProgrammersGlasses/internal/testutil"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/modules/coff"
	"github.com/vividos/ProgrammersGlasses/pkg/registry"
	"github.com/vividos/ProgrammersGlasses/pkg/symbols"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

func testOptions() coff.Options {
	return coff.Options{Resolver: symbols.New(symbols.DefaultOptions())}
}

func load(t *testing.T, name string, data []byte) *document.Node {
	t.Helper()
	r := NewReader(view.FromBytes(name, data), testOptions())
	require.NoError(t, r.Load())
	require.NotNil(t, r.RootNode())
	return r.RootNode()
}

func names(n *document.Node) []string {
	var out []string
	for _, c := range n.Children() {
		out = append(out, c.Name)
	}
	return out
}

func TestIsExecutable(t *testing.T) {
	assert.True(t, IsExecutable(view.FromBytes("a.exe", testutil.DOSExecutable())))
	assert.False(t, IsExecutable(view.FromBytes("a.exe", []byte("M"))))
	assert.False(t, IsExecutable(view.FromBytes("a.exe", []byte("ZM"))))
}

func TestLoadImage(t *testing.T) {
	image := testutil.Object{Machine: 0x8664, Characteristics: 0x0022, Sections: []testutil.Section{{Name: ".text"}}}.Bytes()
	root := load(t, "app.exe", testutil.Executable(0x80, image))

	assert.Equal(t, "Summary", root.Name)
	assert.Equal(t, []string{"MZ header", "PE signature", "COFF Summary"}, names(root))
	assert.Equal(t, "PE file: app.exe\n\nSummary:\n"+
		"PE signature at offset 0x00000080\n"+
		"Architecture: IMAGE_FILE_MACHINE_AMD64 (x64)\n"+
		"Number of sections: 1\n"+
		"Creation date/time: 1970-01-01 00:00:00\n", root.Text())

	object := root.Child("COFF Summary")
	assert.Contains(t, object.Text(), "COFF file: app.exe at offset 0x00000084\n")
	assert.Contains(t, object.Child("Section Table").Text(), "Section 1: .text")

	mz := root.Child("MZ header").Content().(*document.StructContent).Rows()
	require.Len(t, mz, 19)
	assert.Equal(t, "MZ", mz[0].Value)
	assert.Equal(t, "00000080", mz[18].Raw)

	sig := root.Child("PE signature").Content().(*document.StructContent).Rows()
	assert.Equal(t, 0x80, sig[0].Offset)
	assert.Equal(t, "50 45 00 00", sig[0].Raw)
}

func TestLoadImageOptionalHeader(t *testing.T) {
	image := testutil.Object{Machine: 0x14c, OptionalHeaderSize: 0xe0}.Bytes()
	binary.LittleEndian.PutUint16(image[coff.HeaderSize:], 0x10b)
	root := load(t, "app.dll", testutil.Executable(0x40, image))

	assert.Contains(t, root.Text(), "Optional header: PE32 (0x010b)\n")
}

func TestLoadImageDeprecatedSymbols(t *testing.T) {
	image := testutil.Object{Machine: 0x14c, SymbolTableOffset: 0x1000, NumberOfSymbols: 1}.Bytes()
	root := load(t, "app.exe", testutil.Executable(0x40, image))

	object := root.Child("COFF Summary")
	assert.Contains(t, object.Text(), "Warning: COFF symbol table for images is deprecated\n")
	assert.Contains(t, object.Text(), "Error: COFF symbol table offset is outside of the file size!\n")
}

func TestLoadDOSOnly(t *testing.T) {
	root := load(t, "dos.exe", testutil.DOSExecutable())

	assert.Equal(t, []string{"MZ header"}, names(root))
	assert.Contains(t, root.Text(), "DOS executable, no PE signature at offset 0x00000040\n")
}

func TestLoadBrokenHeaders(t *testing.T) {
	t.Run("truncated MZ header", func(t *testing.T) {
		root := load(t, "x.exe", []byte("MZ\x90\x00"))
		assert.Contains(t, root.Text(), "Warning: MZ header is truncated\n")
		rows := root.Child("MZ header").Content().(*document.StructContent).Rows()
		assert.Equal(t, "Error: field is outside of the file size", rows[18].Value)
	})

	t.Run("offset outside", func(t *testing.T) {
		data := testutil.DOSExecutable()
		binary.LittleEndian.PutUint32(data[0x3C:], 0x10000)
		root := load(t, "x.exe", data)
		assert.Contains(t, root.Text(), "Error: PE header offset 0x00010000 is outside of the file size!\n")
	})

	t.Run("coff header cut", func(t *testing.T) {
		data := testutil.Executable(0x40, []byte{0x4c, 0x01})
		root := load(t, "x.exe", data)
		assert.Contains(t, root.Text(), "Warning: COFF header is truncated\n")
		assert.Contains(t, root.Child("COFF Summary").Text(), "Error: COFF header is outside of the file size!")
	})
}

func TestModule(t *testing.T) {
	m := NewModule(testOptions())
	assert.Equal(t, "PE binary module", m.DisplayName())
	assert.True(t, registry.MatchesExtension(m.FilterStrings(), ".dll"))
	assert.True(t, registry.MatchesExtension(m.FilterStrings(), ".EXE"))
	assert.Len(t, m.Schemas(), 2)

	path := testutil.WriteFile(t, "tool.exe", testutil.Executable(0x40, testutil.Object{Machine: 0x14c}.Bytes()))
	doc, err := registry.New(m).Open(path)
	require.NoError(t, err)
	defer doc.Close()
	require.NoError(t, doc.Load())
	assert.NotNil(t, doc.Root().Child("COFF Summary"))
}

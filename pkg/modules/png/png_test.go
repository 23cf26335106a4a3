package png

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vividos/ProgrammersGlasses/internal/testutil"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/registry"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

func load(t *testing.T, data []byte) (*Reader, *document.Node) {
	t.Helper()
	r := NewReader(view.FromBytes("image.png", data))
	require.NoError(t, r.Load())
	require.NotNil(t, r.RootNode())
	return r, r.RootNode()
}

func names(n *document.Node) []string {
	var out []string
	for _, c := range n.Children() {
		out = append(out, c.Name)
	}
	return out
}

func rows(n *document.Node) []string {
	var out []string
	for _, row := range n.Content().(*document.StructContent).Rows() {
		out = append(out, row.Value)
	}
	return out
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage(view.FromBytes("a.png", testutil.MinimalPNG())))
	assert.True(t, IsImage(view.FromBytes("a.png", []byte(testutil.PNGSignature))))
	assert.False(t, IsImage(view.FromBytes("a.png", []byte("\x89PNG"))))
	assert.False(t, IsImage(view.FromBytes("a.png", []byte("GIF89a\x00\x00"))))
}

func TestLoadMinimal(t *testing.T) {
	r, root := load(t, testutil.MinimalPNG())

	assert.Equal(t, "Summary", root.Name)
	assert.Equal(t, []string{
		"PNG header", "Chunk list",
		"PNG chunk: IHDR", "PNG image header",
		"PNG chunk: IDAT", "PNG chunk: IEND",
	}, names(root))
	assert.Equal(t, "PNG file: image.png\n\nSummary:\n"+
		"Image size: 1 x 1 (8 bit per channel)\n"+
		"Image type: True colour\n"+
		"Interlaced: no\n"+
		"Number of chunks: 3\n", root.Text())

	chunks := r.Chunks()
	require.Len(t, chunks, 3)
	assert.Equal(t, []int{8, 33, 45}, []int{chunks[0].Offset, chunks[1].Offset, chunks[2].Offset})
	for _, c := range chunks {
		assert.True(t, c.CRCValid, c.Type)
	}
	// Well-known CRC of the empty IEND chunk.
	assert.Equal(t, uint32(0xae426082), chunks[2].CRC)

	sig := root.Child("PNG header").Content().(*document.StructContent).Rows()
	assert.Equal(t, "89 50 4e 47 0d 0a 1a 0a", sig[0].Raw)

	header := root.Child("PNG chunk: IHDR").Content().(*document.StructContent).Rows()
	assert.Equal(t, 8, header[0].Offset)
	assert.Equal(t, "0000000d", header[0].Value)
	assert.Equal(t, "IHDR", header[1].Value)

	ihdr := root.Child("PNG image header")
	assert.Equal(t, 16, ihdr.Content().(*document.StructContent).Rows()[0].Offset)
	assert.Equal(t, []string{
		"00000001", "00000001", "08",
		"True colour", "deflate", "adaptive filtering", "no interlace",
	}, rows(ihdr))

	table := root.Child("Chunk list").Content().(*document.TableContent)
	assert.Equal(t, []string{"Index", "Type", "Offset", "Length", "CRC"}, table.Columns)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"2", "IEND", "0x0000002d", "0", "0xae426082"}, table.Rows[2])
}

func TestLoadIdempotent(t *testing.T) {
	r, root := load(t, testutil.MinimalPNG())
	require.NoError(t, r.Load())
	assert.Same(t, root, r.RootNode())
	assert.Len(t, r.Chunks(), 3)
}

func TestImageTypes(t *testing.T) {
	cases := []struct {
		colour, interlace byte
		typ, interlaced   string
	}{
		{0, 0, "Greyscale", "no"},
		{3, 1, "Indexed colour", "Adam7"},
		{4, 0, "Greyscale with alpha", "no"},
		{6, 1, "True color with alpha", "Adam7"},
		{5, 7, "invalid", "invalid"},
	}
	for _, tc := range cases {
		_, root := load(t, testutil.PNG(
			testutil.Chunk{Type: "IHDR", Data: testutil.IHDR(640, 480, 16, tc.colour, tc.interlace)},
			testutil.Chunk{Type: "IEND"},
		))
		assert.Contains(t, root.Text(), "Image size: 640 x 480 (16 bit per channel)\n")
		assert.Contains(t, root.Text(), "Image type: "+tc.typ+"\n")
		assert.Contains(t, root.Text(), "Interlaced: "+tc.interlaced+"\n")
	}
}

func TestGarbageAfterEnd(t *testing.T) {
	data := append(testutil.MinimalPNG(), 1, 2, 3, 4, 5)
	_, root := load(t, data)
	assert.Contains(t, root.Text(), "Warning: Garbage bytes at the end of the file (size: 00000005 bytes)\n")
}

func TestCRCMismatch(t *testing.T) {
	r, root := load(t, testutil.PNG(
		testutil.Chunk{Type: "IHDR", Data: testutil.IHDR(1, 1, 8, 0, 0)},
		testutil.Chunk{Type: "IDAT", Data: []byte{1, 2, 3}, BadCRC: true},
		testutil.Chunk{Type: "IEND"},
	))
	assert.Contains(t, root.Text(), "Warning: CRC mismatch in chunk IDAT at offset 0x00000021\n")
	assert.False(t, r.Chunks()[1].CRCValid)
	table := root.Child("Chunk list").Content().(*document.TableContent)
	assert.Contains(t, table.Rows[1][4], "(mismatch)")
}

func TestTruncatedChunk(t *testing.T) {
	idat := testutil.Chunk{Type: "IDAT", Data: make([]byte, 100)}.Bytes()
	data := append(testutil.PNG(testutil.Chunk{Type: "IHDR", Data: testutil.IHDR(1, 1, 8, 0, 0)}), idat[:50]...)
	r, root := load(t, data)

	assert.Contains(t, root.Text(), "Warning: Chunk IDAT at offset 0x00000021 is outside of the file size\n")
	assert.Contains(t, root.Text(), "Warning: No IEND chunk found\n")
	assert.Len(t, r.Chunks(), 2)
	assert.NotNil(t, root.Child("PNG chunk: IDAT"))
}

func TestShortImageHeader(t *testing.T) {
	_, root := load(t, testutil.PNG(
		testutil.Chunk{Type: "IHDR", Data: []byte{0, 0, 0, 1}},
		testutil.Chunk{Type: "IEND"},
	))
	assert.Contains(t, root.Text(), "Warning: IHDR chunk is too short\n")
	assert.Nil(t, root.Child("PNG image header"))
}

func TestSignatureOnly(t *testing.T) {
	_, root := load(t, []byte(testutil.PNGSignature))
	assert.Equal(t, "PNG file: image.png\n\nSummary:\n"+
		"Warning: No IEND chunk found\n"+
		"Number of chunks: 0\n", root.Text())
	assert.Equal(t, []string{"PNG header", "Chunk list"}, names(root))
}

func TestModule(t *testing.T) {
	m := NewModule()
	assert.Equal(t, "PNG image module", m.DisplayName())
	assert.Equal(t, document.ModuleIconImage, m.Icon())
	assert.True(t, registry.MatchesExtension(m.FilterStrings(), ".PNG"))
	assert.Len(t, m.Schemas(), 3)

	path := testutil.WriteFile(t, "pic.png", testutil.MinimalPNG())
	doc, err := registry.New(m).Open(path)
	require.NoError(t, err)
	defer doc.Close()
	require.NoError(t, doc.Load())
	assert.NotNil(t, doc.Root().Child("PNG image header"))

	other := testutil.WriteFile(t, "pic2.png", []byte("not a png"))
	_, err = registry.New(m).Open(other)
	assert.ErrorIs(t, err, registry.ErrNoModule)
}

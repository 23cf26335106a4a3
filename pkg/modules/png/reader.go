package png

import (
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"

	"github.com/vividos/ProgrammersGlasses/internal/buf"
	"github.com/vividos/ProgrammersGlasses/internal/logger"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// IsImage reports whether f starts with the PNG signature.
func IsImage(f *view.File) bool {
	b, ok := f.Bytes(0, SignatureSize)
	return ok && string(b) == Signature
}

// Chunk is one chunk found by the chunk walk.
type Chunk struct {
	Offset int
	Length uint32
	Type   string
	CRC    uint32
	// CRCValid is false when the stored CRC does not match or the chunk
	// data is cut off.
	CRCValid bool
}

var chunkColumns = []string{"Index", "Type", "Offset", "Length", "CRC"}

// Reader builds the tree of a PNG image.
type Reader struct {
	file   *view.File
	root   *document.Node
	chunks []Chunk
}

// NewReader returns a reader bound to f.
func NewReader(f *view.File) *Reader {
	return &Reader{file: f}
}

// Chunks returns the chunks found by Load.
func (r *Reader) Chunks() []Chunk { return r.chunks }

// Load walks the chunk list. Calling it again is a no-op.
func (r *Reader) Load() error {
	if r.root != nil {
		return nil
	}
	f := r.file
	root := document.NewNode("Summary", document.IconDocument, nil)
	var sb strings.Builder
	sb.WriteString("PNG file: " + f.BaseName() + "\n\n")
	sb.WriteString("Summary:\n")

	root.AddChild(document.NewStructNode("PNG header", document.IconBinary, SignatureSchema, f, 0))
	table := &document.TableContent{Columns: chunkColumns, Sortable: true}
	root.AddChild(document.NewTableNode("Chunk list", document.IconTable, table))

	seenEnd := false
	off := SignatureSize
	for f.IsValidRange(off, ChunkHeaderSize+ChunkCRCSize) {
		length, _ := f.U32BE(off + chunkLengthOffset)
		typeBytes, _ := f.Bytes(off+chunkTypeOffset, chunkTypeLen)
		c := Chunk{Offset: off, Length: length, Type: string(typeBytes)}

		root.AddChild(document.NewStructNode("PNG chunk: "+c.Type, document.IconBinary, ChunkHeaderSchema, f, off))

		dataOffset := off + ChunkHeaderSize
		end, ok := buf.AddOverflowSafe(dataOffset, int(length))
		if !ok || !f.IsValidRange(end, ChunkCRCSize) {
			logger.Warn("png chunk cut off", "file", f.Name(), "type", c.Type, "offset", off, "length", length)
			fmt.Fprintf(&sb, "Warning: Chunk %s at offset 0x%08x is outside of the file size\n", c.Type, off)
			r.addChunk(table, c, "invalid")
			break
		}

		c.CRC, _ = f.U32BE(end)
		covered, _ := f.Bytes(off+chunkTypeOffset, chunkTypeLen+int(length))
		c.CRCValid = crc32.ChecksumIEEE(covered) == c.CRC
		crcText := fmt.Sprintf("0x%08x", c.CRC)
		if !c.CRCValid {
			crcText += " (mismatch)"
			fmt.Fprintf(&sb, "Warning: CRC mismatch in chunk %s at offset 0x%08x\n", c.Type, off)
		}
		r.addChunk(table, c, crcText)

		if c.Type == "IHDR" {
			r.addImageHeader(root, &sb, dataOffset, int(length))
		}

		off = end + ChunkCRCSize
		if c.Type == "IEND" {
			seenEnd = true
			if f.IsValidOffset(off) {
				fmt.Fprintf(&sb, "Warning: Garbage bytes at the end of the file (size: %08x bytes)\n", f.Size()-off)
			}
			break
		}
	}

	if !seenEnd {
		sb.WriteString("Warning: No IEND chunk found\n")
	}
	fmt.Fprintf(&sb, "Number of chunks: %d\n", len(r.chunks))

	root.SetText(sb.String())
	r.root = root
	return nil
}

func (r *Reader) addChunk(table *document.TableContent, c Chunk, crcText string) {
	table.AddRow(strconv.Itoa(len(r.chunks)), c.Type, fmt.Sprintf("0x%08x", c.Offset), strconv.FormatUint(uint64(c.Length), 10), crcText)
	r.chunks = append(r.chunks, c)
}

func (r *Reader) addImageHeader(root *document.Node, sb *strings.Builder, off, length int) {
	f := r.file
	if length < ImageHeaderSize {
		sb.WriteString("Warning: IHDR chunk is too short\n")
		return
	}
	width, _ := f.U32BE(off + ihdrWidthOffset)
	height, _ := f.U32BE(off + ihdrHeightOffset)
	depth, _ := f.U8(off + ihdrBitDepthOffset)
	colour, _ := f.U8(off + ihdrColourOffset)
	interlace, _ := f.U8(off + ihdrInterlaceOffset)

	fmt.Fprintf(sb, "Image size: %d x %d (%d bit per channel)\n", width, height, depth)
	colourText, ok := colourTypes[uint32(colour)]
	if !ok {
		colourText = "invalid"
	}
	fmt.Fprintf(sb, "Image type: %s\n", colourText)
	interlaceText := "invalid"
	switch interlace {
	case 0:
		interlaceText = "no"
	case 1:
		interlaceText = "Adam7"
	}
	fmt.Fprintf(sb, "Interlaced: %s\n", interlaceText)

	root.AddChild(document.NewStructNode("PNG image header", document.IconBinary, ImageHeaderSchema, f, off))
}

// RootNode returns the tree built by Load.
func (r *Reader) RootNode() *document.Node { return r.root }

// Cleanup has nothing to release.
func (r *Reader) Cleanup() error { return nil }

package testutil

import (
	"encoding/binary"
	"hash/crc32"
)

// PNGSignature is the 8-byte PNG file signature.
const PNGSignature = "\x89PNG\r\n\x1a\n"

// Chunk is one PNG chunk. The CRC is computed unless BadCRC is set, in
// which case the stored CRC is off by one.
type Chunk struct {
	Type   string
	Data   []byte
	BadCRC bool
}

// Bytes encodes the chunk as length, type, data and CRC.
func (c Chunk) Bytes() []byte {
	out := make([]byte, 4, 12+len(c.Data))
	binary.BigEndian.PutUint32(out, uint32(len(c.Data)))
	out = append(out, c.Type...)
	out = append(out, c.Data...)
	crc := crc32.ChecksumIEEE(out[4:])
	if c.BadCRC {
		crc++
	}
	return binary.BigEndian.AppendUint32(out, crc)
}

// IHDR returns the 13 data bytes of an image header chunk.
func IHDR(width, height uint32, depth, colour, interlace byte) []byte {
	out := make([]byte, 13)
	binary.BigEndian.PutUint32(out[0:], width)
	binary.BigEndian.PutUint32(out[4:], height)
	out[8] = depth
	out[9] = colour
	out[12] = interlace
	return out
}

// PNG returns the signature followed by the encoded chunks.
func PNG(chunks ...Chunk) []byte {
	out := []byte(PNGSignature)
	for _, c := range chunks {
		out = append(out, c.Bytes()...)
	}
	return out
}

// MinimalPNG returns a 1x1 true colour image with an empty IDAT chunk.
func MinimalPNG() []byte {
	return PNG(
		Chunk{Type: "IHDR", Data: IHDR(1, 1, 8, 2, 0)},
		Chunk{Type: "IDAT"},
		Chunk{Type: "IEND"},
	)
}

package png

import "github.com/vividos/ProgrammersGlasses/pkg/schema"

// Chunk layout: 4-byte big-endian data length, 4-byte type, data, 4-byte
// CRC over type and data.
const (
	SignatureSize       = 8
	ChunkHeaderSize     = 8
	ChunkCRCSize        = 4
	ImageHeaderSize     = 13
	chunkLengthOffset   = 0
	chunkTypeOffset     = 4
	chunkTypeLen        = 4
	ihdrWidthOffset     = 0
	ihdrHeightOffset    = 4
	ihdrBitDepthOffset  = 8
	ihdrColourOffset    = 9
	ihdrInterlaceOffset = 12
)

// Signature is the 8-byte PNG file signature.
const Signature = "\x89PNG\r\n\x1a\n"

var colourTypes = schema.Mapping{
	0: "Greyscale",
	2: "True colour",
	3: "Indexed colour",
	4: "Greyscale with alpha",
	6: "True color with alpha",
}

var compressionMethods = schema.Mapping{0: "deflate"}

var filterMethods = schema.Mapping{0: "adaptive filtering"}

var interlaceMethods = schema.Mapping{
	0: "no interlace",
	1: "Adam7 interlace",
}

// SignatureSchema describes the file signature.
var SignatureSchema = schema.MustStruct("png_signature",
	schema.Text(0, SignatureSize, 1, "PNG signature"),
)

// ChunkHeaderSchema describes the length and type preceding chunk data.
var ChunkHeaderSchema = schema.MustStruct("png_chunk_header",
	schema.Uint(chunkLengthOffset, 4, "Chunk data length").BigEndian(),
	schema.Text(chunkTypeOffset, chunkTypeLen, 1, "Chunk type"),
)

// ImageHeaderSchema describes the IHDR chunk data.
var ImageHeaderSchema = schema.MustStruct("png_image_header",
	schema.Uint(ihdrWidthOffset, 4, "Image width").BigEndian(),
	schema.Uint(ihdrHeightOffset, 4, "Image height").BigEndian(),
	schema.Uint(ihdrBitDepthOffset, 1, "Bit depth per sample"),
	schema.Value(ihdrColourOffset, 1, colourTypes, "Colour type").WithDefault("invalid"),
	schema.Value(10, 1, compressionMethods, "Compression method").WithDefault("invalid"),
	schema.Value(11, 1, filterMethods, "Filter method").WithDefault("invalid"),
	schema.Value(ihdrInterlaceOffset, 1, interlaceMethods, "Interlace method").WithDefault("invalid"),
)

// Schemas lists the record layouts of the PNG module.
func Schemas() []*schema.Struct {
	return []*schema.Struct{SignatureSchema, ChunkHeaderSchema, ImageHeaderSchema}
}

package pe

import "github.com/vividos/ProgrammersGlasses/pkg/schema"

// DOS MZ header layout (64 bytes):
//
//	0x00  2  magic "MZ"
//	0x02  2  bytes in last block
//	0x04  2  blocks in file
//	0x06  2  relocation count
//	0x08  2  header size in paragraphs
//	0x0A  2  min extra paragraphs
//	0x0C  2  max extra paragraphs
//	0x0E  2  initial SS
//	0x10  2  initial SP
//	0x12  2  checksum
//	0x14  2  initial IP
//	0x16  2  initial CS
//	0x18  2  relocation table offset
//	0x1A  2  overlay number
//	0x1C  8  reserved
//	0x24  2  OEM identifier
//	0x26  2  OEM information
//	0x28 20  reserved
//	0x3C  4  e_lfanew, file offset of the PE signature
const (
	MZHeaderSize  = 0x40
	SignatureSize = 4

	lfanewOffset = 0x3C
)

// optional header magic values
const (
	optionalMagicPE32     = 0x10b
	optionalMagicPE32Plus = 0x20b
	optionalMagicROM      = 0x107
)

// MZHeaderSchema describes the DOS MZ header.
var MZHeaderSchema = schema.MustStruct("dos_mz_header",
	schema.Text(0x00, 2, 1, "MZ magic number"),
	schema.Uint(0x02, 2, "Bytes in last block"),
	schema.Uint(0x04, 2, "Number of blocks in file"),
	schema.Uint(0x06, 2, "Number of relocations"),
	schema.Uint(0x08, 2, "Number of header paragraphs"),
	schema.Uint(0x0A, 2, "Minimum number of extra paragraphs needed"),
	schema.Uint(0x0C, 2, "Maximum number of extra paragraphs needed"),
	schema.Uint(0x0E, 2, "Initial SS register"),
	schema.Uint(0x10, 2, "Initial SP register"),
	schema.Uint(0x12, 2, "Checksum"),
	schema.Uint(0x14, 2, "Initial IP register"),
	schema.Uint(0x16, 2, "Initial CS register"),
	schema.Uint(0x18, 2, "Offset to relocation table"),
	schema.Uint(0x1A, 2, "Overlay number"),
	schema.ByteArray(0x1C, 8, 2, "Reserved words"),
	schema.Uint(0x24, 2, "OEM identifier"),
	schema.Uint(0x26, 2, "OEM information"),
	schema.ByteArray(0x28, 20, 2, "Reserved words"),
	schema.Uint(lfanewOffset, 4, "File offset to PE header"),
)

// SignatureSchema describes the "PE\0\0" signature.
var SignatureSchema = schema.MustStruct("pe_signature",
	schema.ByteArray(0, SignatureSize, 1, "PE signature"),
)

var optionalMagicNames = schema.Mapping{
	optionalMagicPE32:     "PE32",
	optionalMagicPE32Plus: "PE32+",
	optionalMagicROM:      "ROM image",
}

// Schemas lists the record layouts of the PE module. The image COFF
// header is listed by the COFF module.
func Schemas() []*schema.Struct {
	return []*schema.Struct{MZHeaderSchema, SignatureSchema}
}

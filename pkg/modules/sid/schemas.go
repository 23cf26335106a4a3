package sid

import (
	"fmt"

	"github.com/vividos/ProgrammersGlasses/pkg/schema"
)

// All header fields are big-endian. Version 1 headers end after the
// released text; versions 2 to 4 append flags, relocation page info and
// the addresses of additional SID chips.
const (
	HeaderV1Size = 0x76
	HeaderV2Size = 0x7C

	versionOffset    = 0x04
	dataOffsetOffset = 0x06
	loadOffset       = 0x08
	initOffset       = 0x0A
	playOffset       = 0x0C
	songsOffset      = 0x0E
	startSongOffset  = 0x10
	speedOffset      = 0x12
	nameOffset       = 0x16
	authorOffset     = 0x36
	releasedOffset   = 0x56
	flagsOffset      = 0x76
	textLen          = 32
)

const (
	magicPSID = 0x50534944
	magicRSID = 0x52534944
)

var magicIDs = schema.Mapping{
	magicPSID: "PSID",
	magicRSID: "RSID",
}

// FormatChipAddress renders the middle byte of a $Dxx0 chip address.
func FormatChipAddress(raw []byte) string {
	if len(raw) < 1 {
		return "invalid"
	}
	if raw[0] == 0 {
		return "none"
	}
	return fmt.Sprintf("$D%02x0", raw[0])
}

func init() {
	schema.RegisterDecoder("sid_address", FormatChipAddress)
}

// HeaderV1Schema describes the version 1 file header.
var HeaderV1Schema = schema.MustStruct("sid_header",
	schema.Value(0, 4, magicIDs, "Magic ID").BigEndian(),
	schema.Uint(versionOffset, 2, "SID version").BigEndian(),
	schema.Uint(dataOffsetOffset, 2, "Offset of C64 data in file").BigEndian(),
	schema.Uint(loadOffset, 2, "Load address").BigEndian(),
	schema.Uint(initOffset, 2, "Init address").BigEndian(),
	schema.Uint(playOffset, 2, "Play address").BigEndian(),
	schema.Uint(songsOffset, 2, "Number of songs").BigEndian(),
	schema.Uint(startSongOffset, 2, "Start song").BigEndian(),
	schema.Uint(speedOffset, 4, "Speed bit flags").BigEndian(),
	schema.Text(nameOffset, textLen, 1, "Name"),
	schema.Text(authorOffset, textLen, 1, "Author"),
	schema.Text(releasedOffset, textLen, 1, "Released"),
)

// HeaderV2Schema describes the header of versions 2 to 4.
var HeaderV2Schema = HeaderV1Schema.MustExtend("sid_header_v2",
	schema.Uint(flagsOffset, 2, "Flags").BigEndian(),
	schema.Uint(0x78, 1, "Start page"),
	schema.Uint(0x79, 1, "Page length"),
	schema.Custom(0x7A, 1, 1, "sid_address", FormatChipAddress, "Second SID address"),
	schema.Custom(0x7B, 1, 1, "sid_address", FormatChipAddress, "Third SID address"),
)

// Schemas lists the record layouts of the SID module.
func Schemas() []*schema.Struct {
	return []*schema.Struct{HeaderV1Schema, HeaderV2Schema}
}

package c64

import (
	"strings"

	"github.com/vividos/ProgrammersGlasses/pkg/schema"
)

// DirEntrySize is the size of one directory entry; eight fit in a block.
const DirEntrySize = 0x20

const (
	entryTypeOffset  = 0x02
	entryTrackOffset = 0x03
	entryNameOffset  = 0x05
	entryNameLen     = 16
	entrySizeOffset  = 0x1E
	labelLen         = 16
	diskIDGap        = 2
	diskIDLen        = 5
)

// Petscii converts PETSCII bytes to readable text: the high bit is
// dropped, letter case is swapped and 0x7f becomes '?'.
func Petscii(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		ch := c & 0x7f
		switch {
		case c >= 'A' && c <= 'Z':
			ch += 32
		case c >= 'a' && c <= 'z':
			ch -= 32
		case c == 0x7f:
			ch = '?'
		}
		sb.WriteByte(ch)
	}
	return sb.String()
}

// FormatFileType renders a directory entry type byte the way a directory
// listing shows it: a prefix of '@' or space, the type name, then '*' for
// unclosed and '<' for locked files.
func FormatFileType(t byte, d81 bool) string {
	var name string
	switch t & 7 {
	case 0:
		name = "DEL"
	case 1:
		name = "SEQ"
	case 2:
		name = "PRG"
	case 3:
		name = "USR"
	case 4:
		name = "REL"
	case 5:
		if d81 {
			name = "CBM"
		} else {
			name = "???"
		}
	default:
		name = "???"
	}
	if t&0x80 == 0 {
		name += "*"
	}
	if t&0x40 != 0 {
		name += "<"
	}
	prefix := " "
	if t&0x20 != 0 {
		prefix = "@"
	}
	return prefix + name
}

func decodeFileType(raw []byte) string {
	if len(raw) < 1 {
		return "invalid"
	}
	return FormatFileType(raw[0], false)
}

func init() {
	schema.RegisterDecoder("petscii", Petscii)
	schema.RegisterDecoder("c64_file_type", decodeFileType)
}

// DiskHeaderSchema describes block 18/0 of 1541 and 1571 disks.
var DiskHeaderSchema = schema.MustStruct("c64_disk_header",
	schema.Uint(0x00, 1, "Directory track"),
	schema.Uint(0x01, 1, "Directory sector"),
	schema.Custom(0x02, 1, 1, "petscii", Petscii, "DOS version"),
	schema.Uint(0x03, 1, "Double sided flag"),
	schema.Custom(0x90, labelLen, 1, "petscii", Petscii, "Disk name"),
	schema.Custom(0xA2, 2, 1, "petscii", Petscii, "Disk ID"),
	schema.Custom(0xA5, 2, 1, "petscii", Petscii, "DOS type"),
)

// D81HeaderSchema describes block 40/0 of 1581 disks.
var D81HeaderSchema = schema.MustStruct("c64_d81_disk_header",
	schema.Uint(0x00, 1, "Directory track"),
	schema.Uint(0x01, 1, "Directory sector"),
	schema.Custom(0x02, 1, 1, "petscii", Petscii, "DOS version"),
	schema.Custom(0x04, labelLen, 1, "petscii", Petscii, "Disk name"),
	schema.Custom(0x16, 2, 1, "petscii", Petscii, "Disk ID"),
	schema.Custom(0x19, 2, 1, "petscii", Petscii, "DOS type"),
)

// DirEntrySchema describes one 32-byte directory entry.
var DirEntrySchema = schema.MustStruct("c64_directory_entry",
	schema.Uint(0x00, 1, "Next directory track"),
	schema.Uint(0x01, 1, "Next directory sector"),
	schema.Custom(entryTypeOffset, 1, 1, "c64_file_type", decodeFileType, "File type"),
	schema.Uint(entryTrackOffset, 1, "File start track"),
	schema.Uint(0x04, 1, "File start sector"),
	schema.Custom(entryNameOffset, entryNameLen, 1, "petscii", Petscii, "File name"),
	schema.Uint(0x15, 1, "REL side sector track"),
	schema.Uint(0x16, 1, "REL side sector sector"),
	schema.Uint(0x17, 1, "REL record length"),
	schema.Uint(entrySizeOffset, 2, "File size in blocks"),
)

// Schemas lists the record layouts of the C64 module.
func Schemas() []*schema.Struct {
	return []*schema.Struct{DiskHeaderSchema, D81HeaderSchema, DirEntrySchema}
}

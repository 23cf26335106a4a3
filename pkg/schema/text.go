package schema

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
)

// DecodeText decodes the whole of raw as text. One-byte units are read as
// Windows-1252, two-byte units as UTF-16 in the given byte order. The
// declared length is authoritative; only trailing NUL padding is dropped.
func DecodeText(raw []byte, unitSize int, order ByteOrder) string {
	var enc encoding.Encoding = charmap.Windows1252
	if unitSize == 2 {
		enc = utf16LE
		if order == BigEndian {
			enc = utf16BE
		}
		raw = raw[:len(raw)&^1]
	}
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "invalid"
	}
	return strings.TrimRight(string(out), "\x00")
}

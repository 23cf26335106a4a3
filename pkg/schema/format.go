package schema

import (
	"fmt"
	"strings"

	"github.com/vividos/ProgrammersGlasses/internal/buf"
)

// FormatRaw renders b as hex groups of valueSize bytes, each assembled in
// the given byte order and zero padded to 2*valueSize digits. Trailing bytes
// that do not fill a group are rendered one by one.
func FormatRaw(b []byte, valueSize int, order ByteOrder) string {
	if valueSize <= 0 {
		valueSize = 1
	}
	var sb strings.Builder
	i := 0
	for ; i+valueSize <= len(b); i += valueSize {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%0*x", 2*valueSize, buf.Uint(b[i:i+valueSize], order == LittleEndian))
	}
	for ; i < len(b); i++ {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", b[i])
	}
	return sb.String()
}

// FormatValue renders the semantic value of a field from its raw bytes.
func FormatValue(f Field, raw []byte) string {
	switch f.Kind {
	case KindUnsigned:
		return FormatRaw(raw, f.Length, f.Order)
	case KindByteArray:
		return FormatRaw(raw, f.ValueSize, f.Order)
	case KindText:
		return DecodeText(raw, f.ValueSize, f.Order)
	case KindValueMapping:
		return lookup(f.Mapping, uint32(buf.Uint(raw, f.Order == LittleEndian)), f.Default)
	case KindFlagsMapping:
		return FormatFlags(f.Mapping, uint32(buf.Uint(raw, f.Order == LittleEndian)))
	case KindBitfieldMapping:
		return FormatBitfields(f.Bitfields, buf.Uint(raw, f.Order == LittleEndian))
	case KindCustom:
		return f.Decoder(raw)
	}
	return "invalid struct field type"
}

func lookup(m Mapping, v uint32, def string) string {
	if text, ok := m[v]; ok {
		return text
	}
	if def == "" {
		return "unknown"
	}
	return def
}

// FormatFlags lists the mapped names of the bits set in flags, scanning
// bits 1 to 31. Bit 0 is never reported. Set bits without a name are
// collected into a trailing hex residual; nothing set renders "N/A".
func FormatFlags(m Mapping, flags uint32) string {
	var parts []string
	var unmapped uint32
	for bit := 1; bit < 32; bit++ {
		test := uint32(1) << bit
		if flags&test == 0 {
			continue
		}
		if text, ok := m[test]; ok {
			parts = append(parts, text)
		} else {
			unmapped |= test
		}
	}
	if unmapped != 0 {
		parts = append(parts, fmt.Sprintf("0x%08x", unmapped))
	}
	if len(parts) == 0 {
		return "N/A"
	}
	return strings.Join(parts, " | ")
}

// ExtractBits returns count bits of v starting at start.
func ExtractBits(v uint64, start, count int) uint64 {
	if count >= 64 {
		return v >> start
	}
	return (v >> start) & (1<<count - 1)
}

// FormatBitfields renders each bitfield as "bits X..Y: <value>", in order,
// joined with ", ".
func FormatBitfields(bitfields []Bitfield, v uint64) string {
	parts := make([]string, 0, len(bitfields))
	for _, bf := range bitfields {
		sub := ExtractBits(v, bf.StartBit, bf.BitCount)
		var text string
		switch bf.Kind {
		case KindValueMapping:
			text = lookup(bf.Mapping, uint32(sub), "")
		case KindFlagsMapping:
			text = FormatFlags(bf.Mapping, uint32(sub))
		default:
			text = fmt.Sprintf("0x%x", sub)
		}
		parts = append(parts, fmt.Sprintf("bits %d..%d: %s", bf.StartBit, bf.StartBit+bf.BitCount-1, text))
	}
	return strings.Join(parts, ", ")
}

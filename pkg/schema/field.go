// Package schema describes fixed-layout binary records declaratively and
// renders their fields as display text.
//
// A Struct is an ordered list of Fields. Every Field has an offset and a
// length relative to the record start, a value size used to group the raw
// bytes, a byte order and a Kind. Kinds that need extra data carry exactly
// one payload: a Mapping for value and flags fields, a Bitfield list for
// bitfield fields, or a DecoderFunc for custom fields. Payloads are checked
// when the Struct is built, never at decode time.
package schema

import "fmt"

// Kind is the semantic type of a field.
type Kind int

const (
	KindUnsigned Kind = iota
	KindByteArray
	KindText
	KindValueMapping
	KindFlagsMapping
	KindBitfieldMapping
	KindCustom
)

var kindNames = [...]string{
	KindUnsigned:        "unsigned",
	KindByteArray:       "bytes",
	KindText:            "text",
	KindValueMapping:    "value",
	KindFlagsMapping:    "flags",
	KindBitfieldMapping: "bitfield",
	KindCustom:          "custom",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// ByteOrder selects how multi-byte values are assembled.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big"
	}
	return "little"
}

// Mapping maps numeric values (or single flag bits) to display text.
type Mapping map[uint32]string

// Bitfield selects BitCount bits starting at StartBit of a field's value.
// Kind is KindUnsigned (plain hex), KindValueMapping or KindFlagsMapping.
type Bitfield struct {
	StartBit int
	BitCount int
	Kind     Kind
	Mapping  Mapping
}

// DecoderFunc renders the raw bytes of a custom field.
type DecoderFunc func(raw []byte) string

// Field describes one field of a record.
type Field struct {
	Offset      int
	Length      int
	ValueSize   int
	Order       ByteOrder
	Kind        Kind
	Description string

	Mapping     Mapping
	Bitfields   []Bitfield
	Decoder     DecoderFunc
	DecoderName string

	// Default is shown for unmapped values of value-mapping fields.
	Default string
}

// Uint declares an unsigned integer of 1, 2, 4 or 8 bytes.
func Uint(offset, length int, description string) Field {
	return Field{Offset: offset, Length: length, ValueSize: length, Kind: KindUnsigned, Description: description}
}

// ByteArray declares a run of bytes displayed in valueSize groups.
func ByteArray(offset, length, valueSize int, description string) Field {
	return Field{Offset: offset, Length: length, ValueSize: valueSize, Kind: KindByteArray, Description: description}
}

// Text declares fixed-length text made of 1-byte or 2-byte code units.
func Text(offset, length, unitSize int, description string) Field {
	return Field{Offset: offset, Length: length, ValueSize: unitSize, Kind: KindText, Description: description}
}

// Value declares a numeric field looked up in m.
func Value(offset, length int, m Mapping, description string) Field {
	return Field{Offset: offset, Length: length, ValueSize: length, Kind: KindValueMapping, Mapping: m, Description: description}
}

// Flags declares a bitmask whose bits are looked up in m.
func Flags(offset, length int, m Mapping, description string) Field {
	return Field{Offset: offset, Length: length, ValueSize: length, Kind: KindFlagsMapping, Mapping: m, Description: description}
}

// Bits declares a field split into the given bitfields.
func Bits(offset, length int, bitfields []Bitfield, description string) Field {
	return Field{Offset: offset, Length: length, ValueSize: length, Kind: KindBitfieldMapping, Bitfields: bitfields, Description: description}
}

// Custom declares a field rendered by a decoder function. name identifies
// the decoder in profiles and descriptions.
func Custom(offset, length, valueSize int, name string, fn DecoderFunc, description string) Field {
	return Field{
		Offset: offset, Length: length, ValueSize: valueSize, Kind: KindCustom,
		Decoder: fn, DecoderName: name, Description: description,
	}
}

// BigEndian returns a copy of f with big-endian byte order.
func (f Field) BigEndian() Field {
	f.Order = BigEndian
	return f
}

// WithDefault returns a copy of f using text for unmapped values.
func (f Field) WithDefault(text string) Field {
	f.Default = text
	return f
}

// End returns the offset just past the field.
func (f Field) End() int { return f.Offset + f.Length }

func validSize(n int) bool {
	return n == 1 || n == 2 || n == 4 || n == 8
}

// Validate checks the field's shape and payload.
func (f Field) Validate() error {
	bad := func(format string, args ...any) error {
		return fmt.Errorf("%w: %q at offset 0x%x: %s", ErrInvalidField, f.Description, f.Offset, fmt.Sprintf(format, args...))
	}

	if f.Offset < 0 || f.Length <= 0 {
		return bad("offset %d, length %d", f.Offset, f.Length)
	}
	if !validSize(f.ValueSize) {
		return bad("value size %d", f.ValueSize)
	}
	if f.ValueSize > f.Length {
		return bad("value size %d exceeds length %d", f.ValueSize, f.Length)
	}

	payloads := 0
	if f.Mapping != nil {
		payloads++
	}
	if len(f.Bitfields) > 0 {
		payloads++
	}
	if f.Decoder != nil {
		payloads++
	}
	if payloads > 1 {
		return bad("more than one of mapping, bitfields and decoder")
	}

	switch f.Kind {
	case KindUnsigned:
		if !validSize(f.Length) {
			return bad("unsigned length %d", f.Length)
		}
		if payloads != 0 {
			return bad("unsigned field carries a payload")
		}
	case KindByteArray:
		if payloads != 0 {
			return bad("byte array carries a payload")
		}
	case KindText:
		if f.ValueSize > 2 {
			return bad("text unit size %d", f.ValueSize)
		}
		if payloads != 0 {
			return bad("text field carries a payload")
		}
	case KindValueMapping, KindFlagsMapping:
		if f.Mapping == nil {
			return bad("%s field without mapping", f.Kind)
		}
		if f.Length > 4 || f.Length == 3 {
			return bad("%s field length %d", f.Kind, f.Length)
		}
	case KindBitfieldMapping:
		if len(f.Bitfields) == 0 {
			return bad("bitfield field without bitfields")
		}
		if !validSize(f.Length) {
			return bad("bitfield length %d", f.Length)
		}
		for i, bf := range f.Bitfields {
			if err := bf.validate(f.Length * 8); err != nil {
				return bad("bitfield #%d: %v", i, err)
			}
		}
	case KindCustom:
		if f.Decoder == nil {
			return bad("custom field without decoder")
		}
	default:
		return bad("unknown kind %d", int(f.Kind))
	}
	return nil
}

func (bf Bitfield) validate(totalBits int) error {
	if bf.StartBit < 0 || bf.BitCount <= 0 || bf.BitCount > 32 || bf.StartBit+bf.BitCount > totalBits {
		return fmt.Errorf("bits %d+%d outside of %d bits", bf.StartBit, bf.BitCount, totalBits)
	}
	switch bf.Kind {
	case KindUnsigned:
		if bf.Mapping != nil {
			return fmt.Errorf("plain bitfield carries a mapping")
		}
	case KindValueMapping, KindFlagsMapping:
		if bf.Mapping == nil {
			return fmt.Errorf("%s bitfield without mapping", bf.Kind)
		}
	default:
		return fmt.Errorf("unsupported bitfield kind %s", bf.Kind)
	}
	return nil
}

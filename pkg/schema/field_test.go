package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMapping = Mapping{0x14c: "i386", 0x8664: "amd64"}

func TestFieldValidate(t *testing.T) {
	decoder := func([]byte) string { return "x" }

	tests := []struct {
		name  string
		field Field
		ok    bool
	}{
		{"uint16", Uint(0, 2, "machine"), true},
		{"uint of 3 bytes", Uint(0, 3, "odd"), false},
		{"byte array", ByteArray(0, 16, 4, "guid bytes"), true},
		{"value size above length", ByteArray(0, 2, 4, "short"), false},
		{"value size 3", ByteArray(0, 6, 3, "odd groups"), false},
		{"zero length", ByteArray(0, 0, 1, "empty"), false},
		{"negative offset", Uint(-1, 2, "neg"), false},
		{"text", Text(0, 8, 1, "name"), true},
		{"utf16 text", Text(0, 8, 2, "wide name"), true},
		{"text unit 4", Field{Length: 8, ValueSize: 4, Kind: KindText}, false},
		{"value mapping", Value(0, 2, testMapping, "machine"), true},
		{"value without mapping", Value(0, 2, nil, "machine"), false},
		{"flags with empty mapping", Flags(0, 4, Mapping{}, "flags"), true},
		{"flags without mapping", Flags(0, 4, nil, "flags"), false},
		{"flags on 8 bytes", Flags(0, 8, Mapping{}, "wide"), false},
		{"bitfield", Bits(0, 2, []Bitfield{{StartBit: 0, BitCount: 2, Kind: KindUnsigned}}, "type"), true},
		{"bitfield empty", Bits(0, 2, nil, "type"), false},
		{"bitfield out of range", Bits(0, 2, []Bitfield{{StartBit: 10, BitCount: 8}}, "type"), false},
		{"bitfield value without mapping", Bits(0, 2, []Bitfield{{StartBit: 0, BitCount: 2, Kind: KindValueMapping}}, "type"), false},
		{"custom", Custom(0, 16, 1, "guid", GUID, "class id"), true},
		{"custom without decoder", Custom(0, 16, 1, "guid", nil, "class id"), false},
		{"two payloads", Field{Length: 2, ValueSize: 2, Kind: KindValueMapping, Mapping: testMapping, Decoder: decoder}, false},
		{"unsigned with mapping", Field{Length: 2, ValueSize: 2, Kind: KindUnsigned, Mapping: testMapping}, false},
		{"unknown kind", Field{Length: 2, ValueSize: 2, Kind: Kind(42)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.field.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidField), "error should wrap ErrInvalidField: %v", err)
			}
		})
	}
}

func TestKindNames(t *testing.T) {
	for k := KindUnsigned; k <= KindCustom; k++ {
		parsed, ok := ParseKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, parsed)
	}
	_, ok := ParseKind("float")
	assert.False(t, ok)
	assert.Equal(t, "Kind(99)", Kind(99).String())
}

func TestStructBuildAndExtend(t *testing.T) {
	v1 := MustStruct("header v1",
		Text(0, 4, 1, "magic"),
		Uint(4, 2, "version").BigEndian(),
	)
	assert.Equal(t, 6, v1.Size())

	v2 := v1.MustExtend("header v2", Uint(6, 2, "flags").BigEndian())
	assert.Equal(t, "header v2", v2.Name())
	assert.Len(t, v2.Fields(), 3)
	assert.Len(t, v1.Fields(), 2, "base struct is unchanged")
	assert.Equal(t, 8, v2.Size())

	_, err := v1.Extend("broken", Value(6, 2, nil, "no table"))
	assert.ErrorIs(t, err, ErrInvalidField)

	assert.Panics(t, func() { MustStruct("bad", Uint(0, 3, "odd")) })
}

func TestStructFieldsIsCopy(t *testing.T) {
	s := MustStruct("s", Uint(0, 4, "a"))
	fields := s.Fields()
	fields[0].Description = "changed"
	assert.Equal(t, "a", s.Fields()[0].Description)
}

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGUID(t *testing.T) {
	raw := []byte{
		0x38, 0xfe, 0xb3, 0x0c, 0xa5, 0xd9, 0xab, 0x4d,
		0xac, 0x9b, 0xd6, 0xb6, 0x22, 0x2e, 0x30, 0x45,
	}
	assert.Equal(t, "{0CB3FE38-D9A5-4DAB-AC9B-D6B6222E3045}", GUID(raw))
	assert.Equal(t, "invalid", GUID(raw[:15]))
}

func TestUnixTime(t *testing.T) {
	// 0x5f5e1000 = 1600000000
	assert.Equal(t, "2020-09-13 12:26:40", UnixTime([]byte{0x00, 0x10, 0x5e, 0x5f}))
	assert.Equal(t, "1970-01-01 00:00:00", UnixTime([]byte{0, 0, 0, 0}))
	assert.Equal(t, "invalid", UnixTime([]byte{1, 2}))
}

func TestDecoderRegistry(t *testing.T) {
	fn, ok := LookupDecoder("guid")
	assert.True(t, ok)
	assert.Equal(t, "invalid", fn(nil))

	RegisterDecoder("test-zero", func([]byte) string { return "zero" })
	fn, ok = LookupDecoder("test-zero")
	assert.True(t, ok)
	assert.Equal(t, "zero", fn(nil))
	assert.Contains(t, DecoderNames(), "unixtime")

	_, ok = LookupDecoder("nope")
	assert.False(t, ok)
}

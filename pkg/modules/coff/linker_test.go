package coff

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vividos/ProgrammersGlasses/internal/testutil"
)

func TestParseFirstLinker(t *testing.T) {
	data := testutil.FirstLinker([]uint32{0x100, 0x200}, []string{"alpha", "beta"})
	l := ParseFirstLinker(data)

	assert.Equal(t, []uint32{0x100, 0x200}, l.Offsets)
	assert.Equal(t, []string{"alpha", "beta"}, l.Names)
	assert.False(t, l.Truncated)
}

func TestParseFirstLinkerTruncated(t *testing.T) {
	data := testutil.FirstLinker([]uint32{0x100, 0x200}, []string{"alpha", "beta"})

	l := ParseFirstLinker(data[:10])
	assert.Equal(t, []uint32{0x100}, l.Offsets)
	assert.Empty(t, l.Names)
	assert.True(t, l.Truncated)

	l = ParseFirstLinker(data[:12+6])
	assert.Equal(t, []string{"alpha"}, l.Names)
	assert.True(t, l.Truncated)

	assert.True(t, ParseFirstLinker(nil).Truncated)
}

func TestParseSecondLinker(t *testing.T) {
	data := testutil.SecondLinker([]uint32{0x44, 0x88}, []uint16{2, 1, 2}, []string{"a", "b", "c"})
	l := ParseSecondLinker(data)

	assert.Equal(t, []uint32{0x44, 0x88}, l.MemberOffsets)
	assert.Equal(t, []uint16{2, 1, 2}, l.Indices)
	assert.Equal(t, []string{"a", "b", "c"}, l.Names)
	assert.False(t, l.Truncated)

	off, ok := l.MemberOffset(1)
	assert.True(t, ok)
	assert.Equal(t, uint32(0x44), off)

	_, ok = l.MemberOffset(0)
	assert.False(t, ok)
	_, ok = l.MemberOffset(3)
	assert.False(t, ok)
}

func TestParseSecondLinkerTruncated(t *testing.T) {
	data := testutil.SecondLinker([]uint32{0x44, 0x88}, []uint16{2, 1}, []string{"a", "b"})

	l := ParseSecondLinker(data[:14])
	assert.Equal(t, []uint32{0x44, 0x88}, l.MemberOffsets)
	assert.Empty(t, l.Indices)
	assert.True(t, l.Truncated)

	l = ParseSecondLinker(data[:len(data)-2])
	assert.Equal(t, []string{"a"}, l.Names)
	assert.True(t, l.Truncated)
}

func TestLongnames(t *testing.T) {
	l := Longnames{data: testutil.Longnames("one.obj", "two.obj")}

	name, ok := l.At(0)
	assert.True(t, ok)
	assert.Equal(t, "one.obj", name)

	name, ok = l.At(8)
	assert.True(t, ok)
	assert.Equal(t, "two.obj", name)

	name, _ = l.At(4)
	assert.Equal(t, "obj", name)

	_, ok = l.At(16)
	assert.False(t, ok)
	_, ok = l.At(-1)
	assert.False(t, ok)

	assert.Equal(t, []LongnameEntry{{Offset: 0, Name: "one.obj"}, {Offset: 8, Name: "two.obj"}}, l.Entries())
}

func TestLongnamesGNU(t *testing.T) {
	l := Longnames{data: []byte("first_long_name.o/\nsecond.o/\n")}

	name, ok := l.At(19)
	assert.True(t, ok)
	assert.Equal(t, "second.o", name)
	assert.Equal(t, []LongnameEntry{{Offset: 0, Name: "first_long_name.o"}, {Offset: 19, Name: "second.o"}}, l.Entries())
}

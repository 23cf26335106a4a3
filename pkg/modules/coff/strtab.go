package coff

import (
	"github.com/elliotchance/orderedmap/v3"

	"github.com/vividos/ProgrammersGlasses/internal/buf"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// StringTable maps string table offsets to the NUL-terminated strings
// stored there, in file order. Offsets count from the start of the table,
// so the first string has offset 4.
type StringTable struct {
	entries *orderedmap.OrderedMap[uint32, string]
	data    []byte
	// Length is the declared length, including the 4-byte length field.
	Length uint32
	// Truncated is set when the declared length reaches past the view.
	Truncated bool
}

func newStringTable() *StringTable {
	return &StringTable{entries: orderedmap.NewOrderedMap[uint32, string]()}
}

// LoadStringTable reads the string table at off. ok is false when not even
// the length field is inside f.
func LoadStringTable(f *view.File, off int) (*StringTable, bool) {
	t := newStringTable()
	length, ok := f.U32LE(off)
	if !ok {
		return t, false
	}
	t.Length = length
	if length <= stringTableLengthSize {
		return t, true
	}

	data, _ := f.Tail(off + stringTableLengthSize)
	want := int(length) - stringTableLengthSize
	if want > len(data) {
		t.Truncated = true
	} else {
		data = data[:want]
	}

	t.data = data
	pos := 0
	for pos < len(data) {
		s := buf.CString(data[pos:])
		t.entries.Set(uint32(pos+stringTableLengthSize), string(s))
		pos += len(s) + 1
	}
	return t, true
}

// Lookup returns the string at offset. Offsets pointing into the middle
// of a string yield its tail, which linkers use to share suffixes.
func (t *StringTable) Lookup(offset uint32) (string, bool) {
	if s, ok := t.entries.Get(offset); ok {
		return s, true
	}
	if offset < stringTableLengthSize || int64(offset-stringTableLengthSize) >= int64(len(t.data)) {
		return "", false
	}
	return string(buf.CString(t.data[offset-stringTableLengthSize:])), true
}

// Len returns the number of strings.
func (t *StringTable) Len() int { return t.entries.Len() }

// Each calls fn for every string in file order until fn returns false.
func (t *StringTable) Each(fn func(offset uint32, text string) bool) {
	for off, text := range t.entries.AllFromFront() {
		if !fn(off, text) {
			return
		}
	}
}

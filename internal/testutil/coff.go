package testutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Section is one section header of a synthetic object.
type Section struct {
	Name      string
	RawSize   uint32
	RawOffset uint32
	Flags     uint32
}

// Symbol is one symbol of a synthetic object. Names longer than 8 bytes go
// to the string table. Aux adds that many zeroed aux slots after the entry.
type Symbol struct {
	Name         string
	Value        uint32
	Section      int16
	Type         uint16
	StorageClass uint8
	Aux          int
}

// Object describes a COFF object file.
type Object struct {
	Machine            uint16
	TimeStamp          uint32
	Characteristics    uint16
	OptionalHeaderSize uint16
	Sections           []Section
	Symbols            []Symbol
	// ExtraStrings are appended to the string table after symbol names.
	ExtraStrings []string
	// NumberOfSymbols overrides the computed symbol slot count when non-zero.
	NumberOfSymbols uint32
	// SymbolTableOffset overrides the computed offset when non-zero.
	SymbolTableOffset uint32
}

// SymbolSlots returns the number of 18-byte slots the symbols occupy.
func (o Object) SymbolSlots() int {
	n := 0
	for _, s := range o.Symbols {
		n += 1 + s.Aux
	}
	return n
}

// Bytes lays out header, optional header, section headers, symbol table
// and string table back to back.
func (o Object) Bytes() []byte {
	var strtab bytes.Buffer
	addString := func(s string) uint32 {
		off := uint32(4 + strtab.Len())
		strtab.WriteString(s)
		strtab.WriteByte(0)
		return off
	}

	symOff := uint32(20 + int(o.OptionalHeaderSize) + 40*len(o.Sections))
	nsyms := uint32(o.SymbolSlots())
	if len(o.Symbols) == 0 {
		symOff = 0
	}
	if o.SymbolTableOffset != 0 {
		symOff = o.SymbolTableOffset
	}
	if o.NumberOfSymbols != 0 {
		nsyms = o.NumberOfSymbols
	}

	out := make([]byte, 20)
	binary.LittleEndian.PutUint16(out[0:], o.Machine)
	binary.LittleEndian.PutUint16(out[2:], uint16(len(o.Sections)))
	binary.LittleEndian.PutUint32(out[4:], o.TimeStamp)
	binary.LittleEndian.PutUint32(out[8:], symOff)
	binary.LittleEndian.PutUint32(out[12:], nsyms)
	binary.LittleEndian.PutUint16(out[16:], o.OptionalHeaderSize)
	binary.LittleEndian.PutUint16(out[18:], o.Characteristics)
	out = append(out, make([]byte, o.OptionalHeaderSize)...)

	for _, s := range o.Sections {
		sec := make([]byte, 40)
		copy(sec[0:8], s.Name)
		binary.LittleEndian.PutUint32(sec[16:], s.RawSize)
		binary.LittleEndian.PutUint32(sec[20:], s.RawOffset)
		binary.LittleEndian.PutUint32(sec[36:], s.Flags)
		out = append(out, sec...)
	}

	if len(o.Symbols) == 0 {
		return out
	}
	for _, s := range o.Symbols {
		ent := make([]byte, 18)
		if len(s.Name) > 8 {
			binary.LittleEndian.PutUint32(ent[4:], addString(s.Name))
		} else {
			copy(ent[0:8], s.Name)
		}
		binary.LittleEndian.PutUint32(ent[8:], s.Value)
		binary.LittleEndian.PutUint16(ent[12:], uint16(s.Section))
		binary.LittleEndian.PutUint16(ent[14:], s.Type)
		ent[16] = s.StorageClass
		ent[17] = byte(s.Aux)
		out = append(out, ent...)
		out = append(out, make([]byte, 18*s.Aux)...)
	}
	for _, s := range o.ExtraStrings {
		addString(s)
	}
	length := make([]byte, 4)
	binary.LittleEndian.PutUint32(length, uint32(4+strtab.Len()))
	out = append(out, length...)
	return append(out, strtab.Bytes()...)
}

// ImportObject describes a short import library record.
type ImportObject struct {
	Machine   uint16
	TimeStamp uint32
	Ordinal   uint16
	Type      uint16 // bits 0..1
	NameType  uint16 // bits 2..4
	Symbol    string
	DLL       string
}

// Bytes returns the 20-byte import header followed by the symbol and DLL
// names.
func (o ImportObject) Bytes() []byte {
	data := []byte(o.Symbol + "\x00" + o.DLL + "\x00")
	out := make([]byte, 20)
	binary.LittleEndian.PutUint16(out[0:], 0)
	binary.LittleEndian.PutUint16(out[2:], 0xFFFF)
	binary.LittleEndian.PutUint16(out[4:], 0)
	binary.LittleEndian.PutUint16(out[6:], o.Machine)
	binary.LittleEndian.PutUint32(out[8:], o.TimeStamp)
	binary.LittleEndian.PutUint32(out[12:], uint32(len(data)))
	binary.LittleEndian.PutUint16(out[16:], o.Ordinal)
	binary.LittleEndian.PutUint16(out[18:], o.Type&0x3|(o.NameType&0x7)<<2)
	return append(out, data...)
}

// AnonymousObject describes an anonymous object header with its payload.
type AnonymousObject struct {
	Machine   uint16
	TimeStamp uint32
	ClassID   [16]byte
	Data      []byte
}

// Bytes returns the 32-byte anonymous object header followed by Data.
func (o AnonymousObject) Bytes() []byte {
	out := make([]byte, 32)
	binary.LittleEndian.PutUint16(out[2:], 0xFFFF)
	binary.LittleEndian.PutUint16(out[4:], 1)
	binary.LittleEndian.PutUint16(out[6:], o.Machine)
	binary.LittleEndian.PutUint32(out[8:], o.TimeStamp)
	copy(out[12:28], o.ClassID[:])
	binary.LittleEndian.PutUint32(out[28:], uint32(len(o.Data)))
	return append(out, o.Data...)
}

// Member is one archive member.
type Member struct {
	Name string // raw 16-byte name field content, e.g. "/" or "bar.obj/"
	Data []byte
}

// MemberHeader returns a 60-byte member header for name and size.
func MemberHeader(name string, size int) []byte {
	return []byte(fmt.Sprintf("%-16s%-12s%-6s%-6s%-8s%-10d`\n", name, "0", "", "", "100666", size))
}

// Archive returns "!<arch>\n" followed by the members, each padded to an
// even offset with '\n'.
func Archive(members ...Member) []byte {
	out := []byte("!<arch>\n")
	for _, m := range members {
		out = append(out, MemberHeader(m.Name, len(m.Data))...)
		out = append(out, m.Data...)
		if len(out)%2 != 0 {
			out = append(out, '\n')
		}
	}
	return out
}

// MemberOffsets returns the header offsets Archive assigns to members of
// the given sizes.
func MemberOffsets(sizes ...int) []int {
	offsets := make([]int, 0, len(sizes))
	off := 8
	for _, size := range sizes {
		offsets = append(offsets, off)
		off += 60 + size
		off += off & 1
	}
	return offsets
}

// FirstLinker encodes a first linker member.
func FirstLinker(offsets []uint32, names []string) []byte {
	out := binary.BigEndian.AppendUint32(nil, uint32(len(offsets)))
	for _, off := range offsets {
		out = binary.BigEndian.AppendUint32(out, off)
	}
	for _, n := range names {
		out = append(out, n...)
		out = append(out, 0)
	}
	return out
}

// SecondLinker encodes a second linker member. indices are 1-based.
func SecondLinker(memberOffsets []uint32, indices []uint16, names []string) []byte {
	out := binary.LittleEndian.AppendUint32(nil, uint32(len(memberOffsets)))
	for _, off := range memberOffsets {
		out = binary.LittleEndian.AppendUint32(out, off)
	}
	out = binary.LittleEndian.AppendUint32(out, uint32(len(indices)))
	for _, idx := range indices {
		out = binary.LittleEndian.AppendUint16(out, idx)
	}
	for _, n := range names {
		out = append(out, n...)
		out = append(out, 0)
	}
	return out
}

// Longnames encodes a longnames member with NUL-terminated names.
func Longnames(names ...string) []byte {
	var out []byte
	for _, n := range names {
		out = append(out, n...)
		out = append(out, 0)
	}
	return out
}

// LibraryArchive returns an import library: both linker members, a
// longnames member holding "bar.obj" and one COFF object member named
// "bar.obj/" that defines "foo".
func LibraryArchive() []byte {
	object := Object{
		Machine: 0x8664,
		Symbols: []Symbol{{Name: "foo", Section: 1, StorageClass: 2}},
	}.Bytes()
	longnames := Longnames("bar.obj")

	// linker members have fixed sizes for one symbol, so the object
	// member offset is known before encoding them
	first := FirstLinker([]uint32{0}, []string{"foo"})
	second := SecondLinker([]uint32{0}, []uint16{1}, []string{"foo"})
	offsets := MemberOffsets(len(first), len(second), len(longnames), len(object))
	objectOffset := uint32(offsets[3])

	return Archive(
		Member{Name: "/", Data: FirstLinker([]uint32{objectOffset}, []string{"foo"})},
		Member{Name: "/", Data: SecondLinker([]uint32{objectOffset}, []uint16{1}, []string{"foo"})},
		Member{Name: "//", Data: longnames},
		Member{Name: "bar.obj/", Data: object},
	)
}

package coff

import (
	"golang.org/x/crypto/cryptobyte"

	"github.com/vividos/ProgrammersGlasses/internal/buf"
)

// FirstLinker is the content of the first linker member: a big-endian
// symbol count, that many big-endian member header offsets and that many
// NUL-terminated symbol names.
type FirstLinker struct {
	Offsets   []uint32
	Names     []string
	Truncated bool
}

// ParseFirstLinker decodes a first linker member. Entries up to the point
// where data ends are kept.
func ParseFirstLinker(data []byte) FirstLinker {
	var l FirstLinker
	s := cryptobyte.String(data)
	var count uint32
	if !s.ReadUint32(&count) {
		l.Truncated = true
		return l
	}
	for i := uint32(0); i < count; i++ {
		var off uint32
		if !s.ReadUint32(&off) {
			l.Truncated = true
			return l
		}
		l.Offsets = append(l.Offsets, off)
	}
	l.Names = buf.SplitCStrings([]byte(s), len(l.Offsets))
	l.Truncated = len(l.Names) < len(l.Offsets)
	return l
}

// SecondLinker is the content of the second linker member: little-endian
// member offsets, then little-endian 16-bit member indices per symbol and
// the parallel list of NUL-terminated symbol names.
type SecondLinker struct {
	MemberOffsets []uint32
	Indices       []uint16
	Names         []string
	Truncated     bool
}

func readUint32LE(s *cryptobyte.String, out *uint32) bool {
	var b []byte
	if !s.ReadBytes(&b, 4) {
		return false
	}
	*out = buf.U32LE(b)
	return true
}

func readUint16LE(s *cryptobyte.String, out *uint16) bool {
	var b []byte
	if !s.ReadBytes(&b, 2) {
		return false
	}
	*out = buf.U16LE(b)
	return true
}

// ParseSecondLinker decodes a second linker member.
func ParseSecondLinker(data []byte) SecondLinker {
	var l SecondLinker
	s := cryptobyte.String(data)

	var members uint32
	if !readUint32LE(&s, &members) {
		l.Truncated = true
		return l
	}
	for i := uint32(0); i < members; i++ {
		var off uint32
		if !readUint32LE(&s, &off) {
			l.Truncated = true
			return l
		}
		l.MemberOffsets = append(l.MemberOffsets, off)
	}

	var symbols uint32
	if !readUint32LE(&s, &symbols) {
		l.Truncated = true
		return l
	}
	for i := uint32(0); i < symbols; i++ {
		var idx uint16
		if !readUint16LE(&s, &idx) {
			l.Truncated = true
			return l
		}
		l.Indices = append(l.Indices, idx)
	}
	l.Names = buf.SplitCStrings([]byte(s), len(l.Indices))
	l.Truncated = len(l.Names) < len(l.Indices)
	return l
}

// MemberOffset returns the member header offset for a 1-based member index.
func (l SecondLinker) MemberOffset(index uint16) (uint32, bool) {
	if index == 0 || int(index) > len(l.MemberOffsets) {
		return 0, false
	}
	return l.MemberOffsets[index-1], true
}

// Longnames is the longnames member: names addressed by their offset in
// the member. Entries end with NUL or, in GNU archives, with "/\n".
type Longnames struct {
	data []byte
}

// LongnameEntry is one name of the longnames member.
type LongnameEntry struct {
	Offset int
	Name   string
}

func isLongnameEnd(c byte) bool { return c == 0 || c == '\n' }

// At returns the name starting at off.
func (l Longnames) At(off int) (string, bool) {
	if off < 0 || off >= len(l.data) {
		return "", false
	}
	end := off
	for end < len(l.data) && !isLongnameEnd(l.data[end]) {
		end++
	}
	name := l.data[off:end]
	if n := len(name); n > 0 && name[n-1] == '/' {
		name = name[:n-1]
	}
	return string(name), true
}

// Entries lists every name in file order.
func (l Longnames) Entries() []LongnameEntry {
	var out []LongnameEntry
	for off := 0; off < len(l.data); {
		if isLongnameEnd(l.data[off]) {
			off++
			continue
		}
		name, _ := l.At(off)
		out = append(out, LongnameEntry{Offset: off, Name: name})
		for off < len(l.data) && !isLongnameEnd(l.data[off]) {
			off++
		}
	}
	return out
}

package coff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vividos/ProgrammersGlasses/internal/buf"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// Header is the 20-byte COFF file header (IMAGE_FILE_HEADER):
//
//	Offset  Size  Field
//	0x00    2     Target machine
//	0x02    2     Number of sections
//	0x04    4     Time stamp (seconds since 1970)
//	0x08    4     Symbol table offset
//	0x0C    4     Number of symbols
//	0x10    2     Optional header size
//	0x12    2     Characteristics flags
type Header struct {
	Machine            uint16
	NumberOfSections   uint16
	TimeStamp          uint32
	SymbolTableOffset  uint32
	NumberOfSymbols    uint32
	OptionalHeaderSize uint16
	Characteristics    uint16
}

// ParseHeader decodes the COFF header at off.
func ParseHeader(f *view.File, off int) (Header, error) {
	b, ok := f.Bytes(off, HeaderSize)
	if !ok {
		return Header{}, fmt.Errorf("header: %w", ErrTruncated)
	}
	return Header{
		Machine:            buf.U16LE(b[hdrMachineOffset:]),
		NumberOfSections:   buf.U16LE(b[hdrNumberOfSectionsOffset:]),
		TimeStamp:          buf.U32LE(b[hdrTimeStampOffset:]),
		SymbolTableOffset:  buf.U32LE(b[hdrSymbolTableOffset:]),
		NumberOfSymbols:    buf.U32LE(b[hdrNumberOfSymbolsOffset:]),
		OptionalHeaderSize: buf.U16LE(b[hdrOptionalHeaderSizeOffset:]),
		Characteristics:    buf.U16LE(b[hdrCharacteristicsOffset:]),
	}, nil
}

// HasSymbolTable reports whether the header declares a symbol table.
func (h Header) HasSymbolTable() bool {
	return h.SymbolTableOffset != 0 && h.NumberOfSymbols != 0
}

// SectionHeader holds the fields of a section header shown in summaries.
type SectionHeader struct {
	Name             string
	SizeOfRawData    uint32
	PointerToRawData uint32
	Flags            uint32
}

// ParseSectionHeader decodes the 40-byte section header at off.
func ParseSectionHeader(f *view.File, off int) (SectionHeader, error) {
	b, ok := f.Bytes(off, SectionHeaderSize)
	if !ok {
		return SectionHeader{}, fmt.Errorf("section header: %w", ErrTruncated)
	}
	return SectionHeader{
		Name:             string(buf.CString(b[secNameOffset : secNameOffset+shortNameSize])),
		SizeOfRawData:    buf.U32LE(b[secSizeOfRawDataOffset:]),
		PointerToRawData: buf.U32LE(b[secPointerToRawDataOffset:]),
		Flags:            buf.U32LE(b[secFlagsOffset:]),
	}, nil
}

// Symbol is one 18-byte symbol table entry.
type Symbol struct {
	ShortName     [shortNameSize]byte
	Value         uint32
	SectionNumber int16
	Type          uint16
	StorageClass  uint8
	AuxCount      uint8
}

// ParseSymbol decodes the symbol table entry at off.
func ParseSymbol(f *view.File, off int) (Symbol, error) {
	b, ok := f.Bytes(off, SymbolSize)
	if !ok {
		return Symbol{}, fmt.Errorf("symbol: %w", ErrTruncated)
	}
	var s Symbol
	copy(s.ShortName[:], b[symNameOffset:])
	s.Value = buf.U32LE(b[symValueOffset:])
	s.SectionNumber = int16(buf.U16LE(b[symSectionNumberOffset:]))
	s.Type = buf.U16LE(b[symTypeOffset:])
	s.StorageClass = b[symStorageClassOffset]
	s.AuxCount = b[symAuxCountOffset]
	return s, nil
}

// StringTableOffset returns the string table offset of a long name. ok is
// false when the name is stored inline.
func (s Symbol) StringTableOffset() (uint32, bool) {
	if s.ShortName[0] != 0 || s.ShortName[1] != 0 || s.ShortName[2] != 0 || s.ShortName[3] != 0 {
		return 0, false
	}
	return buf.U32LE(s.ShortName[4:]), true
}

// InlineName returns the inline name without NUL padding.
func (s Symbol) InlineName() string {
	return string(buf.CString(s.ShortName[:]))
}

// MemberHeader is a decoded 60-byte archive member header. All fields are
// space-padded ASCII in the file.
type MemberHeader struct {
	Name string
	Date string
	UID  string
	GID  string
	Mode string
	Size int
}

// ParseMemberHeader decodes the archive member header at off. The end of
// header marker must be "`\n".
func ParseMemberHeader(f *view.File, off int) (MemberHeader, error) {
	b, ok := f.Bytes(off, MemberHeaderSize)
	if !ok {
		return MemberHeader{}, fmt.Errorf("member header: %w", ErrTruncated)
	}
	if string(b[memEndOffset:memEndOffset+memEndLen]) != archiveEndOfHeaderText {
		return MemberHeader{}, fmt.Errorf("member header: end marker %x: %w",
			b[memEndOffset:memEndOffset+memEndLen], ErrSignatureMismatch)
	}
	field := func(off, n int) string {
		return strings.TrimSpace(buf.TrimPadding(b[off : off+n]))
	}
	h := MemberHeader{
		Name: field(memNameOffset, memNameLen),
		Date: field(memDateOffset, memDateLen),
		UID:  field(memUIDOffset, memUIDLen),
		GID:  field(memGIDOffset, memGIDLen),
		Mode: field(memModeOffset, memModeLen),
	}
	sizeText := field(memSizeOffset, memSizeLen)
	size, err := strconv.ParseUint(sizeText, 10, 32)
	if err != nil {
		return h, fmt.Errorf("member header: size %q: %w", sizeText, ErrInvalidSize)
	}
	h.Size = int(size)
	return h, nil
}

// NonCoffHeader holds the fields shared by import and anonymous object
// headers.
type NonCoffHeader struct {
	Sig1      uint16
	Sig2      uint16
	Version   uint16
	Machine   uint16
	TimeStamp uint32
}

// ParseNonCoffHeader decodes the common prefix of an import or anonymous
// object header at off.
func ParseNonCoffHeader(f *view.File, off int) (NonCoffHeader, error) {
	b, ok := f.Bytes(off, ImportHeaderSize)
	if !ok {
		return NonCoffHeader{}, fmt.Errorf("non-COFF header: %w", ErrTruncated)
	}
	return NonCoffHeader{
		Sig1:      buf.U16LE(b[nonCoffSig1Offset:]),
		Sig2:      buf.U16LE(b[nonCoffSig2Offset:]),
		Version:   buf.U16LE(b[nonCoffVersionOffset:]),
		Machine:   buf.U16LE(b[nonCoffMachineOffset:]),
		TimeStamp: buf.U32LE(b[nonCoffTimeStampOffset:]),
	}, nil
}

// Valid reports whether the signature pair matches and the version is one
// of the two known record kinds.
func (h NonCoffHeader) Valid() bool {
	return h.Sig1 == nonCoffSig1 && h.Sig2 == nonCoffSig2 &&
		(h.Version == importObjectVersion || h.Version == anonObjectVersion)
}

package coff

// Record sizes.
const (
	HeaderSize             = 20
	SectionHeaderSize      = 40
	SymbolSize             = 18
	ArchiveSignatureSize   = 8
	MemberHeaderSize       = 60
	ImportHeaderSize       = 20
	AnonymousHeaderSize    = 32
	stringTableLengthSize  = 4
	shortNameSize          = 8
	memberAlignment        = 2
	linkerMemberName       = "/"
	longnamesMemberName    = "//"
	archiveEndOfHeaderText = "`\n"
)

// COFF header field offsets.
const (
	hdrMachineOffset            = 0x00
	hdrNumberOfSectionsOffset   = 0x02
	hdrTimeStampOffset          = 0x04
	hdrSymbolTableOffset        = 0x08
	hdrNumberOfSymbolsOffset    = 0x0C
	hdrOptionalHeaderSizeOffset = 0x10
	hdrCharacteristicsOffset    = 0x12
)

// Section header field offsets.
const (
	secNameOffset             = 0x00
	secVirtualSizeOffset      = 0x08
	secVirtualAddressOffset   = 0x0C
	secSizeOfRawDataOffset    = 0x10
	secPointerToRawDataOffset = 0x14
	secPointerToRelocsOffset  = 0x18
	secPointerToLinesOffset   = 0x1C
	secNumberOfRelocsOffset   = 0x20
	secNumberOfLinesOffset    = 0x22
	secFlagsOffset            = 0x24
)

// Symbol table entry field offsets.
const (
	symNameOffset          = 0x00
	symValueOffset         = 0x08
	symSectionNumberOffset = 0x0C
	symTypeOffset          = 0x0E
	symStorageClassOffset  = 0x10
	symAuxCountOffset      = 0x11
)

// Archive member header field offsets and widths.
const (
	memNameOffset = 0
	memNameLen    = 16
	memDateOffset = 16
	memDateLen    = 12
	memUIDOffset  = 28
	memUIDLen     = 6
	memGIDOffset  = 34
	memGIDLen     = 6
	memModeOffset = 40
	memModeLen    = 8
	memSizeOffset = 48
	memSizeLen    = 10
	memEndOffset  = 58
	memEndLen     = 2
)

// Import and anonymous object header field offsets.
const (
	nonCoffSig1Offset      = 0x00
	nonCoffSig2Offset      = 0x02
	nonCoffVersionOffset   = 0x04
	nonCoffMachineOffset   = 0x06
	nonCoffTimeStampOffset = 0x08
	impSizeOfDataOffset    = 0x0C
	impOrdinalOffset       = 0x10
	impFlagsOffset         = 0x12
	anonClassIDOffset      = 0x0C
	anonClassIDLen         = 16
	anonSizeOfDataOffset   = 0x1C
)

// Non-COFF signature values.
const (
	nonCoffSig1         = 0x0000
	nonCoffSig2         = 0xFFFF
	importObjectVersion = 0
	anonObjectVersion   = 1
)

// ArchiveSignature starts every "ar" library.
const ArchiveSignature = "!<arch>\n"

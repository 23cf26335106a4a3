package coff

import "github.com/vividos/ProgrammersGlasses/pkg/schema"

func timeStampField(off int, description string) schema.Field {
	return schema.Custom(off, 4, 4, "unixtime", schema.UnixTime, description)
}

// HeaderSchema describes the COFF file header.
var HeaderSchema = schema.MustStruct("coff_header",
	schema.Value(hdrMachineOffset, 2, MachineNames, "Target machine"),
	schema.Uint(hdrNumberOfSectionsOffset, 2, "Number of sections"),
	timeStampField(hdrTimeStampOffset, "Time stamp"),
	schema.Uint(hdrSymbolTableOffset, 4, "Symbol table offset"),
	schema.Uint(hdrNumberOfSymbolsOffset, 4, "Number of symbols"),
	schema.Uint(hdrOptionalHeaderSizeOffset, 2, "Optional header size"),
	schema.Flags(hdrCharacteristicsOffset, 2, CharacteristicsBits, "Characteristics flags"),
)

// SectionHeaderSchema describes one section table entry.
var SectionHeaderSchema = schema.MustStruct("section_header",
	schema.Text(secNameOffset, shortNameSize, 1, "Section name"),
	schema.Uint(secVirtualSizeOffset, 4, "Virtual Size"),
	schema.Uint(secVirtualAddressOffset, 4, "Virtual Address"),
	schema.Uint(secSizeOfRawDataOffset, 4, "Size of raw data"),
	schema.Uint(secPointerToRawDataOffset, 4, "File offset to raw data"),
	schema.Uint(secPointerToRelocsOffset, 4, "File offset to relocations"),
	schema.Uint(secPointerToLinesOffset, 4, "File offset to line numbers"),
	schema.Uint(secNumberOfRelocsOffset, 2, "Number of relocations"),
	schema.Uint(secNumberOfLinesOffset, 2, "Number of line numbers"),
	schema.Flags(secFlagsOffset, 4, sectionFlagBits, "Section flags"),
)

// SymbolSchema describes one symbol table entry.
var SymbolSchema = schema.MustStruct("symbol_table_entry",
	schema.Text(symNameOffset, shortNameSize, 1, "Symbol table name"),
	schema.Uint(symValueOffset, 4, "Symbol value"),
	schema.Uint(symSectionNumberOffset, 2, "Section number"),
	schema.Bits(symTypeOffset, 2, symbolTypeBits, "Symbol type"),
	schema.Value(symStorageClassOffset, 1, symbolStorageClasses, "Storage class"),
	schema.Uint(symAuxCountOffset, 1, "Number of aux. symbols"),
)

// ArchiveHeaderSchema describes the archive signature.
var ArchiveHeaderSchema = schema.MustStruct("archive_header",
	schema.Text(0, ArchiveSignatureSize, 1, "Archive signature"),
)

// MemberHeaderSchema describes an archive member header.
var MemberHeaderSchema = schema.MustStruct("archive_member_header",
	schema.Text(memNameOffset, memNameLen, 1, "Entry name"),
	schema.Text(memDateOffset, memDateLen, 1, "Date (Unix epoch)"),
	schema.Text(memUIDOffset, memUIDLen, 1, "User ID"),
	schema.Text(memGIDOffset, memGIDLen, 1, "Group ID"),
	schema.Text(memModeOffset, memModeLen, 1, "File mode"),
	schema.Text(memSizeOffset, memSizeLen, 1, "Size"),
	schema.ByteArray(memEndOffset, memEndLen, 1, "End of header"),
)

// NonCoffHeaderSchema is the prefix shared by import and anonymous object
// headers.
var NonCoffHeaderSchema = schema.MustStruct("non_coff_header",
	schema.Value(nonCoffSig1Offset, 2, nonCoffSig1Names, "Signature 1"),
	schema.Value(nonCoffSig2Offset, 2, nonCoffSig2Names, "Signature 2"),
	schema.Value(nonCoffVersionOffset, 2, nonCoffVersionNames, "Version"),
	schema.Value(nonCoffMachineOffset, 2, MachineNames, "Target machine"),
	timeStampField(nonCoffTimeStampOffset, "Time stamp"),
)

// ImportHeaderSchema describes an import object header.
var ImportHeaderSchema = NonCoffHeaderSchema.MustExtend("import_object_header",
	schema.Uint(impSizeOfDataOffset, 4, "Size of data"),
	schema.Uint(impOrdinalOffset, 2, "Ordinal or hint"),
	schema.Bits(impFlagsOffset, 2, importFlagBits, "Flags bitfield"),
)

// AnonymousHeaderSchema describes an anonymous object header.
var AnonymousHeaderSchema = NonCoffHeaderSchema.MustExtend("anonymous_object_header",
	schema.Custom(anonClassIDOffset, anonClassIDLen, 1, "guid", schema.GUID, "COM object class ID"),
	schema.Uint(anonSizeOfDataOffset, 4, "Size of data"),
)

// Schemas lists every record layout the COFF module decodes.
func Schemas() []*schema.Struct {
	return []*schema.Struct{
		HeaderSchema,
		SectionHeaderSchema,
		SymbolSchema,
		ArchiveHeaderSchema,
		MemberHeaderSchema,
		ImportHeaderSchema,
		AnonymousHeaderSchema,
	}
}

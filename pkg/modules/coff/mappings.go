package coff

import "github.com/vividos/ProgrammersGlasses/pkg/schema"

// MachineNames maps target machine codes to display text.
var MachineNames = schema.Mapping{
	0x0:    "IMAGE_FILE_MACHINE_UNKNOWN",
	0x1d3:  "IMAGE_FILE_MACHINE_AM33 (Matsushita AM33)",
	0x8664: "IMAGE_FILE_MACHINE_AMD64 (x64)",
	0x1c0:  "IMAGE_FILE_MACHINE_ARM (ARM little endian)",
	0x1c4:  "IMAGE_FILE_MACHINE_ARMV7 (ARMv7(or higher) Thumb mode only)",
	0xaa64: "IMAGE_FILE_MACHINE_ARM64 (ARM64 little endian)",
	0xebc:  "IMAGE_FILE_MACHINE_EBC (EFI byte code)",
	0x14c:  "IMAGE_FILE_MACHINE_I386 (Intel 386 or later processors and compatible processors)",
	0x200:  "IMAGE_FILE_MACHINE_IA64 (Intel Itanium processor family)",
	0x9041: "IMAGE_FILE_MACHINE_M32R (Mitsubishi M32R little endian)",
	0x266:  "IMAGE_FILE_MACHINE_MIPS16 (MIPS16)",
	0x366:  "IMAGE_FILE_MACHINE_MIPSFPU (MIPS with FPU)",
	0x466:  "IMAGE_FILE_MACHINE_MIPSFPU16 (MIPS16 with FPU)",
	0x1f0:  "IMAGE_FILE_MACHINE_POWERPC (Power PC little endian)",
	0x1f1:  "IMAGE_FILE_MACHINE_POWERPCFP (Power PC with floating point support)",
	0x166:  "IMAGE_FILE_MACHINE_R4000 (MIPS little endian)",
	0x1a2:  "IMAGE_FILE_MACHINE_SH3 (Hitachi SH3)",
	0x1a3:  "IMAGE_FILE_MACHINE_SH3DSP (Hitachi SH3 DSP)",
	0x1a6:  "IMAGE_FILE_MACHINE_SH4 (Hitachi SH4)",
	0x1a8:  "IMAGE_FILE_MACHINE_SH5 (Hitachi SH5)",
	0x1c2:  "IMAGE_FILE_MACHINE_THUMB (ARM or Thumb(\"interworking\"))",
	0x169:  "IMAGE_FILE_MACHINE_WCEMIPSV2 (MIPS little - endian WCE v2)",
}

// MachineName returns the display text for machine, or "unknown".
func MachineName(machine uint16) string {
	if name, ok := MachineNames[uint32(machine)]; ok {
		return name
	}
	return "unknown"
}

// CharacteristicsBits maps COFF header characteristics bits to display text.
var CharacteristicsBits = schema.Mapping{
	0x0001: "IMAGE_FILE_RELOCS_STRIPPED",
	0x0002: "IMAGE_FILE_EXECUTABLE_IMAGE",
	0x0004: "IMAGE_FILE_LINE_NUMS_STRIPPED",
	0x0008: "IMAGE_FILE_LOCAL_SYMS_STRIPPED",
	0x0010: "IMAGE_FILE_AGGRESSIVE_WS_TRIM",
	0x0020: "IMAGE_FILE_LARGE_ADDRESS_AWARE",
	0x0080: "IMAGE_FILE_BYTES_REVERSED_LO",
	0x0100: "IMAGE_FILE_32BIT_MACHINE",
	0x0200: "IMAGE_FILE_DEBUG_STRIPPED",
	0x0400: "IMAGE_FILE_REMOVABLE_RUN_FROM_SWAP",
	0x0800: "IMAGE_FILE_NET_RUN_FROM_SWAP",
	0x1000: "IMAGE_FILE_SYSTEM",
	0x2000: "IMAGE_FILE_DLL",
	0x4000: "IMAGE_FILE_UP_SYSTEM_ONLY",
	0x8000: "IMAGE_FILE_BYTES_REVERSED_HI",
}

// sectionFlagBits leaves out the IMAGE_SCN_ALIGN_* values in bits 20..23;
// they form an enumeration, not flags.
var sectionFlagBits = schema.Mapping{
	0x00000000: "Reserved (IMAGE_SCN_TYPE_REG)",
	0x00000001: "Reserved bit 0 (IMAGE_SCN_TYPE_DSECT)",
	0x00000002: "Reserved bit 1 (IMAGE_SCN_TYPE_NOLOAD)",
	0x00000004: "Reserved bit 2 (IMAGE_SCN_TYPE_GROUP)",
	0x00000008: "IMAGE_SCN_TYPE_NO_PAD",
	0x00000010: "Reserved bit 4 (IMAGE_SCN_TYPE_COPY)",
	0x00000020: "IMAGE_SCN_CNT_CODE",
	0x00000040: "IMAGE_SCN_CNT_INITIALIZED_DATA",
	0x00000080: "IMAGE_SCN_CNT_UNINITIALIZED_DATA",
	0x00000100: "IMAGE_SCN_LNK_OTHER (reserved)",
	0x00000200: "IMAGE_SCN_LNK_INFO",
	0x00000400: "Reserved bit 10 (IMAGE_SCN_TYPE_OVER)",
	0x00000800: "IMAGE_SCN_LNK_REMOVE",
	0x00001000: "IMAGE_SCN_LNK_COMDAT",
	0x00002000: "Reserved bit 13",
	0x00004000: "IMAGE_SCN_NO_DEFER_SPEC_EXC (Obsolete IMAGE_SCN_MEM_PROTECTED)",
	0x00008000: "IMAGE_SCN_GPREL",
	0x00010000: "Obsolete IMAGE_SCN_MEM_SYSHEAP",
	0x00020000: "Reserved bit 17 (IMAGE_SCN_MEM_PURGEABLE or IMAGE_SCN_MEM_16BIT)",
	0x00040000: "IMAGE_SCN_MEM_LOCKED",
	0x00080000: "IMAGE_SCN_MEM_PRELOAD",
	0x01000000: "IMAGE_SCN_LNK_NRELOC_OVFL",
	0x02000000: "IMAGE_SCN_MEM_DISCARDABLE",
	0x04000000: "IMAGE_SCN_MEM_NOT_CACHED",
	0x08000000: "IMAGE_SCN_MEM_NOT_PAGED",
	0x10000000: "IMAGE_SCN_MEM_SHARED",
	0x20000000: "IMAGE_SCN_MEM_EXECUTE",
	0x40000000: "IMAGE_SCN_MEM_READ",
	0x80000000: "IMAGE_SCN_MEM_WRITE",
}

var symbolBaseTypes = schema.Mapping{
	0:    "IMAGE_SYM_TYPE_NULL (unknown)",
	1:    "IMAGE_SYM_TYPE_VOID (void* and funcs)",
	2:    "IMAGE_SYM_TYPE_CHAR (signed 1-byte int)",
	3:    "IMAGE_SYM_TYPE_SHORT (2-byte signed int)",
	4:    "IMAGE_SYM_TYPE_INT (natural integer type)",
	5:    "IMAGE_SYM_TYPE_LONG (4-byte signed int)",
	6:    "IMAGE_SYM_TYPE_FLOAT (4-byte float)",
	7:    "IMAGE_SYM_TYPE_DOUBLE (8-byte double)",
	8:    "IMAGE_SYM_TYPE_STRUCT (C struct)",
	9:    "IMAGE_SYM_TYPE_UNION (C union)",
	10:   "IMAGE_SYM_TYPE_ENUM (C enum)",
	11:   "IMAGE_SYM_TYPE_MOE (enumeration member)",
	12:   "IMAGE_SYM_TYPE_BYTE (unsigned 1-byte int)",
	13:   "IMAGE_SYM_TYPE_WORD (2-byte unsigned int)",
	14:   "IMAGE_SYM_TYPE_UINT (natural unsigned integer type)",
	15:   "IMAGE_SYM_TYPE_DWORD (4-byte unsigned int)",
	0x20: "MSVC: function",
}

var symbolComplexTypes = schema.Mapping{
	0: "IMAGE_SYM_DTYPE_NULL",
	1: "IMAGE_SYM_DTYPE_POINTER",
	2: "IMAGE_SYM_DTYPE_FUNCTION",
	3: "IMAGE_SYM_DTYPE_ARRAY",
}

var symbolStorageClasses = schema.Mapping{
	0xFF: "IMAGE_SYM_CLASS_END_OF_FUNCTION",
	0:    "IMAGE_SYM_CLASS_NULL",
	2:    "IMAGE_SYM_CLASS_EXTERNAL",
	3:    "IMAGE_SYM_CLASS_STATIC",
	102:  "IMAGE_SYM_CLASS_END_OF_STRUCT",
	103:  "IMAGE_SYM_CLASS_FILE",
}

var symbolTypeBits = []schema.Bitfield{
	{StartBit: 0, BitCount: 8, Kind: schema.KindValueMapping, Mapping: symbolBaseTypes},
	{StartBit: 8, BitCount: 8, Kind: schema.KindValueMapping, Mapping: symbolComplexTypes},
}

var nonCoffSig1Names = schema.Mapping{0x0: "non COFF header sig1"}

var nonCoffSig2Names = schema.Mapping{0xFFFF: "non COFF header sig2"}

var nonCoffVersionNames = schema.Mapping{
	0: "Import object",
	1: "Anonymous object",
	2: "ANON_OBJECT_HEADER_V2",
}

var importTypeNames = schema.Mapping{
	0: "IMPORT_OBJECT_CODE",
	1: "IMPORT_OBJECT_DATA",
	2: "IMPORT_OBJECT_CONST",
}

var importNameTypeNames = schema.Mapping{
	0: "IMPORT_OBJECT_ORDINAL",
	1: "IMPORT_OBJECT_NAME",
	2: "IMPORT_OBJECT_NAME_NO_PREFIX",
	3: "IMPORT_OBJECT_NAME_UNDECORATE",
	4: "IMPORT_OBJECT_NAME_EXPORTAS",
}

var importFlagBits = []schema.Bitfield{
	{StartBit: 0, BitCount: 2, Kind: schema.KindValueMapping, Mapping: importTypeNames},
	{StartBit: 2, BitCount: 3, Kind: schema.KindValueMapping, Mapping: importNameTypeNames},
	{StartBit: 5, BitCount: 11, Kind: schema.KindUnsigned},
}

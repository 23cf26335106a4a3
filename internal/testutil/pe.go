package testutil

import "encoding/binary"

// Executable returns a 64-byte MZ header whose e_lfanew is lfanew, zero
// padding up to lfanew, the "PE\0\0" signature and then image, usually
// the bytes of an Object. lfanew must be at least 64.
func Executable(lfanew int, image []byte) []byte {
	out := make([]byte, lfanew)
	copy(out, "MZ")
	binary.LittleEndian.PutUint32(out[0x3C:], uint32(lfanew))
	out = append(out, "PE\x00\x00"...)
	return append(out, image...)
}

// DOSExecutable returns an MZ header with e_lfanew pointing at a short
// DOS stub instead of a PE signature.
func DOSExecutable() []byte {
	out := make([]byte, 0x40)
	copy(out, "MZ")
	binary.LittleEndian.PutUint32(out[0x3C:], 0x40)
	return append(out, 0x0e, 0x1f, 0xba, 0x0e, 0x00, 0xb4, 0x09, 0xcd, 0x21)
}

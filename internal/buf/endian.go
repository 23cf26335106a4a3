// Package buf contains bounds and endian helpers shared by the format decoders.
package buf

import "encoding/binary"

// U16LE reads a little-endian uint16 from b. Returns 0 when b is too short.
func U16LE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U16BE reads a big-endian uint16 from b. Returns 0 when b is too short.
func U16BE(b []byte) uint16 {
	if len(b) < 2 {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

// U32LE reads a little-endian uint32 from b. Returns 0 when b is too short.
func U32LE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// U64LE reads a little-endian uint64 from b. Returns 0 when b is too short.
func U64LE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// Uint assembles an unsigned value from 1, 2, 4 or 8 bytes of b in the given
// byte order. Other lengths assemble the first len(b) bytes (up to 8).
func Uint(b []byte, littleEndian bool) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		if littleEndian {
			return uint64(U16LE(b))
		}
		return uint64(U16BE(b))
	case 4:
		if littleEndian {
			return uint64(U32LE(b))
		}
		return uint64(U32BE(b))
	case 8:
		if littleEndian {
			return U64LE(b)
		}
		return U64BE(b)
	}
	n := len(b)
	if n > 8 {
		n = 8
	}
	var v uint64
	for i := 0; i < n; i++ {
		if littleEndian {
			v |= uint64(b[i]) << (8 * i)
		} else {
			v = v<<8 | uint64(b[i])
		}
	}
	return v
}

package testutil

import "encoding/binary"

// SID describes a PSID/RSID file. Version 1 files get the 0x76-byte
// header, later versions the 0x7C-byte one. A zero DataOffset is replaced
// by the header size.
type SID struct {
	Magic      string
	Version    uint16
	DataOffset uint16
	Load       uint16
	Init       uint16
	Play       uint16
	Songs      uint16
	StartSong  uint16
	Speed      uint32
	Name       string
	Author     string
	Released   string
	Flags      uint16
	StartPage  byte
	PageLength byte
	SecondSID  byte
	ThirdSID   byte
	Payload    []byte
}

// Bytes encodes the header followed by the payload.
func (s SID) Bytes() []byte {
	size := 0x76
	if s.Version >= 2 {
		size = 0x7C
	}
	out := make([]byte, size)
	copy(out, s.Magic)
	be := binary.BigEndian
	dataOffset := s.DataOffset
	if dataOffset == 0 {
		dataOffset = uint16(size)
	}
	be.PutUint16(out[0x04:], s.Version)
	be.PutUint16(out[0x06:], dataOffset)
	be.PutUint16(out[0x08:], s.Load)
	be.PutUint16(out[0x0A:], s.Init)
	be.PutUint16(out[0x0C:], s.Play)
	be.PutUint16(out[0x0E:], s.Songs)
	be.PutUint16(out[0x10:], s.StartSong)
	be.PutUint32(out[0x12:], s.Speed)
	copy(out[0x16:0x36], s.Name)
	copy(out[0x36:0x56], s.Author)
	copy(out[0x56:0x76], s.Released)
	if size > 0x76 {
		be.PutUint16(out[0x76:], s.Flags)
		out[0x78] = s.StartPage
		out[0x79] = s.PageLength
		out[0x7A] = s.SecondSID
		out[0x7B] = s.ThirdSID
	}
	return append(out, s.Payload...)
}

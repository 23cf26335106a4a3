package sid

import (
	"fmt"
	"strings"

	"github.com/vividos/ProgrammersGlasses/internal/logger"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/schema"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// Lowest address an RSID tune may be loaded to or initialised at.
const rsidMinAddress = 0x07E8

// IsSID reports whether f holds at least a version 1 header with a PSID or
// RSID magic.
func IsSID(f *view.File) bool {
	if !f.IsValidRange(0, HeaderV1Size) {
		return false
	}
	magic, _ := f.U32BE(0)
	return magic == magicPSID || magic == magicRSID
}

// Header holds the decoded header values used by the summary.
type Header struct {
	Magic      uint32
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
	// Flags is zero for version 1 headers.
	Flags uint16
}

// IsRSID reports whether the header carries the RSID magic.
func (h Header) IsRSID() bool { return h.Magic == magicRSID }

// Model returns the SID chip model named by the flags.
func (h Header) Model() string {
	switch (h.Flags >> 4) & 3 {
	case 1, 3:
		return "MOS6581"
	case 2:
		return "MOS8580"
	}
	return "Unknown"
}

// Clock returns the video standard named by the flags.
func (h Header) Clock() string {
	switch (h.Flags >> 2) & 3 {
	case 1:
		return "PAL"
	case 2:
		return "NTSC"
	case 3:
		return "PAL/NTSC"
	}
	return "Unknown"
}

// ParseHeader decodes the header at the start of f.
func ParseHeader(f *view.File) (Header, bool) {
	if !f.IsValidRange(0, HeaderV1Size) {
		return Header{}, false
	}
	u16 := func(off int) uint16 { v, _ := f.U16BE(off); return v }
	text := func(off int) string {
		b, _ := f.Bytes(off, textLen)
		return schema.DecodeText(b, 1, schema.BigEndian)
	}
	var h Header
	h.Magic, _ = f.U32BE(0)
	h.Version = u16(versionOffset)
	h.DataOffset = u16(dataOffsetOffset)
	h.Load = u16(loadOffset)
	h.Init = u16(initOffset)
	h.Play = u16(playOffset)
	h.Songs = u16(songsOffset)
	h.StartSong = u16(startSongOffset)
	h.Speed, _ = f.U32BE(speedOffset)
	h.Name = text(nameOffset)
	h.Author = text(authorOffset)
	h.Released = text(releasedOffset)
	if h.Version >= 2 {
		h.Flags = u16(flagsOffset)
	}
	return h, true
}

// Reader builds the tree of a SID tune.
type Reader struct {
	file *view.File
	root *document.Node
}

// NewReader returns a reader bound to f.
func NewReader(f *view.File) *Reader {
	return &Reader{file: f}
}

// Load decodes the header. Calling it again is a no-op.
func (r *Reader) Load() error {
	if r.root != nil {
		return nil
	}
	f := r.file
	root := document.NewNode("Summary", document.IconDocument, nil)
	r.root = root

	h, ok := ParseHeader(f)
	if !ok {
		logger.Warn("sid header truncated", "file", f.Name(), "size", f.Size())
		root.SetText("SID file: " + f.BaseName() + "\n\nError: SID file header is outside of the file size!\n")
		return nil
	}
	root.SetText(r.summary(h))

	def := HeaderV1Schema
	if h.Version >= 2 {
		def = HeaderV2Schema
	}
	root.AddChild(document.NewStructNode("SID file header", document.IconBinary, def, f, 0))
	return nil
}

func (r *Reader) summary(h Header) string {
	f := r.file
	var sb, warnings strings.Builder

	sb.WriteString("SID file: " + f.BaseName() + "\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", h.Name)
	fmt.Fprintf(&sb, "Author: %s\n", h.Author)
	fmt.Fprintf(&sb, "Released: %s\n", h.Released)
	sb.WriteString("\n")

	// A zero load address means the first two data bytes hold it,
	// little-endian.
	load := h.Load
	if load == 0 {
		v, ok := f.U16LE(int(h.DataOffset))
		if !ok {
			warnings.WriteString("Warning: Data offset is outside of the file size\n")
		}
		load = v
	}
	initAddr := h.Init
	if initAddr == 0 {
		initAddr = load
	}

	fmt.Fprintf(&sb, "Load Address: $%04x    Number of tunes: %d\n", load, h.Songs)
	fmt.Fprintf(&sb, "Init Address: $%04x    Default tune: %d\n", initAddr, h.StartSong)
	fmt.Fprintf(&sb, "Play Address: $%04x    Speed: $%08x\n", h.Play, h.Speed)
	sb.WriteString("\n")

	format, ok := magicIDs[h.Magic]
	if !ok {
		format = "invalid"
	}
	fmt.Fprintf(&sb, "SID Model:    %s  Clock: %s\n", h.Model(), h.Clock())
	fmt.Fprintf(&sb, "File Format:  %4s     Format version: %d\n", format, h.Version)

	if h.Version < 1 || h.Version > 4 {
		warnings.WriteString("Warning: Unknown SID version\n")
	}
	rsid := h.IsRSID()
	if rsid && (h.Version < 2 || h.Version > 4) {
		warnings.WriteString("Warning: RSID format, but version is not between 2 and 4\n")
	}
	if rsid && (h.Load != 0 || h.Play != 0 || h.Speed != 0) {
		warnings.WriteString("Warning: RSID format, but load address, play address or speed isn't 0\n")
	}
	if (h.Version == 1 && h.DataOffset != HeaderV1Size) ||
		(h.Version >= 2 && h.Version <= 4 && h.DataOffset != HeaderV2Size) {
		warnings.WriteString("Warning: Invalid data offset\n")
	}
	if rsid && load < rsidMinAddress {
		warnings.WriteString("Warning: Load address for RSID file is below $07E8\n")
	}
	if rsid && (initAddr < rsidMinAddress || (initAddr >= 0xA000 && initAddr <= 0xBFFF)) {
		warnings.WriteString("Warning: Init address for RSID file is below $07E8 or in Basic ROM\n")
	}

	if warnings.Len() > 0 {
		logger.Debug("sid header warnings", "file", f.Name(), "version", h.Version)
		sb.WriteString("\n")
		sb.WriteString(warnings.String())
	}
	return sb.String()
}

// RootNode returns the tree built by Load.
func (r *Reader) RootNode() *document.Node { return r.root }

// Cleanup has nothing to release.
func (r *Reader) Cleanup() error { return nil }

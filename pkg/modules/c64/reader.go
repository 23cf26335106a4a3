package c64

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vividos/ProgrammersGlasses/internal/logger"
	"github.com/vividos/ProgrammersGlasses/pkg/document"
	"github.com/vividos/ProgrammersGlasses/pkg/view"
)

// Entry is one used directory entry.
type Entry struct {
	Offset int
	Name   string
	Type   string
	Track  int
	Sector int
	Blocks int
}

var entryColumns = []string{"Blocks", "Name", "Type", "Track", "Sector", "Offset"}

// Reader lists the directory and block availability map of a disk image.
type Reader struct {
	file    *view.File
	root    *document.Node
	entries []Entry
}

// NewReader returns a reader bound to f.
func NewReader(f *view.File) *Reader {
	return &Reader{file: f}
}

// Entries returns the directory entries found by Load.
func (r *Reader) Entries() []Entry { return r.entries }

// Load reads the directory. Calling it again is a no-op.
func (r *Reader) Load() error {
	if r.root != nil {
		return nil
	}
	f := r.file
	root := document.NewNode("Directory", document.IconDocument, nil)
	r.root = root

	img, ok := NewImage(f)
	if !ok {
		logger.Warn("unknown disk image size", "file", f.Name(), "size", f.Size())
		root.SetText(fmt.Sprintf("Error: file size %d does not match any disk image type\n", f.Size()))
		return nil
	}

	def := DiskHeaderSchema
	if img.Info.Type == D81 {
		def = D81HeaderSchema
	}
	root.AddChild(document.NewStructNode("Disk header", document.IconBinary, def, f, img.Info.BlockOffset(img.Info.DirectoryTrack, 0)))

	table := &document.TableContent{Columns: entryColumns, Sortable: true}
	root.SetText(r.directory(img, table))
	root.AddChild(document.NewTableNode("Directory entries", document.IconTable, table))
	root.AddChild(document.NewTextNode("Block Availability Map", document.IconDocument, blockAvailabilityMap(img)))
	return nil
}

func (r *Reader) directory(img *Image, table *document.TableContent) string {
	f := r.file
	d := img.Info
	var sb strings.Builder

	label, _ := f.Bytes(d.LabelOffset(), labelLen)
	id, _ := f.Bytes(d.LabelOffset()+labelLen+diskIDGap, diskIDLen)
	fmt.Fprintf(&sb, "0 \"%s\" %s\n", Petscii(label), Petscii(id))

	visited := make(map[int]bool)
	track, sector := d.DirectoryStart()
	for valid := d.IsValidSector(track, sector); valid; track, sector, valid = img.NextBlock(track, sector) {
		block := d.BlockIndex(track, sector)
		if visited[block] {
			logger.Warn("directory chain loop", "file", f.Name(), "track", track, "sector", sector)
			fmt.Fprintf(&sb, "Warning: Directory chain loops back to track %d, sector %d\n", track, sector)
			break
		}
		visited[block] = true

		base := d.BlockOffset(track, sector)
		for off := base; off < base+BlockSize; off += DirEntrySize {
			raw, ok := f.Bytes(off, DirEntrySize)
			if !ok || raw[entryTypeOffset] == 0 {
				continue
			}
			e := Entry{
				Offset: off,
				Name:   Petscii(raw[entryNameOffset : entryNameOffset+entryNameLen]),
				Type:   FormatFileType(raw[entryTypeOffset], d.Type == D81),
				Track:  int(raw[entryTrackOffset]),
				Sector: int(raw[entryTrackOffset+1]),
				Blocks: int(raw[entrySizeOffset]) | int(raw[entrySizeOffset+1])<<8,
			}
			fmt.Fprintf(&sb, "%-5d\"%s\" %s\n", e.Blocks, e.Name, e.Type)
			table.AddRow(strconv.Itoa(e.Blocks), strings.TrimRight(e.Name, " "), strings.TrimSpace(e.Type),
				strconv.Itoa(e.Track), strconv.Itoa(e.Sector), fmt.Sprintf("0x%08x", e.Offset))
			r.entries = append(r.entries, e)
		}
	}

	fmt.Fprintf(&sb, "%d blocks free.\n", img.FreeBlocks())
	return sb.String()
}

func blockAvailabilityMap(img *Image) string {
	d := img.Info
	var sb strings.Builder
	sb.WriteString("Block Availability Map\n")

	width := d.SectorsInTrack(1)
	if width < 25 {
		sb.WriteString("    0    5    10   15   20\n")
		sb.WriteString("    |    |    |    |    |\n")
	} else {
		sb.WriteString("    0    5    10   15   20   25   30   35   40\n")
		sb.WriteString("    |    |    |    |    |    |    |    |    |\n")
	}
	sb.WriteString("   +" + strings.Repeat("-", width) + "+\n")

	lastSectors := 0
	errorBlocks := 0
	for track := 1; d.IsValidTrack(track); track++ {
		if track == 1 || track%5 == 0 {
			fmt.Fprintf(&sb, "%2d ", track)
		} else {
			sb.WriteString("   ")
		}

		sectors := d.SectorsInTrack(track)
		sb.WriteByte('|')
		for s := 0; s < sectors; s++ {
			if img.IsSectorAvailable(track, s) {
				sb.WriteByte(' ')
			} else {
				sb.WriteByte('*')
			}
			if code, ok := img.SectorError(track, s); ok && code > 0 {
				errorBlocks++
			}
		}

		if track > 1 && sectors < lastSectors {
			sb.WriteString("+" + strings.Repeat("-", lastSectors-sectors-1) + "+\n")
		} else {
			sb.WriteString("|\n")
		}

		// disk side separator
		if track == 35 && d.Type == D71 {
			sb.WriteString("   +" + strings.Repeat("-", width-4) + "+---+\n")
		}
		lastSectors = sectors
	}

	sb.WriteString("   +" + strings.Repeat("-", lastSectors) + "+\n")
	fmt.Fprintf(&sb, "%d blocks free.\n", img.FreeBlocks())
	if d.ErrorBytes {
		fmt.Fprintf(&sb, "%d blocks with error codes.\n", errorBlocks)
	}
	sb.WriteString("\n* = block allocated\n")
	return sb.String()
}

// RootNode returns the tree built by Load.
func (r *Reader) RootNode() *document.Node { return r.root }

// Cleanup has nothing to release.
func (r *Reader) Cleanup() error { return nil }

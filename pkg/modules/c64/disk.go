package c64

import "github.com/vividos/ProgrammersGlasses/pkg/view"

// BlockSize is the size of one disk sector.
const BlockSize = 256

// DiskType identifies a disk image layout.
type DiskType int

const (
	Invalid DiskType = iota
	D64
	D64Extended
	D71
	D81
)

func (t DiskType) String() string {
	switch t {
	case D64:
		return "D64"
	case D64Extended:
		return "D64 (40 tracks)"
	case D71:
		return "D71"
	case D81:
		return "D81"
	}
	return "invalid"
}

// trackRange is a run of tracks sharing one sector count.
type trackRange struct {
	first, last int
	sectors     int
}

// DiskInfo describes one recognized image size. ErrorBytes is set when one
// error code byte per block follows the block data.
type DiskInfo struct {
	Type           DiskType
	Tracks         int
	Blocks         int
	FileSize       int
	DirectoryTrack int
	ErrorBytes     bool
	ranges         []trackRange
}

var (
	d64Ranges  = []trackRange{{1, 17, 21}, {18, 24, 19}, {25, 30, 18}, {31, 35, 17}}
	d64xRanges = []trackRange{{1, 17, 21}, {18, 24, 19}, {25, 30, 18}, {31, 40, 17}}
	d81Ranges  = []trackRange{{1, 80, 40}}

	d71Ranges = []trackRange{
		{1, 17, 21}, {18, 24, 19}, {25, 30, 18}, {31, 35, 17},
		{36, 52, 21}, {53, 59, 19}, {60, 65, 18}, {66, 70, 17},
	}
)

var diskInfos = []DiskInfo{
	{D64, 35, 683, 174848, 18, false, d64Ranges},
	{D64, 35, 683, 174848 + 683, 18, true, d64Ranges},
	{D64Extended, 40, 768, 196608, 18, false, d64xRanges},
	{D64Extended, 40, 768, 196608 + 768, 18, true, d64xRanges},
	{D71, 70, 1366, 349696, 18, false, d71Ranges},
	{D71, 70, 1366, 349696 + 1366, 18, true, d71Ranges},
	{D81, 80, 3200, 819200, 40, false, d81Ranges},
	{D81, 80, 3200, 819200 + 3200, 40, true, d81Ranges},
}

// FindDiskInfo returns the layout of an image of the given file size.
func FindDiskInfo(size int) (DiskInfo, bool) {
	for _, info := range diskInfos {
		if info.FileSize == size {
			return info, true
		}
	}
	return DiskInfo{}, false
}

// IsDiskImage reports whether the size of f matches a known image layout.
func IsDiskImage(f *view.File) bool {
	_, ok := FindDiskInfo(f.Size())
	return ok
}

// SectorsInTrack returns the sector count of a 1-based track, or 0 for
// tracks outside the disk.
func (d DiskInfo) SectorsInTrack(track int) int {
	for _, r := range d.ranges {
		if track >= r.first && track <= r.last {
			return r.sectors
		}
	}
	return 0
}

// IsValidTrack reports whether track exists on the disk.
func (d DiskInfo) IsValidTrack(track int) bool { return d.SectorsInTrack(track) > 0 }

// IsValidSector reports whether sector (0-based) exists on track.
func (d DiskInfo) IsValidSector(track, sector int) bool {
	return sector >= 0 && sector < d.SectorsInTrack(track)
}

// BlockIndex returns the linear block number of track and sector.
func (d DiskInfo) BlockIndex(track, sector int) int {
	block := 0
	for _, r := range d.ranges {
		if track >= r.first && track <= r.last {
			return block + (track-r.first)*r.sectors + sector
		}
		block += (r.last - r.first + 1) * r.sectors
	}
	return block
}

// BlockOffset returns the file offset of track and sector.
func (d DiskInfo) BlockOffset(track, sector int) int {
	return d.BlockIndex(track, sector) * BlockSize
}

// LabelOffset returns the offset of the 16-byte disk name.
func (d DiskInfo) LabelOffset() int {
	if d.Type == D81 {
		return d.BlockOffset(d.DirectoryTrack, 0) + 0x04
	}
	return d.BlockOffset(d.DirectoryTrack, 0) + 0x90
}

// DirectoryStart returns the first directory block.
func (d DiskInfo) DirectoryStart() (track, sector int) {
	if d.Type == D81 {
		return d.DirectoryTrack, 3
	}
	return d.DirectoryTrack, 1
}

// bamEntry returns the offset of the free-block count of a track and the
// offset and length of its allocation bitmap.
func (d DiskInfo) bamEntry(track int) (free, bits, n int) {
	dir := d.BlockOffset(d.DirectoryTrack, 0)
	switch {
	case d.Type == D81 && track <= 40:
		free = d.BlockOffset(d.DirectoryTrack, 1) + 0x10 + 6*(track-1)
		return free, free + 1, 5
	case d.Type == D81:
		free = d.BlockOffset(d.DirectoryTrack, 2) + 0x10 + 6*(track-41)
		return free, free + 1, 5
	case track <= 35:
		free = dir + 4 + 4*(track-1)
		return free, free + 1, 3
	case d.Type == D71:
		// second side: counts in 18/0, bitmaps in block 53/0
		return dir + 0xDD + (track - 36), d.BlockOffset(53, 0) + 3*(track-36), 3
	default:
		// 40-track extension area used by Dolphin DOS
		free = dir + 0xAC + 4*(track-36)
		return free, free + 1, 3
	}
}

// countsFree reports whether the free blocks of track add to the disk
// total. Directory tracks are excluded.
func (d DiskInfo) countsFree(track int) bool {
	if track == d.DirectoryTrack {
		return false
	}
	return !(d.Type == D71 && track == 53)
}

// Image is a disk image with its block availability map scanned.
type Image struct {
	Info DiskInfo

	file      *view.File
	free      int
	available [][]bool // per track (index 0 unused), per sector
}

// NewImage recognizes f by its size and scans the block availability map.
func NewImage(f *view.File) (*Image, bool) {
	info, ok := FindDiskInfo(f.Size())
	if !ok {
		return nil, false
	}
	img := &Image{Info: info, file: f}
	img.scanBAM()
	return img, true
}

func (img *Image) scanBAM() {
	d := img.Info
	img.available = make([][]bool, d.Tracks+1)
	for track := 1; track <= d.Tracks; track++ {
		freeOff, bitsOff, n := d.bamEntry(track)
		if d.countsFree(track) {
			count, _ := img.file.U8(freeOff)
			img.free += int(count)
		}
		bits, ok := img.file.Bytes(bitsOff, n)
		sectors := make([]bool, d.SectorsInTrack(track))
		for s := range sectors {
			sectors[s] = ok && s/8 < len(bits) && bits[s/8]&(1<<(s%8)) != 0
		}
		img.available[track] = sectors
	}
}

// FreeBlocks returns the sum of the per-track free counts.
func (img *Image) FreeBlocks() int { return img.free }

// IsSectorAvailable reports whether the BAM marks the block as free.
func (img *Image) IsSectorAvailable(track, sector int) bool {
	if !img.Info.IsValidSector(track, sector) {
		return false
	}
	return img.available[track][sector]
}

// SectorError returns the error code stored for a block. ok is false when
// the image carries no error bytes.
func (img *Image) SectorError(track, sector int) (code byte, ok bool) {
	d := img.Info
	if !d.ErrorBytes || !d.IsValidSector(track, sector) {
		return 0, false
	}
	return img.file.U8(d.FileSize - d.Blocks + d.BlockIndex(track, sector))
}

// NextBlock follows the link stored in the first two bytes of a block.
// ok is false at the end of a chain or when the link is invalid.
func (img *Image) NextBlock(track, sector int) (nextTrack, nextSector int, ok bool) {
	if !img.Info.IsValidSector(track, sector) {
		return 0, 0, false
	}
	link, ok := img.file.Bytes(img.Info.BlockOffset(track, sector), 2)
	if !ok {
		return 0, 0, false
	}
	nextTrack, nextSector = int(link[0]), int(link[1])
	return nextTrack, nextSector, img.Info.IsValidSector(nextTrack, nextSector)
}

package types

const (
	// MbrSize is the size of the master boot record structure. On
	// media with larger blocks the record occupies the start of block
	// zero and the rest of the block is zero.
	MbrSize = 512

	// MbrBootSignature is the two-byte signature at offset 510,
	// stored as 0x55 then 0xAA.
	MbrBootSignature = 0xAA55

	// MbrOsTypeGptProtective is the partition type of the single
	// protective record covering a GPT disk.
	MbrOsTypeGptProtective = 0xEE
)

// Chs is a packed three-byte legacy cylinder/head/sector address:
// head, sector in the low six bits of the second byte with the high
// two cylinder bits above it, then the low eight cylinder bits.
type Chs [3]byte

// chsMax is the conventional "unrepresentable" CHS address written
// when an LBA exceeds the legacy geometry limit.
var chsMax = Chs{0xff, 0xff, 0xff}

// ChsFromLba converts a block address using the customary 255-head,
// 63-sector translation geometry. Addresses beyond cylinder 1023 are
// not representable and collapse to the all-ones value.
func ChsFromLba(lba uint64) Chs {
	const (
		headsPerCylinder  = 255
		sectorsPerTrack   = 63
		sectorsPerCylinder = headsPerCylinder * sectorsPerTrack
	)
	cylinder := lba / sectorsPerCylinder
	if cylinder > 1023 {
		return chsMax
	}
	head := (lba / sectorsPerTrack) % headsPerCylinder
	sector := lba%sectorsPerTrack + 1
	return Chs{
		byte(head),
		byte(sector) | byte(cylinder>>8)<<6,
		byte(cylinder),
	}
}

// MbrPartitionRecord is one of the four legacy partition records.
type MbrPartitionRecord struct {
	BootIndicator byte
	StartChs      Chs
	OsType        byte
	EndChs        Chs
	StartingLba   uint32
	SizeInLba     uint32
}

// IsUsed reports whether the record has a partition type assigned.
func (r *MbrPartitionRecord) IsUsed() bool {
	return r.OsType != 0
}

// Mbr is a legacy master boot record. For this package its only job is
// the protective form that keeps GPT-unaware tools from treating the
// disk as free space.
type Mbr struct {
	BootCode               [440]byte
	UniqueMbrDiskSignature uint32
	Unknown                uint16
	Partitions             [4]MbrPartitionRecord
	Signature              uint16
}

// NewProtectiveMbr builds the canonical protective MBR for a disk of
// the given total block count: a single 0xEE record starting at LBA 1
// and covering the rest of the disk, capped at the 32-bit limit for
// larger media.
func NewProtectiveMbr(numBlocks uint64) Mbr {
	if numBlocks == 0 {
		numBlocks = 1
	}
	sizeInLba := numBlocks - 1
	if sizeInLba > 0xffffffff {
		sizeInLba = 0xffffffff
	}
	return Mbr{
		Signature: MbrBootSignature,
		Partitions: [4]MbrPartitionRecord{
			{
				StartChs:    ChsFromLba(1),
				OsType:      MbrOsTypeGptProtective,
				EndChs:      ChsFromLba(numBlocks - 1),
				StartingLba: 1,
				SizeInLba:   uint32(sizeInLba),
			},
		},
	}
}

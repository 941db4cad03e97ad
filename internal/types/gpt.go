package types

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

const (
	// GptHeaderSignature is the "EFI PART" magic, read as a
	// little-endian uint64 from the first eight header bytes.
	GptHeaderSignature = 0x5452415020494645

	// GptHeaderRevision1 is revision 1.0, the only revision defined.
	GptHeaderRevision1 = 0x00010000

	// GptHeaderFixedSize is the size of the defined header fields, up
	// to and including the partition entry array CRC32. The declared
	// HeaderSize may be larger; the excess is reserved.
	GptHeaderFixedSize = 92

	// GptPartitionEntrySize is the standard size of one partition
	// entry. Headers may declare larger (power-of-two multiple) sizes;
	// the defined fields always fit in the first 128 bytes.
	GptPartitionEntrySize = 128

	// GptPartitionNameBytes is the byte width of the fixed UTF-16LE
	// partition name field, 36 code units.
	GptPartitionNameBytes = 72
)

// GptHeader is a GPT header as defined by UEFI 2.10 section 5.3.2.
// It is a plain in-memory value; encoding, decoding, and checksum
// computation live in the gpt parser package. MyLba and AlternateLba
// identify the primary/secondary pair; the controller writes a header
// to MyLba without second-guessing which slot that is.
type GptHeader struct {
	Signature                uint64
	Revision                 uint32
	HeaderSize               uint32
	HeaderCrc32              uint32
	MyLba                    Lba
	AlternateLba             Lba
	FirstUsableLba           Lba
	LastUsableLba            Lba
	DiskGuid                 Guid
	PartitionEntryLba        Lba
	NumberOfPartitionEntries uint32
	SizeOfPartitionEntry     uint32
	PartitionEntryArrayCrc32 uint32
}

// NewGptHeader returns a header with the signature, revision, and
// declared size fields populated; the caller fills in the placement
// and array fields.
func NewGptHeader() GptHeader {
	return GptHeader{
		Signature:  GptHeaderSignature,
		Revision:   GptHeaderRevision1,
		HeaderSize: GptHeaderFixedSize,
	}
}

// PartitionEntryArrayLayout derives the placement of the header's
// partition entry array on a medium with the given block size.
func (h *GptHeader) PartitionEntryArrayLayout(bs BlockSize) (PartitionEntryArrayLayout, error) {
	return ComputePartitionEntryArrayLayout(h.PartitionEntryLba, h.SizeOfPartitionEntry, h.NumberOfPartitionEntries, bs)
}

// GptPartitionAttributes is the 64-bit attribute field of a partition
// entry. Bits 0-2 are defined by UEFI; bits 48-63 are reserved for the
// partition type's own use.
type GptPartitionAttributes uint64

const (
	// GptAttributeRequiredPartition marks a partition the platform
	// needs to function.
	GptAttributeRequiredPartition GptPartitionAttributes = 1 << 0

	// GptAttributeNoBlockIoProtocol tells EFI not to produce block IO
	// for the partition.
	GptAttributeNoBlockIoProtocol GptPartitionAttributes = 1 << 1

	// GptAttributeLegacyBiosBootable marks the partition bootable by
	// legacy BIOS.
	GptAttributeLegacyBiosBootable GptPartitionAttributes = 1 << 2
)

// RequiredPartition reports bit 0.
func (a GptPartitionAttributes) RequiredPartition() bool {
	return a&GptAttributeRequiredPartition != 0
}

// NoBlockIoProtocol reports bit 1.
func (a GptPartitionAttributes) NoBlockIoProtocol() bool {
	return a&GptAttributeNoBlockIoProtocol != 0
}

// LegacyBiosBootable reports bit 2.
func (a GptPartitionAttributes) LegacyBiosBootable() bool {
	return a&GptAttributeLegacyBiosBootable != 0
}

// TypeSpecific returns the type-reserved bits 48-63.
func (a GptPartitionAttributes) TypeSpecific() uint16 {
	return uint16(a >> 48)
}

// GptPartitionEntry is one record of the partition entry array, UEFI
// 2.10 section 5.3.3. An entry whose PartitionTypeGuid is all zero is
// unused; no other field participates in that determination.
type GptPartitionEntry struct {
	PartitionTypeGuid   Guid
	UniquePartitionGuid Guid
	StartingLba         Lba
	EndingLba           Lba
	Attributes          GptPartitionAttributes
	NameRaw             [GptPartitionNameBytes]byte
}

// IsUsed reports whether the entry describes a partition.
func (e *GptPartitionEntry) IsUsed() bool {
	return !e.PartitionTypeGuid.IsZero()
}

// Name decodes the fixed UTF-16LE name field, stopping at the first
// NUL code unit.
func (e *GptPartitionEntry) Name() string {
	units := make([]uint16, 0, GptPartitionNameBytes/2)
	for i := 0; i+1 < len(e.NameRaw); i += 2 {
		u := binary.LittleEndian.Uint16(e.NameRaw[i : i+2])
		if u == 0 {
			break
		}
		units = append(units, u)
	}
	return string(utf16.Decode(units))
}

// SetName encodes a name into the fixed UTF-16LE field, NUL-padding
// the remainder. Names longer than 36 UTF-16 code units are rejected.
func (e *GptPartitionEntry) SetName(name string) error {
	units := utf16.Encode([]rune(name))
	if len(units) > GptPartitionNameBytes/2 {
		return fmt.Errorf("partition name %q is longer than %d UTF-16 code units", name, GptPartitionNameBytes/2)
	}
	e.NameRaw = [GptPartitionNameBytes]byte{}
	for i, u := range units {
		binary.LittleEndian.PutUint16(e.NameRaw[i*2:i*2+2], u)
	}
	return nil
}

package types

import (
	"fmt"
	"math"
)

// PartitionEntryArrayLayout describes where a partition entry array
// lives on disk and how large it is. NumBytes is the logical length
// (entry count times entry size); NumBytesRounded is that length
// rounded up to whole blocks and is what actually gets read or
// written. Compute layouts with ComputePartitionEntryArrayLayout or
// from a decoded header with GptHeader.PartitionEntryArrayLayout.
type PartitionEntryArrayLayout struct {
	// StartLba is the first block of the array.
	StartLba Lba

	// EntrySize is the size of one partition entry in bytes.
	EntrySize uint32

	// NumEntries is the logical entry count declared by the header,
	// not rounded to any block boundary.
	NumEntries uint32

	// NumBytes is EntrySize * NumEntries.
	NumBytes uint64

	// NumBytesRounded is NumBytes rounded up to a block multiple.
	NumBytesRounded uint64

	// BlocksSpanned is NumBytesRounded in blocks.
	BlocksSpanned uint64
}

// minimum alignment of a partition entry, per UEFI 5.3.3 the entry
// size is a multiple of 8, but 4 is all the codec itself requires.
const entrySizeAlignment = 4

// ComputePartitionEntryArrayLayout derives the full placement of a
// partition entry array from its start block, per-entry size, entry
// count, and the medium's block size. The entry size must be a nonzero
// multiple of 4, and neither the logical nor the rounded length may
// overflow.
func ComputePartitionEntryArrayLayout(start Lba, entrySize, numEntries uint32, bs BlockSize) (PartitionEntryArrayLayout, error) {
	if entrySize == 0 || entrySize%entrySizeAlignment != 0 {
		return PartitionEntryArrayLayout{}, fmt.Errorf("entry size %d: %w", entrySize, ErrInvalidEntrySize)
	}

	// Two 32-bit factors cannot overflow the 64-bit product.
	numBytes := uint64(entrySize) * uint64(numEntries)

	rounded, err := bs.RoundUp(numBytes)
	if err != nil {
		return PartitionEntryArrayLayout{}, err
	}

	// The array must also end within the addressable byte range.
	startByte, err := start.ByteOffset(bs)
	if err != nil {
		return PartitionEntryArrayLayout{}, err
	}
	if rounded > math.MaxUint64-startByte {
		return PartitionEntryArrayLayout{}, fmt.Errorf("array at LBA %d spanning %d bytes: %w", start, rounded, ErrOverflow)
	}

	return PartitionEntryArrayLayout{
		StartLba:        start,
		EntrySize:       entrySize,
		NumEntries:      numEntries,
		NumBytes:        numBytes,
		NumBytesRounded: rounded,
		BlocksSpanned:   rounded / bs.Uint64(),
	}, nil
}

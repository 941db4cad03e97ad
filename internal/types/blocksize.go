package types

import (
	"fmt"
	"math"
)

// BlockSize is a validated I/O granularity in bytes. Every offset and
// length handed to a block device is a multiple of it. Construct values
// with NewBlockSize or use one of the predefined constants; all of the
// constants are valid by construction.
type BlockSize uint32

// The block sizes in common use. 512 is the traditional logical block
// size; 4096 is standard for advanced-format drives.
const (
	BlockSize256  BlockSize = 256
	BlockSize512  BlockSize = 512
	BlockSize1024 BlockSize = 1024
	BlockSize2048 BlockSize = 2048
	BlockSize4096 BlockSize = 4096
)

// NewBlockSize validates a raw byte count as a block size. Only powers
// of two from 256 through 4096 are accepted.
func NewBlockSize(size uint32) (BlockSize, error) {
	switch BlockSize(size) {
	case BlockSize256, BlockSize512, BlockSize1024, BlockSize2048, BlockSize4096:
		return BlockSize(size), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidBlockSize, size)
}

// Uint32 returns the block size in bytes.
func (bs BlockSize) Uint32() uint32 {
	return uint32(bs)
}

// Uint64 returns the block size in bytes as a uint64, the form most
// offset arithmetic wants.
func (bs BlockSize) Uint64() uint64 {
	return uint64(bs)
}

// Int returns the block size in bytes as an int for slice sizing.
func (bs BlockSize) Int() int {
	return int(bs)
}

// IsMultiple reports whether length is a positive multiple of the
// block size.
func (bs BlockSize) IsMultiple(length int) bool {
	return length > 0 && length%int(bs) == 0
}

// BlocksSpanned returns how many whole blocks a buffer of the given
// length covers. The length must already be a block multiple.
func (bs BlockSize) BlocksSpanned(length int) uint64 {
	return uint64(length) / uint64(bs)
}

// RoundUp rounds a byte length up to the next multiple of the block
// size, failing on overflow.
func (bs BlockSize) RoundUp(length uint64) (uint64, error) {
	b := uint64(bs)
	if length > math.MaxUint64-(b-1) {
		return 0, fmt.Errorf("rounding %d up to a %d-byte block: %w", length, b, ErrOverflow)
	}
	return (length + b - 1) / b * b, nil
}

// Lba is a zero-based logical block address.
type Lba uint64

// ByteOffset converts the address to a byte offset on a medium with
// the given block size, failing instead of wrapping on overflow.
func (lba Lba) ByteOffset(bs BlockSize) (uint64, error) {
	if uint64(lba) > math.MaxUint64/bs.Uint64() {
		return 0, fmt.Errorf("LBA %d with block size %d: %w", lba, bs, ErrOverflow)
	}
	return uint64(lba) * bs.Uint64(), nil
}

// Add offsets the address by a block count, failing on overflow.
func (lba Lba) Add(blocks uint64) (Lba, error) {
	if uint64(lba) > math.MaxUint64-blocks {
		return 0, fmt.Errorf("LBA %d + %d blocks: %w", lba, blocks, ErrOverflow)
	}
	return lba + Lba(blocks), nil
}

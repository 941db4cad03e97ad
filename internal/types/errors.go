package types

import "errors"

// Errors shared by the block device implementations and the disk
// controller. Callers match them with errors.Is; errors from an
// underlying medium are wrapped around these, never replaced silently.
var (
	// ErrOutOfBounds indicates a block range that extends past the
	// last block of the device.
	ErrOutOfBounds = errors.New("block range extends beyond the end of the device")

	// ErrNotBlockSizeMultiple indicates a buffer whose length is not a
	// positive multiple of the device block size.
	ErrNotBlockSizeMultiple = errors.New("buffer length is not a positive multiple of the block size")

	// ErrReadOnly indicates a write on a read-only device.
	ErrReadOnly = errors.New("device is read-only")

	// ErrOverflow indicates that a byte offset or length computation
	// would overflow the 64-bit address space.
	ErrOverflow = errors.New("arithmetic overflow in block offset computation")

	// ErrBufferTooSmall indicates a caller-supplied buffer smaller
	// than the structure being read or written requires.
	ErrBufferTooSmall = errors.New("buffer is too small for the requested structure")

	// ErrInvalidBlockSize indicates a block size outside the supported
	// power-of-two set.
	ErrInvalidBlockSize = errors.New("block size must be a power of two between 256 and 4096")

	// ErrInvalidEntrySize indicates a partition entry size that is
	// zero or not a multiple of the minimal 4-byte alignment.
	ErrInvalidEntrySize = errors.New("partition entry size must be a nonzero multiple of 4")

	// ErrInvalidSignature indicates a decoded structure whose
	// signature field does not match the expected magic.
	ErrInvalidSignature = errors.New("signature mismatch")

	// ErrInvalidHeaderSize indicates a GPT header whose declared size
	// is smaller than the fixed fields or larger than one block.
	ErrInvalidHeaderSize = errors.New("declared header size is invalid")
)

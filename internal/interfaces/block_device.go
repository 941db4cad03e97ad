// File: internal/interfaces/block_device.go
package interfaces

import (
	"github.com/deploymenttheory/go-gpt/internal/types"
)

// BlockDevice is the storage capability the disk controller operates
// on. Implementations may be backed by a memory region, a file, or a
// raw device; the controller only ever issues whole-block transfers.
//
// Contract, honored by every implementation:
//   - buffers passed to ReadBlocks/WriteBlocks must be a positive
//     multiple of BlockSize() long, otherwise
//     types.ErrNotBlockSizeMultiple;
//   - a transfer whose span exceeds TotalBlocks() fails with
//     types.ErrOutOfBounds and moves no data;
//   - transfers are all-or-nothing: no partial read or write is ever
//     reported as success.
//
// All operations are synchronous. A device is exclusively owned by one
// controller; implementations need no internal locking.
type BlockDevice interface {
	// BlockSize returns the fixed I/O granularity of the medium.
	BlockSize() types.BlockSize

	// TotalBlocks returns the number of addressable blocks.
	TotalBlocks() uint64

	// ReadBlocks fills buf with the contents of the blocks starting
	// at start, in order.
	ReadBlocks(start types.Lba, buf []byte) error

	// WriteBlocks writes buf to the blocks starting at start.
	WriteBlocks(start types.Lba, buf []byte) error

	// Flush forces any buffered writes to durable storage. Errors are
	// surfaced, never retried.
	Flush() error
}

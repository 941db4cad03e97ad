// Package device provides block device implementations backed by
// memory regions and files. Each implementation satisfies
// interfaces.BlockDevice and enforces the same bounds and alignment
// contract before touching its medium.
package device

import (
	"fmt"

	"github.com/deploymenttheory/go-gpt/internal/types"
)

// checkTransfer validates one block transfer against the capability
// contract: buffer length a positive multiple of the block size, and
// the spanned range inside the device. Returns the block span.
func checkTransfer(bs types.BlockSize, totalBlocks uint64, start types.Lba, buf []byte) (uint64, error) {
	if !bs.IsMultiple(len(buf)) {
		return 0, fmt.Errorf("transfer of %d bytes with block size %d: %w", len(buf), bs, types.ErrNotBlockSizeMultiple)
	}
	span := bs.BlocksSpanned(len(buf))
	end, err := start.Add(span)
	if err != nil {
		return 0, err
	}
	if uint64(end) > totalBlocks {
		return 0, fmt.Errorf("blocks [%d, %d) on a %d-block device: %w", start, end, totalBlocks, types.ErrOutOfBounds)
	}
	return span, nil
}

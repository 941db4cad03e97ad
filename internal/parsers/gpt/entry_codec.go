// File: internal/parsers/gpt/entry_codec.go
package gpt

import (
	"fmt"

	"github.com/deploymenttheory/go-gpt/internal/types"
)

// DecodeGptPartitionEntry parses one partition entry from the start of
// buf. Larger declared entry sizes are allowed; the bytes past the
// defined fields are reserved and ignored.
func DecodeGptPartitionEntry(buf []byte) (*types.GptPartitionEntry, error) {
	if len(buf) < types.GptPartitionEntrySize {
		return nil, fmt.Errorf("partition entry needs %d bytes, got %d: %w", types.GptPartitionEntrySize, len(buf), types.ErrBufferTooSmall)
	}

	e := &types.GptPartitionEntry{
		StartingLba: types.Lba(endian.Uint64(buf[32:40])),
		EndingLba:   types.Lba(endian.Uint64(buf[40:48])),
		Attributes:  types.GptPartitionAttributes(endian.Uint64(buf[48:56])),
	}
	copy(e.PartitionTypeGuid[:], buf[0:16])
	copy(e.UniquePartitionGuid[:], buf[16:32])
	copy(e.NameRaw[:], buf[56:128])
	return e, nil
}

// EncodeGptPartitionEntry serializes one partition entry into the
// start of buf, zero-filling any reserved tail the declared entry size
// leaves past the defined fields.
func EncodeGptPartitionEntry(e *types.GptPartitionEntry, buf []byte) error {
	if len(buf) < types.GptPartitionEntrySize {
		return fmt.Errorf("partition entry needs %d bytes, got %d: %w", types.GptPartitionEntrySize, len(buf), types.ErrBufferTooSmall)
	}

	copy(buf[0:16], e.PartitionTypeGuid[:])
	copy(buf[16:32], e.UniquePartitionGuid[:])
	endian.PutUint64(buf[32:40], uint64(e.StartingLba))
	endian.PutUint64(buf[40:48], uint64(e.EndingLba))
	endian.PutUint64(buf[48:56], uint64(e.Attributes))
	copy(buf[56:128], e.NameRaw[:])
	for i := types.GptPartitionEntrySize; i < len(buf); i++ {
		buf[i] = 0
	}
	return nil
}

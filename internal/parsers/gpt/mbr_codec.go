// File: internal/parsers/gpt/mbr_codec.go
package gpt

import (
	"fmt"

	"github.com/deploymenttheory/go-gpt/internal/types"
)

// mbrPartitionRecordSize is the size of one legacy partition record.
const mbrPartitionRecordSize = 16

// mbrPartitionTableOffset is where the four partition records start.
const mbrPartitionTableOffset = 446

// DecodeMbr parses a master boot record from the start of a block.
// Only the boot signature is validated.
func DecodeMbr(block []byte) (*types.Mbr, error) {
	if len(block) < types.MbrSize {
		return nil, fmt.Errorf("MBR needs %d bytes, got %d: %w", types.MbrSize, len(block), types.ErrBufferTooSmall)
	}

	signature := endian.Uint16(block[510:512])
	if signature != types.MbrBootSignature {
		return nil, fmt.Errorf("MBR boot signature 0x%04X: %w", signature, types.ErrInvalidSignature)
	}

	m := &types.Mbr{
		UniqueMbrDiskSignature: endian.Uint32(block[440:444]),
		Unknown:                endian.Uint16(block[444:446]),
		Signature:              signature,
	}
	copy(m.BootCode[:], block[0:440])
	for i := range m.Partitions {
		off := mbrPartitionTableOffset + i*mbrPartitionRecordSize
		r := &m.Partitions[i]
		r.BootIndicator = block[off]
		copy(r.StartChs[:], block[off+1:off+4])
		r.OsType = block[off+4]
		copy(r.EndChs[:], block[off+5:off+8])
		r.StartingLba = endian.Uint32(block[off+8 : off+12])
		r.SizeInLba = endian.Uint32(block[off+12 : off+16])
	}
	return m, nil
}

// EncodeMbr serializes a master boot record into the start of a block,
// zero-filling the rest of the block on larger block sizes.
func EncodeMbr(m *types.Mbr, block []byte) error {
	if len(block) < types.MbrSize {
		return fmt.Errorf("MBR needs %d bytes, got %d: %w", types.MbrSize, len(block), types.ErrBufferTooSmall)
	}

	for i := range block {
		block[i] = 0
	}

	copy(block[0:440], m.BootCode[:])
	endian.PutUint32(block[440:444], m.UniqueMbrDiskSignature)
	endian.PutUint16(block[444:446], m.Unknown)
	for i := range m.Partitions {
		off := mbrPartitionTableOffset + i*mbrPartitionRecordSize
		r := &m.Partitions[i]
		block[off] = r.BootIndicator
		copy(block[off+1:off+4], r.StartChs[:])
		block[off+4] = r.OsType
		copy(block[off+5:off+8], r.EndChs[:])
		endian.PutUint32(block[off+8:off+12], r.StartingLba)
		endian.PutUint32(block[off+12:off+16], r.SizeInLba)
	}
	endian.PutUint16(block[510:512], m.Signature)
	return nil
}

// Package gpt encodes and decodes the on-disk GPT structures: the
// protective MBR, the GPT header, and partition entries. The codec is
// deliberately checksum-agnostic: decoding never verifies stored
// CRC32 values, encoding recomputes the header CRC32 it writes.
// Callers that want verification use the functions in checksum.go as a
// separate step.
package gpt

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-gpt/internal/types"
)

// GPT structures are always little-endian on disk, per UEFI 2.10
// section 5.3.
var endian = binary.LittleEndian

// DecodeGptHeader parses a GPT header from the start of a block-sized
// buffer. The signature must match and the declared header size must
// fit the defined fields and the block; the stored checksums are
// carried through untouched and unverified.
func DecodeGptHeader(block []byte) (*types.GptHeader, error) {
	if len(block) < types.GptHeaderFixedSize {
		return nil, fmt.Errorf("GPT header needs %d bytes, got %d: %w", types.GptHeaderFixedSize, len(block), types.ErrBufferTooSmall)
	}

	signature := endian.Uint64(block[0:8])
	if signature != types.GptHeaderSignature {
		return nil, fmt.Errorf("GPT header signature 0x%016X: %w", signature, types.ErrInvalidSignature)
	}

	headerSize := endian.Uint32(block[12:16])
	if headerSize < types.GptHeaderFixedSize || uint64(headerSize) > uint64(len(block)) {
		return nil, fmt.Errorf("declared header size %d with %d-byte block: %w", headerSize, len(block), types.ErrInvalidHeaderSize)
	}

	h := &types.GptHeader{
		Signature:                signature,
		Revision:                 endian.Uint32(block[8:12]),
		HeaderSize:               headerSize,
		HeaderCrc32:              endian.Uint32(block[16:20]),
		MyLba:                    types.Lba(endian.Uint64(block[24:32])),
		AlternateLba:             types.Lba(endian.Uint64(block[32:40])),
		FirstUsableLba:           types.Lba(endian.Uint64(block[40:48])),
		LastUsableLba:            types.Lba(endian.Uint64(block[48:56])),
		PartitionEntryLba:        types.Lba(endian.Uint64(block[72:80])),
		NumberOfPartitionEntries: endian.Uint32(block[80:84]),
		SizeOfPartitionEntry:     endian.Uint32(block[84:88]),
		PartitionEntryArrayCrc32: endian.Uint32(block[88:92]),
	}
	copy(h.DiskGuid[:], block[56:72])
	return h, nil
}

// EncodeGptHeader serializes a header into the start of a block-sized
// buffer, zero-filling the reserved remainder of the block. The header
// CRC32 is recomputed over the declared HeaderSize bytes with the
// checksum field zeroed; whatever h.HeaderCrc32 holds is ignored.
func EncodeGptHeader(h *types.GptHeader, block []byte) error {
	if uint64(h.HeaderSize) < types.GptHeaderFixedSize || uint64(h.HeaderSize) > uint64(len(block)) {
		return fmt.Errorf("declared header size %d with %d-byte block: %w", h.HeaderSize, len(block), types.ErrInvalidHeaderSize)
	}

	for i := range block {
		block[i] = 0
	}

	endian.PutUint64(block[0:8], h.Signature)
	endian.PutUint32(block[8:12], h.Revision)
	endian.PutUint32(block[12:16], h.HeaderSize)
	// block[16:20] is the header CRC32, zero during computation.
	// block[20:24] is reserved.
	endian.PutUint64(block[24:32], uint64(h.MyLba))
	endian.PutUint64(block[32:40], uint64(h.AlternateLba))
	endian.PutUint64(block[40:48], uint64(h.FirstUsableLba))
	endian.PutUint64(block[48:56], uint64(h.LastUsableLba))
	copy(block[56:72], h.DiskGuid[:])
	endian.PutUint64(block[72:80], uint64(h.PartitionEntryLba))
	endian.PutUint32(block[80:84], h.NumberOfPartitionEntries)
	endian.PutUint32(block[84:88], h.SizeOfPartitionEntry)
	endian.PutUint32(block[88:92], h.PartitionEntryArrayCrc32)

	endian.PutUint32(block[16:20], crc32Checksum(block[:h.HeaderSize]))
	return nil
}

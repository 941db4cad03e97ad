package gpt

import (
	"fmt"
	"hash/crc32"

	"github.com/deploymenttheory/go-gpt/internal/types"
)

// Optional checksum computation and verification over decoded GPT
// structures. Kept apart from the codec so that reading a disk with
// stale checksums still decodes, and callers choose when to validate.

func crc32Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// HeaderChecksum computes the CRC32 a correctly written header would
// carry: over the declared HeaderSize bytes of the serialized form,
// with the checksum field itself zeroed.
func HeaderChecksum(h *types.GptHeader) (uint32, error) {
	if h.HeaderSize < types.GptHeaderFixedSize {
		return 0, fmt.Errorf("declared header size %d: %w", h.HeaderSize, types.ErrInvalidHeaderSize)
	}
	buf := make([]byte, h.HeaderSize)
	if err := EncodeGptHeader(h, buf); err != nil {
		return 0, err
	}
	return endian.Uint32(buf[16:20]), nil
}

// VerifyHeaderChecksum reports whether the header's stored CRC32
// matches a fresh computation over its fields.
func VerifyHeaderChecksum(h *types.GptHeader) (bool, error) {
	want, err := HeaderChecksum(h)
	if err != nil {
		return false, err
	}
	return h.HeaderCrc32 == want, nil
}

// EntryArrayChecksum computes the CRC32 of a partition entry array.
// The checksum covers the logical length declared by the layout, not
// the block-rounded length that is read and written.
func EntryArrayChecksum(layout types.PartitionEntryArrayLayout, arrayBytes []byte) (uint32, error) {
	if uint64(len(arrayBytes)) < layout.NumBytes {
		return 0, fmt.Errorf("entry array needs %d bytes, got %d: %w", layout.NumBytes, len(arrayBytes), types.ErrBufferTooSmall)
	}
	return crc32Checksum(arrayBytes[:layout.NumBytes]), nil
}

// VerifyEntryArrayChecksum reports whether the header's stored entry
// array CRC32 matches the given array bytes.
func VerifyEntryArrayChecksum(h *types.GptHeader, layout types.PartitionEntryArrayLayout, arrayBytes []byte) (bool, error) {
	got, err := EntryArrayChecksum(layout, arrayBytes)
	if err != nil {
		return false, err
	}
	return h.PartitionEntryArrayCrc32 == got, nil
}

package disk

import (
	"fmt"

	"github.com/deploymenttheory/go-gpt/internal/parsers/gpt"
	"github.com/deploymenttheory/go-gpt/internal/types"
)

// GptPartitionEntryArray is an indexable view of a whole partition
// entry array over a caller-supplied buffer. The view borrows the
// buffer for its lifetime; entries are decoded from and encoded into
// it in place. The backing bytes always cover the block-rounded
// length, so the view can be written back in one multi-block call.
type GptPartitionEntryArray struct {
	layout types.PartitionEntryArrayLayout
	buf    []byte
}

// NewGptPartitionEntryArray builds a view from a layout and a buffer
// of at least the layout's block-rounded length. The buffer contents
// are taken as-is; zero the buffer first when building a fresh array.
func NewGptPartitionEntryArray(layout types.PartitionEntryArrayLayout, bs types.BlockSize, buf []byte) (*GptPartitionEntryArray, error) {
	if layout.NumBytesRounded%bs.Uint64() != 0 {
		return nil, fmt.Errorf("layout rounded to %d bytes for block size %d: %w", layout.NumBytesRounded, bs, types.ErrNotBlockSizeMultiple)
	}
	if uint64(len(buf)) < layout.NumBytesRounded {
		return nil, fmt.Errorf("entry array needs %d bytes, got %d: %w", layout.NumBytesRounded, len(buf), types.ErrBufferTooSmall)
	}
	return &GptPartitionEntryArray{
		layout: layout,
		buf:    buf[:layout.NumBytesRounded],
	}, nil
}

// Layout returns the array's placement and sizing.
func (a *GptPartitionEntryArray) Layout() types.PartitionEntryArrayLayout {
	return a.layout
}

// StartLba returns the block the array is written to.
func (a *GptPartitionEntryArray) StartLba() types.Lba {
	return a.layout.StartLba
}

// SetStartLba repoints the view at a different on-disk location,
// typically the secondary array position when mirroring.
func (a *GptPartitionEntryArray) SetStartLba(lba types.Lba) {
	a.layout.StartLba = lba
}

// Bytes returns the block-rounded backing bytes. The logical array
// content is the leading layout.NumBytes of it.
func (a *GptPartitionEntryArray) Bytes() []byte {
	return a.buf
}

// entrySlice bounds-checks an entry index and returns its bytes.
func (a *GptPartitionEntryArray) entrySlice(index uint32) ([]byte, error) {
	if index >= a.layout.NumEntries {
		return nil, fmt.Errorf("entry index %d of %d: %w", index, a.layout.NumEntries, types.ErrOutOfBounds)
	}
	off := uint64(index) * uint64(a.layout.EntrySize)
	return a.buf[off : off+uint64(a.layout.EntrySize)], nil
}

// Entry decodes the entry at the given index.
func (a *GptPartitionEntryArray) Entry(index uint32) (*types.GptPartitionEntry, error) {
	b, err := a.entrySlice(index)
	if err != nil {
		return nil, err
	}
	return gpt.DecodeGptPartitionEntry(b)
}

// SetEntry encodes an entry into the given index.
func (a *GptPartitionEntryArray) SetEntry(index uint32, e *types.GptPartitionEntry) error {
	b, err := a.entrySlice(index)
	if err != nil {
		return err
	}
	return gpt.EncodeGptPartitionEntry(e, b)
}

// Checksum computes the CRC32 of the array's logical bytes, the value
// a header's PartitionEntryArrayCrc32 field should carry.
func (a *GptPartitionEntryArray) Checksum() (uint32, error) {
	return gpt.EntryArrayChecksum(a.layout, a.buf)
}

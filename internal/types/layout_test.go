package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePartitionEntryArrayLayout(t *testing.T) {
	tests := []struct {
		name        string
		start       Lba
		entrySize   uint32
		numEntries  uint32
		blockSize   BlockSize
		wantBytes   uint64
		wantRounded uint64
		wantBlocks  uint64
	}{
		{
			name:        "standard 128x128 over 512",
			start:       2,
			entrySize:   128,
			numEntries:  128,
			blockSize:   BlockSize512,
			wantBytes:   16384,
			wantRounded: 16384,
			wantBlocks:  32,
		},
		{
			name:        "partial last block rounds up",
			start:       2,
			entrySize:   128,
			numEntries:  5,
			blockSize:   BlockSize512,
			wantBytes:   640,
			wantRounded: 1024,
			wantBlocks:  2,
		},
		{
			name:        "zero entries",
			start:       2,
			entrySize:   128,
			numEntries:  0,
			blockSize:   BlockSize512,
			wantBytes:   0,
			wantRounded: 0,
			wantBlocks:  0,
		},
		{
			name:        "4K blocks",
			start:       6,
			entrySize:   128,
			numEntries:  128,
			blockSize:   BlockSize4096,
			wantBytes:   16384,
			wantRounded: 16384,
			wantBlocks:  4,
		},
		{
			name:        "entry size not dividing block size",
			start:       2,
			entrySize:   12,
			numEntries:  100,
			blockSize:   BlockSize512,
			wantBytes:   1200,
			wantRounded: 1536,
			wantBlocks:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout, err := ComputePartitionEntryArrayLayout(tt.start, tt.entrySize, tt.numEntries, tt.blockSize)
			require.NoError(t, err)

			assert.Equal(t, tt.start, layout.StartLba)
			assert.Equal(t, tt.entrySize, layout.EntrySize)
			assert.Equal(t, tt.numEntries, layout.NumEntries)
			assert.Equal(t, tt.wantBytes, layout.NumBytes)
			assert.Equal(t, tt.wantRounded, layout.NumBytesRounded)
			assert.Equal(t, tt.wantBlocks, layout.BlocksSpanned)

			// Rounding invariants.
			assert.Zero(t, layout.NumBytesRounded%tt.blockSize.Uint64())
			assert.GreaterOrEqual(t, layout.NumBytesRounded, layout.NumBytes)
			assert.Less(t, layout.NumBytesRounded-layout.NumBytes, tt.blockSize.Uint64())
		})
	}
}

func TestComputePartitionEntryArrayLayoutErrors(t *testing.T) {
	tests := []struct {
		name       string
		start      Lba
		entrySize  uint32
		numEntries uint32
		wantErr    error
	}{
		{
			name:      "zero entry size",
			start:     2,
			entrySize: 0,
			wantErr:   ErrInvalidEntrySize,
		},
		{
			name:      "unaligned entry size",
			start:     2,
			entrySize: 126,
			wantErr:   ErrInvalidEntrySize,
		},
		{
			name:       "start offset overflow",
			start:      Lba(math.MaxUint64),
			entrySize:  128,
			numEntries: 128,
			wantErr:    ErrOverflow,
		},
		{
			name:       "array end overflows address space",
			start:      Lba(math.MaxUint64 / 512),
			entrySize:  128,
			numEntries: 128,
			wantErr:    ErrOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputePartitionEntryArrayLayout(tt.start, tt.entrySize, tt.numEntries, BlockSize512)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGptHeaderPartitionEntryArrayLayout(t *testing.T) {
	h := NewGptHeader()
	h.PartitionEntryLba = 2
	h.NumberOfPartitionEntries = 128
	h.SizeOfPartitionEntry = 128

	layout, err := h.PartitionEntryArrayLayout(BlockSize512)
	require.NoError(t, err)
	assert.Equal(t, Lba(2), layout.StartLba)
	assert.Equal(t, uint64(32), layout.BlocksSpanned)
}

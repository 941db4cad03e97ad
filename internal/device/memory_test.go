package device

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-gpt/internal/types"
)

func TestMemoryDeviceReadWrite(t *testing.T) {
	data := make([]byte, 8*512)
	dev := NewMemoryDevice(data, types.BlockSize512)

	assert.Equal(t, types.BlockSize512, dev.BlockSize())
	assert.Equal(t, uint64(8), dev.TotalBlocks())

	// Multi-block write lands at the right byte offset.
	buf := bytes.Repeat([]byte{0xab}, 2*512)
	require.NoError(t, dev.WriteBlocks(3, buf))
	assert.Equal(t, byte(0), data[3*512-1])
	assert.Equal(t, byte(0xab), data[3*512])
	assert.Equal(t, byte(0xab), data[5*512-1])
	assert.Equal(t, byte(0), data[5*512])

	got := make([]byte, 2*512)
	require.NoError(t, dev.ReadBlocks(3, got))
	assert.Equal(t, buf, got)

	require.NoError(t, dev.Flush())
}

func TestMemoryDeviceBounds(t *testing.T) {
	dev := NewMemoryDevice(make([]byte, 8*512), types.BlockSize512)

	tests := []struct {
		name    string
		start   types.Lba
		bufLen  int
		wantErr error
	}{
		{"read past end", 7, 2 * 512, types.ErrOutOfBounds},
		{"start past end", 8, 512, types.ErrOutOfBounds},
		{"span wildly past end", 0, 16 * 512, types.ErrOutOfBounds},
		{"empty buffer", 0, 0, types.ErrNotBlockSizeMultiple},
		{"partial block", 0, 511, types.ErrNotBlockSizeMultiple},
		{"one and a half blocks", 0, 768, types.ErrNotBlockSizeMultiple},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := make([]byte, tt.bufLen)
			assert.ErrorIs(t, dev.ReadBlocks(tt.start, buf), tt.wantErr)
			assert.ErrorIs(t, dev.WriteBlocks(tt.start, buf), tt.wantErr)
		})
	}

	// A rejected write must not touch the medium.
	data := make([]byte, 4*512)
	dev = NewMemoryDevice(data, types.BlockSize512)
	err := dev.WriteBlocks(3, bytes.Repeat([]byte{0xff}, 2*512))
	require.ErrorIs(t, err, types.ErrOutOfBounds)
	assert.Equal(t, make([]byte, 4*512), data)
}

func TestMemoryDeviceTruncatesPartialTrailingBlock(t *testing.T) {
	// 100 trailing bytes are not a whole block and not addressable.
	dev := NewMemoryDevice(make([]byte, 4*512+100), types.BlockSize512)
	assert.Equal(t, uint64(4), dev.TotalBlocks())
	assert.ErrorIs(t, dev.ReadBlocks(4, make([]byte, 512)), types.ErrOutOfBounds)
}

func TestReadOnlyMemoryDevice(t *testing.T) {
	data := bytes.Repeat([]byte{0x5a}, 2*512)
	dev := NewReadOnlyMemoryDevice(data, types.BlockSize512)

	got := make([]byte, 512)
	require.NoError(t, dev.ReadBlocks(1, got))
	assert.Equal(t, data[512:], got)

	assert.ErrorIs(t, dev.WriteBlocks(0, make([]byte, 512)), types.ErrReadOnly)
	assert.NoError(t, dev.Flush())
}

package device

import (
	"github.com/deploymenttheory/go-gpt/internal/interfaces"
	"github.com/deploymenttheory/go-gpt/internal/types"
)

// MemoryDevice exposes a byte slice as a block device. Bytes past the
// last whole block are not addressable. A read-only MemoryDevice
// rejects writes with types.ErrReadOnly; Flush is always a no-op
// because there is nothing buffered.
type MemoryDevice struct {
	data      []byte
	blockSize types.BlockSize
	readOnly  bool
}

// Compile-time check
var _ interfaces.BlockDevice = (*MemoryDevice)(nil)

// NewMemoryDevice wraps a mutable byte slice as a read-write block
// device. The caller keeps ownership of the slice; writes are visible
// in it immediately.
func NewMemoryDevice(data []byte, blockSize types.BlockSize) *MemoryDevice {
	return &MemoryDevice{data: data, blockSize: blockSize}
}

// NewReadOnlyMemoryDevice wraps a byte slice as a read-only block
// device.
func NewReadOnlyMemoryDevice(data []byte, blockSize types.BlockSize) *MemoryDevice {
	return &MemoryDevice{data: data, blockSize: blockSize, readOnly: true}
}

// BlockSize returns the configured block size.
func (d *MemoryDevice) BlockSize() types.BlockSize {
	return d.blockSize
}

// TotalBlocks returns the number of whole blocks the slice holds.
func (d *MemoryDevice) TotalBlocks() uint64 {
	return uint64(len(d.data)) / d.blockSize.Uint64()
}

// ReadBlocks copies the requested blocks into buf.
func (d *MemoryDevice) ReadBlocks(start types.Lba, buf []byte) error {
	if _, err := checkTransfer(d.blockSize, d.TotalBlocks(), start, buf); err != nil {
		return err
	}
	off, err := start.ByteOffset(d.blockSize)
	if err != nil {
		return err
	}
	copy(buf, d.data[off:off+uint64(len(buf))])
	return nil
}

// WriteBlocks copies buf over the requested blocks.
func (d *MemoryDevice) WriteBlocks(start types.Lba, buf []byte) error {
	if d.readOnly {
		return types.ErrReadOnly
	}
	if _, err := checkTransfer(d.blockSize, d.TotalBlocks(), start, buf); err != nil {
		return err
	}
	off, err := start.ByteOffset(d.blockSize)
	if err != nil {
		return err
	}
	copy(d.data[off:off+uint64(len(buf))], buf)
	return nil
}

// Flush is a no-op; memory writes are immediate.
func (d *MemoryDevice) Flush() error {
	return nil
}

package device

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/deploymenttheory/go-gpt/internal/interfaces"
	"github.com/deploymenttheory/go-gpt/internal/types"
)

// FileDevice adapts byte-addressed random-access media, typically an
// *os.File over a disk image or a raw device node, to the block device
// contract. It translates block addresses to byte offsets and insists
// on full transfers: a short read or write from the medium is an
// error, never a partial success.
type FileDevice struct {
	r         io.ReaderAt
	w         io.WriterAt // nil means read-only
	syncer    interface{ Sync() error }
	blockSize types.BlockSize
	numBlocks uint64
}

// Compile-time check
var _ interfaces.BlockDevice = (*FileDevice)(nil)

// NewFileDevice wraps an open file as a read-write block device. The
// device size is taken from the file's current length; bytes past the
// last whole block are not addressable. The caller keeps ownership of
// the file handle and is responsible for closing it.
func NewFileDevice(f *os.File, blockSize types.BlockSize) (*FileDevice, error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", f.Name(), err)
	}
	return &FileDevice{
		r:         f,
		w:         f,
		syncer:    f,
		blockSize: blockSize,
		numBlocks: uint64(stat.Size()) / blockSize.Uint64(),
	}, nil
}

// NewReadOnlyFileDevice wraps an open file as a read-only block device.
func NewReadOnlyFileDevice(f *os.File, blockSize types.BlockSize) (*FileDevice, error) {
	d, err := NewFileDevice(f, blockSize)
	if err != nil {
		return nil, err
	}
	d.w = nil
	d.syncer = nil
	return d, nil
}

// NewStreamDevice wraps arbitrary random-access readers and writers as
// a block device of an explicit byte size. w may be nil for read-only
// media; sync may be nil when the medium has no flush notion.
func NewStreamDevice(r io.ReaderAt, w io.WriterAt, sync interface{ Sync() error }, size uint64, blockSize types.BlockSize) *FileDevice {
	return &FileDevice{
		r:         r,
		w:         w,
		syncer:    sync,
		blockSize: blockSize,
		numBlocks: size / blockSize.Uint64(),
	}
}

// BlockSize returns the configured block size.
func (d *FileDevice) BlockSize() types.BlockSize {
	return d.blockSize
}

// TotalBlocks returns the number of whole blocks the medium holds.
func (d *FileDevice) TotalBlocks() uint64 {
	return d.numBlocks
}

// byteOffset converts a block address to an int64 byte offset for the
// io.ReaderAt/io.WriterAt calls, rejecting anything unaddressable.
func (d *FileDevice) byteOffset(start types.Lba, length int) (int64, error) {
	off, err := start.ByteOffset(d.blockSize)
	if err != nil {
		return 0, err
	}
	if off > math.MaxInt64-uint64(length) {
		return 0, fmt.Errorf("byte offset %d: %w", off, types.ErrOverflow)
	}
	return int64(off), nil
}

// ReadBlocks fills buf from the medium.
func (d *FileDevice) ReadBlocks(start types.Lba, buf []byte) error {
	if _, err := checkTransfer(d.blockSize, d.numBlocks, start, buf); err != nil {
		return err
	}
	off, err := d.byteOffset(start, len(buf))
	if err != nil {
		return err
	}
	if _, err := d.r.ReadAt(buf, off); err != nil {
		return fmt.Errorf("failed to read %d bytes at offset %d: %w", len(buf), off, err)
	}
	return nil
}

// WriteBlocks writes buf to the medium.
func (d *FileDevice) WriteBlocks(start types.Lba, buf []byte) error {
	if d.w == nil {
		return types.ErrReadOnly
	}
	if _, err := checkTransfer(d.blockSize, d.numBlocks, start, buf); err != nil {
		return err
	}
	off, err := d.byteOffset(start, len(buf))
	if err != nil {
		return err
	}
	if _, err := d.w.WriteAt(buf, off); err != nil {
		return fmt.Errorf("failed to write %d bytes at offset %d: %w", len(buf), off, err)
	}
	return nil
}

// Flush syncs the underlying medium if it supports syncing.
func (d *FileDevice) Flush() error {
	if d.syncer == nil {
		return nil
	}
	if err := d.syncer.Sync(); err != nil {
		return fmt.Errorf("failed to sync device: %w", err)
	}
	return nil
}

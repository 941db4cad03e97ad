// Package disk implements the block-oriented GPT disk controller: a
// thin, stateless transaction layer that places and sizes GPT
// structures on any block device. Every operation works through a
// caller-supplied scratch buffer and performs exactly one attempt;
// errors are typed and surfaced, never retried.
package disk

import (
	"fmt"

	"github.com/deploymenttheory/go-gpt/internal/interfaces"
	"github.com/deploymenttheory/go-gpt/internal/parsers/gpt"
	"github.com/deploymenttheory/go-gpt/internal/types"
)

// primaryHeaderLba is the architecturally fixed location of the
// primary GPT header. The secondary header occupies the last block.
const primaryHeaderLba = 1

// Disk is a GPT-aware view over one exclusively owned block device.
// It keeps no state between calls beyond the device itself, so a Disk
// is safe to reuse across any sequence of operations, but not for
// concurrent use.
type Disk struct {
	dev interfaces.BlockDevice
}

// NewDisk wraps a block device in a disk controller. The controller
// assumes exclusive ownership of the device until the caller discards
// the Disk.
func NewDisk(dev interfaces.BlockDevice) (*Disk, error) {
	if dev == nil {
		return nil, fmt.Errorf("block device cannot be nil")
	}
	return &Disk{dev: dev}, nil
}

// BlockSize returns the block size of the underlying device.
func (d *Disk) BlockSize() types.BlockSize {
	return d.dev.BlockSize()
}

// TotalBlocks returns the block count of the underlying device.
func (d *Disk) TotalBlocks() uint64 {
	return d.dev.TotalBlocks()
}

// checkScratch validates a scratch buffer holds at least one block and
// returns the leading block-sized slice of it.
func (d *Disk) checkScratch(scratch []byte) ([]byte, error) {
	bs := d.dev.BlockSize().Int()
	if len(scratch) < bs {
		return nil, fmt.Errorf("scratch buffer of %d bytes with block size %d: %w", len(scratch), bs, types.ErrBufferTooSmall)
	}
	return scratch[:bs], nil
}

// WriteProtectiveMbr builds the protective MBR for the device's size
// in scratch and writes it to LBA 0.
func (d *Disk) WriteProtectiveMbr(scratch []byte) error {
	block, err := d.checkScratch(scratch)
	if err != nil {
		return err
	}
	mbr := types.NewProtectiveMbr(d.dev.TotalBlocks())
	if err := gpt.EncodeMbr(&mbr, block); err != nil {
		return err
	}
	if err := d.dev.WriteBlocks(0, block); err != nil {
		return fmt.Errorf("failed to write protective MBR: %w", err)
	}
	return nil
}

// ReadProtectiveMbr reads and decodes the MBR at LBA 0.
func (d *Disk) ReadProtectiveMbr(scratch []byte) (*types.Mbr, error) {
	block, err := d.checkScratch(scratch)
	if err != nil {
		return nil, err
	}
	if err := d.dev.ReadBlocks(0, block); err != nil {
		return nil, fmt.Errorf("failed to read MBR block: %w", err)
	}
	return gpt.DecodeMbr(block)
}

// writeGptHeader serializes a header into scratch, recomputing its
// CRC32, and writes it to the header's own MyLba. Whether MyLba is the
// primary or secondary slot is the caller's responsibility; the
// controller does not cross-check it.
func (d *Disk) writeGptHeader(h *types.GptHeader, scratch []byte) error {
	block, err := d.checkScratch(scratch)
	if err != nil {
		return err
	}
	if err := gpt.EncodeGptHeader(h, block); err != nil {
		return err
	}
	if err := d.dev.WriteBlocks(h.MyLba, block); err != nil {
		return fmt.Errorf("failed to write GPT header at LBA %d: %w", h.MyLba, err)
	}
	return nil
}

// WritePrimaryGptHeader writes a primary header to its MyLba.
func (d *Disk) WritePrimaryGptHeader(h *types.GptHeader, scratch []byte) error {
	return d.writeGptHeader(h, scratch)
}

// WriteSecondaryGptHeader writes a secondary header to its MyLba.
func (d *Disk) WriteSecondaryGptHeader(h *types.GptHeader, scratch []byte) error {
	return d.writeGptHeader(h, scratch)
}

// readGptHeader reads one block and decodes it as a GPT header. The
// stored checksums are not verified; see the gpt package's checksum
// functions for that.
func (d *Disk) readGptHeader(lba types.Lba, scratch []byte) (*types.GptHeader, error) {
	block, err := d.checkScratch(scratch)
	if err != nil {
		return nil, err
	}
	if err := d.dev.ReadBlocks(lba, block); err != nil {
		return nil, fmt.Errorf("failed to read GPT header block at LBA %d: %w", lba, err)
	}
	return gpt.DecodeGptHeader(block)
}

// ReadPrimaryGptHeader reads the header at the fixed primary LBA 1.
func (d *Disk) ReadPrimaryGptHeader(scratch []byte) (*types.GptHeader, error) {
	return d.readGptHeader(primaryHeaderLba, scratch)
}

// ReadSecondaryGptHeader reads the header at the last block of the
// device.
func (d *Disk) ReadSecondaryGptHeader(scratch []byte) (*types.GptHeader, error) {
	numBlocks := d.dev.TotalBlocks()
	if numBlocks == 0 {
		return nil, fmt.Errorf("device has no blocks: %w", types.ErrOutOfBounds)
	}
	return d.readGptHeader(types.Lba(numBlocks-1), scratch)
}

// ReadGptPartitionEntryArray reads a whole partition entry array into
// buf and returns an indexable view over it. buf must hold at least
// the layout's block-rounded length.
func (d *Disk) ReadGptPartitionEntryArray(layout types.PartitionEntryArrayLayout, buf []byte) (*GptPartitionEntryArray, error) {
	array, err := NewGptPartitionEntryArray(layout, d.dev.BlockSize(), buf)
	if err != nil {
		return nil, err
	}
	if err := d.dev.ReadBlocks(layout.StartLba, array.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to read partition entry array at LBA %d: %w", layout.StartLba, err)
	}
	return array, nil
}

// WriteGptPartitionEntryArray writes the view's block-rounded backing
// bytes to its configured start LBA in one multi-block transfer.
func (d *Disk) WriteGptPartitionEntryArray(array *GptPartitionEntryArray) error {
	if err := d.dev.WriteBlocks(array.StartLba(), array.Bytes()); err != nil {
		return fmt.Errorf("failed to write partition entry array at LBA %d: %w", array.StartLba(), err)
	}
	return nil
}

// Flush forces buffered writes on the underlying device to durable
// storage.
func (d *Disk) Flush() error {
	return d.dev.Flush()
}

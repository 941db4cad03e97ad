package disk

import (
	"fmt"

	"github.com/deploymenttheory/go-gpt/internal/parsers/gpt"
	"github.com/deploymenttheory/go-gpt/internal/types"
)

// GptPartitionEntryArrayIter streams a partition entry array through
// one block-sized scratch buffer, so peak memory stays bounded at a
// single block no matter how many blocks the array spans. Entries are
// grouped whole into blocks: each block holds blockSize/entrySize
// entries and one block read is issued when iteration first touches a
// group.
//
// The iterator is single-pass and forward-only. After an error Next
// returns false and Err reports the cause; restarting means asking the
// Disk for a fresh iterator, which re-reads from storage. Usage
// follows the bufio.Scanner shape:
//
//	iter, err := d.GptPartitionEntryArrayIter(layout, scratch)
//	...
//	for iter.Next() {
//		entry := iter.Entry()
//		...
//	}
//	if err := iter.Err(); err != nil {
//		...
//	}
type GptPartitionEntryArrayIter struct {
	disk            *Disk
	layout          types.PartitionEntryArrayLayout
	scratch         []byte
	entriesPerBlock uint32

	index         uint32
	bufferedBlock int64 // block index within the array, -1 before the first read
	entry         *types.GptPartitionEntry
	err           error
}

// GptPartitionEntryArrayIter returns a fresh iterator over the array
// described by layout. The scratch buffer must hold at least one
// block and is borrowed by the iterator for its lifetime; the entry
// size must not exceed the block size, as an entry never spans blocks.
func (d *Disk) GptPartitionEntryArrayIter(layout types.PartitionEntryArrayLayout, scratch []byte) (*GptPartitionEntryArrayIter, error) {
	bs := d.dev.BlockSize()
	block, err := d.checkScratch(scratch)
	if err != nil {
		return nil, err
	}
	if uint64(layout.EntrySize) > bs.Uint64() {
		return nil, fmt.Errorf("entry size %d exceeds block size %d: %w", layout.EntrySize, bs, types.ErrInvalidEntrySize)
	}
	return &GptPartitionEntryArrayIter{
		disk:            d,
		layout:          layout,
		scratch:         block,
		entriesPerBlock: bs.Uint32() / layout.EntrySize,
		bufferedBlock:   -1,
	}, nil
}

// Next advances to the next entry, issuing at most one block read. It
// returns false when the entry count is exhausted or an error occurred.
func (it *GptPartitionEntryArrayIter) Next() bool {
	if it.err != nil || it.index >= it.layout.NumEntries {
		return false
	}

	blockIndex := uint64(it.index / it.entriesPerBlock)
	if int64(blockIndex) != it.bufferedBlock {
		lba, err := it.layout.StartLba.Add(blockIndex)
		if err != nil {
			it.err = err
			return false
		}
		if err := it.disk.dev.ReadBlocks(lba, it.scratch); err != nil {
			it.err = fmt.Errorf("failed to read entry array block at LBA %d: %w", lba, err)
			return false
		}
		it.bufferedBlock = int64(blockIndex)
	}

	offset := (it.index % it.entriesPerBlock) * it.layout.EntrySize
	entry, err := gpt.DecodeGptPartitionEntry(it.scratch[offset : offset+it.layout.EntrySize])
	if err != nil {
		it.err = err
		return false
	}

	it.entry = entry
	it.index++
	return true
}

// Entry returns the entry produced by the latest successful Next.
func (it *GptPartitionEntryArrayIter) Entry() *types.GptPartitionEntry {
	return it.entry
}

// Err returns the error that stopped iteration, or nil after a normal
// end of the array.
func (it *GptPartitionEntryArrayIter) Err() error {
	return it.err
}

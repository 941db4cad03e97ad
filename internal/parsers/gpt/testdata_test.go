package gpt

import (
	"github.com/deploymenttheory/go-gpt/internal/types"
)

// Reference values from a disk created by sgdisk: 4 MiB, 512-byte
// blocks, disk GUID 57a7feb6-8cd5-4922-b7bd-c78b0914e870, one
// partition named "hello world!" at LBAs [2048, 4096].
const (
	testPrimaryHeaderCrc32   = 0xa4877843
	testSecondaryHeaderCrc32 = 0xdbeb4c13
	testEntryArrayCrc32      = 0x9206adff
)

func createTestPrimaryHeader() *types.GptHeader {
	h := types.NewGptHeader()
	h.HeaderCrc32 = testPrimaryHeaderCrc32
	h.MyLba = 1
	h.AlternateLba = 8191
	h.FirstUsableLba = 34
	h.LastUsableLba = 8158
	h.DiskGuid = types.MustParseGuid("57a7feb6-8cd5-4922-b7bd-c78b0914e870")
	h.PartitionEntryLba = 2
	h.NumberOfPartitionEntries = 128
	h.SizeOfPartitionEntry = 128
	h.PartitionEntryArrayCrc32 = testEntryArrayCrc32
	return &h
}

func createTestSecondaryHeader() *types.GptHeader {
	h := createTestPrimaryHeader()
	h.HeaderCrc32 = testSecondaryHeaderCrc32
	h.MyLba, h.AlternateLba = h.AlternateLba, h.MyLba
	h.PartitionEntryLba = 8159
	return h
}

func createTestPartitionEntry() *types.GptPartitionEntry {
	e := &types.GptPartitionEntry{
		PartitionTypeGuid:   types.MustParseGuid("ccf0994f-f7e0-4e26-a011-843e38aa2eac"),
		UniquePartitionGuid: types.MustParseGuid("37c75ffd-8932-467a-9c56-8cf1f0456b12"),
		StartingLba:         2048,
		EndingLba:           4096,
	}
	if err := e.SetName("hello world!"); err != nil {
		panic(err)
	}
	return e
}

// createTestPrimaryHeaderBlock builds the exact 512-byte block sgdisk
// writes for the primary header above.
func createTestPrimaryHeaderBlock() []byte {
	block := make([]byte, 512)
	copy(block, []byte("EFI PART"))
	endian.PutUint32(block[8:12], types.GptHeaderRevision1)
	endian.PutUint32(block[12:16], 92)
	endian.PutUint32(block[16:20], testPrimaryHeaderCrc32)
	endian.PutUint64(block[24:32], 1)
	endian.PutUint64(block[32:40], 8191)
	endian.PutUint64(block[40:48], 34)
	endian.PutUint64(block[48:56], 8158)
	guid := types.MustParseGuid("57a7feb6-8cd5-4922-b7bd-c78b0914e870").Bytes()
	copy(block[56:72], guid[:])
	endian.PutUint64(block[72:80], 2)
	endian.PutUint32(block[80:84], 128)
	endian.PutUint32(block[84:88], 128)
	endian.PutUint32(block[88:92], testEntryArrayCrc32)
	return block
}

// createTestEntryBytes builds the exact 128-byte entry image for the
// partition above.
func createTestEntryBytes() []byte {
	buf := make([]byte, 128)
	if err := EncodeGptPartitionEntry(createTestPartitionEntry(), buf); err != nil {
		panic(err)
	}
	return buf
}

// createTestEntryArrayBytes builds the full 128-entry array: the test
// partition in slot 0, everything else zero.
func createTestEntryArrayBytes() []byte {
	buf := make([]byte, 128*128)
	copy(buf, createTestEntryBytes())
	return buf
}

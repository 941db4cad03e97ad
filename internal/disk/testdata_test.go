package disk

import (
	"encoding/binary"

	"github.com/deploymenttheory/go-gpt/internal/types"
)

var endian = binary.LittleEndian

// Reference values from a disk created by sgdisk: 4 MiB, 512-byte
// blocks, disk GUID 57a7feb6-8cd5-4922-b7bd-c78b0914e870, one
// partition named "hello world!" at LBAs [2048, 4096].
const (
	testDiskNumBlocks = 8192
	testDiskNumBytes  = testDiskNumBlocks * 512

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

// writeTestHeaderBlock serializes a header image into dst the way
// sgdisk lays it out, with the CRC32 stored rather than computed.
func writeTestHeaderBlock(dst []byte, h *types.GptHeader) {
	copy(dst, []byte("EFI PART"))
	endian.PutUint32(dst[8:12], h.Revision)
	endian.PutUint32(dst[12:16], h.HeaderSize)
	endian.PutUint32(dst[16:20], h.HeaderCrc32)
	endian.PutUint64(dst[24:32], uint64(h.MyLba))
	endian.PutUint64(dst[32:40], uint64(h.AlternateLba))
	endian.PutUint64(dst[40:48], uint64(h.FirstUsableLba))
	endian.PutUint64(dst[48:56], uint64(h.LastUsableLba))
	guid := h.DiskGuid.Bytes()
	copy(dst[56:72], guid[:])
	endian.PutUint64(dst[72:80], uint64(h.PartitionEntryLba))
	endian.PutUint32(dst[80:84], h.NumberOfPartitionEntries)
	endian.PutUint32(dst[84:88], h.SizeOfPartitionEntry)
	endian.PutUint32(dst[88:92], h.PartitionEntryArrayCrc32)
}

// writeTestEntryBytes serializes the reference partition entry image
// into dst.
func writeTestEntryBytes(dst []byte) {
	e := createTestPartitionEntry()
	typeGuid := e.PartitionTypeGuid.Bytes()
	copy(dst[0:16], typeGuid[:])
	uniqueGuid := e.UniquePartitionGuid.Bytes()
	copy(dst[16:32], uniqueGuid[:])
	endian.PutUint64(dst[32:40], uint64(e.StartingLba))
	endian.PutUint64(dst[40:48], uint64(e.EndingLba))
	endian.PutUint64(dst[48:56], uint64(e.Attributes))
	copy(dst[56:128], e.NameRaw[:])
}

// createTestDiskImage builds the full byte image of the reference
// disk: protective MBR, both headers, and both entry arrays with the
// test partition in slot 0.
func createTestDiskImage() []byte {
	img := make([]byte, testDiskNumBytes)

	// Protective MBR: one 0xEE record at offset 446 covering LBAs
	// [1, 8191], then the boot signature.
	record := img[446:462]
	record[0] = 0x00
	copy(record[1:4], []byte{0x00, 0x02, 0x00}) // CHS of LBA 1
	record[4] = 0xee
	copy(record[5:8], []byte{0x82, 0x02, 0x00}) // CHS of LBA 8191
	endian.PutUint32(record[8:12], 1)
	endian.PutUint32(record[12:16], 8191)
	img[510] = 0x55
	img[511] = 0xaa

	writeTestHeaderBlock(img[512:1024], createTestPrimaryHeader())
	writeTestEntryBytes(img[0x400:0x480])

	writeTestEntryBytes(img[8159*512 : 8159*512+128])
	writeTestHeaderBlock(img[8191*512:], createTestSecondaryHeader())

	return img
}

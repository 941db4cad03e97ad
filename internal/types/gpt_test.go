package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGptPartitionEntryIsUsed(t *testing.T) {
	var e GptPartitionEntry
	assert.False(t, e.IsUsed())

	e.PartitionTypeGuid = PartitionTypeLinuxFilesystem
	assert.True(t, e.IsUsed())

	// Only the type GUID decides; a unique GUID alone does not.
	e = GptPartitionEntry{UniquePartitionGuid: MustParseGuid("37c75ffd-8932-467a-9c56-8cf1f0456b12")}
	assert.False(t, e.IsUsed())
}

func TestGptPartitionEntryName(t *testing.T) {
	var e GptPartitionEntry
	require.NoError(t, e.SetName("hello world!"))
	assert.Equal(t, "hello world!", e.Name())

	// UTF-16LE with NUL padding.
	assert.Equal(t, byte('h'), e.NameRaw[0])
	assert.Equal(t, byte(0), e.NameRaw[1])
	assert.Equal(t, byte('!'), e.NameRaw[22])
	assert.Equal(t, byte(0), e.NameRaw[24])

	// Maximum length is 36 code units.
	require.NoError(t, e.SetName("123456789012345678901234567890123456"))
	assert.Len(t, e.Name(), 36)
	assert.Error(t, e.SetName("1234567890123456789012345678901234567"))

	// Setting a shorter name clears the old tail.
	require.NoError(t, e.SetName("x"))
	assert.Equal(t, "x", e.Name())
}

func TestGptPartitionAttributes(t *testing.T) {
	var a GptPartitionAttributes
	assert.False(t, a.RequiredPartition())
	assert.False(t, a.NoBlockIoProtocol())
	assert.False(t, a.LegacyBiosBootable())
	assert.Zero(t, a.TypeSpecific())

	a = GptAttributeRequiredPartition | GptAttributeLegacyBiosBootable | GptPartitionAttributes(0xbeef)<<48
	assert.True(t, a.RequiredPartition())
	assert.False(t, a.NoBlockIoProtocol())
	assert.True(t, a.LegacyBiosBootable())
	assert.Equal(t, uint16(0xbeef), a.TypeSpecific())
}

func TestNewGptHeader(t *testing.T) {
	h := NewGptHeader()
	assert.Equal(t, uint64(GptHeaderSignature), h.Signature)
	assert.Equal(t, uint32(GptHeaderRevision1), h.Revision)
	assert.Equal(t, uint32(GptHeaderFixedSize), h.HeaderSize)
}

func TestPartitionTypeName(t *testing.T) {
	assert.Equal(t, "unused", PartitionTypeName(ZeroGuid))
	assert.Equal(t, "EFI System", PartitionTypeName(PartitionTypeEfiSystem))
	assert.Equal(t, "", PartitionTypeName(MustParseGuid("ccf0994f-f7e0-4e26-a011-843e38aa2eac")))
}

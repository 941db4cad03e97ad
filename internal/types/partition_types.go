package types

// Well-known partition type GUIDs. The unused type is the zero GUID;
// comparing against it is how entries report used/unused.
var (
	// PartitionTypeUnused marks an unused partition entry.
	PartitionTypeUnused = ZeroGuid

	// PartitionTypeEfiSystem is the EFI System Partition.
	PartitionTypeEfiSystem = MustParseGuid("c12a7328-f81f-11d2-ba4b-00a0c93ec93b")

	// PartitionTypeLegacyMbr wraps a legacy MBR inside a GPT disk.
	PartitionTypeLegacyMbr = MustParseGuid("024dee41-33e7-11d3-9d69-0008c781f39f")

	// PartitionTypeBasicData is the Microsoft basic data partition,
	// also used for plain shared-data filesystems.
	PartitionTypeBasicData = MustParseGuid("ebd0a0a2-b9e5-4433-87c0-68b6b72699c7")

	// PartitionTypeLinuxFilesystem is the generic Linux filesystem
	// partition.
	PartitionTypeLinuxFilesystem = MustParseGuid("0fc63daf-8483-4772-8e79-3d69d8477de4")

	// PartitionTypeLinuxSwap is the Linux swap partition.
	PartitionTypeLinuxSwap = MustParseGuid("0657fd6d-a4ab-43c4-84e5-0933c84b4f4f")
)

// PartitionTypeName returns a human-readable name for the well-known
// partition types, or the empty string for anything else.
func PartitionTypeName(g Guid) string {
	switch g {
	case PartitionTypeUnused:
		return "unused"
	case PartitionTypeEfiSystem:
		return "EFI System"
	case PartitionTypeLegacyMbr:
		return "Legacy MBR"
	case PartitionTypeBasicData:
		return "Basic Data"
	case PartitionTypeLinuxFilesystem:
		return "Linux Filesystem"
	case PartitionTypeLinuxSwap:
		return "Linux Swap"
	}
	return ""
}

package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-gpt/internal/device"
	"github.com/deploymenttheory/go-gpt/internal/disk"
	"github.com/deploymenttheory/go-gpt/internal/parsers/gpt"
	"github.com/deploymenttheory/go-gpt/internal/types"
)

var inspectShowUnused bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [image-path]",
	Short: "Print the headers and partition entries of an image",
	Long: `Read a disk image and print its protective MBR, both GPT
headers, and the used partition entries.

Checksums are recomputed and compared against the stored values, but a
mismatch is reported, not treated as a failure: the image is decoded
either way.

Examples:
  # Inspect an image with the default 512-byte block size
  gptctl inspect disk.img

  # Inspect a 4K-native image, including unused entries
  gptctl inspect --block-size 4096 --unused disk.img`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(args[0]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectShowUnused, "unused", false, "also print unused partition entries")
}

func runInspect(imagePath string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	bs, err := resolveBlockSize(config)
	if err != nil {
		return err
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	dev, err := device.NewReadOnlyFileDevice(f, bs)
	if err != nil {
		return err
	}
	d, err := disk.NewDisk(dev)
	if err != nil {
		return err
	}

	scratch := make([]byte, bs.Int())

	mbr, err := d.ReadProtectiveMbr(scratch)
	if err != nil {
		return fmt.Errorf("failed to read protective MBR: %w", err)
	}
	fmt.Printf("Protective MBR: signature 0x%04X, type 0x%02X, blocks [%d, %d]\n",
		mbr.Signature, mbr.Partitions[0].OsType,
		mbr.Partitions[0].StartingLba,
		uint64(mbr.Partitions[0].StartingLba)+uint64(mbr.Partitions[0].SizeInLba)-1)

	primary, err := d.ReadPrimaryGptHeader(scratch)
	if err != nil {
		return fmt.Errorf("failed to read primary GPT header: %w", err)
	}
	printHeader("Primary header", primary)

	secondary, err := d.ReadSecondaryGptHeader(scratch)
	if err != nil {
		return fmt.Errorf("failed to read secondary GPT header: %w", err)
	}
	printHeader("Secondary header", secondary)

	layout, err := primary.PartitionEntryArrayLayout(bs)
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("entry array: LBA %d, %d entries of %d bytes, %d blocks",
			layout.StartLba, layout.NumEntries, layout.EntrySize, layout.BlocksSpanned)
	}

	iter, err := d.GptPartitionEntryArrayIter(layout, scratch)
	if err != nil {
		return err
	}
	index := -1
	for iter.Next() {
		index++
		entry := iter.Entry()
		if !entry.IsUsed() && (!inspectShowUnused && !config.ShowUnusedRows) {
			continue
		}
		printEntry(index, entry)
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to iterate partition entries: %w", err)
	}

	return nil
}

func printHeader(label string, h *types.GptHeader) {
	fmt.Printf("%s:\n", label)
	fmt.Printf("    Disk GUID:     %s\n", h.DiskGuid)
	fmt.Printf("    My LBA:        %d (alternate %d)\n", h.MyLba, h.AlternateLba)
	fmt.Printf("    Usable LBAs:   [%d, %d]\n", h.FirstUsableLba, h.LastUsableLba)
	fmt.Printf("    Entry array:   LBA %d, %d entries of %d bytes\n",
		h.PartitionEntryLba, h.NumberOfPartitionEntries, h.SizeOfPartitionEntry)

	ok, err := gpt.VerifyHeaderChecksum(h)
	switch {
	case err != nil:
		fmt.Printf("    Checksum:      0x%08X (unable to verify: %v)\n", h.HeaderCrc32, err)
	case ok:
		fmt.Printf("    Checksum:      0x%08X (valid)\n", h.HeaderCrc32)
	default:
		fmt.Printf("    Checksum:      0x%08X (MISMATCH)\n", h.HeaderCrc32)
	}
}

func printEntry(index int, e *types.GptPartitionEntry) {
	typeName := types.PartitionTypeName(e.PartitionTypeGuid)
	if typeName == "" {
		typeName = e.PartitionTypeGuid.String()
	}
	if !e.IsUsed() {
		fmt.Printf("    [%3d] unused\n", index)
		return
	}
	fmt.Printf("    [%3d] %-20s %q LBAs [%d, %d] guid %s\n",
		index, typeName, e.Name(), e.StartingLba, e.EndingLba, e.UniquePartitionGuid)
}

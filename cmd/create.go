package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-gpt/internal/device"
	"github.com/deploymenttheory/go-gpt/internal/disk"
	"github.com/deploymenttheory/go-gpt/internal/types"
)

var (
	createSizeMiB    uint64
	createEntryCount uint32
)

var createCmd = &cobra.Command{
	Use:   "create [image-path]",
	Short: "Initialize an image with an empty GPT layout",
	Long: `Create (or truncate) a disk image and write an empty GPT
layout into it: protective MBR, mirrored primary and secondary headers
with a fresh random disk GUID, and zeroed partition entry arrays with
consistent checksums.

Examples:
  # 64 MiB image with the standard 128-entry array
  gptctl create --size 64 disk.img`,

	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runCreate(args[0]); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().Uint64Var(&createSizeMiB, "size", 16, "image size in MiB")
	createCmd.Flags().Uint32Var(&createEntryCount, "entries", 0, "partition entry count (default from config, normally 128)")
}

func runCreate(imagePath string) error {
	config, err := LoadConfig()
	if err != nil {
		return err
	}
	bs, err := resolveBlockSize(config)
	if err != nil {
		return err
	}
	entryCount := config.EntryCount
	if createEntryCount != 0 {
		entryCount = createEntryCount
	}

	f, err := os.OpenFile(imagePath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	defer f.Close()
	if err := f.Truncate(int64(createSizeMiB) * 1024 * 1024); err != nil {
		return fmt.Errorf("failed to size image: %w", err)
	}

	dev, err := device.NewFileDevice(f, bs)
	if err != nil {
		return err
	}
	d, err := disk.NewDisk(dev)
	if err != nil {
		return err
	}

	numBlocks := d.TotalBlocks()
	layout, err := types.ComputePartitionEntryArrayLayout(2, config.EntrySize, entryCount, bs)
	if err != nil {
		return err
	}
	// MBR + two headers + both copies of the array must fit.
	if numBlocks < 3+2*layout.BlocksSpanned {
		return fmt.Errorf("image of %d blocks cannot hold a %d-entry table: %w", numBlocks, entryCount, types.ErrOutOfBounds)
	}

	array, err := disk.NewGptPartitionEntryArray(layout, bs, make([]byte, layout.NumBytesRounded))
	if err != nil {
		return err
	}
	arrayCrc32, err := array.Checksum()
	if err != nil {
		return err
	}
	primary, secondary := emptyHeaderPair(numBlocks, layout, arrayCrc32)

	scratch := make([]byte, bs.Int())
	if err := d.WriteProtectiveMbr(scratch); err != nil {
		return err
	}
	if err := d.WriteGptPartitionEntryArray(array); err != nil {
		return err
	}
	array.SetStartLba(secondary.PartitionEntryLba)
	if err := d.WriteGptPartitionEntryArray(array); err != nil {
		return err
	}
	if err := d.WritePrimaryGptHeader(primary, scratch); err != nil {
		return err
	}
	if err := d.WriteSecondaryGptHeader(secondary, scratch); err != nil {
		return err
	}
	if err := d.Flush(); err != nil {
		return err
	}

	if verbose {
		log.Printf("initialized %s: %d blocks of %d bytes, disk GUID %s",
			imagePath, numBlocks, bs, primary.DiskGuid)
	}
	fmt.Printf("Initialized %s with an empty %d-entry GPT\n", imagePath, entryCount)
	return nil
}

// emptyHeaderPair builds the mirrored primary/secondary headers for an
// empty table: primary array right after the primary header, secondary
// array immediately before the secondary header, usable range between
// the two arrays.
func emptyHeaderPair(numBlocks uint64, layout types.PartitionEntryArrayLayout, arrayCrc32 uint32) (*types.GptHeader, *types.GptHeader) {
	primary := types.NewGptHeader()
	primary.MyLba = 1
	primary.AlternateLba = types.Lba(numBlocks - 1)
	primary.FirstUsableLba = types.Lba(2 + layout.BlocksSpanned)
	primary.LastUsableLba = types.Lba(numBlocks - 2 - layout.BlocksSpanned)
	primary.DiskGuid = types.NewRandomGuid()
	primary.PartitionEntryLba = layout.StartLba
	primary.NumberOfPartitionEntries = layout.NumEntries
	primary.SizeOfPartitionEntry = layout.EntrySize
	primary.PartitionEntryArrayCrc32 = arrayCrc32

	secondary := primary
	secondary.MyLba, secondary.AlternateLba = primary.AlternateLba, primary.MyLba
	secondary.PartitionEntryLba = types.Lba(numBlocks - 1 - layout.BlocksSpanned)

	return &primary, &secondary
}

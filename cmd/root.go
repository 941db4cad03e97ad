package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global output flags only
	verbose   bool
	blockSize uint32
)

var rootCmd = &cobra.Command{
	Use:   "gptctl",
	Short: "GUID Partition Table inspection and initialization tool",
	Long: `gptctl reads and writes the on-disk structures of the GUID
Partition Table scheme - the protective MBR, the primary and secondary
GPT headers, and the partition entry arrays - in raw disk images.

It is a thin shell over the codec: it does not repair tables, resize
partitions, or touch filesystem contents.

Commands:
  inspect     Print the headers and partition entries of an image
  create      Initialize an image with an empty GPT layout`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Uint32Var(&blockSize, "block-size", 0, "logical block size in bytes (default from config, normally 512)")
}

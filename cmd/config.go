package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-gpt/internal/types"
)

// Config holds the tool configuration, loaded from a gptctl-config
// file or GPTCTL_* environment variables.
type Config struct {
	BlockSize      uint32 `mapstructure:"block_size"`
	EntryCount     uint32 `mapstructure:"entry_count"`
	EntrySize      uint32 `mapstructure:"entry_size"`
	ShowUnusedRows bool   `mapstructure:"show_unused_rows"`
}

// LoadConfig loads the tool configuration using Viper.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("gptctl-config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.gptctl")
	viper.AddConfigPath("/etc/gptctl")

	// Set defaults
	viper.SetDefault("block_size", uint32(types.BlockSize512))
	viper.SetDefault("entry_count", 128)
	viper.SetDefault("entry_size", types.GptPartitionEntrySize)
	viper.SetDefault("show_unused_rows", false)

	// Allow environment variables
	viper.SetEnvPrefix("GPTCTL")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// resolveBlockSize picks the block size from the --block-size flag or
// the config default, validating it either way.
func resolveBlockSize(config *Config) (types.BlockSize, error) {
	size := config.BlockSize
	if blockSize != 0 {
		size = blockSize
	}
	return types.NewBlockSize(size)
}

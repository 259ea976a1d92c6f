// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"github.com/spf13/cobra"

	"github.com/ik5/audseq/config"
	"github.com/ik5/audseq/internal/logging"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "audseq",
	Short: "Audio preprocessing and sequence autoencoder training",
	Long: `audseq normalizes directories of audio files to a common rate,
duration and level, extracts MFCC feature sequences and trains a
recurrent sequence autoencoder on them.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig returns the defaults, overridden by --config when given.
func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a YAML configuration file (defaults used when omitted)")
}

// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audseq/corpus"
)

var (
	normalizeIn  string
	normalizeOut string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize a directory of audio files into 16-bit WAV",
	Long: `Normalize decodes every supported file under --in, resamples it to
the configured rate, mixes it down to mono, pads or crops it to the
configured duration, scales it to unit RMS and writes the result under
--out as 16-bit PCM WAV. Files that fail to decode are logged and
skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		n := corpus.NewNormalizer(corpus.DefaultRegistry(), cfg.SampleRate, cfg.TargetSamples())
		written, err := n.NormalizeDir(normalizeIn, normalizeOut)
		if err != nil {
			return err
		}

		fmt.Printf("normalized %d file(s) into %s\n", written, normalizeOut)
		return nil
	},
}

func init() {
	normalizeCmd.Flags().StringVar(&normalizeIn, "in", "", "input directory of audio files")
	normalizeCmd.Flags().StringVar(&normalizeOut, "out", "", "output directory for normalized WAV files")
	_ = normalizeCmd.MarkFlagRequired("in")
	_ = normalizeCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(normalizeCmd)
}

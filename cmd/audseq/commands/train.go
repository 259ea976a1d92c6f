// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audseq/corpus"
	"github.com/ik5/audseq/mfcc"
	"github.com/ik5/audseq/seqae"
)

var (
	trainIn         string
	trainCheckpoint string
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the sequence autoencoder on a directory of audio",
	Long: `Train normalizes every supported file under --in, extracts MFCC
feature sequences and runs the configured number of training epochs over
them, logging the average reconstruction loss per epoch. With
--checkpoint the trained weights are written to the given path.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		mcfg := mfcc.DefaultConfig(cfg.SampleRate)
		mcfg.NumCoeffs = cfg.MFCCCoefficientCount
		mcfg.NumMels = cfg.MelBands
		mcfg.WindowSize = cfg.WindowSize
		mcfg.HopSize = cfg.HopSize
		ext, err := mfcc.New(mcfg)
		if err != nil {
			return err
		}

		n := corpus.NewNormalizer(corpus.DefaultRegistry(), cfg.SampleRate, cfg.TargetSamples())
		c, err := n.Build(trainIn, ext)
		if err != nil {
			return err
		}

		model := seqae.NewModel(cfg.MFCCCoefficientCount, cfg.HiddenSize, cfg.Seed)
		trainer := seqae.NewTrainer(model, seqae.Options{
			Epochs:       cfg.EpochCount,
			BatchSize:    cfg.BatchSize,
			LearningRate: cfg.LearningRate,
			Seed:         cfg.Seed,
			MaskedLoss:   cfg.MaskedLoss,
		})
		if err := trainer.Train(cmd.Context(), c.Features); err != nil {
			return err
		}

		final := trainer.EpochLosses[len(trainer.EpochLosses)-1]
		fmt.Printf("trained on %d file(s), final avg loss %g\n", c.Len(), final)

		if trainCheckpoint != "" {
			if err := model.SaveFile(trainCheckpoint); err != nil {
				return err
			}
			fmt.Printf("checkpoint written to %s\n", trainCheckpoint)
		}

		return nil
	},
}

func init() {
	trainCmd.Flags().StringVar(&trainIn, "in", "", "input directory of audio files")
	trainCmd.Flags().StringVar(&trainCheckpoint, "checkpoint", "", "optional path for the trained weights")
	_ = trainCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(trainCmd)
}

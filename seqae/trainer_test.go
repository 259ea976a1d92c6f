// SPDX-License-Identifier: EPL-2.0

package seqae

import (
	"context"
	"errors"
	"testing"
)

func trainOnce(t *testing.T, opts Options, seed int64) *Trainer {
	t.Helper()

	seqs := randomSeqs([]int{6, 4, 5, 6, 3}, 3, 21)
	tr := NewTrainer(NewModel(3, 4, seed), opts)
	if err := tr.Train(context.Background(), seqs); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	return tr
}

func TestTrainer_LossDecreases(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Epochs = 30
	opts.BatchSize = 2
	tr := trainOnce(t, opts, 3)

	if len(tr.EpochLosses) != opts.Epochs {
		t.Fatalf("recorded %d epoch losses, want %d", len(tr.EpochLosses), opts.Epochs)
	}
	first := tr.EpochLosses[0]
	last := tr.EpochLosses[len(tr.EpochLosses)-1]
	if last >= first {
		t.Errorf("loss did not decrease: first epoch %v, last epoch %v", first, last)
	}
}

func TestTrainer_SeedReproducibility(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Epochs = 3
	opts.BatchSize = 2

	a := trainOnce(t, opts, 17)
	b := trainOnce(t, opts, 17)

	for i := range a.EpochLosses {
		if a.EpochLosses[i] != b.EpochLosses[i] {
			t.Errorf("epoch %d loss differs between equally seeded runs: %v vs %v",
				i+1, a.EpochLosses[i], b.EpochLosses[i])
		}
	}
}

func TestTrainer_MaskedLoss(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	opts.Epochs = 2
	opts.BatchSize = 3
	opts.MaskedLoss = true
	trainOnce(t, opts, 9)
}

func TestTrainer_EmptyCorpus(t *testing.T) {
	t.Parallel()

	tr := NewTrainer(NewModel(3, 4, 1), DefaultOptions())
	if err := tr.Train(context.Background(), nil); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("Train() error = %v, want ErrEmptyCorpus", err)
	}
}

func TestTrainer_ContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := NewTrainer(NewModel(3, 4, 1), DefaultOptions())
	err := tr.Train(ctx, randomSeqs([]int{3, 3}, 3, 1))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Train() error = %v, want context.Canceled", err)
	}
}

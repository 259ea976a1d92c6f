// SPDX-License-Identifier: EPL-2.0

package seqae

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/ik5/audseq/internal/logging"
)

// Options controls a training run.
type Options struct {
	Epochs       int
	BatchSize    int
	LearningRate float64

	// Seed drives the per-epoch corpus shuffle and makes runs with equal
	// seeds visit batches in the same order.
	Seed int64

	// MaskedLoss switches the objective to MaskedMSE, excluding padded
	// positions. The default objective averages over every position.
	MaskedLoss bool
}

// DefaultOptions mirrors the reference training setup.
func DefaultOptions() Options {
	return Options{
		Epochs:       20,
		BatchSize:    16,
		LearningRate: 1e-3,
		Seed:         1,
	}
}

// Trainer runs the epoch loop for one model over a corpus of feature
// sequences.
type Trainer struct {
	model *Model
	opts  Options
	optim *Adam
	loss  LossFunc
	log   *zap.SugaredLogger

	// EpochLosses records the average batch loss of each completed
	// epoch, in order.
	EpochLosses []float64
}

// NewTrainer wires a model to its optimizer and loss.
func NewTrainer(model *Model, opts Options) *Trainer {
	loss := LossFunc(MSE)
	if opts.MaskedLoss {
		loss = MaskedMSE
	}
	return &Trainer{
		model: model,
		opts:  opts,
		optim: NewAdam(model, opts.LearningRate),
		loss:  loss,
		log:   logging.Sugar(),
	}
}

// Train runs the configured number of epochs over seqs. Each epoch
// shuffles the corpus with the seeded source, collates fixed-size
// batches (the last batch may be smaller) and takes one optimizer step
// per batch. It stops early with ErrLossDiverged when a batch loss is
// not finite, or with ctx.Err() when the context is done.
func (t *Trainer) Train(ctx context.Context, seqs [][][]float64) error {
	if len(seqs) == 0 {
		return ErrEmptyCorpus
	}

	rng := rand.New(rand.NewSource(t.opts.Seed))
	order := make([]int, len(seqs))
	for i := range order {
		order[i] = i
	}

	for epoch := 1; epoch <= t.opts.Epochs; epoch++ {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		sum := 0.0
		batches := 0
		for start := 0; start < len(order); start += t.opts.BatchSize {
			if err := ctx.Err(); err != nil {
				return err
			}

			end := start + t.opts.BatchSize
			if end > len(order) {
				end = len(order)
			}
			group := make([][][]float64, 0, end-start)
			for _, idx := range order[start:end] {
				group = append(group, seqs[idx])
			}

			loss, err := t.trainBatch(group)
			if err != nil {
				return fmt.Errorf("epoch %d: %w", epoch, err)
			}
			sum += loss
			batches++
		}

		avg := sum / float64(batches)
		t.EpochLosses = append(t.EpochLosses, avg)
		t.log.Infow("epoch finished",
			"epoch", epoch,
			"epochs", t.opts.Epochs,
			"avg_loss", avg,
			"batches", batches,
		)
	}

	return nil
}

func (t *Trainer) trainBatch(group [][][]float64) (float64, error) {
	in, err := Collate(group)
	if err != nil {
		return 0, err
	}

	out, tr := t.model.Forward(in)
	loss, grad, err := t.loss(out, in)
	if err != nil {
		return 0, err
	}
	if !isFinite(loss) {
		return 0, fmt.Errorf("%w: loss=%v", ErrLossDiverged, loss)
	}

	t.model.ZeroGrads()
	if err := t.model.Backward(tr, grad); err != nil {
		return 0, err
	}
	t.optim.Step(t.model)

	return loss, nil
}

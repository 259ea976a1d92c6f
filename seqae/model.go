// SPDX-License-Identifier: EPL-2.0

package seqae

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Model is the sequence autoencoder: a GRU encoder compresses each
// sequence into its final hidden state, a GRU decoder unrolls from that
// state on zero inputs, and a linear projection maps every decoder state
// back to coefficient space.
type Model struct {
	coeffs, hidden int

	encoder *gruCell
	decoder *gruCell

	wo  *mat.Dense // hidden × coeffs
	bo  []float64
	gwo *mat.Dense
	gbo []float64
}

// Tape keeps the per-step records of one forward pass for Backward.
type Tape struct {
	input    *Batch
	encSteps []*gruStep
	decSteps []*gruStep
	decOut   []*mat.Dense // decoder hidden states per time step
}

// NewModel builds an autoencoder for sequences of the given coefficient
// width. All weights are drawn from the seeded source, so equal seeds
// give identical models.
func NewModel(coeffs, hidden int, seed int64) *Model {
	rng := rand.New(rand.NewSource(seed))
	return &Model{
		coeffs:  coeffs,
		hidden:  hidden,
		encoder: newGRUCell(coeffs, hidden, rng),
		decoder: newGRUCell(coeffs, hidden, rng),
		wo:      randomDense(hidden, coeffs, rng),
		bo:      make([]float64, coeffs),
		gwo:     mat.NewDense(hidden, coeffs, nil),
		gbo:     make([]float64, coeffs),
	}
}

func (m *Model) Coeffs() int { return m.coeffs }
func (m *Model) Hidden() int { return m.hidden }

// Forward reconstructs every sequence in the batch. The returned batch
// has exactly the input's shape; the tape feeds Backward.
func (m *Model) Forward(in *Batch) (*Batch, *Tape) {
	tr := &Tape{
		input:    in,
		encSteps: make([]*gruStep, in.Steps()),
		decSteps: make([]*gruStep, in.Steps()),
		decOut:   make([]*mat.Dense, in.Steps()),
	}

	// Encode. Padded steps carry the previous state forward, so the
	// final state is each sequence's state at its true last step.
	h := mat.NewDense(in.Size(), m.hidden, nil)
	for t := 0; t < in.Steps(); t++ {
		s := m.encoder.step(in.Step(t), h, in.Mask(t))
		tr.encSteps[t] = s
		h = s.h
	}

	// Decode from the encoding on zero inputs, then project.
	out := NewBatch(in.Steps(), in.Size(), in.Coeffs())
	copy(out.lengths, in.lengths)
	for t := 0; t < in.Steps(); t++ {
		s := m.decoder.step(nil, h, nil)
		tr.decSteps[t] = s
		tr.decOut[t] = s.h
		h = s.h

		y := out.Step(t)
		y.Mul(s.h, m.wo)
		for i := 0; i < in.Size(); i++ {
			for j := 0; j < in.Coeffs(); j++ {
				y.Set(i, j, y.At(i, j)+m.bo[j])
			}
		}
	}

	return out, tr
}

// Backward accumulates parameter gradients given dL/dY for the
// reconstruction produced by the traced forward pass. Call ZeroGrads
// between optimization steps.
func (m *Model) Backward(tr *Tape, dOut *Batch) error {
	if !tr.input.sameShape(dOut) {
		return ErrShapeMismatch
	}

	size := tr.input.Size()
	steps := tr.input.Steps()

	// Decoder and projection, newest step first.
	dh := mat.NewDense(size, m.hidden, nil)
	for t := steps - 1; t >= 0; t-- {
		dy := dOut.Step(t)

		accumulateGate(m.gwo, m.gbo, tr.decOut[t], dy)

		var dd mat.Dense
		dd.Mul(dy, m.wo.T())
		dd.Add(&dd, dh)

		dh, _ = m.decoder.backward(tr.decSteps[t], &dd)
	}

	// dh is now the gradient at the encoder's final state.
	for t := steps - 1; t >= 0; t-- {
		dh, _ = m.encoder.backward(tr.encSteps[t], dh)
	}

	return nil
}

// ZeroGrads clears all accumulated gradients.
func (m *Model) ZeroGrads() {
	m.encoder.zeroGrads()
	m.decoder.zeroGrads()
	m.gwo.Zero()
	zeroSlice(m.gbo)
}

// params lists every parameter slice in a fixed order. Checkpointing and
// the optimizer both rely on this order staying stable.
func (m *Model) params() [][]float64 {
	out := m.encoder.params()
	out = append(out, m.decoder.params()...)
	out = append(out, m.wo.RawMatrix().Data, m.bo)
	return out
}

func (m *Model) grads() [][]float64 {
	out := m.encoder.grads()
	out = append(out, m.decoder.grads()...)
	out = append(out, m.gwo.RawMatrix().Data, m.gbo)
	return out
}

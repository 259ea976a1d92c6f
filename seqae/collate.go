// SPDX-License-Identifier: EPL-2.0

package seqae

import "gonum.org/v1/gonum/mat"

// Batch is a rectangular, zero-padded grouping of feature sequences.
//
// Storage is time-major: all rows of time step t are contiguous, so each
// step is addressable as a (size × coeffs) matrix without copying.
// Positions at or beyond a sequence's true length stay zero.
type Batch struct {
	steps   int // padded length (longest sequence in the batch)
	size    int // number of sequences
	coeffs  int // feature vector width
	data    []float64
	lengths []int
}

// Collate packs seqs into a zero-padded batch, recording each sequence's
// true length in input order.
func Collate(seqs [][][]float64) (*Batch, error) {
	if len(seqs) == 0 {
		return nil, ErrEmptyBatch
	}

	coeffs := 0
	steps := 0
	lengths := make([]int, len(seqs))
	for i, seq := range seqs {
		if len(seq) == 0 {
			return nil, ErrEmptySequence
		}
		if coeffs == 0 {
			coeffs = len(seq[0])
		}
		for _, vec := range seq {
			if len(vec) != coeffs {
				return nil, ErrRaggedWidth
			}
		}
		lengths[i] = len(seq)
		if len(seq) > steps {
			steps = len(seq)
		}
	}
	if coeffs == 0 {
		return nil, ErrEmptySequence
	}

	b := NewBatch(steps, len(seqs), coeffs)
	copy(b.lengths, lengths)

	for i, seq := range seqs {
		for t, vec := range seq {
			copy(b.data[t*b.size*b.coeffs+i*b.coeffs:], vec)
		}
	}

	return b, nil
}

// NewBatch allocates a zeroed batch of the given shape with all lengths
// set to steps.
func NewBatch(steps, size, coeffs int) *Batch {
	lengths := make([]int, size)
	for i := range lengths {
		lengths[i] = steps
	}
	return &Batch{
		steps:   steps,
		size:    size,
		coeffs:  coeffs,
		data:    make([]float64, steps*size*coeffs),
		lengths: lengths,
	}
}

func (b *Batch) Steps() int  { return b.steps }
func (b *Batch) Size() int   { return b.size }
func (b *Batch) Coeffs() int { return b.coeffs }

// Lengths returns the true (pre-padding) sequence lengths in input order.
func (b *Batch) Lengths() []int { return b.lengths }

// Step returns time step t as a (size × coeffs) matrix sharing the
// batch's storage.
func (b *Batch) Step(t int) *mat.Dense {
	off := t * b.size * b.coeffs
	return mat.NewDense(b.size, b.coeffs, b.data[off:off+b.size*b.coeffs])
}

// At returns the value for sequence i at time step t, coefficient c.
func (b *Batch) At(i, t, c int) float64 {
	return b.data[t*b.size*b.coeffs+i*b.coeffs+c]
}

// Mask reports, per sequence, whether time step t lies inside the
// sequence's true length.
func (b *Batch) Mask(t int) []bool {
	m := make([]bool, b.size)
	for i, l := range b.lengths {
		m[i] = t < l
	}
	return m
}

// sameShape reports whether two batches agree on every dimension.
func (b *Batch) sameShape(o *Batch) bool {
	return b.steps == o.steps && b.size == o.size && b.coeffs == o.coeffs
}

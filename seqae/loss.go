// SPDX-License-Identifier: EPL-2.0

package seqae

import "math"

// MSE is the mean squared reconstruction error averaged over every
// position of the padded batch, padding included. It returns the loss
// and its gradient with respect to the reconstruction.
func MSE(got, want *Batch) (float64, *Batch, error) {
	if !got.sameShape(want) {
		return 0, nil, ErrShapeMismatch
	}

	n := float64(len(got.data))
	grad := NewBatch(got.steps, got.size, got.coeffs)
	copy(grad.lengths, got.lengths)

	sum := 0.0
	for i, g := range got.data {
		d := g - want.data[i]
		sum += d * d
		grad.data[i] = 2 * d / n
	}

	return sum / n, grad, nil
}

// MaskedMSE averages the squared error over real positions only,
// skipping padding. The gradient is zero at padded positions.
func MaskedMSE(got, want *Batch) (float64, *Batch, error) {
	if !got.sameShape(want) {
		return 0, nil, ErrShapeMismatch
	}

	total := 0
	for _, l := range want.lengths {
		total += l
	}
	n := float64(total * got.coeffs)
	if n == 0 {
		return 0, nil, ErrEmptyBatch
	}

	grad := NewBatch(got.steps, got.size, got.coeffs)
	copy(grad.lengths, got.lengths)

	sum := 0.0
	for t := 0; t < got.steps; t++ {
		base := t * got.size * got.coeffs
		for i := 0; i < got.size; i++ {
			if t >= want.lengths[i] {
				continue
			}
			for c := 0; c < got.coeffs; c++ {
				k := base + i*got.coeffs + c
				d := got.data[k] - want.data[k]
				sum += d * d
				grad.data[k] = 2 * d / n
			}
		}
	}

	return sum / n, grad, nil
}

// LossFunc is the signature shared by MSE and MaskedMSE.
type LossFunc func(got, want *Batch) (float64, *Batch, error)

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SPDX-License-Identifier: EPL-2.0

package seqae

import "math"

// Adam holds the optimizer state for one model. The moment slices are
// laid out in the model's fixed parameter order.
type Adam struct {
	lr      float64
	beta1   float64
	beta2   float64
	epsilon float64

	step int
	m    [][]float64
	v    [][]float64
}

// NewAdam builds an optimizer with the standard β₁=0.9, β₂=0.999,
// ε=1e-8 moments.
func NewAdam(model *Model, lr float64) *Adam {
	params := model.params()
	a := &Adam{
		lr:      lr,
		beta1:   0.9,
		beta2:   0.999,
		epsilon: 1e-8,
		m:       make([][]float64, len(params)),
		v:       make([][]float64, len(params)),
	}
	for i, p := range params {
		a.m[i] = make([]float64, len(p))
		a.v[i] = make([]float64, len(p))
	}
	return a
}

// Step applies one bias-corrected Adam update from the model's
// accumulated gradients.
func (a *Adam) Step(model *Model) {
	a.step++
	c1 := 1 - math.Pow(a.beta1, float64(a.step))
	c2 := 1 - math.Pow(a.beta2, float64(a.step))

	params := model.params()
	grads := model.grads()
	for i, p := range params {
		g := grads[i]
		for j := range p {
			a.m[i][j] = a.beta1*a.m[i][j] + (1-a.beta1)*g[j]
			a.v[i][j] = a.beta2*a.v[i][j] + (1-a.beta2)*g[j]*g[j]

			mHat := a.m[i][j] / c1
			vHat := a.v[i][j] / c2
			p[j] -= a.lr * mHat / (math.Sqrt(vHat) + a.epsilon)
		}
	}
}

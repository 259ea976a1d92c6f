// SPDX-License-Identifier: EPL-2.0

package seqae

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// gruCell is a single gated recurrent unit layer with update gate z,
// reset gate r and candidate state n:
//
//	z = σ(x·Wz + h·Uz + bz)
//	r = σ(x·Wr + h·Ur + br)
//	n = tanh(x·Wn + (r⊙h)·Un + bn)
//	h' = (1-z)⊙n + z⊙h
//
// A nil input x drops the x·W terms, which is how the decoder runs on
// all-zero inputs without materializing them.
type gruCell struct {
	in, hidden int

	wz, wr, wn *mat.Dense // in × hidden
	uz, ur, un *mat.Dense // hidden × hidden
	bz, br, bn []float64  // hidden

	gwz, gwr, gwn *mat.Dense
	guz, gur, gun *mat.Dense
	gbz, gbr, gbn []float64
}

// gruStep records everything the backward pass needs about one forward
// step.
type gruStep struct {
	x     *mat.Dense // nil for zero input
	hPrev *mat.Dense
	z, r  *mat.Dense
	n     *mat.Dense
	h     *mat.Dense
	mask  []bool // nil means all rows active
}

func newGRUCell(in, hidden int, rng *rand.Rand) *gruCell {
	c := &gruCell{
		in:     in,
		hidden: hidden,
		wz:     randomDense(in, hidden, rng),
		wr:     randomDense(in, hidden, rng),
		wn:     randomDense(in, hidden, rng),
		uz:     randomDense(hidden, hidden, rng),
		ur:     randomDense(hidden, hidden, rng),
		un:     randomDense(hidden, hidden, rng),
		bz:     make([]float64, hidden),
		br:     make([]float64, hidden),
		bn:     make([]float64, hidden),
		gwz:    mat.NewDense(in, hidden, nil),
		gwr:    mat.NewDense(in, hidden, nil),
		gwn:    mat.NewDense(in, hidden, nil),
		guz:    mat.NewDense(hidden, hidden, nil),
		gur:    mat.NewDense(hidden, hidden, nil),
		gun:    mat.NewDense(hidden, hidden, nil),
		gbz:    make([]float64, hidden),
		gbr:    make([]float64, hidden),
		gbn:    make([]float64, hidden),
	}
	return c
}

// randomDense draws entries uniformly from ±1/sqrt(cols), the usual
// scaling for recurrent weights.
func randomDense(rows, cols int, rng *rand.Rand) *mat.Dense {
	bound := 1 / math.Sqrt(float64(cols))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = (rng.Float64()*2 - 1) * bound
	}
	return mat.NewDense(rows, cols, data)
}

// step advances the cell by one time step. x may be nil for a zero
// input. mask, when non-nil, freezes the hidden state of inactive rows
// at hPrev so padded steps never disturb a finished sequence.
func (c *gruCell) step(x, hPrev *mat.Dense, mask []bool) *gruStep {
	size, _ := hPrev.Dims()

	z := gateActivation(x, hPrev, c.wz, c.uz, c.bz, sigmoid)
	r := gateActivation(x, hPrev, c.wr, c.ur, c.br, sigmoid)

	rh := mat.NewDense(size, c.hidden, nil)
	rh.MulElem(r, hPrev)
	n := gateActivation(x, rh, c.wn, c.un, c.bn, math.Tanh)

	h := mat.NewDense(size, c.hidden, nil)
	for i := 0; i < size; i++ {
		if mask != nil && !mask[i] {
			h.SetRow(i, hPrev.RawRowView(i))
			continue
		}
		for j := 0; j < c.hidden; j++ {
			zv := z.At(i, j)
			h.Set(i, j, (1-zv)*n.At(i, j)+zv*hPrev.At(i, j))
		}
	}

	return &gruStep{x: x, hPrev: hPrev, z: z, r: r, n: n, h: h, mask: mask}
}

// gateActivation computes f(x·W + h·U + b) row-wise. x may be nil.
func gateActivation(x, h, w, u *mat.Dense, b []float64, f func(float64) float64) *mat.Dense {
	size, _ := h.Dims()
	_, hidden := u.Dims()

	a := mat.NewDense(size, hidden, nil)
	a.Mul(h, u)
	if x != nil {
		var xa mat.Dense
		xa.Mul(x, w)
		a.Add(a, &xa)
	}
	for i := 0; i < size; i++ {
		for j := 0; j < hidden; j++ {
			a.Set(i, j, f(a.At(i, j)+b[j]))
		}
	}
	return a
}

func sigmoid(v float64) float64 { return 1 / (1 + math.Exp(-v)) }

// backward accumulates parameter gradients for one recorded step and
// returns dL/dhPrev and dL/dx (nil when the step had no input). dH is
// dL/dh for the step's output state.
func (c *gruCell) backward(s *gruStep, dH *mat.Dense) (dHPrev, dX *mat.Dense) {
	size, _ := dH.Dims()

	// Rows frozen by the mask pass their gradient straight through to
	// hPrev and contribute nothing to the parameters.
	dHa := mat.NewDense(size, c.hidden, nil)
	dHa.Copy(dH)
	passThrough := mat.NewDense(size, c.hidden, nil)
	if s.mask != nil {
		for i := 0; i < size; i++ {
			if !s.mask[i] {
				passThrough.SetRow(i, dH.RawRowView(i))
				zeroRow(dHa, i)
			}
		}
	}

	dHPrev = mat.NewDense(size, c.hidden, nil)
	dan := mat.NewDense(size, c.hidden, nil)
	dar := mat.NewDense(size, c.hidden, nil)
	daz := mat.NewDense(size, c.hidden, nil)

	for i := 0; i < size; i++ {
		for j := 0; j < c.hidden; j++ {
			d := dHa.At(i, j)
			zv := s.z.At(i, j)
			nv := s.n.At(i, j)

			dn := d * (1 - zv)
			dan.Set(i, j, dn*(1-nv*nv))
			daz.Set(i, j, d*(s.hPrev.At(i, j)-nv)*zv*(1-zv))
			dHPrev.Set(i, j, d*zv)
		}
	}

	// Candidate path: dL/d(r⊙hPrev) = dan·Unᵀ.
	var drh mat.Dense
	drh.Mul(dan, c.un.T())
	for i := 0; i < size; i++ {
		for j := 0; j < c.hidden; j++ {
			rv := s.r.At(i, j)
			dr := drh.At(i, j) * s.hPrev.At(i, j)
			dar.Set(i, j, dr*rv*(1-rv))
			dHPrev.Set(i, j, dHPrev.At(i, j)+drh.At(i, j)*rv)
		}
	}

	accumulateGate(c.gun, c.gbn, elemMul(s.r, s.hPrev), dan)
	accumulateGate(c.gur, c.gbr, s.hPrev, dar)
	accumulateGate(c.guz, c.gbz, s.hPrev, daz)

	var tmp mat.Dense
	tmp.Mul(dar, c.ur.T())
	dHPrev.Add(dHPrev, &tmp)
	tmp.Reset()
	tmp.Mul(daz, c.uz.T())
	dHPrev.Add(dHPrev, &tmp)

	if s.x != nil {
		accumulateGate(c.gwn, nil, s.x, dan)
		accumulateGate(c.gwr, nil, s.x, dar)
		accumulateGate(c.gwz, nil, s.x, daz)

		dX = mat.NewDense(size, c.in, nil)
		var xt mat.Dense
		xt.Mul(dan, c.wn.T())
		dX.Add(dX, &xt)
		xt.Reset()
		xt.Mul(dar, c.wr.T())
		dX.Add(dX, &xt)
		xt.Reset()
		xt.Mul(daz, c.wz.T())
		dX.Add(dX, &xt)
	}

	dHPrev.Add(dHPrev, passThrough)

	return dHPrev, dX
}

// accumulateGate adds inᵀ·da to gw and the column sums of da to gb.
func accumulateGate(gw *mat.Dense, gb []float64, in, da *mat.Dense) {
	var g mat.Dense
	g.Mul(in.T(), da)
	gw.Add(gw, &g)

	if gb == nil {
		return
	}
	rows, cols := da.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			gb[j] += da.At(i, j)
		}
	}
}

func elemMul(a, b *mat.Dense) *mat.Dense {
	rows, cols := a.Dims()
	out := mat.NewDense(rows, cols, nil)
	out.MulElem(a, b)
	return out
}

func zeroRow(m *mat.Dense, i int) {
	_, cols := m.Dims()
	for j := 0; j < cols; j++ {
		m.Set(i, j, 0)
	}
}

func (c *gruCell) zeroGrads() {
	c.gwz.Zero()
	c.gwr.Zero()
	c.gwn.Zero()
	c.guz.Zero()
	c.gur.Zero()
	c.gun.Zero()
	zeroSlice(c.gbz)
	zeroSlice(c.gbr)
	zeroSlice(c.gbn)
}

func zeroSlice(s []float64) {
	for i := range s {
		s[i] = 0
	}
}

// params lists the cell's parameter storage in a fixed order matching
// grads.
func (c *gruCell) params() [][]float64 {
	return [][]float64{
		c.wz.RawMatrix().Data, c.wr.RawMatrix().Data, c.wn.RawMatrix().Data,
		c.uz.RawMatrix().Data, c.ur.RawMatrix().Data, c.un.RawMatrix().Data,
		c.bz, c.br, c.bn,
	}
}

func (c *gruCell) grads() [][]float64 {
	return [][]float64{
		c.gwz.RawMatrix().Data, c.gwr.RawMatrix().Data, c.gwn.RawMatrix().Data,
		c.guz.RawMatrix().Data, c.gur.RawMatrix().Data, c.gun.RawMatrix().Data,
		c.gbz, c.gbr, c.gbn,
	}
}

// SPDX-License-Identifier: EPL-2.0

package seqae

import (
	"errors"
	"testing"
)

// makeSeq builds a sequence of the given length where every value
// encodes its own position, so padding mistakes show up as wrong values.
func makeSeq(length, coeffs int) [][]float64 {
	seq := make([][]float64, length)
	for t := range seq {
		seq[t] = make([]float64, coeffs)
		for c := range seq[t] {
			seq[t][c] = float64(t*coeffs + c + 1)
		}
	}
	return seq
}

func TestCollate_ShapeAndLengths(t *testing.T) {
	t.Parallel()

	const coeffs = 4
	seqs := [][][]float64{
		makeSeq(5, coeffs),
		makeSeq(3, coeffs),
		makeSeq(8, coeffs),
	}

	b, err := Collate(seqs)
	if err != nil {
		t.Fatalf("Collate() error = %v", err)
	}

	if b.Size() != 3 || b.Steps() != 8 || b.Coeffs() != coeffs {
		t.Fatalf("shape = (%d, %d, %d), want (3, 8, %d)",
			b.Size(), b.Steps(), b.Coeffs(), coeffs)
	}

	want := []int{5, 3, 8}
	for i, l := range b.Lengths() {
		if l != want[i] {
			t.Errorf("Lengths()[%d] = %d, want %d", i, l, want[i])
		}
	}
}

func TestCollate_PreservesValuesAndZeroPads(t *testing.T) {
	t.Parallel()

	const coeffs = 2
	seqs := [][][]float64{
		makeSeq(4, coeffs),
		makeSeq(2, coeffs),
	}

	b, err := Collate(seqs)
	if err != nil {
		t.Fatalf("Collate() error = %v", err)
	}

	for i, seq := range seqs {
		for tt, vec := range seq {
			for c, v := range vec {
				if got := b.At(i, tt, c); got != v {
					t.Errorf("At(%d, %d, %d) = %v, want %v", i, tt, c, got, v)
				}
			}
		}
	}
	// Padding region of the short sequence stays zero.
	for tt := 2; tt < 4; tt++ {
		for c := 0; c < coeffs; c++ {
			if got := b.At(1, tt, c); got != 0 {
				t.Errorf("At(1, %d, %d) = %v, want 0", tt, c, got)
			}
		}
	}
}

func TestCollate_Mask(t *testing.T) {
	t.Parallel()

	b, err := Collate([][][]float64{makeSeq(3, 1), makeSeq(1, 1)})
	if err != nil {
		t.Fatalf("Collate() error = %v", err)
	}

	tests := []struct {
		step int
		want []bool
	}{
		{0, []bool{true, true}},
		{1, []bool{true, false}},
		{2, []bool{true, false}},
	}
	for _, tt := range tests {
		got := b.Mask(tt.step)
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("Mask(%d)[%d] = %v, want %v", tt.step, i, got[i], tt.want[i])
			}
		}
	}
}

func TestCollate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seqs [][][]float64
		want error
	}{
		{"empty batch", nil, ErrEmptyBatch},
		{"empty sequence", [][][]float64{{}}, ErrEmptySequence},
		{
			"ragged width",
			[][][]float64{{{1, 2}}, {{1, 2, 3}}},
			ErrRaggedWidth,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Collate(tt.seqs); !errors.Is(err, tt.want) {
				t.Errorf("Collate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBatch_StepSharesStorage(t *testing.T) {
	t.Parallel()

	b := NewBatch(2, 2, 3)
	b.Step(1).Set(0, 2, 42)

	if got := b.At(0, 1, 2); got != 42 {
		t.Errorf("At(0, 1, 2) = %v, want 42 after writing through Step view", got)
	}
}

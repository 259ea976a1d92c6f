// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/utils"
)

// readBufferSize is the per-read sample granularity used when draining
// decoded sources.
const readBufferSize = 4096

// Normalizer brings decoded audio to a fixed rate, duration and level.
type Normalizer struct {
	reg           *audio.Registry
	sampleRate    int
	targetSamples int
}

// NewNormalizer builds a normalizer producing mono signals of exactly
// targetSamples values at sampleRate Hz.
func NewNormalizer(reg *audio.Registry, sampleRate, targetSamples int) *Normalizer {
	return &Normalizer{
		reg:           reg,
		sampleRate:    sampleRate,
		targetSamples: targetSamples,
	}
}

func (n *Normalizer) SampleRate() int    { return n.sampleRate }
func (n *Normalizer) TargetSamples() int { return n.targetSamples }

// FixDuration pads samples with trailing zeros or crops them so the
// result holds exactly target values. Cropping keeps the leading samples
// untouched; the input slice is never modified.
func FixDuration(samples []float32, target int) []float32 {
	out := make([]float32, target)
	copy(out, samples)
	return out
}

// NormalizeRMS scales samples in place to unit RMS. An all-zero signal
// returns ErrZeroRMS and stays untouched.
func NormalizeRMS(samples []float32) error {
	rms := utils.RMS(utils.Float32sTo64(samples))
	if rms == 0 {
		return ErrZeroRMS
	}

	inv := float32(1 / rms)
	for i := range samples {
		samples[i] *= inv
	}
	return nil
}

// Process decodes path by extension and returns its normalized signal:
// mono at the target rate, exactly TargetSamples long, unit RMS. A
// silent input has no level to normalize and passes through as zeros.
func (n *Normalizer) Process(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	src, err := n.reg.Decode(filepath.Ext(path), f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	defer src.Close()

	samples, err := audio.CollectMono(src, n.sampleRate, readBufferSize)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	samples = FixDuration(samples, n.targetSamples)
	if err := NormalizeRMS(samples); err != nil && !errors.Is(err, ErrZeroRMS) {
		return nil, fmt.Errorf("normalizing %s: %w", path, err)
	}

	return samples, nil
}

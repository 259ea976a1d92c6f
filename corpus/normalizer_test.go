// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/formats/wav"
	"github.com/ik5/audseq/utils"
)

const testRate = 22050

// writeSineWav writes n samples of a 440 Hz sine as 16-bit mono WAV.
func writeSineWav(t *testing.T, path string, rate, n int) {
	t.Helper()

	pcm := make([]int16, n)
	for i := range pcm {
		v := 0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(rate))
		pcm[i] = utils.Float64ToInt16(v)
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	if err := wav.WriteWAV16(f, rate, pcm); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing %s: %v", path, err)
	}
}

// writeSilentWav writes n zero samples as 16-bit mono WAV.
func writeSilentWav(t *testing.T, path string, rate, n int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	if err := wav.WriteWAV16(f, rate, make([]int16, n)); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing %s: %v", path, err)
	}
}

func signalRMS(samples []float32) float64 {
	return utils.RMS(utils.Float32sTo64(samples))
}

func TestFixDuration_PadsShortInput(t *testing.T) {
	t.Parallel()

	in := []float32{1, 2, 3}
	out := FixDuration(in, 6)

	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}
	for i, v := range in {
		if out[i] != v {
			t.Errorf("out[%d] = %v, want %v", i, v, out[i])
		}
	}
	for i := 3; i < 6; i++ {
		if out[i] != 0 {
			t.Errorf("out[%d] = %v, want zero padding", i, out[i])
		}
	}
}

func TestFixDuration_CropsLongInputBitForBit(t *testing.T) {
	t.Parallel()

	in := []float32{0.1, -0.2, 0.3, -0.4, 0.5}
	out := FixDuration(in, 3)

	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	for i := range out {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %v, want exact prefix value %v", i, out[i], in[i])
		}
	}
	// The input itself stays untouched.
	if in[3] != -0.4 || in[4] != 0.5 {
		t.Error("FixDuration modified its input")
	}
}

func TestFixDuration_ExactLengthIsIdentity(t *testing.T) {
	t.Parallel()

	in := []float32{1, 2, 3}
	out := FixDuration(in, 3)
	for i := range out {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestNormalizeRMS_UnitRMS(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = float32(0.25 * math.Sin(float64(i)*0.05))
	}

	if err := NormalizeRMS(samples); err != nil {
		t.Fatalf("NormalizeRMS() error = %v", err)
	}
	if rms := signalRMS(samples); math.Abs(rms-1) > 1e-3 {
		t.Errorf("RMS after normalization = %v, want 1", rms)
	}
}

func TestNormalizeRMS_Silence(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 100)
	if err := NormalizeRMS(samples); !errors.Is(err, ErrZeroRMS) {
		t.Errorf("NormalizeRMS() error = %v, want ErrZeroRMS", err)
	}
	for i, v := range samples {
		if v != 0 {
			t.Fatalf("samples[%d] = %v, silence must stay untouched", i, v)
		}
	}
}

func TestProcess_FixedLengthUnitRMS(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	writeSineWav(t, path, testRate, testRate/2)

	n := NewNormalizer(DefaultRegistry(), testRate, testRate)
	samples, err := n.Process(path)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(samples) != testRate {
		t.Errorf("len = %d, want %d", len(samples), testRate)
	}
	if rms := signalRMS(samples); math.Abs(rms-1) > 1e-3 {
		t.Errorf("RMS = %v, want 1", rms)
	}

	// Processing is deterministic: a second pass over the same file
	// yields the same signal.
	again, err := n.Process(path)
	if err != nil {
		t.Fatalf("Process() second pass error = %v", err)
	}
	for i := range samples {
		if samples[i] != again[i] {
			t.Fatalf("samples[%d] differs between passes: %v vs %v", i, samples[i], again[i])
		}
	}
}

func TestProcess_SilencePassesThroughUnchanged(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "silent.wav")
	writeSilentWav(t, path, testRate, testRate/4)

	n := NewNormalizer(DefaultRegistry(), testRate, testRate)
	samples, err := n.Process(path)
	if err != nil {
		t.Fatalf("Process() error = %v, silence must not fail", err)
	}

	if len(samples) != testRate {
		t.Errorf("len = %d, want %d", len(samples), testRate)
	}
	for i, v := range samples {
		if v != 0 {
			t.Fatalf("samples[%d] = %v, silence must stay all-zero", i, v)
		}
	}
}

func TestProcess_CropsLongInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "long.wav")
	writeSineWav(t, path, testRate, 2*testRate)

	n := NewNormalizer(DefaultRegistry(), testRate, testRate)
	samples, err := n.Process(path)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(samples) != testRate {
		t.Fatalf("len = %d, want %d", len(samples), testRate)
	}

	// The result is the decoded prefix of the file, scaled to unit RMS.
	prefix := make([]float32, testRate)
	for i := range prefix {
		v := 0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(testRate))
		prefix[i] = float32(utils.Float64ToInt16(v)) / 32768.0
	}
	scale := float32(1 / signalRMS(prefix))
	for i := range samples {
		want := prefix[i] * scale
		if diff := samples[i] - want; diff < -1e-6 || diff > 1e-6 {
			t.Fatalf("samples[%d] = %v, want %v (cropped prefix)", i, samples[i], want)
		}
	}
}

func TestProcess_UnknownExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}

	n := NewNormalizer(DefaultRegistry(), testRate, testRate)
	if _, err := n.Process(path); !errors.Is(err, audio.ErrNoDecoder) {
		t.Errorf("Process() error = %v, want ErrNoDecoder", err)
	}
}

package audio

import (
	"io"
	"math"
	"testing"
)

func collectAll(t *testing.T, src Source, bufSize int) []float32 {
	t.Helper()

	buf := make([]float32, bufSize)
	var samples []float32

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	return samples
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	src := newSilentSource(44100, 2, 1000)
	resampler := NewResampler(src, 22050)

	if resampler.SampleRate() != 22050 {
		t.Errorf("Resampler.SampleRate() = %d, want 22050", resampler.SampleRate())
	}

	if resampler.Channels() != 2 {
		t.Errorf("Resampler.Channels() = %d, want 2", resampler.Channels())
	}
}

func TestResampler_Downsampling(t *testing.T) {
	t.Parallel()

	// Downsample 1 second of 44.1kHz audio to 22.05kHz
	src := newSineSource(44100, 1, 44100, 440.0)
	resampler := NewResampler(src, 22050)

	samples := collectAll(t, resampler, 1024)

	expected := 22050
	tolerance := 150
	if len(samples) < expected-tolerance || len(samples) > expected+tolerance {
		t.Errorf("Resampled %d samples, want ≈%d (±%d)", len(samples), expected, tolerance)
	}

	for i, s := range samples {
		if s < -1.5 || s > 1.5 {
			t.Fatalf("samples[%d] = %v, outside reasonable range [-1.5, 1.5]", i, s)
		}
	}
}

func TestResampler_Upsampling(t *testing.T) {
	t.Parallel()

	// Upsample 1 second of 8kHz audio to 22.05kHz
	src := newSineSource(8000, 1, 8000, 440.0)
	resampler := NewResampler(src, 22050)

	samples := collectAll(t, resampler, 1024)

	expected := 22050
	tolerance := 500
	if len(samples) < expected-tolerance || len(samples) > expected+tolerance {
		t.Errorf("Resampled %d samples, want ≈%d (±%d)", len(samples), expected, tolerance)
	}
}

func TestResampler_PreservesConstantSignal(t *testing.T) {
	t.Parallel()

	src := newConstantSource(32000, 1, 32000, 0.25)
	resampler := NewResampler(src, 22050)

	samples := collectAll(t, resampler, 512)

	// Skip the filter warm-up region, then every sample should be ≈0.25
	for i := 100; i < len(samples); i++ {
		if math.Abs(float64(samples[i]-0.25)) > 0.05 {
			t.Fatalf("samples[%d] = %v, want ≈0.25", i, samples[i])
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	src := newSilentSource(44100, 2, 1000)
	resampler := NewResampler(src, 22050)

	buf := make([]float32, 3) // not a multiple of 2 channels
	_, err := resampler.ReadSamples(buf)
	if err != ErrInvalidDstSize {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	src := newSilentSource(44100, 1, 0)
	resampler := NewResampler(src, 22050)

	buf := make([]float32, 100)
	n, err := resampler.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

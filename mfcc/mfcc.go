// SPDX-License-Identifier: EPL-2.0

package mfcc

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/window"
	"github.com/r9y9/gossp/stft"
)

var (
	ErrInputTooShort = errors.New("waveform shorter than one analysis window")
	ErrBadConfig     = errors.New("invalid mfcc configuration")
)

// Config controls MFCC extraction parameters.
type Config struct {
	SampleRate  int     // audio sample rate in Hz
	WindowSize  int     // analysis window / FFT length in samples
	HopSize     int     // hop between windows in samples
	NumCoeffs   int     // cepstral coefficients kept per frame
	NumMels     int     // mel filterbank size
	LowFreq     float64 // lowest filterbank frequency in Hz
	HighFreq    float64 // highest filterbank frequency in Hz (0 = Nyquist)
	PreEmphasis float64 // pre-emphasis coefficient (0 disables)
}

// DefaultConfig returns the extraction parameters used by the training
// pipeline: 40 coefficients from a 64-band filterbank, ~46ms windows with
// a quarter-window hop at 22.05kHz.
func DefaultConfig(sampleRate int) Config {
	return Config{
		SampleRate:  sampleRate,
		WindowSize:  1024,
		HopSize:     256,
		NumCoeffs:   40,
		NumMels:     64,
		LowFreq:     20,
		HighFreq:    0,
		PreEmphasis: 0.97,
	}
}

// Extractor computes MFCC sequences from waveforms.
type Extractor struct {
	cfg      Config
	st       *stft.STFT
	melBank  [][]float64
	dctBasis [][]float64
}

// New validates cfg and precomputes the window, filterbank and DCT basis.
func New(cfg Config) (*Extractor, error) {
	if cfg.SampleRate <= 0 || cfg.WindowSize <= 0 || cfg.HopSize <= 0 {
		return nil, ErrBadConfig
	}
	if cfg.NumCoeffs <= 0 || cfg.NumMels <= 0 || cfg.NumCoeffs > cfg.NumMels {
		return nil, ErrBadConfig
	}

	highFreq := cfg.HighFreq
	if highFreq == 0 {
		highFreq = float64(cfg.SampleRate) / 2
	}
	if cfg.LowFreq < 0 || highFreq <= cfg.LowFreq || highFreq > float64(cfg.SampleRate)/2 {
		return nil, ErrBadConfig
	}

	st := stft.New(cfg.HopSize, cfg.WindowSize)
	st.Window = window.Hamming(cfg.WindowSize)

	return &Extractor{
		cfg:      cfg,
		st:       st,
		melBank:  melFilterBank(cfg.NumMels, cfg.WindowSize, cfg.SampleRate, cfg.LowFreq, highFreq),
		dctBasis: dctBasis(cfg.NumCoeffs, cfg.NumMels),
	}, nil
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() Config { return e.cfg }

// NumCoeffs returns the width of each feature vector.
func (e *Extractor) NumCoeffs() int { return e.cfg.NumCoeffs }

// Extract computes the MFCC sequence of a mono waveform. The result has
// one row per analysis window and NumCoeffs columns.
func (e *Extractor) Extract(wave []float64) ([][]float64, error) {
	if len(wave) < e.cfg.WindowSize {
		return nil, ErrInputTooShort
	}

	emphasized := wave
	if e.cfg.PreEmphasis > 0 {
		emphasized = make([]float64, len(wave))
		emphasized[0] = wave[0]
		for i := 1; i < len(wave); i++ {
			emphasized[i] = wave[i] - e.cfg.PreEmphasis*wave[i-1]
		}
	}

	spectrum := e.st.STFT(emphasized)

	halfFFT := e.cfg.WindowSize/2 + 1
	features := make([][]float64, 0, len(spectrum))
	power := make([]float64, halfFFT)
	melEnergies := make([]float64, e.cfg.NumMels)

	for _, frame := range spectrum {
		for k := 0; k < halfFFT; k++ {
			mag := cmplx.Abs(frame[k])
			power[k] = mag * mag
		}

		for m := 0; m < e.cfg.NumMels; m++ {
			sum := 0.0
			for k, w := range e.melBank[m] {
				sum += w * power[k]
			}
			// Floor before the log to avoid -Inf on silence
			if sum < 1e-10 {
				sum = 1e-10
			}
			melEnergies[m] = math.Log(sum)
		}

		coeffs := make([]float64, e.cfg.NumCoeffs)
		for k := 0; k < e.cfg.NumCoeffs; k++ {
			sum := 0.0
			for m, b := range e.dctBasis[k] {
				sum += b * melEnergies[m]
			}
			coeffs[k] = sum
		}
		features = append(features, coeffs)
	}

	if len(features) == 0 {
		return nil, ErrInputTooShort
	}

	return features, nil
}

// dctBasis precomputes the orthonormal DCT-II basis mapping numMels log
// energies to numCoeffs cepstral coefficients.
func dctBasis(numCoeffs, numMels int) [][]float64 {
	basis := make([][]float64, numCoeffs)
	scale0 := math.Sqrt(1.0 / float64(numMels))
	scale := math.Sqrt(2.0 / float64(numMels))

	for k := 0; k < numCoeffs; k++ {
		row := make([]float64, numMels)
		s := scale
		if k == 0 {
			s = scale0
		}
		for m := 0; m < numMels; m++ {
			row[m] = s * math.Cos(math.Pi*float64(k)*(2*float64(m)+1)/(2*float64(numMels)))
		}
		basis[k] = row
	}
	return basis
}

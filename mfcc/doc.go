// SPDX-License-Identifier: EPL-2.0

// Package mfcc extracts Mel-Frequency Cepstral Coefficient sequences from
// mono float64 waveforms.
//
// The front-end is the usual chain: pre-emphasis, Hamming-windowed STFT,
// power spectrum, triangular mel filterbank (HTK scale), log energies,
// DCT-II truncated to the configured coefficient count. Extraction is
// deterministic and carries no state between calls, so the same waveform
// and config always produce the same feature sequence.
package mfcc

// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes 16-bit PCM WAV files.
//
// Decoding wraps github.com/go-audio/wav behind the audio.Source
// interface; writing uses the same library's encoder. Only PCM data is
// supported; compressed WAV variants are rejected with a typed error.
package wav

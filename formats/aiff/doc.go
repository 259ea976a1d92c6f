// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF audio via github.com/go-audio/aiff, exposing
// it as an audio.Source of interleaved float32 samples. Only 16-bit PCM
// files are supported.
package aiff

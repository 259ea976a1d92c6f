// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis audio via
// github.com/jfreymuth/oggvorbis, exposing it as an audio.Source of
// interleaved float32 samples.
package vorbis

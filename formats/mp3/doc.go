// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 audio via github.com/hajimehoshi/go-mp3,
// exposing it as an audio.Source of interleaved float32 samples.
// go-mp3 always emits 16-bit stereo PCM, so the source reports 2 channels.
package mp3

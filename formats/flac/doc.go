// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC audio via github.com/mewkiz/flac, exposing it
// as an audio.Source of interleaved float32 samples. FLAC frames are
// decoded lazily, one frame per underlying read.
package flac

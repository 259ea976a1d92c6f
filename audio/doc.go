// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming PCM core of the preprocessing
// pipeline: the Source abstraction over decoded audio, a decoder Registry
// keyed by file extension, a cubic-interpolation Resampler, a channel
// averaging MonoMixer, and CollectMono, which drains a pipeline into a
// float32 sample vector ready for feature extraction.
//
// Every stage implements Source, so stages compose freely:
//
//	src, _ := wav.Decoder{}.Decode(file)
//	mono := audio.NewMonoMixer(audio.NewResampler(src, 22050))
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// Samples are interleaved float32 values in [-1, 1]. All stages are
// single-reader; none of them is safe for concurrent use.
package audio

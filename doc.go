// SPDX-License-Identifier: EPL-2.0

// Package audseq is an audio preprocessing and representation learning
// toolkit.
//
// The pipeline runs in three stages, each usable on its own:
//
//   - audio and formats/*: streaming decoders behind a common Source
//     interface, with resampling and mono mixdown (package audio).
//   - corpus and mfcc: directory-level normalization to a fixed rate,
//     duration and level, and MFCC feature extraction.
//   - seqae: a GRU sequence autoencoder trained on the extracted
//     feature sequences.
//
// The root package ties the low-level pieces together for callers that
// work on single signals rather than directories.
package audseq

// SPDX-License-Identifier: EPL-2.0

// Package seqae trains a recurrent sequence autoencoder on variable
// length feature sequences.
//
// Collate packs a group of sequences into a zero-padded rectangular batch
// with their true lengths. A GRU encoder reads each sequence up to its
// true length and keeps one hidden state per sequence; a GRU decoder,
// seeded with that state and driven by zero inputs, unrolls for the
// batch's full padded length; a position-wise linear projection maps the
// decoder states back to coefficient space. Training minimizes the mean
// squared reconstruction error with Adam.
//
// All dense algebra uses gonum; gradients for the fixed
// encoder/decoder/projection architecture are computed by hand-written
// backpropagation through time and verified against finite differences in
// the tests.
package seqae

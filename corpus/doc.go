// SPDX-License-Identifier: EPL-2.0

// Package corpus turns a directory of audio files into training data.
//
// Every decodable file is brought to a common shape: decoded through the
// format registry, resampled to the target rate, mixed down to mono,
// padded or cropped to the target duration and scaled to unit RMS.
// NormalizeDir persists the normalized signals as 16-bit PCM WAV files;
// Build goes one step further and extracts MFCC feature sequences,
// returning an explicit Corpus value.
//
// Silence has no level to normalize and passes through unchanged. Files
// that fail to decode are logged and skipped; one broken file never
// aborts a directory scan.
package corpus

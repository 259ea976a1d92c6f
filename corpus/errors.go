// SPDX-License-Identifier: EPL-2.0

package corpus

import "errors"

var (
	// ErrZeroRMS marks an all-zero signal that cannot be RMS-scaled.
	ErrZeroRMS = errors.New("signal has zero RMS")

	// ErrNoFiles means a directory scan found nothing decodable.
	ErrNoFiles = errors.New("no decodable audio files found")
)

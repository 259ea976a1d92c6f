// SPDX-License-Identifier: EPL-2.0

package seqae

import "errors"

var (
	ErrEmptyBatch    = errors.New("batch must contain at least one sequence")
	ErrEmptySequence = errors.New("sequence has zero length")
	ErrRaggedWidth   = errors.New("sequences disagree on coefficient count")
	ErrShapeMismatch = errors.New("batch shapes do not match")
	ErrEmptyCorpus   = errors.New("corpus has no feature sequences")
	ErrLossDiverged  = errors.New("training loss is not finite")
	ErrBadCheckpoint = errors.New("malformed checkpoint")
)

// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	goflac "github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/audseq/audio"
)

// flacStream is an interface for goflac.Stream to allow testing
type flacStream interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	stream     flacStream
	sampleRate int
	channels   int
	scale      float32 // 1 / 2^(bits-1)

	// Interleaved samples decoded from the current frame but not yet
	// handed to the caller
	pending []float32
	eof     bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// fillPending decodes the next FLAC frame into the pending buffer.
func (s *source) fillPending() error {
	f, err := s.stream.ParseNext()
	if err == io.EOF {
		s.eof = true
		return io.EOF
	}
	if err != nil {
		return fmt.Errorf("parsing flac frame: %w", err)
	}

	if len(f.Subframes) == 0 {
		return nil
	}

	frames := len(f.Subframes[0].Samples)
	if cap(s.pending) < frames*s.channels {
		s.pending = make([]float32, 0, frames*s.channels)
	}
	s.pending = s.pending[:0]

	for i := 0; i < frames; i++ {
		for ch := 0; ch < s.channels && ch < len(f.Subframes); ch++ {
			s.pending = append(s.pending, float32(f.Subframes[ch].Samples[i])*s.scale)
		}
	}

	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	for len(s.pending) == 0 {
		if s.eof {
			return 0, io.EOF
		}
		if err := s.fillPending(); err != nil {
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, err
		}
	}

	n := copy(dst, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := goflac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	bits := int(stream.Info.BitsPerSample)
	if bits < 8 || bits > 32 {
		return nil, ErrUnsupportedBitDepth
	}

	return &source{
		stream:     stream,
		sampleRate: int(stream.Info.SampleRate),
		channels:   int(stream.Info.NChannels),
		scale:      float32(1.0 / float64(int64(1)<<(bits-1))),
	}, nil
}

// SPDX-License-Identifier: EPL-2.0

package corpus

import (
	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/formats/aiff"
	"github.com/ik5/audseq/formats/flac"
	"github.com/ik5/audseq/formats/mp3"
	"github.com/ik5/audseq/formats/vorbis"
	"github.com/ik5/audseq/formats/wav"
)

// DefaultRegistry returns a registry with every built-in decoder
// registered under its usual extensions.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})

	return reg
}

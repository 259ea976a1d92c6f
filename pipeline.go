// SPDX-License-Identifier: EPL-2.0

package audseq

import (
	"github.com/ik5/audseq/audio"
	"github.com/ik5/audseq/mfcc"
	"github.com/ik5/audseq/utils"
)

// defaultBufferSize is the per-read sample granularity for draining
// sources.
const defaultBufferSize = 4096

// CollectMono64 drains src into a mono float64 signal at targetRate,
// ready for DSP work. It is audio.CollectMono widened for the feature
// extraction stage.
func CollectMono64(src audio.Source, targetRate int) ([]float64, error) {
	samples, err := audio.CollectMono(src, targetRate, defaultBufferSize)
	if err != nil {
		return nil, err
	}
	return utils.Float32sTo64(samples), nil
}

// ExtractFeatures runs src through the full single-signal pipeline:
// resample to the extractor's rate, mix to mono and extract MFCC frames.
func ExtractFeatures(src audio.Source, ext *mfcc.Extractor) ([][]float64, error) {
	wave, err := CollectMono64(src, ext.Config().SampleRate)
	if err != nil {
		return nil, err
	}
	return ext.Extract(wave)
}

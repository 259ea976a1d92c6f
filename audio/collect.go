// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// CollectMono drains src into a mono float32 sample vector at targetRate.
//
// It builds the standard preprocessing pipeline: resample to targetRate
// (skipped entirely when the source already runs at targetRate, so samples
// pass through untouched), then average all channels down to one, then
// read until EOF.
//
// bufferSize controls the read granularity (e.g., 4096). The returned
// error is nil on a clean EOF.
func CollectMono(src Source, targetRate int, bufferSize int) ([]float32, error) {
	stage := src
	if src.SampleRate() != targetRate {
		stage = NewResampler(src, targetRate)
	}
	mono := NewMonoMixer(stage)

	// Guess one second of output as the starting capacity
	samples := make([]float32, 0, targetRate)
	buf := make([]float32, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return samples, nil
}

// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Float32ToInt16 clamps x to [-1, 1] and scales it to int16 PCM.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// Float64ToInt16 clamps x to [-1, 1] and scales it to int16 PCM.
func Float64ToInt16(x float64) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int16(x * 32767.0)
}

// Float32sTo64 widens a float32 sample vector to float64 for DSP work.
func Float32sTo64(src []float32) []float64 {
	dst := make([]float64, len(src))
	for i, v := range src {
		dst[i] = float64(v)
	}
	return dst
}

// RMS returns the root-mean-square amplitude of samples.
// An empty slice has RMS 0.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sumSq := floats.Dot(samples, samples)
	return math.Sqrt(sumSq / float64(len(samples)))
}

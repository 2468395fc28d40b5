// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// FullScale is the magnitude of the most negative sample for a signed PCM
// bit depth, e.g. 32768 for 16 bits.
func FullScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

// PCMToFloat maps a signed PCM sample to [-1, 1).
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / FullScale(bitDepth))
}

// FloatToPCM clamps x to [-1, 1] and scales it to a signed PCM sample.
// The positive peak maps to FullScale-1 to avoid overflow.
func FloatToPCM(x float64, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int(x * (FullScale(bitDepth) - 1))
}

// DecibelsToGain converts a level change in dB to a linear amplitude factor.
func DecibelsToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

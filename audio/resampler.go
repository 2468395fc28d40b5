// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"

	"github.com/ik5/noisemix/utils"
)

// lowPassAlpha is the coefficient of the one-pole filter applied before
// downsampling.
const lowPassAlpha = 0.5

// Resample converts buf to dstRate using cubic interpolation.
// The result holds round(len * dstRate / srcRate) samples.
func Resample(buf Buffer, dstRate int) (Buffer, error) {
	if buf.SampleRate <= 0 || dstRate <= 0 {
		return Buffer{}, ErrInvalidSampleRate
	}

	if buf.SampleRate == dstRate {
		return buf.Clone(), nil
	}

	n := len(buf.Samples)
	outLen := int(math.Round(float64(n) * float64(dstRate) / float64(buf.SampleRate)))
	out := Buffer{
		Samples:    make([]float64, outLen),
		SampleRate: dstRate,
	}
	if n == 0 || outLen == 0 {
		return out, nil
	}

	src := buf.Samples
	ratio := float64(buf.SampleRate) / float64(dstRate)
	if ratio > 1 {
		src = lowPass(src, lowPassAlpha)
	}

	at := func(i int) float64 {
		return src[min(max(i, 0), n-1)]
	}

	for i := range out.Samples {
		pos := float64(i) * ratio
		k := int(pos)
		frac := pos - float64(k)
		out.Samples[i] = utils.CubicInterpolate(at(k-1), at(k), at(k+1), at(k+2), frac)
	}

	return out, nil
}

// lowPass runs y[n] = alpha*x[n] + (1-alpha)*y[n-1], seeded with x[0] to avoid
// a warm-up transient.
func lowPass(x []float64, alpha float64) []float64 {
	y := make([]float64, len(x))
	prev := x[0]
	for i, v := range x {
		prev = alpha*v + (1-alpha)*prev
		y[i] = prev
	}

	return y
}

// SPDX-License-Identifier: EPL-2.0

package mix

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"

	"github.com/ik5/noisemix/audio"
)

// Result is a mixed buffer along with the parameters that produced it.
type Result struct {
	audio.Buffer

	// Offset is the start of the noise segment within the tiled noise.
	Offset int
	// Gain is the factor the noise segment was scaled by.
	Gain float64
}

// Tile repeats noise by doubling until it is strictly longer than n samples.
// The input is never modified. Empty noise is returned as is.
func Tile(noise []float64, n int) []float64 {
	if len(noise) == 0 {
		return noise
	}

	out := noise
	for n >= len(out) {
		grown := make([]float64, 2*len(out))
		copy(grown, out)
		copy(grown[len(out):], out)
		out = grown
	}

	return out
}

// Mix adds a random segment of noise to clean at a signal-to-noise ratio of
// 0 dB: the segment is scaled so that its energy equals the energy of clean.
// The result has the length and sample rate of clean. Samples are not
// clipped.
func Mix(rng *rand.Rand, clean, noise audio.Buffer) (Result, error) {
	if len(noise.Samples) == 0 {
		return Result{}, ErrDegenerateInput
	}

	n := len(clean.Samples)
	tiled := Tile(noise.Samples, n)

	offset := rng.IntN(len(tiled) - n)
	segment := tiled[offset : offset+n]

	noisePower := floats.Dot(segment, segment)
	if noisePower == 0 {
		return Result{}, ErrDegenerateInput
	}

	cleanPower := floats.Dot(clean.Samples, clean.Samples)
	gain := math.Sqrt(cleanPower / noisePower)

	out := make([]float64, n)
	floats.AddScaledTo(out, clean.Samples, gain, segment)

	return Result{
		Buffer: audio.Buffer{Samples: out, SampleRate: clean.SampleRate},
		Offset: offset,
		Gain:   gain,
	}, nil
}

// AddNoise is Mix without the mixing parameters.
func AddNoise(rng *rand.Rand, clean, noise audio.Buffer) (audio.Buffer, error) {
	res, err := Mix(rng, clean, noise)
	if err != nil {
		return audio.Buffer{}, err
	}

	return res.Buffer, nil
}

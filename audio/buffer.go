// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Buffer is a fully decoded mono signal.
type Buffer struct {
	Samples    []float64
	SampleRate int
}

func (b Buffer) Len() int { return len(b.Samples) }

func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}

// Energy is the sum of squared samples.
func (b Buffer) Energy() float64 {
	return floats.Dot(b.Samples, b.Samples)
}

// Peak is the largest absolute sample value, 0 for an empty buffer.
func (b Buffer) Peak() float64 {
	return floats.Norm(b.Samples, math.Inf(1))
}

// Normalize rescales the samples in place so the peak is 1. Silence is left as is.
func (b Buffer) Normalize() {
	peak := b.Peak()
	if peak == 0 {
		return
	}
	floats.Scale(1/peak, b.Samples)
}

func (b Buffer) Clone() Buffer {
	out := Buffer{
		Samples:    make([]float64, len(b.Samples)),
		SampleRate: b.SampleRate,
	}
	copy(out.Samples, b.Samples)

	return out
}

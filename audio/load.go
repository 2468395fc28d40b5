// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Native keeps the sample rate of the decoded file.
const Native = 0

const readChunk = 4096

// ReadAll drains src into a mono Buffer.
func ReadAll(src Source) (Buffer, error) {
	if src.SampleRate() <= 0 {
		return Buffer{}, ErrInvalidSampleRate
	}

	mono := NewMonoMixer(src)
	out := Buffer{SampleRate: src.SampleRate()}
	chunk := make([]float32, readChunk)

	for {
		n, err := mono.ReadSamples(chunk)
		for _, v := range chunk[:n] {
			out.Samples = append(out.Samples, float64(v))
		}

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return Buffer{}, fmt.Errorf("%w", err)
		}
		if n == 0 {
			// A source that neither advances nor reports EOF would spin forever.
			return out, nil
		}
	}
}

// Load decodes the file at path with the decoder registered for its
// extension, downmixes it to mono and resamples it to targetRate unless
// targetRate is Native. When normalize is set the returned buffer is scaled
// to a peak of 1.
//
// Every failure is reported wrapped in ErrDecode.
func Load(reg *Registry, path string, targetRate int, normalize bool) (Buffer, error) {
	dec, err := reg.ForPath(path)
	if err != nil {
		return Buffer{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return Buffer{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return Buffer{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	defer src.Close()

	buf, err := ReadAll(src)
	if err != nil {
		return Buffer{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}

	if targetRate != Native {
		buf, err = Resample(buf, targetRate)
		if err != nil {
			return Buffer{}, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
		}
	}

	if normalize {
		buf.Normalize()
	}

	return buf, nil
}

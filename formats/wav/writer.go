// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/noisemix/utils"
)

// BitDepth of every file this package writes.
const BitDepth = 16

// Write encodes interleaved samples as 16-bit PCM. Samples outside [-1, 1]
// saturate at full scale.
func Write(w io.WriteSeeker, sampleRate, channels int, samples []float64) error {
	if channels <= 0 {
		return ErrInvalidChannels
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = utils.FloatToPCM(s, BitDepth)
	}

	enc := gowav.NewEncoder(w, sampleRate, BitDepth, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: BitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// WriteFile creates (or truncates) path and writes a mono 16-bit PCM WAV.
// On failure no file is left at path.
func WriteFile(path string, sampleRate int, samples []float64) error {
	return writeFile(path, sampleRate, 1, samples)
}

func writeFile(path string, sampleRate, channels int, samples []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := Write(f, sampleRate, channels, samples); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("%w", err)
	}

	return nil
}

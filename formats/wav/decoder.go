// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/noisemix/audio"
	"github.com/ik5/noisemix/utils"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE

	// The sub-format GUID of WAVE_FORMAT_EXTENSIBLE starts 24 bytes into the
	// fmt chunk; its first two bytes carry the format code.
	subFormatOffset = 24
)

// pcmReader is the subset of the go-audio decoder used by source.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

// BitDepth reports the bit depth of the stored PCM data.
func (s *source) BitDepth() int { return s.bitDepth }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst) < s.channels {
		return 0, audio.ErrInvalidDstSize
	}
	dst = dst[:len(dst)-len(dst)%s.channels]

	if cap(s.intBuf.Data) < len(dst) {
		s.intBuf.Data = make([]int, len(dst))
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	if s.bitDepth == 8 {
		// 8-bit WAV data is unsigned with a 128 midpoint.
		for i, v := range s.intBuf.Data[:n] {
			dst[i] = utils.PCMToFloat(v-128, 8)
		}
	} else {
		for i, v := range s.intBuf.Data[:n] {
			dst[i] = utils.PCMToFloat(v, s.bitDepth)
		}
	}

	return n, nil
}

// Decoder reads integer PCM WAV files of 8, 16, 24 or 32 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		// go-audio needs to seek between chunks.
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	dec.ReadInfo()
	switch dec.WavAudioFormat {
	case formatPCM:
	case formatExtensible:
		sub, err := subFormat(rs)
		if err != nil {
			return nil, err
		}
		if sub != formatPCM {
			return nil, ErrUnsupportedEncoding
		}
	default:
		return nil, ErrUnsupportedEncoding
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ErrUnsupportedEncoding
	}

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedWavLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
		intBuf: &goaudio.IntBuffer{
			Data:   make([]int, 4096),
			Format: format,
		},
	}, nil
}

// subFormat reads the format code from the sub-format GUID of an extensible
// fmt chunk. The read position of rs is restored before returning.
func subFormat(rs io.ReadSeeker) (uint16, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	defer rs.Seek(pos, io.SeekStart)

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	p := riff.New(rs)
	if _, _, err := p.IDnSize(); err != nil {
		return 0, ErrUnsupportedWavLayout
	}
	if err := binary.Read(rs, binary.BigEndian, &p.Format); err != nil {
		return 0, ErrUnsupportedWavLayout
	}

	for {
		chunk, err := p.NextChunk()
		if err != nil {
			return 0, ErrUnsupportedWavLayout
		}

		if chunk.ID != riff.FmtID {
			chunk.Drain()
			continue
		}

		body := make([]byte, chunk.Size)
		if _, err := io.ReadFull(chunk, body); err != nil || len(body) < subFormatOffset+2 {
			return 0, ErrUnsupportedWavLayout
		}

		return binary.LittleEndian.Uint16(body[subFormatOffset:]), nil
	}
}

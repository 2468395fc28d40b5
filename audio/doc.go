// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding contracts and in-memory signal type
// used by the dataset pipeline.
//
// # Sources and Decoders
//
// Format packages under formats/ implement Decoder and return a streaming
// Source of interleaved float32 samples in [-1, 1]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// A Registry maps file extensions to decoders so callers can open any
// supported file by path:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, err := reg.ForPath("clip.wav")
//
// # Buffers
//
// Buffer is a fully decoded mono signal held as float64 samples. Load is the
// usual entry point: it decodes, downmixes with MonoMixer, resamples and
// optionally peak-normalizes a file:
//
//	buf, err := audio.Load(reg, "clip.mp3", 16000, true)
//
// Pass Native as the target rate to keep the file's own sample rate.
//
// # Resampling
//
// Resample uses Catmull-Rom cubic interpolation. When downsampling a one-pole
// low-pass filter runs first to reduce aliasing.
//
// # Errors
//
// Load wraps every failure in ErrDecode, so callers can tell a bad input
// file apart from other errors with errors.Is.
package audio

// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Both directions use github.com/go-audio/wav, so the decoder copes with
// files whose header is not the canonical 44 bytes (LIST chunks, extensible
// fmt chunks) as found in field-recording corpora.
//
// # Supported Formats
//
// Decoding:
//   - Integer PCM at 8 (unsigned), 16, 24 and 32 bits
//   - Any channel count and sample rate
//
// IEEE float WAV, plain or extensible, is rejected with ErrUnsupportedEncoding.
//
// Encoding always produces 16-bit PCM.
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Samples are float32 values in the range [-1.0, 1.0).
//
// # Writing WAV Files
//
//	err := wav.WriteFile("out.wav", 16000, samples)
//
// Write takes an io.WriteSeeker because the header sizes are patched once
// all data is written. Values beyond [-1, 1] saturate at full scale.
package wav

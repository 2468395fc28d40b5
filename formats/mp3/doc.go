// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 files, the container Common Voice ships its clips in.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always produces
// 16-bit little-endian stereo PCM (mono files are duplicated to both
// channels). The Decoder wraps it as an audio.Source:
//
//	file, _ := os.Open("common_voice_en_1.mp3")
//	src, err := mp3.Decoder{}.Decode(file)
//
// Use audio.Load to get a mono, resampled buffer in one step.
package mp3

// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files through github.com/jfreymuth/oggvorbis.
//
//	file, _ := os.Open("clip.ogg")
//	src, err := vorbis.Decoder{}.Decode(file)
//
// Samples come out interleaved, already in [-1, 1].
package vorbis

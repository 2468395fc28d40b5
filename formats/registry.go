// SPDX-License-Identifier: EPL-2.0

// Package formats wires every decoder in formats/ into an audio.Registry.
package formats

import (
	"github.com/ik5/noisemix/audio"
	"github.com/ik5/noisemix/formats/aiff"
	"github.com/ik5/noisemix/formats/mp3"
	"github.com/ik5/noisemix/formats/vorbis"
	"github.com/ik5/noisemix/formats/wav"
)

// NewRegistry returns a registry keyed by file extension with all supported
// decoders.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}

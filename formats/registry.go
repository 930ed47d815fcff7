// SPDX-License-Identifier: EPL-2.0

// Package formats wires every decoder of the module into a single registry.
package formats

import (
	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/formats/aiff"
	"github.com/ik5/audxcode/formats/flac"
	"github.com/ik5/audxcode/formats/mp3"
	"github.com/ik5/audxcode/formats/vorbis"
	"github.com/ik5/audxcode/formats/wav"
)

// NewRegistry returns a registry keyed by the extensions used for file type
// detection.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("flac", flac.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	return r
}

// SPDX-License-Identifier: EPL-2.0

package transcode

import "github.com/ik5/audxcode/audio"

// Options are the user-facing conversion settings. A zero field is unset.
type Options struct {
	// OutputExtension selects the output container. Derived from the output
	// path when empty.
	OutputExtension string
	// Codec forces the external tool when set.
	Codec string
	// BitrateKbps is ignored by the lossless native paths.
	BitrateKbps int
	SampleRate  int
	Channels    int
	// QualityPreset is passed to the external tool only.
	QualityPreset string
	// Threads sizes the worker pool, 0 for all available cores.
	Threads int
}

// OutputSpec overlays the rate and channel overrides onto in. Native output
// is always 16-bit.
func (o Options) OutputSpec(in audio.StreamSpec) audio.StreamSpec {
	out := audio.StreamSpec{
		SampleRate: in.SampleRate,
		Channels:   in.Channels,
		BitDepth:   16,
	}
	if o.SampleRate > 0 {
		out.SampleRate = o.SampleRate
	}
	if o.Channels > 0 {
		out.Channels = o.Channels
	}
	return out
}

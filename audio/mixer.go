package audio

import (
	"github.com/tphakala/simd/f32"

	"github.com/ik5/audxcode/parallel"
)

// MixChannels remaps interleaved samples from inChannels to outChannels,
// keeping the frame count. Rules, first match wins:
//
//   - equal counts return in itself
//   - a zero count or empty input returns an empty slice
//   - 1 -> 2 duplicates the channel
//   - 2 -> 1 averages both channels
//   - expansion copies input channel c mod inChannels into output channel c
//   - reduction averages input channels [c, inChannels) into output channel c
//
// A trailing partial frame is dropped. Frames are independent of each other
// and are split across the pool; output order matches input order.
func MixChannels(p *parallel.Pool, in []float32, inChannels, outChannels int) []float32 {
	if inChannels == outChannels {
		return in
	}
	if inChannels <= 0 || outChannels <= 0 || len(in) == 0 {
		return []float32{}
	}

	frames := len(in) / inChannels
	out := make([]float32, frames*outChannels)
	mix := frameMixer(inChannels, outChannels)

	p.For(frames, func(lo, hi int) {
		for f := lo; f < hi; f++ {
			mix(out[f*outChannels:(f+1)*outChannels], in[f*inChannels:(f+1)*inChannels])
		}
	})

	return out
}

func frameMixer(inChannels, outChannels int) func(dst, src []float32) {
	switch {
	case inChannels == 1 && outChannels == 2:
		return func(dst, src []float32) {
			dst[0], dst[1] = src[0], src[0]
		}
	case inChannels == 2 && outChannels == 1:
		return func(dst, src []float32) {
			dst[0] = (src[0] + src[1]) / 2
		}
	case inChannels < outChannels:
		return func(dst, src []float32) {
			for c := range dst {
				dst[c] = src[c%inChannels]
			}
		}
	default:
		return func(dst, src []float32) {
			for c := range dst {
				dst[c] = f32.Sum(src[c:]) / float32(inChannels-c)
			}
		}
	}
}

package audio

import (
	"io"
	"math"
)

// genSource produces frames frames of fn(frame, channel) as 32-bit floats.
type genSource struct {
	spec   StreamSpec
	frames int
	pos    int
	fn     func(frame, channel int) float32
}

func newGenSource(rate, channels, frames int, fn func(frame, channel int) float32) *genSource {
	return &genSource{
		spec:   StreamSpec{SampleRate: rate, Channels: channels, BitDepth: 32},
		frames: frames,
		fn:     fn,
	}
}

func newSilentSource(rate, channels, frames int) *genSource {
	return newGenSource(rate, channels, frames, func(int, int) float32 { return 0 })
}

func newSineSource(rate, channels, frames int, freq float64) *genSource {
	return newGenSource(rate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
	})
}

func newConstantSource(rate, channels, frames int, v float32) *genSource {
	return newGenSource(rate, channels, frames, func(int, int) float32 { return v })
}

func (g *genSource) Spec() StreamSpec { return g.spec }
func (g *genSource) Close() error     { return nil }

func (g *genSource) ReadSamples(dst []float32) (int, error) {
	if g.pos >= g.frames {
		return 0, io.EOF
	}

	ch := g.spec.Channels
	n := min(len(dst)/ch, g.frames-g.pos)
	for f := range n {
		for c := range ch {
			dst[f*ch+c] = g.fn(g.pos+f, c)
		}
	}
	g.pos += n

	if g.pos >= g.frames {
		return n * ch, io.EOF
	}
	return n * ch, nil
}

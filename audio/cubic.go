package audio

import (
	"github.com/ik5/audxcode/utils"
)

// CubicEngine resamples with Catmull-Rom interpolation between neighbouring
// input frames. It has no anti-aliasing filter, so it is meant for quick
// conversions and tests rather than mastering-quality output.
//
// Output frame k sits at input position k*in/out. The session keeps the input
// frames still needed by future positions across Process calls, so the result
// does not depend on how the stream is chunked. Flush emits the positions
// that were waiting for right-hand neighbours, repeating the last frame, for a
// total of ceil(frames*out/in) output frames.
type CubicEngine struct{}

func (CubicEngine) NewSession(cfg SessionConfig) (Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cubicSession{
		inRate:  int64(cfg.InputRate),
		outRate: int64(cfg.OutputRate),
		pending: make([][]float32, cfg.Channels),
		next:    outputFrames(cfg.ChunkSize, cfg.InputRate, cfg.OutputRate) + 1,
	}, nil
}

type cubicSession struct {
	inRate, outRate int64

	// pending[c][0] is input frame base of channel c.
	pending [][]float32
	base    int64
	total   int64 // input frames consumed
	k       int64 // next output frame
	next    int
}

func (s *cubicSession) OutputFramesNext() int { return s.next }

// position of output frame k as integer input index and fraction.
func (s *cubicSession) position(k int64) (int64, float32) {
	num := k * s.inRate
	return num / s.outRate, float32(num%s.outRate) / float32(s.outRate)
}

func (s *cubicSession) Process(planar [][]float32) ([][]float32, error) {
	if len(planar) != len(s.pending) {
		return nil, errChannelMismatch(len(planar), len(s.pending))
	}
	for c := range planar {
		if len(planar[c]) != len(planar[0]) {
			return nil, errRowMismatch(c, len(planar[c]), len(planar[0]))
		}
	}
	for c := range planar {
		s.pending[c] = append(s.pending[c], planar[c]...)
	}
	s.total += int64(len(planar[0]))

	// Emit while the right-hand neighbour i+2 has arrived.
	out := s.emit(func(i int64) bool { return i+2 < s.total })
	s.trim()
	return out, nil
}

func (s *cubicSession) Flush() ([][]float32, error) {
	out := s.emit(func(i int64) bool { return i < s.total })
	for c := range s.pending {
		s.pending[c] = nil
	}
	s.base = s.total
	return out, nil
}

func (s *cubicSession) emit(ready func(i int64) bool) [][]float32 {
	out := make([][]float32, len(s.pending))
	for {
		i, frac := s.position(s.k)
		if !ready(i) {
			break
		}
		local := int(i - s.base)
		for c, buf := range s.pending {
			out[c] = append(out[c], utils.CubicAt(buf, local, frac))
		}
		s.k++
	}

	for c := range out {
		if out[c] == nil {
			out[c] = []float32{}
		}
	}
	return out
}

// trim drops frames before i-1 of the next output position; CubicAt repeats
// pending[0] only at the true start of the stream.
func (s *cubicSession) trim() {
	i, _ := s.position(s.k)
	drop := i - 1 - s.base
	if drop <= 0 {
		return
	}
	drop = min(drop, int64(len(s.pending[0])))
	for c := range s.pending {
		s.pending[c] = append(s.pending[c][:0], s.pending[c][drop:]...)
	}
	s.base += drop
}

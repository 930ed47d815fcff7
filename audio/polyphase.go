// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	resampler "github.com/tphakala/go-audio-resampler"
)

// PolyphaseEngine is a windowed-sinc polyphase resampler at a fixed high
// quality preset. Each channel runs its own engine instance so every channel
// is drained on flush.
type PolyphaseEngine struct{}

func (PolyphaseEngine) NewSession(cfg SessionConfig) (Session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	rc := resampler.Config{
		InputRate:  float64(cfg.InputRate),
		OutputRate: float64(cfg.OutputRate),
		Channels:   cfg.Channels,
		Quality:    resampler.QualitySpec{Preset: resampler.QualityHigh},
	}
	if err := rc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResamplerConfig, err)
	}

	s := &polyphaseSession{
		engines: make([]*resampler.SimpleResamplerFloat32, cfg.Channels),
		next:    outputFrames(cfg.ChunkSize, cfg.InputRate, cfg.OutputRate),
	}
	for c := range s.engines {
		e, err := resampler.NewEngineFloat32(rc.InputRate, rc.OutputRate, resampler.QualityHigh)
		if err != nil {
			return nil, fmt.Errorf("%w: channel %d: %w", ErrResamplerConfig, c, err)
		}
		s.engines[c] = e
	}

	return s, nil
}

type polyphaseSession struct {
	engines []*resampler.SimpleResamplerFloat32
	next    int
}

func (s *polyphaseSession) OutputFramesNext() int { return s.next }

func (s *polyphaseSession) Process(planar [][]float32) ([][]float32, error) {
	if len(planar) != len(s.engines) {
		return nil, errChannelMismatch(len(planar), len(s.engines))
	}

	out := make([][]float32, len(s.engines))
	for c, e := range s.engines {
		res, err := e.Process(planar[c])
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", c, err)
		}
		if c > 0 && len(res) != len(out[0]) {
			return nil, errRowMismatch(c, len(res), len(out[0]))
		}
		out[c] = res
	}

	return out, nil
}

// Flush drains every channel and pads the shorter tails with silence so the
// planar rows stay equal in length.
func (s *polyphaseSession) Flush() ([][]float32, error) {
	out := make([][]float32, len(s.engines))
	longest := 0
	for c, e := range s.engines {
		res, err := e.Flush()
		if err != nil {
			return nil, fmt.Errorf("flush channel %d: %w", c, err)
		}
		out[c] = res
		longest = max(longest, len(res))
	}

	for c := range out {
		if len(out[c]) < longest {
			padded := make([]float32, longest)
			copy(padded, out[c])
			out[c] = padded
		}
	}

	return out, nil
}

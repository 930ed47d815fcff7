// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"

	"github.com/tphakala/simd/f32"
)

type resamplerState int

const (
	stateReady resamplerState = iota
	stateFlushed
)

// Resampler drives an engine Session with interleaved chunks. It owns a
// planar input scratch sized for one chunk and an interleaved output scratch
// sized from the engine's output estimate; both grow in place when a call
// needs more.
//
// Process may be called any number of times, then Flush exactly once. Every
// call after Flush fails with ErrResamplerFlushed.
type Resampler struct {
	session  Session
	channels int
	inRate   int
	outRate  int

	planar [][]float32
	out    []float32
	state  resamplerState
}

// NewResampler opens a session on engine for the given rates and channel
// count. chunkSize is the nominal number of frames per Process call.
func NewResampler(engine Engine, inRate, outRate, channels, chunkSize int) (*Resampler, error) {
	if engine == nil {
		engine = PolyphaseEngine{}
	}

	cfg := SessionConfig{
		InputRate:  inRate,
		OutputRate: outRate,
		Channels:   channels,
		ChunkSize:  chunkSize,
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	session, err := engine.NewSession(cfg)
	if err != nil {
		if errors.Is(err, ErrResamplerConfig) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrResamplerConfig, err)
	}

	r := &Resampler{
		session:  session,
		channels: channels,
		inRate:   inRate,
		outRate:  outRate,
		planar:   make([][]float32, channels),
		out:      make([]float32, 0, session.OutputFramesNext()*channels),
	}
	for c := range r.planar {
		r.planar[c] = make([]float32, 0, chunkSize)
	}

	return r, nil
}

func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) InputRate() int  { return r.inRate }
func (r *Resampler) OutputRate() int { return r.outRate }

// Process resamples one interleaved chunk. An empty chunk returns an empty
// result without touching the engine. The returned slice is reused by the
// next call.
func (r *Resampler) Process(interleaved []float32) ([]float32, error) {
	if r.state == stateFlushed {
		return nil, ErrResamplerFlushed
	}
	if len(interleaved) == 0 {
		return []float32{}, nil
	}
	if len(interleaved)%r.channels != 0 {
		return nil, fmt.Errorf("%w: %d samples for %d channels", ErrInvalidChunkSize, len(interleaved), r.channels)
	}

	r.deinterleave(interleaved)

	planar, err := r.session.Process(r.planar)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResamplerProcess, err)
	}

	return r.interleave(planar)
}

// Flush drains the engine. It may return an empty slice.
func (r *Resampler) Flush() ([]float32, error) {
	if r.state == stateFlushed {
		return nil, ErrResamplerFlushed
	}
	r.state = stateFlushed

	planar, err := r.session.Flush()
	if err != nil {
		return nil, fmt.Errorf("%w: flush: %w", ErrResamplerProcess, err)
	}

	return r.interleave(planar)
}

func (r *Resampler) deinterleave(in []float32) {
	frames := len(in) / r.channels
	for c := range r.planar {
		if cap(r.planar[c]) < frames {
			r.planar[c] = make([]float32, frames)
		}
		r.planar[c] = r.planar[c][:frames]
	}

	if r.channels == 1 {
		copy(r.planar[0], in)
		return
	}
	for f := range frames {
		base := f * r.channels
		for c := range r.channels {
			r.planar[c][f] = in[base+c]
		}
	}
}

func (r *Resampler) interleave(planar [][]float32) ([]float32, error) {
	if len(planar) != r.channels {
		return nil, fmt.Errorf("%w: %w", ErrResamplerProcess, errChannelMismatch(len(planar), r.channels))
	}

	frames := len(planar[0])
	for c := 1; c < r.channels; c++ {
		if len(planar[c]) != frames {
			return nil, fmt.Errorf("%w: %w", ErrResamplerProcess, errRowMismatch(c, len(planar[c]), frames))
		}
	}

	n := frames * r.channels
	if cap(r.out) < n {
		r.out = make([]float32, n)
	}
	r.out = r.out[:n]

	switch r.channels {
	case 1:
		copy(r.out, planar[0])
	case 2:
		f32.Interleave2(r.out, planar[0], planar[1])
	default:
		for c, row := range planar {
			for f, v := range row {
				r.out[f*r.channels+c] = v
			}
		}
	}

	return r.out, nil
}

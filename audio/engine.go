// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"strings"
)

// SessionConfig fixes the parameters of one resampling session.
type SessionConfig struct {
	InputRate  int
	OutputRate int
	Channels   int
	// ChunkSize is the largest number of frames passed to one Process call.
	ChunkSize int
}

func (c SessionConfig) validate() error {
	if c.InputRate <= 0 || c.OutputRate <= 0 {
		return fmt.Errorf("%w: rates %d -> %d must be positive", ErrResamplerConfig, c.InputRate, c.OutputRate)
	}
	if c.Channels <= 0 {
		return fmt.Errorf("%w: channel count %d", ErrResamplerConfig, c.Channels)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk size %d", ErrResamplerConfig, c.ChunkSize)
	}
	return nil
}

// Engine builds stateful resampling sessions. Implementations are
// interchangeable behind Resampler.
type Engine interface {
	NewSession(cfg SessionConfig) (Session, error)
}

// Session resamples planar audio at a fixed ratio. Calls must follow stream
// order; Flush is the final call.
type Session interface {
	// Process consumes one planar chunk (one row per channel, equal lengths)
	// and returns whatever output the engine produced for it.
	Process(planar [][]float32) ([][]float32, error)
	// Flush drains samples still held by the engine.
	Flush() ([][]float32, error)
	// OutputFramesNext estimates the output frames for a full input chunk.
	OutputFramesNext() int
}

// EngineByName maps a configuration name to an Engine: "polyphase" (default
// when empty) or "cubic".
func EngineByName(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "polyphase", "sinc":
		return PolyphaseEngine{}, nil
	case "cubic":
		return CubicEngine{}, nil
	}
	return nil, fmt.Errorf("%w: unknown engine %q", ErrResamplerConfig, name)
}

// outputFrames is the frame count produced by n input frames at the given
// rates, rounded up.
func outputFrames(n, inRate, outRate int) int {
	return int((int64(n)*int64(outRate) + int64(inRate) - 1) / int64(inRate))
}

func errChannelMismatch(got, want int) error {
	return fmt.Errorf("got %d channels, session has %d", got, want)
}

func errRowMismatch(c, got, want int) error {
	return fmt.Errorf("channel %d has %d frames, channel 0 has %d", c, got, want)
}

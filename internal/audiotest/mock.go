// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/audxcode/audio"
)

// MockSource is a test helper that generates audio data for testing.
type MockSource struct {
	spec         audio.StreamSpec
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     func(sample int, channel int) float32
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
// waveform is a function that generates sample values given sample index and channel.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		spec:         audio.StreamSpec{SampleRate: sampleRate, Channels: channels, BitDepth: 32},
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) Spec() audio.StreamSpec { return m.spec }
func (m *MockSource) Close() error           { return nil }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	channels := m.spec.Channels
	framesToWrite := min(len(dst)/channels, m.totalSamples-m.generated)

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range channels {
			dst[frame*channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}

// StaticDecoder ignores its input and hands out Source. Err, when set, is
// returned instead.
type StaticDecoder struct {
	Source audio.Source
	Err    error
}

func (d StaticDecoder) Decode(io.ReadSeeker) (audio.Source, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	return d.Source, nil
}

// Sine16 returns frames*channels interleaved int16 samples of a sine at freq
// Hz and the given amplitude in [0, 1]. Every channel carries the same tone
// with a per-channel phase offset so that channel mixing is observable.
func Sine16(rate, channels, frames int, freq, amplitude float64) []int16 {
	out := make([]int16, frames*channels)
	for i := range frames {
		for c := range channels {
			v := amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)+float64(c)*math.Pi/4)
			out[i*channels+c] = int16(math.Round(v * math.MaxInt16))
		}
	}
	return out
}

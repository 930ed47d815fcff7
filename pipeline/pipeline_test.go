// SPDX-License-Identifier: EPL-2.0

package pipeline_test

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/internal/audiotest"
	"github.com/ik5/audxcode/parallel"
	"github.com/ik5/audxcode/pipeline"
)

func spec(rate, channels int) audio.StreamSpec {
	return audio.StreamSpec{SampleRate: rate, Channels: channels, BitDepth: 16}
}

// countingEngine wraps an engine and records calls on its sessions.
type countingEngine struct {
	audio.Engine
	processed int
	flushed   int
}

func (e *countingEngine) NewSession(cfg audio.SessionConfig) (audio.Session, error) {
	s, err := e.Engine.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return &countingSession{Session: s, e: e}, nil
}

type countingSession struct {
	audio.Session
	e *countingEngine
}

func (s *countingSession) Process(planar [][]float32) ([][]float32, error) {
	s.e.processed++
	return s.Session.Process(planar)
}

func (s *countingSession) Flush() ([][]float32, error) {
	s.e.flushed++
	return s.Session.Flush()
}

func TestRun_RoundTripIdentity(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine16(16000, 1, 5000, 440, 0.8)
	in = append(in, 32767, -32767, 0, 1, -1)

	w := &pipeline.BufferWriter{}
	stats, err := pipeline.NewPCM16(pipeline.Config{}).Run(pipeline.NewSliceReader(spec(16000, 1), in), w, spec(16000, 1))
	require.NoError(t, err)

	assert.Equal(t, in, w.Samples)
	assert.True(t, w.Finalized())
	assert.Equal(t, spec(16000, 1), w.Spec)
	assert.Equal(t, int64(len(in)), stats.InputFrames)
	assert.Equal(t, int64(len(in)), stats.OutputFrames)
	assert.Equal(t, 5, stats.Chunks)
	assert.False(t, stats.Resampled)
	assert.False(t, stats.Mixed)
}

func TestRun_ChunkingInvariance(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine16(22050, 2, 3000, 1000, 0.5)

	tests := []struct {
		name   string
		out    audio.StreamSpec
		engine audio.Engine
	}{
		{"mix only", spec(22050, 1), nil},
		{"cubic resample and mix", spec(16000, 3), audio.CubicEngine{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var reference []int16
			for _, chunk := range []int{3000, 1024, 333, 17} {
				w := &pipeline.BufferWriter{}
				p := pipeline.NewPCM16(pipeline.Config{ChunkSize: chunk, Engine: tt.engine})
				_, err := p.Run(pipeline.NewSliceReader(spec(22050, 2), in), w, tt.out)
				require.NoError(t, err)

				if reference == nil {
					reference = w.Samples
					continue
				}
				assert.Equal(t, reference, w.Samples, "chunk=%d", chunk)
			}
		})
	}
}

func TestRun_PolyphaseChunkingTolerance(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine16(48000, 1, 9600, 440, 0.5)

	lengths := make([]int, 0, 2)
	for _, chunk := range []int{pipeline.DefaultChunkSize, 4800} {
		w := &pipeline.BufferWriter{}
		_, err := pipeline.NewPCM16(pipeline.Config{ChunkSize: chunk}).Run(pipeline.NewSliceReader(spec(48000, 1), in), w, spec(16000, 1))
		require.NoError(t, err)
		lengths = append(lengths, len(w.Samples))
	}

	for _, n := range lengths {
		assert.InDelta(t, 3200, n, 320)
	}
}

func TestRun_FlushIsCalledOnceAndWritten(t *testing.T) {
	t.Parallel()

	in := audiotest.Sine16(8000, 2, 1000, 200, 0.5)
	engine := &countingEngine{Engine: audio.CubicEngine{}}

	w := &pipeline.BufferWriter{}
	stats, err := pipeline.NewPCM16(pipeline.Config{ChunkSize: 256, Engine: engine}).Run(pipeline.NewSliceReader(spec(8000, 2), in), w, spec(11025, 1))
	require.NoError(t, err)

	assert.Equal(t, 1, engine.flushed)
	assert.Equal(t, 4, engine.processed)
	assert.True(t, stats.Resampled)
	assert.True(t, stats.Mixed)

	// ceil(1000 * 11025 / 8000); the mono output proves the tail was mixed too
	assert.Len(t, w.Samples, 1379)
	assert.Equal(t, int64(1379), stats.OutputFrames)
}

func TestRun_PCM32(t *testing.T) {
	t.Parallel()

	in16 := audiotest.Sine16(44100, 2, 2048, 440, 0.9)
	in := make([]int32, len(in16))
	for i, s := range in16 {
		in[i] = int32(math.Round(float64(s) * math.MaxInt32 / math.MaxInt16))
	}

	w := &pipeline.BufferWriter{}
	src := pipeline.NewSliceReader(audio.StreamSpec{SampleRate: 44100, Channels: 2, BitDepth: 16}, in)
	_, err := pipeline.NewPCM32(pipeline.Config{Pool: parallel.New(4)}).Run(src, w, spec(44100, 2))
	require.NoError(t, err)

	assert.Equal(t, in16, w.Samples)
}

func TestRun_EmptySource(t *testing.T) {
	t.Parallel()

	engine := &countingEngine{Engine: audio.CubicEngine{}}
	w := &pipeline.BufferWriter{}
	stats, err := pipeline.NewPCM16(pipeline.Config{Engine: engine}).Run(pipeline.NewSliceReader[int16](spec(8000, 1), nil), w, spec(16000, 2))
	require.NoError(t, err)

	assert.Empty(t, w.Samples)
	assert.True(t, w.Finalized())
	assert.Zero(t, stats.Chunks)
	assert.Zero(t, engine.processed)
	assert.Equal(t, 1, engine.flushed)
}

type failingReader struct {
	spec audio.StreamSpec
	n    int
	err  error
}

func (r *failingReader) Spec() audio.StreamSpec { return r.spec }

func (r *failingReader) ReadChunk(dst []int16) (int, error) {
	return min(r.n, len(dst)), r.err
}

type failingWriter struct {
	pipeline.BufferWriter
	failBegin, failWrite, failFinalize bool
}

var errDisk = errors.New("disk full")

func (w *failingWriter) Begin(s audio.StreamSpec) error {
	if w.failBegin {
		return errDisk
	}
	return w.BufferWriter.Begin(s)
}

func (w *failingWriter) WriteSamples(s []int16) error {
	if w.failWrite {
		return errDisk
	}
	return w.BufferWriter.WriteSamples(s)
}

func (w *failingWriter) Finalize() error {
	if w.failFinalize {
		return errDisk
	}
	return w.BufferWriter.Finalize()
}

func TestRun_Failures(t *testing.T) {
	t.Parallel()

	good := func() pipeline.Reader[int16] {
		return pipeline.NewSliceReader(spec(8000, 2), []int16{1, 2, 3, 4})
	}

	tests := []struct {
		name   string
		src    pipeline.Reader[int16]
		dst    pipeline.Writer
		out    audio.StreamSpec
		engine audio.Engine
		want   []error
	}{
		{
			name: "read error",
			src:  &failingReader{spec: spec(8000, 1), err: errors.New("bad block")},
			dst:  &pipeline.BufferWriter{},
			out:  spec(8000, 1),
			want: []error{audio.ErrDecode},
		},
		{
			name: "partial frame",
			src:  pipeline.NewSliceReader(spec(8000, 2), []int16{1, 2, 3}),
			dst:  &pipeline.BufferWriter{},
			out:  spec(8000, 2),
			want: []error{audio.ErrDecode, audio.ErrInvalidChunkSize},
		},
		{
			name: "invalid source spec",
			src:  pipeline.NewSliceReader[int16](spec(8000, 0), nil),
			dst:  &pipeline.BufferWriter{},
			out:  spec(8000, 2),
			want: []error{audio.ErrDecode, audio.ErrInvalidSpec},
		},
		{
			name: "invalid output spec",
			src:  good(),
			dst:  &pipeline.BufferWriter{},
			out:  spec(0, 2),
			want: []error{audio.ErrWrite, audio.ErrInvalidSpec},
		},
		{
			name:   "resampler config",
			src:    good(),
			dst:    &pipeline.BufferWriter{},
			out:    spec(8000*1000, 2),
			engine: audio.PolyphaseEngine{},
			want:   []error{audio.ErrResamplerConfig},
		},
		{
			name: "begin",
			src:  good(),
			dst:  &failingWriter{failBegin: true},
			out:  spec(8000, 2),
			want: []error{audio.ErrWrite, errDisk},
		},
		{
			name: "write",
			src:  good(),
			dst:  &failingWriter{failWrite: true},
			out:  spec(8000, 2),
			want: []error{audio.ErrWrite, errDisk},
		},
		{
			name: "finalize",
			src:  good(),
			dst:  &failingWriter{failFinalize: true},
			out:  spec(8000, 2),
			want: []error{audio.ErrWrite, errDisk},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := pipeline.NewPCM16(pipeline.Config{Engine: tt.engine}).Run(tt.src, tt.dst, tt.out)
			require.Error(t, err)
			for _, target := range tt.want {
				assert.ErrorIs(t, err, target)
			}
		})
	}
}

func TestSliceReader(t *testing.T) {
	t.Parallel()

	r := pipeline.NewSliceReader(spec(8000, 1), []int32{1, 2, 3})
	buf := make([]int32, 2)

	n, err := r.ReadChunk(buf)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2}, buf[:n])

	n, err = r.ReadChunk(buf)
	require.NoError(t, err)
	assert.Equal(t, []int32{3}, buf[:n])

	n, err = r.ReadChunk(buf)
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestBufferWriter_CallOrder(t *testing.T) {
	t.Parallel()

	w := &pipeline.BufferWriter{}
	assert.ErrorIs(t, w.WriteSamples([]int16{1}), pipeline.ErrWriterState)
	assert.ErrorIs(t, w.Finalize(), pipeline.ErrWriterState)

	require.NoError(t, w.Begin(spec(8000, 1)))
	assert.ErrorIs(t, w.Begin(spec(8000, 1)), audio.ErrWrite)
	require.NoError(t, w.WriteSamples([]int16{1}))
	require.NoError(t, w.Finalize())
	assert.ErrorIs(t, w.WriteSamples([]int16{1}), pipeline.ErrWriterState)
}

func BenchmarkPipeline_Resample(b *testing.B) {
	in := audiotest.Sine16(44100, 2, 44100, 440, 0.5)
	p := pipeline.NewPCM16(pipeline.Config{Pool: parallel.New(0)})

	b.ReportAllocs()
	for b.Loop() {
		w := &pipeline.BufferWriter{}
		if _, err := p.Run(pipeline.NewSliceReader(spec(44100, 2), in), w, spec(16000, 1)); err != nil {
			b.Fatal(err)
		}
	}
}

package audxcode

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/parallel"
	"github.com/ik5/audxcode/pipeline"
	"github.com/ik5/audxcode/utils"
)

// Options tune the in-memory conversions. The zero value selects the
// polyphase engine, inline conversion and pipeline.DefaultChunkSize.
type Options struct {
	Engine    audio.Engine
	Pool      *parallel.Pool
	ChunkSize int
}

func (o Options) config() pipeline.Config {
	return pipeline.Config{ChunkSize: o.ChunkSize, Pool: o.Pool, Engine: o.Engine}
}

// outputSpec fills the unset fields of out from in.
func outputSpec(in, out audio.StreamSpec) audio.StreamSpec {
	if out.SampleRate == 0 {
		out.SampleRate = in.SampleRate
	}
	if out.Channels == 0 {
		out.Channels = in.Channels
	}
	out.BitDepth = 16
	return out
}

// ConvertPCM16 runs interleaved 16-bit samples described by in through the
// native pipeline. Zero fields of out keep the input's value.
//
// Converting a stream to its own rate and channel count returns the input
// samples unchanged.
func ConvertPCM16(samples []int16, in, out audio.StreamSpec, opts Options) ([]int16, error) {
	w := &pipeline.BufferWriter{}
	src := pipeline.NewSliceReader(in, samples)
	if _, err := pipeline.NewPCM16(opts.config()).Run(src, w, outputSpec(in, out)); err != nil {
		return nil, err
	}
	if w.Samples == nil {
		return []int16{}, nil
	}
	return w.Samples, nil
}

// ConvertSource decodes src to the end and converts it. Zero fields of out
// keep the source's value.
func ConvertSource(src audio.Source, out audio.StreamSpec, opts Options) ([]int16, error) {
	w := &pipeline.BufferWriter{}
	r := &sourceReader{src: src, pool: opts.Pool}
	if _, err := pipeline.NewPCM32(opts.config()).Run(r, w, outputSpec(src.Spec(), out)); err != nil {
		return nil, err
	}
	if w.Samples == nil {
		return []int16{}, nil
	}
	return w.Samples, nil
}

// ResampleToMono16 converts src to mono 16-bit PCM at targetRate, reading
// bufferSize frames at a time. It returns the samples and their rate.
func ResampleToMono16(src audio.Source, targetRate int, bufferSize int) ([]int16, int, error) {
	pcm, err := ConvertSource(src, audio.StreamSpec{SampleRate: targetRate, Channels: 1}, Options{ChunkSize: bufferSize})
	if err != nil {
		return nil, targetRate, err
	}
	return pcm, targetRate, nil
}

// maxEmptyReads bounds consecutive empty reads inside a frame.
const maxEmptyReads = 100

// sourceReader widens a float Source into the full-range int32 samples the
// 32-bit pipeline consumes.
type sourceReader struct {
	src  audio.Source
	pool *parallel.Pool
	buf  []float32
	eof  bool
}

func (r *sourceReader) Spec() audio.StreamSpec { return r.src.Spec() }

func (r *sourceReader) ReadChunk(dst []int32) (int, error) {
	if r.eof {
		return 0, io.EOF
	}
	if cap(r.buf) < len(dst) {
		r.buf = make([]float32, len(dst))
	}
	r.buf = r.buf[:len(dst)]

	// Sources may return short reads, even mid-frame. An empty read ends
	// the chunk only on a frame boundary.
	channels := r.src.Spec().Channels
	total, empty := 0, 0
	for total < len(dst) {
		n, err := r.src.ReadSamples(r.buf[total:])
		total += n
		if errors.Is(err, io.EOF) {
			r.eof = true
			break
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %w", audio.ErrDecode, err)
		}
		if n > 0 {
			empty = 0
			continue
		}
		if total%channels == 0 {
			break
		}
		empty++
		if empty >= maxEmptyReads {
			return 0, fmt.Errorf("%w: %w after %d samples of a frame", audio.ErrDecode, io.ErrNoProgress, total%channels)
		}
	}

	copy(dst, utils.Float32sToInt32s(r.pool, r.buf[:total]))
	if total == 0 && r.eof {
		return 0, io.EOF
	}
	return total, nil
}

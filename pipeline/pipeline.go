// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/parallel"
	"github.com/ik5/audxcode/utils"
)

// DefaultChunkSize is the number of frames pulled from a source per step.
const DefaultChunkSize = 1024

// Sample is a native integer sample width a source may produce.
type Sample interface {
	~int16 | ~int32
}

// Reader is a decoded source of interleaved integer samples.
type Reader[T Sample] interface {
	Spec() audio.StreamSpec
	// ReadChunk fills dst with up to len(dst) samples and returns io.EOF once
	// the source is exhausted.
	ReadChunk(dst []T) (int, error)
}

// Writer receives the converted stream: Begin once, WriteSamples in order,
// Finalize once.
type Writer interface {
	Begin(spec audio.StreamSpec) error
	WriteSamples(samples []int16) error
	Finalize() error
}

type Config struct {
	// ChunkSize in frames, DefaultChunkSize when zero.
	ChunkSize int
	// Pool for the per-chunk conversion and mixing. nil runs inline.
	Pool *parallel.Pool
	// Engine used when rates differ, audio.PolyphaseEngine when nil.
	Engine audio.Engine
	Logger *slog.Logger
}

// Stats summarizes a completed run.
type Stats struct {
	Chunks       int
	InputFrames  int64
	OutputFrames int64
	Resampled    bool
	Mixed        bool
}

type Pipeline[T Sample] struct {
	chunkSize int
	pool      *parallel.Pool
	engine    audio.Engine
	log       *slog.Logger
	toFloat   func(*parallel.Pool, []T) []float32
}

// NewPCM16 returns a pipeline for 16-bit sources.
func NewPCM16(cfg Config) *Pipeline[int16] {
	return newPipeline(cfg, utils.Int16sToFloat32s)
}

// NewPCM32 returns a pipeline for 32-bit sources scaled to the full int32
// range.
func NewPCM32(cfg Config) *Pipeline[int32] {
	return newPipeline(cfg, utils.Int32sToFloat32s)
}

func newPipeline[T Sample](cfg Config, toFloat func(*parallel.Pool, []T) []float32) *Pipeline[T] {
	p := &Pipeline[T]{
		chunkSize: cfg.ChunkSize,
		pool:      cfg.Pool,
		engine:    cfg.Engine,
		log:       cfg.Logger,
		toFloat:   toFloat,
	}
	if p.chunkSize <= 0 {
		p.chunkSize = DefaultChunkSize
	}
	if p.log == nil {
		p.log = slog.New(slog.DiscardHandler)
	}
	return p
}

// run holds the per-call state of Run.
type run struct {
	dst   Writer
	pool  *parallel.Pool
	in    audio.StreamSpec
	out   audio.StreamSpec
	stats Stats
}

// Run converts src into dst with the output spec out. The writer is begun
// with out and finalized on success.
func (p *Pipeline[T]) Run(src Reader[T], dst Writer, out audio.StreamSpec) (Stats, error) {
	in := src.Spec()
	if err := in.Validate(); err != nil {
		return Stats{}, fmt.Errorf("%w: source: %w", audio.ErrDecode, err)
	}
	if err := out.Validate(); err != nil {
		return Stats{}, fmt.Errorf("%w: output: %w", audio.ErrWrite, err)
	}

	r := &run{
		dst:  dst,
		pool: p.pool,
		in:   in,
		out:  out,
		stats: Stats{
			Resampled: in.SampleRate != out.SampleRate,
			Mixed:     in.Channels != out.Channels,
		},
	}

	p.log.Info("pipeline start",
		slog.String("input", in.String()),
		slog.String("output", out.String()),
		slog.Int("chunk_size", p.chunkSize),
		slog.Int("workers", p.pool.Workers()),
	)

	var rs *audio.Resampler
	if r.stats.Resampled {
		var err error
		rs, err = audio.NewResampler(p.engine, in.SampleRate, out.SampleRate, in.Channels, p.chunkSize)
		if err != nil {
			return r.stats, err
		}
		p.log.Debug("resampler ready",
			slog.Int("input_rate", in.SampleRate),
			slog.Int("output_rate", out.SampleRate),
			slog.Int("channels", in.Channels),
		)
	}

	if err := dst.Begin(out); err != nil {
		return r.stats, writeError(err)
	}

	buf := make([]T, p.chunkSize*in.Channels)
	for {
		n, err := src.ReadChunk(buf)
		eof := errors.Is(err, io.EOF)
		if err != nil && !eof {
			return r.stats, decodeError(err)
		}
		if n%in.Channels != 0 {
			return r.stats, fmt.Errorf("%w: %w: %d samples for %d channels", audio.ErrDecode, audio.ErrInvalidChunkSize, n, in.Channels)
		}

		if n > 0 {
			r.stats.Chunks++
			r.stats.InputFrames += int64(n / in.Channels)

			samples := p.toFloat(p.pool, buf[:n])
			if rs != nil {
				if samples, err = rs.Process(samples); err != nil {
					return r.stats, err
				}
			}
			if err := r.write(samples); err != nil {
				return r.stats, err
			}
		}

		if eof || n == 0 {
			break
		}
	}

	if rs != nil {
		tail, err := rs.Flush()
		if err != nil {
			return r.stats, err
		}
		p.log.Debug("resampler flushed", slog.Int("frames", len(tail)/in.Channels))
		if err := r.write(tail); err != nil {
			return r.stats, err
		}
	}

	if err := dst.Finalize(); err != nil {
		return r.stats, writeError(err)
	}

	p.log.Info("pipeline done",
		slog.Int("chunks", r.stats.Chunks),
		slog.Int64("input_frames", r.stats.InputFrames),
		slog.Int64("output_frames", r.stats.OutputFrames),
	)

	return r.stats, nil
}

// write runs the mix and narrowing tail on interleaved samples at the input
// channel count.
func (r *run) write(samples []float32) error {
	if len(samples) == 0 {
		return nil
	}
	if r.stats.Mixed {
		samples = audio.MixChannels(r.pool, samples, r.in.Channels, r.out.Channels)
	}

	pcm := utils.Float32sToInt16s(r.pool, samples)
	if err := r.dst.WriteSamples(pcm); err != nil {
		return writeError(err)
	}
	r.stats.OutputFrames += int64(len(pcm) / r.out.Channels)

	return nil
}

func writeError(err error) error {
	if errors.Is(err, audio.ErrWrite) || errors.Is(err, audio.ErrIO) {
		return err
	}
	return fmt.Errorf("%w: %w", audio.ErrWrite, err)
}

func decodeError(err error) error {
	if errors.Is(err, audio.ErrDecode) || errors.Is(err, audio.ErrIO) {
		return err
	}
	return fmt.Errorf("%w: %w", audio.ErrDecode, err)
}

// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audxcode/audio"
)

// ErrWriterState is returned by BufferWriter calls made out of order.
var ErrWriterState = errors.New("buffer writer used out of order")

// SliceReader serves interleaved samples from memory.
type SliceReader[T Sample] struct {
	spec audio.StreamSpec
	data []T
	pos  int
}

func NewSliceReader[T Sample](spec audio.StreamSpec, data []T) *SliceReader[T] {
	return &SliceReader[T]{spec: spec, data: data}
}

func (r *SliceReader[T]) Spec() audio.StreamSpec { return r.spec }

func (r *SliceReader[T]) ReadChunk(dst []T) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(dst, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// BufferWriter collects the converted stream in memory.
type BufferWriter struct {
	Spec      audio.StreamSpec
	Samples   []int16
	begun     bool
	finalized bool
}

func (w *BufferWriter) Begin(spec audio.StreamSpec) error {
	if w.begun {
		return fmt.Errorf("%w: %w: Begin called twice", audio.ErrWrite, ErrWriterState)
	}
	w.Spec, w.begun = spec, true
	return nil
}

func (w *BufferWriter) WriteSamples(samples []int16) error {
	if !w.begun || w.finalized {
		return fmt.Errorf("%w: %w: WriteSamples outside Begin/Finalize", audio.ErrWrite, ErrWriterState)
	}
	w.Samples = append(w.Samples, samples...)
	return nil
}

func (w *BufferWriter) Finalize() error {
	if !w.begun || w.finalized {
		return fmt.Errorf("%w: %w: Finalize without Begin or twice", audio.ErrWrite, ErrWriterState)
	}
	w.finalized = true
	return nil
}

// Finalized reports whether Finalize succeeded.
func (w *BufferWriter) Finalized() bool { return w.finalized }

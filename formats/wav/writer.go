// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audxcode/audio"
)

// Writer encodes 16-bit integer PCM into a WAV container. Calls must follow
// Begin once, WriteSamples any number of times, Finalize once.
type Writer struct {
	ws   io.WriteSeeker
	c    io.Closer
	enc  *wav.Encoder
	buf  *goaudio.IntBuffer
	done bool
}

// Create truncates or creates path. Finalize closes the file.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	w := NewWriter(f)
	w.c = f
	return w, nil
}

// NewWriter writes to ws. The header sizes are patched by seeking back, so ws
// must support io.SeekStart.
func NewWriter(ws io.WriteSeeker) *Writer {
	return &Writer{ws: ws}
}

// Begin writes the WAV header for spec. The bit depth is always 16.
func (w *Writer) Begin(spec audio.StreamSpec) error {
	if w.enc != nil || w.done {
		return fmt.Errorf("%w: %w: Begin called twice", audio.ErrWrite, ErrWriterState)
	}
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrWrite, err)
	}

	w.enc = wav.NewEncoder(w.ws, spec.SampleRate, 16, spec.Channels, formatPCM)
	w.buf = &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: spec.Channels, SampleRate: spec.SampleRate},
		SourceBitDepth: 16,
	}

	// The encoder emits the RIFF and data chunk headers on its first write.
	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("%w: header: %w", audio.ErrWrite, err)
	}

	return nil
}

// WriteSamples appends interleaved samples.
func (w *Writer) WriteSamples(samples []int16) error {
	if w.enc == nil || w.done {
		return fmt.Errorf("%w: %w: write outside Begin/Finalize", audio.ErrWrite, ErrWriterState)
	}
	if len(samples) == 0 {
		return nil
	}

	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]
	for i, s := range samples {
		w.buf.Data[i] = int(s)
	}

	if err := w.enc.Write(w.buf); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrWrite, err)
	}

	return nil
}

// Finalize patches the RIFF and data sizes and closes a file opened by Create.
func (w *Writer) Finalize() error {
	if w.enc == nil || w.done {
		return fmt.Errorf("%w: %w: Finalize without Begin", audio.ErrWrite, ErrWriterState)
	}
	w.done = true

	if err := w.enc.Close(); err != nil {
		if w.c != nil {
			_ = w.c.Close()
		}
		return fmt.Errorf("%w: %w", audio.ErrWrite, err)
	}

	if w.c != nil {
		if err := w.c.Close(); err != nil {
			return fmt.Errorf("%w: %w", audio.ErrIO, err)
		}
	}

	return nil
}

// Close releases the file without finalizing. It is safe after Finalize.
func (w *Writer) Close() error {
	if w.done || w.c == nil {
		return nil
	}
	w.done = true
	return w.c.Close()
}

// WriteWAV16 writes a complete 16-bit PCM WAV of interleaved samples.
func WriteWAV16(ws io.WriteSeeker, spec audio.StreamSpec, samples []int16) error {
	w := NewWriter(ws)
	if err := w.Begin(spec); err != nil {
		return err
	}
	if err := w.WriteSamples(samples); err != nil {
		return err
	}
	return w.Finalize()
}

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audxcode/audio"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec  oggReader
	spec audio.StreamSpec
	buf  []float32
	eof  bool
}

func (s *source) Spec() audio.StreamSpec { return s.spec }
func (s *source) Close() error           { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	// oggvorbis counts interleaved values, so round down to whole frames.
	want := len(dst) - len(dst)%s.spec.Channels
	if want == 0 {
		return 0, fmt.Errorf("%w: buffer shorter than one frame", audio.ErrInvalidChunkSize)
	}
	if cap(s.buf) < want {
		s.buf = make([]float32, want)
	}
	s.buf = s.buf[:want]

	n, err := s.dec.Read(s.buf)
	copy(dst, s.buf[:n])
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return n, fmt.Errorf("%w: %w", audio.ErrDecode, err)
		}
		s.eof = true
		if n == 0 {
			return 0, io.EOF
		}
	}

	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: vorbis: %w", audio.ErrDecode, err)
	}

	return newSource(dec)
}

func newSource(dec oggReader) (*source, error) {
	spec := audio.StreamSpec{
		SampleRate: dec.SampleRate(),
		Channels:   dec.Channels(),
	}
	if spec.SampleRate <= 0 || spec.Channels <= 0 {
		return nil, fmt.Errorf("%w: vorbis: invalid stream header", audio.ErrDecode)
	}

	return &source{dec: dec, spec: spec, buf: make([]float32, 4096)}, nil
}

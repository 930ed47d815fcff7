package aiff

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audxcode/audio"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// source wraps go-audio aiff.Decoder to implement audio.Source
type source struct {
	dec    aiffReader
	spec   audio.StreamSpec
	intBuf *goaudio.IntBuffer
	scale  float32
}

func (s *source) Spec() audio.StreamSpec { return s.spec }
func (s *source) Close() error           { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.intBuf.Data) < len(dst) {
		s.intBuf.Data = make([]int, len(dst))
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	// AIFF samples are signed at every depth.
	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]) / s.scale
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec := aiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, ErrNotAiffFile)
	}

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}

	return newSource(dec, int(dec.BitDepth))
}

func newSource(dec aiffReader, bitDepth int) (*source, error) {
	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %w", audio.ErrDecode, ErrUnsupportedAiffLayout)
	}

	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %w: %d bits per sample", audio.ErrUnsupportedFormat, ErrUnsupportedBitDepth, bitDepth)
	}

	return &source{
		dec: dec,
		spec: audio.StreamSpec{
			SampleRate: format.SampleRate,
			Channels:   format.NumChannels,
			BitDepth:   bitDepth,
		},
		intBuf: &goaudio.IntBuffer{Format: format, SourceBitDepth: bitDepth},
		scale:  float32(int64(1)<<(bitDepth-1) - 1),
	}, nil
}

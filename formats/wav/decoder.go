package wav

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audxcode/audio"
)

type wavSource struct {
	dec   *wav.Decoder
	spec  audio.StreamSpec
	buf   *goaudio.IntBuffer
	scale float32
	// 8-bit WAV is unsigned
	offset int
}

func (s *wavSource) Spec() audio.StreamSpec { return s.spec }
func (s *wavSource) Close() error           { return nil }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if cap(s.buf.Data) < len(dst) {
		s.buf.Data = make([]int, len(dst))
	}
	s.buf.Data = s.buf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.buf)
	for i := range n {
		dst[i] = float32(s.buf.Data[i]-s.offset) / s.scale
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return n, fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Decoder reads integer PCM WAV at 8, 16, 24 or 32 bits per sample.
type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	s := &wavSource{
		dec: dec,
		spec: audio.StreamSpec{
			SampleRate: int(dec.SampleRate),
			Channels:   int(dec.NumChans),
			BitDepth:   int(dec.BitDepth),
		},
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: int(dec.NumChans), SampleRate: int(dec.SampleRate)},
		},
	}

	switch dec.BitDepth {
	case 8:
		s.scale, s.offset = 127, 128
	case 16, 24, 32:
		s.scale = float32(int64(1)<<(dec.BitDepth-1) - 1)
	default:
		return nil, fmt.Errorf("%w: %w: %d bits per sample", audio.ErrUnsupportedFormat, ErrUnsupportedEncoding, dec.BitDepth)
	}

	return s, nil
}

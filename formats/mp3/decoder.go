// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/utils"
)

// go-mp3 always decodes to interleaved 16-bit little-endian stereo.
const (
	channels       = 2
	bytesPerSample = 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  mp3Reader
	spec audio.StreamSpec
	buf  []byte
	// odd trailing byte of the previous read
	carry []byte
	eof   bool
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

	need := len(dst)*bytesPerSample - len(s.carry)
	if cap(s.buf) < len(s.carry)+need {
		s.buf = make([]byte, len(s.carry)+need)
	}
	s.buf = s.buf[:len(s.carry)+need]
	copy(s.buf, s.carry)

	n, err := s.dec.Read(s.buf[len(s.carry):])
	n += len(s.carry)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("%w: %w", audio.ErrDecode, err)
		}
		s.eof = true
	}

	samples := n / bytesPerSample
	for i := range samples {
		dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}
	s.carry = append(s.carry[:0], s.buf[samples*bytesPerSample:n]...)

	if samples == 0 && s.eof {
		return 0, io.EOF
	}
	return samples, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %w", audio.ErrDecode, err)
	}

	return newSource(dec), nil
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec: dec,
		spec: audio.StreamSpec{
			SampleRate: dec.SampleRate(),
			Channels:   channels,
			BitDepth:   16,
		},
		buf: make([]byte, 8192),
	}
}

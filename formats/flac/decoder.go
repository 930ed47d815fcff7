// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"io"

	"github.com/ik5/audxcode/audio"
	"github.com/ik5/audxcode/utils"
)

type flacSource struct {
	r   *Reader
	buf []int32
}

func (s *flacSource) Spec() audio.StreamSpec { return s.r.Spec() }
func (s *flacSource) Close() error           { return s.r.Close() }

func (s *flacSource) ReadSamples(dst []float32) (int, error) {
	if cap(s.buf) < len(dst) {
		s.buf = make([]int32, len(dst))
	}
	s.buf = s.buf[:len(dst)]

	n, err := s.r.ReadChunk(s.buf)
	for i := range n {
		dst[i] = utils.Int32ToFloat32(s.buf[i])
	}
	return n, err
}

// Decoder is the registry entry for FLAC. Samples are normalized from the
// full-range values produced by Reader.
type Decoder struct{}

func (Decoder) Decode(r io.ReadSeeker) (audio.Source, error) {
	rd, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	return &flacSource{r: rd}, nil
}

// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/mewkiz/flac"

	"github.com/ik5/audxcode/audio"
)

// Reader yields the interleaved samples of a FLAC stream as int32 values
// rescaled so that the source's positive full scale, 2^(bps-1)-1, lands on
// math.MaxInt32. The most negative source value saturates to math.MinInt32.
type Reader struct {
	stream *flac.Stream
	spec   audio.StreamSpec
	// positive full scale of the source bit depth
	fullScale int64
	// decoded frame samples not yet handed out, interleaved
	pending []int32
	frame   []int32
	c       io.Closer
	eof     bool
}

// Open opens path for reading. The file is closed by Reader.Close.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	r, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	r.c = f

	return r, nil
}

// NewReader parses the FLAC signature and STREAMINFO block of rd.
func NewReader(rd io.Reader) (*Reader, error) {
	stream, err := flac.New(rd)
	if err != nil {
		return nil, fmt.Errorf("%w: %w: %w", audio.ErrDecode, ErrNotFlacFile, err)
	}

	info := stream.Info
	if info == nil || info.SampleRate == 0 || info.NChannels == 0 {
		return nil, fmt.Errorf("%w: %w: invalid STREAMINFO", audio.ErrDecode, ErrNotFlacFile)
	}
	bps := int(info.BitsPerSample)
	if bps < 4 || bps > 32 {
		return nil, fmt.Errorf("%w: %w: %d bits per sample", audio.ErrUnsupportedFormat, ErrUnsupportedBitDepth, bps)
	}

	return &Reader{
		stream: stream,
		spec: audio.StreamSpec{
			SampleRate: int(info.SampleRate),
			Channels:   int(info.NChannels),
			BitDepth:   bps,
		},
		fullScale: int64(1)<<(bps-1) - 1,
	}, nil
}

func (r *Reader) Spec() audio.StreamSpec { return r.spec }

// Frames returns the total number of frames declared by STREAMINFO, or zero
// when the encoder left it unknown.
func (r *Reader) Frames() int64 { return int64(r.stream.Info.NSamples) }

// ReadChunk fills dst with up to len(dst) interleaved samples, decoding as
// many FLAC frames as needed. Samples of a partially consumed FLAC frame are
// kept for the next call. It returns io.EOF once the stream is exhausted.
func (r *Reader) ReadChunk(dst []int32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	total := 0
	for total < len(dst) {
		if len(r.pending) == 0 {
			if r.eof {
				break
			}
			if err := r.decodeFrame(); err != nil {
				return total, err
			}
			continue
		}

		n := copy(dst[total:], r.pending)
		r.pending = r.pending[n:]
		total += n
	}

	if total == 0 && r.eof {
		return 0, io.EOF
	}
	return total, nil
}

func (r *Reader) decodeFrame() error {
	f, err := r.stream.ParseNext()
	if err != nil {
		if errors.Is(err, io.EOF) {
			r.eof = true
			return nil
		}
		return fmt.Errorf("%w: %w", audio.ErrDecode, err)
	}

	channels := r.spec.Channels
	if len(f.Subframes) != channels {
		return fmt.Errorf("%w: %w: %d subframes, want %d", audio.ErrDecode, ErrChannelLayout, len(f.Subframes), channels)
	}

	frames := int(f.BlockSize)
	need := frames * channels
	if cap(r.frame) < need {
		r.frame = make([]int32, need)
	}
	buf := r.frame[:need]

	for c, sub := range f.Subframes {
		if len(sub.Samples) < frames {
			return fmt.Errorf("%w: subframe %d holds %d samples, want %d", audio.ErrDecode, c, len(sub.Samples), frames)
		}
		for i := range frames {
			buf[i*channels+c] = r.rescale(sub.Samples[i])
		}
	}
	r.pending = buf

	return nil
}

// rescale maps s from the source range onto the int32 range, rounding half
// away from zero. fullScale is odd, so no quotient lands exactly on a half.
func (r *Reader) rescale(s int32) int32 {
	v := int64(s) * math.MaxInt32
	if v >= 0 {
		v += r.fullScale / 2
	} else {
		v -= r.fullScale / 2
	}
	v /= r.fullScale
	return int32(min(max(v, math.MinInt32), math.MaxInt32))
}

// Close releases the underlying file when the Reader was created by Open.
func (r *Reader) Close() error {
	if r.c == nil {
		return nil
	}
	if err := r.c.Close(); err != nil {
		return fmt.Errorf("%w: %w", audio.ErrIO, err)
	}
	return nil
}

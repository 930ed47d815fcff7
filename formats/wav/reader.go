// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audxcode/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Reader yields the interleaved samples of a 16-bit PCM WAV stream.
type Reader struct {
	dec  *wav.Decoder
	spec audio.StreamSpec
	buf  *goaudio.IntBuffer
	c    io.Closer
	eof  bool
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

// NewReader parses the WAV headers of rs. Only integer PCM with 16 bits per
// sample is accepted.
func NewReader(rs io.ReadSeeker) (*Reader, error) {
	dec, err := readHeader(rs)
	if err != nil {
		return nil, err
	}
	if dec.BitDepth != 16 {
		return nil, fmt.Errorf("%w: %w: %d bits per sample", audio.ErrUnsupportedFormat, ErrOnlyPCM16bitSupported, dec.BitDepth)
	}

	return &Reader{
		dec: dec,
		spec: audio.StreamSpec{
			SampleRate: int(dec.SampleRate),
			Channels:   int(dec.NumChans),
			BitDepth:   int(dec.BitDepth),
		},
		buf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: int(dec.NumChans), SampleRate: int(dec.SampleRate)},
		},
	}, nil
}

func readHeader(rs io.ReadSeeker) (*wav.Decoder, error) {
	dec := wav.NewDecoder(rs)
	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", audio.ErrDecode, ErrNotWavFile, err)
	}
	if dec.NumChans == 0 || dec.SampleRate == 0 {
		return nil, fmt.Errorf("%w: %w: missing fmt chunk", audio.ErrDecode, ErrNotWavFile)
	}
	switch {
	case dec.WavAudioFormat == formatPCM:
	// go-audio does not expose the extensible sub-format GUID. Up to 24 bits
	// the only sub-format in use is integer PCM; float needs 32 or 64.
	case dec.WavAudioFormat == formatExtensible && dec.BitDepth <= 24:
	default:
		return nil, fmt.Errorf("%w: %w: format tag %#x, %d bits", audio.ErrUnsupportedFormat, ErrUnsupportedEncoding, dec.WavAudioFormat, dec.BitDepth)
	}
	return dec, nil
}

func (r *Reader) Spec() audio.StreamSpec { return r.spec }

// ReadChunk fills dst with up to len(dst) interleaved samples. It returns
// io.EOF once the data chunk is exhausted.
func (r *Reader) ReadChunk(dst []int16) (int, error) {
	if r.eof {
		return 0, io.EOF
	}
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(r.buf.Data) < len(dst) {
		r.buf.Data = make([]int, len(dst))
	}

	// PCMBuffer may return short reads; fill dst before handing it back.
	total := 0
	for total < len(dst) {
		r.buf.Data = r.buf.Data[:len(dst)-total]
		n, err := r.dec.PCMBuffer(r.buf)
		for i := range n {
			dst[total+i] = int16(r.buf.Data[i])
		}
		total += n

		if err != nil {
			if errors.Is(err, io.EOF) {
				r.eof = true
				break
			}
			return total, fmt.Errorf("%w: %w", audio.ErrDecode, err)
		}
		if n == 0 {
			r.eof = true
			break
		}
	}

	if r.eof && total == 0 {
		return 0, io.EOF
	}
	return total, nil
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

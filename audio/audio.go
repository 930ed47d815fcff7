// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"time"
)

// StreamSpec describes a PCM stream. It is a value type and is never mutated
// once a conversion has started.
type StreamSpec struct {
	// SampleRate in Hz.
	SampleRate int
	// Channels count (1=mono, 2=stereo).
	Channels int
	// BitDepth of the integer representation (16, 24 or 32).
	BitDepth int
}

// Validate reports whether s can describe a real stream.
func (s StreamSpec) Validate() error {
	if s.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidSpec, s.SampleRate)
	}
	if s.Channels <= 0 {
		return fmt.Errorf("%w: channel count %d", ErrInvalidSpec, s.Channels)
	}
	if s.BitDepth < 0 {
		return fmt.Errorf("%w: bit depth %d", ErrInvalidSpec, s.BitDepth)
	}
	return nil
}

// Duration of the given number of frames at this spec's rate.
func (s StreamSpec) Duration(frames int64) time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(s.SampleRate)
}

func (s StreamSpec) String() string {
	return fmt.Sprintf("%d Hz, %d ch, %d bit", s.SampleRate, s.Channels, s.BitDepth)
}

// Source is a decoded stream of normalized samples.
type Source interface {
	// Spec of the decoded stream.
	Spec() StreamSpec
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with
	// err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from a seekable input.
type Decoder interface {
	Decode(r io.ReadSeeker) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg"). Keys are
// case-insensitive.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeFormat(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalizeFormat(format)]
	return d, ok
}

// Formats lists the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func normalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}

// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV writes a PCM WAV file named name under t.TempDir and returns its
// path. Samples are interleaved and must fit in bits.
func WriteWAV(t testing.TB, name string, rate, channels, bits int, samples []int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, bits, channels, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           samples,
		SourceBitDepth: bits,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder %s: %v", path, err)
	}

	return path
}

// WriteWAV16 is WriteWAV for 16-bit samples.
func WriteWAV16(t testing.TB, name string, rate, channels int, samples []int16) string {
	t.Helper()

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	return WriteWAV(t, name, rate, channels, 16, data)
}

// ReadWAV16 decodes a 16-bit PCM WAV file with go-audio and returns its
// format and interleaved samples.
func ReadWAV16(t testing.TB, path string) (rate, channels int, samples []int16) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode %s: %v", path, err)
	}
	if dec.BitDepth != 16 {
		t.Fatalf("%s: %d bits per sample, want 16", path, dec.BitDepth)
	}

	samples = make([]int16, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = int16(s)
	}
	return int(dec.SampleRate), int(dec.NumChans), samples
}

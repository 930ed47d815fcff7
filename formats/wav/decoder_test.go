// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/ik5/audxcode/audio"
)

// Helper function to create a minimal WAV file. data is written verbatim
// after the data chunk header; junk, when set, is placed before fmt.
func createWAVFile(format uint16, sampleRate, channels, bitsPerSample int, data []byte, junk []byte) []byte {
	buf := new(bytes.Buffer)

	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := numChannels * (bits / 8)

	body := new(bytes.Buffer)
	body.WriteString("WAVE")

	if junk != nil {
		body.WriteString("JUNK")
		binary.Write(body, binary.LittleEndian, uint32(len(junk)))
		body.Write(junk)
		if len(junk)%2 == 1 {
			body.WriteByte(0)
		}
	}

	fmtSize := uint32(16)
	if format == formatExtensible {
		fmtSize = 40
	}

	body.WriteString("fmt ")
	binary.Write(body, binary.LittleEndian, fmtSize)
	binary.Write(body, binary.LittleEndian, format)
	binary.Write(body, binary.LittleEndian, numChannels)
	binary.Write(body, binary.LittleEndian, uint32(sampleRate))
	binary.Write(body, binary.LittleEndian, byteRate)
	binary.Write(body, binary.LittleEndian, blockAlign)
	binary.Write(body, binary.LittleEndian, bits)
	if format == formatExtensible {
		binary.Write(body, binary.LittleEndian, uint16(22)) // cbSize
		binary.Write(body, binary.LittleEndian, bits)       // valid bits
		binary.Write(body, binary.LittleEndian, uint32(0))  // channel mask
		body.Write(subformatPCM)
	}

	body.WriteString("data")
	binary.Write(body, binary.LittleEndian, uint32(len(data)))
	body.Write(data)

	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(body.Len()))
	buf.Write(body.Bytes())

	return buf.Bytes()
}

// KSDATAFORMAT_SUBTYPE_PCM
var subformatPCM = []byte{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71}

func pcm16(samples ...int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

func TestDecoder_ValidWAVFile(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(1, 8000, 1, 16, pcm16(0, 100, 200, -100, -200, 0), nil)

	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil", err)
	}

	want := audio.StreamSpec{SampleRate: 8000, Channels: 1, BitDepth: 16}
	if src.Spec() != want {
		t.Errorf("Spec() = %+v, want %+v", src.Spec(), want)
	}
}

func TestDecoder_NotWAVFile(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("this is definitely not a riff file at all....")))
	if err == nil {
		t.Fatal("Decode() error = nil, want error")
	}
	if !errorIs(err, ErrNotWavFile) || !errorIs(err, audio.ErrDecode) {
		t.Errorf("Decode() error = %v, want ErrNotWavFile and audio.ErrDecode", err)
	}
}

func TestDecoder_NonPCMFormat(t *testing.T) {
	t.Parallel()

	// IEEE float
	wavData := createWAVFile(3, 8000, 1, 32, make([]byte, 16), nil)

	_, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if !errorIs(err, ErrUnsupportedEncoding) || !errorIs(err, audio.ErrUnsupportedFormat) {
		t.Errorf("Decode() error = %v, want ErrUnsupportedEncoding", err)
	}
}

func TestDecoder_WithJunkChunk(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(1, 8000, 1, 16, pcm16(100, 200), []byte{1, 2, 3, 4})

	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatalf("Decode() error = %v, want nil (should skip unknown chunks)", err)
	}

	buf := make([]float32, 8)
	n, _ := src.ReadSamples(buf)
	if n != 2 {
		t.Fatalf("ReadSamples() n = %d, want 2", n)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	wavData := createWAVFile(1, 8000, 2, 16, pcm16(32767, -32767, 0, 16384), nil)
	src, err := Decoder{}.Decode(bytes.NewReader(wavData))
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 16)
	n, err := src.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 4 {
		t.Fatalf("ReadSamples() n = %d, want 4", n)
	}

	want := []float32{1, -1, 0, 16384.0 / 32767}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf[i], want[i])
		}
	}

	n, err = src.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(1, 8000, 1, 16, pcm16(1, 2), nil)))
	if err != nil {
		t.Fatal(err)
	}

	n, err := src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
}

func TestSource_EightBitIsUnsigned(t *testing.T) {
	t.Parallel()

	src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(1, 8000, 1, 8, []byte{128, 255, 1}, nil)))
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 3)
	n, _ := src.ReadSamples(buf)
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
	want := []float32{0, 1, -1}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestDecoder_VariousSampleRates(t *testing.T) {
	t.Parallel()

	for _, rate := range []int{8000, 11025, 16000, 22050, 44100, 48000, 96000} {
		src, err := Decoder{}.Decode(bytes.NewReader(createWAVFile(1, rate, 1, 16, pcm16(1), nil)))
		if err != nil {
			t.Fatalf("rate %d: %v", rate, err)
		}
		if src.Spec().SampleRate != rate {
			t.Errorf("SampleRate = %d, want %d", src.Spec().SampleRate, rate)
		}
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]int16, 48000)
	wavData := createWAVFile(1, 48000, 1, 16, pcm16(samples...), nil)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		src, err := Decoder{}.Decode(bytes.NewReader(wavData))
		if err != nil {
			b.Fatal(err)
		}
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}

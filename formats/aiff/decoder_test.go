// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/bits"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audxcode/audio"
)

// mockAiffReader serves ints from a slice like aiff.Decoder.PCMBuffer.
type mockAiffReader struct {
	format *goaudio.Format
	data   []int
	pos    int
	err    error
}

func (m *mockAiffReader) Format() *goaudio.Format { return m.format }

func (m *mockAiffReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	n := copy(buf.Data, m.data[m.pos:])
	m.pos += n
	return n, nil
}

// extended80 encodes an integer sample rate as an IEEE 754 80-bit float.
func extended80(rate uint64) []byte {
	out := make([]byte, 10)
	exp := 63 - bits.LeadingZeros64(rate)
	binary.BigEndian.PutUint16(out, uint16(16383+exp))
	binary.BigEndian.PutUint64(out[2:], rate<<(63-exp))
	return out
}

func createAIFF(rate, channels int, samples []int16) []byte {
	comm := new(bytes.Buffer)
	_ = binary.Write(comm, binary.BigEndian, int16(channels))
	_ = binary.Write(comm, binary.BigEndian, uint32(len(samples)/channels))
	_ = binary.Write(comm, binary.BigEndian, int16(16))
	comm.Write(extended80(uint64(rate)))

	ssnd := new(bytes.Buffer)
	_ = binary.Write(ssnd, binary.BigEndian, uint32(0)) // offset
	_ = binary.Write(ssnd, binary.BigEndian, uint32(0)) // block size
	for _, s := range samples {
		_ = binary.Write(ssnd, binary.BigEndian, s)
	}

	body := new(bytes.Buffer)
	body.WriteString("AIFF")
	body.WriteString("COMM")
	_ = binary.Write(body, binary.BigEndian, uint32(comm.Len()))
	body.Write(comm.Bytes())
	body.WriteString("SSND")
	_ = binary.Write(body, binary.BigEndian, uint32(ssnd.Len()))
	body.Write(ssnd.Bytes())

	out := new(bytes.Buffer)
	out.WriteString("FORM")
	_ = binary.Write(out, binary.BigEndian, uint32(body.Len()))
	out.Write(body.Bytes())
	return out.Bytes()
}

func TestSource_Scaling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bits int
		in   []int
		want []float32
	}{
		{8, []int{127, 0, -127}, []float32{1, 0, -1}},
		{16, []int{32767, 0, -32767}, []float32{1, 0, -1}},
		{24, []int{8388607, -8388607}, []float32{1, -1}},
		{32, []int{0}, []float32{0}},
	}

	for _, tt := range tests {
		format := &goaudio.Format{NumChannels: 1, SampleRate: 8000}
		src, err := newSource(&mockAiffReader{format: format, data: tt.in}, tt.bits)
		require.NoError(t, err)
		assert.Equal(t, tt.bits, src.Spec().BitDepth)

		buf := make([]float32, 8)
		n, err := src.ReadSamples(buf)
		require.NoError(t, err)
		assert.InDeltaSlice(t, tt.want, buf[:n], 1e-6, "bits=%d", tt.bits)

		n, err = src.ReadSamples(buf)
		assert.Zero(t, n)
		assert.ErrorIs(t, err, io.EOF)
	}
}

func TestNewSource_Rejects(t *testing.T) {
	t.Parallel()

	_, err := newSource(&mockAiffReader{format: &goaudio.Format{NumChannels: 1, SampleRate: 8000}}, 12)
	assert.ErrorIs(t, err, ErrUnsupportedBitDepth)
	assert.ErrorIs(t, err, audio.ErrUnsupportedFormat)

	_, err = newSource(&mockAiffReader{}, 16)
	assert.ErrorIs(t, err, ErrUnsupportedAiffLayout)
	assert.ErrorIs(t, err, audio.ErrDecode)
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	format := &goaudio.Format{NumChannels: 2, SampleRate: 8000}
	src, err := newSource(&mockAiffReader{format: format, err: errors.New("short chunk")}, 16)
	require.NoError(t, err)

	_, err = src.ReadSamples(make([]float32, 4))
	assert.ErrorIs(t, err, audio.ErrDecode)
}

func TestDecoder_File(t *testing.T) {
	t.Parallel()

	data := createAIFF(22050, 2, []int16{32767, -32767, 0, 16384})
	src, err := Decoder{}.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, audio.StreamSpec{SampleRate: 22050, Channels: 2, BitDepth: 16}, src.Spec())

	buf := make([]float32, 16)
	n, err := src.ReadSamples(buf)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	assert.InDelta(t, 1.0, buf[0], 1e-6)
	assert.InDelta(t, -1.0, buf[1], 1e-6)
	assert.InDelta(t, 0.0, buf[2], 1e-6)
	assert.InDelta(t, 0.5, buf[3], 1e-4)
}

func TestDecoder_NotAiff(t *testing.T) {
	t.Parallel()

	_, err := Decoder{}.Decode(bytes.NewReader([]byte("RIFF\x00\x00\x00\x00WAVE")))
	assert.ErrorIs(t, err, ErrNotAiffFile)
	assert.ErrorIs(t, err, audio.ErrDecode)
}

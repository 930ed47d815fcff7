// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// EncodeFLAC produces a FLAC stream with fixed-size blocks of verbatim
// subframes. It supports the bit depths with a dedicated frame header code
// (8, 12, 16, 20 and 24) and block sizes of at least 16 frames.
func EncodeFLAC(rate, channels, bits, blockSize int, samples []int32) ([]byte, error) {
	switch bits {
	case 8, 12, 16, 20, 24:
	default:
		return nil, fmt.Errorf("flac fixture: unsupported bit depth %d", bits)
	}
	if channels < 1 || channels > 8 {
		return nil, fmt.Errorf("flac fixture: unsupported channel count %d", channels)
	}
	if blockSize < 16 || blockSize > 65535 {
		return nil, fmt.Errorf("flac fixture: unsupported block size %d", blockSize)
	}
	if len(samples)%channels != 0 {
		return nil, fmt.Errorf("flac fixture: %d samples is not a whole number of frames", len(samples))
	}

	frames := len(samples) / channels
	out := new(bytes.Buffer)
	out.WriteString("fLaC")

	// STREAMINFO, flagged as the last metadata block.
	w := new(bitWriter)
	w.write(1, 1)
	w.write(0, 7)
	w.write(34, 24)
	w.write(uint64(blockSize), 16)
	w.write(uint64(blockSize), 16)
	w.write(0, 24)
	w.write(0, 24)
	w.write(uint64(rate), 20)
	w.write(uint64(channels-1), 3)
	w.write(uint64(bits-1), 5)
	w.write(uint64(frames), 36)
	out.Write(w.bytes())
	sum := audioMD5(bits, samples)
	out.Write(sum[:])

	for num, start := 0, 0; start < frames; num, start = num+1, start+blockSize {
		n := min(blockSize, frames-start)
		out.Write(encodeFrame(rate, channels, bits, num, samples[start*channels:(start+n)*channels]))
	}

	return out.Bytes(), nil
}

// WriteFLAC encodes samples with EncodeFLAC into a file named name under
// t.TempDir and returns its path.
func WriteFLAC(t testing.TB, name string, rate, channels, bits int, samples []int32) string {
	t.Helper()

	data, err := EncodeFLAC(rate, channels, bits, 4096, samples)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func encodeFrame(rate, channels, bits, num int, block []int32) []byte {
	n := len(block) / channels

	w := new(bitWriter)
	w.write(0x3ffe, 14) // sync
	w.write(0, 1)
	w.write(0, 1) // fixed block size
	w.write(0x7, 4)

	rateCode, rateBits, rateValue := sampleRateCode(rate)
	w.write(rateCode, 4)
	w.write(uint64(channels-1), 4)
	w.write(sampleSizeCode(bits), 3)
	w.write(0, 1)
	for _, b := range utf8Number(uint64(num)) {
		w.write(uint64(b), 8)
	}
	w.write(uint64(n-1), 16)
	if rateBits > 0 {
		w.write(rateValue, rateBits)
	}
	w.write(uint64(crc8(w.bytes())), 8)

	mask := uint64(1)<<bits - 1
	for c := range channels {
		w.write(0, 1)
		w.write(0x1, 6) // verbatim
		w.write(0, 1)
		for i := range n {
			w.write(uint64(block[i*channels+c])&mask, bits)
		}
	}
	w.align()

	data := w.bytes()
	crc := crc16(data)
	return append(data, byte(crc>>8), byte(crc))
}

// audioMD5 hashes the samples as interleaved little-endian signed integers
// of whole bytes, as STREAMINFO requires.
func audioMD5(bits int, samples []int32) [md5.Size]byte {
	width := (bits + 7) / 8
	raw := make([]byte, 0, len(samples)*width)
	for _, s := range samples {
		for b := range width {
			raw = append(raw, byte(s>>(8*b)))
		}
	}
	return md5.Sum(raw)
}

func sampleRateCode(rate int) (code uint64, bits int, value uint64) {
	switch {
	case rate <= 0xffff:
		return 0xd, 16, uint64(rate)
	case rate%10 == 0 && rate/10 <= 0xffff:
		return 0xe, 16, uint64(rate / 10)
	default:
		return 0x0, 0, 0
	}
}

func sampleSizeCode(bits int) uint64 {
	switch bits {
	case 8:
		return 0x1
	case 12:
		return 0x2
	case 16:
		return 0x4
	case 20:
		return 0x5
	default:
		return 0x6
	}
}

// utf8Number encodes a frame number the way FLAC extends UTF-8.
func utf8Number(v uint64) []byte {
	if v < 0x80 {
		return []byte{byte(v)}
	}

	var tail []byte
	limit := uint64(0x1f)
	lead := byte(0xc0)
	for {
		tail = append([]byte{0x80 | byte(v&0x3f)}, tail...)
		v >>= 6
		if v <= limit {
			return append([]byte{lead | byte(v)}, tail...)
		}
		limit >>= 1
		lead = lead>>1 | 0x80
	}
}

type bitWriter struct {
	buf  []byte
	cur  byte
	nbit uint
}

func (w *bitWriter) write(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		w.cur = w.cur<<1 | byte(v>>uint(i)&1)
		w.nbit++
		if w.nbit == 8 {
			w.buf = append(w.buf, w.cur)
			w.cur, w.nbit = 0, 0
		}
	}
}

func (w *bitWriter) align() {
	if w.nbit > 0 {
		w.write(0, int(8-w.nbit))
	}
}

// bytes returns the completed bytes written so far.
func (w *bitWriter) bytes() []byte { return w.buf }

func crc8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for range 8 {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0x07
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

func crc16(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for range 8 {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x8005
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files on top of github.com/go-audio/wav.
//
// Reader and Writer are the integer boundary of the native conversion path:
// Reader yields interleaved int16 samples from 16-bit PCM input and Writer
// encodes int16 samples into a 16-bit PCM container.
//
//	r, err := wav.Open("in.wav")
//	w, err := wav.Create("out.wav")
//	err = w.Begin(r.Spec())
//	n, err := r.ReadChunk(buf)
//	err = w.WriteSamples(buf[:n])
//	err = w.Finalize()
//
// # Accepted Headers
//
// The fmt chunk must carry format tag 1 (PCM) or 0xFFFE (WAVE_FORMAT_EXTENSIBLE)
// at up to 24 bits. go-audio does not expose the extensible sub-format, and
// below 32 bits the only sub-format in use is integer PCM, so such files are
// read like plain PCM. Extensible files at 32 bits may hold floats and are
// rejected.
//
//	tag      bits   Reader   Decoder
//	1        16     yes      yes
//	1        8/24   no       yes
//	0xFFFE   16     yes      yes
//	0xFFFE   32     no       no
//	3        any    no       no
//
// Decoder is the registry entry used for inspection. It accepts integer PCM
// at 8, 16, 24 or 32 bits and returns an audio.Source of normalized floats.
//
// # Error Handling
//
// Errors wrap both a package error and one of the audio sentinels:
//   - ErrNotWavFile with audio.ErrDecode: the input is not a RIFF/WAVE stream
//   - ErrUnsupportedEncoding with audio.ErrUnsupportedFormat: not integer PCM
//   - ErrOnlyPCM16bitSupported with audio.ErrUnsupportedFormat: Reader input
//     is not 16-bit
//   - ErrWriterState with audio.ErrWrite: Writer calls out of order
package wav

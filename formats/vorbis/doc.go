// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis decoding.
//
// This package uses github.com/jfreymuth/oggvorbis. Vorbis decodes straight
// to float, so no integer conversion happens on the way in.
//
// # Decoding Ogg Files
//
//	file, _ := os.Open("audio.ogg")
//	source, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Output Format
//
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels and sample rate: from the identification header
//   - Bit depth: 0, Vorbis has no integer sample width
//
// # Frame Alignment
//
// oggvorbis counts interleaved values, not frames. ReadSamples rounds each
// request down to a whole number of frames, so a 4097 sample buffer on a
// stereo stream is filled with at most 4096 values:
//
//	n, err := source.ReadSamples(make([]float32, 1)) // stereo
//	// n == 0, errors.Is(err, audio.ErrInvalidChunkSize)
//
// Once the stream ends, every further read returns io.EOF.
//
// # Limitations
//
//   - Decoding only
//   - Conversions involving Ogg go through ffmpeg
package vorbis

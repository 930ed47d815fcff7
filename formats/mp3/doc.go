// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files into
// normalized float samples. It backs the probe command; MP3 is never
// converted in process.
//
// # Decoding MP3 Files
//
// Use the Decoder to read MP3 files:
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("audio.mp3")
//	source, err := decoder.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	// Read samples as float32 in range [-1.0, 1.0]
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// # Output Format
//
// MP3 decoder output:
//   - Sample format: float32 in range [-1.0, 1.0]
//   - Channels: 2, go-mp3 duplicates mono streams into both channels
//   - Bit depth: reported as 16, the width go-mp3 decodes to
//   - Sample rate: the rate of the first frame
//
// To convert to mono or resample, hand the source to the root package:
//
//	pcm16, err := audxcode.ConvertSource(source, audio.StreamSpec{SampleRate: 8000, Channels: 1}, audxcode.Options{})
//
// # Limitations
//
// Note:
//   - MP3 writing is not supported (decoding only)
//   - Output is always stereo
//   - Files that convert to or from MP3 are routed to ffmpeg by package
//     transcode
//
// # Error Handling
//
// Header and frame failures wrap audio.ErrDecode:
//
//	if errors.Is(err, audio.ErrDecode) {
//	    // not an MP3 stream, or a damaged frame
//	}
package mp3

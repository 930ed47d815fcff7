// SPDX-License-Identifier: EPL-2.0

// Package audxcode converts audio between sample rates, channel layouts and
// sample formats.
//
// # Packages
//
// The work happens in subpackages:
//   - utils: integer and float sample conversion
//   - parallel: the order-preserving worker pool
//   - audio: channel mixing, resampling engines and the Resampler adapter
//   - pipeline: the chunked conversion loop
//   - formats/wav, formats/flac: the native file boundaries
//   - formats/mp3, formats/vorbis, formats/aiff: decoders for inspection
//   - transcode: route selection and the ffmpeg fallback
//   - inspect: stream parameters and signal levels of a file
//
// The command line front end lives in cmd/audxcode.
//
// # Quick Start
//
// Convert an in-memory 16-bit buffer. Zero fields of the output spec keep
// the input's value:
//
//	in := audio.StreamSpec{SampleRate: 44100, Channels: 2, BitDepth: 16}
//	out, err := audxcode.ConvertPCM16(pcm, in, audio.StreamSpec{SampleRate: 16000, Channels: 1}, audxcode.Options{})
//
// Convert any decoded source, for example an MP3:
//
//	file, _ := os.Open("speech.mp3")
//	src, _ := mp3.Decoder{}.Decode(file)
//	pcm16, err := audxcode.ConvertSource(src, audio.StreamSpec{SampleRate: 8000, Channels: 1}, audxcode.Options{})
//
// ResampleToMono16 is the shorthand for the common telephony case:
//
//	pcm16, rate, err := audxcode.ResampleToMono16(src, 8000, 4096)
//
// # Options
//
// Options selects the resampling engine, the worker pool and the chunk size:
//
//	opts := audxcode.Options{
//	    Engine:    audio.CubicEngine{},
//	    Pool:      parallel.New(0),
//	    ChunkSize: 2048,
//	}
//
// The zero value uses the polyphase engine, converts on the calling
// goroutine and reads pipeline.DefaultChunkSize frames at a time.
//
// # Precision
//
// Samples travel as float32 normalized by the positive integer maximum, so a
// 16-bit stream converted to its own rate and channel count comes back
// unchanged. Narrowing rounds to nearest and saturates silently.
//
// # Converting Files
//
// File to file conversion, including the ffmpeg fallback for formats that
// are not handled natively, is in package transcode:
//
//	res, err := transcode.New(transcode.Config{}).Transcode("in.flac", "out.wav", transcode.Options{Channels: 1})
package audxcode

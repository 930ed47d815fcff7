// SPDX-License-Identifier: EPL-2.0

// Package audio provides the in-memory building blocks of a conversion:
// stream descriptions, the channel mixer, the resampler adapter and the
// decoder registry.
//
// # Sample Format
//
// Between decode and encode, samples are float32 normalized to [-1.0, 1.0]
// and interleaved frame by frame. Integer conversion lives in package utils.
//
// # Channel Mixing
//
// MixChannels applies a fixed remapping table, one frame at a time:
//
//	mono := audio.MixChannels(pool, stereo, 2, 1)
//
// The rules, first match wins:
//
//	in == out        returned as is
//	in or out == 0   empty
//	1 -> 2           [a] -> [a a]
//	2 -> 1           [a b] -> [(a+b)/2]
//	in < out         out[c] = in[c mod in]
//	in > out         out[c] = mean(in[c:])
//
// Reducing more than two channels averages input channels [c, in) into
// output channel c, so each output channel averages a shrinking window of
// the input rather than a fixed downmix matrix. For 4 -> 2:
//
//	[0.1 0.2 0.3 0.4] -> [0.25 0.3]
//
// Frames are independent, so the pool may split them; output order always
// matches input order. A nil pool mixes on the calling goroutine.
//
// # Resampling
//
// A Resampler owns one engine Session for the life of a stream:
//
//	r, err := audio.NewResampler(audio.PolyphaseEngine{}, 44100, 48000, 2, 1024)
//	for each chunk {
//	    out, err := r.Process(chunk)
//	}
//	tail, err := r.Flush()
//
// The adapter de-interleaves each chunk into per-channel planar rows, drives
// the session once and interleaves the result. The number of frames out of a
// call is the engine's business; the adapter never computes it.
//
// Engines may hold samples back for filter latency. Flush must be called
// once after the last chunk or the tail of the stream is lost. Two engines
// ship with the package: PolyphaseEngine (windowed sinc, default) and
// CubicEngine (Catmull-Rom, no anti-aliasing).
//
// The adapter's states are Ready and Flushed. Process and Flush after Flush
// return ErrResamplerFlushed:
//
//	_, err := r.Flush()
//	errors.Is(err, audio.ErrResamplerFlushed) // true on the second call
//
// # Custom Engines
//
// Any Engine can be plugged into the adapter and the pipeline:
//
//	type Engine interface {
//	    NewSession(cfg SessionConfig) (Session, error)
//	}
//
// A Session processes planar rows, reports its expected output size for a
// full chunk and drains its tail on Flush. EngineByName maps "polyphase"
// and "cubic" to the built-in engines for configuration files.
//
// # Format Registry
//
// The registry maps format keys to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Error Handling
//
// Every failure wraps one of the sentinel errors in errors.go (ErrIO,
// ErrDecode, ErrResamplerConfig and so on) and can be classified with
// errors.Is. Clamping during float to integer conversion is not an error.
package audio

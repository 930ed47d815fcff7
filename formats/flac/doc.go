// SPDX-License-Identifier: EPL-2.0

// Package flac reads FLAC streams with github.com/mewkiz/flac.
//
// # Overview
//
// Reader is the integer boundary of the FLAC to WAV conversion path. FLAC
// stores anywhere from 4 to 32 bits per sample; Reader hands every stream out
// as int32 so that one pipeline instantiation serves all of them.
//
// # Sample Scaling
//
// Each sample s of a stream with bps bits per sample is rescaled as
//
//	round(s * (2^31 - 1) / (2^(bps-1) - 1))
//
// so the positive full scale of the source lands exactly on math.MaxInt32
// and utils.Int32ToFloat32 yields s / (2^(bps-1) - 1). That is the same
// normalization the 16-bit WAV path applies, which keeps a 16-bit FLAC to
// 16-bit WAV conversion sample exact:
//
//	in (16-bit)   int32          float      out (16-bit)
//	 32767        2147483647      1.0        32767
//	     1        65538           3.05e-05   1
//	-20000       -1310760001     -0.61037   -20000
//
// The most negative source value, -2^(bps-1), lies just below the scaled
// range and saturates to math.MinInt32, which narrows to -32767.
//
// # Usage
//
//	r, err := flac.Open("in.flac")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	fmt.Println(r.Spec(), r.Frames())
//
//	buf := make([]int32, 1024*r.Spec().Channels)
//	for {
//	    n, err := r.ReadChunk(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	}
//
// FLAC frames rarely line up with the caller's chunk size; Reader keeps the
// unread tail of the last decoded frame and serves it first on the next call.
// Frames() reports the STREAMINFO total, zero when the encoder did not know it.
//
// # Registry
//
// Decoder wraps Reader as an audio.Source of normalized floats for
// inspection:
//
//	registry.Register("flac", flac.Decoder{})
//
// # Error Handling
//
//   - ErrNotFlacFile with audio.ErrDecode: missing signature or STREAMINFO
//   - ErrUnsupportedBitDepth with audio.ErrUnsupportedFormat: outside 4..32
//   - ErrChannelLayout with audio.ErrDecode: a frame disagrees with STREAMINFO
//   - audio.ErrDecode: CRC mismatch or a truncated frame
//   - audio.ErrIO: Open failed
package flac

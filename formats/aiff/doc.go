// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF audio file decoding.
//
// This package uses github.com/go-audio/aiff to read the COMM and SSND
// chunks of an AIFF file and returns the samples as normalized floats.
//
// # Supported Formats
//
// The decoder supports signed big-endian integer PCM at:
//   - 8 bits
//   - 16 bits
//   - 24 bits
//   - 32 bits
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("audio.aiff")
//	source, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer source.Close()
//
//	spec := source.Spec() // 44100 Hz, 2 ch, 16 bit
//
//	buf := make([]float32, 4096)
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	}
//
// # Normalization
//
// Every depth is divided by its positive full scale, 2^(bits-1)-1:
//
//	bits   divisor      full-scale sample   float
//	8      127          127                 1.0
//	16     32767        32767               1.0
//	24     8388607      -8388607            -1.0
//
// The most negative value of each depth reads slightly below -1.0.
//
// # Error Handling
//
// Errors wrap both a package error and one of the audio sentinels:
//   - ErrNotAiffFile with audio.ErrDecode: the input is not a FORM/AIFF stream
//   - ErrUnsupportedAiffLayout with audio.ErrDecode: missing or empty COMM chunk
//   - ErrUnsupportedBitDepth with audio.ErrUnsupportedFormat
//
// # Limitations
//
// AIFF is only probed; conversions involving it go through ffmpeg.
package aiff

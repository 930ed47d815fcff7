// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

// Conversion failures. Every error returned by this module wraps exactly one of
// these, so callers can classify with errors.Is.
var (
	ErrIO                = errors.New("i/o failure")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDecode            = errors.New("decode failure")
	ErrResamplerConfig   = errors.New("resampler configuration failure")
	ErrResamplerProcess  = errors.New("resampler processing failure")
	ErrWrite             = errors.New("write failure")
)

var (
	ErrInvalidChunkSize = errors.New("chunk size must be multiple of channels")
	ErrResamplerFlushed = errors.New("resampler already flushed")
	ErrInvalidSpec      = errors.New("invalid stream spec")
)

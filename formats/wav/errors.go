package wav

import "errors"

var (
	ErrNotWavFile            = errors.New("not a WAV file")
	ErrOnlyPCM16bitSupported = errors.New("only PCM 16-bit supported")
	ErrUnsupportedEncoding   = errors.New("unsupported WAV encoding")
	ErrWriterState           = errors.New("WAV writer used out of order")
)

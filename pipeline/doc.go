// SPDX-License-Identifier: EPL-2.0

// Package pipeline streams decoded integer PCM through format conversion,
// resampling and channel mixing into a 16-bit writer.
//
// # Instantiations
//
// A Pipeline is instantiated per source sample width: NewPCM16 for 16-bit
// sources such as WAV and NewPCM32 for full-range 32-bit sources such as
// FLAC. Both run the same loop:
//
//	for each chunk of up to ChunkSize frames:
//	    int -> float -> resample -> mix -> int16 -> write
//	flush the resampler once, mix and write its tail
//	finalize the writer
//
// The resampler is only built when the rates differ and the mixer only runs
// when the channel counts differ. A stream converted to its own spec comes
// out sample for sample identical.
//
// # Usage
//
//	r, _ := wav.Open("in.wav")
//	w, _ := wav.Create("out.wav")
//	out := audio.StreamSpec{SampleRate: 16000, Channels: 1, BitDepth: 16}
//
//	stats, err := pipeline.NewPCM16(pipeline.Config{Pool: parallel.New(0)}).Run(r, w, out)
//
// SliceReader and BufferWriter run the same loop in memory:
//
//	w := &pipeline.BufferWriter{}
//	_, err := pipeline.NewPCM16(pipeline.Config{}).Run(pipeline.NewSliceReader(in, pcm), w, out)
//	fmt.Println(w.Samples)
//
// # Ordering
//
// Chunks are processed strictly in order because the resampler keeps filter
// history between calls. Only the per-sample conversion and per-frame mixing
// inside a chunk are spread over the configured parallel.Pool.
//
// Without resampling the output does not depend on ChunkSize. With the
// polyphase engine the total length may differ by a few frames between
// chunk sizes; the cubic engine is chunk size independent.
//
// # Failures
//
// Any failure aborts the run. A source chunk that is not a whole number of
// frames is audio.ErrDecode with audio.ErrInvalidChunkSize. Whatever was
// already written is left in place for the caller to clean up.
package pipeline

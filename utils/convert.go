// SPDX-License-Identifier: EPL-2.0

package utils

import "github.com/ik5/audxcode/parallel"

// The slice converters below are elementwise: each output element depends only
// on the input element at the same index, so they are safe to split across the
// pool's workers. Pass a nil pool to convert on the calling goroutine.

// Int16sToFloat32s converts a chunk of 16-bit PCM to normalized floats.
func Int16sToFloat32s(p *parallel.Pool, in []int16) []float32 {
	return parallel.Map(p, in, Int16ToFloat32)
}

// Float32sToInt16s converts normalized floats to 16-bit PCM with saturation.
func Float32sToInt16s(p *parallel.Pool, in []float32) []int16 {
	return parallel.Map(p, in, Float32ToInt16)
}

// Int32sToFloat32s converts a chunk of 32-bit PCM to normalized floats.
func Int32sToFloat32s(p *parallel.Pool, in []int32) []float32 {
	return parallel.Map(p, in, Int32ToFloat32)
}

// Float32sToInt32s converts normalized floats to 32-bit PCM with saturation.
func Float32sToInt32s(p *parallel.Pool, in []float32) []int32 {
	return parallel.Map(p, in, Float32ToInt32)
}

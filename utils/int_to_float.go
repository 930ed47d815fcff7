// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Int16ToFloat32 normalizes by the positive int16 maximum, so 32767 maps to
// exactly 1.0 and -32768 to slightly below -1.0.
func Int16ToFloat32(x int16) float32 {
	return float32(x) / math.MaxInt16
}

// Int32ToFloat32 normalizes by the positive int32 maximum. The division runs
// in float64 to keep the full 32-bit input before narrowing.
func Int32ToFloat32(x int32) float32 {
	return float32(float64(x) / math.MaxInt32)
}

package utils

import "math"

// Float32ToInt16 scales a normalized sample by 32767, rounds to nearest and
// saturates to the int16 range. Values outside [-1, 1] are expected after gain
// changes and clamp silently; NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	v := math.Round(float64(x) * math.MaxInt16)

	switch {
	case v != v: // NaN
		return 0
	case v > math.MaxInt16:
		return math.MaxInt16
	case v < math.MinInt16:
		return math.MinInt16
	}

	return int16(v)
}

// Float32ToInt32 is the 32-bit counterpart of Float32ToInt16, scaling by
// 2147483647.
func Float32ToInt32(x float32) int32 {
	v := math.Round(float64(x) * math.MaxInt32)

	switch {
	case v != v:
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}

	return int32(v)
}

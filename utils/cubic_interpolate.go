// SPDX-License-Identifier: EPL-2.0

package utils

// CubicInterpolate evaluates a Catmull-Rom spline through four consecutive
// samples. x is the fractional position between y1 and y2 (0 <= x <= 1).
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*x+a1)*x+a2)*x + a3
}

// CubicAt interpolates buf at position i+x, repeating the edge samples when the
// four-point neighbourhood runs off either end of buf.
func CubicAt(buf []float32, i int, x float32) float32 {
	last := len(buf) - 1
	at := func(k int) float32 {
		if k < 0 {
			k = 0
		} else if k > last {
			k = last
		}
		return buf[k]
	}

	return CubicInterpolate(at(i-1), at(i), at(i+1), at(i+2), x)
}

package mathutil

import "math"

// Clamp limits x to [lo, hi]. NaN collapses to lo.
func Clamp(x, lo, hi float64) float64 {
	if x < lo || math.IsNaN(x) {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Distance calculates the Euclidean distance between two 2D points.
func Distance(x1, z1, x2, z2 float64) float64 {
	dx := x2 - x1
	dz := z2 - z1
	return math.Sqrt(dx*dx + dz*dz)
}

package mathutil

// IntMin returns the smaller of two ints (search: int-math).
func IntMin(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// IntMax returns the larger of two ints (search: int-math).
func IntMax(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IntClamp limits x to [lo, hi] (search: int-math).
func IntClamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Wrap maps any int, including negatives, into [0, n). A power-of-two n
// takes the bitmask path (search: int-math).
func Wrap(x, n int) int {
	if n <= 0 {
		return 0
	}
	if n&(n-1) == 0 {
		return x & (n - 1)
	}
	x %= n
	if x < 0 {
		x += n
	}
	return x
}

package util

import (
	"math"
	"strconv"
)

func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	// guard against NaN
	if math.IsNaN(x) {
		return 0
	}
	return x
}

// FmtFloat renders a float for CSV cells with a fixed short precision.
func FmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

package visualizer

import "math"

// DefaultLogFactor is the warp factor of the spectrum's frequency axis.
const DefaultLogFactor = 20.0

// LogWarpX maps bin i of bins onto [0, width] logarithmically, expanding the
// low-frequency end.
func LogWarpX(i, bins int, factor, width float64) float64 {
	if bins < 2 {
		return 0
	}
	xn := float64(i) / float64(bins-1)
	return math.Log(xn*factor+1) / math.Log(factor+1) * width
}

// LinearX maps sample i of n onto [0, width].
func LinearX(i, n int, width float64) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1) * width
}

// DecibelY maps a level in dB onto [0, height] with floor at the bottom and
// ceiling at the top. Levels outside the range land off the surface.
func DecibelY(db, floor, ceiling, height float64) float64 {
	vn := (db - floor) / (ceiling - floor)
	return (1 - vn) * height
}

// UnitY maps a value normalized to [0, 1] onto [0, height], 1 at the top.
func UnitY(vn, height float64) float64 {
	return (1 - vn) * height
}

package mathutil

import (
	"errors"
	"math"
)

// Epsilon is the degeneracy tolerance for unit-scale quantities.
const Epsilon = 1e-9

// Precondition violations reported when host data has the wrong shape.
var (
	ErrShape     = errors.New("mathutil: wrong number of components")
	ErrNonFinite = errors.New("mathutil: non-finite component")
)

// AngleDist returns the shortest angular distance between two angles in degrees (0–180).
func AngleDist(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		return 360 - d
	}
	return d
}

func allFinite(vs []float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

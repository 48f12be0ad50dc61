package mathutil

import (
	"fmt"
	"math"
)

// Vec3 is a 3-component vector (value type, stack-allocated).
// Used for both points and offsets; the caller decides whether w is 0 or 1.
type Vec3 [3]float64

// Vec3FromSlice copies a host-supplied list into a Vec3.
func Vec3FromSlice(s []float64) (Vec3, error) {
	if len(s) != 3 {
		return Vec3{}, fmt.Errorf("vec3: got %d values, want 3: %w", len(s), ErrShape)
	}
	if !allFinite(s) {
		return Vec3{}, fmt.Errorf("vec3: %v: %w", s, ErrNonFinite)
	}
	return Vec3{s[0], s[1], s[2]}, nil
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Len does not overflow for components near the float64 range.
func (v Vec3) Len() float64 {
	return math.Hypot(math.Hypot(v[0], v[1]), v[2])
}

// Normalize returns v scaled to unit length, or the zero vector for a zero v.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v[0] / l, v[1] / l, v[2] / l}
}

// Degrees converts every component from radians to degrees.
func (v Vec3) Degrees() Vec3 {
	return Vec3{Rad2Deg(v[0]), Rad2Deg(v[1]), Rad2Deg(v[2])}
}

// Radians converts every component from degrees to radians.
func (v Vec3) Radians() Vec3 {
	return Vec3{Deg2Rad(v[0]), Deg2Rad(v[1]), Deg2Rad(v[2])}
}

package euler

import (
	"fmt"
	"math"

	"anim-loc-baker/internal/mathutil"
)

// ExtractRotation returns the pure rotation held by m's basis axes.
//
// Axes are orthonormalised in X, Y, Z order, which strips scale and the
// host's XY/XZ/YZ shear. A mirrored basis is folded into a negative X scale.
func ExtractRotation(m mathutil.Mat4) (mathutil.Mat3, error) {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return mathutil.Mat3{}, fmt.Errorf("euler: extract rotation: %w", mathutil.ErrNonFinite)
		}
	}

	x, y, z := m.Axis(0), m.Axis(1), m.Axis(2)

	// Zero-length checks are relative to the longest axis.
	lx, ly, lz := x.Len(), y.Len(), z.Len()
	floor := mathutil.Epsilon * math.Max(lx, math.Max(ly, lz))
	switch {
	case !(lx > floor):
		return mathutil.Mat3{}, fmt.Errorf("euler: X axis has zero length: %w", ErrDegenerate)
	case !(ly > floor):
		return mathutil.Mat3{}, fmt.Errorf("euler: Y axis has zero length: %w", ErrDegenerate)
	case !(lz > floor):
		return mathutil.Mat3{}, fmt.Errorf("euler: Z axis has zero length: %w", ErrDegenerate)
	}
	x, y, z = x.Normalize(), y.Normalize(), z.Normalize()

	y, ok := unit(y.Sub(x.Scale(y.Dot(x))))
	if !ok {
		return mathutil.Mat3{}, fmt.Errorf("euler: Y axis collapses onto X: %w", ErrDegenerate)
	}
	z, ok = unit(z.Sub(x.Scale(z.Dot(x))).Sub(y.Scale(z.Dot(y))))
	if !ok {
		return mathutil.Mat3{}, fmt.Errorf("euler: Z axis collapses onto XY plane: %w", ErrDegenerate)
	}

	if x.Cross(y).Dot(z) < 0 {
		x = x.Scale(-1)
	}

	var r mathutil.Mat3
	r = r.SetCol(0, x)
	r = r.SetCol(1, y)
	r = r.SetCol(2, z)
	return r, nil
}

// unit normalizes a Gram-Schmidt residual of unit-length axes.
func unit(v mathutil.Vec3) (mathutil.Vec3, bool) {
	if v.Len() < mathutil.Epsilon {
		return mathutil.Vec3{}, false
	}
	return v.Normalize(), true
}

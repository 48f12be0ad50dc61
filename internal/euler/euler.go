// Package euler converts between rotation matrices and Euler angles in any of
// the six Tait–Bryan rotation orders.
//
// Angles are always laid out as (about X, about Y, about Z) whatever the
// order; the order only changes which values describe a given rotation.
// Order "ABC" applies A first, so with column vectors R = R_C · R_B · R_A.
package euler

import (
	"errors"
	"fmt"
	"math"

	"anim-loc-baker/internal/mathutil"
)

// ErrDegenerate is returned when a matrix has no recoverable rotation
// (zero-length or collinear basis axes).
var ErrDegenerate = errors.New("euler: degenerate matrix")

// Below this cos(second angle) the first and third axes are treated as
// coincident.
const gimbalEpsilon = 1e-7

// Compose builds the rotation for angles (radians) applied in order.
func Compose(angles mathutil.Vec3, order Order) mathutil.Mat3 {
	i, j, k := order.Axes()
	r := mathutil.RotAxis(i, angles[i])
	r = mathutil.Mat3Mul(mathutil.RotAxis(j, angles[j]), r)
	return mathutil.Mat3Mul(mathutil.RotAxis(k, angles[k]), r)
}

// Decompose solves R = R_k(c)·R_j(b)·R_i(a) for a pure rotation r.
// The second angle is kept in [-π/2, π/2], the others in (-π, π]. In gimbal
// lock the third angle is set to 0 and the first absorbs the combined spin.
func Decompose(r mathutil.Mat3, order Order) (mathutil.Vec3, error) {
	if !order.Valid() {
		return mathutil.Vec3{}, fmt.Errorf("euler: decompose: %w", ErrInvalidOrder)
	}
	i, j, k := order.Axes()
	sign := 1.0
	if !order.cyclic() {
		sign = -1
	}

	cb := math.Hypot(r.At(i, i), r.At(j, i))
	b := math.Atan2(-sign*r.At(k, i), cb)

	var a, c float64
	if cb > gimbalEpsilon {
		a = math.Atan2(sign*r.At(k, j), r.At(k, k))
		c = math.Atan2(sign*r.At(j, i), r.At(i, i))
	} else {
		a = math.Atan2(-sign*r.At(j, k), r.At(j, j))
	}

	var out mathutil.Vec3
	out[i], out[j], out[k] = a, b, c
	return out, nil
}

// Reorder re-expresses angles given in order from as the equivalent angles
// in order to. The net rotation is preserved; the values generally change.
func Reorder(angles mathutil.Vec3, from, to Order) (mathutil.Vec3, error) {
	if !from.Valid() || !to.Valid() {
		return mathutil.Vec3{}, fmt.Errorf("euler: reorder %v to %v: %w", from, to, ErrInvalidOrder)
	}
	if from == to {
		return angles, nil
	}
	return Decompose(Compose(angles, from), to)
}

// DecomposeMatrix extracts Euler angles in degrees from the rotational part
// of a host matrix. Translation, scale and shear are ignored.
func DecomposeMatrix(m mathutil.Mat4, order Order) (mathutil.Vec3, error) {
	if !order.Valid() {
		return mathutil.Vec3{}, fmt.Errorf("euler: %w", ErrInvalidOrder)
	}
	r, err := ExtractRotation(m)
	if err != nil {
		return mathutil.Vec3{}, err
	}
	canonical, err := Decompose(r, XYZ)
	if err != nil {
		return mathutil.Vec3{}, err
	}
	angles, err := Reorder(canonical, XYZ, order)
	if err != nil {
		return mathutil.Vec3{}, err
	}
	return angles.Degrees(), nil
}

// DecomposeList is DecomposeMatrix for a raw host matrix list and
// rotateOrder code.
func DecomposeList(matrix []float64, code int) ([3]float64, error) {
	m, err := mathutil.Mat4FromSlice(matrix)
	if err != nil {
		return [3]float64{}, fmt.Errorf("euler: %w", err)
	}
	order, err := OrderFromCode(code)
	if err != nil {
		return [3]float64{}, err
	}
	return DecomposeMatrix(m, order)
}

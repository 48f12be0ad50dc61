// Package xform computes where a transform's rotate pivot lands in its
// parent's space.
//
// The host splits an object's local translation into rotate pivot, rotate
// pivot translate and translate. Summing them gives the pivot position in the
// object's parent space before the parent matrix is applied, so one forward
// multiply by the parent matrix yields the position a parentless locator
// needs as its own translate. No inversion is involved.
package xform

import (
	"fmt"

	"anim-loc-baker/internal/mathutil"
)

// TransformPoint returns (pivot + pivotTranslate + translate) · m.
func TransformPoint(m mathutil.Mat4, pivot, pivotTranslate, translate mathutil.Vec3) mathutil.Vec3 {
	offset := pivot.Add(pivotTranslate).Add(translate)
	return m.MulPoint(offset)
}

// TransformPointLists is TransformPoint for raw host attribute lists.
// Shape or finiteness violations are returned as errors wrapping
// mathutil.ErrShape or mathutil.ErrNonFinite.
func TransformPointLists(matrix, pivot, pivotTranslate, translate []float64) ([3]float64, error) {
	m, err := mathutil.Mat4FromSlice(matrix)
	if err != nil {
		return [3]float64{}, fmt.Errorf("xform: matrix: %w", err)
	}
	p, err := mathutil.Vec3FromSlice(pivot)
	if err != nil {
		return [3]float64{}, fmt.Errorf("xform: rotate pivot: %w", err)
	}
	c, err := mathutil.Vec3FromSlice(pivotTranslate)
	if err != nil {
		return [3]float64{}, fmt.Errorf("xform: rotate pivot translate: %w", err)
	}
	tr, err := mathutil.Vec3FromSlice(translate)
	if err != nil {
		return [3]float64{}, fmt.Errorf("xform: translate: %w", err)
	}
	return TransformPoint(m, p, c, tr), nil
}

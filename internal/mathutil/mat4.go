package mathutil

import "fmt"

// Mat4 is a 4×4 affine matrix in the host's storage layout: rows 0–2 hold the
// X, Y and Z basis axes, row 3 (indices 12–14) holds the translation.
// Points are row vectors, p' = p·M.
type Mat4 [16]float64

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Translation returns an identity matrix carrying translation t.
func Mat4Translation(t Vec3) Mat4 {
	m := Mat4Identity()
	m[12], m[13], m[14] = t[0], t[1], t[2]
	return m
}

// Mat4FromSlice copies a host-supplied list of 16 floats into a Mat4.
func Mat4FromSlice(s []float64) (Mat4, error) {
	if len(s) != 16 {
		return Mat4{}, fmt.Errorf("mat4: got %d values, want 16: %w", len(s), ErrShape)
	}
	if !allFinite(s) {
		return Mat4{}, fmt.Errorf("mat4: %w", ErrNonFinite)
	}
	var m Mat4
	copy(m[:], s)
	return m, nil
}

// MulPoint transforms a 3D point (w=1) by the matrix:
// r[i] = Σ_j m[j*4+i]·p[j] + m[12+i].
func (m Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		m[0]*p[0] + m[4]*p[1] + m[8]*p[2] + m[12],
		m[1]*p[0] + m[5]*p[1] + m[9]*p[2] + m[13],
		m[2]*p[0] + m[6]*p[1] + m[10]*p[2] + m[14],
	}
}

// Axis returns basis row i (0=X, 1=Y, 2=Z), scale and shear included.
func (m Mat4) Axis(i int) Vec3 {
	return Vec3{m[i*4], m[i*4+1], m[i*4+2]}
}

// Translation returns row 3.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// Rotation returns the upper 3×3 block transposed into the column-vector
// convention used by Mat3, so Rotation().MulVec3(v) equals the linear part of
// MulPoint(v).
func (m Mat4) Rotation() Mat3 {
	var r Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[row*3+col] = m[col*4+row]
		}
	}
	return r
}

// FromMat3Translation builds a host-layout affine matrix from a column-vector
// 3×3 block and a translation. It is the inverse of Rotation/Translation.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	return Mat4{
		r[0], r[3], r[6], 0,
		r[1], r[4], r[7], 0,
		r[2], r[5], r[8], 0,
		t[0], t[1], t[2], 1,
	}
}

// IsIdentity checks if the matrix is approximately identity.
func (m Mat4) IsIdentity() bool {
	id := Mat4Identity()
	for i := 0; i < 16; i++ {
		d := m[i] - id[i]
		if d > 1e-8 || d < -1e-8 {
			return false
		}
	}
	return true
}

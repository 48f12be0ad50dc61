package mathutil

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func sampleMatrix() Mat4 {
	// Rotation + non-uniform scale + shear + translation.
	return Mat4{
		0.8, 0.3, -0.2, 0,
		-0.4, 1.7, 0.25, 0,
		0.1, -0.6, 2.2, 0,
		5, -3, 12.5, 1,
	}
}

func vecNear(a, b Vec3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > tol*math.Max(1, math.Abs(b[i])) {
			return false
		}
	}
	return true
}

func TestMulPointMatchesHomogeneousProduct(t *testing.T) {
	m := sampleMatrix()
	points := []Vec3{{0, 0, 0}, {1, 2, 3}, {-7.5, 0.25, 100}}
	for _, p := range points {
		want := mgl64.Mat4(m).Mul4x1(mgl64.Vec4{p[0], p[1], p[2], 1})
		got := m.MulPoint(p)
		if !vecNear(got, Vec3{want[0], want[1], want[2]}, 1e-12) {
			t.Errorf("MulPoint(%v) = %v, want %v", p, got, want.Vec3())
		}
	}
}

func TestRotationTranslationRoundTrip(t *testing.T) {
	m := sampleMatrix()
	r, tr := m.Rotation(), m.Translation()
	if tr != (Vec3{5, -3, 12.5}) {
		t.Fatalf("Translation() = %v", tr)
	}
	p := Vec3{3, -1, 2}
	if got, want := r.MulVec3(p), m.MulPoint(p).Sub(tr); !vecNear(got, want, 1e-12) {
		t.Errorf("Rotation().MulVec3 = %v, want %v", got, want)
	}
	if back := FromMat3Translation(r, tr); back != m {
		t.Errorf("FromMat3Translation(Rotation(), Translation()) = %v, want %v", back, m)
	}
	if got := m.Axis(1); got != (Vec3{-0.4, 1.7, 0.25}) {
		t.Errorf("Axis(1) = %v", got)
	}
}

func TestMat4FromSlice(t *testing.T) {
	id := Mat4Identity()
	m, err := Mat4FromSlice(id[:])
	if err != nil || !m.IsIdentity() {
		t.Fatalf("Mat4FromSlice(identity) = %v, %v", m, err)
	}

	if _, err := Mat4FromSlice(make([]float64, 12)); !errors.Is(err, ErrShape) {
		t.Errorf("12 values: err = %v, want ErrShape", err)
	}
	bad := make([]float64, 16)
	bad[5] = math.NaN()
	if _, err := Mat4FromSlice(bad); !errors.Is(err, ErrNonFinite) {
		t.Errorf("NaN: err = %v, want ErrNonFinite", err)
	}
}

func TestVec3FromSlice(t *testing.T) {
	if v, err := Vec3FromSlice([]float64{1, 2, 3}); err != nil || v != (Vec3{1, 2, 3}) {
		t.Fatalf("Vec3FromSlice = %v, %v", v, err)
	}
	if _, err := Vec3FromSlice([]float64{1, 2}); !errors.Is(err, ErrShape) {
		t.Errorf("2 values: err = %v, want ErrShape", err)
	}
	if _, err := Vec3FromSlice([]float64{1, math.Inf(1), 3}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("Inf: err = %v, want ErrNonFinite", err)
	}
}

func TestAngleDist(t *testing.T) {
	tests := []struct{ a, b, want float64 }{
		{10, 350, 20},
		{-90, 270, 0},
		{0, 180, 180},
		{45, 30, 15},
	}
	for _, tt := range tests {
		if got := AngleDist(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("AngleDist(%g, %g) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestVec3LenLargeAndSmall(t *testing.T) {
	tests := []struct {
		v    Vec3
		want float64
	}{
		{Vec3{3, 4, 12}, 13},
		{Vec3{3e200, 4e200, 12e200}, 13e200},
		{Vec3{3e-200, 4e-200, 12e-200}, 13e-200},
	}
	for _, tt := range tests {
		if got := tt.v.Len(); math.Abs(got-tt.want) > 1e-12*tt.want {
			t.Errorf("Len(%v) = %g, want %g", tt.v, got, tt.want)
		}
		n := tt.v.Normalize()
		if l := n.Len(); math.Abs(l-1) > 1e-12 {
			t.Errorf("Normalize(%v) has length %g", tt.v, l)
		}
	}
	if n := (Vec3{}).Normalize(); n != (Vec3{}) {
		t.Errorf("Normalize(0) = %v, want zero", n)
	}
}

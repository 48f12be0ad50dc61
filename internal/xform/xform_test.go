package xform

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"anim-loc-baker/internal/mathutil"
)

// naive sums the offsets and runs a full homogeneous 4×4 product.
func naive(m mathutil.Mat4, p, c, tr mathutil.Vec3) mathutil.Vec3 {
	v := mgl64.Vec4{p[0] + c[0] + tr[0], p[1] + c[1] + tr[1], p[2] + c[2] + tr[2], 1}
	r := mgl64.Mat4(m).Mul4x1(v)
	return mathutil.Vec3{r[0] / r[3], r[1] / r[3], r[2] / r[3]}
}

func relNear(a, b mathutil.Vec3, tol float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(a[i]-b[i]) > tol*math.Max(1, math.Abs(b[i])) {
			return false
		}
	}
	return true
}

func randomAffine(rng *rand.Rand) mathutil.Mat4 {
	var m mathutil.Mat4
	for i := 0; i < 15; i++ {
		m[i] = rng.Float64()*20 - 10
	}
	m[3], m[7], m[11], m[15] = 0, 0, 0, 1
	return m
}

func randomVec(rng *rand.Rand) mathutil.Vec3 {
	return mathutil.Vec3{rng.Float64()*200 - 100, rng.Float64()*200 - 100, rng.Float64()*200 - 100}
}

func TestTransformPointMatchesHomogeneousProduct(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		m := randomAffine(rng)
		p, c, tr := randomVec(rng), randomVec(rng), randomVec(rng)
		got := TransformPoint(m, p, c, tr)
		want := naive(m, p, c, tr)
		if !relNear(got, want, 1e-6) {
			t.Fatalf("case %d: TransformPoint = %v, homogeneous product = %v", i, got, want)
		}
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name          string
		m             mathutil.Mat4
		pivot, pt, tr mathutil.Vec3
		want          mathutil.Vec3
	}{
		{
			name:  "identity",
			m:     mathutil.Mat4Identity(),
			pivot: mathutil.Vec3{1, 2, 3},
			want:  mathutil.Vec3{1, 2, 3},
		},
		{
			name: "pure translation",
			m:    mathutil.Mat4Translation(mathutil.Vec3{10, 20, 30}),
			tr:   mathutil.Vec3{1, 1, 1},
			want: mathutil.Vec3{11, 21, 31},
		},
		{
			name:  "parent rotated 90 about Z",
			m:     mathutil.FromMat3Translation(mathutil.RotZ(math.Pi/2), mathutil.Vec3{0, 0, 5}),
			pivot: mathutil.Vec3{1, 0, 0},
			pt:    mathutil.Vec3{0, 0, 0},
			tr:    mathutil.Vec3{1, 0, 0},
			want:  mathutil.Vec3{0, 2, 5},
		},
		{
			name:  "parent scaled",
			m:     mathutil.FromMat3Translation(mathutil.Mat3Diag(2, 3, 4), mathutil.Vec3{}),
			pivot: mathutil.Vec3{0.5, 0, 0},
			pt:    mathutil.Vec3{0, 0.5, 0},
			tr:    mathutil.Vec3{0, 0, 1},
			want:  mathutil.Vec3{1, 1.5, 4},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TransformPoint(tt.m, tt.pivot, tt.pt, tt.tr)
			if !relNear(got, tt.want, 1e-12) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTransformPointLists(t *testing.T) {
	id := mathutil.Mat4Identity()
	got, err := TransformPointLists(id[:], []float64{1, 2, 3}, []float64{0, 0, 0}, []float64{0, 0, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != [3]float64{1, 2, 3} {
		t.Errorf("got %v, want [1 2 3]", got)
	}

	if _, err := TransformPointLists(id[:9], []float64{0, 0, 0}, []float64{0, 0, 0}, []float64{0, 0, 0}); !errors.Is(err, mathutil.ErrShape) {
		t.Errorf("short matrix: err = %v, want ErrShape", err)
	}
	if _, err := TransformPointLists(id[:], []float64{0, 0}, []float64{0, 0, 0}, []float64{0, 0, 0}); !errors.Is(err, mathutil.ErrShape) {
		t.Errorf("short pivot: err = %v, want ErrShape", err)
	}
	if _, err := TransformPointLists(id[:], []float64{0, 0, 0}, []float64{0, 0, 0}, []float64{math.NaN(), 0, 0}); !errors.Is(err, mathutil.ErrNonFinite) {
		t.Errorf("NaN translate: err = %v, want ErrNonFinite", err)
	}
}

package euler

import (
	"errors"
	"math"
	"testing"

	"anim-loc-baker/internal/mathutil"
)

func TestOrderCodes(t *testing.T) {
	tests := []struct {
		code int
		name string
		axes [3]int
	}{
		{0, "xyz", [3]int{0, 1, 2}},
		{1, "yzx", [3]int{1, 2, 0}},
		{2, "zxy", [3]int{2, 0, 1}},
		{3, "xzy", [3]int{0, 2, 1}},
		{4, "yxz", [3]int{1, 0, 2}},
		{5, "zyx", [3]int{2, 1, 0}},
	}
	for _, tt := range tests {
		o, err := OrderFromCode(tt.code)
		if err != nil {
			t.Fatalf("OrderFromCode(%d): %v", tt.code, err)
		}
		if o.String() != tt.name {
			t.Errorf("code %d: String() = %q, want %q", tt.code, o.String(), tt.name)
		}
		a, b, c := o.Axes()
		if [3]int{a, b, c} != tt.axes {
			t.Errorf("%v: Axes() = %v, want %v", o, [3]int{a, b, c}, tt.axes)
		}
		parsed, err := ParseOrder(" " + tt.name + " ")
		if err != nil || parsed != o {
			t.Errorf("ParseOrder(%q) = %v, %v", tt.name, parsed, err)
		}
	}
}

func TestInvalidOrder(t *testing.T) {
	for _, code := range []int{-1, 6, 42} {
		if _, err := OrderFromCode(code); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("OrderFromCode(%d): err = %v, want ErrInvalidOrder", code, err)
		}
	}
	if _, err := ParseOrder("xxy"); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("ParseOrder(xxy): err = %v, want ErrInvalidOrder", err)
	}
	if _, err := DecomposeMatrix(mathutil.Mat4Identity(), Order(9)); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("DecomposeMatrix(order 9): err = %v, want ErrInvalidOrder", err)
	}
	if got := Order(7).String(); got != "Order(7)" {
		t.Errorf("Order(7).String() = %q", got)
	}
}

func TestReorderKeepsRotation(t *testing.T) {
	angles := mathutil.Vec3{30, 45, 60}.Radians()
	got, err := Reorder(angles, XYZ, ZYX)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !Compose(got, ZYX).ApproxEqual(Compose(angles, XYZ), tol) {
		t.Fatalf("reordered angles %v describe a different rotation", got.Degrees())
	}

	// Not a permutation of the input values.
	for _, v := range got {
		for _, w := range angles {
			if math.Abs(v-w) < 1e-3 {
				t.Errorf("reordered %v shares a value with input %v", got.Degrees(), angles.Degrees())
			}
		}
	}

	same, err := Reorder(angles, YZX, YZX)
	if err != nil || same != angles {
		t.Errorf("Reorder to same order = %v, %v; want input unchanged", same, err)
	}
}

func TestDecomposeList(t *testing.T) {
	m := toHost(mathutil.RotX(math.Pi / 4))
	got, err := DecomposeList(m[:], int(XYZ))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got[0]-45) > tol || math.Abs(got[1]) > tol || math.Abs(got[2]) > tol {
		t.Errorf("got %v, want [45 0 0]", got)
	}

	if _, err := DecomposeList(m[:15], 0); !errors.Is(err, mathutil.ErrShape) {
		t.Errorf("15 values: err = %v, want ErrShape", err)
	}
	if _, err := DecomposeList(m[:], 6); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("code 6: err = %v, want ErrInvalidOrder", err)
	}
	zero := make([]float64, 16)
	if _, err := DecomposeList(zero, 0); !errors.Is(err, ErrDegenerate) {
		t.Errorf("zero matrix: err = %v, want ErrDegenerate", err)
	}
}

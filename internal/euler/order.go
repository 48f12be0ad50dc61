package euler

import (
	"errors"
	"fmt"
	"strings"
)

// Order is the sequence in which the three elemental rotations are applied.
// Values match the host's rotateOrder attribute codes.
type Order int

const (
	XYZ Order = iota
	YZX
	ZXY
	XZY
	YXZ
	ZYX
)

// ErrInvalidOrder is returned for codes or names outside the six permutations.
var ErrInvalidOrder = errors.New("euler: invalid rotation order")

var orderNames = [...]string{"xyz", "yzx", "zxy", "xzy", "yxz", "zyx"}

// axes lists first, second and third applied axis (0=X, 1=Y, 2=Z).
var orderAxes = [...][3]int{
	{0, 1, 2},
	{1, 2, 0},
	{2, 0, 1},
	{0, 2, 1},
	{1, 0, 2},
	{2, 1, 0},
}

// Orders lists all six rotation orders in code order.
func Orders() []Order {
	return []Order{XYZ, YZX, ZXY, XZY, YXZ, ZYX}
}

func (o Order) Valid() bool {
	return o >= XYZ && o <= ZYX
}

func (o Order) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Order(%d)", int(o))
	}
	return orderNames[o]
}

// Axes returns the first, second and third applied axis.
func (o Order) Axes() (first, second, third int) {
	a := orderAxes[o]
	return a[0], a[1], a[2]
}

// cyclic reports whether the axis sequence is an even permutation of XYZ.
func (o Order) cyclic() bool {
	return o <= ZXY
}

// OrderFromCode validates a host rotateOrder code.
func OrderFromCode(code int) (Order, error) {
	o := Order(code)
	if !o.Valid() {
		return 0, fmt.Errorf("euler: code %d: %w", code, ErrInvalidOrder)
	}
	return o, nil
}

// ParseOrder accepts an order name in any case ("xyz", "ZYX", ...).
func ParseOrder(s string) (Order, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range orderNames {
		if n == name {
			return Order(i), nil
		}
	}
	return 0, fmt.Errorf("euler: %q: %w", s, ErrInvalidOrder)
}

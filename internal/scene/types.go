package scene

import (
	"anim-loc-baker/internal/euler"
	"anim-loc-baker/internal/mathutil"
)

// Sample is what the host reports for one object at one time.
type Sample struct {
	ParentMatrix         mathutil.Mat4 // parentMatrix, not the world matrix
	WorldMatrix          mathutil.Mat4
	RotatePivot          mathutil.Vec3
	RotatePivotTranslate mathutil.Vec3
	Translate            mathutil.Vec3
}

// Source is the read side of the host: selection, keyframes and per-time
// transform data. Implementations must be safe for concurrent reads.
type Source interface {
	Objects() []string
	Keyframes(obj string) []float64
	CurrentTime() float64
	RotationOrder(obj string) (euler.Order, error)
	Sample(obj string, t float64) (Sample, error)
}

// Sink receives finished locators. AddLocator returns the unique name the
// host assigned, which may differ from loc.Name.
type Sink interface {
	AddLocator(loc Locator) (string, error)
}

// Channel names a keyable locator attribute.
type Channel string

const (
	TranslateX Channel = "translateX"
	TranslateY Channel = "translateY"
	TranslateZ Channel = "translateZ"
	RotateX    Channel = "rotateX"
	RotateY    Channel = "rotateY"
	RotateZ    Channel = "rotateZ"
)

// TranslateChannels and RotateChannels are in X, Y, Z order.
var (
	TranslateChannels = [3]Channel{TranslateX, TranslateY, TranslateZ}
	RotateChannels    = [3]Channel{RotateX, RotateY, RotateZ}
)

// Key is one keyframe value.
type Key struct {
	Time  float64 `json:"time" yaml:"time"`
	Value float64 `json:"value" yaml:"value"`
}

// Locator is a proxy transform that carries a baked copy of an object's
// world-space translation and rotation.
type Locator struct {
	Name          string            `json:"name" yaml:"name"`
	Link          string            `json:"link" yaml:"link"`
	LocalScale    float64           `json:"local_scale" yaml:"local_scale"`
	RotationOrder euler.Order       `json:"rotate_order" yaml:"rotate_order"`
	Keys          map[Channel][]Key `json:"keys" yaml:"keys"`
}

// SetKey appends a key to channel ch.
func (l *Locator) SetKey(ch Channel, t, v float64) {
	if l.Keys == nil {
		l.Keys = make(map[Channel][]Key)
	}
	l.Keys[ch] = append(l.Keys[ch], Key{Time: t, Value: v})
}

// KeyCount returns the number of keys across all channels.
func (l *Locator) KeyCount() int {
	n := 0
	for _, keys := range l.Keys {
		n += len(keys)
	}
	return n
}

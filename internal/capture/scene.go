package capture

import (
	"math"
	"os"
	"sort"

	"github.com/pkg/errors"

	"anim-loc-baker/internal/euler"
	"anim-loc-baker/internal/mathutil"
	"anim-loc-baker/internal/scene"
)

// timeTolerance is how far a requested time may sit from a recorded one.
const timeTolerance = 1e-6

var (
	ErrUnknownObject = errors.New("capture: unknown object")
	ErrNoSample      = errors.New("capture: no sample at time")
)

type object struct {
	order   euler.Order
	keys    []float64
	samples map[float64]scene.Sample
}

// Scene is a loaded capture. It is read-only after Parse and safe for
// concurrent use as a scene.Source.
type Scene struct {
	current   float64
	selection []string
	objects   map[string]*object
}

// Load reads and validates a capture file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "capture: read %s", path)
	}
	var f File
	if err := unmarshal(path, data, &f); err != nil {
		return nil, errors.Wrapf(err, "capture: parse %s", path)
	}
	s, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "capture: %s", path)
	}
	return s, nil
}

// Parse validates every attribute list and builds a Scene.
func Parse(f File) (*Scene, error) {
	s := &Scene{
		current:   f.CurrentTime,
		selection: append([]string(nil), f.Selection...),
		objects:   make(map[string]*object, len(f.Objects)),
	}

	for name, od := range f.Objects {
		order, err := euler.OrderFromCode(od.RotateOrder)
		if err != nil {
			return nil, errors.Wrapf(err, "object %s", name)
		}
		obj := &object{
			order:   order,
			keys:    append([]float64(nil), od.Keyframes...),
			samples: make(map[float64]scene.Sample, len(od.Samples)),
		}
		for i, sd := range od.Samples {
			if _, dup := obj.samples[sd.Time]; dup {
				return nil, errors.Errorf("object %s: duplicate sample at time %g", name, sd.Time)
			}
			smp, err := parseSample(sd)
			if err != nil {
				return nil, errors.Wrapf(err, "object %s: sample %d (time %g)", name, i, sd.Time)
			}
			obj.samples[sd.Time] = smp
		}
		s.objects[name] = obj
	}

	for _, name := range s.selection {
		if _, ok := s.objects[name]; !ok {
			return nil, errors.Wrapf(ErrUnknownObject, "selection %q", name)
		}
	}
	return s, nil
}

func parseSample(sd SampleData) (scene.Sample, error) {
	var s scene.Sample
	var err error
	if s.ParentMatrix, err = mathutil.Mat4FromSlice(sd.ParentMatrix); err != nil {
		return s, errors.Wrap(err, "parent_matrix")
	}
	if s.WorldMatrix, err = mathutil.Mat4FromSlice(sd.WorldMatrix); err != nil {
		return s, errors.Wrap(err, "world_matrix")
	}
	if s.RotatePivot, err = vec(sd.RotatePivot); err != nil {
		return s, errors.Wrap(err, "rotate_pivot")
	}
	if s.RotatePivotTranslate, err = vec(sd.RotatePivotTranslate); err != nil {
		return s, errors.Wrap(err, "rotate_pivot_translate")
	}
	if s.Translate, err = vec(sd.Translate); err != nil {
		return s, errors.Wrap(err, "translate")
	}
	return s, nil
}

// vec treats an omitted list as the zero vector.
func vec(s []float64) (mathutil.Vec3, error) {
	if s == nil {
		return mathutil.Vec3{}, nil
	}
	return mathutil.Vec3FromSlice(s)
}

func (s *Scene) Objects() []string {
	return append([]string(nil), s.selection...)
}

func (s *Scene) CurrentTime() float64 {
	return s.current
}

func (s *Scene) Keyframes(obj string) []float64 {
	if o, ok := s.objects[obj]; ok {
		return append([]float64(nil), o.keys...)
	}
	return nil
}

func (s *Scene) RotationOrder(obj string) (euler.Order, error) {
	o, ok := s.objects[obj]
	if !ok {
		return 0, errors.Wrapf(ErrUnknownObject, "%q", obj)
	}
	return o.order, nil
}

// Sample returns the sample recorded at t, or the nearest one within
// timeTolerance of it.
func (s *Scene) Sample(obj string, t float64) (scene.Sample, error) {
	o, ok := s.objects[obj]
	if !ok {
		return scene.Sample{}, errors.Wrapf(ErrUnknownObject, "%q", obj)
	}
	if smp, ok := o.samples[t]; ok {
		return smp, nil
	}
	best := math.Inf(1)
	var smp scene.Sample
	for at, candidate := range o.samples {
		if d := math.Abs(at - t); d <= timeTolerance && d < best {
			best, smp = d, candidate
		}
	}
	if math.IsInf(best, 1) {
		return scene.Sample{}, errors.Wrapf(ErrNoSample, "%q at %g", obj, t)
	}
	return smp, nil
}

// Has reports whether the capture contains a node called name.
func (s *Scene) Has(name string) bool {
	_, ok := s.objects[name]
	return ok
}

// Names returns every object in the capture, selected or not.
func (s *Scene) Names() []string {
	names := make([]string, 0, len(s.objects))
	for name := range s.objects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WorldSpace reports whether every sample of obj has an identity parent
// matrix, i.e. the object is unparented or its parents never move.
func (s *Scene) WorldSpace(obj string) bool {
	o, ok := s.objects[obj]
	if !ok {
		return false
	}
	for _, smp := range o.samples {
		if !smp.ParentMatrix.IsIdentity() {
			return false
		}
	}
	return true
}

// SampleCount returns how many sample times are recorded for obj.
func (s *Scene) SampleCount(obj string) int {
	if o, ok := s.objects[obj]; ok {
		return len(o.samples)
	}
	return 0
}

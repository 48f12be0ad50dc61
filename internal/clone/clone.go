// Package clone bakes an object's animated world transform onto a locator.
package clone

import (
	"errors"
	"fmt"

	"anim-loc-baker/internal/euler"
	"anim-loc-baker/internal/sampling"
	"anim-loc-baker/internal/scene"
	"anim-loc-baker/internal/xform"
)

// ErrNoSelection is returned when there is nothing to clone.
var ErrNoSelection = errors.New("clone: select something first")

// DefaultLocalScale is the locator display scale.
const DefaultLocalScale = 1.0

// Options controls which channels are baked and when.
type Options struct {
	Translate  bool
	Rotate     bool
	LocalScale float64
	Policy     sampling.Policy
}

// DefaultOptions bakes translation and rotation at the object's own keys.
func DefaultOptions() Options {
	return Options{
		Translate:  true,
		Rotate:     true,
		LocalScale: DefaultLocalScale,
		Policy:     sampling.Policy{Mode: sampling.ModeKeys},
	}
}

// Object builds the locator for obj. Keys are written in sample-time order.
// Warnings are non-fatal notes such as falling back to the current frame.
func Object(src scene.Source, obj string, opts Options) (scene.Locator, []string, error) {
	order, err := src.RotationOrder(obj)
	if err != nil {
		return scene.Locator{}, nil, fmt.Errorf("clone: %s: %w", obj, err)
	}

	times, warning, err := sampling.Resolve(src.Keyframes(obj), src.CurrentTime(), opts.Policy)
	var warnings []string
	if warning != "" {
		warnings = append(warnings, fmt.Sprintf("%s: %s", obj, warning))
	}
	if err != nil {
		return scene.Locator{}, warnings, fmt.Errorf("clone: %s: %w", obj, err)
	}

	scale := opts.LocalScale
	if scale == 0 {
		scale = DefaultLocalScale
	}
	loc := scene.Locator{
		Name:          obj + scene.LocatorSuffix,
		Link:          obj,
		LocalScale:    scale,
		RotationOrder: order,
	}

	for _, t := range times {
		s, err := src.Sample(obj, t)
		if err != nil {
			return scene.Locator{}, warnings, fmt.Errorf("clone: %s at %g: %w", obj, t, err)
		}

		if opts.Translate {
			p := xform.TransformPoint(s.ParentMatrix, s.RotatePivot, s.RotatePivotTranslate, s.Translate)
			for i, ch := range scene.TranslateChannels {
				loc.SetKey(ch, t, p[i])
			}
		}

		if opts.Rotate {
			angles, err := euler.DecomposeMatrix(s.WorldMatrix, order)
			if err != nil {
				return scene.Locator{}, warnings, fmt.Errorf("clone: %s at %g: %w", obj, t, err)
			}
			for i, ch := range scene.RotateChannels {
				loc.SetKey(ch, t, angles[i])
			}
		}
	}

	return loc, warnings, nil
}

// Selection returns src's selected objects or ErrNoSelection.
func Selection(src scene.Source) ([]string, error) {
	objs := src.Objects()
	if len(objs) == 0 {
		return nil, ErrNoSelection
	}
	return objs, nil
}

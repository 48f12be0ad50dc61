// Package sampling turns an object's keyframe times into the list of times
// at which its transform is sampled and baked.
package sampling

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Mode selects how sample times are derived from keyframes.
type Mode string

const (
	ModeKeys   Mode = "keys"   // the object's own keyframe times
	ModeBake   Mode = "bake"   // every whole frame between first and last key
	ModeStride Mode = "stride" // fixed stride between first and last key
)

// NoKeysWarning is reported when an object has no keyframes.
const NoKeysWarning = "no keyframes detected on object, defaulting to current frame only"

const (
	// TimeResolution is the grid generated sample times are snapped to.
	TimeResolution = 1e-6
	ticksPerFrame  = 1 / TimeResolution

	// MaxSamples bounds the number of times a bake or stride policy may
	// generate for one object.
	MaxSamples = 1_000_000
)

var (
	ErrEmptyRange = errors.New("sampling: no sample times left")
	ErrStride     = errors.New("sampling: stride must be positive")
	ErrMode       = errors.New("sampling: unknown mode")
	ErrRange      = errors.New("sampling: crop start after end")
	ErrTooMany    = errors.New("sampling: too many sample times")
)

// Range is an inclusive time range, typically the timeline selection.
type Range struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
}

func (r Range) Contains(t float64) bool {
	return t >= r.Start && t <= r.End
}

// Policy is the sampling configuration for one run.
type Policy struct {
	Mode   Mode    `json:"mode" yaml:"mode"`
	Stride float64 `json:"stride" yaml:"stride"`
	Crop   *Range  `json:"crop,omitempty" yaml:"crop,omitempty"`
}

// Validate checks the policy without any keyframe data.
func (p Policy) Validate() error {
	switch p.Mode {
	case "", ModeKeys, ModeBake:
	case ModeStride:
		if !(p.Stride > 0) || math.IsInf(p.Stride, 0) {
			return fmt.Errorf("%w: %g", ErrStride, p.Stride)
		}
		if p.Stride < TimeResolution {
			return fmt.Errorf("%w: %g is finer than %g", ErrStride, p.Stride, TimeResolution)
		}
	default:
		return fmt.Errorf("%w: %q", ErrMode, p.Mode)
	}
	if p.Crop != nil && p.Crop.Start > p.Crop.End {
		return fmt.Errorf("%w: %g > %g", ErrRange, p.Crop.Start, p.Crop.End)
	}
	return nil
}

// Resolve returns sorted, unique sample times for one object. An object with
// no keys is sampled at current only and a warning is returned alongside.
func Resolve(keys []float64, current float64, p Policy) ([]float64, string, error) {
	if err := p.Validate(); err != nil {
		return nil, "", err
	}

	var warning string
	times := unique(keys)
	if len(times) == 0 {
		times = []float64{current}
		warning = NoKeysWarning
	} else {
		first, last := times[0], times[len(times)-1]
		var err error
		switch p.Mode {
		case ModeBake:
			times, err = wholeFrames(first, last)
		case ModeStride:
			times, err = strided(first, last, p.Stride)
		}
		if err != nil {
			return nil, "", err
		}
	}

	if p.Crop != nil {
		kept := times[:0]
		for _, t := range times {
			if p.Crop.Contains(t) {
				kept = append(kept, t)
			}
		}
		times = kept
	}
	if len(times) == 0 {
		return nil, warning, ErrEmptyRange
	}
	return times, warning, nil
}

func unique(keys []float64) []float64 {
	if len(keys) == 0 {
		return nil
	}
	out := append([]float64(nil), keys...)
	sort.Float64s(out)
	n := 1
	for _, t := range out[1:] {
		if t != out[n-1] {
			out[n] = t
			n++
		}
	}
	return out[:n]
}

// wholeFrames truncates both ends toward zero, matching the host's int().
func wholeFrames(first, last float64) ([]float64, error) {
	lo, hi := math.Trunc(first), math.Trunc(last)
	if hi-lo >= MaxSamples {
		return nil, fmt.Errorf("%w: %g frames from %g to %g", ErrTooMany, hi-lo+1, lo, hi)
	}
	n := int(hi - lo)
	out := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		out = append(out, lo+float64(i))
	}
	return out, nil
}

// strided always ends on last, even when the stride does not divide the span.
// Offsets from first are snapped to TimeResolution so that a stride of 0.1
// lands on 0.3 rather than 0.30000000000000004.
func strided(first, last, stride float64) ([]float64, error) {
	const eps = 1e-9
	span := last - first
	if span/stride >= MaxSamples {
		return nil, fmt.Errorf("%w: %g over %g frames exceeds %d samples", ErrStride, stride, span, MaxSamples)
	}
	out := make([]float64, 0, int(span/stride)+2)
	for n := 0; ; n++ {
		t := first + snap(float64(n)*stride)
		if t >= last-eps {
			break
		}
		out = append(out, t)
	}
	return append(out, last), nil
}

func snap(t float64) float64 {
	return math.Round(t*ticksPerFrame) / ticksPerFrame
}

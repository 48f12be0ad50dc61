package main

import (
	"fmt"
	"math"
	"os"
	"sort"

	"anim-loc-baker/internal/capture"
	"anim-loc-baker/internal/euler"
	"anim-loc-baker/internal/mathutil"
)

// Reports, per object, how far decompose→compose drifts from the captured
// world rotation, how many samples sit in gimbal lock and how many carry a
// mirrored (negative scale) world matrix.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: checkeuler <capture.yaml|capture.json>")
		os.Exit(2)
	}

	s, err := capture.Load(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	worst := 0.0
	for _, name := range s.Names() {
		order, _ := s.RotationOrder(name)
		times := append([]float64(nil), s.Keyframes(name)...)
		sort.Float64s(times)

		maxErr := 0.0
		gimbal, mirrored, mismatched, checked, failed := 0, 0, 0, 0, 0
		for _, t := range times {
			smp, err := s.Sample(name, t)
			if err != nil {
				continue
			}
			want, err := euler.ExtractRotation(smp.WorldMatrix)
			if err != nil {
				failed++
				continue
			}
			deg, err := euler.DecomposeMatrix(smp.WorldMatrix, order)
			if err != nil {
				failed++
				continue
			}
			got := euler.Compose(deg.Radians(), order)
			for i := range got {
				maxErr = math.Max(maxErr, math.Abs(got[i]-want[i]))
			}
			if !got.ApproxEqual(want, 1e-6) {
				mismatched++
			}
			if smp.WorldMatrix.Rotation().Det() < 0 {
				mirrored++
			}
			_, second, _ := order.Axes()
			if mathutil.AngleDist(math.Abs(deg[second]), 90) < 1e-3 {
				gimbal++
			}
			checked++
		}
		worst = math.Max(worst, maxErr)
		fmt.Printf("%-24s order=%s samples=%d maxErr=%.3g mismatched=%d gimbal=%d mirrored=%d degenerate=%d\n",
			name, order, checked, maxErr, mismatched, gimbal, mirrored, failed)
	}

	fmt.Printf("Worst reconstruction error: %.3g\n", worst)
	if worst > 1e-6 {
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"sort"

	"anim-loc-baker/internal/capture"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: inspect <capture.yaml|capture.json> [baked output]")
		os.Exit(2)
	}

	s, err := capture.Load(os.Args[1])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	selected := map[string]bool{}
	for _, name := range s.Objects() {
		selected[name] = true
	}
	names := s.Names()
	fmt.Printf("Objects: %d, Selected: %d, Current time: %g\n", len(names), len(selected), s.CurrentTime())

	for _, name := range names {
		order, _ := s.RotationOrder(name)
		keys := s.Keyframes(name)
		mark := " "
		if selected[name] {
			mark = "*"
		}
		space := "parented"
		if s.WorldSpace(name) {
			space = "world"
		}
		fmt.Printf(" %s %-24s order=%s keys=%d samples=%d space=%s", mark, name, order, len(keys), s.SampleCount(name), space)
		if len(keys) > 0 {
			sorted := append([]float64(nil), keys...)
			sort.Float64s(sorted)
			fmt.Printf(" range=[%g, %g]", sorted[0], sorted[len(sorted)-1])
		}
		fmt.Println()
	}

	if len(os.Args) < 3 {
		return
	}

	locators, err := capture.LoadOutput(os.Args[2])
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("\nLocators: %d\n", len(locators))
	for _, loc := range locators {
		fmt.Printf("  %-24s link=%s order=%s scale=%g keys=%d\n",
			loc.Name, loc.Link, loc.RotationOrder, loc.LocalScale, loc.KeyCount())
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"anim-loc-baker/internal/batch"
	"anim-loc-baker/internal/capture"
	"anim-loc-baker/internal/clone"
	"anim-loc-baker/internal/config"
	"anim-loc-baker/internal/preview"
	"anim-loc-baker/internal/sampling"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json, .yaml)")
	capturePath := flag.String("capture", "", "Host scene capture (.json, .yaml)")
	output := flag.String("output", "", "Baked locator file (default: <capture>_baked.<ext>)")
	noTranslate := flag.Bool("no-translate", false, "Do not bake translation")
	noRotate := flag.Bool("no-rotate", false, "Do not bake rotation")
	scale := flag.Float64("scale", 0, "Locator local scale (default: 1)")
	mode := flag.String("mode", "", "Sampling: keys, bake or stride (default: keys)")
	stride := flag.Float64("stride", 0, "Frame stride for -mode stride")
	crop := flag.String("crop", "", "Only sample times in start:end (timeline selection)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	previews := flag.Bool("previews", false, "Write a WebP curve sheet per locator")
	previewDir := flag.String("preview-dir", "", "Preview directory (default: next to output)")
	previewSize := flag.Int("preview-size", 0, "Preview width in pixels (default: 512)")
	backdrop := flag.String("backdrop", "", "PNG, JPEG or TGA drawn behind preview curves")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	flags := config.Flags{
		Capture:     *capturePath,
		Output:      *output,
		PreviewDir:  *previewDir,
		Backdrop:    *backdrop,
		NoTranslate: *noTranslate,
		NoRotate:    *noRotate,
		LocalScale:  *scale,
		Mode:        *mode,
		Stride:      *stride,
		Workers:     *workers,
		Previews:    *previews,
		PreviewSize: *previewSize,
	}
	if *crop != "" {
		start, end, err := parseCrop(*crop)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -crop: %v\n", err)
			os.Exit(1)
		}
		flags.CropStart, flags.CropEnd = &start, &end
	}

	// CLI flags override config file
	cfg.Resolve(flags)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	src, err := capture.Load(cfg.Capture)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading capture: %v\n", err)
		os.Exit(1)
	}

	objects, err := clone.Selection(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Clone animation to locators: %s\n", cfg.Capture)
	fmt.Printf("Objects: %d, Workers: %d, Sampling: %s\n", len(objects), cfg.Workers, describePolicy(cfg.Sampling))
	fmt.Printf("Output: %s\n", cfg.Output)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		Options: clone.Options{
			Translate:  *cfg.Translate,
			Rotate:     *cfg.Rotate,
			LocalScale: cfg.LocalScale,
			Policy:     cfg.Sampling,
		},
		Workers:  cfg.Workers,
		Progress: 2 * time.Second,
	}

	results := batch.Run(batchCfg, src, objects)

	out := capture.NewOutput(src.Has)
	if err := batch.Commit(out, results); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := out.Write(cfg.Output); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}

	previewPaths := map[string]string{}
	if cfg.Previews {
		previewPaths = writePreviews(cfg, results)
	}

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Finished in %.3f seconds.\n", elapsed.Seconds())

	// Count results
	success, failed, keys := 0, 0, 0
	var errors []batch.Result
	for _, r := range results {
		for _, w := range r.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
		if r.Success {
			success++
			keys += r.Locator.KeyCount()
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Baked: %d/%d objects, %d keys\n", success, len(objects), keys)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Object, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(filepath.Dir(cfg.Output), "manifest.json")
	if err := batch.WriteManifest(manifestPath, results, previewPaths); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// writePreviews renders one sheet per baked locator and returns paths
// relative to the output directory, keyed by source object.
func writePreviews(cfg config.Config, results []batch.Result) map[string]string {
	opts := preview.Options{
		Width:       cfg.PreviewSize,
		Height:      cfg.PreviewSize / 2,
		Supersample: cfg.Supersample,
	}
	if cfg.Backdrop != "" {
		img, err := preview.LoadBackdrop(cfg.Backdrop)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			opts.Backdrop = img
		}
	}

	paths := map[string]string{}
	outDir := filepath.Dir(cfg.Output)
	for _, r := range results {
		if !r.Success {
			continue
		}
		path := filepath.Join(cfg.PreviewDir, r.Locator.Name+".webp")
		if err := preview.WriteWebP(path, preview.RenderCurves(r.Locator, opts)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		if rel, err := filepath.Rel(outDir, path); err == nil {
			path = filepath.ToSlash(rel)
		}
		paths[r.Object] = path
	}
	fmt.Printf("Previews: %d written to %s\n", len(paths), cfg.PreviewDir)
	return paths
}

func parseCrop(s string) (float64, float64, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want start:end, got %q", s)
	}
	start, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	end, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func describePolicy(p sampling.Policy) string {
	s := string(p.Mode)
	if p.Mode == sampling.ModeStride {
		s += fmt.Sprintf(" every %g", p.Stride)
	}
	if p.Crop != nil {
		s += fmt.Sprintf(", cropped to %g..%g", p.Crop.Start, p.Crop.End)
	}
	return s
}

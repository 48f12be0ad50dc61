package batch

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"anim-loc-baker/internal/clone"
	"anim-loc-baker/internal/scene"
)

// Config holds all shared settings for a batch run.
type Config struct {
	Options  clone.Options
	Workers  int
	Progress time.Duration // 0 disables progress lines
}

// Result holds the outcome of processing one object.
type Result struct {
	Object   string
	Locator  scene.Locator
	Warnings []string
	Samples  int
	Success  bool
	Error    string
}

// Run bakes all objects using a worker pool. Samples are independent, so
// objects are processed in any order; results keep the input order.
func Run(cfg Config, src scene.Source, objects []string) []Result {
	total := len(objects)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Printf("  [%d/%d] %.1f objects/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	objChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range objChan {
				results[idx] = processObject(cfg, src, objects[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range objects {
		objChan <- i
	}
	close(objChan)

	wg.Wait()
	close(done)

	return results
}

func processObject(cfg Config, src scene.Source, obj string) Result {
	loc, warnings, err := clone.Object(src, obj, cfg.Options)
	if err != nil {
		return Result{
			Object:   obj,
			Warnings: warnings,
			Error:    err.Error(),
		}
	}

	samples := 0
	for _, keys := range loc.Keys {
		if len(keys) > samples {
			samples = len(keys)
		}
	}

	return Result{
		Object:   obj,
		Locator:  loc,
		Warnings: warnings,
		Samples:  samples,
		Success:  true,
	}
}

// Commit hands successful locators to sink in input order and records the
// name the host assigned. It stops at the first sink error.
func Commit(sink scene.Sink, results []Result) error {
	for i := range results {
		r := &results[i]
		if !r.Success {
			continue
		}
		name, err := sink.AddLocator(r.Locator)
		if err != nil {
			return fmt.Errorf("batch: add locator for %s: %w", r.Object, err)
		}
		r.Locator.Name = name
	}
	return nil
}

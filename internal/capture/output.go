package capture

import (
	"os"
	"sync"

	"github.com/pkg/errors"

	"anim-loc-baker/internal/scene"
)

// outputFile is the on-disk schema of baked results.
type outputFile struct {
	Locators []scene.Locator `json:"locators" yaml:"locators"`
}

// Output collects baked locators and writes them back out for the host to
// import. It implements scene.Sink.
type Output struct {
	mu       sync.Mutex
	taken    func(string) bool
	used     map[string]bool
	locators []scene.Locator
}

// NewOutput returns an empty Output. taken reports names already present in
// the host scene; it may be nil.
func NewOutput(taken func(string) bool) *Output {
	return &Output{
		taken: taken,
		used:  make(map[string]bool),
	}
}

// AddLocator stores loc under a name unique among existing nodes and earlier
// locators.
func (o *Output) AddLocator(loc scene.Locator) (string, error) {
	if loc.Link == "" {
		return "", errors.Errorf("capture: locator %q has no link", loc.Name)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	base := loc.Name
	if base == "" {
		base = loc.Link + scene.LocatorSuffix
	}
	loc.Name = scene.UniqueName(base, func(name string) bool {
		return o.used[name] || (o.taken != nil && o.taken(name))
	})
	o.used[loc.Name] = true
	o.locators = append(o.locators, loc)
	return loc.Name, nil
}

// Locators returns the stored locators in insertion order.
func (o *Output) Locators() []scene.Locator {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]scene.Locator(nil), o.locators...)
}

// Write stores the locators as YAML or JSON depending on path's extension.
func (o *Output) Write(path string) error {
	data, err := marshal(path, outputFile{Locators: o.Locators()})
	if err != nil {
		return errors.Wrapf(err, "capture: encode %s", path)
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "capture: write %s", path)
}

// LoadOutput reads locators written by Output.Write.
func LoadOutput(path string) ([]scene.Locator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "capture: read %s", path)
	}
	var f outputFile
	if err := unmarshal(path, data, &f); err != nil {
		return nil, errors.Wrapf(err, "capture: parse %s", path)
	}
	return f.Locators, nil
}

// Package capture reads host scene exports and writes baked locators.
//
// A capture is what the host reports for the selected objects: rotate
// order, keyframe times and, per sampled time, the parent and world matrices
// plus the pivot and translate vectors. Files are YAML (.yaml, .yml) or JSON.
package capture

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the on-disk capture schema.
type File struct {
	CurrentTime float64               `json:"current_time" yaml:"current_time"`
	Selection   []string              `json:"selection" yaml:"selection"`
	Objects     map[string]ObjectData `json:"objects" yaml:"objects"`
}

// ObjectData holds one object's attributes.
type ObjectData struct {
	RotateOrder int          `json:"rotate_order" yaml:"rotate_order"`
	Keyframes   []float64    `json:"keyframes" yaml:"keyframes"`
	Samples     []SampleData `json:"samples" yaml:"samples"`
}

// SampleData holds raw attribute lists queried at Time.
type SampleData struct {
	Time                 float64   `json:"time" yaml:"time"`
	ParentMatrix         []float64 `json:"parent_matrix" yaml:"parent_matrix"`
	WorldMatrix          []float64 `json:"world_matrix" yaml:"world_matrix"`
	RotatePivot          []float64 `json:"rotate_pivot" yaml:"rotate_pivot"`
	RotatePivotTranslate []float64 `json:"rotate_pivot_translate" yaml:"rotate_pivot_translate"`
	Translate            []float64 `json:"translate" yaml:"translate"`
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func unmarshal(path string, data []byte, v interface{}) error {
	if isYAML(path) {
		return errors.Wrap(yaml.Unmarshal(data, v), "yaml")
	}
	return errors.Wrap(json.Unmarshal(data, v), "json")
}

func marshal(path string, v interface{}) ([]byte, error) {
	if isYAML(path) {
		data, err := yaml.Marshal(v)
		return data, errors.Wrap(err, "yaml")
	}
	data, err := json.MarshalIndent(v, "", "  ")
	return data, errors.Wrap(err, "json")
}

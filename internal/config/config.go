package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"anim-loc-baker/internal/sampling"
)

// Config holds all configurable paths and bake settings.
type Config struct {
	// Paths
	Capture    string `json:"capture" yaml:"capture"`
	Output     string `json:"output" yaml:"output"`
	PreviewDir string `json:"preview_dir" yaml:"preview_dir"`
	Backdrop   string `json:"backdrop" yaml:"backdrop"`

	// Bake settings. Translate and Rotate are pointers so a file can turn
	// either off while an absent key keeps the default (on).
	Translate  *bool           `json:"translate" yaml:"translate"`
	Rotate     *bool           `json:"rotate" yaml:"rotate"`
	LocalScale float64         `json:"local_scale" yaml:"local_scale"`
	Sampling   sampling.Policy `json:"sampling" yaml:"sampling"`
	Workers    int             `json:"workers" yaml:"workers"`

	// Preview settings
	Previews    bool `json:"previews" yaml:"previews"`
	PreviewSize int  `json:"preview_size" yaml:"preview_size"`
	Supersample int  `json:"supersample" yaml:"supersample"`
}

// Load reads a JSON or YAML (.yaml, .yml) config file.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: read %s", path)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: parse %s", path)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Zero values mean "not given".
type Flags struct {
	Capture     string
	Output      string
	PreviewDir  string
	Backdrop    string
	NoTranslate bool
	NoRotate    bool
	LocalScale  float64
	Mode        string
	Stride      float64
	CropStart   *float64
	CropEnd     *float64
	Workers     int
	Previews    bool
	PreviewSize int
}

// Resolve applies flag overrides and fills in defaults. A relative backdrop
// from the config file is taken relative to the capture; one given as a flag
// is left relative to the working directory.
func (c *Config) Resolve(flags Flags) {
	backdropFromFile := c.Backdrop != "" && flags.Backdrop == ""

	// CLI flags override config file
	if flags.Capture != "" {
		c.Capture = flags.Capture
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.PreviewDir != "" {
		c.PreviewDir = flags.PreviewDir
	}
	if flags.Backdrop != "" {
		c.Backdrop = flags.Backdrop
	}
	if flags.NoTranslate {
		c.Translate = boolPtr(false)
	}
	if flags.NoRotate {
		c.Rotate = boolPtr(false)
	}
	if flags.LocalScale > 0 {
		c.LocalScale = flags.LocalScale
	}
	if flags.Mode != "" {
		c.Sampling.Mode = sampling.Mode(flags.Mode)
	}
	if flags.Stride > 0 {
		c.Sampling.Stride = flags.Stride
	}
	if flags.CropStart != nil || flags.CropEnd != nil {
		crop := sampling.Range{}
		if c.Sampling.Crop != nil {
			crop = *c.Sampling.Crop
		}
		if flags.CropStart != nil {
			crop.Start = *flags.CropStart
		}
		if flags.CropEnd != nil {
			crop.End = *flags.CropEnd
		}
		c.Sampling.Crop = &crop
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Previews {
		c.Previews = true
	}
	if flags.PreviewSize > 0 {
		c.PreviewSize = flags.PreviewSize
	}

	// Resolve output paths next to the capture
	base := filepath.Dir(c.Capture)
	if c.Output == "" && c.Capture != "" {
		stem := strings.TrimSuffix(filepath.Base(c.Capture), filepath.Ext(c.Capture))
		c.Output = filepath.Join(base, stem+"_baked"+filepath.Ext(c.Capture))
	}
	if c.PreviewDir == "" {
		c.PreviewDir = filepath.Join(filepath.Dir(c.Output), "previews")
	}
	if backdropFromFile && !filepath.IsAbs(c.Backdrop) {
		c.Backdrop = filepath.Join(base, c.Backdrop)
	}

	// Defaults for bake settings
	if c.Translate == nil {
		c.Translate = boolPtr(true)
	}
	if c.Rotate == nil {
		c.Rotate = boolPtr(true)
	}
	if c.LocalScale <= 0 {
		c.LocalScale = 1
	}
	if c.Sampling.Mode == "" {
		c.Sampling.Mode = sampling.ModeKeys
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
}

// Validate reports settings that would make a run fail.
func (c *Config) Validate() error {
	if c.Capture == "" {
		return errors.New("config: no capture file given")
	}
	if c.Translate != nil && c.Rotate != nil && !*c.Translate && !*c.Rotate {
		return errors.New("config: translate and rotate are both disabled")
	}
	return errors.Wrap(c.Sampling.Validate(), "config")
}

func boolPtr(b bool) *bool {
	return &b
}

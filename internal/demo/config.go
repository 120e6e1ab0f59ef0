// Package demo holds the configuration shared by the example programs.
package demo

import (
	"encoding/json"
	"os"

	"github.com/phanxgames/scrollview"
	"github.com/pkg/errors"
)

// Config is the JSON configuration accepted by the examples' -config flag.
// Missing fields keep their Default values.
type Config struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	ShowFPS   bool    `json:"showFPS"`
	Debug     bool    `json:"debug"`
	Bounce    bool    `json:"bounce"`
	SnapBack  bool    `json:"snapBack"`
	Clip      bool    `json:"clip"`
	Direction string  `json:"direction"`
	MinZoom   float64 `json:"minZoom"`
	MaxZoom   float64 `json:"maxZoom"`
	// DPI overrides the detected screen density when positive.
	DPI float64 `json:"dpi"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Width:     800,
		Height:    600,
		ShowFPS:   true,
		Bounce:    true,
		Clip:      true,
		Direction: scrollview.DirectionBoth.String(),
		MinZoom:   scrollview.DefaultMinScale,
		MaxZoom:   scrollview.DefaultMaxScale,
	}
}

// Load reads a Config from path. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	return Parse(data)
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("config: invalid window size %dx%d", c.Width, c.Height)
	}
	if _, ok := scrollview.ParseDirection(c.Direction); !ok {
		return errors.Errorf("config: unknown direction %q", c.Direction)
	}
	if c.MinZoom <= 0 || c.MaxZoom < c.MinZoom {
		return errors.Errorf("config: invalid zoom range [%g, %g]", c.MinZoom, c.MaxZoom)
	}
	return nil
}

// Apply configures v. The config must be valid.
func (c Config) Apply(v *scrollview.ScrollView) {
	d, _ := scrollview.ParseDirection(c.Direction)
	v.SetDirection(d)
	v.SetBounceable(c.Bounce)
	v.SetClippingToBounds(c.Clip)
	v.SnapBack = c.SnapBack
	v.SetMinScale(c.MinZoom)
	v.SetMaxScale(c.MaxZoom)
	if c.DPI > 0 {
		v.DPI = c.DPI
	}
}

// RunConfig returns the window settings for title.
func (c Config) RunConfig(title string) scrollview.RunConfig {
	return scrollview.RunConfig{
		Title:     title,
		Width:     c.Width,
		Height:    c.Height,
		ShowFPS:   c.ShowFPS,
		Resizable: true,
	}
}

// LoadScript reads a test script for Scene.SetTestRunner. An empty path
// returns nil.
func LoadScript(path string) (*scrollview.TestRunner, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	return scrollview.LoadTestScript(data)
}

// Package config loads runtime settings for the scene commands.
//
// Settings start from Default, are overlaid by an optional TOML file, and
// finally by command-line flags. The scene itself is not configurable.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"orbitlight/gfx"
	"orbitlight/internal/logx"

	"github.com/pelletier/go-toml/v2"
)

// ErrUnknownFormat reports a file extension with no known encoding.
var ErrUnknownFormat = errors.New("unknown file format")

type Window struct {
	Title string `toml:"title"`
	Scale int    `toml:"scale"`
	TPS   int    `toml:"tps"`
}

type Headless struct {
	Hz        int    `toml:"hz"`
	Ticks     uint64 `toml:"ticks"`
	FixedStep bool   `toml:"fixed_step"`
}

type Render struct {
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	Mode      string `toml:"mode"`
	Depth     bool   `toml:"depth"`
	HUD       bool   `toml:"hud"`
	Wireframe bool   `toml:"wireframe"`
}

type Log struct {
	Level string `toml:"level"`
	Color bool   `toml:"color"`
}

// Config is the full runtime configuration.
type Config struct {
	Window   Window   `toml:"window"`
	Headless Headless `toml:"headless"`
	Render   Render   `toml:"render"`
	Log      Log      `toml:"log"`
}

func Default() Config {
	return Config{
		Window:   Window{Scale: 2, TPS: 60},
		Headless: Headless{Hz: 60, Ticks: 120},
		Render: Render{
			Width:  480,
			Height: 320,
			Mode:   gfx.RenderSolidFlat.String(),
			Depth:  true,
			HUD:    true,
		},
		Log: Log{Level: "warn", Color: true},
	}
}

// Load reads path over the defaults. Only .toml files are accepted.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".toml" {
		return cfg, fmt.Errorf("config %s: %w", path, ErrUnknownFormat)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := Decode(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays TOML data onto cfg. Unknown keys are rejected.
func Decode(b []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Encode writes cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// RenderMode returns the parsed render mode.
func (c Config) RenderMode() gfx.RenderMode {
	m, _ := gfx.ParseRenderMode(c.Render.Mode)
	return m
}

// Validate rejects sizes and rates that cannot run.
func (c Config) Validate() error {
	var errs []error
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		errs = append(errs, fmt.Errorf("render size %dx%d must be positive", c.Render.Width, c.Render.Height))
	}
	if c.Render.Width > 4096 || c.Render.Height > 4096 {
		errs = append(errs, fmt.Errorf("render size %dx%d too large", c.Render.Width, c.Render.Height))
	}
	if _, ok := gfx.ParseRenderMode(c.Render.Mode); !ok {
		errs = append(errs, fmt.Errorf("render mode %q: want wireframe, flat or vertex", c.Render.Mode))
	}
	if c.Window.Scale <= 0 {
		errs = append(errs, fmt.Errorf("window scale %d must be positive", c.Window.Scale))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps %d must be positive", c.Window.TPS))
	}
	if c.Headless.Hz <= 0 {
		errs = append(errs, fmt.Errorf("headless hz %d must be positive", c.Headless.Hz))
	}
	if _, err := logx.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Package sceneexport dumps the entities of a world to TOML or YAML.
package sceneexport

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"orbitlight/ecs"
	"orbitlight/gfx"
	"orbitlight/internal/config"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format.
type Format uint8

const (
	TOML Format = iota + 1
	YAML
)

func (f Format) String() string {
	switch f {
	case TOML:
		return "toml"
	case YAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return 0, fmt.Errorf("export %s: %w", path, config.ErrUnknownFormat)
}

// Scene is the exported document.
type Scene struct {
	Variant  string   `toml:"variant" yaml:"variant"`
	Entities []Entity `toml:"entity" yaml:"entities"`
}

type Entity struct {
	ID          int32      `toml:"id" yaml:"id"`
	Name        string     `toml:"name" yaml:"name"`
	Components  []string   `toml:"components" yaml:"components"`
	Translation [3]float32 `toml:"translation" yaml:"translation,flow"`
	Rotation    [4]float32 `toml:"rotation" yaml:"rotation,flow"`
	Scale       [3]float32 `toml:"scale" yaml:"scale,flow"`

	Mesh      string `toml:"mesh,omitempty" yaml:"mesh,omitempty"`
	Color     string `toml:"color,omitempty" yaml:"color,omitempty"`
	Wireframe string `toml:"wireframe,omitempty" yaml:"wireframe,omitempty"`

	Light    *Light    `toml:"light,omitempty" yaml:"light,omitempty"`
	Camera   *Camera   `toml:"camera,omitempty" yaml:"camera,omitempty"`
	Fog      *Fog      `toml:"fog,omitempty" yaml:"fog,omitempty"`
	Cascades []float32 `toml:"cascades,omitempty" yaml:"cascades,omitempty,flow"`
}

type Light struct {
	Illuminance float32 `toml:"illuminance" yaml:"illuminance"`
	Shadows     bool    `toml:"shadows" yaml:"shadows"`
}

type Camera struct {
	FOVYRad float32  `toml:"fov_y" yaml:"fov_y"`
	Near    float32  `toml:"near" yaml:"near"`
	Far     float32  `toml:"far" yaml:"far"`
	EV100   *float32 `toml:"ev100,omitempty" yaml:"ev100,omitempty"`
}

type Fog struct {
	Color   string  `toml:"color" yaml:"color"`
	Density float32 `toml:"density" yaml:"density"`
}

// Snapshot copies the state of every live entity of w.
func Snapshot(variant string, w *ecs.World) Scene {
	s := Scene{Variant: variant}
	w.Query(0, func(e ecs.Entity, b *ecs.Bundle) {
		s.Entities = append(s.Entities, entityOf(e, b))
	})
	return s
}

func entityOf(e ecs.Entity, b *ecs.Bundle) Entity {
	t := b.Transform
	out := Entity{
		ID:          int32(e),
		Name:        b.Name,
		Components:  strings.Split(b.Tags().String(), "|"),
		Translation: [3]float32{t.Translation.X, t.Translation.Y, t.Translation.Z},
		Rotation:    [4]float32{t.Rotation.X, t.Rotation.Y, t.Rotation.Z, t.Rotation.W},
		Scale:       [3]float32{t.Scale.X, t.Scale.Y, t.Scale.Z},
	}
	if b.Tags() == 0 {
		out.Components = nil
	}
	if b.Mesh != nil {
		out.Mesh = b.Mesh.Name
		out.Color = hex(b.Material.BaseColor)
	}
	if b.Wireframe != nil {
		out.Wireframe = hex(b.Wireframe.Color)
	}
	if b.DirectionalLight != nil {
		out.Light = &Light{
			Illuminance: b.DirectionalLight.Illuminance,
			Shadows:     b.DirectionalLight.ShadowsEnabled,
		}
	}
	if b.Shadows != nil {
		out.Cascades = b.Shadows.Bounds()
	}
	if b.Camera != nil {
		out.Camera = &Camera{FOVYRad: b.Camera.FOVYRad, Near: b.Camera.Near, Far: b.Camera.Far}
		if b.Exposure != nil {
			ev := b.Exposure.EV100
			out.Camera.EV100 = &ev
		}
	}
	if b.Fog != nil {
		out.Fog = &Fog{Color: hex(b.Fog.Color), Density: b.Fog.Density}
	}
	return out
}

func hex(c gfx.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Encode serializes s in format f.
func Encode(wr io.Writer, f Format, s Scene) error {
	switch f {
	case TOML:
		enc := toml.NewEncoder(wr)
		enc.SetArraysMultiline(false)
		return enc.Encode(s)
	case YAML:
		enc := yaml.NewEncoder(wr)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("encode %s: %w", f, config.ErrUnknownFormat)
}

// Decode parses data in format f.
func Decode(data []byte, f Format) (Scene, error) {
	var s Scene
	var err error
	switch f {
	case TOML:
		err = toml.Unmarshal(data, &s)
	case YAML:
		err = yaml.Unmarshal(data, &s)
	default:
		err = fmt.Errorf("decode %s: %w", f, config.ErrUnknownFormat)
	}
	return s, err
}

// WriteFile exports w to path, choosing the format from its extension.
func WriteFile(path, variant string, w *ecs.World) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f, Snapshot(variant, w)); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

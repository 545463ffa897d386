package engine

import (
	"fmt"

	"orbitlight/ecs"
	"orbitlight/gfx"

	"github.com/chewxy/math32"
)

// DefaultEV100 is the exposure used by cameras without an Exposure component.
const DefaultEV100 = 9.7

// AmbientBrightness is the scene-wide ambient luminance in cd/m².
const AmbientBrightness = 80

// ExposureFromEV100 converts an exposure value into the factor scene luminance
// is multiplied by before display.
func ExposureFromEV100(ev100 float32) float32 {
	return 1 / (1.2 * math32.Pow(2, ev100))
}

// WireframeConfig is the global wireframe override.
type WireframeConfig struct {
	Global       bool
	DefaultColor gfx.Color
}

func DefaultWireframeConfig() WireframeConfig {
	return WireframeConfig{DefaultColor: gfx.White}
}

// Extract fills f from the world: the single camera becomes the view, the
// first directional light the light, and every mesh entity a draw.
func Extract(w *ecs.World, wire WireframeConfig, f *gfx.Frame) error {
	f.Reset()

	_, cam, err := w.Single(ecs.TagCamera)
	if err != nil {
		return fmt.Errorf("extract camera: %w", err)
	}
	ev := float32(DefaultEV100)
	if cam.Exposure != nil {
		ev = cam.Exposure.EV100
	}
	exposure := ExposureFromEV100(ev)

	f.View = gfx.View{
		Transform: cam.Transform,
		FOVYRad:   cam.Camera.FOVYRad,
		Near:      cam.Camera.Near,
		Far:       cam.Camera.Far,
	}
	if cam.Fog != nil {
		f.View.Fog = gfx.Fog{Enabled: true, Color: cam.Fog.Color, Density: cam.Fog.Density}
	}

	f.Light = gfx.Light{Ambient: AmbientBrightness * exposure}
	lit := false
	w.Query(ecs.TagDirectionalLight, func(_ ecs.Entity, b *ecs.Bundle) {
		if lit {
			return
		}
		lit = true
		f.Light.Dir = b.Transform.Forward()
		f.Light.DirAmount = b.DirectionalLight.Illuminance * exposure
	})

	f.WireAll = wire.Global
	f.WireColor = wire.DefaultColor
	w.Query(ecs.TagMesh, func(_ ecs.Entity, b *ecs.Bundle) {
		d := gfx.Draw{
			Geometry: b.Mesh,
			Model:    b.Transform.Matrix(),
			Material: b.Material,
		}
		if b.Wireframe != nil {
			c := b.Wireframe.Color
			d.Wire = &c
		}
		f.Draws = append(f.Draws, d)
	})
	return nil
}

package scene

import (
	"fmt"

	"orbitlight/ecs"
	"orbitlight/engine"
	"orbitlight/gfx"
)

// Variant is one of the example scenes.
type Variant struct {
	Name  string
	Title string
	Up    UpReference
	Setup func(w *ecs.World) error
}

// Sphere tessellation used by both scenes.
const (
	sphereSectors = 32
	sphereStacks  = 18
)

// FogColor and FogDensity configure the fog scene's camera.
var (
	FogColor   = gfx.RGB(89, 122, 168)
	FogDensity = float32(0.15)
)

// CubeColor is the material of the wireframed origin cube.
var CubeColor = gfx.SRGBu8(124, 144, 255)

// ExposureVariant is the scene whose camera exposure is derived from params and
// whose orbit re-aims with a zero up vector.
func ExposureVariant(params PhysicalCameraParameters) Variant {
	return Variant{
		Name:  "exposure",
		Title: "lights: physical exposure",
		Up:    UpZero,
		Setup: func(w *ecs.World) error {
			if err := params.Validate(); err != nil {
				return err
			}
			cam := ecs.DefaultCamera()
			return spawnAll(w, append(commonEntities(),
				ecs.Bundle{
					Name:      "camera",
					Camera:    &cam,
					Transform: gfx.FromXYZ(0, 4, 5).Looking(gfx.Zero, gfx.Zero),
					Exposure:  &ecs.Exposure{EV100: params.EV100()},
					Movable:   true,
				},
			))
		},
	}
}

// FogVariant is the scene with a second wireframed cube and distance fog, whose
// orbit re-aims with world Y as up.
func FogVariant() Variant {
	return Variant{
		Name:  "fog",
		Title: "lights: wireframe and fog",
		Up:    UpY,
		Setup: func(w *ecs.World) error {
			cam := ecs.DefaultCamera()
			return spawnAll(w, append(commonEntities(),
				ecs.Bundle{
					Name:      "cube-salmon",
					Mesh:      gfx.Cuboid(CubeSize, CubeSize, CubeSize),
					Material:  gfx.Material{BaseColor: gfx.SRGBu8(255, 160, 122)},
					Transform: gfx.FromXYZ(-1.5, 0.25, -1.0),
					Wireframe: &ecs.Wireframe{Color: gfx.White},
				},
				ecs.Bundle{
					Name:      "camera",
					Camera:    &cam,
					Transform: gfx.FromXYZ(0, 4, 5).Looking(gfx.Zero, gfx.UnitY),
					Fog:       &ecs.DistanceFog{Color: FogColor, Density: FogDensity},
				},
			))
		},
	}
}

// commonEntities are the spheres, origin cube and sun shared by both scenes.
func commonEntities() []ecs.Bundle {
	sphere := gfx.UVSphere(0.5, sphereSectors, sphereStacks)
	shadows := ecs.DefaultCascadeShadowConfig()

	sun := gfx.FromXYZ(0, 2, 0)
	sun.Rotation = gfx.QuatRotationX(LightTilt)

	return []ecs.Bundle{
		{
			Name:      "sphere-front",
			Mesh:      sphere,
			Material:  gfx.Material{BaseColor: gfx.LimeGreen},
			Transform: gfx.FromXYZ(0.1, 0.1, 1.5),
			Movable:   true,
		},
		{
			Name:      "cube",
			Mesh:      gfx.Cuboid(CubeSize, CubeSize, CubeSize),
			Material:  gfx.Material{BaseColor: CubeColor},
			Transform: gfx.FromXYZ(0, 0, 0),
			Wireframe: &ecs.Wireframe{Color: gfx.Lime},
		},
		{
			Name:      "sphere-raised",
			Mesh:      sphere,
			Material:  gfx.Material{BaseColor: gfx.LimeGreen},
			Transform: gfx.FromXYZ(1.5, 1.0, 1.5),
			Movable:   true,
		},
		{
			Name: "sun",
			DirectionalLight: &ecs.DirectionalLight{
				Illuminance:    ecs.LuxOvercastDay,
				ShadowsEnabled: true,
			},
			Shadows:   &shadows,
			Transform: sun,
		},
	}
}

func spawnAll(w *ecs.World, bundles []ecs.Bundle) error {
	for _, b := range bundles {
		if _, err := w.Spawn(b); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}
	return nil
}

// Plugin registers the variant on app: setup at startup, then the light and
// camera animation every frame, in that order. The orbit state lives in the
// orbit system's closure.
func Plugin(app *engine.App, v Variant) {
	settings := &CameraSettings{}
	app.AddStartup("setup", func(ctx *engine.Context) error {
		return v.Setup(ctx.World)
	})
	app.AddUpdate("animate_light_direction", func(ctx *engine.Context) error {
		AnimateLightDirection(ctx.World, ctx.Time.DeltaSecs())
		return nil
	})
	app.AddUpdate("orbit", func(ctx *engine.Context) error {
		return Orbit(ctx.World, settings, v.Up)
	})
}

// Variants lists the scenes by name.
func Variants() map[string]Variant {
	return map[string]Variant{
		"exposure": ExposureVariant(DefaultPhysicalCamera()),
		"fog":      FogVariant(),
	}
}

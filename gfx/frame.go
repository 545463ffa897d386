package gfx

import "github.com/chewxy/math32"

// Material is a minimal surface description.
type Material struct {
	BaseColor Color
}

// Fog is exponential-squared distance fog.
type Fog struct {
	Enabled bool
	Color   Color
	Density float32
}

// Factor returns how much of the surface color survives at distance d (1 = no fog).
func (f Fog) Factor(d float32) float32 {
	if !f.Enabled || f.Density <= 0 {
		return 1
	}
	x := d * f.Density
	return math32.Exp(-x * x)
}

// Light is an ambient term plus one directional light.
type Light struct {
	Ambient   float32 // 0..1 after exposure
	Dir       Vec3    // direction the light travels
	DirAmount float32 // 0..1 after exposure
}

// View describes the camera for one frame.
type View struct {
	Transform Transform
	FOVYRad   float32
	Near      float32
	Far       float32
	Fog       Fog
}

func (v View) projection(aspect float32) Mat4 {
	fov := v.FOVYRad
	if fov == 0 {
		fov = math32.Pi / 4
	}
	near, far := v.Near, v.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = 1000
	}
	return Mat4Perspective(fov, aspect, near, far)
}

// Draw is one mesh instance.
type Draw struct {
	Geometry *Geometry
	Model    Mat4
	Material Material
	Wire     *Color // overlay edges in this color, nil for none
}

// Frame is everything the renderer needs for one image.
type Frame struct {
	View  View
	Light Light
	Draws []Draw

	// WireAll overlays edges on every draw; draws without their own
	// Wire color use WireColor.
	WireAll   bool
	WireColor Color
}

// Reset empties the draw list but keeps its storage.
func (f *Frame) Reset() {
	f.Draws = f.Draws[:0]
	f.WireAll = false
}

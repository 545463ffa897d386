package ecs

import (
	"orbitlight/gfx"

	"github.com/chewxy/math32"
)

// Wireframe draws mesh edges on top of the shaded surface in Color.
type Wireframe struct {
	Color gfx.Color
}

// DirectionalLight is a light with parallel rays, defined by orientation only.
type DirectionalLight struct {
	Illuminance    float32 // lux
	ShadowsEnabled bool
}

// Common illuminance values in lux.
const (
	LuxMoonlessNight   = 0.0001
	LuxFullMoonNight   = 0.05
	LuxOvercastDay     = 1000
	LuxAmbientDaylight = 10000
	LuxFullDaylight    = 20000
	LuxDirectSunlight  = 100000
)

// CascadeShadowConfig splits the view frustum into shadow cascades.
type CascadeShadowConfig struct {
	NumCascades          int
	MinimumDistance      float32
	MaximumDistance      float32
	FirstCascadeFarBound float32
	Overlap              float32
}

// DefaultCascadeShadowConfig matches the defaults of common PBR engines.
func DefaultCascadeShadowConfig() CascadeShadowConfig {
	return CascadeShadowConfig{
		NumCascades:          4,
		MinimumDistance:      0.1,
		MaximumDistance:      1000,
		FirstCascadeFarBound: 5,
		Overlap:              0.2,
	}
}

// Bounds returns the far bound of every cascade. The first is fixed, the rest
// grow geometrically up to MaximumDistance.
func (c CascadeShadowConfig) Bounds() []float32 {
	n := c.NumCascades
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float32{c.MaximumDistance}
	}
	out := make([]float32, n)
	out[0] = c.FirstCascadeFarBound
	ratio := math32.Pow(c.MaximumDistance/c.FirstCascadeFarBound, 1/float32(n-1))
	for i := 1; i < n; i++ {
		out[i] = out[i-1] * ratio
	}
	out[n-1] = c.MaximumDistance
	return out
}

// Camera is a perspective camera. The entity's Transform is its pose.
type Camera struct {
	FOVYRad float32
	Near    float32
	Far     float32
}

// DefaultCamera returns a 45° vertical field of view perspective camera.
func DefaultCamera() Camera {
	return Camera{FOVYRad: math32.Pi / 4, Near: 0.1, Far: 1000}
}

// Exposure is the camera's exposure value at ISO 100.
type Exposure struct {
	EV100 float32
}

// DistanceFog is exponential-squared fog.
type DistanceFog struct {
	Color   gfx.Color
	Density float32
}

// Bundle is the set of components attached to one entity. Nil pointers and
// zero tags mean the component is absent.
type Bundle struct {
	Name      string
	Transform gfx.Transform

	Mesh      *gfx.Geometry
	Material  gfx.Material
	Wireframe *Wireframe

	DirectionalLight *DirectionalLight
	Shadows          *CascadeShadowConfig

	Camera   *Camera
	Exposure *Exposure
	Fog      *DistanceFog

	Movable bool
}

// Tags reports which components b carries.
func (b *Bundle) Tags() Tag {
	var t Tag
	if b.Mesh != nil {
		t |= TagMesh
	}
	if b.Wireframe != nil {
		t |= TagWireframe
	}
	if b.DirectionalLight != nil {
		t |= TagDirectionalLight
	}
	if b.Shadows != nil {
		t |= TagShadows
	}
	if b.Camera != nil {
		t |= TagCamera
	}
	if b.Exposure != nil {
		t |= TagExposure
	}
	if b.Fog != nil {
		t |= TagFog
	}
	if b.Movable {
		t |= TagMovable
	}
	return t
}

// Package scene holds the two example scenes: their one-time setup and the
// per-frame light and camera animation.
package scene

import (
	"fmt"

	"orbitlight/ecs"
	"orbitlight/gfx"

	"github.com/chewxy/math32"
)

const (
	// OrbitRadius is the camera's distance from the world origin.
	OrbitRadius float32 = 10.0
	// AlphaDelta is the orbit angle added per frame, in radians.
	AlphaDelta float32 = 0.001
	// LightRotationRate is the light's yaw speed in radians per second.
	LightRotationRate float32 = 0.1
	// CubeSize is the edge length of the cubes.
	CubeSize float32 = 0.5
	// LightTilt is the initial pitch of the light about the X axis.
	LightTilt float32 = -math32.Pi / 4
)

// CameraSettings is the orbit state. The zero value starts at alpha 0.
type CameraSettings struct {
	Alpha float32 // radians, grows without wrapping
}

// UpReference selects the up vector the orbiting camera re-aims with.
type UpReference uint8

const (
	// UpZero passes a zero up vector; the look-at falls back to world Y.
	UpZero UpReference = iota
	// UpY passes world Y.
	UpY
)

func (u UpReference) Vec() gfx.Vec3 {
	if u == UpY {
		return gfx.UnitY
	}
	return gfx.Zero
}

func (u UpReference) String() string {
	if u == UpY {
		return "y"
	}
	return "zero"
}

// RotateLight turns a light transform by LightRotationRate*dt about world Y.
func RotateLight(t *gfx.Transform, dt float32) {
	t.RotateY(LightRotationRate * dt)
}

// AnimateLightDirection rotates every directional light by the frame's elapsed
// seconds.
func AnimateLightDirection(w *ecs.World, dt float32) {
	w.Query(ecs.TagDirectionalLight, func(_ ecs.Entity, b *ecs.Bundle) {
		RotateLight(&b.Transform, dt)
	})
}

// OrbitStep advances s by one frame and moves cam onto the orbit circle,
// keeping its height, facing the origin.
func OrbitStep(cam *gfx.Transform, s *CameraSettings, up gfx.Vec3) {
	s.Alpha += AlphaDelta
	cam.Translation.X = OrbitRadius * math32.Cos(s.Alpha)
	cam.Translation.Z = OrbitRadius * math32.Sin(s.Alpha)
	cam.LookAt(gfx.Zero, up)
}

// Orbit applies OrbitStep to the world's only camera.
func Orbit(w *ecs.World, s *CameraSettings, up UpReference) error {
	_, cam, err := w.Single(ecs.TagCamera)
	if err != nil {
		return fmt.Errorf("orbit: %w", err)
	}
	OrbitStep(&cam.Transform, s, up.Vec())
	return nil
}

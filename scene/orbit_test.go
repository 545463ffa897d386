package scene

import (
	"errors"
	"testing"
	"time"

	"orbitlight/ecs"
	"orbitlight/engine"
	"orbitlight/gfx"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startCamera() gfx.Transform {
	return gfx.FromXYZ(0, 4, 5).Looking(gfx.Zero, gfx.UnitY)
}

func TestOrbitAlphaAccumulates(t *testing.T) {
	for _, n := range []int{0, 1, 10, 250, 1000} {
		var s CameraSettings
		cam := startCamera()
		for i := 0; i < n; i++ {
			OrbitStep(&cam, &s, gfx.UnitY)
		}
		assert.InDelta(t, float64(n)*0.001, s.Alpha, 1e-4, "n=%d", n)
	}
}

func TestOrbitStaysOnCircleFacingOrigin(t *testing.T) {
	for _, up := range []UpReference{UpZero, UpY} {
		var s CameraSettings
		cam := startCamera()
		for i := 0; i < 2000; i++ {
			OrbitStep(&cam, &s, up.Vec())
			p := cam.Translation
			r := math32.Sqrt(p.X*p.X + p.Z*p.Z)
			require.InDelta(t, OrbitRadius, r, 1e-5, "up=%s step %d", up, i)
			require.InDelta(t, 100.0, p.X*p.X+p.Z*p.Z, 1e-4)
			require.Equal(t, float32(4), p.Y, "height must not change")

			toOrigin := gfx.Normalize(p.Neg())
			require.InDelta(t, 1.0, gfx.Dot(cam.Forward(), toOrigin), 1e-5, "up=%s step %d", up, i)
		}
	}
}

func TestOrbitFirstStep(t *testing.T) {
	var s CameraSettings
	cam := startCamera()
	OrbitStep(&cam, &s, gfx.UnitY)
	assert.InDelta(t, 9.9999995, cam.Translation.X, 1e-6)
	assert.InDelta(t, 0.009999998, cam.Translation.Z, 1e-7)
	assert.Equal(t, float32(4), cam.Translation.Y)
}

func TestOrbitThousandSteps(t *testing.T) {
	var s CameraSettings
	cam := startCamera()
	for i := 0; i < 1000; i++ {
		OrbitStep(&cam, &s, gfx.UnitY)
	}
	assert.InDelta(t, 1.0, s.Alpha, 1e-4)
	assert.InDelta(t, 5.403, cam.Translation.X, 1e-3)
	assert.InDelta(t, 8.415, cam.Translation.Z, 1e-3)
}

func TestOrbitZeroUpMatchesWorldUp(t *testing.T) {
	var a, b CameraSettings
	camA, camB := startCamera(), startCamera()
	for i := 0; i < 500; i++ {
		OrbitStep(&camA, &a, UpZero.Vec())
		OrbitStep(&camB, &b, UpY.Vec())
	}
	assert.Less(t, gfx.QuatAngleBetween(camA.Rotation, camB.Rotation), float32(1e-4))
	assert.Greater(t, camA.Up().Y, float32(0), "camera must stay upright")
}

func TestRotateLightZeroIsNoop(t *testing.T) {
	tr := gfx.FromXYZ(0, 2, 0)
	tr.Rotation = gfx.QuatRotationX(LightTilt)
	before := tr
	RotateLight(&tr, 0)
	assert.Equal(t, before, tr)
}

func TestRotateLightAdditive(t *testing.T) {
	cases := [][2]float32{{0.016, 0.017}, {1, 2.5}, {0, 3}, {10, 0.001}}
	for _, c := range cases {
		a := gfx.FromXYZ(0, 2, 0)
		a.Rotation = gfx.QuatRotationX(LightTilt)
		b := a

		RotateLight(&a, c[0])
		RotateLight(&a, c[1])
		RotateLight(&b, c[0]+c[1])

		assert.Less(t, gfx.QuatAngleBetween(a.Rotation, b.Rotation), float32(1e-5), "dt=%v", c)
	}
}

func TestRotateLightOneSecond(t *testing.T) {
	tr := gfx.FromXYZ(0, 2, 0)
	tr.Rotation = gfx.QuatRotationX(LightTilt)
	start := tr.Rotation

	RotateLight(&tr, 1.0)

	assert.InDelta(t, 0.1, gfx.QuatAngleBetween(start, tr.Rotation), 1e-5)
	want := gfx.QuatRotationY(0.1).Mul(start)
	assert.Less(t, gfx.QuatAngleBetween(want, tr.Rotation), float32(1e-6))
	assert.Equal(t, gfx.V3(0, 2, 0), tr.Translation)
}

func TestAnimateLightDirectionOnlyLights(t *testing.T) {
	w := ecs.NewWorld(4)
	light, _ := w.Spawn(ecs.Bundle{DirectionalLight: &ecs.DirectionalLight{}})
	other, _ := w.Spawn(ecs.Bundle{Mesh: gfx.Cuboid(1, 1, 1)})

	AnimateLightDirection(w, 5)

	lb, _ := w.Get(light)
	ob, _ := w.Get(other)
	assert.InDelta(t, 0.5, gfx.QuatAngleBetween(gfx.QuatIdentity(), lb.Transform.Rotation), 1e-5)
	assert.Equal(t, gfx.QuatIdentity(), ob.Transform.Rotation)
}

func TestOrbitNeedsSingleCamera(t *testing.T) {
	w := ecs.NewWorld(4)
	var s CameraSettings
	err := Orbit(w, &s, UpY)
	require.True(t, errors.Is(err, ecs.ErrNoMatch), "got %v", err)
	assert.Equal(t, float32(0), s.Alpha, "alpha must not move without a camera")
}

func TestPluginRunsLightThenOrbit(t *testing.T) {
	app := engine.NewApp()
	Plugin(app, FogVariant())
	assert.Equal(t, []string{"animate_light_direction", "orbit"}, app.Systems())

	require.NoError(t, app.Startup())
	require.NoError(t, app.StepFixed(time.Second))

	_, light, err := app.World.Single(ecs.TagDirectionalLight)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, gfx.QuatAngleBetween(gfx.QuatRotationX(LightTilt), light.Transform.Rotation), 1e-5)

	_, cam, err := app.World.Single(ecs.TagCamera)
	require.NoError(t, err)
	assert.InDelta(t, 10*math32.Cos(0.001), cam.Transform.Translation.X, 1e-5)
	assert.InDelta(t, 10*math32.Sin(0.001), cam.Transform.Translation.Z, 1e-6)
}

func TestPluginOrbitIsFrameCounted(t *testing.T) {
	// The orbit ignores frame time; slow and fast frames advance it equally.
	slow, fast := engine.NewApp(), engine.NewApp()
	Plugin(slow, FogVariant())
	Plugin(fast, FogVariant())
	for i := 0; i < 100; i++ {
		require.NoError(t, slow.StepFixed(time.Second))
		require.NoError(t, fast.StepFixed(time.Millisecond))
	}
	_, a, _ := slow.World.Single(ecs.TagCamera)
	_, b, _ := fast.World.Single(ecs.TagCamera)
	assert.Equal(t, a.Transform.Translation, b.Transform.Translation)
}

package gfx

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

func assertVec(t *testing.T, want, got Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
	assert.InDelta(t, want.Z, got.Z, tol, "z")
}

func TestQuatRotateY(t *testing.T) {
	q := QuatRotationY(math32.Pi / 2)
	// Right-handed: +X turns towards -Z.
	assertVec(t, V3(0, 0, -1), q.Rotate(UnitX))
	assertVec(t, UnitY, q.Rotate(UnitY))
}

func TestQuatMatchesMatrix(t *testing.T) {
	q := QuatRotationX(-math32.Pi / 4).Mul(QuatRotationY(0.3))
	v := V3(0.2, -1, 3)
	assertVec(t, q.Rotate(v), Mat4MulPoint(q.Mat4(), v))
}

func TestQuatFromBasisRoundTrip(t *testing.T) {
	q := QuatRotationY(1.1).Mul(QuatRotationX(-0.4))
	got := QuatFromBasis(q.Rotate(UnitX), q.Rotate(UnitY), q.Rotate(UnitZ))
	assert.InDelta(t, 0, QuatAngleBetween(q, got), 1e-3)
}

func TestRotateYAccumulates(t *testing.T) {
	tr := TransformIdentity()
	tr.Rotation = QuatRotationX(-math32.Pi / 4)
	start := tr.Rotation

	tr.RotateY(0.25)
	tr.RotateY(0.5)
	one := TransformIdentity()
	one.Rotation = start
	one.RotateY(0.75)

	assert.InDelta(t, 0, QuatAngleBetween(tr.Rotation, one.Rotation), 1e-3)
}

func TestLookAtFacesTarget(t *testing.T) {
	tr := FromXYZ(0, 4, 5).Looking(Zero, UnitY)
	want := Normalize(V3(0, -4, -5))
	assertVec(t, want, tr.Forward())
	assert.Greater(t, tr.Up().Y, float32(0))
}

func TestLookAtZeroUpFallsBackToY(t *testing.T) {
	a := FromXYZ(3, 2, -7).Looking(Zero, Zero)
	b := FromXYZ(3, 2, -7).Looking(Zero, UnitY)
	assert.InDelta(t, 0, QuatAngleBetween(a.Rotation, b.Rotation), 1e-3)
}

func TestLookAtParallelUp(t *testing.T) {
	tr := FromXYZ(0, 5, 0).Looking(Zero, UnitY)
	assertVec(t, UnitY.Neg(), tr.Forward())
	assert.False(t, math32.IsNaN(tr.Rotation.W))
}

func TestViewMatrixMovesEyeToOrigin(t *testing.T) {
	tr := FromXYZ(1, 2, 3).Looking(Zero, UnitY)
	v := tr.ViewMatrix()
	assertVec(t, Zero, Mat4MulPoint(v, tr.Translation))
	// The target sits straight ahead, on -Z in view space.
	p := Mat4MulPoint(v, Zero)
	assert.InDelta(t, 0, p.X, tol)
	assert.InDelta(t, 0, p.Y, tol)
	assert.InDelta(t, -Len(V3(1, 2, 3)), p.Z, tol)
}

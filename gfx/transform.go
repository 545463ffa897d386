package gfx

// Transform places an object in world space.
type Transform struct {
	Translation Vec3
	Rotation    Quat
	Scale       Vec3
}

// TransformIdentity is the transform with no translation, rotation or scaling.
func TransformIdentity() Transform {
	return Transform{Rotation: QuatIdentity(), Scale: V3(1, 1, 1)}
}

// FromXYZ returns an identity transform moved to (x, y, z).
func FromXYZ(x, y, z float32) Transform {
	t := TransformIdentity()
	t.Translation = V3(x, y, z)
	return t
}

// Rotate applies q on top of the current rotation, in world space.
func (t *Transform) Rotate(q Quat) {
	t.Rotation = q.Mul(t.Rotation)
}

// RotateY rotates about the world vertical axis.
func (t *Transform) RotateY(rad float32) {
	t.Rotate(QuatRotationY(rad))
}

// Forward is the direction the transform faces (local -Z).
func (t Transform) Forward() Vec3 {
	return t.Rotation.Rotate(V3(0, 0, -1))
}

// Up is the transform's local +Y in world space.
func (t Transform) Up() Vec3 {
	return t.Rotation.Rotate(UnitY)
}

// LookAt turns the transform so Forward points at target.
//
// A zero or otherwise unusable up falls back to world Y; an up parallel to the
// view direction is replaced by an arbitrary perpendicular; a target at the
// transform's own position keeps the default -Z facing.
func (t *Transform) LookAt(target, up Vec3) {
	t.LookTo(target.Sub(t.Translation), up)
}

// LookTo turns the transform so Forward points along dir.
func (t *Transform) LookTo(dir, up Vec3) {
	fwd, ok := TryNormalize(dir)
	if !ok {
		fwd = V3(0, 0, -1)
	}
	back := fwd.Neg()
	u, ok := TryNormalize(up)
	if !ok {
		u = UnitY
	}
	right, ok := TryNormalize(Cross(u, back))
	if !ok {
		right = AnyOrthonormal(u)
	}
	u = Cross(back, right)
	t.Rotation = QuatFromBasis(right, u, back)
}

// Looking returns a copy of t after LookAt.
func (t Transform) Looking(target, up Vec3) Transform {
	t.LookAt(target, up)
	return t
}

// Matrix returns the model matrix T*R*S.
func (t Transform) Matrix() Mat4 {
	s := t.Scale
	if s == (Vec3{}) {
		s = V3(1, 1, 1)
	}
	r := t.Rotation
	if r == (Quat{}) {
		r = QuatIdentity()
	}
	return Mat4Mul(Mat4Translate(t.Translation), Mat4Mul(r.Mat4(), Mat4Scale(s)))
}

// ViewMatrix returns the inverse of the rigid part of the transform.
func (t Transform) ViewMatrix() Mat4 {
	r := t.Rotation
	if r == (Quat{}) {
		r = QuatIdentity()
	}
	inv := r.Conjugate().Mat4()
	p := Mat4MulPoint(inv, t.Translation)
	inv[12] = -p.X
	inv[13] = -p.Y
	inv[14] = -p.Z
	return inv
}

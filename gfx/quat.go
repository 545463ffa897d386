package gfx

import "github.com/chewxy/math32"

// Quat is a rotation quaternion with X,Y,Z and W components.
type Quat struct {
	X, Y, Z, W float32
}

func QuatIdentity() Quat { return Quat{W: 1} }

// QuatAxisAngle returns the rotation of rad radians about the unit axis.
func QuatAxisAngle(axis Vec3, rad float32) Quat {
	s := math32.Sin(rad / 2)
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: math32.Cos(rad / 2)}
}

func QuatRotationX(rad float32) Quat { return QuatAxisAngle(UnitX, rad) }
func QuatRotationY(rad float32) Quat { return QuatAxisAngle(UnitY, rad) }

// Mul returns q*r: the rotation r followed by q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := Cross(u, v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(Cross(u, t))
}

func (q Quat) Len() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

func (q Quat) Normalize() Quat {
	l := q.Len()
	if l == 0 {
		return QuatIdentity()
	}
	inv := 1 / l
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

func (q Quat) Conjugate() Quat { return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W} }

// QuatAngleBetween returns the smallest angle in radians that rotates a onto b.
func QuatAngleBetween(a, b Quat) float32 {
	r := a.Conjugate().Mul(b)
	s := math32.Sqrt(r.X*r.X + r.Y*r.Y + r.Z*r.Z)
	return 2 * math32.Atan2(s, math32.Abs(r.W))
}

// QuatFromBasis builds a rotation from the orthonormal columns right, up, back.
func QuatFromBasis(right, up, back Vec3) Quat {
	m00, m01, m02 := right.X, up.X, back.X
	m10, m11, m12 := right.Y, up.Y, back.Y
	m20, m21, m22 := right.Z, up.Z, back.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math32.Sqrt(trace+1)
		q = Quat{W: 0.25 / s, X: (m21 - m12) * s, Y: (m02 - m20) * s, Z: (m10 - m01) * s}
	case m00 > m11 && m00 > m22:
		s := 2 * math32.Sqrt(1+m00-m11-m22)
		q = Quat{W: (m21 - m12) / s, X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s}
	case m11 > m22:
		s := 2 * math32.Sqrt(1+m11-m00-m22)
		q = Quat{W: (m02 - m20) / s, X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s}
	default:
		s := 2 * math32.Sqrt(1+m22-m00-m11)
		q = Quat{W: (m10 - m01) / s, X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s}
	}
	return q.Normalize()
}

// Mat4 returns the rotation matrix of q.
func (q Quat) Mat4() Mat4 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, xy, xz := q.X*x2, q.X*y2, q.X*z2
	yy, yz, zz := q.Y*y2, q.Y*z2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2

	// Column-major.
	return Mat4{
		1 - (yy + zz), xy + wz, xz - wy, 0,
		xy - wz, 1 - (xx + zz), yz + wx, 0,
		xz + wy, yz - wx, 1 - (xx + yy), 0,
		0, 0, 0, 1,
	}
}

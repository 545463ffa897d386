package gfx

import "github.com/chewxy/math32"

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 is a 4D vector.
type Vec4 struct {
	X, Y, Z, W float32
}

// Mat4 is a column-major 4x4 matrix.
//
// It matches the conventional OpenGL layout:
// m[col*4+row].
type Mat4 [16]float32

var (
	Zero  = Vec3{}
	UnitX = Vec3{X: 1}
	UnitY = Vec3{Y: 1}
	UnitZ = Vec3{Z: 1}
)

func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3    { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3    { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Neg() Vec3          { return Vec3{-v.X, -v.Y, -v.Z} }

func Dot(a, b Vec3) float32 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func Len(v Vec3) float32 {
	return math32.Sqrt(Dot(v, v))
}

func Normalize(v Vec3) Vec3 {
	l := Len(v)
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

// TryNormalize is Normalize that reports whether v had a usable length.
func TryNormalize(v Vec3) (Vec3, bool) {
	l := Len(v)
	if l < 1e-6 || math32.IsNaN(l) || math32.IsInf(l, 0) {
		return Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// AnyOrthonormal returns some unit vector perpendicular to the unit vector v.
func AnyOrthonormal(v Vec3) Vec3 {
	sign := float32(1)
	if v.Z < 0 {
		sign = -1
	}
	a := -1 / (sign + v.Z)
	b := v.X * v.Y * a
	return Vec3{X: b, Y: sign + v.Y*v.Y*a, Z: -v.Y}
}

func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] =
				a[0*4+row]*b[col*4+0] +
					a[1*4+row]*b[col*4+1] +
					a[2*4+row]*b[col*4+2] +
					a[3*4+row]*b[col*4+3]
		}
	}
	return out
}

func Mat4MulV4(m Mat4, v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Mat4MulPoint transforms a point (w=1) and drops w.
func Mat4MulPoint(m Mat4, p Vec3) Vec3 {
	v := Mat4MulV4(m, Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func Mat4Translate(v Vec3) Mat4 {
	m := Mat4Identity()
	m[12] = v.X
	m[13] = v.Y
	m[14] = v.Z
	return m
}

func Mat4Scale(v Vec3) Mat4 {
	m := Mat4Identity()
	m[0] = v.X
	m[5] = v.Y
	m[10] = v.Z
	return m
}

func Mat4Perspective(fovYRad float32, aspect float32, zNear, zFar float32) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	f := 1 / math32.Tan(fovYRad/2)
	nf := 1 / (zNear - zFar)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (zFar + zNear) * nf, -1,
		0, 0, (2 * zFar * zNear) * nf, 0,
	}
}

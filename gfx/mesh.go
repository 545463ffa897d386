package gfx

import "github.com/chewxy/math32"

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	Color  Color
}

// Geometry is an indexed triangle list. Many draws may share one Geometry.
type Geometry struct {
	Name     string
	Vertices []Vertex
	Indices  []uint16 // triangle list, counter-clockwise seen from outside
}

// Triangles returns the number of triangles in g.
func (g *Geometry) Triangles() int {
	if g == nil {
		return 0
	}
	return len(g.Indices) / 3
}

// EachTriangle calls fn with the vertices of every triangle. Triangles with an
// out-of-range index are skipped.
func (g *Geometry) EachTriangle(fn func(a, b, c Vertex)) {
	if g == nil {
		return
	}
	n := len(g.Vertices)
	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0, i1, i2 := int(g.Indices[i]), int(g.Indices[i+1]), int(g.Indices[i+2])
		if i0 >= n || i1 >= n || i2 >= n {
			continue
		}
		fn(g.Vertices[i0], g.Vertices[i1], g.Vertices[i2])
	}
}

// UVSphere returns a latitude/longitude sphere centered at the origin.
func UVSphere(radius float32, sectors, stacks int) *Geometry {
	if sectors < 3 {
		sectors = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	verts := make([]Vertex, 0, (stacks+1)*(sectors+1))
	indices := make([]uint16, 0, stacks*sectors*6)

	for i := 0; i <= stacks; i++ {
		phi := math32.Pi * float32(i) / float32(stacks)
		sp, cp := math32.Sin(phi), math32.Cos(phi)
		for j := 0; j <= sectors; j++ {
			theta := 2 * math32.Pi * float32(j) / float32(sectors)
			n := V3(sp*math32.Cos(theta), cp, sp*math32.Sin(theta))
			verts = append(verts, Vertex{Pos: n.Mul(radius), Normal: n, Color: White})
		}
	}

	for i := 0; i < stacks; i++ {
		k1 := i * (sectors + 1)
		k2 := k1 + sectors + 1
		for j := 0; j < sectors; j++ {
			a, b := uint16(k1+j), uint16(k2+j)
			// The pole rows collapse to a point; skip their degenerate halves.
			if i != 0 {
				indices = append(indices, a, a+1, b)
			}
			if i != stacks-1 {
				indices = append(indices, a+1, b+1, b)
			}
		}
	}

	return &Geometry{Name: "sphere", Vertices: verts, Indices: indices}
}

// Cuboid returns an axis-aligned box with the given edge lengths.
func Cuboid(x, y, z float32) *Geometry {
	hx, hy, hz := x/2, y/2, z/2
	faces := []struct{ n, u, v Vec3 }{
		{UnitX, V3(0, hy, 0), V3(0, 0, hz)},
		{UnitX.Neg(), V3(0, 0, hz), V3(0, hy, 0)},
		{UnitY, V3(0, 0, hz), V3(hx, 0, 0)},
		{UnitY.Neg(), V3(hx, 0, 0), V3(0, 0, hz)},
		{UnitZ, V3(hx, 0, 0), V3(0, hy, 0)},
		{UnitZ.Neg(), V3(0, hy, 0), V3(hx, 0, 0)},
	}

	verts := make([]Vertex, 0, 24)
	indices := make([]uint16, 0, 36)
	for _, f := range faces {
		c := V3(f.n.X*hx, f.n.Y*hy, f.n.Z*hz)
		base := uint16(len(verts))
		for _, p := range []Vec3{
			c.Sub(f.u).Sub(f.v),
			c.Add(f.u).Sub(f.v),
			c.Add(f.u).Add(f.v),
			c.Sub(f.u).Add(f.v),
		} {
			verts = append(verts, Vertex{Pos: p, Normal: f.n, Color: White})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return &Geometry{Name: "cuboid", Vertices: verts, Indices: indices}
}

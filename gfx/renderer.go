package gfx

import "github.com/chewxy/math32"

// Renderer rasterizes a Frame into a Target on the CPU.
//
// Reuse one Renderer across frames; the depth buffer is kept between calls.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color

	depth depthBuffer
}

// NewRenderer returns a renderer sized for a w×h target. With enableDepth the
// depth buffer is allocated up front.
func NewRenderer(w, h int, enableDepth bool) *Renderer {
	r := &Renderer{
		Mode:       RenderSolidFlat,
		Depth:      enableDepth,
		ClearColor: RGB(0, 0, 0),
	}
	if enableDepth {
		r.depth.resize(w, h)
	}
	return r
}

func (r *Renderer) SetRenderMode(m RenderMode) { r.Mode = m }

// Render clears t and draws every mesh of f.
func (r *Renderer) Render(t Target, f *Frame) {
	if r == nil || t == nil || f == nil {
		return
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return
	}
	t.Clear(r.ClearColor)
	if r.Depth {
		r.depth.resize(w, h)
		r.depth.clear()
	}

	p := pass{
		r:     r,
		t:     t,
		w:     w,
		h:     h,
		vp:    Mat4Mul(f.View.projection(float32(w)/float32(h)), f.View.Transform.ViewMatrix()),
		eye:   f.View.Transform.Translation,
		light: f.Light,
		fog:   f.View.Fog,
	}
	for i := range f.Draws {
		d := &f.Draws[i]
		wire := d.Wire
		if wire == nil && f.WireAll {
			wire = &f.WireColor
		}
		p.draw(d, wire)
	}
}

// pass is the per-frame state shared by every draw.
type pass struct {
	r     *Renderer
	t     Target
	w, h  int
	vp    Mat4
	eye   Vec3
	light Light
	fog   Fog
}

// screenVert is a vertex after projection: pixel position, NDC depth and
// vertex color.
type screenVert struct {
	x, y int
	z    float32
	c    Color
}

// ndcLimit drops vertices projecting far outside the viewport, which would
// overflow the integer edge functions.
const ndcLimit = 64

func (p *pass) project(world Vec3) (screenVert, bool) {
	clip := Mat4MulV4(p.vp, Vec4{X: world.X, Y: world.Y, Z: world.Z, W: 1})
	if clip.W <= 0 {
		return screenVert{}, false
	}
	inv := 1 / clip.W
	nx, ny := clip.X*inv, clip.Y*inv
	if math32.Abs(nx) > ndcLimit || math32.Abs(ny) > ndcLimit {
		return screenVert{}, false
	}
	sx := (nx*0.5 + 0.5) * float32(p.w-1)
	sy := (0.5 - ny*0.5) * float32(p.h-1)
	return screenVert{
		x: int(math32.Floor(sx + 0.5)),
		y: int(math32.Floor(sy + 0.5)),
		z: clip.Z * inv,
	}, true
}

func (p *pass) draw(d *Draw, wire *Color) {
	g := d.Geometry
	if g == nil {
		return
	}
	model := d.Model
	if model == (Mat4{}) {
		model = Mat4Identity()
	}

	var world [3]Vec3
	var sv [3]screenVert
	g.EachTriangle(func(a, b, c Vertex) {
		for i, v := range [3]Vertex{a, b, c} {
			world[i] = Mat4MulPoint(model, v.Pos)
			s, ok := p.project(world[i])
			if !ok {
				// no near-plane clipping: a triangle with any vertex behind
				// the camera is skipped whole
				return
			}
			s.c = v.Color
			sv[i] = s
		}

		shade := p.shade(d.Material.BaseColor, world)
		switch p.r.Mode {
		case RenderWireframe:
			p.outline(sv, shade)
			return
		case RenderSolidVertexColor:
			p.fill(sv, nil)
		default:
			p.fill(sv, &shade)
		}
		if wire != nil {
			p.outline(sv, *wire)
		}
	})
}

// shade lights base with the triangle's face normal and fogs it by the
// distance from the eye to the triangle's centroid.
func (p *pass) shade(base Color, tri [3]Vec3) Color {
	n := Normalize(Cross(tri[1].Sub(tri[0]), tri[2].Sub(tri[0])))
	c := base.MulScalar(p.light.intensity(n))
	if !p.fog.Enabled {
		return c
	}
	centroid := tri[0].Add(tri[1]).Add(tri[2]).Mul(1.0 / 3)
	f := p.fog.Factor(Len(centroid.Sub(p.eye)))
	return p.fog.Color.WithAlpha(c.A).Lerp(c, f)
}

// intensity is ambient plus Lambert, both clamped to [0,1].
func (l Light) intensity(n Vec3) float32 {
	amb := Clamp01(l.Ambient)
	dir, ok := TryNormalize(l.Dir)
	if !ok {
		return amb
	}
	lambert := Dot(n, dir.Neg())
	if lambert < 0 {
		lambert = 0
	}
	return Clamp01(amb + lambert*Clamp01(l.DirAmount))
}

func (p *pass) outline(v [3]screenVert, c Color) {
	p.line(v[0], v[1], c)
	p.line(v[1], v[2], c)
	p.line(v[2], v[0], c)
}

// line draws a Bresenham segment with depth interpolated per step.
func (p *pass) line(a, b screenVert, c Color) {
	x, y := a.x, a.y
	dx, dy := b.x-a.x, b.y-a.y
	sx, sy := sign(dx), sign(dy)
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	steps := dx
	if dy > steps {
		steps = dy
	}
	z, dz := a.z, float32(0)
	if steps > 0 {
		dz = (b.z - a.z) / float32(steps)
	}

	e := dx - dy
	for {
		if p.r.depthOK(x, y, z, lineBias) {
			p.t.SetPixel(x, y, c)
		}
		if x == b.x && y == b.y {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x += sx
		}
		if e2 < dx {
			e += dx
			y += sy
		}
		z += dz
	}
}

// fill rasterizes a triangle of either winding. A nil flat color
// interpolates the vertex colors.
func (p *pass) fill(v [3]screenVert, flat *Color) {
	x0 := maxInt(minInt(v[0].x, minInt(v[1].x, v[2].x)), 0)
	x1 := minInt(maxInt(v[0].x, maxInt(v[1].x, v[2].x)), p.w-1)
	y0 := maxInt(minInt(v[0].y, minInt(v[1].y, v[2].y)), 0)
	y1 := minInt(maxInt(v[0].y, maxInt(v[1].y, v[2].y)), p.h-1)
	if x0 > x1 || y0 > y1 {
		return
	}
	area := edge(v[0], v[1], v[2].x, v[2].y)
	if area == 0 {
		return
	}
	inv := 1 / float32(area)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			e0 := edge(v[1], v[2], x, y)
			e1 := edge(v[2], v[0], x, y)
			e2 := edge(v[0], v[1], x, y)
			// same sign as the area means inside, for either winding
			if (area > 0 && (e0 < 0 || e1 < 0 || e2 < 0)) || (area < 0 && (e0 > 0 || e1 > 0 || e2 > 0)) {
				continue
			}
			b0, b1, b2 := float32(e0)*inv, float32(e1)*inv, float32(e2)*inv
			if !p.r.depthOK(x, y, b0*v[0].z+b1*v[1].z+b2*v[2].z, 0) {
				continue
			}
			if flat != nil {
				p.t.SetPixel(x, y, *flat)
				continue
			}
			p.t.SetPixel(x, y, Color{
				R: mix8(b0, b1, b2, v[0].c.R, v[1].c.R, v[2].c.R),
				G: mix8(b0, b1, b2, v[0].c.G, v[1].c.G, v[2].c.G),
				B: mix8(b0, b1, b2, v[0].c.B, v[1].c.B, v[2].c.B),
				A: 0xFF,
			})
		}
	}
}

func edge(a, b screenVert, x, y int) int {
	return (x-a.x)*(b.y-a.y) - (y-a.y)*(b.x-a.x)
}

func mix8(b0, b1, b2 float32, c0, c1, c2 uint8) uint8 {
	v := b0*float32(c0) + b1*float32(c1) + b2*float32(c2)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// lineBias lets edges drawn over their own faces pass the depth test.
const lineBias = 2e-4

// depthOK tests and updates the depth buffer. bias loosens the test for
// lines without letting them push the stored depth back.
func (r *Renderer) depthOK(x, y int, z, bias float32) bool {
	if !r.Depth {
		return true
	}
	return r.depth.test(x, y, Clamp01(z*0.5+0.5), bias)
}

// depthBuffer stores [0,1] depth per pixel, nearer is smaller.
type depthBuffer struct {
	w, h int
	buf  []float32
}

func (d *depthBuffer) resize(w, h int) {
	if w <= 0 || h <= 0 {
		d.w, d.h, d.buf = 0, 0, nil
		return
	}
	d.w, d.h = w, h
	if cap(d.buf) < w*h {
		d.buf = make([]float32, w*h)
	}
	d.buf = d.buf[:w*h]
}

func (d *depthBuffer) clear() {
	for i := range d.buf {
		d.buf[i] = 1e9
	}
}

func (d *depthBuffer) test(x, y int, z, bias float32) bool {
	if x < 0 || y < 0 || x >= d.w || y >= d.h {
		return false
	}
	i := y*d.w + x
	if z-bias > d.buf[i] {
		return false
	}
	if z < d.buf[i] {
		d.buf[i] = z
	}
	return true
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package gfx

// Color is an RGBA color in 8-bit channels.
type Color struct {
	R, G, B, A uint8
}

func RGB(r, g, b uint8) Color     { return Color{R: r, G: g, B: b, A: 0xFF} }
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// SRGBu8 is RGB under the name the scene descriptions use.
func SRGBu8(r, g, b uint8) Color { return RGB(r, g, b) }

// Named colors from the CSS palette.
var (
	Black     = RGB(0, 0, 0)
	White     = RGB(0xFF, 0xFF, 0xFF)
	Lime      = RGB(0x00, 0xFF, 0x00)
	LimeGreen = RGB(0x32, 0xCD, 0x32)
)

// MulScalar scales the color channels by s clamped to 0..1.
func (c Color) MulScalar(s float32) Color {
	s = Clamp01(s)
	t := uint32(s * 255)
	mul := func(ch uint8) uint8 {
		return uint8((uint32(ch) * t) / 255)
	}
	return Color{R: mul(c.R), G: mul(c.G), B: mul(c.B), A: c.A}
}

// Lerp blends from c towards o by f in 0..1.
func (c Color) Lerp(o Color, f float32) Color {
	f = Clamp01(f)
	mix := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*f + 0.5)
	}
	return Color{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B), A: c.A}
}

func (c Color) WithAlpha(a uint8) Color { c.A = a; return c }

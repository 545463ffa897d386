package gfx

// RGB565Target renders into a caller-owned little-endian RGB565 buffer, such
// as a host framebuffer.
type RGB565Target struct {
	Buf    []byte
	Stride int // bytes per row
	W      int
	H      int
}

func (t *RGB565Target) Size() (w, h int) { return t.W, t.H }

func (t *RGB565Target) usable() bool {
	return t != nil && len(t.Buf) > 0 && t.Stride >= 2*t.W && t.W > 0 && t.H > 0
}

func (t *RGB565Target) Clear(c Color) {
	if !t.usable() {
		return
	}
	p := RGB565(c.R, c.G, c.B)
	for y := 0; y < t.H; y++ {
		row := t.Buf[y*t.Stride:]
		if len(row) < 2*t.W {
			return
		}
		for x := 0; x < t.W; x++ {
			row[2*x], row[2*x+1] = byte(p), byte(p>>8)
		}
	}
}

func (t *RGB565Target) SetPixel(x, y int, c Color) {
	if !t.usable() || uint(x) >= uint(t.W) || uint(y) >= uint(t.H) {
		return
	}
	off := y*t.Stride + 2*x
	if off+1 >= len(t.Buf) {
		return
	}
	p := RGB565(c.R, c.G, c.B)
	t.Buf[off], t.Buf[off+1] = byte(p), byte(p>>8)
}

// RGB565 packs 8-bit channels as rrrrrggggggbbbbb.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

// RGB888 expands an RGB565 pixel back to 8-bit channels, mapping full scale
// to 255.
func RGB888(p uint16) (r, g, b uint8) {
	return uint8(uint32(p>>11&0x1F) * 255 / 31),
		uint8(uint32(p>>5&0x3F) * 255 / 63),
		uint8(uint32(p&0x1F) * 255 / 31)
}

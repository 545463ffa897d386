package hud

import (
	"image/color"

	"orbitlight/gfx"
	"orbitlight/hal"

	"tinygo.org/x/drivers"
)

// FramebufferDisplayer draws into an RGB565 framebuffer through the
// drivers.Displayer interface so tinyfont can write to it.
type FramebufferDisplayer struct {
	FB hal.Framebuffer
}

var _ drivers.Displayer = (*FramebufferDisplayer)(nil)

func (d *FramebufferDisplayer) Size() (x, y int16) {
	if d.FB == nil {
		return 0, 0
	}
	return int16(d.FB.Width()), int16(d.FB.Height())
}

func (d *FramebufferDisplayer) SetPixel(x, y int16, c color.RGBA) {
	if d.FB == nil || d.FB.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.FB.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.FB.Width() || iy < 0 || iy >= d.FB.Height() {
		return
	}
	off := iy*d.FB.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	pixel := gfx.RGB565(c.R, c.G, c.B)
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *FramebufferDisplayer) Display() error {
	if d.FB == nil {
		return nil
	}
	return d.FB.Present()
}

// FillRectangle blends a rectangle over the framebuffer. Alpha 0xFF overwrites.
func (d *FramebufferDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	if d.FB == nil || d.FB.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	buf := d.FB.Buffer()
	w, h := d.FB.Width(), d.FB.Height()
	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	stride := d.FB.StrideBytes()
	a := uint16(c.A)
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off+1 >= len(buf) {
				continue
			}
			r, g, b := c.R, c.G, c.B
			if a != 0xFF {
				br, bg, bb := gfx.RGB888(uint16(buf[off]) | uint16(buf[off+1])<<8)
				r = blend(br, r, a)
				g = blend(bg, g, a)
				b = blend(bb, b, a)
			}
			pixel := gfx.RGB565(r, g, b)
			buf[off] = byte(pixel)
			buf[off+1] = byte(pixel >> 8)
		}
	}
	return nil
}

func blend(dst, src uint8, a uint16) uint8 {
	return uint8((uint16(dst)*(255-a) + uint16(src)*a) / 255)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

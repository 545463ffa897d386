package hud

import (
	"image/color"
	"strings"
	"testing"

	"orbitlight/gfx"
	"orbitlight/hal"
)

func newFB(t *testing.T) hal.Framebuffer {
	t.Helper()
	return hal.New(hal.HostConfig{Width: 64, Height: 48}).Display().Framebuffer()
}

func countNonBlack(fb hal.Framebuffer) int {
	buf := fb.Buffer()
	n := 0
	for i := 0; i+1 < len(buf); i += 2 {
		if buf[i] != 0 || buf[i+1] != 0 {
			n++
		}
	}
	return n
}

func TestStatusLines(t *testing.T) {
	s := Status{
		Title:       "exposure",
		Frame:       12,
		FPS:         59.94,
		Mode:        gfx.RenderSolidFlat,
		Wireframe:   true,
		Camera:      gfx.V3(0, 4, 5),
		Illuminance: 1000,
		EV100:       9.7,
	}
	lines := s.Lines()
	if len(lines) != 6 {
		t.Fatalf("lines=%d, want 6", len(lines))
	}
	if lines[0] != "exposure" {
		t.Fatalf("title=%q", lines[0])
	}
	if !strings.Contains(lines[1], "frame 12") || !strings.Contains(lines[1], "59.9 fps") {
		t.Fatalf("frame line %q", lines[1])
	}
	if !strings.Contains(lines[2], "wire on") {
		t.Fatalf("mode line %q", lines[2])
	}
	if !strings.Contains(lines[4], "1000 lx") {
		t.Fatalf("sun line %q", lines[4])
	}

	if lines[5] != keyHelp {
		t.Fatalf("last line %q, want key help", lines[5])
	}

	s.Fog = true
	if got := s.Lines(); got[len(got)-2] != "fog on" {
		t.Fatalf("fog line missing: %v", got)
	}
}

func TestOverlayDrawAndToggle(t *testing.T) {
	fb := newFB(t)
	o := New()
	o.Toggle()
	o.Draw(&FramebufferDisplayer{FB: fb}, Status{Title: "hidden"})
	if n := countNonBlack(fb); n != 0 {
		t.Fatalf("hidden overlay drew %d pixels", n)
	}

	o.Toggle()
	o.Draw(&FramebufferDisplayer{FB: fb}, Status{Title: "visible"})
	if n := countNonBlack(fb); n == 0 {
		t.Fatal("visible overlay drew nothing")
	}
}

func TestDisplayerClipsAndWrites(t *testing.T) {
	fb := newFB(t)
	d := &FramebufferDisplayer{FB: fb}

	w, h := d.Size()
	if w != 64 || h != 48 {
		t.Fatalf("size=%dx%d", w, h)
	}
	d.SetPixel(-1, 0, color.RGBA{R: 255, A: 255})
	d.SetPixel(64, 0, color.RGBA{R: 255, A: 255})
	if countNonBlack(fb) != 0 {
		t.Fatal("out-of-bounds pixel written")
	}

	d.SetPixel(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img := hal.Snapshot(fb)
	if c := img.RGBAAt(1, 1); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Fatalf("pixel=%v, want white", c)
	}

	if err := d.FillRectangle(60, 40, 10, 10, color.RGBA{G: 255, A: 255}); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}
	img = hal.Snapshot(fb)
	if c := img.RGBAAt(63, 47); c.G != 255 {
		t.Fatalf("clipped fill missing: %v", c)
	}
}

func TestFillRectangleBlends(t *testing.T) {
	fb := newFB(t)
	fb.ClearRGB(255, 255, 255)
	d := &FramebufferDisplayer{FB: fb}
	_ = d.FillRectangle(0, 0, 1, 1, color.RGBA{A: 0x80})

	c := hal.Snapshot(fb).RGBAAt(0, 0)
	if c.R < 100 || c.R > 155 {
		t.Fatalf("blended red=%d, want roughly half", c.R)
	}
}

func TestFPSMeter(t *testing.T) {
	var m FPSMeter
	if got := m.Observe(0); got != 0 {
		t.Fatalf("zero dt fps=%v", got)
	}
	if got := m.Observe(1.0 / 50); got < 49.9 || got > 50.1 {
		t.Fatalf("first reading=%v, want 50", got)
	}
	got := m.Observe(1.0 / 100)
	if got <= 50 || got >= 100 {
		t.Fatalf("smoothed=%v, want between 50 and 100", got)
	}
}

// Package hud draws a small text overlay on top of a rendered frame.
package hud

import (
	"fmt"
	"image/color"

	"orbitlight/gfx"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var (
	textColor  = color.RGBA{R: 0xE0, G: 0xE8, B: 0xFF, A: 0xFF}
	dimColor   = color.RGBA{R: 0x90, G: 0xA0, B: 0xB8, A: 0xFF}
	panelColor = color.RGBA{R: 0x05, G: 0x08, B: 0x12, A: 0xA0}
)

const margin = 3

const keyHelp = "esc quit  space wire  f1 hud  w mode"

// Status is what the overlay reports for one frame.
type Status struct {
	Title       string
	Frame       uint64
	FPS         float32
	Mode        gfx.RenderMode
	Wireframe   bool
	Camera      gfx.Vec3
	Orbit       float32 // camera azimuth around the origin, radians
	LightYaw    float32 // radians
	Illuminance float32
	EV100       float32
	Fog         bool
}

// Lines formats the status as overlay text, one entry per row.
func (s Status) Lines() []string {
	wire := "off"
	if s.Wireframe {
		wire = "on"
	}
	lines := []string{
		s.Title,
		fmt.Sprintf("frame %d  %.1f fps", s.Frame, s.FPS),
		fmt.Sprintf("mode %s  wire %s", s.Mode, wire),
		fmt.Sprintf("cam %.2f %.2f %.2f  orbit %.3f", s.Camera.X, s.Camera.Y, s.Camera.Z, s.Orbit),
		fmt.Sprintf("sun %.0f lx  yaw %.3f  ev100 %.2f", s.Illuminance, s.LightYaw, s.EV100),
	}
	if s.Fog {
		lines = append(lines, "fog on")
	}
	return append(lines, keyHelp)
}

// Overlay draws status text in the top-left corner.
type Overlay struct {
	Visible bool

	font       tinyfont.Fonter
	lineHeight int16
}

func New() *Overlay {
	return &Overlay{
		Visible:    true,
		font:       &tinyfont.TomThumb,
		lineHeight: 7,
	}
}

func (o *Overlay) Toggle() { o.Visible = !o.Visible }

// Draw writes the status onto d. It does nothing while hidden.
func (o *Overlay) Draw(d drivers.Displayer, s Status) {
	if !o.Visible || d == nil {
		return
	}
	lines := s.Lines()

	var width uint32
	for _, l := range lines {
		_, w := tinyfont.LineWidth(o.font, l)
		if w > width {
			width = w
		}
	}
	if f, ok := d.(interface {
		FillRectangle(x, y, w, h int16, c color.RGBA) error
	}); ok {
		_ = f.FillRectangle(0, 0, int16(width)+2*margin, int16(len(lines))*o.lineHeight+2*margin, panelColor)
	}

	for i, l := range lines {
		c := textColor
		if i > 0 {
			c = dimColor
		}
		tinyfont.WriteLine(d, o.font, margin, margin+int16(i+1)*o.lineHeight-1, l, c)
	}
}

// FPSMeter smooths frame rate readings.
type FPSMeter struct {
	value float32
}

// Observe records a frame of dt seconds and returns the smoothed rate.
func (m *FPSMeter) Observe(dt float32) float32 {
	if dt <= 0 {
		return m.value
	}
	fps := 1 / dt
	if m.value == 0 {
		m.value = fps
	} else {
		m.value += (fps - m.value) * 0.1
	}
	return m.value
}

func (m *FPSMeter) Value() float32 { return m.value }

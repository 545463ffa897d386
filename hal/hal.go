package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ErrQuit is returned by a step function to end the run loop without error.
var ErrQuit = errors.New("quit")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEscape
	KeySpace
	KeyF1
	KeyW
)

func (k KeyCode) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeySpace:
		return "space"
	case KeyF1:
		return "f1"
	case KeyW:
		return "w"
	default:
		return "unknown"
	}
}

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// keyQueueLen bounds buffered key events; further events are dropped until
// the step drains them.
const keyQueueLen = 64

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// HAL is the only contact point between a scene and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
}

// Tick is one host frame.
type Tick struct {
	Seq uint64
	Now time.Time
	// Fixed is the frame length when the host runs a fixed step, zero otherwise.
	Fixed time.Duration
}

// StepFunc runs one frame. Returning ErrQuit ends the run cleanly.
type StepFunc func(Tick) error

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// HostConfig sizes the host framebuffer and picks the log sink.
type HostConfig struct {
	Width  int
	Height int
	Log    io.Writer // defaults to os.Stderr
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	clock  *hostClock
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	if cfg.Width <= 0 {
		cfg.Width = 480
	}
	if cfg.Height <= 0 {
		cfg.Height = 320
	}
	w := cfg.Log
	if w == nil {
		w = os.Stderr
	}
	return &hostHAL{
		logger: &hostLogger{w: w},
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:    newHostKeyboard(),
		clock:  newHostClock(nil),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

// Package logx provides a slog handler that writes single lines through a
// hal.Logger, with optional terminal colouring of the level.
package logx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"orbitlight/hal"

	"github.com/muesli/termenv"
)

// LevelFromFlags maps the -vv/-v/-q flags to a level. Flags are checked in
// that order, so -vv wins over -q. The default is warn.
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ParseLevel accepts the slog level names in any case, with an optional
// offset such as "warn+2".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// Options configures a Handler.
type Options struct {
	Level slog.Leveler
	// Color enables ANSI colouring. ColorWriter, when set, is used to detect
	// whether the sink is a terminal that supports it.
	Color       bool
	ColorWriter io.Writer
}

// Handler formats records as "LEVEL msg key=value ..." lines.
type Handler struct {
	out   hal.Logger
	opts  Options
	term  *termenv.Output
	attrs []slog.Attr
	group string
	mu    *sync.Mutex
}

var _ slog.Handler = (*Handler)(nil)

func NewHandler(out hal.Logger, opts Options) *Handler {
	if opts.Level == nil {
		opts.Level = slog.LevelWarn
	}
	h := &Handler{out: out, opts: opts, mu: &sync.Mutex{}}
	if opts.Color {
		if opts.ColorWriter != nil {
			h.term = termenv.NewOutput(opts.ColorWriter)
		} else {
			h.term = termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.ANSI))
		}
	}
	return h
}

// New returns a slog.Logger over a Handler.
func New(out hal.Logger, opts Options) *slog.Logger {
	return slog.New(NewHandler(out, opts))
}

func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.opts.Level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(h.level(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	h.out.WriteLineString(b.String())
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	n := *h
	n.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	n.attrs = append(n.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		n.attrs = append(n.attrs, a)
	}
	return &n
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	n := *h
	if n.group != "" {
		n.group += "." + name
	} else {
		n.group = name
	}
	return &n
}

func (h *Handler) level(l slog.Level) string {
	s := l.String()
	if h.term == nil {
		return s
	}
	var c string
	switch {
	case l >= slog.LevelError:
		c = "1"
	case l >= slog.LevelWarn:
		c = "3"
	case l >= slog.LevelInfo:
		c = "4"
	default:
		c = "8"
	}
	return h.term.String(s).Foreground(h.term.Color(c)).String()
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		prefix := a.Key
		if group != "" {
			prefix = group + "." + a.Key
		}
		for _, ga := range a.Value.Group() {
			writeAttr(b, prefix, ga)
		}
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	v := a.Value.String()
	if strings.ContainsAny(v, " \t\"=") {
		fmt.Fprintf(b, "%q", v)
	} else {
		b.WriteString(v)
	}
}

//go:build cgo

package hal

import (
	"context"
	"errors"
	"image"

	"orbitlight/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title string
	Scale int
	TPS   int
}

// RunWindow starts a desktop window that displays the framebuffer and forwards keyboard input.
// It blocks until the window closes, the step asks to quit or ctx ends; in the
// last case it returns ctx.Err().
func RunWindow(ctx context.Context, host HostConfig, cfg WindowConfig, newApp func(HAL) (StepFunc, error)) error {
	h := newHost(host)
	step, err := newApp(h)
	if err != nil {
		return err
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}

	g := &hostGame{ctx: ctx, h: h, step: step}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*cfg.Scale, h.fb.height*cfg.Scale)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return ctx.Err()
}

type hostGame struct {
	ctx     context.Context
	h       *hostHAL
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	step    StepFunc
}

func (g *hostGame) Update() error {
	if g.ctx != nil && g.ctx.Err() != nil {
		return ebiten.Termination
	}
	g.h.kbd.poll()
	if g.step != nil {
		if err := g.step(g.h.clock.next()); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.img == nil || g.img.Bounds().Dx() != fb.width || g.img.Bounds().Dy() != fb.height {
		g.img = image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
		g.scratch = make([]byte, len(fb.buf))
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	fb.snapshotRGB565(g.scratch)
	rgb565ToRGBA(g.img.Pix, g.scratch, fb.width, fb.height, fb.stride)

	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}

// Package runner wires a scene variant to the engine, the software renderer,
// the overlay and a host.
package runner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"

	"orbitlight/ecs"
	"orbitlight/engine"
	"orbitlight/gfx"
	"orbitlight/hal"
	"orbitlight/hud"
	"orbitlight/internal/config"
	"orbitlight/internal/logx"
	"orbitlight/internal/sceneexport"
	"orbitlight/scene"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"
)

// ClearColor is the background when the camera has no fog.
var ClearColor = gfx.RGB(0x05, 0x08, 0x12)

// debugEvery is how often, in frames, the frame loop logs at debug level.
const debugEvery = 60

// Options selects the scene and how to run it.
type Options struct {
	Variant  scene.Variant
	Config   config.Config
	Level    slog.Level
	Headless bool

	// Snapshot, when set, receives a PNG of the last frame.
	Snapshot string
	// Export, when set, receives the world after startup as TOML or YAML.
	Export string

	LogOutput io.Writer
}

// Runner owns one app and renders it into a host framebuffer.
type Runner struct {
	opts Options
	log  *slog.Logger

	app      *engine.App
	fb       hal.Framebuffer
	keys     <-chan hal.KeyEvent
	target   *gfx.RGB565Target
	renderer *gfx.Renderer
	frame    gfx.Frame
	overlay  *hud.Overlay
	fps      hud.FPSMeter
	exported bool
}

func New(opts Options) *Runner {
	app := engine.NewApp()
	app.Wireframe.Global = opts.Config.Render.Wireframe
	scene.Plugin(app, opts.Variant)

	overlay := hud.New()
	overlay.Visible = opts.Config.Render.HUD

	return &Runner{
		opts:    opts,
		log:     slog.New(logx.NewHandler(discard{}, logx.Options{})),
		app:     app,
		overlay: overlay,
	}
}

// App exposes the engine app.
func (r *Runner) App() *engine.App { return r.app }

// Attach binds the runner to a host and returns its per-frame step. It has the
// shape the hal run loops expect.
func (r *Runner) Attach(h hal.HAL) (hal.StepFunc, error) {
	r.log = logx.New(h.Logger(), logx.Options{
		Level:       r.opts.Level,
		Color:       r.opts.Config.Log.Color,
		ColorWriter: r.opts.LogOutput,
	}).With("variant", r.opts.Variant.Name)

	fb := h.Display().Framebuffer()
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil, errors.New("runner: host has no RGB565 framebuffer")
	}
	r.fb = fb
	r.target = &gfx.RGB565Target{
		Buf:    fb.Buffer(),
		Stride: fb.StrideBytes(),
		W:      fb.Width(),
		H:      fb.Height(),
	}
	r.renderer = gfx.NewRenderer(fb.Width(), fb.Height(), r.opts.Config.Render.Depth)
	r.renderer.Mode = r.opts.Config.RenderMode()

	if in := h.Input(); in != nil {
		if kbd := in.Keyboard(); kbd != nil {
			r.keys = kbd.Events()
		}
	}

	r.log.Info("attached",
		"width", fb.Width(),
		"height", fb.Height(),
		"mode", r.renderer.Mode,
		"systems", fmt.Sprint(r.app.Systems()),
	)
	return r.Step, nil
}

// Step handles pending keys, advances the app by one frame and renders it.
func (r *Runner) Step(tick hal.Tick) error {
	if err := r.drainKeys(); err != nil {
		return err
	}

	var err error
	if tick.Fixed > 0 {
		err = r.app.StepFixed(tick.Fixed)
	} else {
		err = r.app.Step(tick.Now)
	}
	if err != nil {
		return err
	}

	if !r.exported && r.opts.Export != "" {
		r.exported = true
		if err := sceneexport.WriteFile(r.opts.Export, r.opts.Variant.Name, r.app.World); err != nil {
			return err
		}
		r.log.Info("exported scene", "path", r.opts.Export)
	}

	r.fps.Observe(r.app.Time.DeltaSecs())
	if err := r.render(); err != nil {
		return err
	}

	if n := r.app.Time.Frame(); n%debugEvery == 0 {
		r.log.Debug("frame", "n", n, "fps", r.fps.Value(), "draws", len(r.frame.Draws))
	}
	return nil
}

func (r *Runner) drainKeys() error {
	if r.keys == nil {
		return nil
	}
	for {
		select {
		case ev := <-r.keys:
			if err := r.HandleKey(ev); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// HandleKey applies one key press: Escape quits, Space toggles the global
// wireframe, F1 the overlay and W the render mode. Releases are ignored.
func (r *Runner) HandleKey(ev hal.KeyEvent) error {
	if !ev.Press {
		return nil
	}
	switch ev.Code {
	case hal.KeyEscape:
		r.log.Info("quit requested")
		return hal.ErrQuit
	case hal.KeySpace:
		r.app.Wireframe.Global = !r.app.Wireframe.Global
		r.log.Info("global wireframe", "on", r.app.Wireframe.Global)
	case hal.KeyF1:
		r.overlay.Toggle()
	case hal.KeyW:
		if r.renderer == nil {
			return nil
		}
		if r.renderer.Mode == gfx.RenderWireframe {
			r.renderer.Mode = gfx.RenderSolidFlat
		} else {
			r.renderer.Mode = gfx.RenderWireframe
		}
		r.log.Info("render mode", "mode", r.renderer.Mode)
	}
	return nil
}

func (r *Runner) render() error {
	if r.renderer == nil || r.fb == nil {
		return errors.New("runner: not attached")
	}
	if err := engine.Extract(r.app.World, r.app.Wireframe, &r.frame); err != nil {
		return err
	}
	r.renderer.ClearColor = ClearColor
	if r.frame.View.Fog.Enabled {
		r.renderer.ClearColor = r.frame.View.Fog.Color
	}
	r.renderer.Render(r.target, &r.frame)

	d := &hud.FramebufferDisplayer{FB: r.fb}
	r.overlay.Draw(d, r.Status())
	return d.Display()
}

// Status summarizes the current frame for the overlay.
func (r *Runner) Status() hud.Status {
	s := hud.Status{
		Title:     r.opts.Variant.Title,
		Frame:     r.app.Time.Frame(),
		FPS:       r.fps.Value(),
		Wireframe: r.app.Wireframe.Global,
		EV100:     engine.DefaultEV100,
	}
	if r.renderer != nil {
		s.Mode = r.renderer.Mode
	}
	if _, cam, err := r.app.World.Single(ecs.TagCamera); err == nil {
		s.Camera = cam.Transform.Translation
		s.Orbit = math32.Atan2(s.Camera.Z, s.Camera.X)
		if cam.Exposure != nil {
			s.EV100 = cam.Exposure.EV100
		}
		s.Fog = cam.Fog != nil
	}
	r.app.World.Query(ecs.TagDirectionalLight, func(_ ecs.Entity, b *ecs.Bundle) {
		s.Illuminance = b.DirectionalLight.Illuminance
		fwd := b.Transform.Forward()
		s.LightYaw = math32.Atan2(-fwd.X, -fwd.Z)
	})
	return s
}

// Image returns the current framebuffer scaled by scale.
func (r *Runner) Image(scale int) (image.Image, error) {
	if r.fb == nil {
		return nil, errors.New("runner: not attached")
	}
	src := hal.Snapshot(r.fb)
	if scale <= 1 {
		return src, nil
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

// WriteSnapshot saves the current frame as a PNG.
func (r *Runner) WriteSnapshot(path string, scale int) error {
	img, err := r.Image(scale)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	r.log.Info("wrote snapshot", "path", path, "scale", scale)
	return nil
}

// Run attaches a runner to a window, or to the headless loop, and blocks
// until it ends.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return err
	}
	r := New(opts)
	host := hal.HostConfig{Width: cfg.Render.Width, Height: cfg.Render.Height, Log: opts.LogOutput}

	var err error
	if opts.Headless {
		err = hal.RunHeadless(ctx, host, hal.HeadlessConfig{
			Hz:        cfg.Headless.Hz,
			Ticks:     cfg.Headless.Ticks,
			FixedStep: cfg.Headless.FixedStep,
		}, r.Attach)
	} else {
		title := cfg.Window.Title
		if title == "" {
			title = opts.Variant.Title
		}
		err = hal.RunWindow(ctx, host, hal.WindowConfig{Title: title, Scale: cfg.Window.Scale, TPS: cfg.Window.TPS}, r.Attach)
	}
	// the last frame is saved on interrupt too
	if err != nil && !interrupted(err) {
		return err
	}
	if opts.Snapshot != "" {
		if serr := r.WriteSnapshot(opts.Snapshot, cfg.Window.Scale); serr != nil {
			return serr
		}
	}
	return err
}

func interrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

type discard struct{}

func (discard) WriteLineString(string) {}
func (discard) WriteLineBytes([]byte)  {}

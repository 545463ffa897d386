package runner

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"orbitlight/ecs"
	"orbitlight/gfx"
	"orbitlight/hal"
	"orbitlight/internal/config"
	"orbitlight/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Render.Width = 96
	cfg.Render.Height = 64
	cfg.Window.Scale = 2
	cfg.Headless.Hz = 1000
	cfg.Headless.Ticks = 3
	cfg.Headless.FixedStep = true
	cfg.Log.Color = false
	cfg.Render.HUD = false
	return cfg
}

func attach(t *testing.T, v scene.Variant) (*Runner, hal.StepFunc, hal.Framebuffer) {
	t.Helper()
	r := New(Options{Variant: v, Config: smallConfig(), LogOutput: &bytes.Buffer{}})
	h := hal.New(hal.HostConfig{Width: 96, Height: 64, Log: &bytes.Buffer{}})
	step, err := r.Attach(h)
	require.NoError(t, err)
	return r, step, h.Display().Framebuffer()
}

func fixed(seq uint64) hal.Tick {
	return hal.Tick{Seq: seq, Now: time.Unix(0, 0), Fixed: time.Second / 60}
}

func TestStepRunsSceneAndRenders(t *testing.T) {
	r, step, _ := attach(t, scene.FogVariant())

	require.NoError(t, step(fixed(1)))
	require.NoError(t, step(fixed(2)))

	assert.Equal(t, uint64(2), r.App().Time.Frame())
	assert.Equal(t, 4, r.App().World.Count(ecs.TagMesh))

	s := r.Status()
	assert.True(t, s.Fog)
	assert.InDelta(t, 1000, s.Illuminance, 1e-6)
	assert.Equal(t, uint64(2), s.Frame)

	// fogged frames clear to the fog color
	img, err := r.Image(1)
	require.NoError(t, err)
	want := hal.Snapshot(solid(scene.FogColor)).RGBAAt(0, 0)
	assert.Equal(t, want, img.(*image.RGBA).RGBAAt(0, 0))
}

func TestCubeDrawnAtCenter(t *testing.T) {
	r, step, _ := attach(t, scene.ExposureVariant(scene.DefaultPhysicalCamera()))
	require.NoError(t, step(fixed(1)))

	img, err := r.Image(1)
	require.NoError(t, err)
	rgba := img.(*image.RGBA)
	clear := rgba.RGBAAt(0, 0)
	assert.NotEqual(t, clear, rgba.RGBAAt(48, 32), "center pixel shows only the clear color")
}

func TestHandleKey(t *testing.T) {
	r, _, _ := attach(t, scene.ExposureVariant(scene.DefaultPhysicalCamera()))

	require.NoError(t, r.HandleKey(hal.KeyEvent{Code: hal.KeySpace, Press: true}))
	assert.True(t, r.App().Wireframe.Global)
	require.NoError(t, r.HandleKey(hal.KeyEvent{Code: hal.KeySpace, Press: false}))
	assert.True(t, r.App().Wireframe.Global, "release must not toggle")

	require.NoError(t, r.HandleKey(hal.KeyEvent{Code: hal.KeyW, Press: true}))
	assert.Equal(t, gfx.RenderWireframe, r.Status().Mode)
	require.NoError(t, r.HandleKey(hal.KeyEvent{Code: hal.KeyW, Press: true}))
	assert.Equal(t, gfx.RenderSolidFlat, r.Status().Mode)

	visible := r.overlay.Visible
	require.NoError(t, r.HandleKey(hal.KeyEvent{Code: hal.KeyF1, Press: true}))
	assert.Equal(t, !visible, r.overlay.Visible)

	err := r.HandleKey(hal.KeyEvent{Code: hal.KeyEscape, Press: true})
	assert.True(t, errors.Is(err, hal.ErrQuit))
}

func TestExposureStatus(t *testing.T) {
	r, step, _ := attach(t, scene.ExposureVariant(scene.DefaultPhysicalCamera()))
	require.NoError(t, step(fixed(1)))

	s := r.Status()
	assert.False(t, s.Fog)
	assert.InDelta(t, scene.DefaultPhysicalCamera().EV100(), s.EV100, 1e-5)
}

func TestRunHeadlessWritesSnapshotAndExport(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "frame.png")
	export := filepath.Join(dir, "scene.toml")

	err := Run(context.Background(), Options{
		Variant:   scene.FogVariant(),
		Config:    smallConfig(),
		Headless:  true,
		Snapshot:  snap,
		Export:    export,
		LogOutput: &bytes.Buffer{},
	})
	require.NoError(t, err)

	f, err := os.Open(snap)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 192, img.Bounds().Dx())
	assert.Equal(t, 128, img.Bounds().Dy())

	b, err := os.ReadFile(export)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "variant = 'fog'") || strings.Contains(string(b), `variant = "fog"`))
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := smallConfig()
	cfg.Render.Width = 0
	err := Run(context.Background(), Options{Variant: scene.FogVariant(), Config: cfg, Headless: true})
	assert.Error(t, err)
}

func TestRunLogsAtInfo(t *testing.T) {
	var logs bytes.Buffer
	cfg := smallConfig()
	cfg.Headless.Ticks = 1
	err := Run(context.Background(), Options{
		Variant:   scene.FogVariant(),
		Config:    cfg,
		Level:     -4,
		Headless:  true,
		LogOutput: &logs,
	})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "attached")
	assert.Contains(t, logs.String(), "variant=fog")
}

func solid(c gfx.Color) hal.Framebuffer {
	fb := hal.New(hal.HostConfig{Width: 1, Height: 1, Log: &bytes.Buffer{}}).Display().Framebuffer()
	fb.ClearRGB(c.R, c.G, c.B)
	return fb
}

func TestRunWritesSnapshotOnInterrupt(t *testing.T) {
	snap := filepath.Join(t.TempDir(), "last.png")
	cfg := smallConfig()
	cfg.Headless.Ticks = 0

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := Run(ctx, Options{
		Variant:   scene.FogVariant(),
		Config:    cfg,
		Headless:  true,
		Snapshot:  snap,
		LogOutput: &bytes.Buffer{},
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	f, err := os.Open(snap)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)
}

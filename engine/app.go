// Package engine runs startup and per-frame systems over an ecs.World and turns
// the world into renderable frames.
package engine

import (
	"fmt"
	"time"

	"orbitlight/ecs"
)

// Context is what a system sees: the world and the frame clock.
type Context struct {
	World *ecs.World
	Time  *Time
}

// System is one named step of the schedule.
type System func(ctx *Context) error

type namedSystem struct {
	name string
	fn   System
}

// App owns the world, the clock and the schedule. It is driven by a host that
// calls Startup once and then Step once per frame, from a single goroutine.
type App struct {
	World *ecs.World
	Time  Time

	Wireframe WireframeConfig

	startup []namedSystem
	update  []namedSystem
	started bool
}

// DefaultCapacity is the entity capacity of NewApp.
const DefaultCapacity = 64

// NewApp returns an app with an empty world.
func NewApp() *App {
	return &App{
		World:     ecs.NewWorld(DefaultCapacity),
		Wireframe: DefaultWireframeConfig(),
	}
}

// AddStartup registers a system that runs once before the first frame.
func (a *App) AddStartup(name string, fn System) *App {
	a.startup = append(a.startup, namedSystem{name: name, fn: fn})
	return a
}

// AddUpdate registers a system that runs every frame, after those added before it.
func (a *App) AddUpdate(name string, fn System) *App {
	a.update = append(a.update, namedSystem{name: name, fn: fn})
	return a
}

// Systems lists update system names in run order.
func (a *App) Systems() []string {
	out := make([]string, 0, len(a.update))
	for _, s := range a.update {
		out = append(out, s.name)
	}
	return out
}

// Started reports whether Startup has run.
func (a *App) Started() bool { return a.started }

// Startup runs the startup systems. Later calls do nothing.
func (a *App) Startup() error {
	if a.started {
		return nil
	}
	a.started = true
	ctx := &Context{World: a.World, Time: &a.Time}
	for _, s := range a.startup {
		if err := s.fn(ctx); err != nil {
			return fmt.Errorf("startup %s: %w", s.name, err)
		}
	}
	return nil
}

// Step advances the clock to now and runs one frame.
func (a *App) Step(now time.Time) error {
	a.Time.Update(now)
	return a.run()
}

// StepFixed advances the clock by d and runs one frame.
func (a *App) StepFixed(d time.Duration) error {
	a.Time.Advance(d)
	return a.run()
}

func (a *App) run() error {
	if !a.started {
		if err := a.Startup(); err != nil {
			return err
		}
	}
	ctx := &Context{World: a.World, Time: &a.Time}
	for _, s := range a.update {
		if err := s.fn(ctx); err != nil {
			return fmt.Errorf("frame %d: system %s: %w", a.Time.Frame(), s.name, err)
		}
	}
	return nil
}

//go:build cgo

package hal

import (
	"context"
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestWindowUpdateEndsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	steps := 0
	g := &hostGame{ctx: ctx, step: func(Tick) error {
		steps++
		return nil
	}}
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update err=%v, want ebiten.Termination", err)
	}
	if steps != 0 {
		t.Fatalf("step ran %d times after cancel", steps)
	}
}

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz        int
	Ticks     uint64 // stop after N ticks (0 = run until ctx ends)
	FixedStep bool   // frames advance by exactly 1/Hz
}

// RunHeadless runs the scene without opening a window. It returns nil after
// Ticks frames or when the step asks to quit.
func RunHeadless(ctx context.Context, host HostConfig, cfg HeadlessConfig, newApp func(HAL) (StepFunc, error)) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := newHost(host)
	step, err := newApp(h)
	if err != nil {
		return err
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	if cfg.FixedStep {
		h.clock.setFixed(d)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(h.clock.next()); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

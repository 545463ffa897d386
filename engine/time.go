package engine

import "time"

// Time is the frame clock handed to update systems.
type Time struct {
	delta   time.Duration
	elapsed time.Duration
	frame   uint64
	last    time.Time
}

// Update advances the clock to now. The first call yields a zero delta, and a
// clock that moves backwards yields zero rather than a negative delta.
func (t *Time) Update(now time.Time) {
	if t.last.IsZero() {
		t.last = now
		t.delta = 0
		t.frame++
		return
	}
	d := now.Sub(t.last)
	if d < 0 {
		d = 0
	}
	t.last = now
	t.Advance(d)
}

// Advance moves the clock forward by a fixed step.
func (t *Time) Advance(d time.Duration) {
	if d < 0 {
		d = 0
	}
	t.delta = d
	t.elapsed += d
	t.frame++
}

// Delta is the time since the previous frame.
func (t *Time) Delta() time.Duration { return t.delta }

// DeltaSecs is Delta in seconds.
func (t *Time) DeltaSecs() float32 { return float32(t.delta.Seconds()) }

// Elapsed is the total time advanced so far.
func (t *Time) Elapsed() time.Duration { return t.elapsed }

// Frame counts updates, starting at 1 for the first frame.
func (t *Time) Frame() uint64 { return t.frame }

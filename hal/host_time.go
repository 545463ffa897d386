package hal

import "time"

// hostClock numbers host frames and stamps them with wall-clock time, or with
// synthetic time advancing by a fixed step.
type hostClock struct {
	now   func() time.Time
	seq   uint64
	fixed time.Duration
	start time.Time
}

func newHostClock(now func() time.Time) *hostClock {
	if now == nil {
		now = time.Now
	}
	return &hostClock{now: now}
}

func (c *hostClock) setFixed(d time.Duration) { c.fixed = d }

func (c *hostClock) next() Tick {
	c.seq++
	if c.fixed <= 0 {
		return Tick{Seq: c.seq, Now: c.now()}
	}
	if c.start.IsZero() {
		c.start = c.now()
	}
	return Tick{
		Seq:   c.seq,
		Now:   c.start.Add(time.Duration(c.seq-1) * c.fixed),
		Fixed: c.fixed,
	}
}

package app

import (
	"sync"
	"time"
)

// Clock tracks one attempt's global time limit and raises a one-shot deadline
// signal when it elapses. Each Arm starts a new generation; a timer that fires
// for an older generation is ignored.
type Clock struct {
	limit     time.Duration
	now       func() time.Time
	afterFunc func(time.Duration, func()) func() bool

	mu      sync.Mutex
	start   time.Time
	armed   bool
	gen     uint64
	stop    func() bool
	expired chan struct{}
}

// NewClock returns a clock backed by the wall clock.
func NewClock(limit time.Duration) *Clock {
	return NewClockWithTime(limit, time.Now, func(d time.Duration, f func()) func() bool {
		return time.AfterFunc(d, f).Stop
	})
}

// NewClockWithTime allows deterministic time sources in tests.
func NewClockWithTime(limit time.Duration, now func() time.Time, afterFunc func(time.Duration, func()) func() bool) *Clock {
	return &Clock{limit: limit, now: now, afterFunc: afterFunc}
}

// Now reads the clock's time source.
func (c *Clock) Now() time.Time {
	return c.now()
}

// Limit returns the configured time limit.
func (c *Clock) Limit() time.Duration {
	return c.limit
}

// Arm records the start instant and schedules the deadline signal. Calling Arm
// on an armed clock returns the existing start.
func (c *Clock) Arm() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.armed {
		return c.start
	}

	c.armed = true
	c.gen++
	gen := c.gen
	c.start = c.now()
	c.expired = make(chan struct{})
	c.stop = c.afterFunc(c.limit, func() { c.fire(gen) })
	return c.start
}

// Disarm cancels the pending signal. The start instant is kept so the elapsed
// time can still be reported.
func (c *Clock) Disarm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.armed {
		return
	}
	c.armed = false
	c.gen++
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

// Reset disarms the clock and forgets the start instant.
func (c *Clock) Reset() {
	c.Disarm()
	c.mu.Lock()
	c.start = time.Time{}
	c.expired = nil
	c.mu.Unlock()
}

func (c *Clock) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.armed || gen != c.gen {
		return
	}
	select {
	case <-c.expired:
	default:
		close(c.expired)
	}
}

// Expired returns a channel closed when the armed deadline elapses. It is nil,
// and so never ready, while the clock is disarmed.
func (c *Clock) Expired() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.armed {
		return nil
	}
	return c.expired
}

// Started reports whether the clock has a start instant.
func (c *Clock) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.start.IsZero()
}

// Elapsed is zero before the clock has been armed.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	start := c.start
	c.mu.Unlock()
	if start.IsZero() {
		return 0
	}
	return c.now().Sub(start)
}

// IsExpired is false until armed, then true once the limit has elapsed.
func (c *Clock) IsExpired() bool {
	if !c.Started() {
		return false
	}
	return c.Elapsed() >= c.limit
}

// RemainingSeconds is clamped to [0, limit seconds].
func (c *Clock) RemainingSeconds() int {
	limit := int(c.limit / time.Second)
	if limit < 0 {
		limit = 0
	}
	remaining := limit - int(c.Elapsed()/time.Second)
	if remaining < 0 {
		return 0
	}
	if remaining > limit {
		return limit
	}
	return remaining
}

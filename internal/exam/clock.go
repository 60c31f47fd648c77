package exam

import (
	"sync"
	"time"
)

// Clock is the session countdown: a cancellable task ticking once per
// second while running. Start and Stop are idempotent, so resuming after a
// pause never double-schedules the ticker. The controller owns the clock;
// nothing else starts or stops it.
type Clock struct {
	mu       sync.Mutex
	ticker   *time.Ticker
	done     chan struct{}
	paused   bool
	onTick   func()
	interval time.Duration
}

// NewClock creates a stopped clock that invokes onTick once per interval.
func NewClock(interval time.Duration, onTick func()) *Clock {
	if interval <= 0 {
		interval = time.Second
	}
	return &Clock{interval: interval, onTick: onTick}
}

// Start begins ticking. A no-op if the clock is already running.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticker != nil {
		return
	}
	c.paused = false
	c.ticker = time.NewTicker(c.interval)
	c.done = make(chan struct{})
	go c.run(c.ticker, c.done)
}

func (c *Clock) run(t *time.Ticker, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-t.C:
			c.mu.Lock()
			paused := c.paused
			c.mu.Unlock()
			if !paused {
				c.onTick()
			}
		}
	}
}

// Stop cancels the ticking task. A no-op if the clock is not running.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	close(c.done)
	c.ticker = nil
	c.done = nil
	c.paused = false
}

// Pause suspends ticking without resetting the countdown.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume re-enables ticking after a pause.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// Running reports whether the ticking task is scheduled (paused counts as
// running).
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticker != nil
}

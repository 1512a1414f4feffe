// Package countdown provides a cancellable one-second countdown driven by an
// absolute deadline.
package countdown

import (
	"math"
	"sync"
	"time"
)

const defaultInterval = time.Second

// Option configures a Countdown.
type Option func(*Countdown)

// WithInterval overrides the tick interval.
func WithInterval(d time.Duration) Option {
	return func(c *Countdown) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithClock overrides the time source used for the deadline and ticks.
func WithClock(now func() time.Time) Option {
	return func(c *Countdown) {
		if now != nil {
			c.now = now
		}
	}
}

// Countdown ticks once per interval until its deadline passes.
type Countdown struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	stop chan struct{}
}

// New returns an idle Countdown.
func New(opts ...Option) *Countdown {
	c := &Countdown{interval: defaultInterval, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins a countdown of the given length. onTick receives the seconds
// left after every tick; onExpire fires once when no time is left, after
// which the countdown stops itself. A running countdown is cancelled first.
func (c *Countdown) Start(seconds int, onTick func(secondsLeft int), onExpire func()) {
	c.Cancel()
	deadline := c.now().Add(time.Duration(seconds) * time.Second)
	stop := make(chan struct{})

	c.mu.Lock()
	c.stop = stop
	c.mu.Unlock()

	go c.run(deadline, stop, onTick, onExpire)
}

// Cancel stops the countdown. It is a no-op when nothing is running.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
}

// Running reports whether a countdown is in progress.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

func (c *Countdown) run(deadline time.Time, stop chan struct{}, onTick func(int), onExpire func()) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		// A tick and a cancel can be ready together; cancel wins.
		select {
		case <-stop:
			return
		default:
		}

		left := SecondsLeft(deadline, c.now())
		if left <= 0 {
			if !c.release(stop) {
				return
			}
			if onExpire != nil {
				onExpire()
			}
			return
		}
		if onTick != nil {
			onTick(left)
		}
	}
}

// release clears the run's stop channel if it is still the current one.
func (c *Countdown) release(stop chan struct{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != stop {
		return false
	}
	c.stop = nil
	return true
}

// SecondsLeft rounds the time remaining until deadline to whole seconds.
func SecondsLeft(deadline, now time.Time) int {
	left := int(math.Round(deadline.Sub(now).Seconds()))
	if left < 0 {
		return 0
	}
	return left
}

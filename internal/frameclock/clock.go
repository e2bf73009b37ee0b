// Package frameclock drives a per-frame callback on a fixed interval and
// starts or stops it as the drawing surface comes in and out of view.
package frameclock

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is one frame at 60 Hz.
const DefaultInterval = time.Second / 60

// Clock calls a frame function once per interval while running. It can be
// started and stopped any number of times. Frames missed while the
// callback overran or the clock was stopped are dropped, never replayed.
type Clock struct {
	interval time.Duration
	frame    func()

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}

	frames atomic.Uint64
}

// New returns a stopped clock. A non-positive interval uses DefaultInterval.
func New(interval time.Duration, frame func()) *Clock {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Clock{interval: interval, frame: frame}
}

// Start schedules frames. It is a no-op on a running clock.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	go c.loop(c.stop, c.done)
}

// Stop cancels the pending frame and waits for an in-flight one to finish.
// It must not be called from the frame function itself.
func (c *Clock) Stop() {
	c.mu.Lock()
	if c.stop == nil {
		c.mu.Unlock()
		return
	}
	close(c.stop)
	done := c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()
	<-done
}

// running reports whether frames are being scheduled.
func (c *Clock) running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Frames returns the number of frames run since construction.
func (c *Clock) Frames() uint64 {
	return c.frames.Load()
}

func (c *Clock) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
		// Prefer the stop signal when both are ready.
		select {
		case <-stop:
			return
		default:
		}
		if c.frame != nil {
			c.frame()
		}
		c.frames.Add(1)
	}
}

package engine

import (
	"sync"
	"time"
)

// SimClock converts real time into simulation time
// Pausing freezes simulation time; scale, fixed at creation, stretches or compresses it
type SimClock struct {
	mu sync.Mutex

	provider TimeProvider
	lastReal time.Time
	elapsed  time.Duration

	scale  float64
	paused bool
}

// NewSimClock creates a running clock at elapsed zero
// A non-positive scale is treated as 1
func NewSimClock(provider TimeProvider, scale float64) *SimClock {
	if scale <= 0 {
		scale = 1
	}
	return &SimClock{
		provider: provider,
		lastReal: provider.Now(),
		scale:    scale,
	}
}

// sample folds real time since the previous sample into elapsed; caller holds mu
func (c *SimClock) sample() {
	now := c.provider.Now()
	if !c.paused {
		c.elapsed += time.Duration(float64(now.Sub(c.lastReal)) * c.scale)
	}
	c.lastReal = now
}

// Now returns total simulation time
func (c *SimClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sample()
	return c.elapsed
}

// Pause stops simulation time
func (c *SimClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sample()
	c.paused = true
}

// Resume continues simulation time from where it was paused
func (c *SimClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sample()
	c.paused = false
}

// IsPaused returns current pause state
func (c *SimClock) IsPaused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

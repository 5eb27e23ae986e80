package engine

import "time"

// TimeProvider is the real-time source the simulation clock samples
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock with its monotonic reading
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a wall-clock provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

package engine

import "time"

// FixedStepper turns elapsed simulation time into a whole number of fixed steps
type FixedStepper struct {
	step     time.Duration
	maxSteps int

	last        time.Duration
	accumulator time.Duration
}

// NewFixedStepper creates a stepper starting at simulation time zero
func NewFixedStepper(step time.Duration, maxSteps int) *FixedStepper {
	if maxSteps < 1 {
		maxSteps = 1
	}
	return &FixedStepper{step: step, maxSteps: maxSteps}
}

// Step returns the fixed step duration
func (fs *FixedStepper) Step() time.Duration {
	return fs.step
}

// Advance consumes simulation time up to now and returns the steps to run
// Time beyond maxSteps is dropped so a stall does not snowball
func (fs *FixedStepper) Advance(now time.Duration) int {
	if now > fs.last {
		fs.accumulator += now - fs.last
	}
	fs.last = now

	n := int(fs.accumulator / fs.step)
	if n > fs.maxSteps {
		fs.accumulator = 0
		return fs.maxSteps
	}
	fs.accumulator -= time.Duration(n) * fs.step
	return n
}

// Reset discards accumulated time and restarts from now
func (fs *FixedStepper) Reset(now time.Duration) {
	fs.last = now
	fs.accumulator = 0
}

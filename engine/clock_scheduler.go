package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/topple/status"
)

// Ticker advances the game by one fixed step
type Ticker interface {
	Tick(dt time.Duration) error
}

// ClockScheduler polls the simulation clock at a real-time interval and runs the fixed steps that became due
type ClockScheduler struct {
	clock   *SimClock
	stepper *FixedStepper
	target  Ticker

	pollInterval time.Duration

	// updateDone signals that at least one step ran since the last receive
	updateDone chan struct{}

	statTicks *atomic.Int64
}

// NewClockScheduler creates a scheduler; the returned channel receives a signal after every productive poll
func NewClockScheduler(
	clock *SimClock,
	stepper *FixedStepper,
	target Ticker,
	pollInterval time.Duration,
	reg *status.Registry,
) (*ClockScheduler, <-chan struct{}) {
	updateDone := make(chan struct{}, 1)
	cs := &ClockScheduler{
		clock:        clock,
		stepper:      stepper,
		target:       target,
		pollInterval: pollInterval,
		updateDone:   updateDone,
		statTicks:    reg.Ints.Get("engine.ticks"),
	}
	cs.stepper.Reset(clock.Now())
	return cs, updateDone
}

// Poll runs every fixed step that became due and returns how many ran
func (cs *ClockScheduler) Poll() (int, error) {
	n := cs.stepper.Advance(cs.clock.Now())
	for i := 0; i < n; i++ {
		if err := cs.target.Tick(cs.stepper.Step()); err != nil {
			return i, err
		}
		cs.statTicks.Add(1)
	}
	if n > 0 {
		select {
		case cs.updateDone <- struct{}{}:
		default:
		}
	}
	return n, nil
}

// Run polls until ctx is cancelled or a tick fails
// Cancellation returns nil
func (cs *ClockScheduler) Run(ctx context.Context) error {
	ticker := time.NewTicker(cs.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := cs.Poll(); err != nil {
				return err
			}
		}
	}
}

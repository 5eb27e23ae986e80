package main

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

// suspender is the part of the simulation clock driven by terminal focus
type suspender interface {
	Pause()
	Resume()
	IsPaused() bool
}

// applyFocus freezes simulation time while the terminal is unfocused
// Returns false for events that are not focus changes
func applyFocus(ev tcell.Event, clock suspender, suspended *atomic.Bool, logger *log.Logger) bool {
	fe, ok := ev.(*tcell.EventFocus)
	if !ok {
		return false
	}
	if fe.Focused {
		clock.Resume()
	} else {
		clock.Pause()
	}
	suspended.Store(clock.IsPaused())
	logger.Debug("focus changed", "focused", fe.Focused)
	return true
}

package parameter

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// DefaultTickRate is the fixed simulation rate in Hz
	DefaultTickRate = 60

	// MaxCatchUpSteps bounds fixed steps run for one frame after a stall
	// Excess accumulated time is dropped rather than spiralling
	MaxCatchUpSteps = 8
)

// ECS & Resources Limits
const (
	// EventQueueSize is the initial capacity of the per-tick event queue
	EventQueueSize = 64

	// StoreInitialCapacity pre-sizes component store entity slices
	StoreInitialCapacity = 64
)

// ProgressWriteTimeout bounds a single progress store write issued from the tick
const ProgressWriteTimeout = 2 * time.Second

// ViewScale is terminal cells per world unit; cells are about twice as tall as wide
var ViewScale = mgl64.Vec2{2, 1}

// HeadlessNudge is the angular velocity given to the first brick in headless runs
const HeadlessNudge = -1.0

package parameter

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Grasp sweep
const (
	// PickSweepWidth and PickSweepHeight size the thin rectangle swept to find a pickable
	PickSweepWidth  = 0.0
	PickSweepHeight = 0.5

	// PickSweepDistance is the max sweep distance along facing
	PickSweepDistance = 2.0
)

// Hold motion
var (
	// PickerLiftOffset is where a held object's grasp point sits relative to the picker
	PickerLiftOffset = mgl64.Vec2{0, 3}

	// PlaceDropOffset lowers the release point below the picker
	PlaceDropOffset = mgl64.Vec2{0, -1}
)

const (
	// HoldMoveSpeed caps lift/place approach speed, units/s
	HoldMoveSpeed = 10.0

	// LiftVerticalGap is the vertical gap above which lifting ignores horizontal error
	LiftVerticalGap = 0.5

	// PlaceForwardGap is the projected distance along facing below which placing only descends
	PlaceForwardGap = 0.5

	// PlaceForwardDistance is how far ahead of the picker an object is set down
	PlaceForwardDistance = 1.5

	// CarryGain is the fraction of positional error closed per step while carried
	CarryGain = 0.5

	// HoldArrivalDistSq is the squared distance at which lift/place count as arrived
	HoldArrivalDistSq = 0.1
)

// DefaultStep is used when a zero dt would otherwise divide the velocity match
const DefaultStep = time.Second / DefaultTickRate

package parameter

import "github.com/go-gl/mathgl/mgl64"

// World physics
var Gravity = mgl64.Vec2{0, -9.81}

const (
	// SolverIterations is passed to the rigid-body solver
	SolverIterations = 20

	// CollisionSlop is the overlap the solver tolerates between resting shapes
	// Bricks are 0.2 wide, so the chipmunk default of 0.1 is too loose
	CollisionSlop = 0.01
)

// Brick physical profile
const (
	BrickWidth        = 0.2
	BrickHeight       = 4.0
	BrickMass         = 10.0
	BrickGravityScale = 5.0
	BrickFriction     = 0.1
)

// Brick grasp point, relative to the brick centre (bottom of the brick)
var BrickHoldOffset = mgl64.Vec2{0, -BrickHeight / 2}

// Static block defaults
const (
	BlockFriction = 10.0
)

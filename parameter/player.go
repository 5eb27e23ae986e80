package parameter

import "time"

// Player controls
const (
	// PlayerRunSpeed is horizontal speed at full axis deflection
	PlayerRunSpeed = 20.0

	// PlayerFacingDeadZone is the axis magnitude needed to turn around
	PlayerFacingDeadZone = 0.1

	// PlayerWidth and PlayerHeight size the player's rotation-locked body
	PlayerWidth  = 1.0
	PlayerHeight = 1.5
	PlayerMass   = 1.0
)

// PlayerFriction is the player's surface friction; running is velocity-driven
const PlayerFriction = 0.5

// RunKeyHoldTimeout is how long a run key keeps the player running without a key repeat
const RunKeyHoldTimeout = 150 * time.Millisecond

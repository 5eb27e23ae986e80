package parameter

import "time"

// Topple detection
const (
	// ToppleTiltThreshold is |sin(angle)| above which a standing piece starts falling
	ToppleTiltThreshold = 0.1

	// ToppleImmobileDuration is how long a falling piece must stay still to count as stopped
	ToppleImmobileDuration = 1 * time.Second

	// ToppleLinearRestSq is squared linear speed below which a piece is considered still
	ToppleLinearRestSq = 0.01

	// ToppleAngularRest is angular speed below which a piece is considered still
	ToppleAngularRest = 0.01
)

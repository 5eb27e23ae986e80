package parameter

// System Execution Priorities (lower runs first)
const (
	PriorityPlayerControl = 5  // Writes facing before pickup reads it
	PriorityPickup        = 10 // Resolves pick/place edges queued during dispatch
	PriorityHold          = 20 // Forces, collision break and desync sweep
	PriorityTopple        = 30 // Reads rotation/velocity after hold corrections
	PriorityOutcome       = 40 // Must observe this tick's topple transitions
	PriorityPlayerFall    = 50
)

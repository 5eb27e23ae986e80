package component

import "github.com/go-gl/mathgl/mgl64"

// PlayerComponent tags the controllable character
type PlayerComponent struct{}

// FacingComponent is the unit direction an entity faces
type FacingComponent struct {
	Direction mgl64.Vec2
}

// RunInputComponent is the latest horizontal run axis in [-1, 1]
type RunInputComponent struct {
	Axis float64
}

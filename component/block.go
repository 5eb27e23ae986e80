package component

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// BlockComponent is static level geometry
type BlockComponent struct {
	Center mgl64.Vec2
	Size   mgl64.Vec2
	Angle  float64 // Radians
}

// Corners returns the four corners after rotation about Center
func (b BlockComponent) Corners() [4]mgl64.Vec2 {
	half := b.Size.Mul(0.5)
	rot := mgl64.Rotate2D(b.Angle)
	local := [4]mgl64.Vec2{
		{-half[0], -half[1]},
		{half[0], -half[1]},
		{half[0], half[1]},
		{-half[0], half[1]},
	}
	var out [4]mgl64.Vec2
	for i, c := range local {
		out[i] = b.Center.Add(rot.Mul2x1(c))
	}
	return out
}

// Contains reports whether p lies inside the rotated block
func (b BlockComponent) Contains(p mgl64.Vec2) bool {
	local := mgl64.Rotate2D(-b.Angle).Mul2x1(p.Sub(b.Center))
	return math.Abs(local[0]) <= b.Size[0]/2 && math.Abs(local[1]) <= b.Size[1]/2
}

// Package vmath holds the small amount of 2D math the simulation needs on top of mgl64
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world up axis
var Up = mgl64.Vec2{0, 1}

// LengthSq returns the squared length of v
func LengthSq(v mgl64.Vec2) float64 {
	return v.Dot(v)
}

// ClampLengthMax limits v to maxLen while preserving direction
// Returns unchanged vector if it is already short enough
func ClampLengthMax(v mgl64.Vec2, maxLen float64) mgl64.Vec2 {
	lenSq := LengthSq(v)
	if lenSq <= maxLen*maxLen || lenSq == 0 {
		return v
	}
	return v.Mul(maxLen / math.Sqrt(lenSq))
}

// ClampLength scales v so its length lies in [minLen, maxLen]
// Zero vector stays zero, it has no direction to scale along
func ClampLength(v mgl64.Vec2, minLen, maxLen float64) mgl64.Vec2 {
	lenSq := LengthSq(v)
	if lenSq == 0 {
		return v
	}
	l := math.Sqrt(lenSq)
	switch {
	case l < minLen:
		return v.Mul(minLen / l)
	case l > maxLen:
		return v.Mul(maxLen / l)
	}
	return v
}

// WrapAngle maps a radian angle into (-π, π]
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// AngleBetween returns the shortest signed rotation taking angle from to angle to
func AngleBetween(from, to float64) float64 {
	return WrapAngle(to - from)
}

// Tilt returns the sine of the rotation from upright, the quantity topple detection thresholds on
func Tilt(angle float64) float64 {
	return math.Sin(angle)
}

// Rotate rotates v counter-clockwise by angle radians
func Rotate(v mgl64.Vec2, angle float64) mgl64.Vec2 {
	s, c := math.Sincos(angle)
	return mgl64.Vec2{v[0]*c - v[1]*s, v[0]*s + v[1]*c}
}

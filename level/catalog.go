package level

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/topple/parameter"
)

const brickHalfHeight = parameter.BrickHeight / 2

// catalog is the ordered list of built-in levels; NextLevel follows this order
var catalog = []Definition{
	{
		Name:   "first-push",
		Player: mgl64.Vec2{-12, 1},
		Blocks: []Block{
			{Center: mgl64.Vec2{0, -0.5}, Size: mgl64.Vec2{40, 1}},
		},
		Bricks: brickRow(-4, 0, 2.5, 5),
	},
	{
		Name:   "mind-the-gap",
		Player: mgl64.Vec2{-14, 1},
		Blocks: []Block{
			{Center: mgl64.Vec2{-12, -0.5}, Size: mgl64.Vec2{12, 1}},
			{Center: mgl64.Vec2{7, -0.5}, Size: mgl64.Vec2{22, 1}},
			{Center: mgl64.Vec2{0, -8}, Size: mgl64.Vec2{40, 1}},
		},
		// The gap at x in [-6, -4] keeps the player off the chain; the spare is
		// placed at the edge and pushed across onto the first brick
		Bricks: append([]Brick{spare(-10, 0)}, brickRow(-3, 0, 2.5, 6)...),
	},
	{
		Name:   "ramp",
		Player: mgl64.Vec2{-14, 1},
		Blocks: []Block{
			{Center: mgl64.Vec2{-8, -0.5}, Size: mgl64.Vec2{20, 1}},
			{Center: mgl64.Vec2{4.5, 1}, Size: mgl64.Vec2{6, 0.6}, Angle: math.Pi / 12},
			{Center: mgl64.Vec2{13, 2.2}, Size: mgl64.Vec2{12, 1}},
		},
		// The chain starts on the upper platform; spares bridge up the ramp
		Bricks: append([]Brick{spare(-11, 0), spare(-9, 0)}, brickRow(9, 2.7, 2.5, 3)...),
	},
}

// Catalog returns a copy of the built-in levels in play order
func Catalog() []Definition {
	out := make([]Definition, len(catalog))
	copy(out, catalog)
	return out
}

// First returns the opening level
func First() Definition {
	return catalog[0]
}

// ByName looks a level up in the catalog
func ByName(name string) (Definition, error) {
	for _, d := range catalog {
		if d.Name == name {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%q: %w", name, ErrUnknownLevel)
}

// Next returns the level after name; false for the last level or an unknown name
func Next(name string) (Definition, bool) {
	for i, d := range catalog {
		if d.Name == name && i+1 < len(catalog) {
			return catalog[i+1], true
		}
	}
	return Definition{}, false
}

// Package level holds the built-in level catalog and builds a level into a world and physics space
package level

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnknownLevel is returned for a name not in the catalog
var ErrUnknownLevel = errors.New("level: unknown level")

// Block is static geometry; Angle in radians
type Block struct {
	Center mgl64.Vec2
	Size   mgl64.Vec2
	Angle  float64
}

// Brick is a domino spawned upright unless Angle is set
// Only Pickable bricks can be carried by the player
type Brick struct {
	Position mgl64.Vec2
	Angle    float64
	Pickable bool
}

// Definition is one playable level
type Definition struct {
	Name   string
	Player mgl64.Vec2
	Blocks []Block
	Bricks []Brick
}

// Validate rejects definitions that cannot be built
func (d Definition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("level without name")
	}
	if len(d.Blocks) == 0 {
		return fmt.Errorf("level %q has no blocks", d.Name)
	}
	for i, b := range d.Blocks {
		if b.Size[0] <= 0 || b.Size[1] <= 0 {
			return fmt.Errorf("level %q block %d: non-positive size %v", d.Name, i, b.Size)
		}
	}
	return nil
}

// brickRow places n upright bricks standing on surfaceY starting at x0
func brickRow(x0, surfaceY, spacing float64, n int) []Brick {
	bricks := make([]Brick, n)
	for i := range bricks {
		bricks[i] = Brick{Position: mgl64.Vec2{x0 + float64(i)*spacing, surfaceY + brickHalfHeight}}
	}
	return bricks
}

// spare is a loose brick the player may carry
func spare(x, surfaceY float64) Brick {
	return Brick{Position: mgl64.Vec2{x, surfaceY + brickHalfHeight}, Pickable: true}
}

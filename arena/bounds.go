// Package arena answers geometry questions about the static blocks of the loaded level
package arena

import (
	"math"

	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/engine"
)

// Bounds reads level geometry from the world's Block store on every query
type Bounds struct {
	blocks *engine.Store[component.BlockComponent]
}

// NewBounds creates a bounds query over world's blocks
func NewBounds(world *engine.World) *Bounds {
	return &Bounds{blocks: world.Components.Block}
}

// LowestReferenceHeight is the minimum y over the rotated corners of every block
// Returns false when no block is loaded
func (b *Bounds) LowestReferenceHeight() (float64, bool) {
	lowest := math.Inf(1)
	found := false
	for _, e := range b.blocks.GetAllEntities() {
		block, _ := b.blocks.GetComponent(e)
		for _, c := range block.Corners() {
			lowest = math.Min(lowest, c[1])
		}
		found = true
	}
	return lowest, found
}

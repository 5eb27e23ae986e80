package arena

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/engine"
)

func TestLowestReferenceHeight(t *testing.T) {
	w := engine.NewWorld(engine.NewResource())
	b := NewBounds(w)

	if _, ok := b.LowestReferenceHeight(); ok {
		t.Fatal("empty level reported a height")
	}

	w.Components.Block.SetComponent(w.CreateEntity(), component.BlockComponent{
		Center: mgl64.Vec2{0, 0},
		Size:   mgl64.Vec2{10, 2},
	})
	if got, ok := b.LowestReferenceHeight(); !ok || math.Abs(got-(-1)) > 1e-9 {
		t.Fatalf("flat ground = %v, %v; want -1", got, ok)
	}

	// A 2x2 square rotated 45° reaches sqrt(2) below its centre
	w.Components.Block.SetComponent(w.CreateEntity(), component.BlockComponent{
		Center: mgl64.Vec2{20, 0},
		Size:   mgl64.Vec2{2, 2},
		Angle:  math.Pi / 4,
	})
	if got, _ := b.LowestReferenceHeight(); math.Abs(got-(-math.Sqrt2)) > 1e-9 {
		t.Fatalf("rotated = %v, want %v", got, -math.Sqrt2)
	}
}

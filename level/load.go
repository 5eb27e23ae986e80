package level

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/topple/component"
	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/parameter"
	"github.com/lixenwraith/topple/physics"
)

// Loaded is the result of building a level
type Loaded struct {
	Space  *physics.Space
	Player core.Entity
	Bricks []core.Entity
}

// Load clears world and builds def into it with a fresh physics space
// Handles are allocated player first, then blocks, then bricks in definition order
// The player starts with the camera marker
func Load(world *engine.World, def Definition) (Loaded, error) {
	if err := def.Validate(); err != nil {
		return Loaded{}, err
	}

	world.Clear()
	space := physics.NewSpace(parameter.Gravity)
	cs := world.Components
	out := Loaded{Space: space}

	out.Player = world.CreateEntity()
	if err := space.AddDynamicBox(out.Player, physics.BoxSpec{
		Center:       def.Player,
		Size:         mgl64.Vec2{parameter.PlayerWidth, parameter.PlayerHeight},
		Mass:         parameter.PlayerMass,
		Friction:     parameter.PlayerFriction,
		LockRotation: true,
	}); err != nil {
		return Loaded{}, fmt.Errorf("level %q player: %w", def.Name, err)
	}
	cs.Player.SetComponent(out.Player, component.PlayerComponent{})
	cs.Picker.SetComponent(out.Player, component.PickerComponent{})
	cs.Facing.SetComponent(out.Player, component.FacingComponent{Direction: mgl64.Vec2{1, 0}})
	cs.RunInput.SetComponent(out.Player, component.RunInputComponent{})
	cs.CameraTarget.SetComponent(out.Player, component.CameraTargetComponent{})

	for i, b := range def.Blocks {
		e := world.CreateEntity()
		if err := space.AddStaticBox(e, physics.BoxSpec{
			Center:   b.Center,
			Size:     b.Size,
			Angle:    b.Angle,
			Friction: parameter.BlockFriction,
		}); err != nil {
			return Loaded{}, fmt.Errorf("level %q block %d: %w", def.Name, i, err)
		}
		cs.Block.SetComponent(e, component.BlockComponent{Center: b.Center, Size: b.Size, Angle: b.Angle})
	}

	for i, b := range def.Bricks {
		e := world.CreateEntity()
		if err := space.AddDynamicBox(e, physics.BoxSpec{
			Center:       b.Position,
			Size:         mgl64.Vec2{parameter.BrickWidth, parameter.BrickHeight},
			Angle:        b.Angle,
			Mass:         parameter.BrickMass,
			GravityScale: parameter.BrickGravityScale,
			Friction:     parameter.BrickFriction,
		}); err != nil {
			return Loaded{}, fmt.Errorf("level %q brick %d: %w", def.Name, i, err)
		}
		if b.Pickable {
			cs.Pickable.SetComponent(e, component.PickableComponent{HoldOffset: parameter.BrickHoldOffset})
		}
		cs.Topple.SetComponent(e, component.ToppleComponent{State: component.ToppleStanding})
		out.Bricks = append(out.Bricks, e)
	}

	world.Resources.Physics = space
	world.Resources.Session.Level = def.Name
	return out, nil
}

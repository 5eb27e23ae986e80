package main

import (
	"fmt"
	"io"

	"github.com/lixenwraith/topple/config"
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/event"
	"github.com/lixenwraith/topple/game"
	"github.com/lixenwraith/topple/parameter"
)

// runHeadless starts the level, tips its first brick and steps until the level
// ends or the configured duration runs out, then prints the metrics
func runHeadless(cfg config.Config, session *game.Session, out io.Writer) error {
	step := cfg.Step()
	session.Push(event.EventStart, nil)

	tipped := false
	for i := 0; i < cfg.HeadlessSteps(); i++ {
		if err := session.Tick(step); err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		switch session.Phase() {
		case game.PhasePlaying:
			if !tipped && len(session.Bricks()) > 0 {
				first := session.Bricks()[0]
				session.View(func(w *engine.World) {
					w.Resources.Physics.SetAngularVelocity(first, parameter.HeadlessNudge)
				})
				tipped = true
			}
		case game.PhaseLevelCompleted, game.PhaseGameOver:
			return report(session, out)
		}
	}
	return report(session, out)
}

func report(session *game.Session, out io.Writer) error {
	for _, m := range session.World().Resources.Status.Snapshot() {
		if _, err := fmt.Fprintf(out, "%s=%s\n", m.Key, m.Value); err != nil {
			return err
		}
	}
	return nil
}

package system

import (
	"github.com/lixenwraith/topple/engine"
	"github.com/lixenwraith/topple/parameter"
)

// stepSeconds returns the tick's fixed step in seconds, falling back to the default step
// so velocity-matching forces never divide by zero
func stepSeconds(w *engine.World) float64 {
	dt := w.Resources.Time.DeltaTime
	if dt <= 0 {
		dt = parameter.DefaultStep
	}
	return dt.Seconds()
}

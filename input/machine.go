package input

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/topple/parameter"
)

// Machine parses tcell events into intents
// Terminals report presses and repeats but no releases, so a run key
// that is not repeated within the hold timeout decays into a stop
type Machine struct {
	keyTable    *KeyTable
	holdTimeout time.Duration

	axis    float64
	lastRun time.Time
}

// NewMachine creates a machine over keys; nil uses DefaultKeyTable
func NewMachine(keys *KeyTable) *Machine {
	if keys == nil {
		keys = DefaultKeyTable()
	}
	return &Machine{
		keyTable:    keys,
		holdTimeout: parameter.RunKeyHoldTimeout,
	}
}

// Process parses one terminal event received at now
func (m *Machine) Process(ev tcell.Event, now time.Time) Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return Intent{Type: IntentResize}
	case *tcell.EventKey:
		return m.processKey(ev, now)
	}
	return Intent{}
}

func (m *Machine) processKey(ev *tcell.EventKey, now time.Time) Intent {
	var (
		entry KeyEntry
		ok    bool
	)
	if ev.Key() == tcell.KeyRune {
		entry, ok = m.keyTable.Runes[unicode.ToLower(ev.Rune())]
	} else {
		entry, ok = m.keyTable.SpecialKeys[ev.Key()]
	}
	if !ok {
		return Intent{}
	}

	switch entry.Intent {
	case IntentRun:
		m.axis = entry.Axis
		m.lastRun = now
		return Intent{Type: IntentRun, Axis: entry.Axis}
	case IntentStop:
		m.axis = 0
		return Intent{Type: IntentStop}
	}
	return Intent{Type: entry.Intent}
}

// Expire returns a stop intent once a run key has gone unrepeated for the hold timeout
func (m *Machine) Expire(now time.Time) (Intent, bool) {
	if m.axis == 0 || now.Sub(m.lastRun) < m.holdTimeout {
		return Intent{}, false
	}
	m.axis = 0
	return Intent{Type: IntentStop}, true
}

package input

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/topple/core"
	"github.com/lixenwraith/topple/event"
	"github.com/lixenwraith/topple/parameter"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestMachineDefaultBindings(t *testing.T) {
	tests := []struct {
		name string
		ev   tcell.Event
		want Intent
	}{
		{"left arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), Intent{IntentRun, -1}},
		{"d", runeKey('d'), Intent{IntentRun, 1}},
		{"uppercase A", runeKey('A'), Intent{IntentRun, -1}},
		{"space", runeKey(' '), Intent{Type: IntentPickPlace}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), Intent{Type: IntentStart}},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Intent{Type: IntentPause}},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), Intent{Type: IntentQuit}},
		{"unbound", runeKey('z'), Intent{}},
		{"resize", tcell.NewEventResize(80, 24), Intent{Type: IntentResize}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine(nil)
			if got := m.Process(tt.ev, time.Now()); got != tt.want {
				t.Errorf("Process = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMachineRunExpires(t *testing.T) {
	m := NewMachine(nil)
	t0 := time.Unix(100, 0)

	m.Process(runeKey('d'), t0)
	if _, ok := m.Expire(t0.Add(parameter.RunKeyHoldTimeout / 2)); ok {
		t.Fatal("expired before the hold timeout")
	}

	// A repeat extends the hold
	m.Process(runeKey('d'), t0.Add(parameter.RunKeyHoldTimeout/2))
	if _, ok := m.Expire(t0.Add(parameter.RunKeyHoldTimeout)); ok {
		t.Fatal("repeat did not extend the hold")
	}

	in, ok := m.Expire(t0.Add(2 * parameter.RunKeyHoldTimeout))
	if !ok || in.Type != IntentStop || in.Axis != 0 {
		t.Fatalf("Expire = %+v, %v", in, ok)
	}
	if _, ok := m.Expire(t0.Add(3 * parameter.RunKeyHoldTimeout)); ok {
		t.Fatal("stop emitted twice")
	}
}

func TestParseKeymap(t *testing.T) {
	override, err := ParseKeymap("k=pick_place, space=none, up=pause, comma=run_left")
	if err != nil {
		t.Fatal(err)
	}
	keys := DefaultKeyTable()
	keys.Merge(override)
	m := NewMachine(keys)
	now := time.Now()

	if got := m.Process(runeKey('k'), now); got.Type != IntentPickPlace {
		t.Errorf("k = %v", got.Type)
	}
	if got := m.Process(runeKey(' '), now); got.Type != IntentNone {
		t.Errorf("space still bound to %v", got.Type)
	}
	if got := m.Process(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), now); got.Type != IntentPause {
		t.Errorf("up = %v", got.Type)
	}
	if got := m.Process(runeKey(','), now); got.Type != IntentRun || got.Axis != -1 {
		t.Errorf("comma = %+v", got)
	}

	for _, bad := range []string{"k", "k=fly", "ab=quit"} {
		if _, err := ParseKeymap(bad); !errors.Is(err, ErrKeymap) {
			t.Errorf("ParseKeymap(%q) err = %v", bad, err)
		}
	}
	if empty, err := ParseKeymap(""); err != nil || len(empty.Runes) != 0 {
		t.Errorf("empty keymap = %+v, %v", empty, err)
	}
}

type recordingPusher struct {
	events []event.GameEvent
}

func (p *recordingPusher) Push(t event.EventType, payload any) {
	p.events = append(p.events, event.GameEvent{Type: t, Payload: payload})
}

func TestRouterApply(t *testing.T) {
	pusher := &recordingPusher{}
	player := core.Entity(0)
	r := NewRouter(pusher, func() core.Entity { return player })

	// No player yet: gameplay intents are dropped, phase intents pass
	r.Apply(Intent{Type: IntentPickPlace})
	r.Apply(Intent{Type: IntentStart})
	if len(pusher.events) != 1 || pusher.events[0].Type != event.EventStart {
		t.Fatalf("events = %+v", pusher.events)
	}

	player = 1
	r.Apply(Intent{Type: IntentRun, Axis: -1})
	r.Apply(Intent{Type: IntentPickPlace})
	r.Apply(Intent{Type: IntentPause})
	r.Apply(Intent{Type: IntentRestart})
	r.Apply(Intent{Type: IntentNextLevel})

	want := []event.EventType{event.EventStart, event.EventRunAxis, event.EventPickPlace,
		event.EventPauseToggle, event.EventRestart, event.EventNextLevel}
	if len(pusher.events) != len(want) {
		t.Fatalf("events = %+v", pusher.events)
	}
	for i, w := range want {
		if pusher.events[i].Type != w {
			t.Errorf("event %d = %v, want %v", i, pusher.events[i].Type, w)
		}
	}
	if p := pusher.events[1].Payload.(*event.RunAxisPayload); p.Player != 1 || p.Axis != -1 {
		t.Errorf("run payload = %+v", p)
	}
	if p := pusher.events[2].Payload.(*event.PickPlacePayload); p.Picker != 1 {
		t.Errorf("pick payload = %+v", p)
	}

	if r.Apply(Intent{Type: IntentQuit}) {
		t.Error("quit did not stop")
	}
}

package input

import "github.com/gdamore/tcell/v2"

// KeyEntry is the intent a key produces
type KeyEntry struct {
	Intent IntentType
	Axis   float64 // IntentRun only
}

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows, Enter, Esc)
	SpecialKeys map[tcell.Key]KeyEntry

	// Printable rune bindings, matched case-insensitively for letters
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]KeyEntry{
			tcell.KeyCtrlQ:  {IntentQuit, 0},
			tcell.KeyCtrlC:  {IntentQuit, 0},
			tcell.KeyLeft:   {IntentRun, -1},
			tcell.KeyRight:  {IntentRun, 1},
			tcell.KeyDown:   {IntentStop, 0},
			tcell.KeyEnter:  {IntentStart, 0},
			tcell.KeyEscape: {IntentPause, 0},
		},
		Runes: map[rune]KeyEntry{
			'q': {IntentQuit, 0},
			'a': {IntentRun, -1},
			'd': {IntentRun, 1},
			's': {IntentStop, 0},
			' ': {IntentPickPlace, 0},
			'e': {IntentPickPlace, 0},
			'p': {IntentPause, 0},
			'r': {IntentRestart, 0},
			'n': {IntentNextLevel, 0},
		},
	}
}

// Merge copies every binding of override into t; a zero entry unbinds the key
func (t *KeyTable) Merge(override *KeyTable) {
	if override == nil {
		return
	}
	for k, e := range override.SpecialKeys {
		if e.Intent == IntentNone {
			delete(t.SpecialKeys, k)
			continue
		}
		t.SpecialKeys[k] = e
	}
	for r, e := range override.Runes {
		if e.Intent == IntentNone {
			delete(t.Runes, r)
			continue
		}
		t.Runes[r] = e
	}
}

package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// ErrKeymap wraps every keymap parse failure
var ErrKeymap = errors.New("keymap")

var specialKeys = map[string]tcell.Key{
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"enter":     tcell.KeyEnter,
	"esc":       tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"backspace": tcell.KeyBackspace2,
}

// ParseKeymap parses "key=action" pairs separated by commas into a sparse override table
// Keys are single runes, rune aliases (space, comma, equal) or special key names
// Binding a key to "none" removes it
func ParseKeymap(spec string) (*KeyTable, error) {
	table := &KeyTable{
		SpecialKeys: make(map[tcell.Key]KeyEntry),
		Runes:       make(map[rune]KeyEntry),
	}
	if strings.TrimSpace(spec) == "" {
		return table, nil
	}

	for _, pair := range strings.Split(spec, ",") {
		key, action, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found {
			return nil, fmt.Errorf("%w: %q is not key=action", ErrKeymap, pair)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		action = strings.ToLower(strings.TrimSpace(action))

		entry, ok := actionRegistry[action]
		if !ok {
			return nil, fmt.Errorf("%w: unknown action %q", ErrKeymap, action)
		}

		if k, ok := specialKeys[key]; ok {
			table.SpecialKeys[k] = entry
			continue
		}
		if r, ok := runeAliases[key]; ok {
			table.Runes[r] = entry
			continue
		}
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("%w: invalid key %q", ErrKeymap, key)
		}
		r, _ := utf8.DecodeRuneInString(key)
		table.Runes[r] = entry
	}
	return table, nil
}

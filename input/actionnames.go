package input

// actionRegistry maps canonical action names to bindings
// Used by the keymap loader to resolve "action=key" overrides
var actionRegistry = map[string]KeyEntry{
	// Unbind sentinel
	"none": {},

	"quit":       {IntentQuit, 0},
	"run_left":   {IntentRun, -1},
	"run_right":  {IntentRun, 1},
	"stop":       {IntentStop, 0},
	"pick_place": {IntentPickPlace, 0},
	"start":      {IntentStart, 0},
	"pause":      {IntentPause, 0},
	"restart":    {IntentRestart, 0},
	"next_level": {IntentNextLevel, 0},
}

// runeAliases names keys that cannot appear bare in a comma list
var runeAliases = map[string]rune{
	"space": ' ',
	"comma": ',',
	"equal": '=',
}

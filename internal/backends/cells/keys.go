package cells

import "github.com/vovakirdan/arcade-runtime/internal/core"

// keyButtons maps key names, in Bubble Tea's spelling, to buttons.
// WASD move, the arrow keys are the four action buttons.
var keyButtons = map[string]core.Button{
	"a": core.ButtonLeft,
	"d": core.ButtonRight,
	"w": core.ButtonUp,
	"s": core.ButtonDown,

	"left":  core.ButtonA,
	"right": core.ButtonB,
	"up":    core.ButtonX,
	"down":  core.ButtonY,

	"q": core.ButtonL,
	"e": core.ButtonR,

	"c":     core.ButtonStart,
	"enter": core.ButtonStart,
	"v":     core.ButtonSelect,

	"f1": core.ButtonF1,
	"f2": core.ButtonF2,
	"f3": core.ButtonF3,
	"f4": core.ButtonF4,
	"f5": core.ButtonF5,
	"f6": core.ButtonF6,
	"f7": core.ButtonF7,
}

// ButtonForKey translates a key name to a button.
func ButtonForKey(name string) (core.Button, bool) {
	b, ok := keyButtons[name]
	return b, ok
}

// IsQuitKey reports the keys that mean the terminal wants to close.
func IsQuitKey(name string) bool {
	return name == "ctrl+c"
}

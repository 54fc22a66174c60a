// Package input routes per-frame input from the active display: the reserved
// F1..F7 band becomes runtime control events, everything else reaches the game.
package input

import "github.com/vovakirdan/arcade-runtime/internal/core"

// ControlEvent is a runtime-level request raised by the reserved band.
// Larger values win when several arrive in the same frame.
type ControlEvent int

const (
	ControlNone ControlEvent = iota
	PreviousDisplay
	NextDisplay
	PreviousGame
	NextGame
	Restart
	ReturnToMenu
	Exit
)

func (e ControlEvent) String() string {
	switch e {
	case ControlNone:
		return "none"
	case PreviousDisplay:
		return "previous-display"
	case NextDisplay:
		return "next-display"
	case PreviousGame:
		return "previous-game"
	case NextGame:
		return "next-game"
	case Restart:
		return "restart"
	case ReturnToMenu:
		return "menu"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// ControlFor maps a reserved button to its control event.
func ControlFor(b core.Button) ControlEvent {
	switch b {
	case core.ButtonF1:
		return PreviousDisplay
	case core.ButtonF2:
		return NextDisplay
	case core.ButtonF3:
		return PreviousGame
	case core.ButtonF4:
		return NextGame
	case core.ButtonF5:
		return Restart
	case core.ButtonF6:
		return ReturnToMenu
	case core.ButtonF7:
		return Exit
	default:
		return ControlNone
	}
}

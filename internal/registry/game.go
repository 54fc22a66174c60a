package registry

import (
	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/texture"
)

// Game is the capability set of a hot-loadable game unit.
// Games contain pure logic: they read input and draw only through the Host.
// A game may also implement io.Closer to release its own state on unload.
type Game interface {
	// Init prepares a fresh session. It is called after loading and again on
	// every restart with the same instance.
	Init(h Host)

	// Update advances the simulation by one fixed tick.
	Update()

	// Draw renders the current state. Called once per frame no matter how
	// many ticks ran.
	Draw()
}

// Host is the runtime API handed to games.
//
// Contract violations (a duplicate texture id, an unknown id, framerate 0,
// text input misuse) panic with the matching core error.
type Host interface {
	SetCellPixelSize(n uint32)
	SetFramerate(n uint32)
	OpenWindow(size core.Vector2u)

	// RegisterTexture creates the texture for id. Ids are unique per session.
	RegisterTexture(id core.TextureID, r core.Recipe) *texture.Handle
	Texture(id core.TextureID) *texture.Handle

	// Input queries never report the reserved F1..F7 band.
	IsButtonJustPressed(b core.Button) bool
	IsButtonHeld(b core.Button) bool
	ReleasedMouseEvent() core.MouseEvent

	StartTextInput()
	TextInput() string
	EndTextInput()

	Clear(c core.Color)
	DrawSprite(pos core.Vector2u, h *texture.Handle)

	RecordScore(value int)
}

// GameEntry describes a launchable game for the menu.
type GameEntry struct {
	Name      string
	Title     string
	HighScore int
}

// Launcher is implemented by hosts that can switch games on request. The menu
// type-asserts its Host to reach it.
type Launcher interface {
	Games() []GameEntry
	// Launch swaps the named game in after the current frame.
	Launch(name string)
	PlayerName() string
	SetPlayerName(name string)
}

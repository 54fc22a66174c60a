package core

import "strings"

// ABIVersion is bumped whenever Display, RawTexture or the game capability
// change shape. Units built against another version are refused at load time.
const ABIVersion = 3

// TextureID identifies a texture within a game session.
type TextureID uint64

// Recipe is the immutable description used to (re)materialize a texture on
// any backend. Pixel backends mostly use Path; text backends mostly use
// Character and the two colors.
type Recipe struct {
	Path       string
	Character  rune
	Foreground Color
	Background Color
	Width      uint32
	Height     uint32
}

// RecipeKind tells a backend how to interpret Recipe.Path.
type RecipeKind int

const (
	RecipeImage RecipeKind = iota // pixel texture decoded from the file
	RecipeGlyph                   // a single glyph of Character rendered from a font file
)

var fontSuffixes = []string{".ttf", ".otf", ".fnt"}

// Kind selects the recipe behavior from the filename suffix.
func (r Recipe) Kind() RecipeKind {
	lower := strings.ToLower(r.Path)
	for _, suffix := range fontSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return RecipeGlyph
		}
	}
	return RecipeImage
}

// RawTexture is a backend-owned resource. It is only valid while the backend
// that produced it is alive and must be released before that backend closes.
type RawTexture interface {
	Release()
}

// Sprite is a draw request in pixel coordinates.
type Sprite struct {
	Position Vector2u
	Texture  RawTexture
}

// Display is the capability set of a hot-loadable rendering and input unit.
//
// All methods are called from the runtime's loop goroutine. Close is the
// instance destructor; the runtime always calls it before releasing the
// library the instance came from.
type Display interface {
	SetCellPixelSize(n uint32)
	CellPixelSize() uint32

	LoadTexture(r Recipe) (RawTexture, error)
	OpenWindow(size Vector2u) error

	// IsButtonJustPressed reports a button that started being held this frame.
	IsButtonJustPressed(b Button) bool
	IsButtonHeld(b Button) bool
	ReleasedMouseEvent() MouseEvent
	IsClosing() bool

	StartTextCapture()
	ReadCapturedText() string
	EndTextCapture()

	Clear(c Color)
	// DrawSprite paints in call order: later sprites cover earlier ones.
	DrawSprite(s Sprite)
	Present() error
	PollEvents()

	Close() error
}

// Package gametest provides an in-memory Host for testing game units without
// a runtime. Textures are materialized as terminal glyphs, so a test can read
// what a game drew as text.
package gametest

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/arcade-runtime/internal/backends/cells"
	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/logging"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
	"github.com/vovakirdan/arcade-runtime/internal/texture"
)

type backend struct {
	canvas *cells.Canvas
}

func (b *backend) SetCellPixelSize(n uint32) { b.canvas.SetCellPixelSize(n) }

func (b *backend) OpenWindow(size core.Vector2u) error {
	b.canvas.Open(size)
	return nil
}

func (b *backend) LoadTexture(r core.Recipe) (core.RawTexture, error) {
	g, err := cells.NewGlyph(r)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Host implements registry.Host and registry.Launcher.
type Host struct {
	Framerate uint32
	Scores    []int
	Catalog   []registry.GameEntry
	Launched  string
	Player    string

	backend  *backend
	textures *texture.Registry
	pressed  core.ButtonSet
	held     core.ButtonSet
	mouse    core.MouseEvent

	capturing bool
	text      strings.Builder
}

var (
	_ registry.Host     = (*Host)(nil)
	_ registry.Launcher = (*Host)(nil)
)

// NewHost returns a host with an empty canvas.
func NewHost() *Host {
	b := &backend{canvas: cells.NewCanvas()}
	return &Host{
		backend:  b,
		textures: texture.New(b, logging.Discard()),
		Player:   "player",
	}
}

// Press makes b just pressed and held until EndFrame.
func (h *Host) Press(b core.Button) {
	h.pressed.Add(b)
	h.held.Add(b)
}

// Hold makes b held without a new press.
func (h *Host) Hold(b core.Button) {
	h.held.Add(b)
}

// Click queues a mouse release over a cell.
func (h *Host) Click(b core.MouseButton, cell core.Vector2u) {
	h.mouse = core.MouseEvent{Type: b, CellPosition: cell}
}

// Type appends text for the game to read while it captures.
func (h *Host) Type(s string) {
	h.text.WriteString(s)
}

// EndFrame clears all buttons and the mouse.
func (h *Host) EndFrame() {
	h.pressed.Clear()
	h.held.Clear()
	h.mouse = core.MouseEvent{}
}

// EndSession drops every texture, as the runtime does before a restart.
func (h *Host) EndSession() {
	h.textures.Reset()
	h.Scores = nil
	if h.capturing {
		h.EndTextInput()
	}
}

// Capturing reports whether the game has text input on.
func (h *Host) Capturing() bool {
	return h.capturing
}

// Textures returns the number of textures the game registered.
func (h *Host) Textures() int {
	return h.textures.Len()
}

// Screen returns what the game drew.
func (h *Host) Screen() *core.Screen {
	return h.backend.canvas.Screen()
}

// Contains reports whether any drawn row contains s.
func (h *Host) Contains(s string) bool {
	return strings.Contains(h.Screen().String(), s)
}

func (h *Host) SetCellPixelSize(n uint32) {
	if err := h.textures.SetCellPixelSize(n); err != nil {
		panic(err)
	}
}

func (h *Host) SetFramerate(n uint32) {
	if n == 0 {
		panic(core.ErrInvalidFramerate)
	}
	h.Framerate = n
}

func (h *Host) OpenWindow(size core.Vector2u) {
	if err := h.textures.OpenWindow(size); err != nil {
		panic(err)
	}
}

func (h *Host) RegisterTexture(id core.TextureID, r core.Recipe) *texture.Handle {
	handle, err := h.textures.Register(id, r)
	if err != nil {
		panic(err)
	}
	return handle
}

func (h *Host) Texture(id core.TextureID) *texture.Handle {
	handle, err := h.textures.Lookup(id)
	if err != nil {
		panic(err)
	}
	return handle
}

func (h *Host) IsButtonJustPressed(b core.Button) bool {
	return !b.Reserved() && h.pressed.Has(b)
}

func (h *Host) IsButtonHeld(b core.Button) bool {
	return !b.Reserved() && h.held.Has(b)
}

func (h *Host) ReleasedMouseEvent() core.MouseEvent {
	ev := h.mouse
	h.mouse = core.MouseEvent{}
	return ev
}

func (h *Host) StartTextInput() {
	if h.capturing {
		panic(core.ErrAlreadyCapturing)
	}
	h.capturing = true
	h.text.Reset()
}

func (h *Host) TextInput() string {
	if !h.capturing {
		panic(core.ErrNotCapturing)
	}
	s := h.text.String()
	h.text.Reset()
	return s
}

func (h *Host) EndTextInput() {
	if !h.capturing {
		panic(core.ErrNotCapturing)
	}
	h.capturing = false
	h.text.Reset()
}

func (h *Host) Clear(c core.Color) {
	h.backend.canvas.Clear(c)
}

func (h *Host) DrawSprite(pos core.Vector2u, handle *texture.Handle) {
	sprite, ok := h.textures.Sprite(handle, pos)
	if !ok {
		panic(fmt.Sprintf("gametest: drawing an unbound handle %v", handle))
	}
	h.backend.canvas.Draw(sprite)
}

func (h *Host) RecordScore(value int) {
	h.Scores = append(h.Scores, value)
}

func (h *Host) Games() []registry.GameEntry {
	return h.Catalog
}

func (h *Host) Launch(name string) {
	h.Launched = name
}

func (h *Host) PlayerName() string {
	return h.Player
}

func (h *Host) SetPlayerName(name string) {
	h.Player = name
}

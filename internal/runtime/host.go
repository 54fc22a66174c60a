package runtime

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
	"github.com/vovakirdan/arcade-runtime/internal/texture"
)

// host is the API the active game sees. Game mistakes panic; failures of the
// environment stop the loop through Controller.fail.
type host struct {
	c *Controller
}

var (
	_ registry.Host     = (*host)(nil)
	_ registry.Launcher = (*host)(nil)
)

func violation(op string, err error) {
	panic(fmt.Errorf("runtime: %s: %w", op, err))
}

func (h *host) SetCellPixelSize(n uint32) {
	if err := h.c.textures.SetCellPixelSize(n); err != nil {
		violation("set cell pixel size", err)
	}
}

func (h *host) SetFramerate(n uint32) {
	if err := h.c.sched.SetFramerate(n); err != nil {
		violation("set framerate", err)
	}
}

func (h *host) OpenWindow(size core.Vector2u) {
	if err := h.c.textures.OpenWindow(size); err != nil {
		h.c.fail(err)
	}
}

func (h *host) RegisterTexture(id core.TextureID, r core.Recipe) *texture.Handle {
	handle, err := h.c.textures.Register(id, r)
	if err != nil {
		if core.IsContractViolation(err) {
			violation("register texture", err)
		}
		h.c.log.Warn("texture not loaded", "id", id, "path", r.Path, "err", err)
		return nil
	}
	return handle
}

func (h *host) Texture(id core.TextureID) *texture.Handle {
	handle, err := h.c.textures.Lookup(id)
	if err != nil {
		violation("texture", err)
	}
	return handle
}

func (h *host) IsButtonJustPressed(b core.Button) bool {
	return h.c.router.IsButtonJustPressed(b)
}

func (h *host) IsButtonHeld(b core.Button) bool {
	return h.c.router.IsButtonHeld(b)
}

func (h *host) ReleasedMouseEvent() core.MouseEvent {
	return h.c.router.ReleasedMouseEvent()
}

func (h *host) StartTextInput() {
	if err := h.c.router.StartTextInput(); err != nil {
		violation("start text input", err)
	}
}

func (h *host) TextInput() string {
	text, err := h.c.router.TextInput()
	if err != nil {
		violation("text input", err)
	}
	return text
}

func (h *host) EndTextInput() {
	if err := h.c.router.EndTextInput(); err != nil {
		violation("end text input", err)
	}
}

func (h *host) Clear(c core.Color) {
	h.c.display().Clear(c)
}

func (h *host) DrawSprite(pos core.Vector2u, handle *texture.Handle) {
	sprite, ok := h.c.textures.Sprite(handle, pos)
	if !ok {
		if handle == nil {
			violation("draw sprite", errors.New("nil texture handle"))
		}
		h.c.log.Debug("skipping unbound texture", "id", handle.ID())
		return
	}
	h.c.display().DrawSprite(sprite)
}

func (h *host) RecordScore(value int) {
	h.c.scores.Record(value)
}

// Launcher

func (h *host) Games() []registry.GameEntry {
	units := h.c.games.Units()
	entries := make([]registry.GameEntry, 0, len(units))
	for _, u := range units {
		entries = append(entries, registry.GameEntry{
			Name:      u.Name,
			Title:     u.DisplayTitle(),
			HighScore: h.c.highScore(u.Name),
		})
	}
	return entries
}

func (h *host) Launch(name string) {
	h.c.pendingLaunch = name
}

func (h *host) PlayerName() string {
	return h.c.player
}

func (h *host) SetPlayerName(name string) {
	h.c.player = name
	if h.c.scores != nil {
		h.c.scores.player = name
	}
}

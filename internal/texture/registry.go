// Package texture gives games stable handles to textures whose backend-owned
// resources are thrown away and rebuilt each time the display backend changes.
package texture

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// Handle is the only texture reference a game ever holds. Its address stays
// the same for the whole session; only the resource behind it is rebound.
type Handle struct {
	id     core.TextureID
	recipe core.Recipe
	raw    core.RawTexture
}

// ID returns the identifier the handle was registered under.
func (h *Handle) ID() core.TextureID {
	return h.id
}

// Recipe returns the recipe the handle was registered with.
func (h *Handle) Recipe() core.Recipe {
	return h.recipe
}

// Valid reports whether the handle is bound to a live resource. Handles from
// an ended session are unbound.
func (h *Handle) Valid() bool {
	return h != nil && h.raw != nil
}

// Backend is the part of a display the registry drives.
type Backend interface {
	SetCellPixelSize(n uint32)
	OpenWindow(size core.Vector2u) error
	LoadTexture(r core.Recipe) (core.RawTexture, error)
}

// Registry maps texture ids to handles and rematerializes every recipe into a
// new backend on swap. It is confined to the loop goroutine.
type Registry struct {
	backend Backend
	handles store
	byID    map[core.TextureID]*Handle

	cellSize   uint32
	window     core.Vector2u
	windowOpen bool

	log *log.Logger
}

// New creates a registry bound to the given backend.
func New(backend Backend, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Default()
	}
	return &Registry{
		backend: backend,
		byID:    make(map[core.TextureID]*Handle),
		log:     logger.WithPrefix("texture"),
	}
}

// Len returns the number of textures registered in the current session.
func (r *Registry) Len() int {
	return r.handles.len()
}

// SetCellPixelSize applies the cell size to the backend and remembers it for
// later swaps.
func (r *Registry) SetCellPixelSize(n uint32) error {
	if n == 0 {
		return core.ErrInvalidCellSize
	}
	r.cellSize = n
	r.backend.SetCellPixelSize(n)
	return nil
}

// CellPixelSize returns the cell size last set through the registry, or zero.
func (r *Registry) CellPixelSize() uint32 {
	return r.cellSize
}

// OpenWindow opens the backend window and remembers its size for later swaps.
func (r *Registry) OpenWindow(size core.Vector2u) error {
	if err := r.backend.OpenWindow(size); err != nil {
		return fmt.Errorf("texture: open window: %w", err)
	}
	r.window = size
	r.windowOpen = true
	return nil
}

// Window returns the last opened window size.
func (r *Registry) Window() (core.Vector2u, bool) {
	return r.window, r.windowOpen
}

// Register materializes recipe on the current backend and returns the new
// handle. An id may be registered once per session; a second attempt returns
// ErrDuplicateResourceID and leaves the registry untouched, as does a failed
// load.
func (r *Registry) Register(id core.TextureID, recipe core.Recipe) (*Handle, error) {
	if _, exists := r.byID[id]; exists {
		return nil, fmt.Errorf("texture: register %d: %w", id, core.ErrDuplicateResourceID)
	}

	raw, err := r.backend.LoadTexture(recipe)
	if err != nil {
		return nil, fmt.Errorf("texture: register %d: %w", id, err)
	}

	h := r.handles.alloc()
	*h = Handle{id: id, recipe: recipe, raw: raw}
	r.byID[id] = h
	return h, nil
}

// Lookup returns the handle registered under id.
func (r *Registry) Lookup(id core.TextureID) (*Handle, error) {
	h, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("texture: lookup %d: %w", id, core.ErrUnknownResourceID)
	}
	return h, nil
}

// Sprite builds a draw request for h. Games never see the raw resource; they
// pass the handle and the runtime turns it into a sprite here. It reports
// false for a nil or unbound handle.
func (r *Registry) Sprite(h *Handle, pos core.Vector2u) (core.Sprite, bool) {
	if !h.Valid() {
		return core.Sprite{}, false
	}
	return core.Sprite{Position: pos, Texture: h.raw}, true
}

// Reload holds the resources materialized on a staged backend. Nothing in the
// registry changes until Commit.
type Reload struct {
	reg    *Registry
	target Backend
	raws   []core.RawTexture
	done   bool
}

// Prepare replays the backend settings onto next and then loads every recipe,
// in registration order. On the first failure it releases what it loaded and
// returns a *core.ReloadError; the registry still points at the old backend.
func (r *Registry) Prepare(next Backend) (*Reload, error) {
	if r.cellSize != 0 {
		next.SetCellPixelSize(r.cellSize)
	}
	if r.windowOpen {
		if err := next.OpenWindow(r.window); err != nil {
			return nil, fmt.Errorf("texture: replay window: %w", err)
		}
	}

	p := &Reload{reg: r, target: next, raws: make([]core.RawTexture, 0, r.handles.len())}
	var failed error
	r.handles.each(func(_ int, h *Handle) {
		if failed != nil {
			return
		}
		raw, err := next.LoadTexture(h.recipe)
		if err != nil {
			failed = &core.ReloadError{ID: h.id, Err: err}
			return
		}
		p.raws = append(p.raws, raw)
	})
	if failed != nil {
		p.Abort()
		return nil, failed
	}
	return p, nil
}

// Commit rebinds every handle in place to its new resource, releases the old
// resources and makes the staged backend current.
func (p *Reload) Commit() {
	if p.done {
		return
	}
	p.done = true
	r := p.reg
	r.handles.each(func(i int, h *Handle) {
		if h.raw != nil {
			h.raw.Release()
		}
		h.raw = p.raws[i]
	})
	r.backend = p.target
	r.log.Debug("textures rebound", "count", len(p.raws))
}

// Abort releases the staged resources. The registry is unchanged.
func (p *Reload) Abort() {
	if p.done {
		return
	}
	p.done = true
	for _, raw := range p.raws {
		raw.Release()
	}
	p.raws = nil
}

// ReloadAll is Prepare followed by Commit.
func (r *Registry) ReloadAll(next Backend) error {
	p, err := r.Prepare(next)
	if err != nil {
		return err
	}
	p.Commit()
	return nil
}

// Reset ends the texture session: every resource is released, every handle is
// unbound and ids become free again. Backend settings are kept.
func (r *Registry) Reset() {
	r.release()
	r.handles.reset()
	r.byID = make(map[core.TextureID]*Handle)
}

// release frees every backend resource while keeping the handles.
func (r *Registry) release() {
	r.handles.each(func(_ int, h *Handle) {
		if h.raw != nil {
			h.raw.Release()
			h.raw = nil
		}
	})
}

// Close releases every resource. Call it before closing the backend.
func (r *Registry) Close() {
	r.release()
}

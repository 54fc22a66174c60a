package runtime

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
	"github.com/vovakirdan/arcade-runtime/internal/storage"
	"github.com/vovakirdan/arcade-runtime/internal/texture"
)

var errStubbornClose = errors.New("display refused to close")

// journal collects lifecycle events of the fakes in call order.
var journal []string

var (
	createdDisplays []*fakeDisplay
	createdGames    []*fakeGame
)

func resetFakes() {
	journal = nil
	createdDisplays = nil
	createdGames = nil
}

func init() {
	for _, name := range []string{"rt-a", "rt-b", "rt-broken", "rt-stubborn"} {
		name := name
		registry.RegisterDisplay(name, name, func() core.Display {
			d := &fakeDisplay{name: name, pressed: make(map[core.Button]bool), failLoads: name == "rt-broken"}
			if name == "rt-stubborn" {
				d.closeErr = errStubbornClose
			}
			createdDisplays = append(createdDisplays, d)
			return d
		})
	}
	for _, name := range []string{"rt-one", "rt-two", "rt-menu"} {
		name := name
		registry.RegisterGame(name, name, func() registry.Game {
			g := &fakeGame{name: name}
			createdGames = append(createdGames, g)
			return g
		})
	}
}

type fakeRaw struct {
	owner    *fakeDisplay
	recipe   core.Recipe
	released bool
}

func (r *fakeRaw) Release() {
	if r.released {
		panic("raw texture released twice")
	}
	r.released = true
}

type fakeDisplay struct {
	name      string
	failLoads bool
	closeErr  error

	cellSize  uint32
	window    core.Vector2u
	loaded    []*fakeRaw
	drawn     []core.Sprite
	pressed   map[core.Button]bool
	mouse     core.MouseEvent
	closing   bool
	capturing bool
	typed     string
	closed    bool
	presents  int
}

func (d *fakeDisplay) SetCellPixelSize(n uint32) { d.cellSize = n }
func (d *fakeDisplay) CellPixelSize() uint32     { return d.cellSize }

func (d *fakeDisplay) LoadTexture(r core.Recipe) (core.RawTexture, error) {
	if d.failLoads || r.Path == "corrupt.png" {
		return nil, errors.New("cannot decode")
	}
	raw := &fakeRaw{owner: d, recipe: r}
	d.loaded = append(d.loaded, raw)
	return raw, nil
}

func (d *fakeDisplay) OpenWindow(size core.Vector2u) error {
	d.window = size
	return nil
}

func (d *fakeDisplay) IsButtonJustPressed(b core.Button) bool { return d.pressed[b] }
func (d *fakeDisplay) IsButtonHeld(b core.Button) bool        { return d.pressed[b] }

func (d *fakeDisplay) ReleasedMouseEvent() core.MouseEvent {
	ev := d.mouse
	d.mouse = core.MouseEvent{}
	return ev
}

func (d *fakeDisplay) IsClosing() bool { return d.closing }

func (d *fakeDisplay) StartTextCapture() { d.capturing = true }
func (d *fakeDisplay) EndTextCapture()   { d.capturing = false }

func (d *fakeDisplay) ReadCapturedText() string {
	t := d.typed
	d.typed = ""
	return t
}

func (d *fakeDisplay) Clear(core.Color) { d.drawn = d.drawn[:0] }

func (d *fakeDisplay) DrawSprite(s core.Sprite) {
	if raw, ok := s.Texture.(*fakeRaw); !ok || raw.owner != d || raw.released {
		panic(fmt.Sprintf("%s drew a foreign or released texture", d.name))
	}
	d.drawn = append(d.drawn, s)
}

func (d *fakeDisplay) Present() error {
	d.presents++
	return nil
}

// PollEvents ends the input frame.
func (d *fakeDisplay) PollEvents() {
	d.pressed = make(map[core.Button]bool)
}

func (d *fakeDisplay) Close() error {
	for _, raw := range d.loaded {
		if !raw.released {
			panic(fmt.Sprintf("%s closed with live textures", d.name))
		}
	}
	d.closed = true
	journal = append(journal, "close "+d.name)
	return d.closeErr
}

type fakeGame struct {
	name    string
	host    registry.Host
	inits   int
	updates int
	draws   int
	closed  bool

	apple, wall *texture.Handle
}

func (g *fakeGame) Init(h registry.Host) {
	g.host = h
	g.inits++
	journal = append(journal, "init "+g.name)
	h.OpenWindow(core.Vector2u{X: 320, Y: 240})
	g.apple = h.RegisterTexture(1, core.Recipe{Path: "apple.png", Character: 'o', Width: 16, Height: 16})
	g.wall = h.RegisterTexture(2, core.Recipe{Path: "wall.png", Character: '#', Width: 16, Height: 16})
}

func (g *fakeGame) Update() { g.updates++ }

func (g *fakeGame) Draw() {
	g.draws++
	g.host.Clear(core.ColorBlack)
	g.host.DrawSprite(core.Vector2u{X: 0, Y: 0}, g.wall)
	g.host.DrawSprite(core.Vector2u{X: 16, Y: 0}, g.apple)
}

func (g *fakeGame) Close() error {
	g.closed = true
	journal = append(journal, "close "+g.name)
	return nil
}

type memoryStore struct {
	sessions []storage.Session
	high     map[string]int
}

func (m *memoryStore) SaveSession(sess storage.Session) error {
	if len(sess.Scores) == 0 {
		return nil
	}
	m.sessions = append(m.sessions, sess)
	return nil
}

func (m *memoryStore) HighScore(game string) (int, error) {
	return m.high[game], nil
}

func quietLogger() *log.Logger {
	l := log.New(os.Stderr)
	l.SetLevel(log.FatalLevel)
	return l
}

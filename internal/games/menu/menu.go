// Package menu is the pseudo-game the runtime shows between games. It lists
// the game catalog with high scores, launches the chosen game and lets the
// player change the name scores are saved under.
package menu

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/games/glyph"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

const (
	framerate  = 30
	cellPixels = 16
	columns    = 40
	listTop    = 4
	maxVisible = 10
	maxName    = 16
)

func init() {
	registry.RegisterGame("menu", "Menu", func() registry.Game {
		return New()
	})
}

// Menu implements registry.Game.
type Menu struct {
	host     registry.Host
	launcher registry.Launcher
	paint    *glyph.Painter

	games    []registry.GameEntry
	selected int
	scroll   int

	editing bool
	name    []rune
}

// New returns a menu. It needs a Host that also implements
// registry.Launcher to launch anything.
func New() *Menu {
	return &Menu{}
}

func rows() int {
	return listTop + maxVisible + 3
}

// Init reads the catalog and opens the window.
func (m *Menu) Init(h registry.Host) {
	m.host = h
	m.launcher, _ = h.(registry.Launcher)
	m.games = nil
	if m.launcher != nil {
		m.games = m.launcher.Games()
	}
	m.selected = min(m.selected, max(len(m.games)-1, 0))
	m.scroll = 0
	m.editing = false
	m.name = nil

	h.SetFramerate(framerate)
	h.SetCellPixelSize(cellPixels)
	h.OpenWindow(core.Vector2u{X: columns * cellPixels, Y: uint32(rows() * cellPixels)})
	m.paint = glyph.New(h, 1, cellPixels)
}

// Selected returns the index of the highlighted game.
func (m *Menu) Selected() int {
	return m.selected
}

// Editing reports whether the player name is being typed.
func (m *Menu) Editing() bool {
	return m.editing
}

func (m *Menu) Update() {
	if m.editing {
		m.updateName()
		return
	}

	h := m.host
	switch {
	case h.IsButtonJustPressed(core.ButtonUp):
		m.move(-1)
	case h.IsButtonJustPressed(core.ButtonDown):
		m.move(1)
	case h.IsButtonJustPressed(core.ButtonA), h.IsButtonJustPressed(core.ButtonStart):
		m.launch(m.selected)
	case h.IsButtonJustPressed(core.ButtonSelect):
		m.startEditing()
	}

	if ev := h.ReleasedMouseEvent(); ev.Type == core.MouseLeft {
		row := int(ev.CellPosition.Y) - listTop
		if row >= 0 && row < min(maxVisible, len(m.games)) {
			m.selected = m.scroll + row
			m.launch(m.selected)
		}
	}
}

func (m *Menu) move(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.selected = (m.selected + delta + len(m.games)) % len(m.games)
	if m.selected < m.scroll {
		m.scroll = m.selected
	}
	if m.selected >= m.scroll+maxVisible {
		m.scroll = m.selected - maxVisible + 1
	}
}

func (m *Menu) launch(i int) {
	if m.launcher == nil || i < 0 || i >= len(m.games) {
		return
	}
	m.launcher.Launch(m.games[i].Name)
}

func (m *Menu) startEditing() {
	if m.launcher == nil {
		return
	}
	m.name = []rune(m.launcher.PlayerName())
	m.editing = true
	m.host.StartTextInput()
}

// updateName applies typed text: backspace erases, enter commits.
func (m *Menu) updateName() {
	for _, r := range m.host.TextInput() {
		switch r {
		case core.TextBackspace:
			if len(m.name) > 0 {
				m.name = m.name[:len(m.name)-1]
			}
		case core.TextEnter:
			m.commitName()
			return
		default:
			if len(m.name) < maxName {
				m.name = append(m.name, r)
			}
		}
	}
}

func (m *Menu) commitName() {
	if name := strings.TrimSpace(string(m.name)); name != "" {
		m.launcher.SetPlayerName(name)
	}
	m.editing = false
	m.name = nil
	m.host.EndTextInput()
}

func (m *Menu) Draw() {
	p := m.paint
	m.host.Clear(core.ColorBlack)

	p.Center(columns, 0, "A R C A D E", core.ColorYellow, core.ColorBlack)

	player := ""
	if m.launcher != nil {
		player = m.launcher.PlayerName()
	}
	if m.editing {
		p.Text(2, 2, "Name: "+string(m.name)+"_", core.ColorCyan, core.ColorBlack)
	} else {
		p.Text(2, 2, "Player: "+player, core.ColorWhite, core.ColorBlack)
	}

	if len(m.games) == 0 {
		p.Text(2, listTop, "No games configured", core.ColorRed, core.ColorBlack)
	}
	for row := 0; row < maxVisible && m.scroll+row < len(m.games); row++ {
		i := m.scroll + row
		e := m.games[i]
		fg, bg := core.ColorWhite, core.ColorBlack
		marker := "  "
		if i == m.selected {
			fg, bg = core.ColorBlack, core.ColorGreen
			marker = "> "
		}
		score := fmt.Sprintf("%6d", e.HighScore)
		title := e.Title
		room := columns - 4 - len(marker) - len(score)
		if utf8.RuneCountInString(title) > room {
			title = string([]rune(title)[:room])
		}
		line := marker + title + strings.Repeat(" ", room-utf8.RuneCountInString(title)) + score
		p.Text(2, listTop+row, line, fg, bg)
	}

	help := "Up/Down pick  A play  Select name"
	if m.editing {
		help = "Type a name  Enter saves"
	}
	p.Center(columns, rows()-1, help, core.ColorWhite, core.ColorBlack)
}

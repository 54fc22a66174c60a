package menu

import (
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/games/gametest"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

func catalog() []registry.GameEntry {
	return []registry.GameEntry{
		{Name: "snake", Title: "Snake", HighScore: 120},
		{Name: "2048", Title: "2048", HighScore: 2048},
		{Name: "snake_endless", Title: "Snake (Endless)"},
	}
}

func start(t *testing.T) (*Menu, *gametest.Host) {
	t.Helper()
	h := gametest.NewHost()
	h.Catalog = catalog()
	m := New()
	m.Init(h)
	return m, h
}

func step(m *Menu, h *gametest.Host, pressed ...core.Button) {
	for _, b := range pressed {
		h.Press(b)
	}
	m.Update()
	m.Draw()
	h.EndFrame()
}

func TestListsGamesWithScores(t *testing.T) {
	m, h := start(t)
	m.Draw()

	if h.Framerate != framerate {
		t.Fatalf("framerate = %d, want %d", h.Framerate, framerate)
	}
	for _, want := range []string{"Snake", "120", "2048", "Snake (Endless)", "Player: player"} {
		if !h.Contains(want) {
			t.Errorf("screen misses %q:\n%s", want, h.Screen().String())
		}
	}
	row := h.Screen().Row(listTop)
	if !strings.Contains(row, "> Snake") {
		t.Errorf("first row = %q, want the selection marker", row)
	}
}

func TestNavigationWraps(t *testing.T) {
	m, h := start(t)

	step(m, h, core.ButtonDown)
	if m.Selected() != 1 {
		t.Fatalf("selected = %d after Down, want 1", m.Selected())
	}
	step(m, h, core.ButtonUp)
	step(m, h, core.ButtonUp)
	if m.Selected() != 2 {
		t.Fatalf("selected = %d after wrapping Up, want 2", m.Selected())
	}
	if h.Launched != "" {
		t.Fatalf("navigation launched %q", h.Launched)
	}
}

func TestLaunchSelected(t *testing.T) {
	m, h := start(t)
	step(m, h, core.ButtonDown)
	step(m, h, core.ButtonA)
	if h.Launched != "2048" {
		t.Fatalf("launched %q, want 2048", h.Launched)
	}
}

func TestMouseReleaseLaunchesRow(t *testing.T) {
	m, h := start(t)

	h.Click(core.MouseLeft, core.Vector2u{X: 5, Y: listTop + 2})
	step(m, h)
	if h.Launched != "snake_endless" {
		t.Fatalf("launched %q, want snake_endless", h.Launched)
	}

	h.Launched = ""
	h.Click(core.MouseLeft, core.Vector2u{X: 5, Y: listTop + 3})
	step(m, h)
	if h.Launched != "" {
		t.Fatalf("click below the list launched %q", h.Launched)
	}

	h.Click(core.MouseRight, core.Vector2u{X: 5, Y: listTop})
	step(m, h)
	if h.Launched != "" {
		t.Fatalf("right click launched %q", h.Launched)
	}
}

func TestEditPlayerName(t *testing.T) {
	m, h := start(t)

	step(m, h, core.ButtonSelect)
	if !m.Editing() || !h.Capturing() {
		t.Fatal("Select did not start text capture")
	}

	h.Type("\b\b\b\b\b\bAnn")
	step(m, h)
	if !h.Contains("Name: Ann_") {
		t.Fatalf("screen misses the name being typed:\n%s", h.Screen().String())
	}
	if h.Player != "player" {
		t.Fatalf("name committed early: %q", h.Player)
	}

	// Buttons do nothing while typing.
	h.Type("a\n")
	step(m, h, core.ButtonA)
	if h.Launched != "" {
		t.Fatalf("launched %q while typing", h.Launched)
	}
	if h.Player != "Anna" {
		t.Fatalf("player = %q, want Anna", h.Player)
	}
	if m.Editing() || h.Capturing() {
		t.Fatal("Enter did not end text capture")
	}
	if !h.Contains("Player: Anna") {
		t.Fatalf("screen misses the new name:\n%s", h.Screen().String())
	}
}

func TestEmptyNameKeepsOld(t *testing.T) {
	m, h := start(t)
	step(m, h, core.ButtonSelect)
	h.Type("\b\b\b\b\b\b  \n")
	step(m, h)
	if h.Player != "player" {
		t.Fatalf("player = %q, want the old name", h.Player)
	}
	if h.Capturing() {
		t.Fatal("capture still on")
	}
}

func TestNameLengthLimit(t *testing.T) {
	m, h := start(t)
	step(m, h, core.ButtonSelect)
	h.Type(strings.Repeat("x", 40) + "\n")
	step(m, h)
	if got := len(h.Player); got != maxName {
		t.Fatalf("name length = %d, want %d", got, maxName)
	}
}

func TestScrollsLongCatalog(t *testing.T) {
	h := gametest.NewHost()
	for i := range 15 {
		h.Catalog = append(h.Catalog, registry.GameEntry{
			Name:  "g" + string(rune('a'+i)),
			Title: "Game " + string(rune('A'+i)),
		})
	}
	m := New()
	m.Init(h)

	for range 12 {
		step(m, h, core.ButtonDown)
	}
	if m.Selected() != 12 {
		t.Fatalf("selected = %d, want 12", m.Selected())
	}
	if !h.Contains("> Game M") {
		t.Fatalf("selected game not visible:\n%s", h.Screen().String())
	}
	if h.Contains("Game A") {
		t.Fatal("first game should have scrolled off")
	}

	h.Click(core.MouseLeft, core.Vector2u{Y: listTop})
	step(m, h)
	if h.Launched != "gd" {
		t.Fatalf("launched %q, want gd", h.Launched)
	}
}

func TestEmptyCatalog(t *testing.T) {
	h := gametest.NewHost()
	m := New()
	m.Init(h)
	step(m, h, core.ButtonDown)
	step(m, h, core.ButtonA)
	if h.Launched != "" {
		t.Fatalf("launched %q from an empty catalog", h.Launched)
	}
	if !h.Contains("No games configured") {
		t.Fatal("empty catalog message missing")
	}
}

func TestReinitKeepsSelectionInRange(t *testing.T) {
	m, h := start(t)
	step(m, h, core.ButtonDown)
	step(m, h, core.ButtonDown)
	if m.Selected() != 2 {
		t.Fatalf("selected = %d, want 2", m.Selected())
	}

	h.EndSession()
	h.Catalog = h.Catalog[:1]
	m.Init(h)
	if m.Selected() != 0 {
		t.Fatalf("selected = %d after the catalog shrank, want 0", m.Selected())
	}
	m.Draw()
}

// Package registry provides the catalog of units compiled into the binary.
// Display backends and games register themselves in init() functions, so the
// runtime can open "builtin:<name>" units without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// Kind tells display units from game units.
type Kind int

const (
	KindDisplay Kind = iota
	KindGame
)

func (k Kind) String() string {
	switch k {
	case KindDisplay:
		return "display"
	case KindGame:
		return "game"
	default:
		return "unknown"
	}
}

// DisplayFactory creates a new display backend instance.
type DisplayFactory func() core.Display

// GameFactory creates a new game instance.
type GameFactory func() Game

// Info contains metadata about a registered unit.
type Info struct {
	Name  string
	Title string
	Kind  Kind
}

type entry struct {
	info    Info
	display DisplayFactory
	game    GameFactory
}

var (
	entries = make(map[Kind]map[string]entry)
	mu      sync.RWMutex
)

func add(e entry) {
	mu.Lock()
	defer mu.Unlock()

	byName, ok := entries[e.info.Kind]
	if !ok {
		byName = make(map[string]entry)
		entries[e.info.Kind] = byName
	}
	if _, exists := byName[e.info.Name]; exists {
		panic(fmt.Sprintf("registry: %s %q already registered", e.info.Kind, e.info.Name))
	}
	byName[e.info.Name] = e
}

// RegisterDisplay adds a display factory to the registry.
// Panics if a display with the same name is already registered.
func RegisterDisplay(name, title string, f DisplayFactory) {
	add(entry{info: Info{Name: name, Title: title, Kind: KindDisplay}, display: f})
}

// RegisterGame adds a game factory to the registry.
// Panics if a game with the same name is already registered.
func RegisterGame(name, title string, f GameFactory) {
	add(entry{info: Info{Name: name, Title: title, Kind: KindGame}, game: f})
}

// List returns information about all registered units of a kind, sorted by name.
func List(kind Kind) []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries[kind]))
	for _, e := range entries[kind] {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Lookup returns the metadata of a registered unit.
func Lookup(kind Kind, name string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[kind][name]
	return e.info, ok
}

// CreateDisplay instantiates a display backend by name.
func CreateDisplay(name string) (core.Display, error) {
	mu.RLock()
	e, ok := entries[KindDisplay][name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown display %q", name)
	}
	return e.display(), nil
}

// CreateGame instantiates a game by name.
func CreateGame(name string) (Game, error) {
	mu.RLock()
	e, ok := entries[KindGame][name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", name)
	}
	return e.game(), nil
}

// Exists checks if a unit with the given kind and name is registered.
func Exists(kind Kind, name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[kind][name]
	return ok
}

// Package config provides the runtime configuration: catalogs of display and
// game units, frame pacing, and where scores and logs live.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config is the whole runtime configuration.
type Config struct {
	Framerate     uint32   `yaml:"framerate" toml:"framerate"`
	CatchUpCap    int      `yaml:"catch_up_cap" toml:"catch_up_cap"`
	CellPixelSize uint32   `yaml:"cell_pixel_size" toml:"cell_pixel_size"`
	Displays      []Unit   `yaml:"displays" toml:"displays"`
	Games         []Unit   `yaml:"games" toml:"games"`
	Menu          string   `yaml:"menu" toml:"menu"` // unit path of the menu pseudo-game
	Start         Start    `yaml:"start" toml:"start"`
	Scores        Scores   `yaml:"scores" toml:"scores"`
	Log           Log      `yaml:"log" toml:"log"`
	Watch         bool     `yaml:"watch" toml:"watch"` // reload units when their file changes
	Headless      Headless `yaml:"headless" toml:"headless"`
}

// Unit is one catalog entry.
type Unit struct {
	Name  string `yaml:"name" toml:"name"`
	Title string `yaml:"title" toml:"title"`
	Path  string `yaml:"path" toml:"path"` // builtin:<name>, a .so plugin or a .wasm game
}

// DisplayTitle returns the title, falling back to the name.
func (u Unit) DisplayTitle() string {
	if u.Title != "" {
		return u.Title
	}
	return u.Name
}

// Start selects the units active when the runtime boots.
type Start struct {
	Display string `yaml:"display" toml:"display"`
	Game    string `yaml:"game" toml:"game"` // empty starts in the menu
	Player  string `yaml:"player" toml:"player"`
}

// Scores configures the score store.
type Scores struct {
	DB string `yaml:"db" toml:"db"`
}

// Log configures the runtime log.
type Log struct {
	Level string `yaml:"level" toml:"level"` // debug, info, warn, error
	File  string `yaml:"file" toml:"file"`   // empty logs to stderr
}

// Headless configures the image backend.
type Headless struct {
	Record string `yaml:"record" toml:"record"` // .gif or .png path to write frames to
	Font   string `yaml:"font" toml:"font"`     // fallback font for glyph recipes
	Frames int    `yaml:"frames" toml:"frames"` // close after this many frames; 0 runs until closed
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Framerate:     30,
		CatchUpCap:    5,
		CellPixelSize: 16,
		Displays: []Unit{
			{Name: "tcell", Title: "Terminal (tcell)", Path: "builtin:tcell"},
			{Name: "bubbletea", Title: "Terminal (Bubble Tea)", Path: "builtin:bubbletea"},
			{Name: "headless", Title: "Headless (images)", Path: "builtin:headless"},
		},
		Games: []Unit{
			{Name: "snake", Title: "Snake", Path: "builtin:snake"},
			{Name: "2048", Title: "2048", Path: "builtin:2048"},
			{Name: "flappy", Title: "Flappy Bird", Path: "builtin:flappy"},
			{Name: "snake_endless", Title: "Snake (Endless)", Path: "builtin:snake_endless"},
		},
		Menu:   "builtin:menu",
		Start:  Start{Display: "tcell", Player: "player"},
		Scores: Scores{DB: "~/.arcade/scores.db"},
		Log:    Log{Level: "info", File: "~/.arcade/arcade.log"},
	}
}

// Validate reports every problem that would stop the runtime from booting,
// joined into one error.
func (c Config) Validate() error {
	var errs []error
	if c.Framerate == 0 {
		errs = append(errs, errors.New("framerate must be greater than zero"))
	}
	if c.CellPixelSize == 0 {
		errs = append(errs, errors.New("cell_pixel_size must be greater than zero"))
	}
	if c.Headless.Frames < 0 {
		errs = append(errs, errors.New("headless.frames must not be negative"))
	}
	if c.CatchUpCap < 0 {
		errs = append(errs, errors.New("catch_up_cap must not be negative"))
	}
	if len(c.Displays) == 0 {
		errs = append(errs, errors.New("no displays configured"))
	}
	if len(c.Games) == 0 {
		errs = append(errs, errors.New("no games configured"))
	}
	if err := checkUnits("displays", c.Displays); err != nil {
		errs = append(errs, err)
	}
	if err := checkUnits("games", c.Games); err != nil {
		errs = append(errs, err)
	}
	if c.Start.Display != "" && IndexOf(c.Displays, c.Start.Display) < 0 {
		errs = append(errs, fmt.Errorf("start display %q is not in displays", c.Start.Display))
	}
	if c.Start.Game != "" && IndexOf(c.Games, c.Start.Game) < 0 {
		errs = append(errs, fmt.Errorf("start game %q is not in games", c.Start.Game))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func checkUnits(section string, units []Unit) error {
	seen := make(map[string]bool, len(units))
	for i, u := range units {
		if u.Name == "" {
			return fmt.Errorf("%s[%d]: missing name", section, i)
		}
		if u.Path == "" {
			return fmt.Errorf("%s[%d] %q: missing path", section, i, u.Name)
		}
		if seen[u.Name] {
			return fmt.Errorf("%s: duplicate name %q", section, u.Name)
		}
		seen[u.Name] = true
	}
	return nil
}

// IndexOf returns the position of the unit named name, or -1.
func IndexOf(units []Unit, name string) int {
	for i, u := range units {
		if u.Name == name {
			return i
		}
	}
	return -1
}

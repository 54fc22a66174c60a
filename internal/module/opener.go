package module

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

// BuiltinScheme prefixes units compiled into the binary.
const BuiltinScheme = "builtin:"

// Unit file formats.
const (
	FormatBuiltin = "builtin"
	FormatPlugin  = "plugin"
	FormatWasm    = "wasm"
)

// Format classifies a unit path by scheme or suffix. It returns "" for paths
// no opener understands.
func Format(path string) string {
	switch {
	case strings.HasPrefix(path, BuiltinScheme):
		return FormatBuiltin
	case strings.EqualFold(filepath.Ext(path), ".so"):
		return FormatPlugin
	case strings.EqualFold(filepath.Ext(path), ".wasm"):
		return FormatWasm
	default:
		return ""
	}
}

// Opener turns unit paths into libraries and instances.
type Opener struct {
	log *log.Logger
}

// NewOpener creates an opener that logs through logger.
func NewOpener(logger *log.Logger) *Opener {
	if logger == nil {
		logger = log.Default()
	}
	return &Opener{log: logger.WithPrefix("module")}
}

func loadErr(path string, err error) error {
	return &core.LoadError{Path: path, Err: err}
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// OpenDisplay opens a display unit. Displays can be builtin or Go plugins.
func (o *Opener) OpenDisplay(ctx context.Context, path string) (Library, core.Display, error) {
	switch Format(path) {
	case FormatBuiltin:
		name := strings.TrimPrefix(path, BuiltinScheme)
		d, err := registry.CreateDisplay(name)
		if err != nil {
			return nil, nil, loadErr(path, fmt.Errorf("%w: %v", core.ErrMissingEntryPoint, err))
		}
		return &builtinLibrary{path: path, log: o.log}, d, nil
	case FormatPlugin:
		if err := checkFile(path); err != nil {
			return nil, nil, loadErr(path, err)
		}
		lib, sym, err := openPlugin(path, "NewDisplay")
		if err != nil {
			return nil, nil, loadErr(path, err)
		}
		factory, ok := sym.(func() core.Display)
		if !ok {
			return nil, nil, loadErr(path, fmt.Errorf("%w: NewDisplay has type %T", core.ErrMissingEntryPoint, sym))
		}
		return lib, factory(), nil
	default:
		return nil, nil, loadErr(path, core.ErrBadFormat)
	}
}

// OpenGame opens a game unit: builtin, Go plugin or WebAssembly module.
func (o *Opener) OpenGame(ctx context.Context, path string) (Library, registry.Game, error) {
	switch Format(path) {
	case FormatBuiltin:
		name := strings.TrimPrefix(path, BuiltinScheme)
		g, err := registry.CreateGame(name)
		if err != nil {
			return nil, nil, loadErr(path, fmt.Errorf("%w: %v", core.ErrMissingEntryPoint, err))
		}
		return &builtinLibrary{path: path, log: o.log}, g, nil
	case FormatPlugin:
		if err := checkFile(path); err != nil {
			return nil, nil, loadErr(path, err)
		}
		lib, sym, err := openPlugin(path, "NewGame")
		if err != nil {
			return nil, nil, loadErr(path, err)
		}
		factory, ok := sym.(func() registry.Game)
		if !ok {
			return nil, nil, loadErr(path, fmt.Errorf("%w: NewGame has type %T", core.ErrMissingEntryPoint, sym))
		}
		return lib, factory(), nil
	case FormatWasm:
		wasm, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, loadErr(path, err)
		}
		lib, g, err := openWasm(ctx, path, wasm, o.log)
		if err != nil {
			return nil, nil, loadErr(path, err)
		}
		return lib, g, nil
	default:
		return nil, nil, loadErr(path, core.ErrBadFormat)
	}
}

// NewDisplaySlot creates the display slot. Instances are destroyed with Close.
func NewDisplaySlot(o *Opener, logger *log.Logger) *Slot[core.Display] {
	return NewSlot(registry.KindDisplay, o.OpenDisplay, func(d core.Display) error {
		return d.Close()
	}, logger)
}

// NewGameSlot creates the game slot. Games implementing io.Closer are closed.
func NewGameSlot(o *Opener, logger *log.Logger) *Slot[registry.Game] {
	return NewSlot(registry.KindGame, o.OpenGame, func(g registry.Game) error {
		if c, ok := g.(io.Closer); ok {
			return c.Close()
		}
		return nil
	}, logger)
}

// builtinLibrary stands for code linked into the binary; closing it has
// nothing to release.
type builtinLibrary struct {
	path string
	log  *log.Logger
}

func (l *builtinLibrary) Path() string { return l.path }

func (l *builtinLibrary) Close(context.Context) error {
	l.log.Debug("builtin library released", "path", l.path)
	return nil
}

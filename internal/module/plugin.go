//go:build (linux || darwin || freebsd) && cgo

package module

import (
	"context"
	"fmt"
	"plugin"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// pluginLibrary wraps a Go plugin. The Go runtime never unmaps a plugin, so
// Close only drops the reference; reopening the same path returns the
// already loaded copy.
type pluginLibrary struct {
	path string
	p    *plugin.Plugin
}

func (l *pluginLibrary) Path() string { return l.path }

func (l *pluginLibrary) Close(context.Context) error {
	l.p = nil
	return nil
}

// PluginsSupported reports whether this build can open .so units.
const PluginsSupported = true

func openPlugin(path, entry string) (Library, plugin.Symbol, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", core.ErrBadFormat, err)
	}

	abi, err := p.Lookup("ABIVersion")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ABIVersion", core.ErrMissingEntryPoint)
	}
	version, ok := abi.(*int)
	if !ok {
		return nil, nil, fmt.Errorf("%w: ABIVersion has type %T", core.ErrABIMismatch, abi)
	}
	if *version != core.ABIVersion {
		return nil, nil, fmt.Errorf("%w: unit has %d, runtime has %d", core.ErrABIMismatch, *version, core.ABIVersion)
	}

	sym, err := p.Lookup(entry)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", core.ErrMissingEntryPoint, entry)
	}
	return &pluginLibrary{path: path, p: p}, sym, nil
}

//go:build !((linux || darwin || freebsd) && cgo)

package module

import (
	"fmt"

	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// PluginsSupported reports whether this build can open .so units.
const PluginsSupported = false

func openPlugin(path, entry string) (Library, any, error) {
	return nil, nil, fmt.Errorf("%w: go plugins are not supported by this build", core.ErrBadFormat)
}

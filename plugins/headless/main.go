// Command headless builds the image display as a plugin unit. Frames are
// recorded to $ARCADE_RECORD when it is set.
package main

import (
	"os"

	"github.com/vovakirdan/arcade-runtime/internal/backends/headless"
	"github.com/vovakirdan/arcade-runtime/internal/core"
)

var ABIVersion = core.ABIVersion

func NewDisplay() core.Display {
	return headless.New(headless.Options{Record: os.Getenv("ARCADE_RECORD")})
}

func main() {}

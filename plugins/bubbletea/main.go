// Command bubbletea builds the Bubble Tea display as a plugin unit.
package main

import (
	"github.com/vovakirdan/arcade-runtime/internal/backends/teaterm"
	"github.com/vovakirdan/arcade-runtime/internal/core"
)

var ABIVersion = core.ABIVersion

func NewDisplay() core.Display {
	return teaterm.New()
}

func main() {}

// Command tcell builds the tcell display as a plugin unit:
//
//	go build -buildmode=plugin -o tcell.so ./plugins/tcell
package main

import (
	"github.com/vovakirdan/arcade-runtime/internal/backends/tcellterm"
	"github.com/vovakirdan/arcade-runtime/internal/core"
)

// ABIVersion is checked by the runtime before any other symbol is used.
var ABIVersion = core.ABIVersion

func NewDisplay() core.Display {
	return tcellterm.New(nil)
}

func main() {}

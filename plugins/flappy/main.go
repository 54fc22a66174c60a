// Command flappy builds Flappy Bird as a plugin unit.
package main

import (
	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/games/flappy"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

var ABIVersion = core.ABIVersion

func NewGame() registry.Game {
	return flappy.New()
}

func main() {}

// Command snake builds the snake campaign as a plugin unit.
package main

import (
	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/games/snake"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

var ABIVersion = core.ABIVersion

func NewGame() registry.Game {
	return snake.New(snake.ModeCampaign)
}

func main() {}

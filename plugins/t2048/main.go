// Command t2048 builds 2048 as a plugin unit.
package main

import (
	"github.com/vovakirdan/arcade-runtime/internal/core"
	"github.com/vovakirdan/arcade-runtime/internal/games/t2048"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
)

var ABIVersion = core.ABIVersion

func NewGame() registry.Game {
	return t2048.New(t2048.ModeCampaign)
}

func main() {}

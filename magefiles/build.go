//go:build mage

package main

import (
	"fmt"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// plugins lists the units built by build:plugins, by directory under plugins/.
var plugins = []string{"tcell", "bubbletea", "headless", "snake", "t2048", "flappy"}

// Builds the arcade binary into bin/.
func (Build) Cli() error {
	if _, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", "arcade"), "./cmd/arcade"), withStream()); err != nil {
		return err
	}
	return nil
}

// Builds every plugin unit into bin/units/. Needs cgo.
func (Build) Plugins() error {
	for _, name := range plugins {
		out := filepath.Join("bin", "units", name+".so")
		if _, err := executeCmd("go", withArgs("build", "-buildmode=plugin", "-o", out, "./plugins/"+name), withStream()); err != nil {
			return fmt.Errorf("plugin %s: %w", name, err)
		}
	}
	return nil
}

// Builds the binary and the plugins.
func (Build) All() {
	mg.SerialDeps(Build.Cli, Build.Plugins)
}

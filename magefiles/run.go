//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the tests.
func (Run) Tests() error {
	if _, err := executeCmd("go", withArgs("test", "./..."), withStream()); err != nil {
		return err
	}
	return nil
}

// Validates every built plugin unit with arcade check.
func (Run) Check() error {
	mg.Deps(Build.Cli, Build.Plugins)
	for _, name := range plugins {
		kind := "game"
		if name == "tcell" || name == "bubbletea" || name == "headless" {
			kind = "display"
		}
		if _, err := executeCmd("bin/arcade", withArgs("check", "--kind", kind, "bin/units/"+name+".so"), withStream()); err != nil {
			return err
		}
	}
	return nil
}

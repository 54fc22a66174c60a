// arcade hosts hot-swappable display and game units.
//
// Usage:
//
//	arcade run               - Start the runtime (menu or --game)
//	arcade list              - List configured and builtin units
//	arcade scores <game>     - Show high scores for a game
//	arcade check <unit>      - Open a unit, validate it and close it again
//
// Global flags:
//
//	--config <path>    - Runtime config (yaml or toml)
//	--db <path>        - Scores database (default from config: ~/.arcade/scores.db)
//	--log-level <lvl>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-runtime/internal/config"

	// Import units to register them
	_ "github.com/vovakirdan/arcade-runtime/internal/backends/headless"
	_ "github.com/vovakirdan/arcade-runtime/internal/backends/tcellterm"
	_ "github.com/vovakirdan/arcade-runtime/internal/backends/teaterm"
	_ "github.com/vovakirdan/arcade-runtime/internal/games/flappy"
	_ "github.com/vovakirdan/arcade-runtime/internal/games/menu"
	_ "github.com/vovakirdan/arcade-runtime/internal/games/snake"
	_ "github.com/vovakirdan/arcade-runtime/internal/games/t2048"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Arcade runtime - hot-swappable displays and games",
	Long: `Arcade runs game units on display units and lets you swap either one
while the runtime keeps going.

Control keys (never seen by games):
  F1/F2  - Previous/next display
  F3/F4  - Previous/next game
  F5     - Restart the current game
  F6     - Back to the menu
  F7     - Exit

Examples:
  arcade run
  arcade run --game snake --display bubbletea
  arcade run --display headless --frames 90 --record out.gif
  arcade list
  arcade scores snake
  arcade check ./units/pong.wasm`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to runtime config (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
}

// loadConfig reads the config file and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, _, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Scores.DB = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	cfg.Scores.DB = config.ExpandHome(cfg.Scores.DB)
	cfg.Log.File = config.ExpandHome(cfg.Log.File)
	return cfg, nil
}

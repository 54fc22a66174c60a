package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/arcade-runtime/internal/backends/headless"
	"github.com/vovakirdan/arcade-runtime/internal/config"
	"github.com/vovakirdan/arcade-runtime/internal/logging"
	"github.com/vovakirdan/arcade-runtime/internal/runtime"
	"github.com/vovakirdan/arcade-runtime/internal/storage"
)

var (
	flagDisplay string
	flagGame    string
	flagPlayer  string
	flagFPS     uint32
	flagWatch   bool
	flagRecord  string
	flagFrames  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the runtime",
	Long: `Load the start display and game (or the menu) and run frames until
F7 is pressed or the display closes.

Examples:
  arcade run
  arcade run --game 2048
  arcade run --display bubbletea --watch
  arcade run --display headless --game snake --frames 120 --record snake.gif`,
	Args: cobra.NoArgs,
	RunE: runRuntime,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&flagDisplay, "display", "", "Start display (catalog name)")
	f.StringVar(&flagGame, "game", "", "Start game (catalog name, empty opens the menu)")
	f.StringVar(&flagPlayer, "player", "", "Player name scores are saved under")
	f.Uint32Var(&flagFPS, "fps", 0, "Initial framerate (0 keeps the config value)")
	f.BoolVar(&flagWatch, "watch", false, "Reload units when their file changes")
	f.StringVar(&flagRecord, "record", "", "Headless display: write frames to a .gif, .png or .bmp")
	f.IntVar(&flagFrames, "frames", 0, "Headless display: close after this many frames")
}

func runRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyRunFlags(cmd, &cfg)

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog.Close()

	headless.Configure(headless.Options{
		Record: config.ExpandHome(cfg.Headless.Record),
		Font:   config.ExpandHome(cfg.Headless.Font),
		Frames: cfg.Headless.Frames,
	})

	opts := runtime.Options{Config: cfg, Logger: logger}
	store, err := storage.Open(cfg.Scores.DB)
	if err != nil {
		// Continue without storage - scores stay in memory
		logger.Warn("scores database unavailable", "db", cfg.Scores.DB, "err", err)
	} else {
		defer store.Close()
		opts.Store = store
	}

	ctrl, err := runtime.New(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ctrl.Start(ctx); err != nil {
		logger.Error("start failed", "err", err)
		return err
	}
	if err := ctrl.Run(ctx); err != nil {
		logger.Error("runtime stopped", "err", err)
		return fmt.Errorf("arcade: %w", err)
	}
	return nil
}

func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	if flagDisplay != "" {
		cfg.Start.Display = flagDisplay
	}
	if flagGame != "" {
		cfg.Start.Game = flagGame
	}
	if flagPlayer != "" {
		cfg.Start.Player = flagPlayer
	}
	if flagFPS > 0 {
		cfg.Framerate = flagFPS
	}
	if cmd.Flags().Changed("watch") {
		cfg.Watch = flagWatch
	}
	if flagRecord != "" {
		cfg.Headless.Record = flagRecord
	}
	if flagFrames > 0 {
		cfg.Headless.Frames = flagFrames
	}
}

// newLogger keeps the log off the terminal the display backends draw on.
// When stderr is not a terminal (redirected, CI) the log goes there instead
// of the log file.
func newLogger(cfg config.Config) (*log.Logger, io.Closer, error) {
	opts := logging.Options{Level: cfg.Log.Level, File: cfg.Log.File}
	switch {
	case !term.IsTerminal(int(os.Stderr.Fd())):
		opts.File = ""
		opts.Writer = os.Stderr
	case opts.File == "":
		opts.File = config.ExpandHome(config.Default().Log.File)
	}
	return logging.New(opts)
}

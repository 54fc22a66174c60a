package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-runtime/internal/logging"
	"github.com/vovakirdan/arcade-runtime/internal/module"
)

var flagKind string

var checkCmd = &cobra.Command{
	Use:   "check <unit>",
	Short: "Open a unit, validate its entry point and close it",
	Long: `Loads a unit the way the runtime would and unloads it again. Use it to
find ABI mismatches and missing entry points before adding a unit to the
catalog.

Examples:
  arcade check builtin:snake
  arcade check --kind display builtin:headless
  arcade check ./units/pong.wasm`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&flagKind, "kind", "game", "Unit kind: game or display")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger, closer, err := logging.New(logging.Options{Level: flagLogLevel, Writer: os.Stderr})
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := context.Background()
	opener := module.NewOpener(logger)

	var load, unload func() error
	switch flagKind {
	case "game":
		slot := module.NewGameSlot(opener, logger)
		load = func() error { return slot.Load(ctx, path) }
		unload = func() error { return slot.Unload(ctx) }
	case "display":
		slot := module.NewDisplaySlot(opener, logger)
		load = func() error { return slot.Load(ctx, path) }
		unload = func() error { return slot.Unload(ctx) }
	default:
		return fmt.Errorf("unknown kind %q (want game or display)", flagKind)
	}

	if err := load(); err != nil {
		return err
	}
	if err := unload(); err != nil {
		return fmt.Errorf("unload %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%s, %s)\n", path, flagKind, module.Format(path))
	return nil
}

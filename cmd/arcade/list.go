package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-runtime/internal/config"
	"github.com/vovakirdan/arcade-runtime/internal/registry"
	"github.com/vovakirdan/arcade-runtime/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured and builtin units",
	Long: `Shows the display and game catalogs from the config, in swap order,
followed by every unit compiled into this binary.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Best scores are optional here
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(cfg.Scores.DB); err == nil {
		stats, _ = store.AllGamesStats()
		store.Close()
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Displays (F1/F2):")
	printUnits(w, cfg.Displays, cfg.Start.Display, nil)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Games (F3/F4):")
	printUnits(w, cfg.Games, cfg.Start.Game, stats)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Menu: %s\n", cfg.Menu)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Builtin units:")
	for _, kind := range []registry.Kind{registry.KindDisplay, registry.KindGame} {
		for _, info := range registry.List(kind) {
			fmt.Fprintf(w, "  %-8s builtin:%-16s %s\n", kind, info.Name, info.Title)
		}
	}
	return nil
}

func printUnits(w io.Writer, units []config.Unit, start string, stats map[string]*storage.GameStats) {
	if len(units) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}

	// Calculate column widths
	nameLen, titleLen := 4, 5
	for _, u := range units {
		nameLen = max(nameLen, len(u.Name))
		titleLen = max(titleLen, len(u.DisplayTitle()))
	}

	for _, u := range units {
		marker := " "
		if u.Name == start {
			marker = "*"
		}
		line := fmt.Sprintf(" %s %-*s  %-*s  %s", marker, nameLen, u.Name, titleLen, u.DisplayTitle(), u.Path)
		if st, ok := stats[u.Name]; ok {
			line += fmt.Sprintf("  (best %d)", st.HighScore)
		}
		fmt.Fprintln(w, line)
	}
}

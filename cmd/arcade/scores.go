package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/arcade-runtime/internal/config"
	"github.com/vovakirdan/arcade-runtime/internal/storage"
)

const topScores = 10

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 scores recorded for the named game.

Examples:
  arcade scores snake
  arcade scores 2048 --db ./scores.db`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

var titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))

func runScores(cmd *cobra.Command, args []string) error {
	game := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	title := game
	if i := config.IndexOf(cfg.Games, game); i >= 0 {
		title = cfg.Games[i].DisplayTitle()
	}

	store, err := storage.Open(cfg.Scores.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	scores, err := store.TopScores(game, topScores)
	if err != nil {
		return err
	}
	return printScores(cmd.OutOrStdout(), title, scores)
}

// printScores renders the table once, without an interactive program.
func printScores(w io.Writer, title string, scores []storage.ScoreEntry) error {
	fmt.Fprintln(w, titleStyle.Render("High Scores - "+title))
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.Player,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Player", Width: 16},
			{Title: "Date", Width: 14},
		}),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// No cursor outside an interactive table.
	s.Selected = s.Cell
	t.SetStyles(s)

	fmt.Fprintln(w, t.View())
	fmt.Fprintf(w, "\nBest: %d\n", scores[0].Score)
	return nil
}

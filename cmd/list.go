package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-playoff-odds/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored runs",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	runs, err := db.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No runs stored yet. Run 'playoffodds run' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-20s  %-9s  %6s  %6s  %-10s  %s\n",
		"RUN", "CREATED", "SEASONS", "GAMES", "OBS", "INDEXING", "OUTPUT")
	fmt.Fprintf(os.Stdout, "%-10s  %-20s  %-9s  %6s  %6s  %-10s  %s\n",
		"──────────", "────────────────────", "─────────", "──────", "──────", "──────────", "──────")
	for _, r := range runs {
		indexing := "consistent"
		if r.LegacyIndexing {
			indexing = "legacy"
		}
		fmt.Fprintf(os.Stdout, "%-10s  %-20s  %-9s  %6d  %6d  %-10s  %s\n",
			shortID(r.ID), r.CreatedAt, fmt.Sprintf("%d-%d", r.FirstSeason, r.LastSeason),
			r.Games, r.Observations, indexing, r.OutputPath)
	}
	return nil
}

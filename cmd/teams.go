package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pable/go-playoff-odds/internal/report"
	"github.com/pable/go-playoff-odds/internal/storage"
)

var teamsCmd = &cobra.Command{
	Use:   "teams <season> [run-prefix]",
	Short: "Show final team records for one season of a stored run",
	Long: `Print every team's final wins, games played and win pct for a season, as
replayed by a stored run (newest run by default). Teams that reached the
division series are marked with "*".`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTeams,
}

func runTeams(cmd *cobra.Command, args []string) error {
	season, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid season %q", args[0])
	}
	prefix := ""
	if len(args) == 2 {
		prefix = args[1]
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	run, err := db.GetRunByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query run: %w", err)
	}
	if run == nil {
		fmt.Fprintf(os.Stderr, "No run found with id prefix %q\n", prefix)
		return nil
	}

	teams, err := db.GetSeasonTeams(run.ID, season)
	if err != nil {
		return fmt.Errorf("get season teams: %w", err)
	}
	if len(teams) == 0 {
		fmt.Fprintf(os.Stdout, "Run %s has no teams for %d (seasons %d-%d).\n",
			shortID(run.ID), season, run.FirstSeason, run.LastSeason)
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n%d  |  Run: %s\n\n", season, shortID(run.ID))
	report.PrintSeasonTable(os.Stdout, teams)
	return nil
}

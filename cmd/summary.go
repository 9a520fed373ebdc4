package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-playoff-odds/internal/aggregator"
	"github.com/pable/go-playoff-odds/internal/report"
	"github.com/pable/go-playoff-odds/internal/storage"
)

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about the stored runs: run count, the season
coverage of the newest run, how many team-seasons reached the division series,
and observation counts per win pct bin.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.Runs == 0 {
		fmt.Fprintln(os.Stdout, "No runs stored yet. Run 'playoffodds run' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Runs stored     : %d\n", ov.Runs)
	fmt.Fprintf(os.Stdout, "  Latest run      : %s\n", shortID(ov.LatestRun))
	fmt.Fprintf(os.Stdout, "  Season range    : %d → %d (%d seasons)\n", ov.EarliestSeason, ov.LatestSeason, ov.Seasons)
	fmt.Fprintf(os.Stdout, "  Games replayed  : %d\n", ov.TotalGames)
	fmt.Fprintf(os.Stdout, "  Team-seasons    : %d\n", ov.TeamSeasons)
	fmt.Fprintf(os.Stdout, "  Division series : %d\n", ov.PlayoffTeams)

	acc, err := loadAccumulator(db, ov.LatestRun)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "\n--- Win Pct Bins ---\n\n")
	report.PrintBinTable(os.Stdout, acc, aggregator.Bins())
	return nil
}

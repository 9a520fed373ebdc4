package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-playoff-odds/internal/report"
	"github.com/pable/go-playoff-odds/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the runs database",
	Long: `Run an arbitrary SQL query against the runs database and print results as a table.

Schema overview:
  runs(id, created_at, first_season, last_season, games, observations,
    legacy_indexing, output_path)
  run_cells(run_id, bin, game_col, playoff, total)
  season_teams(run_id, season, team, wins, games, made_playoffs)

bin 0 is win pct 1.000 and bin 14 is 0.000; game_col 0 is game 1.
Example: SELECT bin, SUM(playoff)/SUM(total) FROM run_cells GROUP BY bin`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	report.PrintRows(os.Stdout, cols, rows)
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}


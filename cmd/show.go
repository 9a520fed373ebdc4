package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-playoff-odds/internal/aggregator"
	"github.com/pable/go-playoff-odds/internal/render"
	"github.com/pable/go-playoff-odds/internal/report"
	"github.com/pable/go-playoff-odds/internal/storage"
)

var (
	showEvery int
	showPNG   string
)

var showCmd = &cobra.Command{
	Use:   "show [run-prefix]",
	Short: "Show a stored probability matrix (newest run by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().IntVar(&showEvery, "every", 20, "print the probability table every N games")
	showCmd.Flags().StringVar(&showPNG, "png", "", "redraw the heat map to this path")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
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

	acc, err := loadAccumulator(db, run.ID)
	if err != nil {
		return err
	}
	prob := acc.Probability()

	if showPNG != "" {
		if err := render.HeatMap(showPNG, prob); err != nil {
			return fmt.Errorf("render heat map: %w", err)
		}
		cOK.Fprintf(os.Stdout, "Wrote heat map to %s\n", showPNG)
	}

	refs := aggregator.Bins()
	report.PrintRunSummary(os.Stdout, *run)
	report.PrintProbabilityTable(os.Stdout, prob, refs, showEvery)
	fmt.Fprintln(os.Stdout)
	report.PrintBinTable(os.Stdout, acc, refs)
	return nil
}

// loadAccumulator rebuilds the count grids of a stored run.
func loadAccumulator(db *storage.DB, runID string) (*aggregator.Accumulator, error) {
	cells, err := db.GetCells(runID)
	if err != nil {
		return nil, fmt.Errorf("get cells: %w", err)
	}
	acc := aggregator.NewAccumulator()
	for _, c := range cells {
		if err := acc.Set(c.Bin, c.Col, c.Playoff, c.Total); err != nil {
			return nil, fmt.Errorf("load cell: %w", err)
		}
	}
	return acc, nil
}

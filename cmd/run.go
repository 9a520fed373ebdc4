package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pable/go-playoff-odds/internal/aggregator"
	"github.com/pable/go-playoff-odds/internal/config"
	"github.com/pable/go-playoff-odds/internal/model"
	"github.com/pable/go-playoff-odds/internal/parser"
	"github.com/pable/go-playoff-odds/internal/render"
	"github.com/pable/go-playoff-odds/internal/report"
	"github.com/pable/go-playoff-odds/internal/storage"
	"github.com/pable/go-playoff-odds/internal/telemetry"
)

var (
	runNoStore bool
	runEvery   int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute the probability matrix and draw the heat map",
	Long: `Load the division series participants, replay every season's game log in
file order, and accumulate win pct bin × game number observations. The
resulting probability matrix is written as a PNG heat map, stored in the
database, and printed as a table.

Any unreadable or malformed input aborts the run before anything is written.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	f := runCmd.Flags()
	f.String("data-dir", "data", "root directory for game logs and playoff data")
	f.String("out", "figures/1990_2016_playoffprob.png", "heat map output path")
	f.Int("from", 1990, "first season")
	f.Int("to", 2016, "last season")
	f.Bool("legacy-indexing", false, "reproduce the historical column placement for non-playoff home teams")
	f.BoolVar(&runNoStore, "no-store", false, "do not persist the run to the database")
	f.IntVar(&runEvery, "every", 20, "print the probability table every N games")

	viper.BindPFlag(config.KeyDataDir, f.Lookup("data-dir"))
	viper.BindPFlag(config.KeyOutput, f.Lookup("out"))
	viper.BindPFlag(config.KeyFirstSeason, f.Lookup("from"))
	viper.BindPFlag(config.KeyLastSeason, f.Lookup("to"))
	viper.BindPFlag(config.KeyLegacyIndexing, f.Lookup("legacy-indexing"))
}

func runRun(cmd *cobra.Command, args []string) error {
	cols, err := parser.LoadColumns(cfg.ColumnRefPath())
	if err != nil {
		return fmt.Errorf("load columns: %w", err)
	}
	playoffs, err := parser.LoadPlayoffs(cfg.PlayoffPath(), cfg.FirstSeason, cfg.LastSeason)
	if err != nil {
		return fmt.Errorf("load playoffs: %w", err)
	}
	telemetry.Debugf("columns %+v, playoff data for %d seasons", cols, len(playoffs))

	acc := aggregator.NewAccumulator()
	opts := aggregator.Options{LegacyIndexing: cfg.LegacyIndexing}
	runID := uuid.NewString()

	var (
		teams      []model.SeasonTeam
		totalGames int
	)
	for _, season := range cfg.Seasons() {
		games, err := parser.LoadGameLog(parser.SeasonPath(cfg.SeasonPattern(), season), cols)
		if err != nil {
			return fmt.Errorf("load season %d: %w", season, err)
		}
		res, err := aggregator.AggregateSeason(acc, season, games, playoffs, opts)
		if err != nil {
			return fmt.Errorf("aggregate: %w", err)
		}
		totalGames += res.Games

		inMean, inN := res.MeanFinalPct(true)
		outMean, _ := res.MeanFinalPct(false)
		if inN == 0 {
			telemetry.Warnf("%d: no division series teams found", season)
		}
		telemetry.Infof("%d: %d games, %d teams, %d in division series (final pct %.3f vs %.3f)",
			season, res.Games, len(res.Teams), inN, inMean, outMean)

		for _, t := range res.SortedTeams() {
			teams = append(teams, model.SeasonTeam{
				RunID:        runID,
				Season:       season,
				Team:         t.Team,
				Wins:         t.TotalWins,
				Games:        t.GamesPlayed,
				MadePlayoffs: t.MadePlayoffs,
			})
		}
	}

	prob := acc.Probability()
	if err := render.HeatMap(cfg.Output, prob); err != nil {
		return fmt.Errorf("render heat map: %w", err)
	}
	cOK.Fprintf(os.Stdout, "Wrote heat map to %s\n", cfg.Output)

	run := model.RunSummary{
		ID:             runID,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		FirstSeason:    cfg.FirstSeason,
		LastSeason:     cfg.LastSeason,
		Games:          totalGames,
		Observations:   int(acc.Observations()),
		LegacyIndexing: cfg.LegacyIndexing,
		OutputPath:     cfg.Output,
	}
	var storeErr error
	if !runNoStore {
		if storeErr = storeRun(run, acc, teams); storeErr != nil {
			telemetry.Errorf("run %s was not stored: %v", shortID(run.ID), storeErr)
		} else {
			cMuted.Fprintf(os.Stdout, "Stored run %s in %s\n", shortID(run.ID), dbPath)
		}
	}

	report.PrintRunSummary(os.Stdout, run)
	report.PrintProbabilityTable(os.Stdout, prob, aggregator.Bins(), runEvery)
	return storeErr
}

func storeRun(run model.RunSummary, acc *aggregator.Accumulator, teams []model.SeasonTeam) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := db.InsertRun(run); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	if err := db.InsertCells(run.ID, acc.Cells()); err != nil {
		return fmt.Errorf("insert cells: %w", err)
	}
	if err := db.InsertSeasonTeams(teams); err != nil {
		return fmt.Errorf("insert season teams: %w", err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

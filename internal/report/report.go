package report

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gonum.org/v1/gonum/mat"

	"github.com/pable/go-playoff-odds/internal/aggregator"
	"github.com/pable/go-playoff-odds/internal/model"
)

// LastPlottedGame is the final game column shown in probability tables.
const LastPlottedGame = 162

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignCenter},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
	}))
}

// PrintRunSummary prints a one-line header for a stored run.
func PrintRunSummary(w io.Writer, r model.RunSummary) {
	indexing := "consistent"
	if r.LegacyIndexing {
		indexing = "legacy"
	}
	fmt.Fprintf(w, "\nSeasons: %d–%d  |  Games: %d  |  Observations: %d  |  Indexing: %s  |  Run: %s\n\n",
		r.FirstSeason, r.LastSeason, r.Games, r.Observations, indexing, shortID(r.ID))
}

// checkpoints returns game numbers 1, every, 2*every, ... up to LastPlottedGame,
// always ending on LastPlottedGame.
func checkpoints(every int) []int {
	if every < 1 {
		every = 1
	}
	games := []int{1}
	for g := every; g < LastPlottedGame; g += every {
		if g > 1 {
			games = append(games, g)
		}
	}
	return append(games, LastPlottedGame)
}

func pctCell(v float64) string {
	if math.IsNaN(v) {
		return "—"
	}
	return fmt.Sprintf("%.0f%%", 100*v)
}

// PrintProbabilityTable prints division series probability by win pct bin
// (rows, best first) at every n-th game. Cells without observations show "—".
func PrintProbabilityTable(w io.Writer, prob *mat.Dense, refs []float64, every int) {
	games := checkpoints(every)
	_, cols := prob.Dims()

	header := []any{"WIN%"}
	for _, g := range games {
		header = append(header, "G"+strconv.Itoa(g))
	}
	table := newTable(w)
	table.Header(header...)

	for b, ref := range refs {
		row := []any{fmt.Sprintf("%.3f", ref)}
		for _, g := range games {
			if g-1 >= cols {
				row = append(row, "—")
				continue
			}
			row = append(row, pctCell(prob.At(b, g-1)))
		}
		table.Append(row...)
	}
	table.Render()
}

// PrintBinTable prints observation counts per win pct bin across all games.
func PrintBinTable(w io.Writer, acc *aggregator.Accumulator, refs []float64) {
	table := newTable(w)
	table.Header("WIN%", "OBS", "DIV SERIES OBS", "RATE")

	for b, ref := range refs {
		total := mat.Sum(acc.Total.RowView(b))
		playoff := mat.Sum(acc.Playoff.RowView(b))
		rate := math.NaN()
		if total > 0 {
			rate = playoff / total
		}
		table.Append(
			fmt.Sprintf("%.3f", ref),
			strconv.FormatFloat(total, 'f', 0, 64),
			strconv.FormatFloat(playoff, 'f', 0, 64),
			pctCell(rate),
		)
	}
	table.Render()
}

// PrintSeasonTable prints final team records for one season.
// Division series teams are marked with "*".
func PrintSeasonTable(w io.Writer, teams []model.SeasonTeam) {
	table := newTable(w)
	table.Header(" ", "TEAM", "W", "G", "PCT")

	for _, t := range teams {
		marker := " "
		if t.MadePlayoffs {
			marker = "*"
		}
		table.Append(
			marker,
			t.Team,
			strconv.FormatFloat(t.Wins, 'f', -1, 64),
			strconv.Itoa(t.Games),
			fmt.Sprintf("%.3f", t.WinPct()),
		)
	}
	table.Render()
}

// PrintRows prints query results with column names exactly as returned.
func PrintRows(w io.Writer, cols []string, rows [][]string) {
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)

	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

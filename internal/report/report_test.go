package report

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/pable/go-playoff-odds/internal/aggregator"
	"github.com/pable/go-playoff-odds/internal/model"
)

func TestCheckpoints(t *testing.T) {
	if got, want := checkpoints(40), []int{1, 40, 80, 120, 160, 162}; !reflect.DeepEqual(got, want) {
		t.Errorf("checkpoints(40) = %v, want %v", got, want)
	}
	if got := checkpoints(0); len(got) != LastPlottedGame {
		t.Errorf("checkpoints(0) should list every game, got %d", len(got))
	}
}

func TestPrintProbabilityTable(t *testing.T) {
	acc := aggregator.NewAccumulator()
	acc.Observe(0, 0, true)
	acc.Observe(0, 0, false)
	acc.Observe(14, 161, false)

	var buf bytes.Buffer
	PrintProbabilityTable(&buf, acc.Probability(), aggregator.Bins(), 81)
	out := buf.String()

	for _, want := range []string{"WIN%", "G1", "G81", "G162", "1.000", "0.000", "50%", "0%", "—"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintBinTable(t *testing.T) {
	acc := aggregator.NewAccumulator()
	acc.Observe(7, 10, true)
	acc.Observe(7, 20, false)
	acc.Observe(7, 30, false)
	acc.Observe(7, 40, false)

	var buf bytes.Buffer
	PrintBinTable(&buf, acc, aggregator.Bins())
	if out := buf.String(); !strings.Contains(out, "25%") {
		t.Errorf("expected 25%% rate for bin 7:\n%s", out)
	}
}

func TestPrintSeasonTable(t *testing.T) {
	var buf bytes.Buffer
	PrintSeasonTable(&buf, []model.SeasonTeam{
		{Team: "CLE", Wins: 100, Games: 144, MadePlayoffs: true},
		{Team: "DET", Wins: 60.5, Games: 144},
	})
	out := buf.String()
	for _, want := range []string{"CLE", "*", "60.5", "0.694", "0.420"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintRunSummary(&buf, model.RunSummary{ID: "0123456789abcdef", FirstSeason: 1990, LastSeason: 2016, LegacyIndexing: true})
	out := buf.String()
	if !strings.Contains(out, "Run: 01234567") || !strings.Contains(out, "legacy") {
		t.Errorf("unexpected summary line: %q", out)
	}
}

func TestPrintRows_KeepsColumnNames(t *testing.T) {
	var buf bytes.Buffer
	PrintRows(&buf, []string{"game_col", "SUM(playoff)"}, [][]string{{"0", "3"}, {"1", "NULL"}})
	out := buf.String()
	for _, want := range []string{"game_col", "SUM(playoff)", "NULL"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintProbabilityTable_HeaderVerbatim(t *testing.T) {
	var buf bytes.Buffer
	PrintProbabilityTable(&buf, aggregator.NewAccumulator().Probability(), aggregator.Bins(), 81)
	out := buf.String()
	for _, bad := range []string{"WIN %", "G 1 ", "G 81"} {
		if strings.Contains(out, bad) {
			t.Errorf("header was reformatted, found %q:\n%s", bad, out)
		}
	}
}

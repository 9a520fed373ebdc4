package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pable/go-playoff-odds/internal/model"
)

// Field positions in the division series game log.
const (
	playoffDateCol  = 0
	playoffTeam1Col = 3
	playoffTeam2Col = 6
)

// LoadPlayoffs parses the division series log at path for seasons first..last.
func LoadPlayoffs(path string, first, last int) (model.PlayoffSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open playoff log: %w", err)
	}
	defer f.Close()

	set, err := ReadPlayoffs(f, first, last)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}

// ReadPlayoffs collects, per season, every team that appears on either side of a
// division series game. The season is the first four characters of the date.
// Each season in first..last gets an entry even when no games were found.
func ReadPlayoffs(r io.Reader, first, last int) (model.PlayoffSet, error) {
	set := make(model.PlayoffSet)
	for s := first; s <= last; s++ {
		set[s] = make(map[string]bool)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if len(rec) <= playoffTeam2Col {
			return nil, fmt.Errorf("row %d: %d fields, need at least %d", row, len(rec), playoffTeam2Col+1)
		}

		season, err := seasonOf(rec[playoffDateCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if season < first || season > last {
			continue
		}
		set.Add(season, strings.TrimSpace(rec[playoffTeam1Col]))
		set.Add(season, strings.TrimSpace(rec[playoffTeam2Col]))
	}
	return set, nil
}

func seasonOf(date string) (int, error) {
	date = strings.TrimSpace(date)
	if len(date) < 4 {
		return 0, fmt.Errorf("date %q too short", date)
	}
	season, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, fmt.Errorf("date %q: %w", date, err)
	}
	return season, nil
}

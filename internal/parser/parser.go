package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pable/go-playoff-odds/internal/model"
)

// Column names used in the column reference file.
const (
	colHomeScore   = "hmScore"
	colVisScore    = "visScore"
	colHomeTeam    = "hmTeam"
	colVisTeam     = "visTeam"
	colHomeGameNum = "hmGameNum"
	colVisGameNum  = "visGameNum"
)

// Columns holds the zero-based field positions of the values a game log row must provide.
type Columns struct {
	HomeTeam, VisTeam       int
	HomeScore, VisScore     int
	HomeGameNum, VisGameNum int
}

// DefaultColumns are the field positions in a standard Retrosheet game log.
var DefaultColumns = Columns{
	VisTeam:     3,
	VisGameNum:  5,
	HomeTeam:    6,
	HomeGameNum: 8,
	VisScore:    9,
	HomeScore:   10,
}

func (c Columns) maxIndex() int {
	m := 0
	for _, i := range []int{c.HomeTeam, c.VisTeam, c.HomeScore, c.VisScore, c.HomeGameNum, c.VisGameNum} {
		if i > m {
			m = i
		}
	}
	return m
}

// ColumnsFromNames resolves field positions from an ordered list of column names.
func ColumnsFromNames(names []string) (Columns, error) {
	pos := make(map[string]int, len(names))
	for i, n := range names {
		n = strings.TrimSpace(n)
		if _, dup := pos[n]; !dup {
			pos[n] = i
		}
	}
	lookup := func(name string) (int, error) {
		i, ok := pos[name]
		if !ok {
			return 0, fmt.Errorf("column %q not found in reference", name)
		}
		return i, nil
	}

	var c Columns
	var err error
	if c.HomeTeam, err = lookup(colHomeTeam); err != nil {
		return Columns{}, err
	}
	if c.VisTeam, err = lookup(colVisTeam); err != nil {
		return Columns{}, err
	}
	if c.HomeScore, err = lookup(colHomeScore); err != nil {
		return Columns{}, err
	}
	if c.VisScore, err = lookup(colVisScore); err != nil {
		return Columns{}, err
	}
	if c.HomeGameNum, err = lookup(colHomeGameNum); err != nil {
		return Columns{}, err
	}
	if c.VisGameNum, err = lookup(colVisGameNum); err != nil {
		return Columns{}, err
	}
	return c, nil
}

// LoadColumns reads the column reference file at path. The first row lists the
// game log column names in order. A missing file yields DefaultColumns.
func LoadColumns(path string) (Columns, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultColumns, nil
	}
	if err != nil {
		return Columns{}, fmt.Errorf("open column reference: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	names, err := r.Read()
	if err != nil {
		return Columns{}, fmt.Errorf("read column reference: %w", err)
	}
	return ColumnsFromNames(names)
}

// SeasonPath expands a game log path pattern such as "GL%d.TXT" for season.
func SeasonPath(pattern string, season int) string {
	return fmt.Sprintf(pattern, season)
}

// LoadGameLog parses the season game log at path.
func LoadGameLog(path string, cols Columns) ([]model.GameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open game log: %w", err)
	}
	defer f.Close()

	games, err := ReadGameLog(f, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return games, nil
}

// ReadGameLog decodes header-less game log rows in file order.
func ReadGameLog(r io.Reader, cols Columns) ([]model.GameRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	need := cols.maxIndex() + 1
	var games []model.GameRecord
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		if len(rec) < need {
			return nil, fmt.Errorf("row %d: %d fields, need at least %d", row, len(rec), need)
		}

		g := model.GameRecord{
			HomeTeam: strings.TrimSpace(rec[cols.HomeTeam]),
			VisTeam:  strings.TrimSpace(rec[cols.VisTeam]),
		}
		ints := []struct {
			name string
			idx  int
			dst  *int
		}{
			{colHomeScore, cols.HomeScore, &g.HomeScore},
			{colVisScore, cols.VisScore, &g.VisScore},
			{colHomeGameNum, cols.HomeGameNum, &g.HomeGameNum},
			{colVisGameNum, cols.VisGameNum, &g.VisGameNum},
		}
		for _, f := range ints {
			v, err := strconv.Atoi(strings.TrimSpace(rec[f.idx]))
			if err != nil {
				return nil, fmt.Errorf("row %d: %s: %w", row, f.name, err)
			}
			*f.dst = v
		}
		games = append(games, g)
	}
	return games, nil
}

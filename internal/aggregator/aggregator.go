package aggregator

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pable/go-playoff-odds/internal/model"
)

var (
	// ErrUnknownTeam is returned when a game names a team that never appears as
	// a home team in the same season.
	ErrUnknownTeam = errors.New("unknown team")
	// ErrGameNumber is returned when a game number falls outside the grid.
	ErrGameNumber = errors.New("game number out of range")
)

// Options controls how observations are placed in the accumulator.
type Options struct {
	// LegacyIndexing reproduces the historical column placement, where a
	// non-playoff home team is recorded one column to the right of every other
	// observation. Off means every observation at game g lands in column g-1.
	LegacyIndexing bool
}

// TeamSeasonState is a team's running record within one season.
type TeamSeasonState struct {
	Team string
	// WinPct[g] is the win fraction recorded at game number g. Slot 0 is unused.
	WinPct       []float64
	TotalWins    float64
	MadePlayoffs bool
	// GamesPlayed is the highest game number seen so far.
	GamesPlayed int
}

func newTeamSeasonState(team string, madePlayoffs bool) *TeamSeasonState {
	return &TeamSeasonState{
		Team:         team,
		WinPct:       make([]float64, GameSlots+1),
		MadePlayoffs: madePlayoffs,
	}
}

// FinalPct is the win fraction at the last game number seen.
func (s *TeamSeasonState) FinalPct() float64 {
	return s.WinPct[s.GamesPlayed]
}

func (s *TeamSeasonState) win(n int) {
	s.TotalWins++
	s.record(n)
}

func (s *TeamSeasonState) tie(n int) {
	s.TotalWins += 0.5
	s.record(n)
}

// record stores the current total over game number n. A loss calls this
// directly so the pre-game total is divided by the new game number.
func (s *TeamSeasonState) record(n int) {
	s.WinPct[n] = s.TotalWins / float64(n)
	if n > s.GamesPlayed {
		s.GamesPlayed = n
	}
}

// SeasonResult is the per-team state left after replaying a season.
type SeasonResult struct {
	Season int
	Games  int
	Teams  map[string]*TeamSeasonState
}

// SortedTeams returns the team states ordered by final win pct, best first.
func (r *SeasonResult) SortedTeams() []*TeamSeasonState {
	out := make([]*TeamSeasonState, 0, len(r.Teams))
	for _, t := range r.Teams {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FinalPct() != out[j].FinalPct() {
			return out[i].FinalPct() > out[j].FinalPct()
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// MeanFinalPct returns the mean final win pct of teams with the given playoff
// status, and how many teams contributed. The mean is 0 when n is 0.
func (r *SeasonResult) MeanFinalPct(madePlayoffs bool) (mean float64, n int) {
	var pcts []float64
	for _, t := range r.Teams {
		if t.MadePlayoffs == madePlayoffs {
			pcts = append(pcts, t.FinalPct())
		}
	}
	if len(pcts) == 0 {
		return 0, 0
	}
	return stat.Mean(pcts, nil), len(pcts)
}

// NewSeasonTable builds a fresh state for every distinct home team in games.
func NewSeasonTable(season int, games []model.GameRecord, playoffs model.PlayoffSet) map[string]*TeamSeasonState {
	teams := make(map[string]*TeamSeasonState)
	for _, g := range games {
		if _, ok := teams[g.HomeTeam]; ok {
			continue
		}
		teams[g.HomeTeam] = newTeamSeasonState(g.HomeTeam, playoffs.Contains(season, g.HomeTeam))
	}
	return teams
}

// AggregateSeason replays one season's games in order, updating each team's
// running record and adding two observations per game to acc.
func AggregateSeason(acc *Accumulator, season int, games []model.GameRecord, playoffs model.PlayoffSet, opts Options) (*SeasonResult, error) {
	if acc == nil {
		return nil, fmt.Errorf("nil Accumulator")
	}

	teams := NewSeasonTable(season, games, playoffs)
	placed, err := placeSeason(season, games, teams, opts)
	if err != nil {
		return nil, err
	}

	refs := Bins()
	for i, g := range games {
		home, vis := teams[g.HomeTeam], teams[g.VisTeam]

		switch g.Outcome() {
		case model.HomeWin:
			home.win(g.HomeGameNum)
			vis.record(g.VisGameNum)
		case model.VisWin:
			vis.win(g.VisGameNum)
			home.record(g.HomeGameNum)
		case model.Tie:
			home.tie(g.HomeGameNum)
			vis.tie(g.VisGameNum)
		}

		acc.Observe(NearestBin(home.WinPct[g.HomeGameNum], refs), placed[i].home, home.MadePlayoffs)
		acc.Observe(NearestBin(vis.WinPct[g.VisGameNum], refs), placed[i].vis, vis.MadePlayoffs)
	}

	return &SeasonResult{Season: season, Games: len(games), Teams: teams}, nil
}

type gameColumns struct{ home, vis int }

// placeSeason resolves the accumulator columns of every game in the season.
// Any unknown team or out-of-range game number fails the whole season, so
// nothing from it reaches the accumulator.
func placeSeason(season int, games []model.GameRecord, teams map[string]*TeamSeasonState, opts Options) ([]gameColumns, error) {
	placed := make([]gameColumns, len(games))
	for i, g := range games {
		home, ok := teams[g.HomeTeam]
		if !ok {
			return nil, fmt.Errorf("season %d game %d: %w %q", season, i+1, ErrUnknownTeam, g.HomeTeam)
		}
		vis, ok := teams[g.VisTeam]
		if !ok {
			return nil, fmt.Errorf("season %d game %d: %w %q", season, i+1, ErrUnknownTeam, g.VisTeam)
		}

		homeCol, err := column(g.HomeGameNum, home.MadePlayoffs, true, opts)
		if err != nil {
			return nil, fmt.Errorf("season %d game %d %s: %w", season, i+1, g.HomeTeam, err)
		}
		visCol, err := column(g.VisGameNum, vis.MadePlayoffs, false, opts)
		if err != nil {
			return nil, fmt.Errorf("season %d game %d %s: %w", season, i+1, g.VisTeam, err)
		}
		placed[i] = gameColumns{home: homeCol, vis: visCol}
	}
	return placed, nil
}

// column maps a game number to its accumulator column.
func column(gameNum int, madePlayoffs, home bool, opts Options) (int, error) {
	if gameNum < 1 || gameNum > GameSlots {
		return 0, fmt.Errorf("%w: %d", ErrGameNumber, gameNum)
	}
	col := gameNum - 1
	if opts.LegacyIndexing && home && !madePlayoffs {
		col = gameNum
	}
	if col >= GameSlots {
		return 0, fmt.Errorf("%w: %d", ErrGameNumber, gameNum)
	}
	return col, nil
}

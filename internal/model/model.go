package model

// ---- Raw records emitted by the loaders ----

// GameRecord is one regular-season game as recorded in a season game log.
// Game numbers come from the log itself and are not recomputed, so they keep
// whatever doubleheader or make-up quirks the source has.
type GameRecord struct {
	HomeTeam, VisTeam       string
	HomeScore, VisScore     int
	HomeGameNum, VisGameNum int
}

// Outcome of a game from the home team's point of view.
type Outcome int

const (
	HomeWin Outcome = iota
	VisWin
	Tie
)

func (o Outcome) String() string {
	switch o {
	case HomeWin:
		return "home"
	case VisWin:
		return "visitor"
	default:
		return "tie"
	}
}

// Outcome classifies the game by comparing scores.
func (g GameRecord) Outcome() Outcome {
	switch {
	case g.HomeScore > g.VisScore:
		return HomeWin
	case g.HomeScore < g.VisScore:
		return VisWin
	default:
		return Tie
	}
}

// PlayoffSet maps a season to the teams that played in its division series.
type PlayoffSet map[int]map[string]bool

// Contains reports whether team reached the division series in season.
// Unknown seasons and teams are treated as not qualified.
func (p PlayoffSet) Contains(season int, team string) bool {
	return p[season][team]
}

// Add records team as a division series participant for season.
func (p PlayoffSet) Add(season int, team string) {
	teams, ok := p[season]
	if !ok {
		teams = make(map[string]bool)
		p[season] = teams
	}
	teams[team] = true
}

// ---- Stored results ----

// MatrixCell is one non-empty accumulator cell: bin row, game column and both counts.
type MatrixCell struct {
	Bin, Col       int
	Playoff, Total float64
}

// RunSummary describes one persisted analysis run.
type RunSummary struct {
	ID             string
	CreatedAt      string
	FirstSeason    int
	LastSeason     int
	Games          int
	Observations   int
	LegacyIndexing bool
	OutputPath     string
}

// SeasonTeam is a team's final record for one season of a run.
type SeasonTeam struct {
	RunID        string
	Season       int
	Team         string
	Wins         float64
	Games        int
	MadePlayoffs bool
}

// WinPct returns the final win fraction, or 0 when no games were recorded.
func (t SeasonTeam) WinPct() float64 {
	if t.Games == 0 {
		return 0
	}
	return t.Wins / float64(t.Games)
}

// Overview describes the store: run count plus the season coverage of the
// most recent run.
type Overview struct {
	Runs           int
	LatestRun      string
	Seasons        int
	TeamSeasons    int
	PlayoffTeams   int
	TotalGames     int
	EarliestSeason int
	LatestSeason   int
}

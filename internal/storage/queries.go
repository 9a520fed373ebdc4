package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-playoff-odds/internal/model"
)

// InsertRun inserts a run record. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertRun(run model.RunSummary) error {
	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO runs(id, created_at, first_season, last_season, games, observations, legacy_indexing, output_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt, run.FirstSeason, run.LastSeason,
		run.Games, run.Observations, boolInt(run.LegacyIndexing), run.OutputPath,
	)
	return err
}

// InsertCells bulk-inserts the non-empty accumulator cells of a run in a transaction.
func (db *DB) InsertCells(runID string, cells []model.MatrixCell) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO run_cells(run_id, bin, game_col, playoff, total)
		VALUES (?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range cells {
		if _, err := stmt.Exec(runID, c.Bin, c.Col, c.Playoff, c.Total); err != nil {
			return fmt.Errorf("insert run_cells (%d,%d): %w", c.Bin, c.Col, err)
		}
	}
	return tx.Commit()
}

// InsertSeasonTeams bulk-inserts final team records in a transaction.
func (db *DB) InsertSeasonTeams(teams []model.SeasonTeam) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO season_teams(run_id, season, team, wins, games, made_playoffs)
		VALUES (?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range teams {
		if _, err := stmt.Exec(t.RunID, t.Season, t.Team, t.Wins, t.Games, boolInt(t.MadePlayoffs)); err != nil {
			return fmt.Errorf("insert season_teams for %s %d: %w", t.Team, t.Season, err)
		}
	}
	return tx.Commit()
}

const runColumns = `id, created_at, first_season, last_season, games, observations, legacy_indexing, output_path`

func scanRun(scan func(dest ...any) error) (model.RunSummary, error) {
	var r model.RunSummary
	var legacy int
	err := scan(&r.ID, &r.CreatedAt, &r.FirstSeason, &r.LastSeason,
		&r.Games, &r.Observations, &legacy, &r.OutputPath)
	r.LegacyIndexing = legacy != 0
	return r, err
}

// ListRuns returns all stored runs, newest first.
func (db *DB) ListRuns() ([]model.RunSummary, error) {
	rows, err := db.conn.Query(`SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.RunSummary
	for rows.Next() {
		r, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetRunByPrefix finds the newest run whose id starts with the given prefix.
// An empty prefix selects the newest run overall.
func (db *DB) GetRunByPrefix(prefix string) (*model.RunSummary, error) {
	row := db.conn.QueryRow(`SELECT `+runColumns+` FROM runs
		WHERE id LIKE ? ORDER BY created_at DESC, id LIMIT 1`, prefix+"%")
	r, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetCells returns the stored accumulator cells of a run.
func (db *DB) GetCells(runID string) ([]model.MatrixCell, error) {
	rows, err := db.conn.Query(`
		SELECT bin, game_col, playoff, total FROM run_cells
		WHERE run_id = ? ORDER BY bin, game_col`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatrixCell
	for rows.Next() {
		var c model.MatrixCell
		if err := rows.Scan(&c.Bin, &c.Col, &c.Playoff, &c.Total); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetSeasonTeams returns the final team records of one season, best record first.
func (db *DB) GetSeasonTeams(runID string, season int) ([]model.SeasonTeam, error) {
	rows, err := db.conn.Query(`
		SELECT run_id, season, team, wins, games, made_playoffs FROM season_teams
		WHERE run_id = ? AND season = ?
		ORDER BY CASE WHEN games > 0 THEN wins / games ELSE 0 END DESC, team`, runID, season)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SeasonTeam
	for rows.Next() {
		var t model.SeasonTeam
		var made int
		if err := rows.Scan(&t.RunID, &t.Season, &t.Team, &t.Wins, &t.Games, &made); err != nil {
			return nil, err
		}
		t.MadePlayoffs = made != 0
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetOverview counts stored runs and describes the season coverage of the newest one.
func (db *DB) GetOverview() (model.Overview, error) {
	var ov model.Overview
	if err := db.conn.QueryRow(`SELECT COUNT(1) FROM runs`).Scan(&ov.Runs); err != nil {
		return ov, err
	}
	if ov.Runs == 0 {
		return ov, nil
	}

	latest, err := db.GetRunByPrefix("")
	if err != nil {
		return ov, err
	}
	ov.LatestRun = latest.ID
	ov.TotalGames = latest.Games

	err = db.conn.QueryRow(`
		SELECT COUNT(DISTINCT season), COUNT(1), COALESCE(SUM(made_playoffs), 0),
		       COALESCE(MIN(season), 0), COALESCE(MAX(season), 0)
		FROM season_teams WHERE run_id = ?`, latest.ID).
		Scan(&ov.Seasons, &ov.TeamSeasons, &ov.PlayoffTeams, &ov.EarliestSeason, &ov.LatestSeason)
	return ov, err
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = "NULL"
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// DeleteRun removes a run with its cells and season teams. It reports false
// when no run has the given id.
func (db *DB) DeleteRun(runID string) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	for _, table := range []string{"run_cells", "season_teams"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE run_id = ?`, runID); err != nil {
			return false, fmt.Errorf("delete %s: %w", table, err)
		}
	}
	res, err := tx.Exec(`DELETE FROM runs WHERE id = ?`, runID)
	if err != nil {
		return false, fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

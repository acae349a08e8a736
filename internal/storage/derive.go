package storage

import (
	"fmt"

	"github.com/hockeystats/pwhl-metrics/internal/model"
)

// ---- Shot scoring ----

// ShotXG pairs a shot event id with its computed xG value.
type ShotXG struct {
	EventID string
	XG      float64
}

// ListShotsForScoring returns every stored shot with the fields the model needs.
func (db *DB) ListShotsForScoring() ([]model.Shot, error) {
	rows, err := db.conn.Query(`
		SELECT event_id, y_location, shot_type, quality, is_goal
		FROM shots`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Shot
	for rows.Next() {
		var s model.Shot
		var y *int
		var st, q, isGoal int
		if err := rows.Scan(&s.EventID, &y, &st, &q, &isGoal); err != nil {
			return nil, err
		}
		s.Y = y
		s.ShotType = model.ShotType(st)
		s.Quality = model.ShotQuality(q)
		s.IsGoal = isGoal != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateShotXG writes computed xG values back to the shots table in a transaction.
func (db *DB) UpdateShotXG(updates []ShotXG) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("UPDATE shots SET xg = ? WHERE event_id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range updates {
		if _, err := stmt.Exec(u.XG, u.EventID); err != nil {
			return fmt.Errorf("update shot xg %s: %w", u.EventID, err)
		}
	}
	return tx.Commit()
}

// ---- Skater xG aggregation ----

// SkaterShotAggregate is summed shot data for one (player, team, season) key.
type SkaterShotAggregate struct {
	PlayerID int
	TeamID   int
	SeasonID int
	XG       float64
	Goals    int
	Shots    int
}

// ClearSkaterXG resets the xG columns before a fresh aggregation pass.
func (db *DB) ClearSkaterXG() error {
	_, err := db.conn.Exec("UPDATE skater_stats SET xg = 0, goals_above_xg = 0")
	return err
}

// AggregateShotXG sums shot-level xG and goals per (player, team, season).
// Rows for the same player on different teams stay separate.
func (db *DB) AggregateShotXG() ([]SkaterShotAggregate, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, team_id, season_id, SUM(xg), SUM(is_goal), COUNT(*)
		FROM shots
		GROUP BY player_id, team_id, season_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SkaterShotAggregate
	for rows.Next() {
		var a SkaterShotAggregate
		if err := rows.Scan(&a.PlayerID, &a.TeamID, &a.SeasonID, &a.XG, &a.Goals, &a.Shots); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// SkaterXGUpdate carries final xG values for one skater stat row.
type SkaterXGUpdate struct {
	PlayerID     int
	TeamID       int
	SeasonID     int
	XG           float64
	GoalsAboveXG float64
}

// UpdateSkaterXG writes xG aggregates to skater_stats. Returns the number of
// matched rows; aggregates without a stat row are counted as misses by the caller.
func (db *DB) UpdateSkaterXG(updates []SkaterXGUpdate) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE skater_stats SET xg = ?, goals_above_xg = ?
		WHERE player_id = ? AND team_id = ? AND season_id = ?`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	matched := 0
	for _, u := range updates {
		res, err := stmt.Exec(u.XG, u.GoalsAboveXG, u.PlayerID, u.TeamID, u.SeasonID)
		if err != nil {
			return matched, fmt.Errorf("update skater xg %d/%d/%d: %w", u.PlayerID, u.TeamID, u.SeasonID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			matched++
		}
	}
	return matched, tx.Commit()
}

// ---- xG estimation inputs ----

// SkaterShootingRow is the shot/goal/position tuple the estimator trains on.
type SkaterShootingRow struct {
	PlayerID int
	TeamID   int
	SeasonID int
	Shots    int
	Goals    int
	Position string
}

// SkaterShootingRows returns shot and goal totals joined with position for the
// given seasons, restricted to skaters with at least one shot.
func (db *DB) SkaterShootingRows(seasonIDs []int) ([]SkaterShootingRow, error) {
	if len(seasonIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT s.player_id, s.team_id, s.season_id, s.shots, s.goals, COALESCE(p.position, '')
		FROM skater_stats s
		LEFT JOIN players p ON s.player_id = p.player_id
		WHERE s.shots > 0 AND s.season_id IN (` + placeholders(len(seasonIDs)) + `)`
	rows, err := db.conn.Query(query, intArgs(seasonIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SkaterShootingRow
	for rows.Next() {
		var r SkaterShootingRow
		if err := rows.Scan(&r.PlayerID, &r.TeamID, &r.SeasonID, &r.Shots, &r.Goals, &r.Position); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ---- Goalie GSAx ----

// GoalieShotAggregate is summed shot data faced by one goalie. In the shots
// table opponent_team_id is the defending side, so it is the goalie's team.
type GoalieShotAggregate struct {
	GoalieID int
	TeamID   int
	SeasonID int
	XG       float64
	Goals    int
	Shots    int
}

// AggregateShotsAgainst sums xG and goals against per goalie for one season.
func (db *DB) AggregateShotsAgainst(seasonID int) ([]GoalieShotAggregate, error) {
	rows, err := db.conn.Query(`
		SELECT goalie_id, opponent_team_id, season_id, SUM(xg), SUM(is_goal), COUNT(*)
		FROM shots
		WHERE goalie_id IS NOT NULL AND season_id = ?
		GROUP BY goalie_id, opponent_team_id`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GoalieShotAggregate
	for rows.Next() {
		var a GoalieShotAggregate
		if err := rows.Scan(&a.GoalieID, &a.TeamID, &a.SeasonID, &a.XG, &a.Goals, &a.Shots); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// GoalieGSAxUpdate carries a final GSAx value for one goalie stat row.
type GoalieGSAxUpdate struct {
	PlayerID int
	TeamID   int
	SeasonID int
	GSAx     float64
}

// UpdateGoalieGSAx writes GSAx values to goalie_stats.
func (db *DB) UpdateGoalieGSAx(updates []GoalieGSAxUpdate) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE goalie_stats SET gsax = ?
		WHERE player_id = ? AND team_id = ? AND season_id = ?`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	matched := 0
	for _, u := range updates {
		res, err := stmt.Exec(u.GSAx, u.PlayerID, u.TeamID, u.SeasonID)
		if err != nil {
			return matched, fmt.Errorf("update gsax %d/%d/%d: %w", u.PlayerID, u.TeamID, u.SeasonID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			matched++
		}
	}
	return matched, tx.Commit()
}

// LeagueAvgSavePct returns the mean save percentage across the given seasons,
// restricted to goalies with at least minGames played. ok is false when no
// qualifying rows exist.
func (db *DB) LeagueAvgSavePct(seasonIDs []int, minGames int) (avg float64, ok bool, err error) {
	if len(seasonIDs) == 0 {
		return 0, false, nil
	}
	query := `
		SELECT AVG(save_percentage) FROM goalie_stats
		WHERE games_played >= ? AND season_id IN (` + placeholders(len(seasonIDs)) + `)`
	args := append([]any{minGames}, intArgs(seasonIDs)...)

	var val *float64
	if err := db.conn.QueryRow(query, args...).Scan(&val); err != nil {
		return 0, false, err
	}
	if val == nil {
		return 0, false, nil
	}
	return *val, true, nil
}

// GoalieSeasonRow holds totals for estimating GSAx without shot data.
type GoalieSeasonRow struct {
	PlayerID     int
	TeamID       int
	SeasonID     int
	ShotsAgainst int
	GoalsAgainst int
}

// GoalieSeasonRows returns goalie totals for one season, restricted to
// goalies who faced at least one shot.
func (db *DB) GoalieSeasonRows(seasonID int) ([]GoalieSeasonRow, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, team_id, season_id, shots_against, goals_against
		FROM goalie_stats
		WHERE season_id = ? AND shots_against > 0`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GoalieSeasonRow
	for rows.Next() {
		var r GoalieSeasonRow
		if err := rows.Scan(&r.PlayerID, &r.TeamID, &r.SeasonID, &r.ShotsAgainst, &r.GoalsAgainst); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ---- Advanced stats passes ----

// EstimateIceTime fills in ice_time_seconds for skaters missing it, at
// defMinutes per game for defense and fwdMinutes for everyone else.
// Returns the number of rows estimated.
func (db *DB) EstimateIceTime(seasonID, defMinutes, fwdMinutes int) (int, error) {
	resD, err := db.conn.Exec(`
		UPDATE skater_stats
		SET ice_time_seconds = games_played * ? * 60
		WHERE season_id = ? AND (ice_time_seconds IS NULL OR ice_time_seconds = 0)
		  AND player_id IN (SELECT player_id FROM players WHERE position IN ('D', 'LD', 'RD'))`,
		defMinutes, seasonID)
	if err != nil {
		return 0, fmt.Errorf("estimate defense toi: %w", err)
	}
	resF, err := db.conn.Exec(`
		UPDATE skater_stats
		SET ice_time_seconds = games_played * ? * 60
		WHERE season_id = ? AND (ice_time_seconds IS NULL OR ice_time_seconds = 0)`,
		fwdMinutes, seasonID)
	if err != nil {
		return 0, fmt.Errorf("estimate forward toi: %w", err)
	}
	nd, _ := resD.RowsAffected()
	nf, _ := resF.RowsAffected()
	return int(nd + nf), nil
}

// UpdateRateStats recomputes per-60 rates and shooting percentage for a season.
func (db *DB) UpdateRateStats(seasonID int) error {
	_, err := db.conn.Exec(`
		UPDATE skater_stats
		SET points_per_60  = CASE WHEN ice_time_seconds > 0 THEN points  * 3600.0 / ice_time_seconds ELSE 0 END,
		    goals_per_60   = CASE WHEN ice_time_seconds > 0 THEN goals   * 3600.0 / ice_time_seconds ELSE 0 END,
		    assists_per_60 = CASE WHEN ice_time_seconds > 0 THEN assists * 3600.0 / ice_time_seconds ELSE 0 END,
		    shots_per_60   = CASE WHEN ice_time_seconds > 0 THEN shots   * 3600.0 / ice_time_seconds ELSE 0 END,
		    shooting_pct   = CASE WHEN shots > 0 THEN 100.0 * goals / shots ELSE 0 END
		WHERE season_id = ?`, seasonID)
	return err
}

// UpdateGameScore recomputes the composite game score for a season.
// Formula: G + 0.75*A + 0.5*S + 0.15*Blk - 0.35*PIM + 0.01*FOW.
func (db *DB) UpdateGameScore(seasonID int) error {
	_, err := db.conn.Exec(`
		UPDATE skater_stats
		SET game_score = goals
		    + 0.75 * assists
		    + 0.5  * shots
		    + 0.15 * COALESCE(blocks, 0)
		    - 0.35 * penalty_minutes
		    + 0.01 * COALESCE(faceoff_wins, 0)
		WHERE season_id = ?`, seasonID)
	return err
}

// TeamShotCounts holds shots for and against one team in one season.
type TeamShotCounts struct {
	TeamID       int
	ShotsFor     int
	ShotsAgainst int
}

// TeamSeasonShotCounts counts shots for and against each team in a season.
func (db *DB) TeamSeasonShotCounts(seasonID int) ([]TeamShotCounts, error) {
	rows, err := db.conn.Query(`
		SELECT t.team_id,
		       (SELECT COUNT(*) FROM shots WHERE season_id = ? AND team_id = t.team_id),
		       (SELECT COUNT(*) FROM shots WHERE season_id = ? AND opponent_team_id = t.team_id)
		FROM team_stats t
		WHERE t.season_id = ?`, seasonID, seasonID, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TeamShotCounts
	for rows.Next() {
		var c TeamShotCounts
		if err := rows.Scan(&c.TeamID, &c.ShotsFor, &c.ShotsAgainst); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateTeamCorsi writes attempt counts and the computed share for one team.
// Fenwick mirrors Corsi while shots are the only attempt source.
func (db *DB) UpdateTeamCorsi(teamID, seasonID, corsiFor, corsiAgainst int, corsiPct float64) error {
	_, err := db.conn.Exec(`
		UPDATE team_stats
		SET corsi_for = ?, corsi_against = ?, corsi_pct = ?,
		    fenwick_for = ?, fenwick_against = ?, fenwick_pct = ?
		WHERE team_id = ? AND season_id = ?`,
		corsiFor, corsiAgainst, corsiPct, corsiFor, corsiAgainst, corsiPct,
		teamID, seasonID)
	return err
}

// TeamGoalTotals holds standings goal totals used for PDO.
type TeamGoalTotals struct {
	TeamID       int
	GoalsFor     int
	GoalsAgainst int
}

// TeamSeasonGoalTotals returns goals for/against per team from team_stats.
func (db *DB) TeamSeasonGoalTotals(seasonID int) ([]TeamGoalTotals, error) {
	rows, err := db.conn.Query(`
		SELECT team_id, goals_for, goals_against
		FROM team_stats WHERE season_id = ?`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TeamGoalTotals
	for rows.Next() {
		var t TeamGoalTotals
		if err := rows.Scan(&t.TeamID, &t.GoalsFor, &t.GoalsAgainst); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateTeamPDO writes the PDO value for one team season.
func (db *DB) UpdateTeamPDO(teamID, seasonID int, pdo float64) error {
	_, err := db.conn.Exec(`
		UPDATE team_stats SET pdo = ? WHERE team_id = ? AND season_id = ?`,
		pdo, teamID, seasonID)
	return err
}

// FaceoffTotal holds faceoffs taken and won by one player for one team.
type FaceoffTotal struct {
	PlayerID int
	TeamID   int
	Total    int
	Wins     int
}

// FaceoffTotals counts faceoffs per player for a season, covering both the
// home and away sides of each draw. The same player may appear twice; callers
// merge by (player, team).
func (db *DB) FaceoffTotals(seasonID int) ([]FaceoffTotal, error) {
	rows, err := db.conn.Query(`
		SELECT f.home_player_id, g.home_team_id, COUNT(*), SUM(f.home_win)
		FROM faceoffs f
		JOIN games g ON f.game_id = g.game_id
		WHERE f.season_id = ? AND f.home_player_id IS NOT NULL
		GROUP BY f.home_player_id, g.home_team_id

		UNION ALL

		SELECT f.away_player_id, g.away_team_id, COUNT(*),
		       SUM(CASE WHEN f.home_win = 0 THEN 1 ELSE 0 END)
		FROM faceoffs f
		JOIN games g ON f.game_id = g.game_id
		WHERE f.season_id = ? AND f.away_player_id IS NOT NULL
		GROUP BY f.away_player_id, g.away_team_id`, seasonID, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FaceoffTotal
	for rows.Next() {
		var f FaceoffTotal
		if err := rows.Scan(&f.PlayerID, &f.TeamID, &f.Total, &f.Wins); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// UpdateSkaterFaceoffs writes merged faceoff totals and win percentage.
func (db *DB) UpdateSkaterFaceoffs(seasonID int, totals []FaceoffTotal) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE skater_stats
		SET faceoff_attempts = ?, faceoff_wins = ?, faceoff_pct = ?
		WHERE player_id = ? AND team_id = ? AND season_id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range totals {
		pct := 50.0
		if f.Total > 0 {
			pct = 100.0 * float64(f.Wins) / float64(f.Total)
		}
		if _, err := stmt.Exec(f.Total, f.Wins, pct, f.PlayerID, f.TeamID, seasonID); err != nil {
			return fmt.Errorf("update faceoffs for %d: %w", f.PlayerID, err)
		}
	}
	return tx.Commit()
}

// BlockTotal holds blocked shot counts per player.
type BlockTotal struct {
	PlayerID int
	TeamID   int
	Blocks   int
}

// BlockTotals counts blocked shots per blocker for a season.
func (db *DB) BlockTotals(seasonID int) ([]BlockTotal, error) {
	rows, err := db.conn.Query(`
		SELECT blocker_id, team_id, COUNT(*)
		FROM blocked_shots
		WHERE season_id = ? AND blocker_id IS NOT NULL
		GROUP BY blocker_id, team_id`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BlockTotal
	for rows.Next() {
		var b BlockTotal
		if err := rows.Scan(&b.PlayerID, &b.TeamID, &b.Blocks); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateSkaterBlocks writes block counts to skater_stats.
func (db *DB) UpdateSkaterBlocks(seasonID int, totals []BlockTotal) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE skater_stats SET blocks = ?
		WHERE player_id = ? AND team_id = ? AND season_id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range totals {
		if _, err := stmt.Exec(b.Blocks, b.PlayerID, b.TeamID, seasonID); err != nil {
			return fmt.Errorf("update blocks for %d: %w", b.PlayerID, err)
		}
	}
	return tx.Commit()
}

// ClutchTotal holds late-game goal counts per scorer.
type ClutchTotal struct {
	PlayerID int
	TeamID   int
	Goals    int
}

// ClutchGoalTotals counts goals scored in the third period or later.
func (db *DB) ClutchGoalTotals(seasonID int) ([]ClutchTotal, error) {
	rows, err := db.conn.Query(`
		SELECT scorer_id, team_id, COUNT(*)
		FROM goals
		WHERE season_id = ? AND period >= 3
		GROUP BY scorer_id, team_id`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ClutchTotal
	for rows.Next() {
		var c ClutchTotal
		if err := rows.Scan(&c.PlayerID, &c.TeamID, &c.Goals); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateSkaterClutch writes clutch goal counts to skater_stats.
func (db *DB) UpdateSkaterClutch(seasonID int, totals []ClutchTotal) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE skater_stats SET clutch_goals = ?
		WHERE player_id = ? AND team_id = ? AND season_id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range totals {
		if _, err := stmt.Exec(c.Goals, c.PlayerID, c.TeamID, seasonID); err != nil {
			return fmt.Errorf("update clutch goals for %d: %w", c.PlayerID, err)
		}
	}
	return tx.Commit()
}

func placeholders(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			s += ", "
		}
		s += "?"
	}
	return s
}

func intArgs(ids []int) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

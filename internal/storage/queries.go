package storage

import (
	"database/sql"
	"fmt"

	"github.com/hockeystats/pwhl-metrics/internal/model"
)

// InsertSeasons upserts season records. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertSeasons(seasons []model.Season) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO seasons(season_id, season_name, shortname, career, playoff, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range seasons {
		_, err = stmt.Exec(s.SeasonID, s.SeasonName, s.Shortname, s.Career, s.Playoff, s.StartDate, s.EndDate)
		if err != nil {
			return fmt.Errorf("insert season %d: %w", s.SeasonID, err)
		}
	}
	return tx.Commit()
}

// InsertTeams upserts team records.
func (db *DB) InsertTeams(teams []model.Team) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO teams(team_id, name, nickname, code, city, logo_url, division_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range teams {
		_, err = stmt.Exec(t.TeamID, t.Name, t.Nickname, t.Code, t.City, t.LogoURL, t.DivisionID)
		if err != nil {
			return fmt.Errorf("insert team %d: %w", t.TeamID, err)
		}
	}
	return tx.Commit()
}

// InsertPlayers upserts player records.
func (db *DB) InsertPlayers(players []model.Player) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO players(
			player_id, first_name, last_name, full_name, position, shoots,
			height, birthdate, hometown, nationality, image_url, active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		_, err = stmt.Exec(
			p.PlayerID, p.FirstName, p.LastName, p.FullName, p.Position, p.Shoots,
			p.Height, p.Birthdate, p.Hometown, p.Nationality, p.ImageURL, boolInt(p.Active),
		)
		if err != nil {
			return fmt.Errorf("insert player %d: %w", p.PlayerID, err)
		}
	}
	return tx.Commit()
}

// InsertRosterAssignments upserts roster assignments.
func (db *DB) InsertRosterAssignments(assignments []model.RosterAssignment) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO roster_assignments(player_id, team_id, season_id, jersey_number, rookie, status)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range assignments {
		_, err = stmt.Exec(a.PlayerID, a.TeamID, a.SeasonID, a.JerseyNumber, boolInt(a.Rookie), a.Status)
		if err != nil {
			return fmt.Errorf("insert roster assignment %d/%d/%d: %w", a.PlayerID, a.TeamID, a.SeasonID, err)
		}
	}
	return tx.Commit()
}

// InsertGames upserts game records.
func (db *DB) InsertGames(games []model.Game) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO games(
			game_id, season_id, game_number, date_played,
			home_team_id, away_team_id, home_goals, away_goals,
			periods, overtime, shootout, game_status, venue_name, attendance
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range games {
		_, err = stmt.Exec(
			g.GameID, g.SeasonID, g.GameNumber, g.DatePlayed,
			g.HomeTeamID, g.AwayTeamID, g.HomeGoals, g.AwayGoals,
			g.Periods, boolInt(g.Overtime), boolInt(g.Shootout),
			g.GameStatus, g.VenueName, g.Attendance,
		)
		if err != nil {
			return fmt.Errorf("insert game %d: %w", g.GameID, err)
		}
	}
	return tx.Commit()
}

// InsertShots bulk-upserts shot events in a transaction.
func (db *DB) InsertShots(shots []model.Shot) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO shots(
			event_id, game_id, season_id, player_id, goalie_id,
			team_id, opponent_team_id, is_home, period, seconds,
			x_location, y_location, shot_type, quality, is_goal, xg
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range shots {
		_, err = stmt.Exec(
			s.EventID, s.GameID, s.SeasonID, s.PlayerID, zeroNull(s.GoalieID),
			s.TeamID, s.OpponentTeamID, boolInt(s.IsHome), s.Period, s.Seconds,
			intPtr(s.X), intPtr(s.Y), int(s.ShotType), int(s.Quality), boolInt(s.IsGoal), s.XG,
		)
		if err != nil {
			return fmt.Errorf("insert shot %s: %w", s.EventID, err)
		}
	}
	return tx.Commit()
}

// InsertGoals bulk-upserts goal events in a transaction.
func (db *DB) InsertGoals(goals []model.Goal) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO goals(
			event_id, game_id, season_id, team_id, scorer_id, assist1_id, assist2_id,
			opponent_team_id, is_home, period, seconds,
			power_play, short_handed, empty_net, game_winning
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range goals {
		_, err = stmt.Exec(
			g.EventID, g.GameID, g.SeasonID, g.TeamID, g.ScorerID,
			zeroNull(g.Assist1ID), zeroNull(g.Assist2ID),
			g.OpponentTeamID, boolInt(g.IsHome), g.Period, g.Seconds,
			boolInt(g.PowerPlay), boolInt(g.ShortHanded), boolInt(g.EmptyNet), boolInt(g.GameWinning),
		)
		if err != nil {
			return fmt.Errorf("insert goal %s: %w", g.EventID, err)
		}
	}
	return tx.Commit()
}

// InsertPenalties bulk-upserts penalty events in a transaction.
func (db *DB) InsertPenalties(penalties []model.Penalty) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO penalties(
			event_id, game_id, season_id, player_id, team_id, is_home,
			period, minutes, class, description, bench, penalty_shot, power_play
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range penalties {
		_, err = stmt.Exec(
			p.EventID, p.GameID, p.SeasonID, p.PlayerID, p.TeamID, boolInt(p.IsHome),
			p.Period, p.Minutes, p.Class, p.Description,
			boolInt(p.Bench), boolInt(p.PenaltyShot), boolInt(p.PowerPlay),
		)
		if err != nil {
			return fmt.Errorf("insert penalty %s: %w", p.EventID, err)
		}
	}
	return tx.Commit()
}

// InsertFaceoffs bulk-upserts faceoff events in a transaction.
func (db *DB) InsertFaceoffs(faceoffs []model.Faceoff) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO faceoffs(
			event_id, game_id, season_id, home_player_id, away_player_id,
			period, seconds, x_location, y_location, location_id, home_win, win_team_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, f := range faceoffs {
		_, err = stmt.Exec(
			f.EventID, f.GameID, f.SeasonID, zeroNull(f.HomePlayerID), zeroNull(f.AwayPlayerID),
			f.Period, f.Seconds, intPtr(f.X), intPtr(f.Y), zeroNull(f.LocationID),
			boolInt(f.HomeWin), f.WinTeamID,
		)
		if err != nil {
			return fmt.Errorf("insert faceoff %s: %w", f.EventID, err)
		}
	}
	return tx.Commit()
}

// InsertHits bulk-upserts hit events in a transaction.
func (db *DB) InsertHits(hits []model.Hit) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO hits(
			event_id, game_id, season_id, player_id, team_id, is_home,
			period, seconds, x_location, y_location, hit_type
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, h := range hits {
		_, err = stmt.Exec(
			h.EventID, h.GameID, h.SeasonID, h.PlayerID, h.TeamID, boolInt(h.IsHome),
			h.Period, h.Seconds, intPtr(h.X), intPtr(h.Y), zeroNull(h.HitType),
		)
		if err != nil {
			return fmt.Errorf("insert hit %s: %w", h.EventID, err)
		}
	}
	return tx.Commit()
}

// InsertBlockedShots bulk-upserts blocked shot events in a transaction.
func (db *DB) InsertBlockedShots(blocks []model.BlockedShot) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO blocked_shots(
			event_id, game_id, season_id, blocker_id, shooter_id,
			team_id, opponent_team_id, is_home, period, seconds
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range blocks {
		_, err = stmt.Exec(
			b.EventID, b.GameID, b.SeasonID, zeroNull(b.BlockerID), zeroNull(b.ShooterID),
			b.TeamID, b.OpponentTeamID, boolInt(b.IsHome), b.Period, b.Seconds,
		)
		if err != nil {
			return fmt.Errorf("insert blocked shot %s: %w", b.EventID, err)
		}
	}
	return tx.Commit()
}

// InsertSkaterStats bulk-upserts skater season stat rows. Derived columns are
// reset to their defaults; re-run the derive passes after ingesting.
func (db *DB) InsertSkaterStats(stats []model.SkaterStats) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO skater_stats(
			player_id, team_id, season_id, games_played, goals, assists, points,
			shots, penalty_minutes, plus_minus, faceoff_attempts, faceoff_wins,
			ice_time_seconds, power_play_goals, power_play_assists,
			short_handed_goals, short_handed_points, game_winning_goals
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range stats {
		_, err = stmt.Exec(
			s.PlayerID, s.TeamID, s.SeasonID, s.GamesPlayed, s.Goals, s.Assists, s.Points,
			s.Shots, s.PenaltyMinutes, s.PlusMinus, s.FaceoffAttempts, s.FaceoffWins,
			s.IceTimeSeconds, s.PowerPlayGoals, s.PowerPlayAssists,
			s.ShortHandedGoals, s.ShortHandedPoints, s.GameWinningGoals,
		)
		if err != nil {
			return fmt.Errorf("insert skater_stats for %d: %w", s.PlayerID, err)
		}
	}
	return tx.Commit()
}

// InsertGoalieStats bulk-upserts goalie season stat rows.
func (db *DB) InsertGoalieStats(stats []model.GoalieStats) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO goalie_stats(
			player_id, team_id, season_id, games_played, seconds_played,
			wins, losses, ot_losses, shutouts, saves, shots_against,
			goals_against, save_percentage, goals_against_average
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range stats {
		_, err = stmt.Exec(
			g.PlayerID, g.TeamID, g.SeasonID, g.GamesPlayed, g.SecondsPlayed,
			g.Wins, g.Losses, g.OTLosses, g.Shutouts, g.Saves, g.ShotsAgainst,
			g.GoalsAgainst, g.SavePct, g.GAA,
		)
		if err != nil {
			return fmt.Errorf("insert goalie_stats for %d: %w", g.PlayerID, err)
		}
	}
	return tx.Commit()
}

// InsertTeamStats bulk-upserts team season stat rows.
func (db *DB) InsertTeamStats(stats []model.TeamStats) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO team_stats(
			team_id, season_id, games_played, wins, losses, ot_losses, points,
			goals_for, goals_against, power_plays, power_play_goals,
			times_short_handed, power_play_goals_against, penalty_minutes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range stats {
		_, err = stmt.Exec(
			t.TeamID, t.SeasonID, t.GamesPlayed, t.Wins, t.Losses, t.OTLosses, t.Points,
			t.GoalsFor, t.GoalsAgainst, t.PowerPlays, t.PowerPlayGoals,
			t.TimesShortHanded, t.PowerPlayGoalsAgainst, t.PenaltyMinutes,
		)
		if err != nil {
			return fmt.Errorf("insert team_stats for %d: %w", t.TeamID, err)
		}
	}
	return tx.Commit()
}

// ListSeasons returns all stored seasons ordered by id.
func (db *DB) ListSeasons() ([]model.Season, error) {
	rows, err := db.conn.Query(`
		SELECT season_id, season_name, shortname, career, playoff,
		       COALESCE(start_date, ''), COALESCE(end_date, '')
		FROM seasons ORDER BY season_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Season
	for rows.Next() {
		var s model.Season
		if err := rows.Scan(&s.SeasonID, &s.SeasonName, &s.Shortname,
			&s.Career, &s.Playoff, &s.StartDate, &s.EndDate); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetSeasonName returns the display name for a season id, or empty string if unknown.
func (db *DB) GetSeasonName(seasonID int) (string, error) {
	var name string
	err := db.conn.QueryRow("SELECT season_name FROM seasons WHERE season_id = ?", seasonID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return name, err
}

// SeasonIDs returns every stored season id ordered ascending.
func (db *DB) SeasonIDs() ([]int, error) {
	return db.intColumn("SELECT season_id FROM seasons ORDER BY season_id")
}

// SeasonsWithShots returns season ids that have shot-level data.
func (db *DB) SeasonsWithShots() ([]int, error) {
	return db.intColumn("SELECT DISTINCT season_id FROM shots ORDER BY season_id")
}

// FinalGamesWithoutShots returns completed game ids in a season that have
// no shot rows yet, ordered ascending.
func (db *DB) FinalGamesWithoutShots(seasonID int) ([]int, error) {
	return db.intColumn(`
		SELECT game_id FROM games
		WHERE season_id = ? AND game_status = 'Final'
		  AND game_id NOT IN (SELECT DISTINCT game_id FROM shots)
		ORDER BY game_id`, seasonID)
}

// SeasonsWithSkaterStats returns season ids that have skater stat rows.
func (db *DB) SeasonsWithSkaterStats() ([]int, error) {
	return db.intColumn("SELECT DISTINCT season_id FROM skater_stats ORDER BY season_id")
}

func (db *DB) intColumn(query string, args ...any) ([]int, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// zeroNull maps a zero id to NULL so optional references stay unset.
func zeroNull(id int) any {
	if id == 0 {
		return nil
	}
	return id
}

// intPtr maps a nil pointer to NULL.
func intPtr(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

package storage

import (
	"fmt"

	"github.com/hockeystats/pwhl-metrics/internal/model"
)

// ---- Home/away splits ----

// UpdateHomeAwayRecords recomputes team home and away win/loss counts from
// final games for a season.
func (db *DB) UpdateHomeAwayRecords(seasonID int) error {
	_, err := db.conn.Exec(`
		UPDATE team_stats
		SET home_wins = (
		        SELECT COUNT(*) FROM games g
		        WHERE g.season_id = team_stats.season_id AND g.game_status = 'Final'
		          AND g.home_team_id = team_stats.team_id AND g.home_goals > g.away_goals),
		    home_losses = (
		        SELECT COUNT(*) FROM games g
		        WHERE g.season_id = team_stats.season_id AND g.game_status = 'Final'
		          AND g.home_team_id = team_stats.team_id AND g.home_goals < g.away_goals),
		    away_wins = (
		        SELECT COUNT(*) FROM games g
		        WHERE g.season_id = team_stats.season_id AND g.game_status = 'Final'
		          AND g.away_team_id = team_stats.team_id AND g.away_goals > g.home_goals),
		    away_losses = (
		        SELECT COUNT(*) FROM games g
		        WHERE g.season_id = team_stats.season_id AND g.game_status = 'Final'
		          AND g.away_team_id = team_stats.team_id AND g.away_goals < g.home_goals)
		WHERE season_id = ?`, seasonID)
	return err
}

// ---- Game day tagging ----

// GameDate pairs a game id with its raw played timestamp.
type GameDate struct {
	GameID     int
	DatePlayed string
}

// GameDates returns ids and raw dates for every game in a season.
func (db *DB) GameDates(seasonID int) ([]GameDate, error) {
	rows, err := db.conn.Query(`
		SELECT game_id, COALESCE(date_played, '')
		FROM games WHERE season_id = ?`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GameDate
	for rows.Next() {
		var g GameDate
		if err := rows.Scan(&g.GameID, &g.DatePlayed); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GameDayUpdate tags one game with its weekday.
type GameDayUpdate struct {
	GameID    int
	DayOfWeek string
	IsWeekend bool
}

// UpdateGameDays writes weekday tags for games.
func (db *DB) UpdateGameDays(updates []GameDayUpdate) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("UPDATE games SET day_of_week = ?, is_weekend = ? WHERE game_id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range updates {
		if _, err := stmt.Exec(u.DayOfWeek, boolInt(u.IsWeekend), u.GameID); err != nil {
			return fmt.Errorf("update game day %d: %w", u.GameID, err)
		}
	}
	return tx.Commit()
}

// ---- Head-to-head ----

// FinalGame is the result of one completed game.
type FinalGame struct {
	SeasonID   int
	HomeTeamID int
	AwayTeamID int
	HomeGoals  int
	AwayGoals  int
}

// FinalGames returns every completed game across all seasons.
func (db *DB) FinalGames() ([]FinalGame, error) {
	rows, err := db.conn.Query(`
		SELECT season_id, home_team_id, away_team_id, home_goals, away_goals
		FROM games WHERE game_status = 'Final'`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FinalGame
	for rows.Next() {
		var g FinalGame
		if err := rows.Scan(&g.SeasonID, &g.HomeTeamID, &g.AwayTeamID, &g.HomeGoals, &g.AwayGoals); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// UpsertHeadToHead replaces head-to-head rows. Team order within a row is the
// caller's responsibility (lower id first).
func (db *DB) UpsertHeadToHead(records []model.HeadToHead) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO head_to_head(
			season_id, team1_id, team2_id, team1_wins, team2_wins, ties, team1_goals, team2_goals
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, h := range records {
		_, err = stmt.Exec(h.SeasonID, h.Team1ID, h.Team2ID,
			h.Team1Wins, h.Team2Wins, h.Ties, h.Team1Goals, h.Team2Goals)
		if err != nil {
			return fmt.Errorf("insert head_to_head %d/%d/%d: %w", h.SeasonID, h.Team1ID, h.Team2ID, err)
		}
	}
	return tx.Commit()
}

// ListHeadToHead returns stored head-to-head rows for a season.
func (db *DB) ListHeadToHead(seasonID int) ([]model.HeadToHead, error) {
	rows, err := db.conn.Query(`
		SELECT season_id, team1_id, team2_id, team1_wins, team2_wins, ties, team1_goals, team2_goals
		FROM head_to_head WHERE season_id = ?
		ORDER BY team1_id, team2_id`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.HeadToHead
	for rows.Next() {
		var h model.HeadToHead
		if err := rows.Scan(&h.SeasonID, &h.Team1ID, &h.Team2ID,
			&h.Team1Wins, &h.Team2Wins, &h.Ties, &h.Team1Goals, &h.Team2Goals); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ---- Venue performance ----

// RebuildVenueStats recomputes home-team performance per venue from completed
// games, replacing any prior rows.
func (db *DB) RebuildVenueStats() (int, error) {
	res, err := db.conn.Exec(`
		INSERT OR REPLACE INTO venue_stats(
			season_id, team_id, venue_name, games_played, wins, losses, goals_for, goals_against)
		SELECT season_id, home_team_id, venue_name,
		       COUNT(*),
		       SUM(CASE WHEN home_goals > away_goals THEN 1 ELSE 0 END),
		       SUM(CASE WHEN home_goals < away_goals THEN 1 ELSE 0 END),
		       SUM(home_goals),
		       SUM(away_goals)
		FROM games
		WHERE game_status = 'Final' AND venue_name IS NOT NULL AND venue_name != ''
		GROUP BY season_id, home_team_id, venue_name`)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// ListVenueStats returns stored venue rows for a season ordered by wins.
func (db *DB) ListVenueStats(seasonID int) ([]model.VenueStats, error) {
	rows, err := db.conn.Query(`
		SELECT season_id, team_id, venue_name, games_played, wins, losses, goals_for, goals_against
		FROM venue_stats WHERE season_id = ?
		ORDER BY wins DESC, games_played DESC`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.VenueStats
	for rows.Next() {
		var v model.VenueStats
		if err := rows.Scan(&v.SeasonID, &v.TeamID, &v.VenueName,
			&v.GamesPlayed, &v.Wins, &v.Losses, &v.GoalsFor, &v.GoalsAgainst); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ---- Streak estimates ----

// SkaterPointRow holds season point totals for streak estimation.
type SkaterPointRow struct {
	PlayerID    int
	TeamID      int
	Points      int
	GamesPlayed int
}

// SkaterPointRows returns point totals for skaters with games played.
func (db *DB) SkaterPointRows(seasonID int) ([]SkaterPointRow, error) {
	rows, err := db.conn.Query(`
		SELECT player_id, team_id, points, games_played
		FROM skater_stats
		WHERE season_id = ? AND games_played > 0`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SkaterPointRow
	for rows.Next() {
		var r SkaterPointRow
		if err := rows.Scan(&r.PlayerID, &r.TeamID, &r.Points, &r.GamesPlayed); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// StreakUpdate carries estimated streak figures for one skater.
type StreakUpdate struct {
	PlayerID        int
	TeamID          int
	MaxPointStreak  int
	MultiPointGames int
}

// UpdateSkaterStreaks writes estimated streak figures to skater_stats.
func (db *DB) UpdateSkaterStreaks(seasonID int, updates []StreakUpdate) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		UPDATE skater_stats SET est_max_point_streak = ?, est_multi_point_games = ?
		WHERE player_id = ? AND team_id = ? AND season_id = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range updates {
		if _, err := stmt.Exec(u.MaxPointStreak, u.MultiPointGames, u.PlayerID, u.TeamID, seasonID); err != nil {
			return fmt.Errorf("update streaks for %d: %w", u.PlayerID, err)
		}
	}
	return tx.Commit()
}

package storage

// SkaterLeader is one row of a skater leaderboard, joined with names.
type SkaterLeader struct {
	PlayerID     int
	Name         string
	TeamName     string
	GamesPlayed  int
	Goals        int
	Assists      int
	Points       int
	Shots        int
	XG           float64
	GoalsAboveXG float64
	GameScore    float64
	PointsPer60  float64
}

const skaterLeaderSelect = `
	SELECT s.player_id, COALESCE(p.full_name, 'player ' || s.player_id),
	       COALESCE(t.name, 'team ' || s.team_id),
	       s.games_played, s.goals, s.assists, s.points, s.shots,
	       s.xg, s.goals_above_xg, s.game_score, s.points_per_60
	FROM skater_stats s
	LEFT JOIN players p ON s.player_id = p.player_id
	LEFT JOIN teams t ON s.team_id = t.team_id`

func (db *DB) skaterLeaders(query string, args ...any) ([]SkaterLeader, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SkaterLeader
	for rows.Next() {
		var l SkaterLeader
		if err := rows.Scan(&l.PlayerID, &l.Name, &l.TeamName,
			&l.GamesPlayed, &l.Goals, &l.Assists, &l.Points, &l.Shots,
			&l.XG, &l.GoalsAboveXG, &l.GameScore, &l.PointsPer60); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// XGLeaders returns skaters ordered by xG for a season.
func (db *DB) XGLeaders(seasonID, limit int) ([]SkaterLeader, error) {
	return db.skaterLeaders(skaterLeaderSelect+`
		WHERE s.season_id = ? AND s.xg > 0
		ORDER BY s.xg DESC LIMIT ?`, seasonID, limit)
}

// FinishingLeaders returns skaters ordered by goals above xG, restricted to
// those with enough xG for the difference to mean something.
func (db *DB) FinishingLeaders(seasonID, limit int, minXG float64) ([]SkaterLeader, error) {
	return db.skaterLeaders(skaterLeaderSelect+`
		WHERE s.season_id = ? AND s.xg > ?
		ORDER BY s.goals_above_xg DESC LIMIT ?`, seasonID, minXG, limit)
}

// GameScoreLeaders returns skaters ordered by composite game score.
func (db *DB) GameScoreLeaders(seasonID, minGames, limit int) ([]SkaterLeader, error) {
	return db.skaterLeaders(skaterLeaderSelect+`
		WHERE s.season_id = ? AND s.games_played >= ?
		ORDER BY s.game_score DESC LIMIT ?`, seasonID, minGames, limit)
}

// PointsPer60Leaders returns skaters ordered by points per 60 minutes.
func (db *DB) PointsPer60Leaders(seasonID, minGames, limit int) ([]SkaterLeader, error) {
	return db.skaterLeaders(skaterLeaderSelect+`
		WHERE s.season_id = ? AND s.games_played >= ?
		ORDER BY s.points_per_60 DESC LIMIT ?`, seasonID, minGames, limit)
}

// GoalieLeader is one row of the GSAx leaderboard.
type GoalieLeader struct {
	PlayerID     int
	Name         string
	TeamName     string
	GamesPlayed  int
	Wins         int
	SavePct      float64
	ShotsAgainst int
	GoalsAgainst int
	GSAx         float64
}

// GSAxLeaders returns goalies ordered by goals saved above expected.
func (db *DB) GSAxLeaders(seasonID, minGames, limit int) ([]GoalieLeader, error) {
	rows, err := db.conn.Query(`
		SELECT g.player_id, COALESCE(p.full_name, 'player ' || g.player_id),
		       COALESCE(t.name, 'team ' || g.team_id),
		       g.games_played, g.wins, g.save_percentage,
		       g.shots_against, g.goals_against, g.gsax
		FROM goalie_stats g
		LEFT JOIN players p ON g.player_id = p.player_id
		LEFT JOIN teams t ON g.team_id = t.team_id
		WHERE g.season_id = ? AND g.games_played >= ?
		ORDER BY g.gsax DESC LIMIT ?`, seasonID, minGames, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GoalieLeader
	for rows.Next() {
		var l GoalieLeader
		if err := rows.Scan(&l.PlayerID, &l.Name, &l.TeamName,
			&l.GamesPlayed, &l.Wins, &l.SavePct,
			&l.ShotsAgainst, &l.GoalsAgainst, &l.GSAx); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// TeamTableRow is one row of the team standings/possession table.
type TeamTableRow struct {
	TeamID       int
	Name         string
	GamesPlayed  int
	Wins         int
	Losses       int
	OTLosses     int
	Points       int
	GoalsFor     int
	GoalsAgainst int
	CorsiPct     float64
	PDO          float64
	HomeWins     int
	HomeLosses   int
	AwayWins     int
	AwayLosses   int
}

// TeamTable returns the team table for a season ordered by points.
func (db *DB) TeamTable(seasonID int) ([]TeamTableRow, error) {
	rows, err := db.conn.Query(`
		SELECT s.team_id, COALESCE(t.name, 'team ' || s.team_id),
		       s.games_played, s.wins, s.losses, s.ot_losses, s.points,
		       s.goals_for, s.goals_against, s.corsi_pct, s.pdo,
		       s.home_wins, s.home_losses, s.away_wins, s.away_losses
		FROM team_stats s
		LEFT JOIN teams t ON s.team_id = t.team_id
		WHERE s.season_id = ?
		ORDER BY s.points DESC, s.wins DESC`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TeamTableRow
	for rows.Next() {
		var r TeamTableRow
		if err := rows.Scan(&r.TeamID, &r.Name,
			&r.GamesPlayed, &r.Wins, &r.Losses, &r.OTLosses, &r.Points,
			&r.GoalsFor, &r.GoalsAgainst, &r.CorsiPct, &r.PDO,
			&r.HomeWins, &r.HomeLosses, &r.AwayWins, &r.AwayLosses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// TeamNames returns a lookup of every team id to its display name.
func (db *DB) TeamNames() (map[int]string, error) {
	rows, err := db.conn.Query("SELECT team_id, name FROM teams")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]string)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = name
	}
	return out, rows.Err()
}

// TeamName returns the display name for a team id.
func (db *DB) TeamName(teamID int) (string, error) {
	var name string
	err := db.conn.QueryRow("SELECT name FROM teams WHERE team_id = ?", teamID).Scan(&name)
	if err != nil {
		return "", err
	}
	return name, nil
}

// TableCount pairs a table name with its row count.
type TableCount struct {
	Table string
	Count int
}

// overviewTables lists the tables reported by the summary command.
var overviewTables = []string{
	"seasons", "teams", "players", "roster_assignments", "games",
	"skater_stats", "goalie_stats", "team_stats",
	"shots", "goals", "penalties", "faceoffs", "hits", "blocked_shots",
	"head_to_head", "venue_stats",
}

// TableCounts returns row counts for every table in the store.
func (db *DB) TableCounts() ([]TableCount, error) {
	out := make([]TableCount, 0, len(overviewTables))
	for _, table := range overviewTables {
		var n int
		if err := db.conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, TableCount{Table: table, Count: n})
	}
	return out, nil
}

// SeasonOverview summarizes one season's stored rows.
type SeasonOverview struct {
	SeasonID   int
	SeasonName string
	Games      int
	Shots      int
	SkaterRows int
	GoalieRows int
}

// SeasonOverviews returns per-season row counts for the list command.
func (db *DB) SeasonOverviews() ([]SeasonOverview, error) {
	rows, err := db.conn.Query(`
		SELECT s.season_id, s.season_name,
		       (SELECT COUNT(*) FROM games WHERE season_id = s.season_id),
		       (SELECT COUNT(*) FROM shots WHERE season_id = s.season_id),
		       (SELECT COUNT(*) FROM skater_stats WHERE season_id = s.season_id),
		       (SELECT COUNT(*) FROM goalie_stats WHERE season_id = s.season_id)
		FROM seasons s ORDER BY s.season_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SeasonOverview
	for rows.Next() {
		var o SeasonOverview
		if err := rows.Scan(&o.SeasonID, &o.SeasonName, &o.Games, &o.Shots, &o.SkaterRows, &o.GoalieRows); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

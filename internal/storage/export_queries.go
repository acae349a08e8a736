package storage

// ExportSkaterRow is one flattened skater stat row for CSV export.
type ExportSkaterRow struct {
	PlayerID     int
	Name         string
	Position     string
	TeamCode     string
	SeasonID     int
	GamesPlayed  int
	Goals        int
	Assists      int
	Points       int
	Shots        int
	ShootingPct  float64
	XG           float64
	GoalsAboveXG float64
	GameScore    float64
	PointsPer60  float64
	GoalsPer60   float64
	FaceoffPct   float64
	Blocks       int
	ClutchGoals  int
}

// ExportSkaterRows returns all skater rows for a season joined with names.
func (db *DB) ExportSkaterRows(seasonID int) ([]ExportSkaterRow, error) {
	rows, err := db.conn.Query(`
		SELECT s.player_id, COALESCE(p.full_name, ''), COALESCE(p.position, ''),
		       COALESCE(t.code, ''), s.season_id,
		       s.games_played, s.goals, s.assists, s.points, s.shots,
		       s.shooting_pct, s.xg, s.goals_above_xg, s.game_score,
		       s.points_per_60, s.goals_per_60, s.faceoff_pct, s.blocks, s.clutch_goals
		FROM skater_stats s
		LEFT JOIN players p ON s.player_id = p.player_id
		LEFT JOIN teams t ON s.team_id = t.team_id
		WHERE s.season_id = ?
		ORDER BY s.points DESC, s.goals DESC`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportSkaterRow
	for rows.Next() {
		var r ExportSkaterRow
		if err := rows.Scan(&r.PlayerID, &r.Name, &r.Position, &r.TeamCode, &r.SeasonID,
			&r.GamesPlayed, &r.Goals, &r.Assists, &r.Points, &r.Shots,
			&r.ShootingPct, &r.XG, &r.GoalsAboveXG, &r.GameScore,
			&r.PointsPer60, &r.GoalsPer60, &r.FaceoffPct, &r.Blocks, &r.ClutchGoals); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ExportTeamRow is one flattened team stat row for CSV export.
type ExportTeamRow struct {
	TeamID       int
	Name         string
	SeasonID     int
	GamesPlayed  int
	Wins         int
	Losses       int
	OTLosses     int
	Points       int
	GoalsFor     int
	GoalsAgainst int
	CorsiPct     float64
	FenwickPct   float64
	PDO          float64
	HomeWins     int
	HomeLosses   int
	AwayWins     int
	AwayLosses   int
}

// ExportTeamRows returns all team rows for a season joined with names.
func (db *DB) ExportTeamRows(seasonID int) ([]ExportTeamRow, error) {
	rows, err := db.conn.Query(`
		SELECT s.team_id, COALESCE(t.name, ''), s.season_id,
		       s.games_played, s.wins, s.losses, s.ot_losses, s.points,
		       s.goals_for, s.goals_against,
		       s.corsi_pct, s.fenwick_pct, s.pdo,
		       s.home_wins, s.home_losses, s.away_wins, s.away_losses
		FROM team_stats s
		LEFT JOIN teams t ON s.team_id = t.team_id
		WHERE s.season_id = ?
		ORDER BY s.points DESC, s.wins DESC`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportTeamRow
	for rows.Next() {
		var r ExportTeamRow
		if err := rows.Scan(&r.TeamID, &r.Name, &r.SeasonID,
			&r.GamesPlayed, &r.Wins, &r.Losses, &r.OTLosses, &r.Points,
			&r.GoalsFor, &r.GoalsAgainst,
			&r.CorsiPct, &r.FenwickPct, &r.PDO,
			&r.HomeWins, &r.HomeLosses, &r.AwayWins, &r.AwayLosses); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ExportGoalieRow is one flattened goalie stat row for CSV export.
type ExportGoalieRow struct {
	PlayerID     int
	Name         string
	TeamCode     string
	SeasonID     int
	GamesPlayed  int
	Wins         int
	Losses       int
	OTLosses     int
	Shutouts     int
	ShotsAgainst int
	GoalsAgainst int
	SavePct      float64
	GAA          float64
	GSAx         float64
}

// ExportGoalieRows returns all goalie rows for a season joined with names.
func (db *DB) ExportGoalieRows(seasonID int) ([]ExportGoalieRow, error) {
	rows, err := db.conn.Query(`
		SELECT g.player_id, COALESCE(p.full_name, ''), COALESCE(t.code, ''), g.season_id,
		       g.games_played, g.wins, g.losses, g.ot_losses, g.shutouts,
		       g.shots_against, g.goals_against, g.save_percentage,
		       g.goals_against_average, g.gsax
		FROM goalie_stats g
		LEFT JOIN players p ON g.player_id = p.player_id
		LEFT JOIN teams t ON g.team_id = t.team_id
		WHERE g.season_id = ?
		ORDER BY g.gsax DESC`, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExportGoalieRow
	for rows.Next() {
		var r ExportGoalieRow
		if err := rows.Scan(&r.PlayerID, &r.Name, &r.TeamCode, &r.SeasonID,
			&r.GamesPlayed, &r.Wins, &r.Losses, &r.OTLosses, &r.Shutouts,
			&r.ShotsAgainst, &r.GoalsAgainst, &r.SavePct, &r.GAA, &r.GSAx); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hockeystats/pwhl-metrics/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the database",
	Long: `Run an arbitrary SQL query against the database and print results as a table.

Schema overview:
  seasons(season_id, season_name, shortname, career, playoff, ...)
  teams(team_id, name, nickname, code, city, ...)
  players(player_id, full_name, position, shoots, birthdate, ...)
  games(game_id, season_id, date_played, home_team_id, away_team_id,
    home_goals, away_goals, game_status, venue_name, day_of_week, ...)
  shots(event_id TEXT, game_id, season_id, player_id, goalie_id, team_id,
    x_location, y_location, shot_type, quality, is_goal, xg)
  goals / penalties / faceoffs / hits / blocked_shots: per-event tables
  skater_stats(player_id, team_id, season_id, goals, assists, points, shots,
    xg, goals_above_xg, points_per_60, game_score, faceoff_pct, blocks, ...)
  goalie_stats(player_id, team_id, season_id, shots_against, goals_against,
    save_percentage, gsax, ...)
  team_stats(team_id, season_id, wins, points, corsi_pct, pdo,
    home_wins, away_wins, ...)
  head_to_head(season_id, team1_id, team2_id, team1_wins, ties, ...)
  venue_stats(season_id, team_id, venue_name, games_played, wins, ...)

Note: event ids are TEXT. Use quotes: WHERE event_id = '123456'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(strings.Join(args, " "))
	if err != nil {
		return err
	}
	report.PrintQueryResult(os.Stdout, cols, rows)
	return nil
}

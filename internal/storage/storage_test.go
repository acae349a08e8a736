package storage

import (
	"testing"

	"github.com/hockeystats/pwhl-metrics/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func intp(v int) *int { return &v }

func TestInsertSeasonsUpsert(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertSeasons([]model.Season{
		{SeasonID: 5, SeasonName: "2024-25 Regular Season"},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := db.InsertSeasons([]model.Season{
		{SeasonID: 5, SeasonName: "2024-25 Regular Season (updated)", Playoff: 0},
	}); err != nil {
		t.Fatalf("reinsert: %v", err)
	}

	seasons, err := db.ListSeasons()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(seasons) != 1 {
		t.Fatalf("got %d seasons, want 1 after upsert", len(seasons))
	}
	if seasons[0].SeasonName != "2024-25 Regular Season (updated)" {
		t.Errorf("name = %q", seasons[0].SeasonName)
	}
}

func TestGetSeasonNameMissing(t *testing.T) {
	db := openMemDB(t)
	name, err := db.GetSeasonName(999)
	if err != nil {
		t.Fatalf("GetSeasonName: %v", err)
	}
	if name != "" {
		t.Errorf("name = %q, want empty for unknown season", name)
	}
}

func TestInsertShotsNullables(t *testing.T) {
	db := openMemDB(t)

	shots := []model.Shot{
		{EventID: "a", GameID: 1, SeasonID: 5, PlayerID: 101, TeamID: 1, OpponentTeamID: 2,
			X: intp(180), Y: intp(150), GoalieID: 201},
		{EventID: "b", GameID: 1, SeasonID: 5, PlayerID: 101, TeamID: 1, OpponentTeamID: 2},
	}
	if err := db.InsertShots(shots); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, rows, err := db.QueryRaw("SELECT event_id, goalie_id, x_location, y_location FROM shots ORDER BY event_id")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0][1] != "201" || rows[0][2] != "180" || rows[0][3] != "150" {
		t.Errorf("shot a = %v", rows[0])
	}
	// Empty-net shot with no location stores NULLs, not zeros.
	if rows[1][1] != "" || rows[1][2] != "" || rows[1][3] != "" {
		t.Errorf("shot b = %v, want NULL goalie and location", rows[1])
	}

	// Re-inserting the same event ids must not duplicate.
	if err := db.InsertShots(shots); err != nil {
		t.Fatalf("reinsert: %v", err)
	}
	_, rows, err = db.QueryRaw("SELECT COUNT(*) FROM shots")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows[0][0] != "2" {
		t.Errorf("count = %s after reinsert, want 2", rows[0][0])
	}
}

func TestSeasonsWithShots(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertShots([]model.Shot{
		{EventID: "a", GameID: 1, SeasonID: 5, PlayerID: 101, TeamID: 1, OpponentTeamID: 2},
		{EventID: "b", GameID: 2, SeasonID: 3, PlayerID: 101, TeamID: 1, OpponentTeamID: 2},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	seasons, err := db.SeasonsWithShots()
	if err != nil {
		t.Fatalf("SeasonsWithShots: %v", err)
	}
	if len(seasons) != 2 || seasons[0] != 3 || seasons[1] != 5 {
		t.Errorf("seasons = %v, want [3 5]", seasons)
	}
}

func TestUpdateSkaterXGMatchedCount(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertSkaterStats([]model.SkaterStats{
		{PlayerID: 101, TeamID: 1, SeasonID: 5, GamesPlayed: 10},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	matched, err := db.UpdateSkaterXG([]SkaterXGUpdate{
		{PlayerID: 101, TeamID: 1, SeasonID: 5, XG: 2.5, GoalsAboveXG: -0.5},
		{PlayerID: 999, TeamID: 1, SeasonID: 5, XG: 1.0},
	})
	if err != nil {
		t.Fatalf("UpdateSkaterXG: %v", err)
	}
	if matched != 1 {
		t.Errorf("matched = %d, want 1 (no stat row for player 999)", matched)
	}
}

func TestEstimateIceTime(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertPlayers([]model.Player{
		{PlayerID: 101, FullName: "D Player", Position: "LD"},
		{PlayerID: 102, FullName: "F Player", Position: "C"},
		{PlayerID: 103, FullName: "Tracked Player", Position: "C"},
	}); err != nil {
		t.Fatalf("insert players: %v", err)
	}
	if err := db.InsertSkaterStats([]model.SkaterStats{
		{PlayerID: 101, TeamID: 1, SeasonID: 5, GamesPlayed: 10},
		{PlayerID: 102, TeamID: 1, SeasonID: 5, GamesPlayed: 10},
		{PlayerID: 103, TeamID: 1, SeasonID: 5, GamesPlayed: 10, IceTimeSeconds: 9000},
	}); err != nil {
		t.Fatalf("insert stats: %v", err)
	}

	n, err := db.EstimateIceTime(5, 20, 15)
	if err != nil {
		t.Fatalf("EstimateIceTime: %v", err)
	}
	if n != 2 {
		t.Errorf("estimated %d rows, want 2 (existing ice time preserved)", n)
	}

	_, rows, err := db.QueryRaw("SELECT player_id, ice_time_seconds FROM skater_stats ORDER BY player_id")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	// 10 games at 20 min for defense, 15 for forwards.
	if rows[0][1] != "12000" {
		t.Errorf("defense toi = %s, want 12000", rows[0][1])
	}
	if rows[1][1] != "9000" {
		t.Errorf("forward toi = %s, want 9000", rows[1][1])
	}
	if rows[2][1] != "9000" {
		t.Errorf("tracked toi = %s, want 9000 untouched", rows[2][1])
	}
}

func TestUpdateRateStatsAndGameScore(t *testing.T) {
	db := openMemDB(t)

	// 7200 seconds of ice time makes the per-60 math transparent.
	if err := db.InsertSkaterStats([]model.SkaterStats{
		{PlayerID: 101, TeamID: 1, SeasonID: 5, GamesPlayed: 8, Goals: 4, Assists: 6,
			Points: 10, Shots: 20, PenaltyMinutes: 2, IceTimeSeconds: 7200},
		{PlayerID: 102, TeamID: 1, SeasonID: 5, GamesPlayed: 3},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := db.UpdateRateStats(5); err != nil {
		t.Fatalf("UpdateRateStats: %v", err)
	}
	if err := db.UpdateGameScore(5); err != nil {
		t.Fatalf("UpdateGameScore: %v", err)
	}

	_, rows, err := db.QueryRaw(`
		SELECT points_per_60, goals_per_60, shooting_pct, game_score
		FROM skater_stats WHERE player_id = 101`)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if rows[0][0] != "5.000" || rows[0][1] != "2.000" {
		t.Errorf("per-60 = %v", rows[0])
	}
	if rows[0][2] != "20.000" {
		t.Errorf("shooting pct = %s, want 20.000", rows[0][2])
	}
	// 4 + 0.75*6 + 0.5*20 - 0.35*2 = 17.8.
	if rows[0][3] != "17.800" {
		t.Errorf("game score = %s, want 17.800", rows[0][3])
	}

	// Shotless, ice-timeless player stays at zero instead of dividing by zero.
	_, rows, err = db.QueryRaw("SELECT points_per_60, shooting_pct FROM skater_stats WHERE player_id = 102")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if rows[0][0] != "0.000" || rows[0][1] != "0.000" {
		t.Errorf("zero row = %v", rows[0])
	}
}

func TestFaceoffTotalsTeamAttribution(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertGames([]model.Game{
		{GameID: 1, SeasonID: 5, HomeTeamID: 1, AwayTeamID: 2, GameStatus: "Final"},
	}); err != nil {
		t.Fatalf("insert games: %v", err)
	}
	// Player 101 takes two draws at home and wins one; 201 takes both for
	// the away side.
	if err := db.InsertFaceoffs([]model.Faceoff{
		{EventID: "f1", GameID: 1, SeasonID: 5, HomePlayerID: 101, AwayPlayerID: 201, HomeWin: true, WinTeamID: 1},
		{EventID: "f2", GameID: 1, SeasonID: 5, HomePlayerID: 101, AwayPlayerID: 201, WinTeamID: 2},
	}); err != nil {
		t.Fatalf("insert faceoffs: %v", err)
	}

	totals, err := db.FaceoffTotals(5)
	if err != nil {
		t.Fatalf("FaceoffTotals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("totals = %+v", totals)
	}

	byPlayer := make(map[int]FaceoffTotal)
	for _, f := range totals {
		byPlayer[f.PlayerID] = f
	}
	home := byPlayer[101]
	if home.TeamID != 1 || home.Total != 2 || home.Wins != 1 {
		t.Errorf("home = %+v", home)
	}
	away := byPlayer[201]
	if away.TeamID != 2 || away.Total != 2 || away.Wins != 1 {
		t.Errorf("away = %+v", away)
	}
}

func TestLeagueAvgSavePct(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertGoalieStats([]model.GoalieStats{
		{PlayerID: 201, TeamID: 1, SeasonID: 5, GamesPlayed: 10, SavePct: 0.92},
		{PlayerID: 202, TeamID: 2, SeasonID: 5, GamesPlayed: 10, SavePct: 0.90},
		{PlayerID: 203, TeamID: 2, SeasonID: 5, GamesPlayed: 2, SavePct: 0.50},
	}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	avg, ok, err := db.LeagueAvgSavePct([]int{5}, 5)
	if err != nil {
		t.Fatalf("LeagueAvgSavePct: %v", err)
	}
	if !ok {
		t.Fatal("ok = false, want true")
	}
	// The 2-game goalie is excluded: (0.92 + 0.90) / 2.
	if avg < 0.9099 || avg > 0.9101 {
		t.Errorf("avg = %v, want 0.91", avg)
	}

	if _, ok, err := db.LeagueAvgSavePct(nil, 5); err != nil || ok {
		t.Errorf("empty seasons: ok=%v err=%v, want false/nil", ok, err)
	}
}

func TestRebuildVenueStats(t *testing.T) {
	db := openMemDB(t)

	if err := db.InsertGames([]model.Game{
		{GameID: 1, SeasonID: 5, HomeTeamID: 1, AwayTeamID: 2, HomeGoals: 3, AwayGoals: 1,
			GameStatus: "Final", VenueName: "Place Bell"},
		{GameID: 2, SeasonID: 5, HomeTeamID: 1, AwayTeamID: 2, HomeGoals: 1, AwayGoals: 2,
			GameStatus: "Final", VenueName: "Place Bell"},
		{GameID: 3, SeasonID: 5, HomeTeamID: 1, AwayTeamID: 2, GameStatus: "Scheduled", VenueName: "Place Bell"},
		{GameID: 4, SeasonID: 5, HomeTeamID: 1, AwayTeamID: 2, HomeGoals: 5, AwayGoals: 0, GameStatus: "Final"},
	}); err != nil {
		t.Fatalf("insert games: %v", err)
	}

	n, err := db.RebuildVenueStats()
	if err != nil {
		t.Fatalf("RebuildVenueStats: %v", err)
	}
	if n != 1 {
		t.Errorf("rows = %d, want 1 (scheduled and venueless games excluded)", n)
	}

	stats, err := db.ListVenueStats(5)
	if err != nil {
		t.Fatalf("ListVenueStats: %v", err)
	}
	if len(stats) != 1 {
		t.Fatalf("stats = %+v", stats)
	}
	v := stats[0]
	if v.VenueName != "Place Bell" || v.TeamID != 1 {
		t.Errorf("venue = %+v", v)
	}
	if v.GamesPlayed != 2 || v.Wins != 1 || v.Losses != 1 {
		t.Errorf("record = %+v", v)
	}
	if v.GoalsFor != 4 || v.GoalsAgainst != 3 {
		t.Errorf("goals = %+v", v)
	}
}

func TestHeadToHeadRoundTrip(t *testing.T) {
	db := openMemDB(t)

	records := []model.HeadToHead{
		{SeasonID: 5, Team1ID: 1, Team2ID: 2, Team1Wins: 3, Team2Wins: 2, Ties: 1,
			Team1Goals: 15, Team2Goals: 12},
	}
	if err := db.UpsertHeadToHead(records); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	// Replacing the same pairing keeps one row.
	records[0].Team1Wins = 4
	if err := db.UpsertHeadToHead(records); err != nil {
		t.Fatalf("reupsert: %v", err)
	}

	got, err := db.ListHeadToHead(5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
	if got[0].Team1Wins != 4 || got[0].Ties != 1 || got[0].Team1Goals != 15 {
		t.Errorf("record = %+v", got[0])
	}
}

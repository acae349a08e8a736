package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hockeystats/pwhl-metrics/internal/hockeytech"
	"github.com/hockeystats/pwhl-metrics/internal/model"
	"github.com/hockeystats/pwhl-metrics/internal/pbp"
	"github.com/hockeystats/pwhl-metrics/internal/storage"
)

func openMemDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReportSummary(t *testing.T) {
	r := NewReport()
	r.Store(10)
	if got := r.Summary(); got != "10 stored" {
		t.Errorf("Summary() = %q", got)
	}
	r.Skip("missing team id")
	r.Skip("missing team id")
	r.Skip("header row")
	want := "10 stored, 3 skipped (header row: 1, missing team id: 2)"
	if got := r.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestReportMerge(t *testing.T) {
	a := NewReport()
	a.Store(3)
	a.Skip("x")
	b := NewReport()
	b.Store(2)
	b.Skip("x")
	b.Skip("y")
	a.Merge(b)
	if a.Stored != 5 || a.Skipped != 3 {
		t.Errorf("merged = %d stored %d skipped", a.Stored, a.Skipped)
	}
	if a.Reasons["x"] != 2 || a.Reasons["y"] != 1 {
		t.Errorf("reasons = %v", a.Reasons)
	}
}

func TestAtoiForgiving(t *testing.T) {
	cases := map[string]int{"": 0, "7": 7, " 7 ": 7, "x": 0}
	for in, want := range cases {
		if got := atoi(in); got != want {
			t.Errorf("atoi(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestNormalizeTimestamp(t *testing.T) {
	got := normalizeTimestamp("2025-01-01T19:00:00Z")
	if got != "2025-01-01 19:00:00" {
		t.Errorf("normalizeTimestamp = %q", got)
	}
	plain := "2025-01-01 19:00:00"
	if got := normalizeTimestamp(plain); got != plain {
		t.Errorf("normalizeTimestamp left %q as %q", plain, got)
	}
}

func TestParseIceTime(t *testing.T) {
	cases := map[string]int{"": 0, "20:30": 1230, "900": 900, "0:45": 45}
	for in, want := range cases {
		if got := parseIceTime(in); got != want {
			t.Errorf("parseIceTime(%q) = %d, want %d", in, got, want)
		}
	}
}

// feedServer serves canned SiteKit envelopes keyed by view name.
func feedServer(t *testing.T, payloads map[string]string) *hockeytech.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		view := r.URL.Query().Get("view")
		body, ok := payloads[view]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return hockeytech.NewClient(srv.URL, "k", "pwhl", 1000, nil)
}

func TestIngestSeasons(t *testing.T) {
	fc := feedServer(t, map[string]string{
		"seasons": `{"SiteKit":{"Seasons":[
			{"season_id":"5","season_name":"2024-25 Regular Season","playoff":"0"},
			{"season_id":"","season_name":"bogus"}
		]}}`,
	})
	db := openMemDB(t)

	report, err := Seasons(context.Background(), fc, db)
	if err != nil {
		t.Fatalf("Seasons: %v", err)
	}
	if report.Stored != 1 || report.Skipped != 1 {
		t.Errorf("report = %s", report.Summary())
	}

	name, err := db.GetSeasonName(5)
	if err != nil {
		t.Fatalf("GetSeasonName: %v", err)
	}
	if name != "2024-25 Regular Season" {
		t.Errorf("season name = %q", name)
	}
}

func TestFeedShotsBackfill(t *testing.T) {
	// The playbyplay view keys its payload lower case on some installs.
	fc := feedServer(t, map[string]string{
		"playbyplay": `{"SiteKit":{"plays":[
			{"event_id":"900","event_type":"shot","player_id":"101","goalie_id":"301",
			 "team_id":"1","opponent_id":"2","is_home":"1","period":"2",
			 "time_formatted":"4:30","x_location":"180","y_location":"150",
			 "shot_type":"1","shot_quality":"1"},
			{"event_id":"901","event_type":"goal","player_id":"102",
			 "team_id":"2","opponent_id":"1","period":"3","time_formatted":"10:00",
			 "shot_type":"2","shot_quality":"5","game_goal_id":"55"},
			{"event_id":"902","event_type":"faceoff","player_id":"103","team_id":"1"},
			{"event_id":"","event_type":"shot","player_id":"104","team_id":"1"}
		]}}`,
	})
	db := openMemDB(t)

	if err := db.InsertGames([]model.Game{
		{GameID: 10, SeasonID: 8, GameStatus: "Final"},
		{GameID: 11, SeasonID: 8, GameStatus: "Scheduled"},
	}); err != nil {
		t.Fatalf("insert games: %v", err)
	}

	report, err := FeedShots(context.Background(), fc, db, 8)
	if err != nil {
		t.Fatalf("FeedShots: %v", err)
	}
	if report.Stored != 2 || report.Skipped != 1 {
		t.Errorf("report = %s", report.Summary())
	}

	_, rows, err := db.QueryRaw(
		"SELECT event_id, seconds, y_location, is_goal FROM shots ORDER BY event_id")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	if rows[0][0] != "900" || rows[0][1] != "270" || rows[0][2] != "150" || rows[0][3] != "0" {
		t.Errorf("shot row = %v", rows[0])
	}
	if rows[1][0] != "901" || rows[1][3] != "1" {
		t.Errorf("goal row = %v", rows[1])
	}

	// The game has shots now, so a second pass touches nothing.
	report, err = FeedShots(context.Background(), fc, db, 8)
	if err != nil {
		t.Fatalf("second FeedShots: %v", err)
	}
	if report.Stored != 0 || report.Skipped != 0 {
		t.Errorf("second report = %s", report.Summary())
	}
}

func TestIngestTeamStatsSkipsHeaderRows(t *testing.T) {
	fc := feedServer(t, map[string]string{
		"statviewtype": `{"SiteKit":{"Statviewtype":[
			{"team_id":"","games_played":""},
			{"team_id":"1","games_played":"24","wins":"15","points":"47"}
		]}}`,
	})
	db := openMemDB(t)

	report, err := TeamStats(context.Background(), fc, db, 5)
	if err != nil {
		t.Fatalf("TeamStats: %v", err)
	}
	if report.Stored != 1 {
		t.Errorf("stored = %d, want 1", report.Stored)
	}
	if report.Reasons["header row"] != 1 {
		t.Errorf("reasons = %v", report.Reasons)
	}

	_, rows, err := db.QueryRaw("SELECT points FROM team_stats WHERE team_id = 1 AND season_id = 5")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "47" {
		t.Errorf("rows = %v", rows)
	}
}

func TestIngestSeasonRunsAllSteps(t *testing.T) {
	fc := feedServer(t, map[string]string{
		"teamsbyseason": `{"SiteKit":{"Teamsbyseason":[{"id":"1","name":"Montreal Victoire","code":"MTL"}]}}`,
		"roster":        `{"SiteKit":{"Roster":[{"player_id":"101","first_name":"Marie","last_name":"Tremblay","position":"D"},"coach entry"]}}`,
		"schedule":      `{"SiteKit":{"Schedule":[{"game_id":"42","season_id":"5","home_team":"1","visiting_team":"2","game_status":"Final"}]}}`,
		"statviewtype":  `{"SiteKit":{"Statviewtype":[]}}`,
	})
	db := openMemDB(t)

	report, err := Season(context.Background(), fc, db, 5)
	if err != nil {
		t.Fatalf("Season: %v", err)
	}
	// 1 team + 1 player + 1 game; empty stat payloads.
	if report.Stored != 3 {
		t.Errorf("stored = %d, want 3: %s", report.Stored, report.Summary())
	}

	_, rows, err := db.QueryRaw("SELECT full_name FROM players WHERE player_id = 101")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "Marie Tremblay" {
		t.Errorf("players = %v", rows)
	}
}

func TestRostersContinuesPastFailingTeam(t *testing.T) {
	// Team 1's roster call fails; team 2's roster must still load.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("team_id") == "1" {
			http.Error(w, "upstream down", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"SiteKit":{"Roster":[{"player_id":"201","first_name":"Sarah","last_name":"Nurse","position":"F"}]}}`)
	}))
	defer srv.Close()
	fc := hockeytech.NewClient(srv.URL, "k", "pwhl", 1000, nil)
	db := openMemDB(t)

	report, err := Rosters(context.Background(), fc, db, 5, []int{1, 2})
	if err != nil {
		t.Fatalf("Rosters: %v", err)
	}
	if report.Stored != 1 {
		t.Errorf("stored = %d, want 1", report.Stored)
	}
	if report.Reasons["roster unavailable"] != 1 {
		t.Errorf("report = %s, want a roster unavailable skip", report.Summary())
	}

	_, rows, err := db.QueryRaw("SELECT full_name FROM players WHERE player_id = 201")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "Sarah Nurse" {
		t.Errorf("players = %v", rows)
	}
}

func TestPlayByPlaySeasonFilter(t *testing.T) {
	files := map[string]string{
		pbp.ShotsFile: "id,game_id,season_id,player_id,team_id,opponent_team_id,game_goal_id\n" +
			"1,10,5,101,1,2,\n" +
			"2,11,4,102,2,1,99\n",
		pbp.GoalsFile:        "id,game_id,season_id,team_id,goal_player_id,opponent_team_id\n9,10,5,1,101,2\n",
		pbp.PenaltiesFile:    "id,game_id,season_id,player_id,team_id,minutes\n3,10,5,101,1,2.0\n",
		pbp.FaceoffsFile:     "id,game_id,season_id,home_player_id,visitor_player_id,win_team_id\n4,10,5,101,201,1\n",
		pbp.HitsFile:         "id,game_id,season_id,player_id,team_id\n5,10,5,101,1\n",
		pbp.BlockedShotsFile: "id,game_id,season_id,blocker_team_id,team_id\n6,10,5,2,1\n",
		pbp.PlayersFile:      "id,first_name,last_name,position\n101,Marie,Tremblay,D\n",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[strings.TrimPrefix(r.URL.Path, "/")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, body)
	}))
	defer srv.Close()

	db := openMemDB(t)
	res, err := PlayByPlay(context.Background(), pbp.NewClient(srv.URL, nil), db, 5)
	if err != nil {
		t.Fatalf("PlayByPlay: %v", err)
	}
	if res.Shots.Stored != 1 {
		t.Errorf("shots stored = %d, want 1 (season filter)", res.Shots.Stored)
	}
	if res.Goals.Stored != 1 || res.Penalties.Stored != 1 || res.Faceoffs.Stored != 1 {
		t.Errorf("goals/penalties/faceoffs = %d/%d/%d",
			res.Goals.Stored, res.Penalties.Stored, res.Faceoffs.Stored)
	}
	if res.Hits.Stored != 1 || res.Blocks.Stored != 1 || res.Players.Stored != 1 {
		t.Errorf("hits/blocks/players = %d/%d/%d",
			res.Hits.Stored, res.Blocks.Stored, res.Players.Stored)
	}

	_, rows, err := db.QueryRaw("SELECT event_id FROM shots")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "1" {
		t.Errorf("shots = %v", rows)
	}
}

func TestPlayByPlayContinuesPastUnavailableFile(t *testing.T) {
	// Only goals.csv exists; every other file 404s. The pass must still
	// store the goals and report the missing files as skips.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimPrefix(r.URL.Path, "/") != pbp.GoalsFile {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "id,game_id,season_id,team_id,goal_player_id,opponent_team_id\n9,10,5,1,101,2\n")
	}))
	defer srv.Close()

	db := openMemDB(t)
	res, err := PlayByPlay(context.Background(), pbp.NewClient(srv.URL, nil), db, 0)
	if err != nil {
		t.Fatalf("PlayByPlay: %v", err)
	}
	if res.Goals.Stored != 1 {
		t.Errorf("goals stored = %d, want 1", res.Goals.Stored)
	}
	if res.Shots.Reasons["source unavailable"] != 1 {
		t.Errorf("shots report = %s, want a source unavailable skip", res.Shots.Summary())
	}
	if res.Players.Reasons["source unavailable"] != 1 {
		t.Errorf("players report = %s, want a source unavailable skip", res.Players.Summary())
	}
}

func TestPlayByPlaySkipsMalformedRows(t *testing.T) {
	files := map[string]string{
		pbp.ShotsFile: "id,game_id,season_id,player_id,team_id,opponent_team_id,game_goal_id\n" +
			"1,10,5,101,1,2,\n" +
			"2,bro\"ken,5,102,1,2,\n" +
			"3,11,5,103,1,2,\n",
		pbp.GoalsFile:        "id,game_id,season_id,team_id,goal_player_id,opponent_team_id\n",
		pbp.PenaltiesFile:    "id\n",
		pbp.FaceoffsFile:     "id\n",
		pbp.HitsFile:         "id\n",
		pbp.BlockedShotsFile: "id\n",
		pbp.PlayersFile:      "id\n",
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, files[strings.TrimPrefix(r.URL.Path, "/")])
	}))
	defer srv.Close()

	db := openMemDB(t)
	res, err := PlayByPlay(context.Background(), pbp.NewClient(srv.URL, nil), db, 0)
	if err != nil {
		t.Fatalf("PlayByPlay: %v", err)
	}
	if res.Shots.Stored != 2 {
		t.Errorf("shots stored = %d, want 2", res.Shots.Stored)
	}
	if res.Shots.Reasons["malformed row"] != 1 {
		t.Errorf("shots report = %s, want a malformed row skip", res.Shots.Summary())
	}
}

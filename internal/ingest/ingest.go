// Package ingest maps feed and CSV records into the store. Each pass
// converts wire records to typed model values, skips the unusable ones, and
// returns a Report of what happened.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hockeystats/pwhl-metrics/internal/hockeytech"
	"github.com/hockeystats/pwhl-metrics/internal/model"
	"github.com/hockeystats/pwhl-metrics/internal/pbp"
	"github.com/hockeystats/pwhl-metrics/internal/storage"
)

// Seasons fetches and stores the league's season list.
func Seasons(ctx context.Context, fc *hockeytech.Client, db *storage.DB) (*Report, error) {
	feed, err := fc.Seasons(ctx)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	seasons := make([]model.Season, 0, len(feed))
	for _, f := range feed {
		s := toSeason(f)
		if s.SeasonID == 0 {
			report.Skip("missing season id")
			continue
		}
		seasons = append(seasons, s)
	}
	if err := db.InsertSeasons(seasons); err != nil {
		return report, fmt.Errorf("store seasons: %w", err)
	}
	report.Store(len(seasons))
	return report, nil
}

// Teams fetches and stores the teams active in a season.
func Teams(ctx context.Context, fc *hockeytech.Client, db *storage.DB, seasonID int) (*Report, error) {
	feed, err := fc.TeamsBySeason(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	teams := make([]model.Team, 0, len(feed))
	for _, f := range feed {
		t := toTeam(f)
		if t.TeamID == 0 {
			report.Skip("missing team id")
			continue
		}
		teams = append(teams, t)
	}
	if err := db.InsertTeams(teams); err != nil {
		return report, fmt.Errorf("store teams: %w", err)
	}
	report.Store(len(teams))
	return report, nil
}

// Rosters fetches and stores each team's roster for a season: player records
// plus the player-team-season assignment rows. A team whose roster cannot be
// fetched is skipped so the remaining teams still load.
func Rosters(ctx context.Context, fc *hockeytech.Client, db *storage.DB, seasonID int, teamIDs []int) (*Report, error) {
	report := NewReport()
	for _, teamID := range teamIDs {
		feed, err := fc.Roster(ctx, teamID, seasonID)
		if err != nil {
			slog.Warn("skipping roster", "team_id", teamID, "season_id", seasonID, "err", err)
			report.Skip("roster unavailable")
			continue
		}

		players := make([]model.Player, 0, len(feed))
		assignments := make([]model.RosterAssignment, 0, len(feed))
		for _, f := range feed {
			p := toPlayer(f)
			if p.PlayerID == 0 {
				report.Skip("missing player id")
				continue
			}
			players = append(players, p)
			assignments = append(assignments, toRosterAssignment(f, teamID, seasonID))
		}
		if err := db.InsertPlayers(players); err != nil {
			return report, fmt.Errorf("store players: %w", err)
		}
		if err := db.InsertRosterAssignments(assignments); err != nil {
			return report, fmt.Errorf("store roster assignments: %w", err)
		}
		report.Store(len(players))
	}
	return report, nil
}

// Games fetches and stores a season's schedule.
func Games(ctx context.Context, fc *hockeytech.Client, db *storage.DB, seasonID int) (*Report, error) {
	feed, err := fc.Schedule(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	games := make([]model.Game, 0, len(feed))
	for _, f := range feed {
		g := toGame(f)
		if g.GameID == 0 {
			report.Skip("missing game id")
			continue
		}
		if g.SeasonID == 0 {
			g.SeasonID = seasonID
		}
		games = append(games, g)
	}
	if err := db.InsertGames(games); err != nil {
		return report, fmt.Errorf("store games: %w", err)
	}
	report.Store(len(games))
	return report, nil
}

// SkaterStats fetches and stores league-wide skater season totals. Derived
// columns reset on store; re-run the derive passes afterwards.
func SkaterStats(ctx context.Context, fc *hockeytech.Client, db *storage.DB, seasonID int) (*Report, error) {
	feed, err := fc.SkaterStats(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	stats := make([]model.SkaterStats, 0, len(feed))
	for _, f := range feed {
		s := toSkaterStats(f, seasonID)
		if s.PlayerID == 0 {
			report.Skip("missing player id")
			continue
		}
		if s.TeamID == 0 {
			report.Skip("missing team id")
			continue
		}
		stats = append(stats, s)
	}
	if err := db.InsertSkaterStats(stats); err != nil {
		return report, fmt.Errorf("store skater stats: %w", err)
	}
	report.Store(len(stats))
	return report, nil
}

// GoalieStats fetches and stores league-wide goalie season totals.
func GoalieStats(ctx context.Context, fc *hockeytech.Client, db *storage.DB, seasonID int) (*Report, error) {
	feed, err := fc.GoalieStats(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	stats := make([]model.GoalieStats, 0, len(feed))
	for _, f := range feed {
		g := toGoalieStats(f, seasonID)
		if g.PlayerID == 0 {
			report.Skip("missing player id")
			continue
		}
		if g.TeamID == 0 {
			report.Skip("missing team id")
			continue
		}
		stats = append(stats, g)
	}
	if err := db.InsertGoalieStats(stats); err != nil {
		return report, fmt.Errorf("store goalie stats: %w", err)
	}
	report.Store(len(stats))
	return report, nil
}

// TeamStats fetches and stores team standings. Standings responses include
// conference header rows without a team id; those are skipped silently.
func TeamStats(ctx context.Context, fc *hockeytech.Client, db *storage.DB, seasonID int) (*Report, error) {
	feed, err := fc.Standings(ctx, seasonID)
	if err != nil {
		return nil, err
	}

	report := NewReport()
	stats := make([]model.TeamStats, 0, len(feed))
	for _, f := range feed {
		if f.TeamID == "" {
			report.Skip("header row")
			continue
		}
		t := toTeamStats(f, seasonID)
		if t.TeamID == 0 {
			report.Skip("missing team id")
			continue
		}
		stats = append(stats, t)
	}
	if err := db.InsertTeamStats(stats); err != nil {
		return report, fmt.Errorf("store team stats: %w", err)
	}
	report.Store(len(stats))
	return report, nil
}

// Season runs the full feed scrape for one season: teams, rosters, games and
// the three stat tables.
func Season(ctx context.Context, fc *hockeytech.Client, db *storage.DB, seasonID int) (*Report, error) {
	report := NewReport()

	teams, err := fc.TeamsBySeason(ctx, seasonID)
	if err != nil {
		return report, fmt.Errorf("teams season %d: %w", seasonID, err)
	}
	teamIDs := make([]int, 0, len(teams))
	modelTeams := make([]model.Team, 0, len(teams))
	for _, f := range teams {
		t := toTeam(f)
		if t.TeamID == 0 {
			report.Skip("missing team id")
			continue
		}
		teamIDs = append(teamIDs, t.TeamID)
		modelTeams = append(modelTeams, t)
	}
	if err := db.InsertTeams(modelTeams); err != nil {
		return report, fmt.Errorf("store teams: %w", err)
	}
	report.Store(len(modelTeams))

	steps := []func() (*Report, error){
		func() (*Report, error) { return Rosters(ctx, fc, db, seasonID, teamIDs) },
		func() (*Report, error) { return Games(ctx, fc, db, seasonID) },
		func() (*Report, error) { return SkaterStats(ctx, fc, db, seasonID) },
		func() (*Report, error) { return GoalieStats(ctx, fc, db, seasonID) },
		func() (*Report, error) { return TeamStats(ctx, fc, db, seasonID) },
	}
	for _, step := range steps {
		r, err := step()
		if r != nil {
			report.Merge(r)
		}
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

// PlayByPlayResult holds one Report per play-by-play file.
type PlayByPlayResult struct {
	Shots     *Report
	Goals     *Report
	Penalties *Report
	Faceoffs  *Report
	Hits      *Report
	Blocks    *Report
	Players   *Report
}

// PlayByPlay downloads the CSV mirror's play-by-play exports and the player
// reference file and stores them. A file that cannot be fetched is recorded
// as skipped in its report and the rest still load. seasonID filters events
// to one season; 0 keeps everything.
func PlayByPlay(ctx context.Context, c *pbp.Client, db *storage.DB, seasonID int) (*PlayByPlayResult, error) {
	res := &PlayByPlayResult{}
	var err error

	if res.Shots, err = ingestShots(ctx, c, db, seasonID); err != nil {
		return res, err
	}
	if res.Goals, err = ingestGoals(ctx, c, db, seasonID); err != nil {
		return res, err
	}
	if res.Penalties, err = ingestPenalties(ctx, c, db, seasonID); err != nil {
		return res, err
	}
	if res.Faceoffs, err = ingestFaceoffs(ctx, c, db, seasonID); err != nil {
		return res, err
	}
	if res.Hits, err = ingestHits(ctx, c, db, seasonID); err != nil {
		return res, err
	}
	if res.Blocks, err = ingestBlockedShots(ctx, c, db, seasonID); err != nil {
		return res, err
	}
	if res.Players, err = ingestPlayers(ctx, c, db); err != nil {
		return res, err
	}
	return res, nil
}

// FeedShots fills shot rows for completed games the CSV exports do not
// cover, one playbyplay call per game. Games that already have shots are
// not refetched, so the pass is cheap to re-run.
func FeedShots(ctx context.Context, fc *hockeytech.Client, db *storage.DB, seasonID int) (*Report, error) {
	gameIDs, err := db.FinalGamesWithoutShots(seasonID)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}

	report := NewReport()
	for _, gameID := range gameIDs {
		plays, err := fc.PlayByPlay(ctx, gameID, seasonID)
		if err != nil {
			report.Skip("feed error")
			continue
		}
		shots := make([]model.Shot, 0, len(plays))
		for _, p := range plays {
			if !isShotEvent(p.EventType) {
				continue
			}
			s := toFeedShot(p, gameID, seasonID)
			if s.EventID == "" || s.PlayerID == 0 || s.TeamID == 0 {
				report.Skip("missing event fields")
				continue
			}
			shots = append(shots, s)
		}
		if err := db.InsertShots(shots); err != nil {
			return report, fmt.Errorf("store shots for game %d: %w", gameID, err)
		}
		report.Store(len(shots))
	}
	return report, nil
}

func isShotEvent(eventType string) bool {
	t := strings.ToLower(eventType)
	return strings.Contains(t, "shot") || strings.Contains(t, "goal")
}

// fetchFile downloads one CSV export. An unavailable file is recorded as a
// skip so the remaining files still load; malformed rows dropped by the
// parser are tallied too.
func fetchFile(ctx context.Context, c *pbp.Client, file string) ([]pbp.Row, *Report, bool) {
	report := NewReport()
	rows, malformed, err := c.Fetch(ctx, file)
	if err != nil {
		slog.Warn("skipping file", "file", file, "err", err)
		report.Skip("source unavailable")
		return nil, report, false
	}
	report.SkipN("malformed row", malformed)
	return rows, report, true
}

func ingestShots(ctx context.Context, c *pbp.Client, db *storage.DB, seasonID int) (*Report, error) {
	rows, report, ok := fetchFile(ctx, c, pbp.ShotsFile)
	if !ok {
		return report, nil
	}
	shots := make([]model.Shot, 0, len(rows))
	for _, row := range rows {
		s, err := pbp.ParseShot(row)
		if err != nil {
			report.Skip(err.Error())
			continue
		}
		if seasonID != 0 && s.SeasonID != seasonID {
			continue
		}
		shots = append(shots, s)
	}
	if err := db.InsertShots(shots); err != nil {
		return report, fmt.Errorf("store shots: %w", err)
	}
	report.Store(len(shots))
	return report, nil
}

func ingestGoals(ctx context.Context, c *pbp.Client, db *storage.DB, seasonID int) (*Report, error) {
	rows, report, ok := fetchFile(ctx, c, pbp.GoalsFile)
	if !ok {
		return report, nil
	}
	goals := make([]model.Goal, 0, len(rows))
	for _, row := range rows {
		g, err := pbp.ParseGoal(row)
		if err != nil {
			report.Skip(err.Error())
			continue
		}
		if seasonID != 0 && g.SeasonID != seasonID {
			continue
		}
		goals = append(goals, g)
	}
	if err := db.InsertGoals(goals); err != nil {
		return report, fmt.Errorf("store goals: %w", err)
	}
	report.Store(len(goals))
	return report, nil
}

func ingestPenalties(ctx context.Context, c *pbp.Client, db *storage.DB, seasonID int) (*Report, error) {
	rows, report, ok := fetchFile(ctx, c, pbp.PenaltiesFile)
	if !ok {
		return report, nil
	}
	penalties := make([]model.Penalty, 0, len(rows))
	for _, row := range rows {
		p, err := pbp.ParsePenalty(row)
		if err != nil {
			report.Skip(err.Error())
			continue
		}
		if seasonID != 0 && p.SeasonID != seasonID {
			continue
		}
		penalties = append(penalties, p)
	}
	if err := db.InsertPenalties(penalties); err != nil {
		return report, fmt.Errorf("store penalties: %w", err)
	}
	report.Store(len(penalties))
	return report, nil
}

func ingestFaceoffs(ctx context.Context, c *pbp.Client, db *storage.DB, seasonID int) (*Report, error) {
	rows, report, ok := fetchFile(ctx, c, pbp.FaceoffsFile)
	if !ok {
		return report, nil
	}
	faceoffs := make([]model.Faceoff, 0, len(rows))
	for _, row := range rows {
		f, err := pbp.ParseFaceoff(row)
		if err != nil {
			report.Skip(err.Error())
			continue
		}
		if seasonID != 0 && f.SeasonID != seasonID {
			continue
		}
		faceoffs = append(faceoffs, f)
	}
	if err := db.InsertFaceoffs(faceoffs); err != nil {
		return report, fmt.Errorf("store faceoffs: %w", err)
	}
	report.Store(len(faceoffs))
	return report, nil
}

func ingestHits(ctx context.Context, c *pbp.Client, db *storage.DB, seasonID int) (*Report, error) {
	rows, report, ok := fetchFile(ctx, c, pbp.HitsFile)
	if !ok {
		return report, nil
	}
	hits := make([]model.Hit, 0, len(rows))
	for _, row := range rows {
		h, err := pbp.ParseHit(row)
		if err != nil {
			report.Skip(err.Error())
			continue
		}
		if seasonID != 0 && h.SeasonID != seasonID {
			continue
		}
		hits = append(hits, h)
	}
	if err := db.InsertHits(hits); err != nil {
		return report, fmt.Errorf("store hits: %w", err)
	}
	report.Store(len(hits))
	return report, nil
}

func ingestBlockedShots(ctx context.Context, c *pbp.Client, db *storage.DB, seasonID int) (*Report, error) {
	rows, report, ok := fetchFile(ctx, c, pbp.BlockedShotsFile)
	if !ok {
		return report, nil
	}
	blocks := make([]model.BlockedShot, 0, len(rows))
	for _, row := range rows {
		b, err := pbp.ParseBlockedShot(row)
		if err != nil {
			report.Skip(err.Error())
			continue
		}
		if seasonID != 0 && b.SeasonID != seasonID {
			continue
		}
		blocks = append(blocks, b)
	}
	if err := db.InsertBlockedShots(blocks); err != nil {
		return report, fmt.Errorf("store blocked shots: %w", err)
	}
	report.Store(len(blocks))
	return report, nil
}

func ingestPlayers(ctx context.Context, c *pbp.Client, db *storage.DB) (*Report, error) {
	rows, report, ok := fetchFile(ctx, c, pbp.PlayersFile)
	if !ok {
		return report, nil
	}
	players := make([]model.Player, 0, len(rows))
	for _, row := range rows {
		p, err := pbp.ParsePlayer(row)
		if err != nil {
			report.Skip(err.Error())
			continue
		}
		players = append(players, p)
	}
	if err := db.InsertPlayers(players); err != nil {
		return report, fmt.Errorf("store players: %w", err)
	}
	report.Store(len(players))
	return report, nil
}

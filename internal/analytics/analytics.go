// Package analytics runs the derived-stat passes over the store: shot-level
// xG scoring and aggregation, goalie GSAx, rate stats, possession metrics,
// and the schedule-based splits. Every pass is a pure function of stored
// base facts and can be re-run at any time.
package analytics

import (
	"fmt"
	"time"

	"github.com/hockeystats/pwhl-metrics/internal/storage"
	"github.com/hockeystats/pwhl-metrics/internal/xg"
)

// ScoreShots computes xG for every stored shot and writes it back.
// Returns the number of shots scored.
func ScoreShots(db *storage.DB, params xg.Params) (int, error) {
	shots, err := db.ListShotsForScoring()
	if err != nil {
		return 0, fmt.Errorf("list shots: %w", err)
	}

	updates := make([]storage.ShotXG, len(shots))
	for i := range shots {
		updates[i] = storage.ShotXG{
			EventID: shots[i].EventID,
			XG:      params.ScoreShot(&shots[i]),
		}
	}
	if err := db.UpdateShotXG(updates); err != nil {
		return 0, fmt.Errorf("write shot xg: %w", err)
	}
	return len(updates), nil
}

// XGAggregateResult reports one skater aggregation pass.
type XGAggregateResult struct {
	Combinations int // distinct (player, team, season) keys with shots
	Updated      int // stat rows that received values
}

// AggregateSkaterXG clears and recomputes skater xG totals from scored shots.
func AggregateSkaterXG(db *storage.DB) (XGAggregateResult, error) {
	var res XGAggregateResult

	if err := db.ClearSkaterXG(); err != nil {
		return res, fmt.Errorf("clear skater xg: %w", err)
	}
	aggs, err := db.AggregateShotXG()
	if err != nil {
		return res, fmt.Errorf("aggregate shots: %w", err)
	}
	res.Combinations = len(aggs)

	updates := make([]storage.SkaterXGUpdate, len(aggs))
	for i, a := range aggs {
		updates[i] = storage.SkaterXGUpdate{
			PlayerID:     a.PlayerID,
			TeamID:       a.TeamID,
			SeasonID:     a.SeasonID,
			XG:           a.XG,
			GoalsAboveXG: float64(a.Goals) - a.XG,
		}
	}
	res.Updated, err = db.UpdateSkaterXG(updates)
	if err != nil {
		return res, fmt.Errorf("write skater xg: %w", err)
	}
	return res, nil
}

// TrainEstimator builds a season-total xG estimator from the seasons that
// have shot-level data. Returns the estimator and the training season ids.
func TrainEstimator(db *storage.DB) (*xg.Estimator, []int, error) {
	shotSeasons, err := db.SeasonsWithShots()
	if err != nil {
		return nil, nil, fmt.Errorf("seasons with shots: %w", err)
	}
	rows, err := db.SkaterShootingRows(shotSeasons)
	if err != nil {
		return nil, nil, fmt.Errorf("training rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, shotSeasons, nil
	}

	est := xg.NewEstimator()

	type acc struct {
		sum float64
		n   int
	}
	byPosition := make(map[string]*acc)
	byBucket := make(map[xg.VolumeBucket]*acc)

	for _, r := range rows {
		conv := float64(r.Goals) / float64(r.Shots)
		if a, ok := byPosition[r.Position]; ok {
			a.sum += conv
			a.n++
		} else {
			byPosition[r.Position] = &acc{sum: conv, n: 1}
		}
		b := xg.BucketFor(r.Shots)
		if a, ok := byBucket[b]; ok {
			a.sum += conv
			a.n++
		} else {
			byBucket[b] = &acc{sum: conv, n: 1}
		}
	}
	for pos, a := range byPosition {
		est.PositionRates[pos] = a.sum / float64(a.n)
	}
	for b, a := range byBucket {
		est.VolumeRates[b] = a.sum / float64(a.n)
	}
	return est, shotSeasons, nil
}

// EstimateSeasonXG fills in skater xG for a season without shot data, using
// the trained estimator on season totals. Returns rows updated.
func EstimateSeasonXG(db *storage.DB, est *xg.Estimator, seasonID int) (int, error) {
	rows, err := db.SkaterShootingRows([]int{seasonID})
	if err != nil {
		return 0, fmt.Errorf("season rows: %w", err)
	}

	updates := make([]storage.SkaterXGUpdate, len(rows))
	for i, r := range rows {
		estXG := est.Estimate(r.Shots, r.Goals, r.Position)
		updates[i] = storage.SkaterXGUpdate{
			PlayerID:     r.PlayerID,
			TeamID:       r.TeamID,
			SeasonID:     r.SeasonID,
			XG:           estXG,
			GoalsAboveXG: float64(r.Goals) - estXG,
		}
	}
	n, err := db.UpdateSkaterXG(updates)
	if err != nil {
		return n, fmt.Errorf("write estimated xg: %w", err)
	}
	return n, nil
}

// ComputeGSAx derives GSAx from scored shots for one season.
// Returns goalie rows updated.
func ComputeGSAx(db *storage.DB, seasonID int) (int, error) {
	aggs, err := db.AggregateShotsAgainst(seasonID)
	if err != nil {
		return 0, fmt.Errorf("aggregate shots against: %w", err)
	}

	updates := make([]storage.GoalieGSAxUpdate, len(aggs))
	for i, a := range aggs {
		updates[i] = storage.GoalieGSAxUpdate{
			PlayerID: a.GoalieID,
			TeamID:   a.TeamID,
			SeasonID: a.SeasonID,
			GSAx:     a.XG - float64(a.Goals),
		}
	}
	n, err := db.UpdateGoalieGSAx(updates)
	if err != nil {
		return n, fmt.Errorf("write gsax: %w", err)
	}
	return n, nil
}

// MinGamesForLeagueAvg is the games-played floor for goalies contributing to
// the league-average save percentage.
const MinGamesForLeagueAvg = 5

// EstimateSeasonGSAx fills in GSAx for a season without shot data, from the
// league-average save percentage of the given training seasons. Returns rows
// updated and the average used.
func EstimateSeasonGSAx(db *storage.DB, seasonID int, trainSeasons []int) (int, float64, error) {
	avg, ok, err := db.LeagueAvgSavePct(trainSeasons, MinGamesForLeagueAvg)
	if err != nil {
		return 0, 0, fmt.Errorf("league save pct: %w", err)
	}
	if !ok {
		avg = xg.DefaultLeagueSavePct
	}

	rows, err := db.GoalieSeasonRows(seasonID)
	if err != nil {
		return 0, avg, fmt.Errorf("goalie rows: %w", err)
	}

	updates := make([]storage.GoalieGSAxUpdate, len(rows))
	for i, r := range rows {
		updates[i] = storage.GoalieGSAxUpdate{
			PlayerID: r.PlayerID,
			TeamID:   r.TeamID,
			SeasonID: r.SeasonID,
			GSAx:     xg.EstimateGSAx(r.ShotsAgainst, r.GoalsAgainst, avg),
		}
	}
	n, err := db.UpdateGoalieGSAx(updates)
	if err != nil {
		return n, avg, fmt.Errorf("write estimated gsax: %w", err)
	}
	return n, avg, nil
}

// Default ice time estimates, in minutes per game, for skaters whose ice
// time the feed did not report.
const (
	DefaultDefenseMinutes = 20
	DefaultForwardMinutes = 15
)

// AdvancedResult reports one advanced-stats pass over a season.
type AdvancedResult struct {
	IceTimeEstimated int
	FaceoffPlayers   int
	BlockPlayers     int
	ClutchPlayers    int
	TeamsUpdated     int
}

// ComputeAdvanced runs the per-60, faceoff, block, clutch, game score,
// possession and PDO passes for one season.
func ComputeAdvanced(db *storage.DB, seasonID int) (AdvancedResult, error) {
	var res AdvancedResult
	var err error

	res.IceTimeEstimated, err = db.EstimateIceTime(seasonID, DefaultDefenseMinutes, DefaultForwardMinutes)
	if err != nil {
		return res, fmt.Errorf("estimate ice time: %w", err)
	}

	// Faceoff and block counts feed game score, so they run first.
	faceoffs, err := db.FaceoffTotals(seasonID)
	if err != nil {
		return res, fmt.Errorf("faceoff totals: %w", err)
	}
	merged := mergeFaceoffs(faceoffs)
	if err := db.UpdateSkaterFaceoffs(seasonID, merged); err != nil {
		return res, fmt.Errorf("update faceoffs: %w", err)
	}
	res.FaceoffPlayers = len(merged)

	blocks, err := db.BlockTotals(seasonID)
	if err != nil {
		return res, fmt.Errorf("block totals: %w", err)
	}
	if err := db.UpdateSkaterBlocks(seasonID, blocks); err != nil {
		return res, fmt.Errorf("update blocks: %w", err)
	}
	res.BlockPlayers = len(blocks)

	clutch, err := db.ClutchGoalTotals(seasonID)
	if err != nil {
		return res, fmt.Errorf("clutch totals: %w", err)
	}
	if err := db.UpdateSkaterClutch(seasonID, clutch); err != nil {
		return res, fmt.Errorf("update clutch: %w", err)
	}
	res.ClutchPlayers = len(clutch)

	if err := db.UpdateRateStats(seasonID); err != nil {
		return res, fmt.Errorf("rate stats: %w", err)
	}
	if err := db.UpdateGameScore(seasonID); err != nil {
		return res, fmt.Errorf("game score: %w", err)
	}

	res.TeamsUpdated, err = computeTeamPossession(db, seasonID)
	if err != nil {
		return res, err
	}
	return res, nil
}

func mergeFaceoffs(totals []storage.FaceoffTotal) []storage.FaceoffTotal {
	type key struct{ player, team int }
	merged := make(map[key]*storage.FaceoffTotal)
	var order []key
	for _, f := range totals {
		k := key{f.PlayerID, f.TeamID}
		if m, ok := merged[k]; ok {
			m.Total += f.Total
			m.Wins += f.Wins
		} else {
			c := f
			merged[k] = &c
			order = append(order, k)
		}
	}
	out := make([]storage.FaceoffTotal, 0, len(order))
	for _, k := range order {
		out = append(out, *merged[k])
	}
	return out
}

// DefaultSavePct is the save percentage assumed for PDO when a team has no
// shots against on record.
const DefaultSavePct = 91.6

func computeTeamPossession(db *storage.DB, seasonID int) (int, error) {
	counts, err := db.TeamSeasonShotCounts(seasonID)
	if err != nil {
		return 0, fmt.Errorf("team shot counts: %w", err)
	}
	byTeam := make(map[int]storage.TeamShotCounts, len(counts))
	for _, c := range counts {
		pct := 50.0
		if c.ShotsFor+c.ShotsAgainst > 0 {
			pct = 100.0 * float64(c.ShotsFor) / float64(c.ShotsFor+c.ShotsAgainst)
		}
		if err := db.UpdateTeamCorsi(c.TeamID, seasonID, c.ShotsFor, c.ShotsAgainst, pct); err != nil {
			return 0, fmt.Errorf("update corsi for team %d: %w", c.TeamID, err)
		}
		byTeam[c.TeamID] = c
	}

	goals, err := db.TeamSeasonGoalTotals(seasonID)
	if err != nil {
		return 0, fmt.Errorf("team goal totals: %w", err)
	}
	updated := 0
	for _, g := range goals {
		c := byTeam[g.TeamID]
		if c.ShotsFor == 0 && c.ShotsAgainst == 0 {
			// No shot data at all; the schema default of 100 stands.
			continue
		}
		shootingPct := 0.0
		if c.ShotsFor > 0 {
			shootingPct = 100.0 * float64(g.GoalsFor) / float64(c.ShotsFor)
		}
		savePct := DefaultSavePct
		if c.ShotsAgainst > 0 {
			savePct = 100.0 * float64(c.ShotsAgainst-g.GoalsAgainst) / float64(c.ShotsAgainst)
		}
		if err := db.UpdateTeamPDO(g.TeamID, seasonID, shootingPct+savePct); err != nil {
			return updated, fmt.Errorf("update pdo for team %d: %w", g.TeamID, err)
		}
		updated++
	}
	return updated, nil
}

// ---- Schedule-based analytics ----

// ScheduleResult reports one schedule analytics pass.
type ScheduleResult struct {
	GamesTagged   int
	StreakPlayers int
}

// ComputeScheduleSplits tags games with weekday info, recomputes home/away
// records, and estimates point streak figures for one season.
func ComputeScheduleSplits(db *storage.DB, seasonID int) (ScheduleResult, error) {
	var res ScheduleResult

	dates, err := db.GameDates(seasonID)
	if err != nil {
		return res, fmt.Errorf("game dates: %w", err)
	}
	var updates []storage.GameDayUpdate
	for _, d := range dates {
		day, ok := parseWeekday(d.DatePlayed)
		if !ok {
			continue
		}
		updates = append(updates, storage.GameDayUpdate{
			GameID:    d.GameID,
			DayOfWeek: day.String(),
			IsWeekend: day == time.Saturday || day == time.Sunday,
		})
	}
	if err := db.UpdateGameDays(updates); err != nil {
		return res, fmt.Errorf("update game days: %w", err)
	}
	res.GamesTagged = len(updates)

	if err := db.UpdateHomeAwayRecords(seasonID); err != nil {
		return res, fmt.Errorf("home/away records: %w", err)
	}

	points, err := db.SkaterPointRows(seasonID)
	if err != nil {
		return res, fmt.Errorf("point rows: %w", err)
	}
	streaks := make([]storage.StreakUpdate, len(points))
	for i, p := range points {
		streaks[i] = estimateStreaks(p)
	}
	if err := db.UpdateSkaterStreaks(seasonID, streaks); err != nil {
		return res, fmt.Errorf("update streaks: %w", err)
	}
	res.StreakPlayers = len(streaks)
	return res, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseWeekday(s string) (time.Weekday, bool) {
	if s == "" {
		return 0, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Weekday(), true
		}
	}
	return 0, false
}

// estimateStreaks approximates streak figures from season totals. Without
// per-game logs these are coarse estimates: high points-per-game skaters get
// credited with proportionally more multi-point games.
func estimateStreaks(p storage.SkaterPointRow) storage.StreakUpdate {
	u := storage.StreakUpdate{PlayerID: p.PlayerID, TeamID: p.TeamID}
	if p.GamesPlayed == 0 || p.Points == 0 {
		return u
	}
	ppg := float64(p.Points) / float64(p.GamesPlayed)

	if ppg > 0.7 {
		u.MultiPointGames = int(float64(p.GamesPlayed) * ppg / 2.5)
	} else {
		u.MultiPointGames = int(float64(p.GamesPlayed) * 0.15)
	}

	u.MaxPointStreak = int(ppg * 3)
	if u.MaxPointStreak > p.GamesPlayed {
		u.MaxPointStreak = p.GamesPlayed
	}
	return u
}

// ComputeHeadToHead rebuilds head-to-head records across all seasons from
// completed games. Team order in each row is normalized lower id first so a
// pairing stores exactly one row per season. Returns matchups written.
func ComputeHeadToHead(db *storage.DB) (int, error) {
	games, err := db.FinalGames()
	if err != nil {
		return 0, fmt.Errorf("final games: %w", err)
	}

	records := buildHeadToHead(games)
	if err := db.UpsertHeadToHead(records); err != nil {
		return 0, fmt.Errorf("write head to head: %w", err)
	}
	return len(records), nil
}

// ComputeVenueStats rebuilds per-venue home performance across all seasons.
func ComputeVenueStats(db *storage.DB) (int, error) {
	return db.RebuildVenueStats()
}

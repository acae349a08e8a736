package analytics

import (
	"sort"

	"github.com/hockeystats/pwhl-metrics/internal/model"
	"github.com/hockeystats/pwhl-metrics/internal/storage"
)

// buildHeadToHead folds completed games into one record per (season, pairing),
// with the lower team id always in the team1 slot.
func buildHeadToHead(games []storage.FinalGame) []model.HeadToHead {
	type key struct{ season, t1, t2 int }
	records := make(map[key]*model.HeadToHead)

	for _, g := range games {
		t1, t2 := g.HomeTeamID, g.AwayTeamID
		g1, g2 := g.HomeGoals, g.AwayGoals
		if t1 > t2 {
			t1, t2 = t2, t1
			g1, g2 = g2, g1
		}

		k := key{g.SeasonID, t1, t2}
		r, ok := records[k]
		if !ok {
			r = &model.HeadToHead{SeasonID: g.SeasonID, Team1ID: t1, Team2ID: t2}
			records[k] = r
		}

		switch {
		case g1 > g2:
			r.Team1Wins++
		case g2 > g1:
			r.Team2Wins++
		default:
			r.Ties++
		}
		r.Team1Goals += g1
		r.Team2Goals += g2
	}

	out := make([]model.HeadToHead, 0, len(records))
	for _, r := range records {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeasonID != out[j].SeasonID {
			return out[i].SeasonID < out[j].SeasonID
		}
		if out[i].Team1ID != out[j].Team1ID {
			return out[i].Team1ID < out[j].Team1ID
		}
		return out[i].Team2ID < out[j].Team2ID
	})
	return out
}

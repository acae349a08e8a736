// Package report renders leaderboards and summaries as plain-text tables.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/hockeystats/pwhl-metrics/internal/model"
	"github.com/hockeystats/pwhl-metrics/internal/storage"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// PrintSeasonHeader prints a one-line header naming the season a table
// covers.
func PrintSeasonHeader(w io.Writer, seasonID int, seasonName string) {
	if seasonName == "" {
		seasonName = "season " + strconv.Itoa(seasonID)
	}
	fmt.Fprintf(w, "\n%s (season %d)\n\n", seasonName, seasonID)
}

// PrintXGLeaders prints the expected-goals leaderboard.
// Columns: PLAYER | TEAM | GP | G | A | PTS | SOG | xG | G-xG
func PrintXGLeaders(w io.Writer, leaders []storage.SkaterLeader) {
	table := newTable(w)
	table.Header("PLAYER", "TEAM", "GP", "G", "A", "PTS", "SOG", "xG", "G-xG")

	for _, l := range leaders {
		table.Append(
			l.Name,
			l.TeamName,
			strconv.Itoa(l.GamesPlayed),
			strconv.Itoa(l.Goals),
			strconv.Itoa(l.Assists),
			strconv.Itoa(l.Points),
			strconv.Itoa(l.Shots),
			fmt.Sprintf("%.2f", l.XG),
			fmt.Sprintf("%+.2f", l.GoalsAboveXG),
		)
	}
	table.Render()
}

// PrintFinishingLeaders prints skaters by goals above expected, the
// finishing-talent view of the same rows.
func PrintFinishingLeaders(w io.Writer, leaders []storage.SkaterLeader) {
	table := newTable(w)
	table.Header("PLAYER", "TEAM", "GP", "G", "SOG", "xG", "G-xG", "SH%")

	for _, l := range leaders {
		shPct := "—"
		if l.Shots > 0 {
			shPct = fmt.Sprintf("%.1f%%", 100*float64(l.Goals)/float64(l.Shots))
		}
		table.Append(
			l.Name,
			l.TeamName,
			strconv.Itoa(l.GamesPlayed),
			strconv.Itoa(l.Goals),
			strconv.Itoa(l.Shots),
			fmt.Sprintf("%.2f", l.XG),
			fmt.Sprintf("%+.2f", l.GoalsAboveXG),
			shPct,
		)
	}
	table.Render()
}

// PrintGameScoreLeaders prints skaters by composite game score.
func PrintGameScoreLeaders(w io.Writer, leaders []storage.SkaterLeader) {
	table := newTable(w)
	table.Header("PLAYER", "TEAM", "GP", "G", "A", "PTS", "GS", "GS/GP")

	for _, l := range leaders {
		perGame := "—"
		if l.GamesPlayed > 0 {
			perGame = fmt.Sprintf("%.2f", l.GameScore/float64(l.GamesPlayed))
		}
		table.Append(
			l.Name,
			l.TeamName,
			strconv.Itoa(l.GamesPlayed),
			strconv.Itoa(l.Goals),
			strconv.Itoa(l.Assists),
			strconv.Itoa(l.Points),
			fmt.Sprintf("%.2f", l.GameScore),
			perGame,
		)
	}
	table.Render()
}

// PrintPointsPer60Leaders prints skaters by scoring rate. Ice time is an
// estimate, so the rate is a ranking signal rather than a measurement.
func PrintPointsPer60Leaders(w io.Writer, leaders []storage.SkaterLeader) {
	table := newTable(w)
	table.Header("PLAYER", "TEAM", "GP", "G", "A", "PTS", "PTS/60")

	for _, l := range leaders {
		table.Append(
			l.Name,
			l.TeamName,
			strconv.Itoa(l.GamesPlayed),
			strconv.Itoa(l.Goals),
			strconv.Itoa(l.Assists),
			strconv.Itoa(l.Points),
			fmt.Sprintf("%.2f", l.PointsPer60),
		)
	}
	table.Render()
}

// PrintGSAxLeaders prints the goals-saved-above-expected leaderboard.
func PrintGSAxLeaders(w io.Writer, leaders []storage.GoalieLeader) {
	table := newTable(w)
	table.Header("GOALIE", "TEAM", "GP", "W", "SA", "GA", "SV%", "GSAx")

	for _, l := range leaders {
		svPct := "—"
		if l.ShotsAgainst > 0 {
			svPct = fmt.Sprintf("%.3f", l.SavePct)
		}
		table.Append(
			l.Name,
			l.TeamName,
			strconv.Itoa(l.GamesPlayed),
			strconv.Itoa(l.Wins),
			strconv.Itoa(l.ShotsAgainst),
			strconv.Itoa(l.GoalsAgainst),
			svPct,
			fmt.Sprintf("%+.2f", l.GSAx),
		)
	}
	table.Render()
}

// PrintTeamTable prints the standings plus possession table.
// Columns: TEAM | GP | W | L | OTL | PTS | GF | GA | CF% | PDO | HOME | AWAY
func PrintTeamTable(w io.Writer, rows []storage.TeamTableRow) {
	table := newTable(w)
	table.Header("TEAM", "GP", "W", "L", "OTL", "PTS", "GF", "GA", "CF%", "PDO", "HOME", "AWAY")

	for _, r := range rows {
		table.Append(
			r.Name,
			strconv.Itoa(r.GamesPlayed),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Losses),
			strconv.Itoa(r.OTLosses),
			strconv.Itoa(r.Points),
			strconv.Itoa(r.GoalsFor),
			strconv.Itoa(r.GoalsAgainst),
			fmt.Sprintf("%.1f", r.CorsiPct),
			fmt.Sprintf("%.1f", r.PDO),
			fmt.Sprintf("%d-%d", r.HomeWins, r.HomeLosses),
			fmt.Sprintf("%d-%d", r.AwayWins, r.AwayLosses),
		)
	}
	table.Render()
}

// PrintHeadToHead prints season head-to-head records. Team names come from
// the provided lookup; missing ids fall back to the raw id.
func PrintHeadToHead(w io.Writer, records []model.HeadToHead, teamNames map[int]string) {
	table := newTable(w)
	table.Header("MATCHUP", "RECORD", "TIES", "GOALS")

	name := func(id int) string {
		if n, ok := teamNames[id]; ok {
			return n
		}
		return "team " + strconv.Itoa(id)
	}

	for _, h := range records {
		table.Append(
			fmt.Sprintf("%s vs %s", name(h.Team1ID), name(h.Team2ID)),
			fmt.Sprintf("%d-%d", h.Team1Wins, h.Team2Wins),
			strconv.Itoa(h.Ties),
			fmt.Sprintf("%d-%d", h.Team1Goals, h.Team2Goals),
		)
	}
	table.Render()
}

// PrintVenueStats prints per-venue home records.
func PrintVenueStats(w io.Writer, rows []model.VenueStats, teamNames map[int]string) {
	table := newTable(w)
	table.Header("VENUE", "TEAM", "GP", "W", "L", "GF", "GA")

	for _, v := range rows {
		teamName, ok := teamNames[v.TeamID]
		if !ok {
			teamName = "team " + strconv.Itoa(v.TeamID)
		}
		table.Append(
			v.VenueName,
			teamName,
			strconv.Itoa(v.GamesPlayed),
			strconv.Itoa(v.Wins),
			strconv.Itoa(v.Losses),
			strconv.Itoa(v.GoalsFor),
			strconv.Itoa(v.GoalsAgainst),
		)
	}
	table.Render()
}

// PrintTableCounts prints row counts per table for the summary command.
func PrintTableCounts(w io.Writer, counts []storage.TableCount) {
	table := newTable(w)
	table.Header("TABLE", "ROWS")
	for _, c := range counts {
		table.Append(c.Table, strconv.Itoa(c.Count))
	}
	table.Render()
}

// PrintSeasonOverviews prints per-season row counts for the list command.
func PrintSeasonOverviews(w io.Writer, overviews []storage.SeasonOverview) {
	table := newTable(w)
	table.Header("ID", "SEASON", "GAMES", "SHOTS", "SKATERS", "GOALIES")
	for _, o := range overviews {
		table.Append(
			strconv.Itoa(o.SeasonID),
			o.SeasonName,
			strconv.Itoa(o.Games),
			strconv.Itoa(o.Shots),
			strconv.Itoa(o.SkaterRows),
			strconv.Itoa(o.GoalieRows),
		)
	}
	table.Render()
}

// PrintQueryResult prints an arbitrary query result from the sql command.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			if v == "" {
				v = "—"
			}
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "\n%d row(s)\n", len(rows))
}

package ingest

import (
	"strconv"
	"strings"

	"github.com/hockeystats/pwhl-metrics/internal/hockeytech"
	"github.com/hockeystats/pwhl-metrics/internal/model"
)

// The feed serializes every number as a string. Conversion is forgiving:
// empty or malformed values become zero so one bad field does not sink a
// whole record; only missing identifiers cause a skip.

func atoi(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

func atof(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// normalizeTimestamp rewrites ISO 8601 timestamps ("2025-01-01T19:00:00Z")
// into the feed's usual "2025-01-01 19:00:00" shape so date handling sees a
// single format family.
func normalizeTimestamp(s string) string {
	s = strings.TrimSuffix(s, "Z")
	return strings.Replace(s, "T", " ", 1)
}

func toSeason(f hockeytech.FeedSeason) model.Season {
	return model.Season{
		SeasonID:   atoi(f.SeasonID),
		SeasonName: f.SeasonName,
		Shortname:  f.Shortname,
		Career:     atoi(f.Career),
		Playoff:    atoi(f.Playoff),
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
	}
}

func toTeam(f hockeytech.FeedTeam) model.Team {
	return model.Team{
		TeamID:     atoi(f.ID),
		Name:       f.Name,
		Nickname:   f.Nickname,
		Code:       f.Code,
		City:       f.City,
		LogoURL:    f.LogoURL,
		DivisionID: atoi(f.DivisionID),
	}
}

func toPlayer(f hockeytech.FeedRosterPlayer) model.Player {
	return model.Player{
		PlayerID:    atoi(f.PlayerID),
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		FullName:    strings.TrimSpace(f.FirstName + " " + f.LastName),
		Position:    f.Position,
		Shoots:      f.Shoots,
		Height:      f.Height,
		Birthdate:   f.Birthdate,
		Hometown:    f.Hometown,
		Nationality: f.BirthCountry,
		ImageURL:    f.ImageURL,
		Active:      f.Active != "0",
	}
}

func toRosterAssignment(f hockeytech.FeedRosterPlayer, teamID, seasonID int) model.RosterAssignment {
	return model.RosterAssignment{
		PlayerID:     atoi(f.PlayerID),
		TeamID:       teamID,
		SeasonID:     seasonID,
		JerseyNumber: atoi(f.JerseyNumber),
		Rookie:       f.Rookie == "1",
		Status:       f.Status,
	}
}

func toGame(f hockeytech.FeedGame) model.Game {
	return model.Game{
		GameID:     atoi(f.GameID),
		SeasonID:   atoi(f.SeasonID),
		GameNumber: atoi(f.GameNumber),
		DatePlayed: normalizeTimestamp(f.DateTimePlayed),
		HomeTeamID: atoi(f.HomeTeam),
		AwayTeamID: atoi(f.VisitingTeam),
		HomeGoals:  atoi(f.HomeGoalCount),
		AwayGoals:  atoi(f.VisitingGoalCount),
		Periods:    atoi(f.Period),
		Overtime:   f.Overtime == "1",
		Shootout:   f.Shootout == "1",
		GameStatus: f.GameStatus,
		VenueName:  f.VenueName,
		Attendance: atoi(f.Attendance),
	}
}

func toSkaterStats(f hockeytech.FeedSkaterStat, seasonID int) model.SkaterStats {
	return model.SkaterStats{
		PlayerID:          atoi(f.PlayerID),
		TeamID:            atoi(f.TeamID),
		SeasonID:          seasonID,
		GamesPlayed:       atoi(f.GamesPlayed),
		Goals:             atoi(f.Goals),
		Assists:           atoi(f.Assists),
		Points:            atoi(f.Points),
		Shots:             atoi(f.Shots),
		PenaltyMinutes:    atoi(f.PenaltyMinutes),
		PlusMinus:         atoi(f.PlusMinus),
		FaceoffAttempts:   atoi(f.FaceoffAttempts),
		FaceoffWins:       atoi(f.FaceoffWins),
		IceTimeSeconds:    parseIceTime(f.IceTime),
		PowerPlayGoals:    atoi(f.PowerPlayGoals),
		PowerPlayAssists:  atoi(f.PowerPlayAssists),
		ShortHandedGoals:  atoi(f.ShortHandedGoals),
		ShortHandedPoints: atoi(f.ShortHandedPoints),
		GameWinningGoals:  atoi(f.GameWinningGoals),
	}
}

// toFeedShot maps a shot or goal play from the feed's playbyplay view. The
// play's own event_type decides is_goal; goal plays also carry game_goal_id.
func toFeedShot(p hockeytech.FeedPlay, gameID, seasonID int) model.Shot {
	isGoal := strings.Contains(strings.ToLower(p.EventType), "goal")

	var x, y *int
	if strings.TrimSpace(p.XLocation) != "" {
		v := atoi(p.XLocation)
		x = &v
	}
	if strings.TrimSpace(p.YLocation) != "" {
		v := atoi(p.YLocation)
		y = &v
	}

	shotType := model.ShotTypeDefault
	if strings.TrimSpace(p.ShotType) != "" {
		shotType = model.ShotType(atoi(p.ShotType))
	}
	quality := model.NonQualityOnNet
	if strings.TrimSpace(p.ShotQuality) != "" {
		quality = model.ShotQuality(atoi(p.ShotQuality))
	}

	return model.Shot{
		EventID:        p.EventID,
		GameID:         gameID,
		SeasonID:       seasonID,
		PlayerID:       atoi(p.PlayerID),
		GoalieID:       atoi(p.GoalieID),
		TeamID:         atoi(p.TeamID),
		OpponentTeamID: atoi(p.OpponentID),
		IsHome:         p.IsHome == "1",
		Period:         atoi(p.Period),
		Seconds:        parseIceTime(p.TimeFormatted),
		X:              x,
		Y:              y,
		ShotType:       shotType,
		Quality:        quality,
		IsGoal:         isGoal,
	}
}

// parseIceTime converts the feed's "mm:ss" (or plain seconds) ice time into
// seconds. The value is frequently absent.
func parseIceTime(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if m, sec, ok := strings.Cut(s, ":"); ok {
		return atoi(m)*60 + atoi(sec)
	}
	return atoi(s)
}

func toGoalieStats(f hockeytech.FeedGoalieStat, seasonID int) model.GoalieStats {
	return model.GoalieStats{
		PlayerID:      atoi(f.PlayerID),
		TeamID:        atoi(f.TeamID),
		SeasonID:      seasonID,
		GamesPlayed:   atoi(f.GamesPlayed),
		SecondsPlayed: atoi(f.SecondsPlayed),
		Wins:          atoi(f.Wins),
		Losses:        atoi(f.Losses),
		OTLosses:      atoi(f.OTLosses),
		Shutouts:      atoi(f.Shutouts),
		Saves:         atoi(f.Saves),
		ShotsAgainst:  atoi(f.Shots),
		GoalsAgainst:  atoi(f.GoalsAgainst),
		SavePct:       atof(f.SavePercentage),
		GAA:           atof(f.GoalsAgainstAverage),
	}
}

func toTeamStats(f hockeytech.FeedStandingsRow, seasonID int) model.TeamStats {
	return model.TeamStats{
		TeamID:                atoi(f.TeamID),
		SeasonID:              seasonID,
		GamesPlayed:           atoi(f.GamesPlayed),
		Wins:                  atoi(f.Wins),
		Losses:                atoi(f.Losses),
		OTLosses:              atoi(f.OTLosses),
		Points:                atoi(f.Points),
		GoalsFor:              atoi(f.GoalsFor),
		GoalsAgainst:          atoi(f.GoalsAgainst),
		PowerPlays:            atoi(f.PowerPlays),
		PowerPlayGoals:        atoi(f.PowerPlayGoals),
		TimesShortHanded:      atoi(f.TimesShortHanded),
		PowerPlayGoalsAgainst: atoi(f.PowerPlayGoalsAgainst),
		PenaltyMinutes:        atoi(f.PenaltyMinutes),
	}
}

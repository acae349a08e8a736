package hockeytech

// Feed record types. Every numeric field is a string on the wire; the
// ingest layer owns conversion and defaulting.

type FeedSeason struct {
	SeasonID   string `json:"season_id"`
	SeasonName string `json:"season_name"`
	Shortname  string `json:"shortname"`
	Career     string `json:"career"`
	Playoff    string `json:"playoff"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

type FeedTeam struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Nickname   string `json:"nickname"`
	Code       string `json:"code"`
	City       string `json:"city"`
	LogoURL    string `json:"team_logo_url"`
	DivisionID string `json:"division_id"`
}

type FeedRosterPlayer struct {
	PlayerID     string `json:"player_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Position     string `json:"position"`
	Shoots       string `json:"shoots"`
	Height       string `json:"height"`
	Birthdate    string `json:"birthdate"`
	Hometown     string `json:"hometown"`
	BirthCountry string `json:"birthcntry"`
	ImageURL     string `json:"player_image"`
	Active       string `json:"active"`
	JerseyNumber string `json:"tp_jersey_number"`
	Rookie       string `json:"rookie"`
	Status       string `json:"status"`
}

type FeedGame struct {
	GameID            string `json:"game_id"`
	SeasonID          string `json:"season_id"`
	GameNumber        string `json:"game_number"`
	DateTimePlayed    string `json:"date_time_played"`
	HomeTeam          string `json:"home_team"`
	VisitingTeam      string `json:"visiting_team"`
	HomeGoalCount     string `json:"home_goal_count"`
	VisitingGoalCount string `json:"visiting_goal_count"`
	Period            string `json:"period"`
	Overtime          string `json:"overtime"`
	Shootout          string `json:"shootout"`
	GameStatus        string `json:"game_status"`
	VenueName         string `json:"venue_name"`
	Attendance        string `json:"attendance"`
}

type FeedSkaterStat struct {
	PlayerID          string `json:"player_id"`
	TeamID            string `json:"team_id"`
	GamesPlayed       string `json:"games_played"`
	Goals             string `json:"goals"`
	Assists           string `json:"assists"`
	Points            string `json:"points"`
	Shots             string `json:"shots"`
	PenaltyMinutes    string `json:"penalty_minutes"`
	PlusMinus         string `json:"plus_minus"`
	FaceoffAttempts   string `json:"faceoff_attempts"`
	FaceoffWins       string `json:"faceoff_wins"`
	IceTime           string `json:"ice_time"`
	PowerPlayGoals    string `json:"power_play_goals"`
	PowerPlayAssists  string `json:"power_play_assists"`
	ShortHandedGoals  string `json:"short_handed_goals"`
	ShortHandedPoints string `json:"short_handed_points"`
	GameWinningGoals  string `json:"game_winning_goals"`
}

type FeedGoalieStat struct {
	PlayerID            string `json:"player_id"`
	TeamID              string `json:"team_id"`
	GamesPlayed         string `json:"games_played"`
	SecondsPlayed       string `json:"seconds_played"`
	Wins                string `json:"wins"`
	Losses              string `json:"losses"`
	OTLosses            string `json:"ot_losses"`
	Shutouts            string `json:"shutouts"`
	Saves               string `json:"saves"`
	Shots               string `json:"shots"`
	GoalsAgainst        string `json:"goals_against"`
	SavePercentage      string `json:"save_percentage"`
	GoalsAgainstAverage string `json:"goals_against_average"`
}

type FeedPlay struct {
	EventID       string `json:"event_id"`
	EventType     string `json:"event_type"`
	PlayerID      string `json:"player_id"`
	GoalieID      string `json:"goalie_id"`
	TeamID        string `json:"team_id"`
	OpponentID    string `json:"opponent_id"`
	IsHome        string `json:"is_home"`
	Period        string `json:"period"`
	TimeFormatted string `json:"time_formatted"`
	XLocation     string `json:"x_location"`
	YLocation     string `json:"y_location"`
	ShotType      string `json:"shot_type"`
	ShotQuality   string `json:"shot_quality"`
	GameGoalID    string `json:"game_goal_id"`
}

type FeedStandingsRow struct {
	TeamID                string `json:"team_id"`
	GamesPlayed           string `json:"games_played"`
	Wins                  string `json:"wins"`
	Losses                string `json:"losses"`
	OTLosses              string `json:"ot_losses"`
	Points                string `json:"points"`
	GoalsFor              string `json:"goals_for"`
	GoalsAgainst          string `json:"goals_against"`
	PowerPlays            string `json:"power_plays"`
	PowerPlayGoals        string `json:"power_play_goals"`
	TimesShortHanded      string `json:"times_short_handed"`
	PowerPlayGoalsAgainst string `json:"power_play_goals_against"`
	PenaltyMinutes        string `json:"penalty_minutes"`
}

package pbp

import (
	"fmt"
	"strconv"

	"github.com/hockeystats/pwhl-metrics/internal/model"
)

// reqInt reads a required integer column; an empty or malformed value fails
// the row.
func reqInt(r Row, col string) (int, error) {
	s := r.Get(col)
	if s == "" {
		return 0, fmt.Errorf("missing %s", col)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", col, s)
	}
	return v, nil
}

// optInt reads an optional integer column, 0 when empty or malformed.
func optInt(r Row, col string) int {
	v, err := strconv.Atoi(r.Get(col))
	if err != nil {
		return 0
	}
	return v
}

// optIntPtr reads an optional integer column as a pointer, nil when absent.
func optIntPtr(r Row, col string) *int {
	v, err := strconv.Atoi(r.Get(col))
	if err != nil {
		return nil
	}
	return &v
}

func flag(r Row, col string) bool {
	return r.Get(col) == "1"
}

// ParseShot maps one shots.csv row to a Shot. The is_goal flag derives from
// the presence of a linked goal event id.
func ParseShot(r Row) (model.Shot, error) {
	var s model.Shot

	s.EventID = r.Get("id")
	if s.EventID == "" {
		return s, fmt.Errorf("missing id")
	}

	var err error
	if s.GameID, err = reqInt(r, "game_id"); err != nil {
		return s, err
	}
	if s.SeasonID, err = reqInt(r, "season_id"); err != nil {
		return s, err
	}
	if s.PlayerID, err = reqInt(r, "player_id"); err != nil {
		return s, err
	}
	if s.TeamID, err = reqInt(r, "team_id"); err != nil {
		return s, err
	}
	if s.OpponentTeamID, err = reqInt(r, "opponent_team_id"); err != nil {
		return s, err
	}

	s.GoalieID = optInt(r, "goalie_id")
	s.IsHome = flag(r, "home")
	s.Period = optInt(r, "period")
	s.Seconds = optInt(r, "seconds")
	s.X = optIntPtr(r, "x_location")
	s.Y = optIntPtr(r, "y_location")
	s.ShotType = model.ShotType(optInt(r, "shot_type"))
	s.Quality = model.ShotQuality(optInt(r, "quality"))
	s.IsGoal = r.Get("game_goal_id") != ""
	return s, nil
}

// ParseGoal maps one goals.csv row to a Goal.
func ParseGoal(r Row) (model.Goal, error) {
	var g model.Goal

	g.EventID = r.Get("id")
	if g.EventID == "" {
		return g, fmt.Errorf("missing id")
	}

	var err error
	if g.GameID, err = reqInt(r, "game_id"); err != nil {
		return g, err
	}
	if g.SeasonID, err = reqInt(r, "season_id"); err != nil {
		return g, err
	}
	if g.TeamID, err = reqInt(r, "team_id"); err != nil {
		return g, err
	}
	if g.ScorerID, err = reqInt(r, "goal_player_id"); err != nil {
		return g, err
	}
	if g.OpponentTeamID, err = reqInt(r, "opponent_team_id"); err != nil {
		return g, err
	}

	g.Assist1ID = optInt(r, "assist1_player_id")
	g.Assist2ID = optInt(r, "assist2_player_id")
	g.IsHome = flag(r, "home")
	g.Period = optInt(r, "period")
	g.Seconds = optInt(r, "seconds")
	g.PowerPlay = flag(r, "power_play")
	g.ShortHanded = flag(r, "short_handed")
	g.EmptyNet = flag(r, "empty_net")
	g.GameWinning = flag(r, "game_winning")
	return g, nil
}

// ParsePenalty maps one penalties.csv row to a Penalty.
func ParsePenalty(r Row) (model.Penalty, error) {
	var p model.Penalty

	p.EventID = r.Get("id")
	if p.EventID == "" {
		return p, fmt.Errorf("missing id")
	}

	var err error
	if p.GameID, err = reqInt(r, "game_id"); err != nil {
		return p, err
	}
	if p.SeasonID, err = reqInt(r, "season_id"); err != nil {
		return p, err
	}
	if p.PlayerID, err = reqInt(r, "player_id"); err != nil {
		return p, err
	}
	if p.TeamID, err = reqInt(r, "team_id"); err != nil {
		return p, err
	}

	p.IsHome = flag(r, "home")
	p.Period = optInt(r, "period")
	// Minutes can arrive as "2.0".
	if f, err := strconv.ParseFloat(r.Get("minutes"), 64); err == nil {
		p.Minutes = int(f)
	}
	p.Class = r.Get("penalty_class")
	p.Description = r.Get("lang_penalty_description")
	p.Bench = flag(r, "bench")
	p.PenaltyShot = flag(r, "penalty_shot")
	p.PowerPlay = flag(r, "pp")
	return p, nil
}

// ParseFaceoff maps one faceoffs.csv row to a Faceoff.
func ParseFaceoff(r Row) (model.Faceoff, error) {
	var f model.Faceoff

	f.EventID = r.Get("id")
	if f.EventID == "" {
		return f, fmt.Errorf("missing id")
	}

	var err error
	if f.GameID, err = reqInt(r, "game_id"); err != nil {
		return f, err
	}
	if f.SeasonID, err = reqInt(r, "season_id"); err != nil {
		return f, err
	}
	if f.HomePlayerID, err = reqInt(r, "home_player_id"); err != nil {
		return f, err
	}
	if f.AwayPlayerID, err = reqInt(r, "visitor_player_id"); err != nil {
		return f, err
	}
	if f.WinTeamID, err = reqInt(r, "win_team_id"); err != nil {
		return f, err
	}

	f.Period = optInt(r, "period")
	f.Seconds = optInt(r, "seconds")
	f.X = optIntPtr(r, "x_location")
	f.Y = optIntPtr(r, "y_location")
	f.LocationID = optInt(r, "location_id")
	f.HomeWin = flag(r, "home_win")
	return f, nil
}

// ParseHit maps one hits.csv row to a Hit.
func ParseHit(r Row) (model.Hit, error) {
	var h model.Hit

	h.EventID = r.Get("id")
	if h.EventID == "" {
		return h, fmt.Errorf("missing id")
	}

	var err error
	if h.GameID, err = reqInt(r, "game_id"); err != nil {
		return h, err
	}
	if h.SeasonID, err = reqInt(r, "season_id"); err != nil {
		return h, err
	}
	if h.PlayerID, err = reqInt(r, "player_id"); err != nil {
		return h, err
	}
	if h.TeamID, err = reqInt(r, "team_id"); err != nil {
		return h, err
	}

	h.IsHome = flag(r, "home")
	h.Period = optInt(r, "period")
	h.Seconds = optInt(r, "seconds")
	h.X = optIntPtr(r, "x_location")
	h.Y = optIntPtr(r, "y_location")
	h.HitType = optInt(r, "hit_type")
	return h, nil
}

// ParseBlockedShot maps one blocked_shots.csv row to a BlockedShot. In the
// export the blocking side is blocker_team_id and the shooting side team_id.
func ParseBlockedShot(r Row) (model.BlockedShot, error) {
	var b model.BlockedShot

	b.EventID = r.Get("id")
	if b.EventID == "" {
		return b, fmt.Errorf("missing id")
	}

	var err error
	if b.GameID, err = reqInt(r, "game_id"); err != nil {
		return b, err
	}
	if b.SeasonID, err = reqInt(r, "season_id"); err != nil {
		return b, err
	}
	if b.TeamID, err = reqInt(r, "blocker_team_id"); err != nil {
		return b, err
	}
	if b.OpponentTeamID, err = reqInt(r, "team_id"); err != nil {
		return b, err
	}

	b.BlockerID = optInt(r, "blocker_player_id")
	b.ShooterID = optInt(r, "player_id")
	b.IsHome = flag(r, "home")
	b.Period = optInt(r, "period")
	b.Seconds = optInt(r, "seconds")
	return b, nil
}

// ParsePlayer maps one all_players.csv row to a Player.
func ParsePlayer(r Row) (model.Player, error) {
	var p model.Player

	var err error
	if p.PlayerID, err = reqInt(r, "id"); err != nil {
		return p, err
	}

	p.FirstName = r.Get("first_name")
	p.LastName = r.Get("last_name")
	p.FullName = p.FirstName + " " + p.LastName
	p.Position = r.Get("position")
	p.Shoots = r.Get("shoots")
	p.Height = r.Get("height")
	p.Birthdate = r.Get("birthdate")
	p.Hometown = r.Get("hometown")
	p.Nationality = r.Get("nationality")
	p.ImageURL = r.Get("image")
	p.Active = true
	return p, nil
}

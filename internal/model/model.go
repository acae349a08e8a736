package model

// ShotType is the numeric shot type code used by the play-by-play feed.
type ShotType int

const (
	ShotTypeUnknown  ShotType = 0
	ShotTypeSnap     ShotType = 1
	ShotTypeWrist    ShotType = 2
	ShotTypeSlap     ShotType = 3
	ShotTypeBackhand ShotType = 4
	ShotTypeDefault  ShotType = 5
	ShotTypeTip      ShotType = 6
)

func (t ShotType) String() string {
	switch t {
	case ShotTypeSnap:
		return "snap"
	case ShotTypeWrist:
		return "wrist"
	case ShotTypeSlap:
		return "slap"
	case ShotTypeBackhand:
		return "backhand"
	case ShotTypeDefault:
		return "default"
	case ShotTypeTip:
		return "tip"
	default:
		return "?"
	}
}

// ShotQuality is the numeric shot quality code used by the play-by-play feed.
// Codes 1 and 5 mark quality chances (on net / goal), 2 and 6 non-quality.
type ShotQuality int

const (
	QualityUnknown  ShotQuality = 0
	QualityOnNet    ShotQuality = 1
	NonQualityOnNet ShotQuality = 2
	QualityGoal     ShotQuality = 5
	NonQualityGoal  ShotQuality = 6
)

func (q ShotQuality) String() string {
	switch q {
	case QualityOnNet:
		return "quality on net"
	case NonQualityOnNet:
		return "non-quality on net"
	case QualityGoal:
		return "quality goal"
	case NonQualityGoal:
		return "non-quality goal"
	default:
		return "?"
	}
}

// ---- League reference data ----

type Season struct {
	SeasonID   int
	SeasonName string
	Shortname  string
	Career     int
	Playoff    int
	StartDate  string
	EndDate    string
}

type Team struct {
	TeamID     int
	Name       string
	Nickname   string
	Code       string
	City       string
	LogoURL    string
	DivisionID int
}

type Player struct {
	PlayerID    int
	FirstName   string
	LastName    string
	FullName    string
	Position    string
	Shoots      string
	Height      string
	Birthdate   string
	Hometown    string
	Nationality string
	ImageURL    string
	Active      bool
}

// IsDefense reports whether the position code is a defensive one.
func (p *Player) IsDefense() bool {
	switch p.Position {
	case "D", "LD", "RD":
		return true
	}
	return false
}

type RosterAssignment struct {
	PlayerID     int
	TeamID       int
	SeasonID     int
	JerseyNumber int
	Rookie       bool
	Status       string
}

type Game struct {
	GameID     int
	SeasonID   int
	GameNumber int
	DatePlayed string
	HomeTeamID int
	AwayTeamID int
	HomeGoals  int
	AwayGoals  int
	Periods    int
	Overtime   bool
	Shootout   bool
	GameStatus string
	VenueName  string
	Attendance int
	DayOfWeek  string
	IsWeekend  bool
}

// ---- Play-by-play events ----

// Shot is a single shot event. X and Y are rink coordinates on a 294-unit
// long axis; nil means the feed did not record a location.
type Shot struct {
	EventID        string
	GameID         int
	SeasonID       int
	PlayerID       int
	GoalieID       int // 0 if empty net or unrecorded
	TeamID         int
	OpponentTeamID int
	IsHome         bool
	Period         int
	Seconds        int
	X, Y           *int
	ShotType       ShotType
	Quality        ShotQuality
	IsGoal         bool
	XG             float64
}

type Goal struct {
	EventID        string
	GameID         int
	SeasonID       int
	TeamID         int
	ScorerID       int
	Assist1ID      int // 0 if unassisted
	Assist2ID      int
	OpponentTeamID int
	IsHome         bool
	Period         int
	Seconds        int
	PowerPlay      bool
	ShortHanded    bool
	EmptyNet       bool
	GameWinning    bool
}

type Penalty struct {
	EventID     string
	GameID      int
	SeasonID    int
	PlayerID    int
	TeamID      int
	IsHome      bool
	Period      int
	Minutes     int
	Class       string
	Description string
	Bench       bool
	PenaltyShot bool
	PowerPlay   bool
}

type Faceoff struct {
	EventID      string
	GameID       int
	SeasonID     int
	HomePlayerID int
	AwayPlayerID int
	Period       int
	Seconds      int
	X, Y         *int
	LocationID   int
	HomeWin      bool
	WinTeamID    int
}

type Hit struct {
	EventID  string
	GameID   int
	SeasonID int
	PlayerID int
	TeamID   int
	IsHome   bool
	Period   int
	Seconds  int
	X, Y     *int
	HitType  int
}

type BlockedShot struct {
	EventID        string
	GameID         int
	SeasonID       int
	BlockerID      int
	ShooterID      int
	TeamID         int // blocking team
	OpponentTeamID int // shooting team
	IsHome         bool
	Period         int
	Seconds        int
}

// ---- Aggregated season stats ----

type SkaterStats struct {
	PlayerID int
	TeamID   int
	SeasonID int

	GamesPlayed     int
	Goals           int
	Assists         int
	Points          int
	Shots           int
	PenaltyMinutes  int
	PlusMinus       int
	FaceoffAttempts int
	FaceoffWins     int
	IceTimeSeconds  int

	PowerPlayGoals    int
	PowerPlayAssists  int
	ShortHandedGoals  int
	ShortHandedPoints int
	GameWinningGoals  int

	XG           float64
	GoalsAboveXG float64

	PointsPer60  float64
	GoalsPer60   float64
	AssistsPer60 float64
	ShotsPer60   float64
	ShootingPct  float64
	FaceoffPct   float64
	GameScore    float64
	ClutchGoals  int
	Blocks       int

	EstMaxPointStreak  int
	EstMultiPointGames int
}

// ShootingPercent returns goals per shot as a percentage, 0 when shotless.
func (s *SkaterStats) ShootingPercent() float64 {
	if s.Shots == 0 {
		return 0
	}
	return 100.0 * float64(s.Goals) / float64(s.Shots)
}

// PointsPerGame returns points per game played, 0 when no games.
func (s *SkaterStats) PointsPerGame() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.Points) / float64(s.GamesPlayed)
}

type GoalieStats struct {
	PlayerID int
	TeamID   int
	SeasonID int

	GamesPlayed   int
	SecondsPlayed int
	Wins          int
	Losses        int
	OTLosses      int
	Shutouts      int
	Saves         int
	ShotsAgainst  int
	GoalsAgainst  int
	SavePct       float64
	GAA           float64

	GSAx float64
}

// SavePercent returns the save fraction, 0 when no shots faced.
func (g *GoalieStats) SavePercent() float64 {
	if g.ShotsAgainst == 0 {
		return 0
	}
	return float64(g.ShotsAgainst-g.GoalsAgainst) / float64(g.ShotsAgainst)
}

type TeamStats struct {
	TeamID   int
	SeasonID int

	GamesPlayed  int
	Wins         int
	Losses       int
	OTLosses     int
	Points       int
	GoalsFor     int
	GoalsAgainst int

	PowerPlays            int
	PowerPlayGoals        int
	TimesShortHanded      int
	PowerPlayGoalsAgainst int
	PenaltyMinutes        int

	CorsiFor       int
	CorsiAgainst   int
	CorsiPct       float64
	FenwickFor     int
	FenwickAgainst int
	FenwickPct     float64
	PDO            float64

	HomeWins   int
	HomeLosses int
	AwayWins   int
	AwayLosses int
}

type HeadToHead struct {
	SeasonID   int
	Team1ID    int
	Team2ID    int
	Team1Wins  int
	Team2Wins  int
	Ties       int
	Team1Goals int
	Team2Goals int
}

type VenueStats struct {
	SeasonID     int
	TeamID       int
	VenueName    string
	GamesPlayed  int
	Wins         int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
}

package xg

// VolumeBucket groups skaters by season shot volume when estimating xG
// from season totals.
type VolumeBucket int

const (
	VolumeLow      VolumeBucket = iota // < 20 shots
	VolumeMedium                       // 20-49
	VolumeHigh                         // 50-79
	VolumeVeryHigh                     // >= 80
)

func (b VolumeBucket) String() string {
	switch b {
	case VolumeLow:
		return "low"
	case VolumeMedium:
		return "medium"
	case VolumeHigh:
		return "high"
	case VolumeVeryHigh:
		return "very_high"
	default:
		return "?"
	}
}

// BucketFor returns the volume bucket for a season shot count.
func BucketFor(shots int) VolumeBucket {
	switch {
	case shots < 20:
		return VolumeLow
	case shots < 50:
		return VolumeMedium
	case shots < 80:
		return VolumeHigh
	default:
		return VolumeVeryHigh
	}
}

// DefaultConversionRate is used when a position or bucket has no
// historical data to draw from.
const DefaultConversionRate = 0.10

// Estimator estimates season xG from shot and goal totals for seasons
// without shot-level data. Rates are loaded from seasons that have it.
type Estimator struct {
	// PositionRates maps position code (F, C, LW, RW, D, ...) to the
	// average conversion rate observed for that position.
	PositionRates map[string]float64

	// VolumeRates maps shot-volume bucket to the average conversion
	// rate observed for skaters in that bucket.
	VolumeRates map[VolumeBucket]float64

	// DefaultRate fills in for positions or buckets with no history.
	DefaultRate float64
}

// NewEstimator returns an Estimator with the default fallback rate set.
func NewEstimator() *Estimator {
	return &Estimator{
		PositionRates: make(map[string]float64),
		VolumeRates:   make(map[VolumeBucket]float64),
		DefaultRate:   DefaultConversionRate,
	}
}

func (e *Estimator) positionRate(position string) float64 {
	if r, ok := e.PositionRates[position]; ok && r > 0 {
		return r
	}
	return e.DefaultRate
}

func (e *Estimator) volumeRate(b VolumeBucket) float64 {
	if r, ok := e.VolumeRates[b]; ok && r > 0 {
		return r
	}
	return e.DefaultRate
}

// regressionWeight returns how much of the volume-based expectation to
// keep versus the skater's actual finishing. Fewer shots means less
// signal in the actual goal total, so the expectation dominates.
func regressionWeight(shots int) float64 {
	switch {
	case shots < 20:
		return 0.8
	case shots < 50:
		return 0.6
	default:
		return 0.4
	}
}

// Estimate returns an xG estimate for a skater's season from shot and
// goal totals. Zero shots estimates to zero; the result is never negative.
func (e *Estimator) Estimate(shots, goals int, position string) float64 {
	if shots == 0 {
		return 0
	}

	expected := e.positionRate(position)*0.6 + e.volumeRate(BucketFor(shots))*0.4
	base := float64(shots) * expected

	r := regressionWeight(shots)
	est := base*r + float64(goals)*(1-r)
	if est < 0 {
		return 0
	}
	return est
}

// DefaultLeagueSavePct is the fallback league save percentage used for
// goalie GSAx estimation when no shot-data seasons are available.
const DefaultLeagueSavePct = 0.91

// EstimateGSAx returns goals saved above expected from season totals,
// given the league-average save percentage.
func EstimateGSAx(shotsAgainst, goalsAgainst int, leagueSavePct float64) float64 {
	if shotsAgainst == 0 {
		return 0
	}
	expectedGoals := float64(shotsAgainst) * (1 - leagueSavePct)
	return expectedGoals - float64(goalsAgainst)
}

// Package xg implements the expected-goals model for shot events and the
// season-level estimator used when no shot-level data exists.
//
// The model is calibrated against observed league shooting percentages:
// shots between the blue lines of the offensive zone band (100 < y < 200 on
// the 294-unit long axis) convert at roughly 12%, everything else at 4%.
// Shot type and quality codes scale that base rate relative to the wrist
// shot baseline.
package xg

import "github.com/hockeystats/pwhl-metrics/internal/model"

// Params holds the calibrated model constants. Use DefaultParams unless
// recalibrating against a new dataset.
type Params struct {
	// Zone base conversion rates.
	HighDangerBase float64 // 100 < y < 200
	PerimeterBase  float64 // everything else, including unknown location

	// Zone band boundaries on the rink long axis.
	ZoneLow  int
	ZoneHigh int

	// Cap on any single shot's value.
	MaxXG float64
}

// DefaultParams returns the constants calibrated from league shot data.
func DefaultParams() Params {
	return Params{
		HighDangerBase: 0.12,
		PerimeterBase:  0.04,
		ZoneLow:        100,
		ZoneHigh:       200,
		MaxXG:          0.25,
	}
}

// typeMultiplier scales the base rate by shot type, relative to the wrist
// shot baseline (7.36% observed conversion).
func typeMultiplier(t model.ShotType) float64 {
	switch t {
	case model.ShotTypeSnap:
		return 1.40
	case model.ShotTypeWrist:
		return 1.00
	case model.ShotTypeSlap:
		return 1.19
	case model.ShotTypeBackhand:
		return 1.25
	case model.ShotTypeDefault:
		return 1.25
	case model.ShotTypeTip:
		return 1.82
	default:
		return 1.00
	}
}

// qualityMultiplier scales the base rate by the feed's shot quality code.
func qualityMultiplier(q model.ShotQuality) float64 {
	switch q {
	case model.QualityOnNet, model.QualityGoal:
		return 1.15
	case model.NonQualityOnNet, model.NonQualityGoal:
		return 0.85
	default:
		return 1.00
	}
}

// Score returns the expected-goal value for a single shot. The shot's
// outcome never enters the calculation; a goal and a miss from the same
// spot with the same type and quality score identically.
func (p Params) Score(shotType model.ShotType, quality model.ShotQuality, y *int) float64 {
	base := p.PerimeterBase
	if y != nil && *y > p.ZoneLow && *y < p.ZoneHigh {
		base = p.HighDangerBase
	}

	xg := base * typeMultiplier(shotType) * qualityMultiplier(quality)
	if xg > p.MaxXG {
		xg = p.MaxXG
	}
	return xg
}

// ScoreShot scores a model.Shot in place and returns the value.
func (p Params) ScoreShot(s *model.Shot) float64 {
	s.XG = p.Score(s.ShotType, s.Quality, s.Y)
	return s.XG
}

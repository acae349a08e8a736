package xg

import (
	"math"
	"testing"

	"github.com/hockeystats/pwhl-metrics/internal/model"
)

func intPtr(v int) *int { return &v }

func TestScoreBounds(t *testing.T) {
	p := DefaultParams()

	types := []model.ShotType{0, 1, 2, 3, 4, 5, 6, 99}
	qualities := []model.ShotQuality{0, 1, 2, 5, 6, 42}
	ys := []*int{nil, intPtr(0), intPtr(100), intPtr(150), intPtr(200), intPtr(294)}

	for _, st := range types {
		for _, q := range qualities {
			for _, y := range ys {
				xg := p.Score(st, q, y)
				if xg <= 0 || xg > p.MaxXG {
					t.Errorf("Score(%v, %v, %v) = %v, want in (0, %v]", st, q, y, xg, p.MaxXG)
				}
			}
		}
	}
}

func TestScoreIgnoresOutcome(t *testing.T) {
	p := DefaultParams()

	goal := model.Shot{ShotType: model.ShotTypeWrist, Quality: model.QualityGoal, Y: intPtr(150), IsGoal: true}
	miss := goal
	miss.IsGoal = false
	// Same spot, type and quality code must score identically regardless
	// of whether the puck went in.
	if p.ScoreShot(&goal) != p.ScoreShot(&miss) {
		t.Errorf("goal scored %v, miss scored %v", goal.XG, miss.XG)
	}
}

func TestScoreZoneBoundaries(t *testing.T) {
	p := DefaultParams()

	cases := []struct {
		name string
		y    *int
		want float64
	}{
		{"missing location", nil, 0.04},
		{"low boundary exclusive", intPtr(100), 0.04},
		{"center", intPtr(150), 0.12},
		{"high boundary exclusive", intPtr(200), 0.04},
		{"just inside low", intPtr(101), 0.12},
		{"just inside high", intPtr(199), 0.12},
		{"defensive end", intPtr(10), 0.04},
	}
	for _, c := range cases {
		got := p.Score(model.ShotTypeWrist, model.QualityUnknown, c.y)
		if got != c.want {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestScoreWorkedExamples(t *testing.T) {
	p := DefaultParams()

	// High-danger wrist shot, non-quality on net: 0.12 * 1.00 * 0.85.
	got := p.Score(model.ShotTypeWrist, model.NonQualityOnNet, intPtr(150))
	if math.Abs(got-0.102) > 1e-9 {
		t.Errorf("wrist non-quality: got %v, want 0.102", got)
	}

	// High-danger quality tip would be 0.12 * 1.82 * 1.15 = 0.25116,
	// capped at 0.25.
	got = p.Score(model.ShotTypeTip, model.QualityOnNet, intPtr(150))
	if got != 0.25 {
		t.Errorf("quality tip: got %v, want cap 0.25", got)
	}
}

func TestScoreUnknownCodesAreNeutral(t *testing.T) {
	p := DefaultParams()

	base := p.Score(model.ShotTypeWrist, model.QualityUnknown, intPtr(150))
	if base != 0.12 {
		t.Fatalf("wrist/unknown: got %v, want 0.12", base)
	}
	if got := p.Score(model.ShotTypeUnknown, model.QualityUnknown, intPtr(150)); got != base {
		t.Errorf("unknown type should be neutral: got %v", got)
	}
	if got := p.Score(model.ShotTypeWrist, model.ShotQuality(42), intPtr(150)); got != base {
		t.Errorf("unknown quality should be neutral: got %v", got)
	}
}

func TestBucketFor(t *testing.T) {
	cases := []struct {
		shots int
		want  VolumeBucket
	}{
		{0, VolumeLow},
		{19, VolumeLow},
		{20, VolumeMedium},
		{49, VolumeMedium},
		{50, VolumeHigh},
		{79, VolumeHigh},
		{80, VolumeVeryHigh},
		{200, VolumeVeryHigh},
	}
	for _, c := range cases {
		if got := BucketFor(c.shots); got != c.want {
			t.Errorf("BucketFor(%d) = %v, want %v", c.shots, got, c.want)
		}
	}
}

func TestEstimateWorkedExample(t *testing.T) {
	e := NewEstimator()
	e.PositionRates["D"] = 0.05
	e.VolumeRates[VolumeMedium] = 0.09

	// 30 shots, 5 goals, defense:
	//   expected = 0.6*0.05 + 0.4*0.09 = 0.066
	//   base     = 30 * 0.066 = 1.98
	//   r        = 0.6 (20-49 shots)
	//   estimate = 1.98*0.6 + 5*0.4 = 3.188
	got := e.Estimate(30, 5, "D")
	if math.Abs(got-3.188) > 1e-9 {
		t.Errorf("Estimate(30, 5, D) = %v, want 3.188", got)
	}
}

func TestEstimateZeroShots(t *testing.T) {
	e := NewEstimator()
	if got := e.Estimate(0, 0, "F"); got != 0 {
		t.Errorf("zero shots: got %v, want 0", got)
	}
	// Goals without recorded shots still estimate to zero.
	if got := e.Estimate(0, 3, "F"); got != 0 {
		t.Errorf("zero shots with goals: got %v, want 0", got)
	}
}

func TestEstimateNeverNegative(t *testing.T) {
	e := NewEstimator()
	e.PositionRates["F"] = 0.01
	e.VolumeRates[VolumeLow] = 0.01

	if got := e.Estimate(5, 0, "F"); got < 0 {
		t.Errorf("estimate went negative: %v", got)
	}
}

func TestEstimateUnknownPositionUsesDefault(t *testing.T) {
	e := NewEstimator()
	e.VolumeRates[VolumeLow] = 0.10

	// expected = 0.6*0.10 + 0.4*0.10 = 0.10; base = 10*0.10 = 1.0
	// r = 0.8, goals = 1 -> 1.0*0.8 + 1*0.2 = 1.0
	got := e.Estimate(10, 1, "G")
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("default-rate estimate: got %v, want 1.0", got)
	}
}

func TestEstimateGSAx(t *testing.T) {
	// 100 shots at .910 means 9 expected goals against; allowing 7
	// saves 2 above expected.
	got := EstimateGSAx(100, 7, 0.91)
	if math.Abs(got-2.0) > 1e-9 {
		t.Errorf("EstimateGSAx(100, 7, 0.91) = %v, want 2.0", got)
	}
	if got := EstimateGSAx(0, 0, 0.91); got != 0 {
		t.Errorf("no shots against: got %v, want 0", got)
	}
	// Allowing more than expected goes negative.
	if got := EstimateGSAx(100, 12, 0.91); got >= 0 {
		t.Errorf("bad goalie should be negative, got %v", got)
	}
}

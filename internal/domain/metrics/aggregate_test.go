package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/riskibarqy/hoops-scout/internal/domain/cohort"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
)

const eps = 1e-9

func almost(a, b float64) bool { return math.Abs(a-b) < eps }

func game(day int, minutes float64, points, fgm, fga, fta, tov int) profile.GameStat {
	return profile.GameStat{
		ProfileID: 1,
		GameID:    "g" + time.Date(2023, 10, day, 0, 0, 0, 0, time.UTC).Format("0102"),
		GameDate:  time.Date(2023, 10, day, 0, 0, 0, 0, time.UTC),
		Minutes:   minutes,
		Points:    points,
		FGM:       fgm,
		FGA:       fga,
		FTA:       fta,
		Turnovers: tov,
		TotalReb:  4,
		Assists:   2,
	}
}

func TestAggregate_NoGames(t *testing.T) {
	t.Parallel()

	got := Aggregate(profile.Profile{ID: 1, Season: "2023/2024"}, nil, TeamTotals{}, nil)
	if got.GamesPlayed != 0 || got.PointsPer36 != nil || got.MomentumIndex != nil {
		t.Fatalf("unexpected aggregate: %+v", got)
	}
	if got.PerformanceTier != PerformanceAverage || got.Percentile != 50 {
		t.Fatalf("unexpected tiers: %s %d", got.PerformanceTier, got.Percentile)
	}
}

func TestAggregate_CountingAndRates(t *testing.T) {
	t.Parallel()

	// Out of order on purpose; aggregation sorts by date.
	games := []profile.GameStat{
		game(3, 20, 12, 5, 10, 2, 1),
		game(1, 20, 4, 2, 8, 0, 2),
		game(2, 20, 8, 4, 8, 0, 0),
		game(4, 0, 0, 0, 0, 0, 0),
	}
	p := profile.Profile{ID: 1, TeamID: "T1", Season: "2023/2024", CompetitionLevel: 2}
	team := TeamTotals{Points: 96, Minutes: 240}

	got := Aggregate(p, games, team, nil)
	if got.GamesPlayed != 4 || got.TotalPoints != 24 || got.TotalMinutes != 60 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if !almost(got.AvgMinutes, 15) || !almost(got.AvgPoints, 6) {
		t.Fatalf("unexpected averages: %v %v", got.AvgMinutes, got.AvgPoints)
	}
	if got.AvgFGPct == nil || !almost(*got.AvgFGPct, (25.0+50.0+50.0)/3) {
		t.Fatalf("fg%% must average over games with attempts only: %v", got.AvgFGPct)
	}
	if got.AvgFG3Pct != nil {
		t.Fatalf("expected undefined 3p%%, got %v", *got.AvgFG3Pct)
	}
	if got.PointsPer36 == nil || !almost(*got.PointsPer36, 24*36/60.0) {
		t.Fatalf("unexpected per-36: %v", got.PointsPer36)
	}
	if got.PointsShare == nil || !almost(*got.PointsShare, 0.25) {
		t.Fatalf("unexpected points share: %v", got.PointsShare)
	}
	if got.MinutesShare == nil || !almost(*got.MinutesShare, 0.25) {
		t.Fatalf("unexpected minutes share: %v", got.MinutesShare)
	}
	// Chronological points 4, 8, 12, 0.
	if !almost(got.TrendPoints, -0.8) {
		t.Fatalf("unexpected trend: %v", got.TrendPoints)
	}
	if got.MomentumIndex == nil || *got.MomentumIndex != 0 {
		t.Fatalf("momentum must be 0 under five games: %v", got.MomentumIndex)
	}
	if got.PointsCV == nil || got.StabilityIndex == nil {
		t.Fatalf("expected variability metrics")
	}
	if !almost(*got.StabilityIndex, got.StdPoints/2) {
		t.Fatalf("unexpected stability: %v", *got.StabilityIndex)
	}
}

func TestAggregate_TrendNeedsThreeGames(t *testing.T) {
	t.Parallel()

	games := []profile.GameStat{game(1, 20, 4, 2, 8, 0, 0), game(2, 20, 20, 8, 12, 0, 0)}
	got := Aggregate(profile.Profile{ID: 1}, games, TeamTotals{}, nil)
	if got.TrendPoints != 0 {
		t.Fatalf("expected flat trend, got %v", got.TrendPoints)
	}
}

func TestAggregate_RollingWindowsAndMomentum(t *testing.T) {
	t.Parallel()

	var games []profile.GameStat
	for day := 1; day <= 10; day++ {
		pts := 5
		if day > 5 {
			pts = 15
		}
		games = append(games, game(day, 25, pts, 2, 6, 2, 1))
	}

	got := Aggregate(profile.Profile{ID: 1}, games, TeamTotals{}, nil)
	if got.Rolling5Points == nil || *got.Rolling5Points != 15 {
		t.Fatalf("unexpected rolling5: %v", got.Rolling5Points)
	}
	if got.Rolling10Points == nil || *got.Rolling10Points != 10 {
		t.Fatalf("unexpected rolling10: %v", got.Rolling10Points)
	}
	if got.MomentumIndex == nil || *got.MomentumIndex != 5 {
		t.Fatalf("unexpected momentum: %v", got.MomentumIndex)
	}
}

func TestAggregate_ZScoresAndTiers(t *testing.T) {
	t.Parallel()

	key := cohort.Key{Level: 1, Season: "2023/2024"}
	baselines := cohort.FromList([]cohort.Baseline{
		{Key: key, Metric: cohort.MetricOffensiveRating, Mean: 80, StdDev: 10, SampleSize: 100},
		{Key: key, Metric: cohort.MetricPoints, Mean: 8, StdDev: 4, SampleSize: 100},
	})

	// 20 points on 10 FGA and 0 FTA/TOV gives an OER of 200.
	games := []profile.GameStat{game(1, 30, 20, 8, 10, 0, 0), game(2, 30, 20, 8, 10, 0, 0)}
	p := profile.Profile{ID: 1, Season: "2023/2024", CompetitionLevel: 1}

	got := Aggregate(p, games, TeamTotals{}, baselines)
	if got.AvgZOffensiveRating == nil || !almost(*got.AvgZOffensiveRating, 12) {
		t.Fatalf("unexpected z oer: %v", got.AvgZOffensiveRating)
	}
	if got.AvgZPoints == nil || !almost(*got.AvgZPoints, 3) {
		t.Fatalf("unexpected z points: %v", got.AvgZPoints)
	}
	if got.PerformanceTier != PerformanceElite || got.PercentileTier != cohort.TierElite {
		t.Fatalf("unexpected tiers: %s %s", got.PerformanceTier, got.PercentileTier)
	}
}

func TestAggregate_Outliers(t *testing.T) {
	t.Parallel()

	var games []profile.GameStat
	for day := 1; day <= 20; day++ {
		games = append(games, game(day, 20, 6, 3, 6, 0, 0))
	}
	games = append(games, game(21, 20, 40, 16, 20, 0, 0))

	got := Aggregate(profile.Profile{ID: 1}, games, TeamTotals{}, nil)
	if got.OutlierGames != 1 {
		t.Fatalf("expected one outlier, got %d", got.OutlierGames)
	}
}

func TestTierFromZ(t *testing.T) {
	t.Parallel()

	val := func(v float64) *float64 { return &v }
	tests := []struct {
		z    *float64
		want PerformanceTier
	}{
		{z: nil, want: PerformanceAverage},
		{z: val(1.51), want: PerformanceElite},
		{z: val(1.5), want: PerformanceVeryGood},
		{z: val(0.5), want: PerformanceAboveAverage},
		{z: val(-0.5), want: PerformanceAverage},
		{z: val(-1.5), want: PerformanceBelowAverage},
	}
	for _, tc := range tests {
		if got := TierFromZ(tc.z); got != tc.want {
			t.Fatalf("TierFromZ: got=%s want=%s", got, tc.want)
		}
	}
}

func TestBuildTeamTotals(t *testing.T) {
	t.Parallel()

	profiles := []profile.Profile{
		{ID: 1, TeamID: "T1", Season: "2023/2024"},
		{ID: 2, TeamID: "T1", Season: "2023/2024"},
		{ID: 3, TeamID: "T2", Season: "2023/2024"},
	}
	games := map[int64][]profile.GameStat{
		1: {game(1, 20, 10, 4, 8, 2, 1)},
		2: {game(1, 30, 14, 6, 10, 2, 2)},
		3: {game(1, 25, 7, 3, 9, 0, 0)},
	}

	totals := BuildTeamTotals(profiles, games)
	t1 := totals[TeamKey{TeamID: "T1", Season: "2023/2024"}]
	if t1.Points != 24 || t1.Minutes != 50 || t1.AvgTrueShooting == nil {
		t.Fatalf("unexpected team totals: %+v", t1)
	}
	if len(totals) != 2 {
		t.Fatalf("expected two rosters, got %d", len(totals))
	}
}

func TestObserveGames(t *testing.T) {
	t.Parallel()

	key := cohort.Key{Level: 2, Season: "2023/2024"}
	b := cohort.NewBuilder()
	ObserveGames(b, key, []profile.GameStat{
		game(1, 20, 10, 4, 8, 2, 1),
		game(2, 5, 30, 10, 12, 0, 0),
	})

	baselines := b.Build()
	if got := baselines.Get(key, cohort.MetricPoints); got.SampleSize != 1 || got.Mean != 10 {
		t.Fatalf("unexpected points baseline: %+v", got)
	}
	if got := baselines.Get(key, cohort.MetricTrueShooting); got.SampleSize != 1 {
		t.Fatalf("unexpected ts baseline: %+v", got)
	}
}

package cohort

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestZScore_Scenario(t *testing.T) {
	t.Parallel()

	z, ok := ZScore(14, 10, 2)
	if !ok || z != 2 {
		t.Fatalf("unexpected z: %v %v", z, ok)
	}
	p := Percentile(&z)
	if p != 97 {
		t.Fatalf("unexpected percentile: %d", p)
	}
	if tier := PercentileTier(p); tier != TierElite {
		t.Fatalf("unexpected tier: %s", tier)
	}
}

func TestZScore_Degenerate(t *testing.T) {
	t.Parallel()

	if _, ok := ZScore(5, 5, 0); ok {
		t.Fatalf("expected undefined z for zero stddev")
	}
	if _, ok := ZScore(math.NaN(), 5, 1); ok {
		t.Fatalf("expected undefined z for NaN input")
	}
	if p := Percentile(nil); p != 50 {
		t.Fatalf("expected 50 for undefined z, got %d", p)
	}
}

func TestZScore_MeanIsZeroAndMonotonic(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(3, 11))
	for range 200 {
		mean := rng.Float64()*40 - 20
		std := rng.Float64()*5 + 0.01
		if z, _ := ZScore(mean, mean, std); z != 0 {
			t.Fatalf("z of mean must be 0, got %v", z)
		}
		a := rng.Float64()*100 - 50
		b := a + rng.Float64()*10
		za, _ := ZScore(a, mean, std)
		zb, _ := ZScore(b, mean, std)
		if zb < za {
			t.Fatalf("z not monotonic: z(%v)=%v > z(%v)=%v", a, za, b, zb)
		}
		if Percentile(&zb) < Percentile(&za) {
			t.Fatalf("percentile not monotonic for z %v <= %v", za, zb)
		}
	}

	zero := 0.0
	if p := Percentile(&zero); p != 50 {
		t.Fatalf("percentile(0) must be 50, got %d", p)
	}
}

func TestPercentileTier_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p    int
		want Tier
	}{
		{p: 100, want: TierElite},
		{p: 95, want: TierElite},
		{p: 94, want: TierVeryGood},
		{p: 80, want: TierVeryGood},
		{p: 60, want: TierAboveAverage},
		{p: 40, want: TierAverage},
		{p: 39, want: TierBelowAverage},
		{p: 0, want: TierBelowAverage},
	}
	for _, tc := range tests {
		if got := PercentileTier(tc.p); got != tc.want {
			t.Fatalf("PercentileTier(%d): got=%s want=%s", tc.p, got, tc.want)
		}
	}
}

func TestBuilder_BaselinesAndFallback(t *testing.T) {
	t.Parallel()

	key := Key{Level: 1, Season: "2023/2024"}
	b := NewBuilder()
	for _, v := range []float64{8, 10, 12} {
		b.Add(key, 20, MetricPoints, v)
	}
	b.Add(key, 4, MetricPoints, 100)

	baselines := b.Build()
	got := baselines.Get(key, MetricPoints)
	if got.SampleSize != 3 || got.Mean != 10 {
		t.Fatalf("unexpected baseline: %+v", got)
	}
	if math.Abs(got.StdDev-math.Sqrt(8.0/3.0)) > 1e-12 {
		t.Fatalf("unexpected stddev: %v", got.StdDev)
	}
	if !got.Sparse() || len(baselines.Sparse()) != 1 {
		t.Fatalf("expected sparse baseline")
	}

	missing := baselines.Get(Key{Level: 3, Season: "2023/2024"}, MetricPER)
	if missing.Mean != 0 || missing.StdDev != 1 || missing.SampleSize != 0 {
		t.Fatalf("unexpected fallback: %+v", missing)
	}

	z := baselines.Z(key, MetricPoints, 10)
	if z == nil || *z != 0 {
		t.Fatalf("unexpected z: %v", z)
	}

	single := NewBuilder()
	single.Add(key, 30, MetricMinutes, 30)
	if z := single.Build().Z(key, MetricMinutes, 31); z != nil {
		t.Fatalf("expected nil z for zero stddev, got %v", *z)
	}
}

func TestBaselines_FromListRoundTrip(t *testing.T) {
	t.Parallel()

	items := []Baseline{
		{Key: Key{Level: 2, Season: "2022/2023"}, Metric: MetricPER, Mean: 11, StdDev: 3, SampleSize: 40},
		{Key: Key{Level: 1, Season: "2022/2023"}, Metric: MetricPoints, Mean: 9, StdDev: 4, SampleSize: 60},
	}
	got := FromList(items).List()
	if len(got) != 2 || got[0].Key.Level != 1 || got[1].Metric != MetricPER {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestLevels_Resolve(t *testing.T) {
	t.Parallel()

	levels := DefaultLevels()
	tests := []struct {
		competition string
		season      string
		want        int
	}{
		{competition: "ACB", season: "2023/2024", want: 1},
		{competition: "leb oro", season: "2023/2024", want: 2},
		{competition: "Liga Femenina 2", season: "2019/2020", want: 2},
		{competition: "Liga Femenina 2", season: "2020/2021", want: 3},
		{competition: "Liga Femenina 2", season: "garbage", want: 2},
		{competition: "Liga Municipal", season: "2023/2024", want: LowestLevel},
	}
	for _, tc := range tests {
		if got := levels.Resolve(tc.competition, tc.season); got != tc.want {
			t.Fatalf("Resolve(%q,%q): got=%d want=%d", tc.competition, tc.season, got, tc.want)
		}
	}
}

func TestParseLevels_Override(t *testing.T) {
	t.Parallel()

	data := []byte(`
competitions:
  - name: Liga U
    level: 3
  - name: LEB Plata
    level: 2
    from_season: "2024/2025"
    level_from: 3
`)
	levels, err := ParseLevels(data)
	if err != nil {
		t.Fatalf("parse levels: %v", err)
	}
	if got := levels.Resolve("LIGA U", "2023/2024"); got != 3 {
		t.Fatalf("unexpected level for override: %d", got)
	}
	if got := levels.Resolve("LEB PLATA", "2023/2024"); got != 2 {
		t.Fatalf("unexpected level before boundary: %d", got)
	}
	if got := levels.Resolve("LEB PLATA", "2024/2025"); got != 3 {
		t.Fatalf("unexpected level after boundary: %d", got)
	}
	if got := levels.Resolve("ACB", "2024/2025"); got != 1 {
		t.Fatalf("defaults must survive override: %d", got)
	}

	if _, err := ParseLevels([]byte("competitions:\n  - name: X\n    level: 0\n")); err == nil {
		t.Fatalf("expected validation error")
	}
	if _, err := ParseLevels([]byte("competitions:\n  - name: X\n    level: 2\n    from_season: soon\n    level_from: 3\n")); err == nil {
		t.Fatalf("expected malformed season error")
	}
}

func TestStrength_Multiplier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level int
		want  float64
	}{
		{level: 1, want: 1.0},
		{level: 2, want: 0.90},
		{level: 3, want: 0.85},
		{level: 4, want: 0.80},
	}
	for _, tc := range tests {
		if got := StrengthOf(tc.level).Multiplier(); got != tc.want {
			t.Fatalf("level %d: got=%v want=%v", tc.level, got, tc.want)
		}
	}
}

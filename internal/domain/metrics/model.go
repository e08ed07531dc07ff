package metrics

import "github.com/riskibarqy/hoops-scout/internal/domain/cohort"

// PerformanceTier is the z-score based standing of a profile's average
// offensive rating. It is a different scale from cohort.Tier.
type PerformanceTier string

const (
	PerformanceElite        PerformanceTier = "elite"
	PerformanceVeryGood     PerformanceTier = "very_good"
	PerformanceAboveAverage PerformanceTier = "above_average"
	PerformanceAverage      PerformanceTier = "average"
	PerformanceBelowAverage PerformanceTier = "below_average"
)

// TierFromZ buckets an average z-score. A nil z is average.
func TierFromZ(z *float64) PerformanceTier {
	if z == nil {
		return PerformanceAverage
	}
	switch v := *z; {
	case v > 1.5:
		return PerformanceElite
	case v > 0.5:
		return PerformanceVeryGood
	case v > -0.5:
		return PerformanceAboveAverage
	case v > -1.5:
		return PerformanceAverage
	default:
		return PerformanceBelowAverage
	}
}

// ProfileMetrics is the season aggregate of one profile. Percentages are
// on a 0-100 scale. Nil fields are undefined for the sample.
type ProfileMetrics struct {
	ProfileID        int64
	Season           string
	TeamID           string
	CompetitionLevel int

	GamesPlayed  int
	TotalMinutes float64
	AvgMinutes   float64
	TotalPoints  int

	AvgPoints    float64
	AvgRebounds  float64
	AvgAssists   float64
	AvgSteals    float64
	AvgBlocks    float64
	AvgTurnovers float64
	AvgPlusMinus float64

	AvgFGPct           *float64
	AvgFG3Pct          *float64
	AvgFTPct           *float64
	AvgTrueShooting    *float64
	AvgEffectiveFG     *float64
	AvgOffensiveRating *float64
	AvgPER             *float64
	AvgUsage           *float64
	TotalWinShares     float64

	StdPoints          float64
	StdMinutes         float64
	StdOffensiveRating float64
	PointsCV           *float64
	StabilityIndex     *float64
	OutlierGames       int

	TrendPoints          float64
	TrendOffensiveRating float64

	PointsPer36   *float64
	ReboundsPer36 *float64
	AssistsPer36  *float64
	StealsPer36   *float64
	BlocksPer36   *float64

	Rolling5Points           *float64
	Rolling10Points          *float64
	Rolling5OffensiveRating  *float64
	Rolling10OffensiveRating *float64
	MomentumIndex            *float64

	PointsShare      *float64
	MinutesShare     *float64
	UsageShare       *float64
	EfficiencyVsTeam *float64

	AvgZOffensiveRating *float64
	AvgZPER             *float64
	AvgZMinutes         *float64
	AvgZPoints          *float64
	AvgZTrueShooting    *float64

	PerformanceTier PerformanceTier
	Percentile      int
	PercentileTier  cohort.Tier
}

// CohortKey is the comparison context of the aggregate.
func (m ProfileMetrics) CohortKey() cohort.Key {
	return cohort.Key{Level: m.CompetitionLevel, Season: m.Season}
}

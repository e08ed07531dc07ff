package potential

import (
	"fmt"
	"math"

	"github.com/riskibarqy/hoops-scout/internal/domain/cohort"
	"github.com/riskibarqy/hoops-scout/internal/domain/metrics"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/season"
)

const (
	MinGames        = 8
	MinTotalMinutes = 80.0
	MinAvgMinutes   = 8.0

	neutral = 0.5
)

// CheckEligibility applies the minimum-sample gate. Every failed rule adds
// a reason.
func CheckEligibility(games int, totalMinutes, avgMinutes float64) (bool, []string) {
	var reasons []string
	if games < MinGames {
		reasons = append(reasons, fmt.Sprintf("too few games (%d<%d)", games, MinGames))
	}
	if totalMinutes < MinTotalMinutes {
		reasons = append(reasons, fmt.Sprintf("too few total minutes (%.0f<%.0f)", totalMinutes, MinTotalMinutes))
	}
	if avgMinutes < MinAvgMinutes {
		reasons = append(reasons, fmt.Sprintf("marginal role (%.1f<%.0f min/game)", avgMinutes, MinAvgMinutes))
	}
	return len(reasons) == 0, reasons
}

func AgeScore(age *int) float64 {
	if age == nil {
		return neutral
	}
	switch a := *age; {
	case a <= 21:
		return 1.0
	case a <= 24:
		return 0.8
	case a <= 27:
		return 0.5
	case a <= 30:
		return 0.3
	default:
		return 0.1
	}
}

// PerformanceScore maps mean(z OER, z PER) from [-3,3] to [0,1] and adjusts
// for the competition level. Both z-scores are required.
func PerformanceScore(zOER, zPER *float64, level int) float64 {
	if zOER == nil || zPER == nil {
		return neutral
	}
	base := clip01(((*zOER+*zPER)/2 + 3) / 6)
	bonus := 0.0
	switch level {
	case cohort.TopLevel:
		bonus = 0.10
	case 3:
		bonus = -0.05
	}
	return math.Min(1, base*(1+bonus))
}

// ConsistencyScore prefers the points CV and falls back to the OER spread.
func ConsistencyScore(cv *float64, stdOER float64) float64 {
	switch {
	case cv != nil && *cv >= 0:
		return clip01(1 - *cv/0.8)
	case stdOER > 0:
		return clip01(1 - stdOER/50)
	default:
		return neutral
	}
}

// AdvancedScore takes TS% on a 0-100 scale.
func AdvancedScore(tsPct, efficiencyVsTeam *float64) float64 {
	if tsPct == nil {
		return neutral
	}
	base := math.Min(1, *tsPct/65)
	if efficiencyVsTeam == nil {
		return base
	}
	return clip01(base * math.Min(1.2, math.Max(0.8, *efficiencyVsTeam)))
}

func MomentumScore(momentum *float64, trend *float64) float64 {
	switch {
	case momentum != nil:
		return clip01((*momentum + 5) / 10)
	case trend != nil:
		return clip01((*trend + 2) / 4)
	default:
		return neutral
	}
}

func ProductionScore(pointsPer36, pointsShare *float64) float64 {
	if pointsPer36 == nil {
		return neutral
	}
	score := math.Min(1, *pointsPer36/20)
	if pointsShare != nil {
		score = math.Min(1, score+math.Min(0.2, *pointsShare))
	}
	return score
}

// Composite weighs components: age 20%, performance 30%, production 15%,
// consistency 15%, advanced 10%, momentum 10%.
func Composite(c Components) float64 {
	return round6(0.20*c.Age +
		0.30*c.Performance +
		0.15*c.Production +
		0.15*c.Consistency +
		0.10*c.Advanced +
		0.10*c.Momentum)
}

// TierFor buckets a composite score; each bound belongs to the upper tier.
func TierFor(score float64) Tier {
	switch {
	case score >= 0.75:
		return TierVeryHigh
	case score >= 0.60:
		return TierHigh
	case score >= 0.45:
		return TierMedium
	case score >= 0.30:
		return TierLow
	default:
		return TierVeryLow
	}
}

// TemporalWeight decays 5% per year before refYear down to 0.5. A malformed
// season weighs 1.0 and returns the parse error.
func TemporalWeight(seasonLabel string, refYear int) (float64, error) {
	s, err := season.Parse(seasonLabel)
	if err != nil {
		return 1.0, err
	}
	return math.Max(0.5, math.Min(1, 1-0.05*float64(refYear-s.StartYear))), nil
}

// AgeInSeason is the season start year minus the birth year.
func AgeInSeason(seasonLabel string, birthYear *int) (*int, error) {
	if birthYear == nil {
		return nil, nil
	}
	s, err := season.Parse(seasonLabel)
	if err != nil {
		return nil, err
	}
	age := s.StartYear - *birthYear
	return &age, nil
}

// ConfidenceMultiplier discounts small samples: 40% games, 30% total
// minutes, 30% role size.
func ConfidenceMultiplier(games int, totalMinutes, avgMinutes float64) float64 {
	var gamesConf, minutesConf, roleConf float64
	switch {
	case games >= 15:
		gamesConf = 1.0
	case games >= 10:
		gamesConf = 0.9
	case games >= 8:
		gamesConf = 0.7
	case games >= 5:
		gamesConf = 0.5
	default:
		gamesConf = 0.2
	}
	switch {
	case totalMinutes >= 200:
		minutesConf = 1.0
	case totalMinutes >= 120:
		minutesConf = 0.8
	case totalMinutes >= 80:
		minutesConf = 0.6
	default:
		minutesConf = 0.3
	}
	switch {
	case avgMinutes >= 15:
		roleConf = 1.0
	case avgMinutes >= 10:
		roleConf = 0.8
	case avgMinutes >= 5:
		roleConf = 0.5
	default:
		roleConf = 0.3
	}
	return round6(0.4*gamesConf + 0.3*minutesConf + 0.3*roleConf)
}

// Score computes the season potential of a profile. A non-nil error always
// wraps season.ErrMalformedSeason; the returned value is still complete and
// uses neutral defaults for the season-dependent parts.
func Score(p profile.Profile, m metrics.ProfileMetrics, refYear int) (ProfilePotential, error) {
	out := ProfilePotential{
		ProfileID:        p.ID,
		Season:           p.Season,
		TeamID:           p.TeamID,
		Competition:      p.Competition,
		CompetitionLevel: p.CompetitionLevel,
		GamesPlayed:      m.GamesPlayed,
		TotalMinutes:     m.TotalMinutes,
		AvgMinutes:       m.AvgMinutes,
		TemporalWeight:   1.0,
	}

	age, ageErr := AgeInSeason(p.Season, p.BirthYear)
	out.Age = age
	weight, weightErr := TemporalWeight(p.Season, refYear)
	out.TemporalWeight = weight
	var warn error
	if ageErr != nil || weightErr != nil {
		warn = fmt.Errorf("profile %d season %q: %w", p.ID, p.Season, season.ErrMalformedSeason)
	}

	out.Eligible, out.Reasons = CheckEligibility(m.GamesPlayed, m.TotalMinutes, m.AvgMinutes)
	if !out.Eligible {
		return out, warn
	}

	trend := m.TrendPoints
	c := Components{
		Age:         AgeScore(age),
		Performance: PerformanceScore(m.AvgZOffensiveRating, m.AvgZPER, p.CompetitionLevel),
		Production:  ProductionScore(m.PointsPer36, m.PointsShare),
		Consistency: ConsistencyScore(m.PointsCV, m.StdOffensiveRating),
		Advanced:    AdvancedScore(m.AvgTrueShooting, m.EfficiencyVsTeam),
		Momentum:    MomentumScore(m.MomentumIndex, &trend),
	}
	composite := Composite(c)
	confidence := ConfidenceMultiplier(m.GamesPlayed, m.TotalMinutes, m.AvgMinutes)
	score := round6(composite * (0.85 + 0.15*weight) * confidence)

	out.Components = &c
	out.Composite = &composite
	out.ConfidenceMultiplier = &confidence
	out.PotentialScore = &score
	out.Tier = TierFor(composite)
	out.Flags = flagsFor(age, c)
	return out, warn
}

func flagsFor(age *int, c Components) []Flag {
	var flags []Flag
	if age != nil && *age < 23 && c.Performance >= 0.6 {
		flags = append(flags, FlagYoungTalent)
	}
	if c.Consistency >= 0.7 && c.Performance >= 0.6 {
		flags = append(flags, FlagConsistentPerformer)
	}
	return flags
}

func clip01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

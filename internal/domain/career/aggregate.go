package career

import (
	"fmt"
	"math"
	"sort"

	"github.com/riskibarqy/hoops-scout/internal/domain/cohort"
	"github.com/riskibarqy/hoops-scout/internal/domain/potential"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/season"
)

// Member is one profile of a player together with its season potential.
type Member struct {
	Profile   profile.Profile
	Potential potential.ProfilePotential
}

// Aggregate merges a player's eligible seasons into a career potential.
// ok is false when no member has a scored eligible season. warnings holds
// one season.ErrMalformedSeason per unparsable season label; the result is
// still usable.
func Aggregate(key string, members []Member, strength TeamStrength, refYear int) (out CareerPotential, ok bool, warnings []error) {
	if len(members) == 0 {
		return CareerPotential{}, false, nil
	}

	sorted := make([]Member, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Profile.ID < sorted[j].Profile.ID })

	out.PlayerKey = key
	out.Name, out.BirthYear, out.ConsolidatedPlayerID = identityOf(sorted)
	for _, m := range sorted {
		out.ProfileIDs = append(out.ProfileIDs, m.Profile.ID)
	}

	entries := map[string]*SeasonEntry{}
	weighted := map[string]float64{}
	for _, m := range sorted {
		pot := m.Potential
		if !pot.Eligible || pot.PotentialScore == nil || pot.TotalMinutes <= 0 {
			continue
		}
		label, start := m.Profile.Season, 0
		if s, err := season.Parse(label); err == nil {
			label, start = s.String(), s.StartYear
		} else {
			warnings = append(warnings, fmt.Errorf("profile %d season %q: %w", m.Profile.ID, m.Profile.Season, season.ErrMalformedSeason))
		}

		factor := strength.Factor(m.Profile.Competition, m.Profile.Season, m.Profile.TeamID)
		adjusted := *pot.PotentialScore * (1 + 0.5*(factor-1)) * cohort.StrengthOf(m.Profile.CompetitionLevel).Multiplier()

		entry, exists := entries[label]
		if !exists {
			entry = &SeasonEntry{Season: label, StartYear: start, BestLevel: m.Profile.CompetitionLevel}
			entries[label] = entry
		}
		entry.Games += pot.GamesPlayed
		entry.Minutes += pot.TotalMinutes
		entry.Profiles++
		entry.BestLevel = min(entry.BestLevel, m.Profile.CompetitionLevel)
		weighted[label] += adjusted * pot.TotalMinutes
	}
	if len(entries) == 0 {
		return CareerPotential{}, false, warnings
	}

	// Newest first.
	seasons := make([]SeasonEntry, 0, len(entries))
	for label, entry := range entries {
		entry.Score = round6(weighted[label] / entry.Minutes)
		seasons = append(seasons, *entry)
	}
	sort.Slice(seasons, func(i, j int) bool {
		if seasons[i].StartYear != seasons[j].StartYear {
			return seasons[i].StartYear > seasons[j].StartYear
		}
		return seasons[i].Season > seasons[j].Season
	})

	out.Seasons = seasons
	out.SeasonsCount = len(seasons)
	out.LastSeason = seasons[0].Season
	out.FirstSeason = seasons[len(seasons)-1].Season
	for _, s := range seasons {
		out.TotalGames += s.Games
		out.TotalMinutes += s.Minutes
		if s.Score > out.BestSeasonScore || out.BestSeason == "" {
			out.BestSeason, out.BestSeasonScore = s.Season, s.Score
		}
	}
	if out.BirthYear != nil {
		age := refYear - *out.BirthYear
		out.CurrentAge = &age
	}

	out.CareerAvg = weightedMean(seasons)
	out.Recent = weightedMean(seasons[:min(2, len(seasons))])
	out.Trajectory = Trajectory(seasons)
	if out.Recent < 0.40 {
		out.Trajectory = math.Min(out.Trajectory, 0.40)
	}
	out.Consistency = Consistency(seasons)
	out.AgeScore = potential.AgeScore(out.CurrentAge)
	out.Confidence = Confidence(out.SeasonsCount, out.TotalGames)
	out.LevelJumpBonus = LevelJumpBonus(seasons)

	out.BaseScore = math.Min(1, 0.50*out.Recent+
		0.25*out.Trajectory+
		0.05*out.CareerAvg+
		0.10*out.AgeScore+
		0.05*out.Consistency+
		0.05*out.Confidence+
		out.LevelJumpBonus)

	out.SeasonsInactive, out.InactivityPenalty = Inactivity(out.LastSeason, refYear)
	out.UnifiedScore = round6(out.BaseScore * (1 - out.InactivityPenalty))
	out.Tier = TierFor(out.UnifiedScore)
	out.Flags = flagsFor(out)

	out.CareerAvg = round6(out.CareerAvg)
	out.Recent = round6(out.Recent)
	out.Trajectory = round6(out.Trajectory)
	out.Consistency = round6(out.Consistency)
	out.BaseScore = round6(out.BaseScore)
	return out, true, warnings
}

// identityOf takes the name of the most recent profile and any known birth
// year or consolidated id.
func identityOf(members []Member) (string, *int, *int64) {
	var (
		name      string
		nameYear  = math.MinInt
		birthYear *int
		playerID  *int64
	)
	for _, m := range members {
		year := 0
		if s, err := season.Parse(m.Profile.Season); err == nil {
			year = s.StartYear
		}
		if year > nameYear {
			name, nameYear = m.Profile.Name, year
		}
		if birthYear == nil && m.Profile.BirthYear != nil {
			birthYear = m.Profile.BirthYear
		}
		if playerID == nil && m.Profile.IsConsolidated {
			playerID = m.Profile.ConsolidatedPlayerID
		}
	}
	return name, birthYear, playerID
}

func weightedMean(seasons []SeasonEntry) float64 {
	var sum, minutes float64
	for _, s := range seasons {
		sum += s.Score * s.Minutes
		minutes += s.Minutes
	}
	if minutes == 0 {
		return 0.5
	}
	return sum / minutes
}

// Trajectory expects seasons newest first.
func Trajectory(seasons []SeasonEntry) float64 {
	n := len(seasons)
	chrono := make([]float64, n)
	for i, s := range seasons {
		chrono[n-1-i] = s.Score
	}

	switch {
	case n >= 3:
		recent := mean(chrono[n-2:])
		older := mean(chrono[:n-2])
		var fromDelta float64
		switch delta := recent - older; {
		case delta > 0.10:
			fromDelta = 0.95
		case delta > 0.05:
			fromDelta = 0.80
		case delta > 0.02:
			fromDelta = 0.65
		case delta > -0.02:
			fromDelta = 0.50
		default:
			fromDelta = 0.30
		}
		fromSlope := clip01(slope(chrono)/0.15*0.5 + 0.5)
		return 0.70*fromDelta + 0.30*fromSlope
	case n == 2:
		switch delta := chrono[1] - chrono[0]; {
		case delta > 0.10:
			return 0.90
		case delta > 0.05:
			return 0.75
		case delta > 0.02:
			return 0.65
		case delta > -0.02:
			return 0.50
		case delta > -0.05:
			return 0.35
		default:
			return 0.20
		}
	default:
		return 0.50
	}
}

func Consistency(seasons []SeasonEntry) float64 {
	if len(seasons) < 2 {
		return 0.5
	}
	scores := make([]float64, len(seasons))
	for i, s := range seasons {
		scores[i] = s.Score
	}
	m := mean(scores)
	variance := 0.0
	for _, v := range scores {
		variance += (v - m) * (v - m)
	}
	std := math.Sqrt(variance / float64(len(scores)))
	return math.Max(0, 1-std/0.5)
}

func Confidence(seasons, games int) float64 {
	switch {
	case seasons >= 4 && games >= 50:
		return 1.0
	case seasons >= 3 && games >= 30:
		return 0.95
	case seasons >= 2 && games >= 20:
		return 0.90
	case seasons >= 2 && games >= 10:
		return 0.85
	case seasons >= 1 && games >= 15:
		return 0.75
	default:
		return 0.60
	}
}

// LevelJumpBonus rewards a rise in the best level reached in the two most
// recent seasons over every earlier season. Level 1 is the top tier.
func LevelJumpBonus(seasons []SeasonEntry) float64 {
	if len(seasons) <= 2 {
		return 0
	}
	recent := math.MaxInt
	for _, s := range seasons[:2] {
		recent = min(recent, s.BestLevel)
	}
	past := math.MaxInt
	for _, s := range seasons[2:] {
		past = min(past, s.BestLevel)
	}
	switch jump := past - recent; {
	case jump >= 2:
		return 0.15
	case jump >= 1:
		return 0.08
	default:
		return 0
	}
}

// Inactivity counts seasons since lastSeason ended and returns the score
// penalty. Malformed seasons get no penalty.
func Inactivity(lastSeason string, refYear int) (int, float64) {
	s, err := season.Parse(lastSeason)
	if err != nil {
		return 0, 0
	}
	switch inactive := refYear - s.EndYear(); {
	case inactive <= 0:
		return 0, 0
	case inactive == 1:
		return 1, 0.15
	case inactive == 2:
		return 2, 0.35
	default:
		return inactive, 0.60
	}
}

// TierFor buckets a unified score; each bound belongs to the upper tier.
func TierFor(score float64) Tier {
	switch {
	case score >= 0.70:
		return TierElite
	case score >= 0.60:
		return TierVeryHigh
	case score >= 0.50:
		return TierHigh
	case score >= 0.40:
		return TierMedium
	default:
		return TierLow
	}
}

func flagsFor(c CareerPotential) []Flag {
	var flags []Flag
	age := c.CurrentAge
	if c.SeasonsCount >= 2 && age != nil && *age <= 24 &&
		c.Recent > c.CareerAvg+0.02 && c.Trajectory >= 0.55 && c.Recent >= 0.45 {
		flags = append(flags, FlagRisingStar)
	}
	if c.SeasonsCount >= 3 && c.CareerAvg >= 0.50 && c.Consistency >= 0.7 && c.Recent >= 0.45 {
		flags = append(flags, FlagEstablishedTalent)
	}
	if c.Recent >= 0.55 && (c.Recent > c.CareerAvg*1.05 || c.Recent >= 0.65) &&
		age != nil && *age >= 22 && *age <= 29 {
		flags = append(flags, FlagPeakPerformer)
	}
	return flags
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// slope is the least-squares slope of values over their index.
func slope(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / den
}

func clip01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

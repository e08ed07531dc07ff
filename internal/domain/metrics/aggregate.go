package metrics

import (
	"math"
	"sort"

	"github.com/riskibarqy/hoops-scout/internal/domain/cohort"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/boxscore"
)

// OutlierZ is the |z| above which a game is an outlier within the
// profile's own points series.
const OutlierZ = 2.5

// TeamKey identifies a roster in a season.
type TeamKey struct {
	TeamID string
	Season string
}

// TeamTotals is the season context of a roster used for share ratios.
type TeamTotals struct {
	Points          int
	Minutes         float64
	AvgTrueShooting *float64
	AvgUsage        *float64
}

// BuildTeamTotals sums every profile's games into its roster totals.
func BuildTeamTotals(profiles []profile.Profile, games map[int64][]profile.GameStat) map[TeamKey]TeamTotals {
	type acc struct {
		points  int
		minutes float64
		ts      series
		usage   series
	}
	accs := make(map[TeamKey]*acc)
	for _, p := range profiles {
		if p.TeamID == "" {
			continue
		}
		key := TeamKey{TeamID: p.TeamID, Season: p.Season}
		a, ok := accs[key]
		if !ok {
			a = &acc{}
			accs[key] = a
		}
		for _, g := range games[p.ID] {
			a.points += g.Points
			a.minutes += g.Minutes
			a.ts.addOpt(trueShootingPct(g))
			a.usage.addOpt(usage(g))
		}
	}

	out := make(map[TeamKey]TeamTotals, len(accs))
	for key, a := range accs {
		out[key] = TeamTotals{
			Points:          a.points,
			Minutes:         a.minutes,
			AvgTrueShooting: a.ts.mean(),
			AvgUsage:        a.usage.mean(),
		}
	}
	return out
}

// ObserveGames feeds a profile's games into the cohort builder.
func ObserveGames(b *cohort.Builder, key cohort.Key, games []profile.GameStat) {
	for _, g := range games {
		if v := offensiveRating(g); v != nil {
			b.Add(key, g.Minutes, cohort.MetricOffensiveRating, *v)
		}
		if v := per(g); v != nil {
			b.Add(key, g.Minutes, cohort.MetricPER, *v)
		}
		if v := trueShootingPct(g); v != nil {
			b.Add(key, g.Minutes, cohort.MetricTrueShooting, *v)
		}
		b.Add(key, g.Minutes, cohort.MetricMinutes, g.Minutes)
		b.Add(key, g.Minutes, cohort.MetricPoints, float64(g.Points))
	}
}

// Aggregate computes a profile's season metrics. It does not modify games.
func Aggregate(p profile.Profile, games []profile.GameStat, team TeamTotals, baselines *cohort.Baselines) ProfileMetrics {
	ordered := make([]profile.GameStat, len(games))
	copy(ordered, games)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].GameDate.Equal(ordered[j].GameDate) {
			return ordered[i].GameDate.Before(ordered[j].GameDate)
		}
		return ordered[i].GameID < ordered[j].GameID
	})

	out := ProfileMetrics{
		ProfileID:        p.ID,
		Season:           p.Season,
		TeamID:           p.TeamID,
		CompetitionLevel: p.CompetitionLevel,
		GamesPlayed:      len(ordered),
		PerformanceTier:  PerformanceAverage,
		Percentile:       50,
		PercentileTier:   cohort.PercentileTier(50),
	}
	if len(ordered) == 0 {
		return out
	}

	key := cohort.Key{Level: p.CompetitionLevel, Season: p.Season}
	var (
		points, minutes, oer            series
		fg, fg3, ft, ts, efg, perS, usg series
		zOER, zPER, zMin, zPts, zTS     series
		reb, ast, stl, blk, tov, pm     float64
	)
	for _, g := range ordered {
		pts := float64(g.Points)
		points.add(pts)
		minutes.add(g.Minutes)
		out.TotalPoints += g.Points
		out.TotalMinutes += g.Minutes
		reb += float64(g.Rebounds())
		ast += float64(g.Assists)
		stl += float64(g.Steals)
		blk += float64(g.Blocks)
		tov += float64(g.Turnovers)
		pm += float64(g.PlusMinus)

		if g.FGA > 0 {
			fg.add(float64(g.FGM) / float64(g.FGA) * 100)
		}
		if g.FG3A > 0 {
			fg3.add(float64(g.FG3M) / float64(g.FG3A) * 100)
		}
		if g.FTA > 0 {
			ft.add(float64(g.FTM) / float64(g.FTA) * 100)
		}

		gameOER := offensiveRating(g)
		gamePER := per(g)
		gameTS := trueShootingPct(g)
		oer.addOpt(gameOER)
		perS.addOpt(gamePER)
		ts.addOpt(gameTS)
		efg.addOpt(scale100(effectiveFG(g)))
		usg.addOpt(usage(g))
		if ws := winShares(g); ws != nil {
			out.TotalWinShares += *ws
		}

		if gameOER != nil {
			zOER.addOpt(baselines.Z(key, cohort.MetricOffensiveRating, *gameOER))
		}
		if gamePER != nil {
			zPER.addOpt(baselines.Z(key, cohort.MetricPER, *gamePER))
		}
		if gameTS != nil {
			zTS.addOpt(baselines.Z(key, cohort.MetricTrueShooting, *gameTS))
		}
		zMin.addOpt(baselines.Z(key, cohort.MetricMinutes, g.Minutes))
		zPts.addOpt(baselines.Z(key, cohort.MetricPoints, pts))
	}

	n := float64(len(ordered))
	out.AvgMinutes = out.TotalMinutes / n
	out.AvgPoints = float64(out.TotalPoints) / n
	out.AvgRebounds = reb / n
	out.AvgAssists = ast / n
	out.AvgSteals = stl / n
	out.AvgBlocks = blk / n
	out.AvgTurnovers = tov / n
	out.AvgPlusMinus = pm / n

	out.AvgFGPct = fg.mean()
	out.AvgFG3Pct = fg3.mean()
	out.AvgFTPct = ft.mean()
	out.AvgTrueShooting = ts.mean()
	out.AvgEffectiveFG = efg.mean()
	out.AvgOffensiveRating = oer.mean()
	out.AvgPER = perS.mean()
	out.AvgUsage = usg.mean()

	out.StdPoints = stdOf(points.values)
	out.StdMinutes = stdOf(minutes.values)
	out.StdOffensiveRating = stdOf(oer.values)
	if out.AvgPoints > 0 && out.StdPoints > 0 {
		cv := out.StdPoints / out.AvgPoints
		out.PointsCV = &cv
	}
	stability := out.StdPoints / math.Sqrt(n)
	out.StabilityIndex = &stability
	out.OutlierGames = countOutliers(points.values, out.AvgPoints, out.StdPoints)

	out.TrendPoints = slopeOf(points.values)
	out.TrendOffensiveRating = slopeOf(oer.values)

	out.PointsPer36 = per36(float64(out.TotalPoints), out.TotalMinutes)
	out.ReboundsPer36 = per36(reb, out.TotalMinutes)
	out.AssistsPer36 = per36(ast, out.TotalMinutes)
	out.StealsPer36 = per36(stl, out.TotalMinutes)
	out.BlocksPer36 = per36(blk, out.TotalMinutes)

	out.Rolling5Points = tailMean(points.values, 5)
	out.Rolling10Points = tailMean(points.values, 10)
	out.Rolling5OffensiveRating = tailMean(oer.values, 5)
	out.Rolling10OffensiveRating = tailMean(oer.values, 10)
	if out.Rolling5Points != nil && out.Rolling10Points != nil {
		m := *out.Rolling5Points - *out.Rolling10Points
		out.MomentumIndex = &m
	}

	out.PointsShare = ratio(float64(out.TotalPoints), float64(team.Points))
	out.MinutesShare = ratio(out.TotalMinutes, team.Minutes)
	if out.AvgUsage != nil && team.AvgUsage != nil {
		out.UsageShare = ratio(*out.AvgUsage, *team.AvgUsage)
	}
	if out.AvgTrueShooting != nil && team.AvgTrueShooting != nil {
		out.EfficiencyVsTeam = ratio(*out.AvgTrueShooting, *team.AvgTrueShooting)
	}

	out.AvgZOffensiveRating = zOER.mean()
	out.AvgZPER = zPER.mean()
	out.AvgZMinutes = zMin.mean()
	out.AvgZPoints = zPts.mean()
	out.AvgZTrueShooting = zTS.mean()

	out.PerformanceTier = TierFromZ(out.AvgZOffensiveRating)
	out.Percentile = cohort.Percentile(out.AvgZOffensiveRating)
	out.PercentileTier = cohort.PercentileTier(out.Percentile)
	return out
}

func countOutliers(values []float64, mean, std float64) int {
	if std == 0 {
		return 0
	}
	count := 0
	for _, v := range values {
		if math.Abs((v-mean)/std) > OutlierZ {
			count++
		}
	}
	return count
}

// Per-game advanced values prefer what ingestion stored and fall back to
// computing from the line.

func offensiveRating(g profile.GameStat) *float64 {
	if g.Advanced.OffensiveRating != nil {
		return g.Advanced.OffensiveRating
	}
	return opt(boxscore.OffensiveRating(g.Line()))
}

func per(g profile.GameStat) *float64 {
	if g.Advanced.PER != nil {
		return g.Advanced.PER
	}
	return opt(boxscore.PER(g.Line()))
}

func trueShootingPct(g profile.GameStat) *float64 {
	if g.Advanced.TrueShootingPct != nil {
		return scale100(g.Advanced.TrueShootingPct)
	}
	return scale100(opt(boxscore.TrueShooting(g.Line())))
}

func effectiveFG(g profile.GameStat) *float64 {
	if g.Advanced.EffectiveFGPct != nil {
		return g.Advanced.EffectiveFGPct
	}
	return opt(boxscore.EffectiveFG(g.Line()))
}

func usage(g profile.GameStat) *float64 {
	if g.Advanced.UsageRate != nil {
		return g.Advanced.UsageRate
	}
	return opt(boxscore.Usage(g.Line(), nil))
}

func winShares(g profile.GameStat) *float64 {
	if g.Advanced.WinShares != nil {
		return g.Advanced.WinShares
	}
	return opt(boxscore.WinShares(g.Line()))
}

func scale100(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v * 100
	return &out
}

func opt(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

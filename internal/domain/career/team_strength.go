package career

import (
	"math"

	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
)

const (
	minTeamGames     = 3
	minTeamsInLeague = 3
	minWinPctStdDev  = 0.01
	teamStrengthAmp  = 0.06
)

type teamKey struct {
	competition string
	season      string
	teamID      string
}

// TeamStrength maps a roster to a multiplicative factor around 1.0 derived
// from its win percentage relative to its league season.
type TeamStrength struct {
	factors map[teamKey]float64
}

// BuildTeamStrength needs at least three teams with three games in a league
// season and a non-trivial win% spread; otherwise every team there is 1.0.
func BuildTeamStrength(records []profile.TeamRecord) TeamStrength {
	type league struct {
		competition string
		season      string
	}
	groups := make(map[league][]profile.TeamRecord)
	for _, r := range records {
		if r.Games < minTeamGames {
			continue
		}
		k := league{competition: r.Competition, season: r.Season}
		groups[k] = append(groups[k], r)
	}

	out := TeamStrength{factors: make(map[teamKey]float64)}
	for k, teams := range groups {
		if len(teams) < minTeamsInLeague {
			continue
		}
		pcts := make([]float64, len(teams))
		mean := 0.0
		for i, team := range teams {
			pcts[i] = float64(team.Wins) / float64(team.Games)
			mean += pcts[i]
		}
		mean /= float64(len(pcts))
		variance := 0.0
		for _, p := range pcts {
			variance += (p - mean) * (p - mean)
		}
		std := math.Sqrt(variance / float64(len(pcts)))
		if std < minWinPctStdDev {
			continue
		}
		for i, team := range teams {
			z := math.Max(-2, math.Min(2, (pcts[i]-mean)/std))
			out.factors[teamKey{competition: k.competition, season: k.season, teamID: team.TeamID}] = 1 + teamStrengthAmp*math.Tanh(z)
		}
	}
	return out
}

func (t TeamStrength) Factor(competition, season, teamID string) float64 {
	if f, ok := t.factors[teamKey{competition: competition, season: season, teamID: teamID}]; ok {
		return f
	}
	return 1.0
}

// Package boxscore computes per-game efficiency metrics from a box-score line.
// Every function reports ok=false instead of dividing by zero.
package boxscore

// Line is a single player's box score for one game.
type Line struct {
	Minutes   float64
	Points    int
	FGM       int
	FGA       int
	FG3M      int
	FG3A      int
	FTM       int
	FTA       int
	OffReb    int
	DefReb    int
	TotalReb  int
	Assists   int
	Steals    int
	Blocks    int
	Turnovers int
}

// TeamContext carries team and opponent totals for the same game.
type TeamContext struct {
	Minutes        float64
	FGA            int
	FTA            int
	Turnovers      int
	OffReb         int
	DefReb         int
	OpponentOffReb int
	OpponentDefReb int
}

// Advanced bundles every derived metric. Nil means undefined.
type Advanced struct {
	TrueShootingPct     *float64
	EffectiveFGPct      *float64
	TurnoverPct         *float64
	FreeThrowRate       *float64
	AssistToTurnover    *float64
	OffensiveRating     *float64
	PER                 *float64
	UsageRate           *float64
	OffensiveReboundPct *float64
	DefensiveReboundPct *float64
	WinShares           *float64
	WinSharesPer36      *float64
}

func TrueShooting(l Line) (float64, bool) {
	den := 2 * (float64(l.FGA) + 0.44*float64(l.FTA))
	if den == 0 {
		return 0, false
	}
	return float64(l.Points) / den, true
}

func EffectiveFG(l Line) (float64, bool) {
	if l.FGA == 0 {
		return 0, false
	}
	return (float64(l.FGM) + 0.5*float64(l.FG3M)) / float64(l.FGA), true
}

func TurnoverPct(l Line) (float64, bool) {
	den := float64(l.FGA) + 0.44*float64(l.FTA) + float64(l.Turnovers)
	if den == 0 {
		return 0, false
	}
	return float64(l.Turnovers) / den, true
}

func FreeThrowRate(l Line) (float64, bool) {
	if l.FGA == 0 {
		return 0, false
	}
	return float64(l.FTA) / float64(l.FGA), true
}

// AssistToTurnover returns the raw assist count when there are no turnovers.
func AssistToTurnover(l Line) (float64, bool) {
	if l.Turnovers == 0 {
		if l.Assists == 0 {
			return 0, false
		}
		return float64(l.Assists), true
	}
	return float64(l.Assists) / float64(l.Turnovers), true
}

func possessions(l Line) float64 {
	return float64(l.FGA) + 0.44*float64(l.FTA) + float64(l.Turnovers)
}

// OffensiveRating estimates points produced per 100 individual possessions.
func OffensiveRating(l Line) (float64, bool) {
	poss := possessions(l)
	if poss == 0 {
		return 0, false
	}
	return float64(l.Points) / poss * 100, true
}

// PER is a simplified efficiency rating without pace or league adjustment.
func PER(l Line) (float64, bool) {
	if l.Minutes <= 0 {
		return 0, false
	}
	positive := float64(l.Points + rebounds(l) + l.Assists + l.Steals + l.Blocks)
	negative := float64((l.FGA - l.FGM) + (l.FTA - l.FTM) + l.Turnovers)
	return (positive - negative) / l.Minutes * 15, true
}

// Usage uses the team formula when team totals are present and falls back
// to individual possessions per minute otherwise.
func Usage(l Line, team *TeamContext) (float64, bool) {
	if l.Minutes <= 0 {
		return 0, false
	}
	poss := possessions(l)
	if team != nil && team.Minutes > 0 {
		teamPoss := float64(team.FGA) + 0.44*float64(team.FTA) + float64(team.Turnovers)
		if teamPoss == 0 {
			return 0, false
		}
		return 100 * (poss * (team.Minutes / 5)) / (l.Minutes * teamPoss), true
	}
	return poss / l.Minutes * 100, true
}

// ReboundPcts needs team and opponent rebounds; without them both are undefined.
func ReboundPcts(l Line, team *TeamContext) (orb *float64, drb *float64) {
	if team == nil {
		return nil, nil
	}
	adjust := 1.0
	if l.Minutes > 0 && team.Minutes > 0 {
		adjust = team.Minutes / (5 * l.Minutes)
	}
	if den := team.OffReb + team.OpponentDefReb; den > 0 {
		v := float64(l.OffReb) / float64(den) * adjust
		orb = &v
	}
	if den := team.DefReb + team.OpponentOffReb; den > 0 {
		v := float64(l.DefReb) / float64(den) * adjust
		drb = &v
	}
	return orb, drb
}

func WinShares(l Line) (float64, bool) {
	per, ok := PER(l)
	if !ok {
		return 0, false
	}
	return per * l.Minutes / 40 / 100, true
}

func WinSharesPer36(l Line) (float64, bool) {
	ws, ok := WinShares(l)
	if !ok {
		return 0, false
	}
	return ws * 36 / l.Minutes, true
}

// Compute evaluates every metric for a line. team may be nil.
func Compute(l Line, team *TeamContext) Advanced {
	out := Advanced{
		TrueShootingPct:  opt(TrueShooting(l)),
		EffectiveFGPct:   opt(EffectiveFG(l)),
		TurnoverPct:      opt(TurnoverPct(l)),
		FreeThrowRate:    opt(FreeThrowRate(l)),
		AssistToTurnover: opt(AssistToTurnover(l)),
		OffensiveRating:  opt(OffensiveRating(l)),
		PER:              opt(PER(l)),
		UsageRate:        opt(Usage(l, team)),
		WinShares:        opt(WinShares(l)),
		WinSharesPer36:   opt(WinSharesPer36(l)),
	}
	out.OffensiveReboundPct, out.DefensiveReboundPct = ReboundPcts(l, team)
	return out
}

func rebounds(l Line) int {
	if l.TotalReb > 0 {
		return l.TotalReb
	}
	return l.OffReb + l.DefReb
}

func opt(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}

package profile

import (
	"time"

	"github.com/riskibarqy/hoops-scout/internal/platform/boxscore"
)

// GameRow is one canonical per-game stat row as delivered by the ingestion
// feed, before it is attached to a profile.
type GameRow struct {
	PlayerName    string
	BirthYear     *int
	TeamID        string
	TeamName      string
	Season        string
	Competition   string
	GameID        string
	GameDate      time.Time
	Minutes       float64
	Points        int
	FGM           int
	FGA           int
	FG3M          int
	FG3A          int
	FTM           int
	FTA           int
	OffReb        int
	DefReb        int
	TotalReb      int
	Assists       int
	Steals        int
	Blocks        int
	Turnovers     int
	Fouls         int
	PlusMinus     int
	Starter       bool
	TeamScore     *int
	OpponentScore *int
	// Team is optional team and opponent totals for the same game.
	Team *boxscore.TeamContext
}

// GameStat converts the row into the stored shape for profileID and
// computes its advanced metrics.
func (r GameRow) GameStat(profileID int64) GameStat {
	out := GameStat{
		ProfileID:     profileID,
		GameID:        r.GameID,
		GameDate:      r.GameDate,
		Minutes:       r.Minutes,
		Points:        r.Points,
		FGM:           r.FGM,
		FGA:           r.FGA,
		FG3M:          r.FG3M,
		FG3A:          r.FG3A,
		FTM:           r.FTM,
		FTA:           r.FTA,
		OffReb:        r.OffReb,
		DefReb:        r.DefReb,
		TotalReb:      r.TotalReb,
		Assists:       r.Assists,
		Steals:        r.Steals,
		Blocks:        r.Blocks,
		Turnovers:     r.Turnovers,
		Fouls:         r.Fouls,
		PlusMinus:     r.PlusMinus,
		Starter:       r.Starter,
		TeamScore:     r.TeamScore,
		OpponentScore: r.OpponentScore,
	}
	out.Advanced = boxscore.Compute(out.Line(), r.Team)
	return out
}

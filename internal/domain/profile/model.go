package profile

import (
	"strconv"
	"time"

	"github.com/riskibarqy/hoops-scout/internal/platform/boxscore"
)

// Profile is one season-scoped appearance of a player on a team.
// Unique on (NameNormalized, TeamID, Season).
type Profile struct {
	ID                   int64
	Name                 string
	NameNormalized       string
	TeamID               string
	TeamName             string
	Season               string
	Competition          string
	CompetitionLevel     int
	BirthYear            *int
	ConsolidatedPlayerID *int64
	IsConsolidated       bool
	GamesPlayed          int
	TotalMinutes         float64
	TotalPoints          int
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CareerKey groups profiles that belong to the same real player: the
// consolidated id when present, otherwise normalized name plus birth year.
func (p Profile) CareerKey() string {
	if p.IsConsolidated && p.ConsolidatedPlayerID != nil {
		return "cp-" + strconv.FormatInt(*p.ConsolidatedPlayerID, 10)
	}
	birth := "?"
	if p.BirthYear != nil {
		birth = strconv.Itoa(*p.BirthYear)
	}
	return p.NameNormalized + "|" + birth
}

// GameStat is the canonical per-game box-score row of a profile.
type GameStat struct {
	ProfileID     int64
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
	Advanced      boxscore.Advanced
}

func (g GameStat) Line() boxscore.Line {
	return boxscore.Line{
		Minutes:   g.Minutes,
		Points:    g.Points,
		FGM:       g.FGM,
		FGA:       g.FGA,
		FG3M:      g.FG3M,
		FG3A:      g.FG3A,
		FTM:       g.FTM,
		FTA:       g.FTA,
		OffReb:    g.OffReb,
		DefReb:    g.DefReb,
		TotalReb:  g.TotalReb,
		Assists:   g.Assists,
		Steals:    g.Steals,
		Blocks:    g.Blocks,
		Turnovers: g.Turnovers,
	}
}

// Rebounds prefers the reported total and falls back to off+def.
func (g GameStat) Rebounds() int {
	if g.TotalReb > 0 {
		return g.TotalReb
	}
	return g.OffReb + g.DefReb
}

// Won reports the game result when both scores are known.
func (g GameStat) Won() (won bool, known bool) {
	if g.TeamScore == nil || g.OpponentScore == nil {
		return false, false
	}
	return *g.TeamScore > *g.OpponentScore, true
}

// Filter narrows profile listings. Zero value lists everything.
type Filter struct {
	Season             string
	OnlyUnconsolidated bool
	IDs                []int64
}

// Assignment links a profile to a consolidated player.
type Assignment struct {
	ProfileID            int64
	ConsolidatedPlayerID int64
}

// TeamRecord is a team's win/loss record in a competition season.
type TeamRecord struct {
	Competition string
	Season      string
	TeamID      string
	Games       int
	Wins        int
}

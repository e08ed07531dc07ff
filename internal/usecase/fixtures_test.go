package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
)

type sliceSource []profile.GameRow

func (s sliceSource) Stream(ctx context.Context, fn func(profile.GameRow) error) error {
	for _, row := range s {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

func intPtr(v int) *int { return &v }

type seasonSpec struct {
	name        string
	birthYear   *int
	teamID      string
	season      string
	competition string
	games       int
	minutes     float64
	basePoints  int
}

// seasonRows builds deterministic box scores for one player season.
func seasonRows(spec seasonSpec) []profile.GameRow {
	start := time.Date(2020, time.October, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]profile.GameRow, 0, spec.games)
	for i := 0; i < spec.games; i++ {
		points := spec.basePoints + i%7
		fgm := points / 3
		teamScore := 80 + i%9
		opponentScore := 74 + (i*5)%15
		rows = append(rows, profile.GameRow{
			PlayerName:    spec.name,
			BirthYear:     spec.birthYear,
			TeamID:        spec.teamID,
			TeamName:      "Team " + spec.teamID,
			Season:        spec.season,
			Competition:   spec.competition,
			GameID:        fmt.Sprintf("%s-%s-%02d", spec.teamID, spec.season, i),
			GameDate:      start.AddDate(0, 0, 7*i),
			Minutes:       spec.minutes + float64(i%5),
			Points:        points,
			FGM:           fgm,
			FGA:           fgm*2 + 1,
			FG3M:          1,
			FG3A:          3,
			FTM:           2,
			FTA:           3,
			OffReb:        1,
			DefReb:        4,
			TotalReb:      5,
			Assists:       2 + i%3,
			Steals:        1,
			Blocks:        i % 2,
			Turnovers:     2,
			Fouls:         2,
			PlusMinus:     teamScore - opponentScore,
			Starter:       i%2 == 0,
			TeamScore:     intPtr(teamScore),
			OpponentScore: intPtr(opponentScore),
		})
	}
	return rows
}

// leagueRows is a small league: one player seen under two name spellings in
// consecutive seasons, a few teammates and one player below the game gate.
func leagueRows() []profile.GameRow {
	specs := []seasonSpec{
		{name: "Juan Pérez", birthYear: intPtr(2002), teamID: "T1", season: "2022/2023", competition: "LEB ORO", games: 12, minutes: 18, basePoints: 9},
		{name: "J. Perez", birthYear: intPtr(2002), teamID: "T1", season: "2023/24", competition: "LEB ORO", games: 14, minutes: 24, basePoints: 13},
		{name: "Marc Gasol", birthYear: intPtr(1999), teamID: "T2", season: "2023/2024", competition: "LEB ORO", games: 16, minutes: 28, basePoints: 15},
		{name: "Pau Ribas", birthYear: intPtr(2000), teamID: "T3", season: "2023/2024", competition: "LEB ORO", games: 10, minutes: 16, basePoints: 6},
		{name: "Luis Santos", teamID: "T3", season: "2023/2024", competition: "LEB ORO", games: 5, minutes: 12, basePoints: 4},
		{name: "Ana Torres", birthYear: intPtr(2004), teamID: "F1", season: "2023/2024", competition: "LIGA FEMENINA", games: 11, minutes: 21, basePoints: 11},
	}
	var rows []profile.GameRow
	for _, spec := range specs {
		rows = append(rows, seasonRows(spec)...)
	}
	return rows
}

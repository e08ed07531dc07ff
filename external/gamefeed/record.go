package gamefeed

import (
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/boxscore"
)

// record is one JSON line of the canonical game-row feed.
type record struct {
	PlayerName    string       `json:"player_name" validate:"required"`
	BirthYear     *int         `json:"birth_year" validate:"omitempty,gte=1900,lte=2100"`
	TeamID        string       `json:"team_id" validate:"required"`
	TeamName      string       `json:"team_name"`
	Season        string       `json:"season" validate:"required"`
	Competition   string       `json:"competition"`
	GameID        string       `json:"game_id" validate:"required"`
	GameDate      string       `json:"game_date" validate:"required"`
	Minutes       float64      `json:"minutes" validate:"gte=0,lte=80"`
	Points        int          `json:"points" validate:"gte=0"`
	FGM           int          `json:"fgm" validate:"gte=0"`
	FGA           int          `json:"fga" validate:"gte=0,gtefield=FGM"`
	FG3M          int          `json:"fg3m" validate:"gte=0"`
	FG3A          int          `json:"fg3a" validate:"gte=0,gtefield=FG3M"`
	FTM           int          `json:"ftm" validate:"gte=0"`
	FTA           int          `json:"fta" validate:"gte=0,gtefield=FTM"`
	OffReb        int          `json:"off_reb" validate:"gte=0"`
	DefReb        int          `json:"def_reb" validate:"gte=0"`
	TotalReb      int          `json:"total_reb" validate:"gte=0"`
	Assists       int          `json:"assists" validate:"gte=0"`
	Steals        int          `json:"steals" validate:"gte=0"`
	Blocks        int          `json:"blocks" validate:"gte=0"`
	Turnovers     int          `json:"turnovers" validate:"gte=0"`
	Fouls         int          `json:"fouls" validate:"gte=0"`
	PlusMinus     int          `json:"plus_minus"`
	Starter       bool         `json:"starter"`
	TeamScore     *int         `json:"team_score" validate:"omitempty,gte=0"`
	OpponentScore *int         `json:"opponent_score" validate:"omitempty,gte=0"`
	Team          *teamContext `json:"team" validate:"omitempty"`
}

type teamContext struct {
	Minutes        float64 `json:"minutes" validate:"gte=0"`
	FGA            int     `json:"fga" validate:"gte=0"`
	FTA            int     `json:"fta" validate:"gte=0"`
	Turnovers      int     `json:"turnovers" validate:"gte=0"`
	OffReb         int     `json:"off_reb" validate:"gte=0"`
	DefReb         int     `json:"def_reb" validate:"gte=0"`
	OpponentOffReb int     `json:"opponent_off_reb" validate:"gte=0"`
	OpponentDefReb int     `json:"opponent_def_reb" validate:"gte=0"`
}

var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02", "02/01/2006"}

func parseGameDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, crerr.Newf("unrecognized game date %q", raw)
}

func (r record) toGameRow() (profile.GameRow, error) {
	date, err := parseGameDate(r.GameDate)
	if err != nil {
		return profile.GameRow{}, err
	}

	row := profile.GameRow{
		PlayerName:    strings.TrimSpace(r.PlayerName),
		BirthYear:     r.BirthYear,
		TeamID:        strings.TrimSpace(r.TeamID),
		TeamName:      strings.TrimSpace(r.TeamName),
		Season:        strings.TrimSpace(r.Season),
		Competition:   strings.TrimSpace(r.Competition),
		GameID:        strings.TrimSpace(r.GameID),
		GameDate:      date,
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
	if r.Team != nil {
		row.Team = &boxscore.TeamContext{
			Minutes:        r.Team.Minutes,
			FGA:            r.Team.FGA,
			FTA:            r.Team.FTA,
			Turnovers:      r.Team.Turnovers,
			OffReb:         r.Team.OffReb,
			DefReb:         r.Team.DefReb,
			OpponentOffReb: r.Team.OpponentOffReb,
			OpponentDefReb: r.Team.OpponentDefReb,
		}
	}
	return row, nil
}

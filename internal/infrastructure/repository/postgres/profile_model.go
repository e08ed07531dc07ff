package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/boxscore"
)

type profileTableModel struct {
	ID                   int64         `db:"id"`
	Name                 string        `db:"name"`
	NameNormalized       string        `db:"name_normalized"`
	TeamID               string        `db:"team_id"`
	TeamName             string        `db:"team_name"`
	Season               string        `db:"season"`
	Competition          string        `db:"competition"`
	CompetitionLevel     int           `db:"competition_level"`
	BirthYear            sql.NullInt64 `db:"birth_year"`
	ConsolidatedPlayerID sql.NullInt64 `db:"consolidated_player_id"`
	IsConsolidated       bool          `db:"is_consolidated"`
	GamesPlayed          int           `db:"games_played"`
	TotalMinutes         float64       `db:"total_minutes"`
	TotalPoints          int           `db:"total_points"`
	CreatedAt            time.Time     `db:"created_at"`
	UpdatedAt            time.Time     `db:"updated_at"`
}

func (m profileTableModel) toDomain() profile.Profile {
	return profile.Profile{
		ID:                   m.ID,
		Name:                 m.Name,
		NameNormalized:       m.NameNormalized,
		TeamID:               m.TeamID,
		TeamName:             m.TeamName,
		Season:               m.Season,
		Competition:          m.Competition,
		CompetitionLevel:     m.CompetitionLevel,
		BirthYear:            intPtrFromNull(m.BirthYear),
		ConsolidatedPlayerID: int64PtrFromNull(m.ConsolidatedPlayerID),
		IsConsolidated:       m.IsConsolidated,
		GamesPlayed:          m.GamesPlayed,
		TotalMinutes:         m.TotalMinutes,
		TotalPoints:          m.TotalPoints,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

type profileInsertModel struct {
	Name             string        `db:"name"`
	NameNormalized   string        `db:"name_normalized"`
	TeamID           string        `db:"team_id"`
	TeamName         string        `db:"team_name"`
	Season           string        `db:"season"`
	Competition      string        `db:"competition"`
	CompetitionLevel int           `db:"competition_level"`
	BirthYear        sql.NullInt64 `db:"birth_year"`
}

type gameStatTableModel struct {
	ProfileID     int64         `db:"profile_id"`
	GameID        string        `db:"game_id"`
	GameDate      time.Time     `db:"game_date"`
	Minutes       float64       `db:"minutes"`
	Points        int           `db:"points"`
	FGM           int           `db:"fgm"`
	FGA           int           `db:"fga"`
	FG3M          int           `db:"fg3m"`
	FG3A          int           `db:"fg3a"`
	FTM           int           `db:"ftm"`
	FTA           int           `db:"fta"`
	OffReb        int           `db:"off_reb"`
	DefReb        int           `db:"def_reb"`
	TotalReb      int           `db:"total_reb"`
	Assists       int           `db:"assists"`
	Steals        int           `db:"steals"`
	Blocks        int           `db:"blocks"`
	Turnovers     int           `db:"turnovers"`
	Fouls         int           `db:"fouls"`
	PlusMinus     int           `db:"plus_minus"`
	Starter       bool          `db:"starter"`
	TeamScore     sql.NullInt64 `db:"team_score"`
	OpponentScore sql.NullInt64 `db:"opponent_score"`
	Advanced      []byte        `db:"advanced"`
}

func (m gameStatTableModel) toDomain() (profile.GameStat, error) {
	var advanced boxscore.Advanced
	if err := fromJSONB(m.Advanced, &advanced); err != nil {
		return profile.GameStat{}, err
	}
	return profile.GameStat{
		ProfileID:     m.ProfileID,
		GameID:        m.GameID,
		GameDate:      m.GameDate,
		Minutes:       m.Minutes,
		Points:        m.Points,
		FGM:           m.FGM,
		FGA:           m.FGA,
		FG3M:          m.FG3M,
		FG3A:          m.FG3A,
		FTM:           m.FTM,
		FTA:           m.FTA,
		OffReb:        m.OffReb,
		DefReb:        m.DefReb,
		TotalReb:      m.TotalReb,
		Assists:       m.Assists,
		Steals:        m.Steals,
		Blocks:        m.Blocks,
		Turnovers:     m.Turnovers,
		Fouls:         m.Fouls,
		PlusMinus:     m.PlusMinus,
		Starter:       m.Starter,
		TeamScore:     intPtrFromNull(m.TeamScore),
		OpponentScore: intPtrFromNull(m.OpponentScore),
		Advanced:      advanced,
	}, nil
}

type gameStatInsertModel struct {
	ProfileID     int64         `db:"profile_id"`
	GameID        string        `db:"game_id"`
	GameDate      time.Time     `db:"game_date"`
	Minutes       float64       `db:"minutes"`
	Points        int           `db:"points"`
	FGM           int           `db:"fgm"`
	FGA           int           `db:"fga"`
	FG3M          int           `db:"fg3m"`
	FG3A          int           `db:"fg3a"`
	FTM           int           `db:"ftm"`
	FTA           int           `db:"fta"`
	OffReb        int           `db:"off_reb"`
	DefReb        int           `db:"def_reb"`
	TotalReb      int           `db:"total_reb"`
	Assists       int           `db:"assists"`
	Steals        int           `db:"steals"`
	Blocks        int           `db:"blocks"`
	Turnovers     int           `db:"turnovers"`
	Fouls         int           `db:"fouls"`
	PlusMinus     int           `db:"plus_minus"`
	Starter       bool          `db:"starter"`
	TeamScore     sql.NullInt64 `db:"team_score"`
	OpponentScore sql.NullInt64 `db:"opponent_score"`
	Advanced      string        `db:"advanced"`
}

func newGameStatInsertModel(item profile.GameStat) (gameStatInsertModel, error) {
	advanced, err := toJSONB(item.Advanced)
	if err != nil {
		return gameStatInsertModel{}, err
	}
	return gameStatInsertModel{
		ProfileID:     item.ProfileID,
		GameID:        item.GameID,
		GameDate:      item.GameDate,
		Minutes:       item.Minutes,
		Points:        item.Points,
		FGM:           item.FGM,
		FGA:           item.FGA,
		FG3M:          item.FG3M,
		FG3A:          item.FG3A,
		FTM:           item.FTM,
		FTA:           item.FTA,
		OffReb:        item.OffReb,
		DefReb:        item.DefReb,
		TotalReb:      item.TotalReb,
		Assists:       item.Assists,
		Steals:        item.Steals,
		Blocks:        item.Blocks,
		Turnovers:     item.Turnovers,
		Fouls:         item.Fouls,
		PlusMinus:     item.PlusMinus,
		Starter:       item.Starter,
		TeamScore:     nullIntFromPtr(item.TeamScore),
		OpponentScore: nullIntFromPtr(item.OpponentScore),
		Advanced:      advanced,
	}, nil
}

type teamRecordModel struct {
	Competition string `db:"competition"`
	Season      string `db:"season"`
	TeamID      string `db:"team_id"`
	Games       int    `db:"games"`
	Wins        int    `db:"wins"`
}

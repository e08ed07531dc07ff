package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/hoops-scout/internal/domain/identity"
)

type candidateTableModel struct {
	ID            int64          `db:"id"`
	ProfileID1    int64          `db:"profile_id_1"`
	ProfileID2    int64          `db:"profile_id_2"`
	NameScore     float64        `db:"name_score"`
	AgeScore      float64        `db:"age_score"`
	TeamScore     float64        `db:"team_score"`
	TimelineScore float64        `db:"timeline_score"`
	TotalScore    float64        `db:"total_score"`
	Confidence    string         `db:"confidence"`
	Status        string         `db:"validation_status"`
	ValidatedBy   sql.NullString `db:"validated_by"`
	ValidatedAt   sql.NullTime   `db:"validated_at"`
	Notes         sql.NullString `db:"notes"`
	CreatedAt     time.Time      `db:"created_at"`
}

func (m candidateTableModel) toDomain() identity.Candidate {
	out := identity.Candidate{
		ID:            m.ID,
		ProfileID1:    m.ProfileID1,
		ProfileID2:    m.ProfileID2,
		NameScore:     m.NameScore,
		AgeScore:      m.AgeScore,
		TeamScore:     m.TeamScore,
		TimelineScore: m.TimelineScore,
		TotalScore:    m.TotalScore,
		Confidence:    identity.Confidence(m.Confidence),
		Status:        identity.Status(m.Status),
		ValidatedBy:   m.ValidatedBy.String,
		Notes:         m.Notes.String,
		CreatedAt:     m.CreatedAt,
	}
	if m.ValidatedAt.Valid {
		at := m.ValidatedAt.Time.UTC()
		out.ValidatedAt = &at
	}
	return out
}

type candidateInsertModel struct {
	ProfileID1    int64   `db:"profile_id_1"`
	ProfileID2    int64   `db:"profile_id_2"`
	NameScore     float64 `db:"name_score"`
	AgeScore      float64 `db:"age_score"`
	TeamScore     float64 `db:"team_score"`
	TimelineScore float64 `db:"timeline_score"`
	TotalScore    float64 `db:"total_score"`
	Confidence    string  `db:"confidence"`
	Status        string  `db:"validation_status"`
}

type candidateCountModel struct {
	Key   string `db:"key"`
	Total int    `db:"total"`
}

package postgres

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/riskibarqy/hoops-scout/internal/domain/career"
	"github.com/riskibarqy/hoops-scout/internal/domain/cohort"
	"github.com/riskibarqy/hoops-scout/internal/domain/metrics"
	"github.com/riskibarqy/hoops-scout/internal/domain/potential"
)

type baselineTableModel struct {
	CompetitionLevel int     `db:"competition_level"`
	Season           string  `db:"season"`
	Metric           string  `db:"metric"`
	Mean             float64 `db:"mean"`
	StdDev           float64 `db:"std_dev"`
	SampleSize       int     `db:"sample_size"`
}

func (m baselineTableModel) toDomain() cohort.Baseline {
	return cohort.Baseline{
		Key:        cohort.Key{Level: m.CompetitionLevel, Season: m.Season},
		Metric:     cohort.Metric(m.Metric),
		Mean:       m.Mean,
		StdDev:     m.StdDev,
		SampleSize: m.SampleSize,
	}
}

func newBaselineModel(item cohort.Baseline) baselineTableModel {
	return baselineTableModel{
		CompetitionLevel: item.Key.Level,
		Season:           item.Key.Season,
		Metric:           string(item.Metric),
		Mean:             item.Mean,
		StdDev:           item.StdDev,
		SampleSize:       item.SampleSize,
	}
}

// Aggregates keep their key columns relational and the rest of the row in a
// jsonb payload so new metrics do not need a migration.
type metricsTableModel struct {
	ProfileID        int64  `db:"profile_id"`
	Season           string `db:"season"`
	TeamID           string `db:"team_id"`
	CompetitionLevel int    `db:"competition_level"`
	PerformanceTier  string `db:"performance_tier"`
	Payload          []byte `db:"payload"`
}

func (m metricsTableModel) toDomain() (metrics.ProfileMetrics, error) {
	var out metrics.ProfileMetrics
	if err := fromJSONB(m.Payload, &out); err != nil {
		return metrics.ProfileMetrics{}, err
	}
	out.ProfileID = m.ProfileID
	out.Season = m.Season
	out.TeamID = m.TeamID
	out.CompetitionLevel = m.CompetitionLevel
	return out, nil
}

type metricsInsertModel struct {
	ProfileID        int64  `db:"profile_id"`
	Season           string `db:"season"`
	TeamID           string `db:"team_id"`
	CompetitionLevel int    `db:"competition_level"`
	PerformanceTier  string `db:"performance_tier"`
	Payload          string `db:"payload"`
}

func newMetricsInsertModel(item metrics.ProfileMetrics) (metricsInsertModel, error) {
	payload, err := toJSONB(item)
	if err != nil {
		return metricsInsertModel{}, err
	}
	return metricsInsertModel{
		ProfileID:        item.ProfileID,
		Season:           item.Season,
		TeamID:           item.TeamID,
		CompetitionLevel: item.CompetitionLevel,
		PerformanceTier:  string(item.PerformanceTier),
		Payload:          payload,
	}, nil
}

type potentialTableModel struct {
	ProfileID      int64           `db:"profile_id"`
	Season         string          `db:"season"`
	Eligible       bool            `db:"eligible"`
	PotentialScore sql.NullFloat64 `db:"potential_score"`
	Tier           string          `db:"tier"`
	Payload        []byte          `db:"payload"`
}

func (m potentialTableModel) toDomain() (potential.ProfilePotential, error) {
	var out potential.ProfilePotential
	if err := fromJSONB(m.Payload, &out); err != nil {
		return potential.ProfilePotential{}, err
	}
	out.ProfileID = m.ProfileID
	out.Season = m.Season
	out.Eligible = m.Eligible
	out.PotentialScore = floatPtrFromNull(m.PotentialScore)
	out.Tier = potential.Tier(m.Tier)
	return out, nil
}

type potentialInsertModel struct {
	ProfileID      int64           `db:"profile_id"`
	Season         string          `db:"season"`
	Eligible       bool            `db:"eligible"`
	PotentialScore sql.NullFloat64 `db:"potential_score"`
	Tier           string          `db:"tier"`
	Payload        string          `db:"payload"`
}

func newPotentialInsertModel(item potential.ProfilePotential) (potentialInsertModel, error) {
	payload, err := toJSONB(item)
	if err != nil {
		return potentialInsertModel{}, err
	}
	return potentialInsertModel{
		ProfileID:      item.ProfileID,
		Season:         item.Season,
		Eligible:       item.Eligible,
		PotentialScore: nullFloat(item.PotentialScore),
		Tier:           string(item.Tier),
		Payload:        payload,
	}, nil
}

type careerTableModel struct {
	PlayerKey    string        `db:"player_key"`
	Name         string        `db:"name"`
	ProfileIDs   pq.Int64Array `db:"profile_ids"`
	UnifiedScore float64       `db:"unified_score"`
	Tier         string        `db:"tier"`
	Payload      []byte        `db:"payload"`
}

func (m careerTableModel) toDomain() (career.CareerPotential, error) {
	var out career.CareerPotential
	if err := fromJSONB(m.Payload, &out); err != nil {
		return career.CareerPotential{}, err
	}
	out.PlayerKey = m.PlayerKey
	out.Name = m.Name
	out.ProfileIDs = []int64(m.ProfileIDs)
	out.UnifiedScore = m.UnifiedScore
	out.Tier = career.Tier(m.Tier)
	return out, nil
}

type careerInsertModel struct {
	PlayerKey    string  `db:"player_key"`
	Name         string  `db:"name"`
	ProfileIDs   any     `db:"profile_ids"`
	UnifiedScore float64 `db:"unified_score"`
	Tier         string  `db:"tier"`
	Payload      string  `db:"payload"`
}

func newCareerInsertModel(item career.CareerPotential) (careerInsertModel, error) {
	payload, err := toJSONB(item)
	if err != nil {
		return careerInsertModel{}, err
	}
	return careerInsertModel{
		PlayerKey:    item.PlayerKey,
		Name:         item.Name,
		ProfileIDs:   pq.Array(item.ProfileIDs),
		UnifiedScore: item.UnifiedScore,
		Tier:         string(item.Tier),
		Payload:      payload,
	}, nil
}

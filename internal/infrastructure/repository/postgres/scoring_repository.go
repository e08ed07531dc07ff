package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-scout/internal/domain/career"
	"github.com/riskibarqy/hoops-scout/internal/domain/cohort"
	"github.com/riskibarqy/hoops-scout/internal/domain/metrics"
	"github.com/riskibarqy/hoops-scout/internal/domain/potential"
	qb "github.com/riskibarqy/hoops-scout/internal/platform/querybuilder"
)

const scoringChunkSize = 500

// ScoringRepository persists every pipeline output. It implements the
// cohort, metrics, potential and career repositories.
type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) ReplaceBaselines(ctx context.Context, items []cohort.Baseline) error {
	models := make([]baselineTableModel, 0, len(items))
	for _, item := range items {
		models = append(models, newBaselineModel(item))
	}
	return replaceAll(ctx, r.db, "cohort_baselines", models)
}

func (r *ScoringRepository) ListBaselines(ctx context.Context) ([]cohort.Baseline, error) {
	query, args, err := qb.Select("*").From("cohort_baselines").
		OrderBy("competition_level", "season", "metric").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list baselines query: %w", err)
	}

	var rows []baselineTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list baselines: %w", err)
	}

	out := make([]cohort.Baseline, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ScoringRepository) UpsertMetrics(ctx context.Context, items []metrics.ProfileMetrics) error {
	models := make([]metricsInsertModel, 0, len(items))
	for _, item := range items {
		model, err := newMetricsInsertModel(item)
		if err != nil {
			return fmt.Errorf("profile metrics profile=%d season=%s: %w", item.ProfileID, item.Season, err)
		}
		models = append(models, model)
	}
	return upsertChunks(ctx, r.db, "profile_metrics", models, `ON CONFLICT (profile_id, season)
DO UPDATE SET
    team_id = EXCLUDED.team_id,
    competition_level = EXCLUDED.competition_level,
    performance_tier = EXCLUDED.performance_tier,
    payload = EXCLUDED.payload,
    updated_at = NOW()`)
}

func (r *ScoringRepository) GetMetrics(ctx context.Context, profileID int64, season string) (metrics.ProfileMetrics, bool, error) {
	query, args, err := qb.Select("profile_id", "season", "team_id", "competition_level", "performance_tier", "payload").
		From("profile_metrics").
		Where(qb.Eq("profile_id", profileID), qb.Eq("season", season)).
		Limit(1).
		ToSQL()
	if err != nil {
		return metrics.ProfileMetrics{}, false, fmt.Errorf("build get profile metrics query: %w", err)
	}

	var row metricsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return metrics.ProfileMetrics{}, false, nil
		}
		return metrics.ProfileMetrics{}, false, fmt.Errorf("get profile metrics profile=%d season=%s: %w", profileID, season, err)
	}
	item, err := row.toDomain()
	if err != nil {
		return metrics.ProfileMetrics{}, false, fmt.Errorf("profile metrics profile=%d season=%s: %w", profileID, season, err)
	}
	return item, true, nil
}

func (r *ScoringRepository) ListMetrics(ctx context.Context, season string) ([]metrics.ProfileMetrics, error) {
	var conditions []qb.Condition
	if season != "" {
		conditions = append(conditions, qb.Eq("season", season))
	}
	query, args, err := qb.Select("profile_id", "season", "team_id", "competition_level", "performance_tier", "payload").
		From("profile_metrics").
		Where(conditions...).
		OrderBy("profile_id", "season").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list profile metrics query: %w", err)
	}

	var rows []metricsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list profile metrics: %w", err)
	}

	out := make([]metrics.ProfileMetrics, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("profile metrics profile=%d: %w", row.ProfileID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ScoringRepository) UpsertPotentials(ctx context.Context, items []potential.ProfilePotential) error {
	models := make([]potentialInsertModel, 0, len(items))
	for _, item := range items {
		model, err := newPotentialInsertModel(item)
		if err != nil {
			return fmt.Errorf("profile potential profile=%d season=%s: %w", item.ProfileID, item.Season, err)
		}
		models = append(models, model)
	}
	return upsertChunks(ctx, r.db, "profile_potentials", models, `ON CONFLICT (profile_id, season)
DO UPDATE SET
    eligible = EXCLUDED.eligible,
    potential_score = EXCLUDED.potential_score,
    tier = EXCLUDED.tier,
    payload = EXCLUDED.payload,
    updated_at = NOW()`)
}

var potentialColumns = []string{"profile_id", "season", "eligible", "potential_score", "tier", "payload"}

func (r *ScoringRepository) GetPotential(ctx context.Context, profileID int64, season string) (potential.ProfilePotential, bool, error) {
	query, args, err := qb.Select(potentialColumns...).From("profile_potentials").
		Where(qb.Eq("profile_id", profileID), qb.Eq("season", season)).
		Limit(1).
		ToSQL()
	if err != nil {
		return potential.ProfilePotential{}, false, fmt.Errorf("build get profile potential query: %w", err)
	}

	var row potentialTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return potential.ProfilePotential{}, false, nil
		}
		return potential.ProfilePotential{}, false, fmt.Errorf("get profile potential profile=%d season=%s: %w", profileID, season, err)
	}
	item, err := row.toDomain()
	if err != nil {
		return potential.ProfilePotential{}, false, fmt.Errorf("profile potential profile=%d season=%s: %w", profileID, season, err)
	}
	return item, true, nil
}

func (r *ScoringRepository) ListPotentials(ctx context.Context) ([]potential.ProfilePotential, error) {
	query, args, err := qb.Select(potentialColumns...).From("profile_potentials").
		OrderBy("profile_id", "season").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list profile potentials query: %w", err)
	}
	return r.selectPotentials(ctx, query, args)
}

func (r *ScoringRepository) ListByPotential(ctx context.Context, minScore float64, limit int) ([]potential.ProfilePotential, error) {
	builder := qb.Select(potentialColumns...).From("profile_potentials").
		Where(
			qb.Eq("eligible", true),
			qb.Gte("potential_score", minScore),
		).
		OrderBy("potential_score DESC", "profile_id")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list by potential query: %w", err)
	}
	return r.selectPotentials(ctx, query, args)
}

func (r *ScoringRepository) selectPotentials(ctx context.Context, query string, args []any) ([]potential.ProfilePotential, error) {
	var rows []potentialTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list profile potentials: %w", err)
	}

	out := make([]potential.ProfilePotential, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("profile potential profile=%d: %w", row.ProfileID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ScoringRepository) ReplaceCareers(ctx context.Context, items []career.CareerPotential) error {
	models := make([]careerInsertModel, 0, len(items))
	for _, item := range items {
		model, err := newCareerInsertModel(item)
		if err != nil {
			return fmt.Errorf("career potential key=%s: %w", item.PlayerKey, err)
		}
		models = append(models, model)
	}
	return replaceAll(ctx, r.db, "career_potentials", models)
}

var careerColumns = []string{"player_key", "name", "profile_ids", "unified_score", "tier", "payload"}

func (r *ScoringRepository) GetCareer(ctx context.Context, playerKey string) (career.CareerPotential, bool, error) {
	query, args, err := qb.Select(careerColumns...).From("career_potentials").
		Where(qb.Eq("player_key", playerKey)).
		Limit(1).
		ToSQL()
	if err != nil {
		return career.CareerPotential{}, false, fmt.Errorf("build get career query: %w", err)
	}

	var row careerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return career.CareerPotential{}, false, nil
		}
		return career.CareerPotential{}, false, fmt.Errorf("get career key=%s: %w", playerKey, err)
	}
	item, err := row.toDomain()
	if err != nil {
		return career.CareerPotential{}, false, fmt.Errorf("career key=%s: %w", playerKey, err)
	}
	return item, true, nil
}

func (r *ScoringRepository) ListCareers(ctx context.Context, minScore float64, limit int) ([]career.CareerPotential, error) {
	builder := qb.Select(careerColumns...).From("career_potentials").
		Where(qb.Gte("unified_score", minScore)).
		OrderBy("unified_score DESC", "player_key")
	if limit > 0 {
		builder = builder.Limit(limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list careers query: %w", err)
	}

	var rows []careerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list careers: %w", err)
	}

	out := make([]career.CareerPotential, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("career key=%s: %w", row.PlayerKey, err)
		}
		out = append(out, item)
	}
	return out, nil
}

// replaceAll swaps the content of a table inside one transaction so readers
// never observe a half written run.
func replaceAll[T any](ctx context.Context, db *sqlx.DB, table string, models []T) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace %s: %w", table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := insertChunks(ctx, tx, table, models, ""); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace %s tx: %w", table, err)
	}
	return nil
}

func upsertChunks[T any](ctx context.Context, db *sqlx.DB, table string, models []T, suffix string) error {
	if len(models) == 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert %s: %w", table, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := insertChunks(ctx, tx, table, models, suffix); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert %s tx: %w", table, err)
	}
	return nil
}

func insertChunks[T any](ctx context.Context, tx *sqlx.Tx, table string, models []T, suffix string) error {
	for start := 0; start < len(models); start += scoringChunkSize {
		end := min(start+scoringChunkSize, len(models))
		query, args, err := qb.InsertModels(table, models[start:end], suffix)
		if err != nil {
			return fmt.Errorf("build insert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s rows=%d: %w", table, end-start, err)
		}
	}
	return nil
}

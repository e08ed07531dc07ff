package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/hoops-scout/internal/domain/identity"
	qb "github.com/riskibarqy/hoops-scout/internal/platform/querybuilder"
)

const candidateChunkSize = 1000

type IdentityRepository struct {
	db *sqlx.DB
}

func NewIdentityRepository(db *sqlx.DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

func (r *IdentityRepository) InsertCandidates(ctx context.Context, items []identity.Candidate) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	models := make([]candidateInsertModel, 0, len(items))
	for _, item := range items {
		status := item.Status
		if status == "" {
			status = identity.StatusPending
		}
		models = append(models, candidateInsertModel{
			ProfileID1:    item.ProfileID1,
			ProfileID2:    item.ProfileID2,
			NameScore:     item.NameScore,
			AgeScore:      item.AgeScore,
			TeamScore:     item.TeamScore,
			TimelineScore: item.TimelineScore,
			TotalScore:    item.TotalScore,
			Confidence:    string(item.Confidence),
			Status:        string(status),
		})
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx insert candidates: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	inserted := 0
	for start := 0; start < len(models); start += candidateChunkSize {
		end := min(start+candidateChunkSize, len(models))
		query, args, err := qb.InsertModels("identity_candidates", models[start:end], "ON CONFLICT (profile_id_1, profile_id_2) DO NOTHING")
		if err != nil {
			return 0, fmt.Errorf("build insert candidates query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("insert candidates rows=%d: %w", end-start, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("insert candidates rows affected: %w", err)
		}
		inserted += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert candidates tx: %w", err)
	}
	return inserted, nil
}

func (r *IdentityRepository) GetByID(ctx context.Context, candidateID int64) (identity.Candidate, bool, error) {
	query, args, err := qb.Select("*").From("identity_candidates").
		Where(qb.Eq("id", candidateID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return identity.Candidate{}, false, fmt.Errorf("build get candidate query: %w", err)
	}

	var row candidateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return identity.Candidate{}, false, nil
		}
		return identity.Candidate{}, false, fmt.Errorf("get candidate id=%d: %w", candidateID, err)
	}
	return row.toDomain(), true, nil
}

func (r *IdentityRepository) List(ctx context.Context, q identity.Query) ([]identity.Candidate, error) {
	conditions := []qb.Condition{qb.Gte("total_score", q.MinScore)}
	if q.Status != "" {
		conditions = append(conditions, qb.Eq("validation_status", string(q.Status)))
	}

	builder := qb.Select("*").From("identity_candidates").
		Where(conditions...).
		OrderBy("total_score DESC", "id")
	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list candidates query: %w", err)
	}

	var rows []candidateTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	out := make([]identity.Candidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *IdentityRepository) UpdateValidation(ctx context.Context, validation identity.Validation, at time.Time) (identity.Candidate, error) {
	query, args, err := qb.Update("identity_candidates").
		Set("validation_status", string(validation.Status)).
		Set("validated_by", validation.By).
		Set("validated_at", at.UTC()).
		Set("notes", validation.Notes).
		Where(qb.Eq("id", validation.CandidateID)).
		Suffix("RETURNING *").
		ToSQL()
	if err != nil {
		return identity.Candidate{}, fmt.Errorf("build update candidate validation query: %w", err)
	}

	var row candidateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return identity.Candidate{}, fmt.Errorf("update candidate validation id=%d: %w", validation.CandidateID, err)
	}
	return row.toDomain(), nil
}

func (r *IdentityRepository) ListConfirmed(ctx context.Context, minScore float64) ([]identity.Candidate, error) {
	return r.List(ctx, identity.Query{Status: identity.StatusConfirmed, MinScore: minScore})
}

func (r *IdentityRepository) Stats(ctx context.Context) (identity.Stats, error) {
	stats := identity.Stats{
		ByStatus:     make(map[identity.Status]int),
		ByConfidence: make(map[identity.Confidence]int),
	}

	byStatus, err := r.countBy(ctx, "validation_status")
	if err != nil {
		return identity.Stats{}, err
	}
	for _, row := range byStatus {
		stats.Total += row.Total
		stats.ByStatus[identity.Status(row.Key)] = row.Total
	}

	byConfidence, err := r.countBy(ctx, "confidence")
	if err != nil {
		return identity.Stats{}, err
	}
	for _, row := range byConfidence {
		stats.ByConfidence[identity.Confidence(row.Key)] = row.Total
	}
	return stats, nil
}

func (r *IdentityRepository) countBy(ctx context.Context, column string) ([]candidateCountModel, error) {
	query, args, err := qb.Select(column+" AS key", "COUNT(*) AS total").From("identity_candidates").
		GroupBy(column).
		OrderBy(column).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build count candidates by %s query: %w", column, err)
	}

	var rows []candidateCountModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("count candidates by %s: %w", column, err)
	}
	return rows, nil
}

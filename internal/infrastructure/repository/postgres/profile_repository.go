package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	qb "github.com/riskibarqy/hoops-scout/internal/platform/querybuilder"
)

const gameStatChunkSize = 1000

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Upsert(ctx context.Context, item profile.Profile) (int64, error) {
	insertModel := profileInsertModel{
		Name:             item.Name,
		NameNormalized:   item.NameNormalized,
		TeamID:           item.TeamID,
		TeamName:         item.TeamName,
		Season:           item.Season,
		Competition:      item.Competition,
		CompetitionLevel: item.CompetitionLevel,
		BirthYear:        nullIntFromPtr(item.BirthYear),
	}
	query, args, err := qb.InsertModel("player_profiles", insertModel, `ON CONFLICT (name_normalized, team_id, season)
DO UPDATE SET
    name = EXCLUDED.name,
    team_name = EXCLUDED.team_name,
    competition = EXCLUDED.competition,
    competition_level = EXCLUDED.competition_level,
    birth_year = COALESCE(EXCLUDED.birth_year, player_profiles.birth_year),
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return 0, fmt.Errorf("build upsert profile query: %w", err)
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("upsert profile name=%s team=%s season=%s: %w", item.NameNormalized, item.TeamID, item.Season, err)
	}
	return id, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, profileID int64) (profile.Profile, bool, error) {
	query, args, err := qb.Select("*").From("player_profiles").
		Where(qb.Eq("id", profileID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile id=%d: %w", profileID, err)
	}
	return row.toDomain(), true, nil
}

func (r *ProfileRepository) List(ctx context.Context, filter profile.Filter) ([]profile.Profile, error) {
	conditions := make([]qb.Condition, 0, 3)
	if filter.Season != "" {
		conditions = append(conditions, qb.Eq("season", filter.Season))
	}
	if filter.OnlyUnconsolidated {
		conditions = append(conditions, qb.Eq("is_consolidated", false))
	}
	if len(filter.IDs) > 0 {
		conditions = append(conditions, qb.In("id", int64SliceToAny(filter.IDs)))
	}

	query, args, err := qb.Select("*").From("player_profiles").
		Where(conditions...).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list profiles query: %w", err)
	}

	var rows []profileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	out := make([]profile.Profile, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ProfileRepository) UpsertGameStats(ctx context.Context, stats []profile.GameStat) error {
	if len(stats) == 0 {
		return nil
	}

	// A single statement cannot touch the same conflict key twice.
	type statKey struct {
		profileID int64
		gameID    string
	}
	position := make(map[statKey]int, len(stats))
	models := make([]gameStatInsertModel, 0, len(stats))
	for _, item := range stats {
		model, err := newGameStatInsertModel(item)
		if err != nil {
			return fmt.Errorf("game stat profile=%d game=%s: %w", item.ProfileID, item.GameID, err)
		}
		key := statKey{profileID: item.ProfileID, gameID: item.GameID}
		if idx, ok := position[key]; ok {
			models[idx] = model
			continue
		}
		position[key] = len(models)
		models = append(models, model)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx upsert game stats: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(models); start += gameStatChunkSize {
		end := min(start+gameStatChunkSize, len(models))
		query, args, err := qb.InsertModels("game_stats", models[start:end], `ON CONFLICT (profile_id, game_id)
DO UPDATE SET
    game_date = EXCLUDED.game_date,
    minutes = EXCLUDED.minutes,
    points = EXCLUDED.points,
    fgm = EXCLUDED.fgm,
    fga = EXCLUDED.fga,
    fg3m = EXCLUDED.fg3m,
    fg3a = EXCLUDED.fg3a,
    ftm = EXCLUDED.ftm,
    fta = EXCLUDED.fta,
    off_reb = EXCLUDED.off_reb,
    def_reb = EXCLUDED.def_reb,
    total_reb = EXCLUDED.total_reb,
    assists = EXCLUDED.assists,
    steals = EXCLUDED.steals,
    blocks = EXCLUDED.blocks,
    turnovers = EXCLUDED.turnovers,
    fouls = EXCLUDED.fouls,
    plus_minus = EXCLUDED.plus_minus,
    starter = EXCLUDED.starter,
    team_score = EXCLUDED.team_score,
    opponent_score = EXCLUDED.opponent_score,
    advanced = EXCLUDED.advanced`)
		if err != nil {
			return fmt.Errorf("build upsert game stats query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert game stats rows=%d: %w", end-start, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert game stats tx: %w", err)
	}
	return nil
}

func (r *ProfileRepository) ListGameStats(ctx context.Context, profileIDs []int64) ([]profile.GameStat, error) {
	if len(profileIDs) == 0 {
		return nil, nil
	}

	query, args, err := qb.Select("*").From("game_stats").
		Where(qb.In("profile_id", int64SliceToAny(profileIDs))).
		OrderBy("profile_id", "game_date", "game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list game stats query: %w", err)
	}

	var rows []gameStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list game stats: %w", err)
	}

	out := make([]profile.GameStat, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("game stat profile=%d game=%s: %w", row.ProfileID, row.GameID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

const refreshTotalsQuery = `UPDATE player_profiles p
SET games_played = s.games,
    total_minutes = s.minutes,
    total_points = s.points,
    updated_at = NOW()
FROM (
    SELECT pp.id,
           COUNT(g.game_id) AS games,
           COALESCE(SUM(g.minutes), 0) AS minutes,
           COALESCE(SUM(g.points), 0) AS points
    FROM player_profiles pp
    LEFT JOIN game_stats g ON g.profile_id = pp.id
    WHERE pp.id = ANY($1)
    GROUP BY pp.id
) s
WHERE p.id = s.id`

func (r *ProfileRepository) RefreshTotals(ctx context.Context, profileIDs []int64) error {
	if len(profileIDs) == 0 {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, refreshTotalsQuery, pq.Array(profileIDs)); err != nil {
		return fmt.Errorf("refresh profile totals count=%d: %w", len(profileIDs), err)
	}
	return nil
}

func (r *ProfileRepository) ResetConsolidation(ctx context.Context) error {
	query, args, err := qb.Update("player_profiles").
		SetRaw("consolidated_player_id", "NULL").
		Set("is_consolidated", false).
		SetRaw("updated_at", "NOW()").
		Where(qb.Eq("is_consolidated", true)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build reset consolidation query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset consolidation: %w", err)
	}
	return nil
}

func (r *ProfileRepository) ApplyConsolidation(ctx context.Context, assignments []profile.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply consolidation: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, a := range assignments {
		query, args, err := qb.Update("player_profiles").
			Set("consolidated_player_id", a.ConsolidatedPlayerID).
			Set("is_consolidated", true).
			SetRaw("updated_at", "NOW()").
			Where(qb.Eq("id", a.ProfileID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build apply consolidation query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("apply consolidation profile=%d player=%d: %w", a.ProfileID, a.ConsolidatedPlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply consolidation tx: %w", err)
	}
	return nil
}

// Each game counts once per team even when several profiles report it.
const listTeamRecordsQuery = `SELECT competition, season, team_id,
       COUNT(*) AS games,
       COUNT(*) FILTER (WHERE won) AS wins
FROM (
    SELECT DISTINCT ON (p.competition, p.season, p.team_id, g.game_id)
           p.competition, p.season, p.team_id, g.team_score > g.opponent_score AS won
    FROM game_stats g
    JOIN player_profiles p ON p.id = g.profile_id
    WHERE p.team_id <> ''
      AND g.team_score IS NOT NULL
      AND g.opponent_score IS NOT NULL
    ORDER BY p.competition, p.season, p.team_id, g.game_id
) games
GROUP BY competition, season, team_id
ORDER BY competition, season, team_id`

func (r *ProfileRepository) ListTeamRecords(ctx context.Context) ([]profile.TeamRecord, error) {
	var rows []teamRecordModel
	if err := r.db.SelectContext(ctx, &rows, listTeamRecordsQuery); err != nil {
		return nil, fmt.Errorf("list team records: %w", err)
	}

	out := make([]profile.TeamRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, profile.TeamRecord{
			Competition: row.Competition,
			Season:      row.Season,
			TeamID:      row.TeamID,
			Games:       row.Games,
			Wins:        row.Wins,
		})
	}
	return out, nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/hoops-scout/internal/domain/cohort"
	"github.com/riskibarqy/hoops-scout/internal/domain/naming"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
	"github.com/riskibarqy/hoops-scout/internal/platform/season"
)

// GameSource streams canonical game rows. Stream stops at the first error
// returned by fn.
type GameSource interface {
	Stream(ctx context.Context, fn func(profile.GameRow) error) error
}

type IngestionConfig struct {
	BatchSize int
}

type IngestReport struct {
	Rows             int   `json:"rows"`
	Profiles         int   `json:"profiles"`
	GameStats        int   `json:"game_stats"`
	Rejected         int   `json:"rejected"`
	MalformedSeasons int   `json:"malformed_seasons"`
	DurationMs       int64 `json:"duration_ms"`
}

type IngestionService struct {
	profileRepo profile.Repository
	levels      *cohort.Levels
	cfg         IngestionConfig
	logger      *logging.Logger
	now         func() time.Time
}

func NewIngestionService(
	profileRepo profile.Repository,
	levels *cohort.Levels,
	cfg IngestionConfig,
	logger *logging.Logger,
) *IngestionService {
	if levels == nil {
		levels = cohort.DefaultLevels()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		profileRepo: profileRepo,
		levels:      levels,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

var errRowRejected = errors.New("row rejected")

// Ingest reads every row from source, upserts the owning profile and its
// game stat, then refreshes the totals of every touched profile. Rows that
// fail validation are skipped and counted.
func (s *IngestionService) Ingest(ctx context.Context, source GameSource) (IngestReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Ingest")
	out, err := s.ingest(ctx, source)
	finishSpan(span, err)
	return out, err
}

func (s *IngestionService) ingest(ctx context.Context, source GameSource) (IngestReport, error) {
	if source == nil {
		return IngestReport{}, fmt.Errorf("%w: game source is required", ErrInvalidInput)
	}

	startedAt := s.now()
	report := IngestReport{}
	profileIDs := make(map[string]int64)
	touched := make(map[int64]struct{})
	pending := make([]profile.GameStat, 0, s.cfg.BatchSize)

	flush := func() error {
		if len(pending) == 0 {
			return nil
		}
		if err := s.profileRepo.UpsertGameStats(ctx, pending); err != nil {
			return fmt.Errorf("upsert game stats: %w", err)
		}
		report.GameStats += len(pending)
		pending = pending[:0]
		return nil
	}

	err := source.Stream(ctx, func(row profile.GameRow) error {
		report.Rows++
		item, key, err := s.prepare(row)
		if err != nil {
			report.Rejected++
			s.logger.WarnContext(ctx, "game row rejected",
				"row", report.Rows,
				"game_id", row.GameID,
				"error", err,
			)
			return nil
		}
		if _, parseErr := season.Parse(row.Season); parseErr != nil {
			report.MalformedSeasons++
		}

		profileID, ok := profileIDs[key]
		if !ok {
			profileID, err = s.profileRepo.Upsert(ctx, item)
			if err != nil {
				return fmt.Errorf("upsert profile %q: %w", item.NameNormalized, err)
			}
			profileIDs[key] = profileID
		}
		touched[profileID] = struct{}{}

		row.GameID = strings.TrimSpace(row.GameID)
		pending = append(pending, row.GameStat(profileID))
		if len(pending) >= s.cfg.BatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return report, fmt.Errorf("stream game rows: %w", err)
	}
	if err := flush(); err != nil {
		return report, err
	}

	ids := make([]int64, 0, len(touched))
	for profileID := range touched {
		ids = append(ids, profileID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for start := 0; start < len(ids); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(ids))
		if err := s.profileRepo.RefreshTotals(ctx, ids[start:end]); err != nil {
			return report, fmt.Errorf("refresh profile totals: %w", err)
		}
	}

	report.Profiles = len(ids)
	report.DurationMs = s.now().Sub(startedAt).Milliseconds()
	if report.MalformedSeasons > 0 {
		s.logger.WarnContext(ctx, "ingested rows with malformed seasons", "count", report.MalformedSeasons)
	}
	s.logger.InfoContext(ctx, "ingestion finished",
		"rows", report.Rows,
		"profiles", report.Profiles,
		"game_stats", report.GameStats,
		"rejected", report.Rejected,
		"duration_ms", report.DurationMs,
	)
	return report, nil
}

// prepare builds the profile a row belongs to and its in-run cache key.
func (s *IngestionService) prepare(row profile.GameRow) (profile.Profile, string, error) {
	name := strings.TrimSpace(row.PlayerName)
	normalized := naming.Normalize(name)
	if normalized == "" {
		return profile.Profile{}, "", fmt.Errorf("%w: player name is required", errRowRejected)
	}
	gameID := strings.TrimSpace(row.GameID)
	if gameID == "" {
		return profile.Profile{}, "", fmt.Errorf("%w: game id is required", errRowRejected)
	}
	label := strings.TrimSpace(row.Season)
	if label == "" {
		return profile.Profile{}, "", fmt.Errorf("%w: season is required", errRowRejected)
	}
	if row.Minutes < 0 {
		return profile.Profile{}, "", fmt.Errorf("%w: negative minutes", errRowRejected)
	}
	// Unparsable labels are kept as-is; scoring counts them later.
	if canonical, err := season.Normalize(label); err == nil {
		label = canonical
	}

	teamID := strings.TrimSpace(row.TeamID)
	competition := strings.TrimSpace(row.Competition)
	item := profile.Profile{
		Name:             name,
		NameNormalized:   normalized,
		TeamID:           teamID,
		TeamName:         strings.TrimSpace(row.TeamName),
		Season:           label,
		Competition:      competition,
		CompetitionLevel: s.levels.Resolve(competition, label),
		BirthYear:        row.BirthYear,
	}
	return item, normalized + "|" + teamID + "|" + label, nil
}

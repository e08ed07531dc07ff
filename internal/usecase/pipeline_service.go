package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/hoops-scout/internal/domain/career"
	"github.com/riskibarqy/hoops-scout/internal/domain/cohort"
	"github.com/riskibarqy/hoops-scout/internal/domain/metrics"
	"github.com/riskibarqy/hoops-scout/internal/domain/potential"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/id"
	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
	"github.com/riskibarqy/hoops-scout/internal/platform/season"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

const (
	StageBaselines     = "baselines"
	StageMetrics       = "metrics"
	StagePotentials    = "potentials"
	StageCandidates    = "candidates"
	StageConsolidation = "consolidation"
	StageCareers       = "careers"
)

// PipelineObserver receives per-stage timings and write counts.
type PipelineObserver interface {
	StageFinished(stage string, duration time.Duration, err error)
	RecordsWritten(stage string, n int)
	WarningsObserved(kind string, n int)
}

type noopPipelineObserver struct{}

func (noopPipelineObserver) StageFinished(string, time.Duration, error) {}
func (noopPipelineObserver) RecordsWritten(string, int)                 {}
func (noopPipelineObserver) WarningsObserved(string, int)               {}

func NewNoopPipelineObserver() PipelineObserver {
	return noopPipelineObserver{}
}

type PipelineConfig struct {
	BatchSize     int
	Workers       int
	ReferenceYear int
}

// Warnings counts locally recovered data problems of a run.
type Warnings struct {
	MalformedSeasons int `json:"malformed_seasons"`
	SparseCohorts    int `json:"sparse_cohorts"`
	Ineligible       int `json:"ineligible"`
	MergeConflicts   int `json:"merge_conflicts"`
}

type RunReport struct {
	RunID         string              `json:"run_id"`
	ReferenceYear int                 `json:"reference_year"`
	StartedAt     time.Time           `json:"started_at"`
	FinishedAt    time.Time           `json:"finished_at"`
	Profiles      int                 `json:"profiles"`
	Baselines     int                 `json:"baselines"`
	Metrics       int                 `json:"metrics"`
	Potentials    int                 `json:"potentials"`
	Candidates    CandidateReport     `json:"candidates"`
	Consolidation ConsolidationReport `json:"consolidation"`
	Careers       int                 `json:"careers"`
	Warnings      Warnings            `json:"warnings"`
}

// PipelineService runs every scoring stage in order against the stored
// profiles. Each run owns its cohort baselines; nothing is cached between runs.
type PipelineService struct {
	profileRepo   profile.Repository
	baselineRepo  cohort.Repository
	metricsRepo   metrics.Repository
	potentialRepo potential.Repository
	careerRepo    career.Repository
	identitySvc   *IdentityService
	observer      PipelineObserver
	ids           id.Generator
	cfg           PipelineConfig
	logger        *logging.Logger
	now           func() time.Time
	running       sync.Mutex
}

func NewPipelineService(
	profileRepo profile.Repository,
	baselineRepo cohort.Repository,
	metricsRepo metrics.Repository,
	potentialRepo potential.Repository,
	careerRepo career.Repository,
	identitySvc *IdentityService,
	observer PipelineObserver,
	ids id.Generator,
	cfg PipelineConfig,
	logger *logging.Logger,
) *PipelineService {
	if observer == nil {
		observer = NewNoopPipelineObserver()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &PipelineService{
		profileRepo:   profileRepo,
		baselineRepo:  baselineRepo,
		metricsRepo:   metricsRepo,
		potentialRepo: potentialRepo,
		careerRepo:    careerRepo,
		identitySvc:   identitySvc,
		observer:      observer,
		ids:           ids,
		cfg:           cfg,
		logger:        logger,
		now:           time.Now,
	}
}

// runState is the data shared between stages of one run.
type runState struct {
	refYear   int
	profiles  []profile.Profile
	games     map[int64][]profile.GameStat
	baselines *cohort.Baselines
	metrics   map[int64]metrics.ProfileMetrics
	report    *RunReport
}

// Run executes baselines, metrics, potentials, candidates, consolidation and
// careers. Only one run may be active per service.
func (s *PipelineService) Run(ctx context.Context) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Run")
	out, err := s.run(ctx)
	finishSpan(span, err)
	return out, err
}

func (s *PipelineService) run(ctx context.Context) (RunReport, error) {
	if !s.running.TryLock() {
		return RunReport{}, fmt.Errorf("%w: pipeline run already in progress", ErrConflict)
	}
	defer s.running.Unlock()

	runID, err := s.ids.NewID()
	if err != nil {
		return RunReport{}, fmt.Errorf("generate run id: %w", err)
	}
	report := RunReport{
		RunID:         runID,
		ReferenceYear: s.cfg.ReferenceYear,
		StartedAt:     s.now().UTC(),
	}
	if report.ReferenceYear <= 0 {
		report.ReferenceYear = report.StartedAt.Year()
	}
	logger := s.logger.With("run_id", runID)
	logger.InfoContext(ctx, "pipeline run started", "reference_year", report.ReferenceYear)

	state := &runState{refYear: report.ReferenceYear, report: &report}
	stages := []struct {
		name string
		fn   func(context.Context, *runState, *logging.Logger) error
	}{
		{name: StageBaselines, fn: s.runBaselines},
		{name: StageMetrics, fn: s.runMetrics},
		{name: StagePotentials, fn: s.runPotentials},
		{name: StageCandidates, fn: s.runCandidates},
		{name: StageConsolidation, fn: s.runConsolidation},
		{name: StageCareers, fn: s.runCareers},
	}
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		stageLogger := logger.With("stage", stage.name)
		stageLogger.InfoContext(ctx, "pipeline stage started")
		startedAt := s.now()
		stageCtx, stageSpan := startUsecaseSpan(ctx, "usecase.PipelineService."+stage.name,
			attribute.String("hoops.run_id", runID),
			attribute.Int("hoops.reference_year", report.ReferenceYear),
		)
		err := stage.fn(stageCtx, state, stageLogger)
		finishSpan(stageSpan, err)
		elapsed := s.now().Sub(startedAt)
		s.observer.StageFinished(stage.name, elapsed, err)
		if err != nil {
			stageLogger.ErrorContext(ctx, "pipeline stage failed", "error", err, "duration_ms", elapsed.Milliseconds())
			return report, fmt.Errorf("pipeline stage %s: %w", stage.name, err)
		}
		stageLogger.InfoContext(ctx, "pipeline stage finished", "duration_ms", elapsed.Milliseconds())
	}

	s.observer.WarningsObserved("malformed_season", report.Warnings.MalformedSeasons)
	s.observer.WarningsObserved("sparse_cohort", report.Warnings.SparseCohorts)
	s.observer.WarningsObserved("ineligible", report.Warnings.Ineligible)
	s.observer.WarningsObserved("merge_conflict", report.Warnings.MergeConflicts)

	report.FinishedAt = s.now().UTC()
	logger.InfoContext(ctx, "pipeline run finished",
		"profiles", report.Profiles,
		"metrics", report.Metrics,
		"potentials", report.Potentials,
		"careers", report.Careers,
		"malformed_seasons", report.Warnings.MalformedSeasons,
		"duration_ms", report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	)
	return report, nil
}

func (s *PipelineService) runBaselines(ctx context.Context, state *runState, logger *logging.Logger) error {
	profiles, err := s.profileRepo.List(ctx, profile.Filter{})
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}
	games, err := s.loadGames(ctx, profiles)
	if err != nil {
		return err
	}
	state.profiles = profiles
	state.games = games
	state.report.Profiles = len(profiles)

	builder := cohort.NewBuilder()
	for _, p := range profiles {
		metrics.ObserveGames(builder, cohort.Key{Level: p.CompetitionLevel, Season: p.Season}, games[p.ID])
	}
	state.baselines = builder.Build()

	sparse := state.baselines.Sparse()
	for _, b := range sparse {
		logger.WarnContext(ctx, "cohort baseline below minimum sample size",
			"cohort", b.Key.String(),
			"metric", b.Metric,
			"sample_size", b.SampleSize,
			"min_sample_size", cohort.MinSampleSize,
		)
	}
	state.report.Warnings.SparseCohorts = len(sparse)

	list := state.baselines.List()
	if err := s.baselineRepo.ReplaceBaselines(ctx, list); err != nil {
		return fmt.Errorf("replace cohort baselines: %w", err)
	}
	state.report.Baselines = len(list)
	s.observer.RecordsWritten(StageBaselines, len(list))
	logger.InfoContext(ctx, "cohort baselines built", "baselines", len(list), "sparse", len(sparse))
	return nil
}

func (s *PipelineService) loadGames(ctx context.Context, profiles []profile.Profile) (map[int64][]profile.GameStat, error) {
	out := make(map[int64][]profile.GameStat, len(profiles))
	ids := make([]int64, 0, s.cfg.BatchSize)
	flush := func() error {
		if len(ids) == 0 {
			return nil
		}
		stats, err := s.profileRepo.ListGameStats(ctx, ids)
		if err != nil {
			return fmt.Errorf("list game stats: %w", err)
		}
		for _, g := range stats {
			out[g.ProfileID] = append(out[g.ProfileID], g)
		}
		ids = ids[:0]
		return nil
	}
	for _, p := range profiles {
		ids = append(ids, p.ID)
		if len(ids) >= s.cfg.BatchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PipelineService) runMetrics(ctx context.Context, state *runState, logger *logging.Logger) error {
	teams := metrics.BuildTeamTotals(state.profiles, state.games)

	workers := pool.NewWithResults[metrics.ProfileMetrics]().
		WithMaxGoroutines(s.cfg.Workers).
		WithContext(ctx).
		WithCancelOnError()
	for _, p := range state.profiles {
		p := p
		workers.Go(func(ctx context.Context) (metrics.ProfileMetrics, error) {
			if err := ctx.Err(); err != nil {
				return metrics.ProfileMetrics{}, err
			}
			team := teams[metrics.TeamKey{TeamID: p.TeamID, Season: p.Season}]
			return metrics.Aggregate(p, state.games[p.ID], team, state.baselines), nil
		})
	}
	results, err := workers.Wait()
	if err != nil {
		return fmt.Errorf("aggregate profile metrics: %w", err)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ProfileID < results[j].ProfileID })

	if err := writeBatches(results, s.cfg.BatchSize, func(batch []metrics.ProfileMetrics) error {
		return s.metricsRepo.UpsertMetrics(ctx, batch)
	}); err != nil {
		return fmt.Errorf("upsert profile metrics: %w", err)
	}

	state.metrics = make(map[int64]metrics.ProfileMetrics, len(results))
	for _, m := range results {
		state.metrics[m.ProfileID] = m
	}
	state.report.Metrics = len(results)
	s.observer.RecordsWritten(StageMetrics, len(results))
	logger.InfoContext(ctx, "profile metrics aggregated", "profiles", len(results), "teams", len(teams))
	return nil
}

func (s *PipelineService) runPotentials(ctx context.Context, state *runState, logger *logging.Logger) error {
	out := make([]potential.ProfilePotential, 0, len(state.profiles))
	malformed := 0
	for _, p := range state.profiles {
		m, ok := state.metrics[p.ID]
		if !ok {
			continue
		}
		scored, err := potential.Score(p, m, state.refYear)
		if err != nil {
			if !errors.Is(err, season.ErrMalformedSeason) {
				return fmt.Errorf("score profile %d: %w", p.ID, err)
			}
			malformed++
		}
		if !scored.Eligible {
			state.report.Warnings.Ineligible++
		}
		out = append(out, scored)
	}

	if err := writeBatches(out, s.cfg.BatchSize, func(batch []potential.ProfilePotential) error {
		return s.potentialRepo.UpsertPotentials(ctx, batch)
	}); err != nil {
		return fmt.Errorf("upsert profile potentials: %w", err)
	}

	state.report.Potentials = len(out)
	state.report.Warnings.MalformedSeasons += malformed
	s.observer.RecordsWritten(StagePotentials, len(out))
	if malformed > 0 {
		logger.WarnContext(ctx, "profiles scored with malformed seasons", "count", malformed)
	}
	logger.InfoContext(ctx, "season potentials scored",
		"profiles", len(out),
		"ineligible", state.report.Warnings.Ineligible,
	)
	return nil
}

func (s *PipelineService) runCandidates(ctx context.Context, state *runState, _ *logging.Logger) error {
	if s.identitySvc == nil {
		return nil
	}
	report, err := s.identitySvc.GenerateCandidates(ctx)
	if err != nil {
		return err
	}
	state.report.Candidates = report
	s.observer.RecordsWritten(StageCandidates, report.Inserted)
	return nil
}

func (s *PipelineService) runConsolidation(ctx context.Context, state *runState, _ *logging.Logger) error {
	if s.identitySvc == nil {
		return nil
	}
	report, err := s.identitySvc.Consolidate(ctx)
	if err != nil {
		return err
	}
	state.report.Consolidation = report
	state.report.Warnings.MergeConflicts = len(report.Conflicts)
	s.observer.RecordsWritten(StageConsolidation, report.Profiles)
	return nil
}

func (s *PipelineService) runCareers(ctx context.Context, state *runState, logger *logging.Logger) error {
	// Consolidation changed career keys, so profiles are read again.
	profiles, err := s.profileRepo.List(ctx, profile.Filter{})
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}
	potentials, err := s.potentialRepo.ListPotentials(ctx)
	if err != nil {
		return fmt.Errorf("list profile potentials: %w", err)
	}
	records, err := s.profileRepo.ListTeamRecords(ctx)
	if err != nil {
		return fmt.Errorf("list team records: %w", err)
	}
	strength := career.BuildTeamStrength(records)

	byProfile := make(map[int64]potential.ProfilePotential, len(potentials))
	for _, item := range potentials {
		if item.Season != "" {
			byProfile[item.ProfileID] = item
		}
	}

	groups := make(map[string][]career.Member)
	for _, p := range profiles {
		pot, ok := byProfile[p.ID]
		if !ok || pot.Season != p.Season {
			continue
		}
		key := p.CareerKey()
		groups[key] = append(groups[key], career.Member{Profile: p, Potential: pot})
	}
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]career.CareerPotential, 0, len(keys))
	malformed := 0
	for _, key := range keys {
		item, ok, warnings := career.Aggregate(key, groups[key], strength, state.refYear)
		malformed += len(warnings)
		if ok {
			out = append(out, item)
		}
	}
	if err := s.careerRepo.ReplaceCareers(ctx, out); err != nil {
		return fmt.Errorf("replace career potentials: %w", err)
	}

	state.report.Careers = len(out)
	state.report.Warnings.MalformedSeasons += malformed
	s.observer.RecordsWritten(StageCareers, len(out))
	if malformed > 0 {
		logger.WarnContext(ctx, "career seasons with malformed labels", "count", malformed)
	}
	logger.InfoContext(ctx, "career potentials aggregated", "players", len(keys), "careers", len(out))
	return nil
}

func writeBatches[T any](items []T, size int, write func([]T) error) error {
	if size <= 0 {
		size = len(items)
	}
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		if err := write(items[start:end]); err != nil {
			return err
		}
	}
	return nil
}

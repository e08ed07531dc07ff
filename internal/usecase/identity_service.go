package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/hoops-scout/internal/domain/identity"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/logging"
)

type IdentityConfig struct {
	MinCandidateScore      float64
	ConsolidationThreshold float64
	BlockPrefixLen         int
	Workers                int
	BatchSize              int
}

type CandidateReport struct {
	Profiles         int   `json:"profiles"`
	Blocks           int   `json:"blocks"`
	Compared         int64 `json:"compared"`
	Candidates       int   `json:"candidates"`
	Inserted         int   `json:"inserted"`
	MalformedSeasons int64 `json:"malformed_seasons"`
	// SameCluster counts pairs skipped because both profiles already belong
	// to one consolidated player.
	SameCluster int64 `json:"same_cluster"`
	DurationMs  int64 `json:"duration_ms"`
}

type ConsolidationReport struct {
	Players   int                      `json:"players"`
	Profiles  int                      `json:"profiles"`
	Conflicts []identity.MergeConflict `json:"conflicts"`
}

type ValidateCandidateInput struct {
	CandidateID int64
	Status      string
	By          string
	Notes       string
}

type IdentityService struct {
	profileRepo  profile.Repository
	identityRepo identity.Repository
	cfg          IdentityConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewIdentityService(
	profileRepo profile.Repository,
	identityRepo identity.Repository,
	cfg IdentityConfig,
	logger *logging.Logger,
) *IdentityService {
	if cfg.MinCandidateScore <= 0 {
		cfg.MinCandidateScore = 0.5
	}
	if cfg.ConsolidationThreshold <= 0 {
		cfg.ConsolidationThreshold = 0.85
	}
	if cfg.BlockPrefixLen <= 0 {
		cfg.BlockPrefixLen = 3
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &IdentityService{
		profileRepo:  profileRepo,
		identityRepo: identityRepo,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// GenerateCandidates scores every pair of profiles sharing a surname block
// and stores the pairs at or above the minimum score. Pairs already stored
// keep their review state.
func (s *IdentityService) GenerateCandidates(ctx context.Context) (CandidateReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentityService.GenerateCandidates")
	out, err := s.generateCandidates(ctx)
	finishSpan(span, err)
	return out, err
}

func (s *IdentityService) generateCandidates(ctx context.Context) (CandidateReport, error) {
	startedAt := s.now()
	profiles, err := s.profileRepo.List(ctx, profile.Filter{})
	if err != nil {
		return CandidateReport{}, fmt.Errorf("list profiles: %w", err)
	}

	// Consolidated profiles stay in the comparison so new seasons can still
	// link to an existing cluster; only pairs inside one cluster are skipped.
	subjects := make([]identity.Subject, 0, len(profiles))
	clusters := make([]int64, len(profiles))
	for i, p := range profiles {
		subjects = append(subjects, identity.SubjectFromProfile(p))
		if p.IsConsolidated && p.ConsolidatedPlayerID != nil {
			clusters[i] = *p.ConsolidatedPlayerID
		}
	}
	blocking := identity.NewBlocking(subjects, s.cfg.BlockPrefixLen)
	blocks := blocking.Blocks()

	report := CandidateReport{Profiles: len(profiles), Blocks: len(blocks)}
	s.logger.InfoContext(ctx, "candidate generation started",
		"profiles", report.Profiles,
		"blocks", report.Blocks,
		"pairs", blocking.PairCount(),
	)

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return report, fmt.Errorf("create candidate worker pool: %w", err)
	}
	defer pool.Release()

	var (
		compared    atomic.Int64
		malformed   atomic.Int64
		sameCluster atomic.Int64
		mu          sync.Mutex
		found       []identity.Candidate
		workers     sync.WaitGroup
	)
	for _, block := range blocks {
		if ctx.Err() != nil {
			break
		}
		block := block
		workers.Add(1)
		submitErr := pool.Submit(func() {
			defer workers.Done()

			var local []identity.Candidate
			blocking.ForEachPair(block, func(i, j int) {
				if clusters[i] != 0 && clusters[i] == clusters[j] {
					sameCluster.Add(1)
					return
				}
				a, b := subjects[i], subjects[j]
				score := identity.ScorePair(a, b)
				compared.Add(1)
				if score.MalformedSeason {
					malformed.Add(1)
				}
				if score.Total < s.cfg.MinCandidateScore {
					return
				}
				candidate, err := identity.NewCandidate(a, b, score)
				if err != nil {
					return
				}
				local = append(local, candidate)
			})
			if len(local) == 0 {
				return
			}
			mu.Lock()
			found = append(found, local...)
			mu.Unlock()
			s.logger.DebugContext(ctx, "candidate block scored", "block", block.Key, "members", len(block.Members), "candidates", len(local))
		})
		if submitErr != nil {
			workers.Done()
			workers.Wait()
			return report, fmt.Errorf("submit candidate block %q: %w", block.Key, submitErr)
		}
	}
	workers.Wait()
	if err := ctx.Err(); err != nil {
		return report, err
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].ProfileID1 != found[j].ProfileID1 {
			return found[i].ProfileID1 < found[j].ProfileID1
		}
		return found[i].ProfileID2 < found[j].ProfileID2
	})
	for start := 0; start < len(found); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(found))
		inserted, err := s.identityRepo.InsertCandidates(ctx, found[start:end])
		if err != nil {
			return report, fmt.Errorf("insert candidates: %w", err)
		}
		report.Inserted += inserted
	}

	report.Compared = compared.Load()
	report.MalformedSeasons = malformed.Load()
	report.SameCluster = sameCluster.Load()
	report.Candidates = len(found)
	report.DurationMs = s.now().Sub(startedAt).Milliseconds()
	if report.MalformedSeasons > 0 {
		s.logger.WarnContext(ctx, "candidate pairs scored with malformed seasons", "count", report.MalformedSeasons)
	}
	s.logger.InfoContext(ctx, "candidate generation finished",
		"compared", report.Compared,
		"same_cluster", report.SameCluster,
		"candidates", report.Candidates,
		"inserted", report.Inserted,
		"duration_ms", report.DurationMs,
	)
	return report, nil
}

// Validate records a reviewer decision on a candidate.
func (s *IdentityService) Validate(ctx context.Context, input ValidateCandidateInput) (identity.Candidate, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentityService.Validate")
	defer span.End()

	if input.CandidateID <= 0 {
		return identity.Candidate{}, fmt.Errorf("%w: candidate id is required", ErrInvalidInput)
	}
	status, err := identity.ParseStatus(input.Status)
	if err != nil {
		return identity.Candidate{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	by := strings.TrimSpace(input.By)
	if status != identity.StatusPending && by == "" {
		return identity.Candidate{}, fmt.Errorf("%w: reviewer is required", ErrInvalidInput)
	}

	if _, exists, err := s.identityRepo.GetByID(ctx, input.CandidateID); err != nil {
		return identity.Candidate{}, fmt.Errorf("get candidate: %w", err)
	} else if !exists {
		return identity.Candidate{}, fmt.Errorf("%w: candidate=%d", ErrNotFound, input.CandidateID)
	}

	updated, err := s.identityRepo.UpdateValidation(ctx, identity.Validation{
		CandidateID: input.CandidateID,
		Status:      status,
		By:          by,
		Notes:       strings.TrimSpace(input.Notes),
	}, s.now().UTC())
	if err != nil {
		return identity.Candidate{}, fmt.Errorf("update candidate validation: %w", err)
	}
	s.logger.InfoContext(ctx, "candidate validated", "candidate_id", updated.ID, "status", updated.Status, "by", by)
	return updated, nil
}

func (s *IdentityService) Stats(ctx context.Context) (identity.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentityService.Stats")
	defer span.End()

	stats, err := s.identityRepo.Stats(ctx)
	if err != nil {
		return identity.Stats{}, fmt.Errorf("candidate stats: %w", err)
	}
	return stats, nil
}

// Consolidate rebuilds every consolidated player from the confirmed
// candidates. Previous assignments are cleared first so reruns converge.
func (s *IdentityService) Consolidate(ctx context.Context) (ConsolidationReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IdentityService.Consolidate")
	out, err := s.consolidate(ctx)
	finishSpan(span, err)
	return out, err
}

func (s *IdentityService) consolidate(ctx context.Context) (ConsolidationReport, error) {
	profiles, err := s.profileRepo.List(ctx, profile.Filter{})
	if err != nil {
		return ConsolidationReport{}, fmt.Errorf("list profiles: %w", err)
	}
	confirmed, err := s.identityRepo.ListConfirmed(ctx, s.cfg.ConsolidationThreshold)
	if err != nil {
		return ConsolidationReport{}, fmt.Errorf("list confirmed candidates: %w", err)
	}

	plan := identity.PlanConsolidation(profiles, confirmed, s.cfg.ConsolidationThreshold)
	if err := s.profileRepo.ResetConsolidation(ctx); err != nil {
		return ConsolidationReport{}, fmt.Errorf("reset consolidation: %w", err)
	}
	for start := 0; start < len(plan.Assignments); start += s.cfg.BatchSize {
		end := min(start+s.cfg.BatchSize, len(plan.Assignments))
		if err := s.profileRepo.ApplyConsolidation(ctx, plan.Assignments[start:end]); err != nil {
			return ConsolidationReport{}, fmt.Errorf("apply consolidation: %w", err)
		}
	}

	for _, conflict := range plan.Conflicts {
		s.logger.WarnContext(ctx, "consolidation merge refused",
			"candidate_id", conflict.CandidateID,
			"profile_id_1", conflict.ProfileID1,
			"profile_id_2", conflict.ProfileID2,
			"reason", conflict.Reason,
		)
	}
	report := ConsolidationReport{
		Players:   len(plan.Players),
		Profiles:  len(plan.Assignments),
		Conflicts: plan.Conflicts,
	}
	s.logger.InfoContext(ctx, "consolidation finished",
		"confirmed", len(confirmed),
		"players", report.Players,
		"profiles", report.Profiles,
		"conflicts", len(report.Conflicts),
	)
	return report, nil
}

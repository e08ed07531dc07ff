package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/hoops-scout/internal/domain/career"
	"github.com/riskibarqy/hoops-scout/internal/domain/identity"
	"github.com/riskibarqy/hoops-scout/internal/domain/metrics"
	"github.com/riskibarqy/hoops-scout/internal/domain/potential"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/platform/season"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

type CandidateQuery struct {
	Status   string
	MinScore float64
	Limit    int
}

// CandidateView is a candidate with both of its profiles attached.
type CandidateView struct {
	Candidate identity.Candidate
	Profile1  profile.Profile
	Profile2  profile.Profile
}

// QueryService serves the read side of the scoring outputs.
type QueryService struct {
	profileRepo   profile.Repository
	metricsRepo   metrics.Repository
	potentialRepo potential.Repository
	careerRepo    career.Repository
	identityRepo  identity.Repository
}

func NewQueryService(
	profileRepo profile.Repository,
	metricsRepo metrics.Repository,
	potentialRepo potential.Repository,
	careerRepo career.Repository,
	identityRepo identity.Repository,
) *QueryService {
	return &QueryService{
		profileRepo:   profileRepo,
		metricsRepo:   metricsRepo,
		potentialRepo: potentialRepo,
		careerRepo:    careerRepo,
		identityRepo:  identityRepo,
	}
}

func (s *QueryService) GetProfile(ctx context.Context, profileID int64) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.GetProfile")
	defer span.End()

	if profileID <= 0 {
		return profile.Profile{}, fmt.Errorf("%w: profile id is required", ErrInvalidInput)
	}
	item, exists, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile=%d", ErrNotFound, profileID)
	}
	return item, nil
}

// GetProfileMetrics returns the season metrics of a profile. An empty season
// means the profile's own season.
func (s *QueryService) GetProfileMetrics(ctx context.Context, profileID int64, seasonLabel string) (metrics.ProfileMetrics, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.GetProfileMetrics")
	defer span.End()

	label, err := s.resolveSeason(ctx, profileID, seasonLabel)
	if err != nil {
		return metrics.ProfileMetrics{}, err
	}
	item, exists, err := s.metricsRepo.GetMetrics(ctx, profileID, label)
	if err != nil {
		return metrics.ProfileMetrics{}, fmt.Errorf("get profile metrics: %w", err)
	}
	if !exists {
		return metrics.ProfileMetrics{}, fmt.Errorf("%w: metrics for profile=%d season=%s", ErrNotFound, profileID, label)
	}
	return item, nil
}

func (s *QueryService) GetProfilePotential(ctx context.Context, profileID int64, seasonLabel string) (potential.ProfilePotential, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.GetProfilePotential")
	defer span.End()

	label, err := s.resolveSeason(ctx, profileID, seasonLabel)
	if err != nil {
		return potential.ProfilePotential{}, err
	}
	item, exists, err := s.potentialRepo.GetPotential(ctx, profileID, label)
	if err != nil {
		return potential.ProfilePotential{}, fmt.Errorf("get profile potential: %w", err)
	}
	if !exists {
		return potential.ProfilePotential{}, fmt.Errorf("%w: potential for profile=%d season=%s", ErrNotFound, profileID, label)
	}
	return item, nil
}

func (s *QueryService) resolveSeason(ctx context.Context, profileID int64, seasonLabel string) (string, error) {
	if profileID <= 0 {
		return "", fmt.Errorf("%w: profile id is required", ErrInvalidInput)
	}
	seasonLabel = strings.TrimSpace(seasonLabel)
	if seasonLabel != "" {
		if canonical, err := season.Normalize(seasonLabel); err == nil {
			return canonical, nil
		}
		return seasonLabel, nil
	}
	item, err := s.GetProfile(ctx, profileID)
	if err != nil {
		return "", err
	}
	return item.Season, nil
}

func (s *QueryService) GetCareer(ctx context.Context, playerKey string) (career.CareerPotential, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.GetCareer")
	defer span.End()

	playerKey = strings.TrimSpace(playerKey)
	if playerKey == "" {
		return career.CareerPotential{}, fmt.Errorf("%w: player key is required", ErrInvalidInput)
	}
	item, exists, err := s.careerRepo.GetCareer(ctx, playerKey)
	if err != nil {
		return career.CareerPotential{}, fmt.Errorf("get career potential: %w", err)
	}
	if !exists {
		return career.CareerPotential{}, fmt.Errorf("%w: career=%s", ErrNotFound, playerKey)
	}
	return item, nil
}

func (s *QueryService) ListCareers(ctx context.Context, minScore float64, limit int) ([]career.CareerPotential, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.ListCareers")
	defer span.End()

	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	items, err := s.careerRepo.ListCareers(ctx, minScore, limit)
	if err != nil {
		return nil, fmt.Errorf("list career potentials: %w", err)
	}
	return items, nil
}

// ListCandidates returns candidates ordered by total score, each with its
// two profiles.
func (s *QueryService) ListCandidates(ctx context.Context, query CandidateQuery) ([]CandidateView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.ListCandidates")
	defer span.End()

	filter := identity.Query{MinScore: query.MinScore}
	if strings.TrimSpace(query.Status) != "" {
		status, err := identity.ParseStatus(query.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = status
	}
	if query.MinScore < 0 || query.MinScore > 1 {
		return nil, fmt.Errorf("%w: min score must be within [0,1]", ErrInvalidInput)
	}
	limit, err := normalizeLimit(query.Limit)
	if err != nil {
		return nil, err
	}
	filter.Limit = limit

	candidates, err := s.identityRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	if len(candidates) == 0 {
		return []CandidateView{}, nil
	}

	ids := make([]int64, 0, len(candidates)*2)
	for _, c := range candidates {
		ids = append(ids, c.ProfileID1, c.ProfileID2)
	}
	profiles, err := s.profileRepo.List(ctx, profile.Filter{IDs: ids})
	if err != nil {
		return nil, fmt.Errorf("list candidate profiles: %w", err)
	}
	byID := make(map[int64]profile.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	out := make([]CandidateView, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, CandidateView{
			Candidate: c,
			Profile1:  byID[c.ProfileID1],
			Profile2:  byID[c.ProfileID2],
		})
	}
	return out, nil
}

func (s *QueryService) CandidateStats(ctx context.Context) (identity.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.CandidateStats")
	defer span.End()

	stats, err := s.identityRepo.Stats(ctx)
	if err != nil {
		return identity.Stats{}, fmt.Errorf("candidate stats: %w", err)
	}
	return stats, nil
}

// ListByPotential returns eligible season potentials at or above minScore,
// best first.
func (s *QueryService) ListByPotential(ctx context.Context, minScore float64, limit int) ([]potential.ProfilePotential, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.QueryService.ListByPotential")
	defer span.End()

	if minScore < 0 || minScore > 1 {
		return nil, fmt.Errorf("%w: min score must be within [0,1]", ErrInvalidInput)
	}
	limit, err := normalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	items, err := s.potentialRepo.ListByPotential(ctx, minScore, limit)
	if err != nil {
		return nil, fmt.Errorf("list potentials: %w", err)
	}
	return items, nil
}

func normalizeLimit(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, fmt.Errorf("%w: limit must not be negative", ErrInvalidInput)
	case limit == 0:
		return defaultListLimit, nil
	case limit > maxListLimit:
		return maxListLimit, nil
	default:
		return limit, nil
	}
}

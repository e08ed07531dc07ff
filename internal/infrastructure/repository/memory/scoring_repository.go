package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/hoops-scout/internal/domain/career"
	"github.com/riskibarqy/hoops-scout/internal/domain/cohort"
	"github.com/riskibarqy/hoops-scout/internal/domain/metrics"
	"github.com/riskibarqy/hoops-scout/internal/domain/potential"
)

type seasonRowKey struct {
	profileID int64
	season    string
}

// ScoringRepository keeps every pipeline output in memory. It implements
// cohort, metrics, potential and career repositories.
type ScoringRepository struct {
	mu         sync.RWMutex
	baselines  []cohort.Baseline
	metrics    map[seasonRowKey]metrics.ProfileMetrics
	potentials map[seasonRowKey]potential.ProfilePotential
	careers    map[string]career.CareerPotential
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{
		metrics:    make(map[seasonRowKey]metrics.ProfileMetrics),
		potentials: make(map[seasonRowKey]potential.ProfilePotential),
		careers:    make(map[string]career.CareerPotential),
	}
}

func (r *ScoringRepository) ReplaceBaselines(_ context.Context, items []cohort.Baseline) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.baselines = append([]cohort.Baseline(nil), items...)
	return nil
}

func (r *ScoringRepository) ListBaselines(_ context.Context) ([]cohort.Baseline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cohort.FromList(r.baselines).List(), nil
}

func (r *ScoringRepository) UpsertMetrics(_ context.Context, items []metrics.ProfileMetrics) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.metrics[seasonRowKey{profileID: item.ProfileID, season: item.Season}] = item
	}
	return nil
}

func (r *ScoringRepository) GetMetrics(_ context.Context, profileID int64, season string) (metrics.ProfileMetrics, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.metrics[seasonRowKey{profileID: profileID, season: season}]
	return item, ok, nil
}

func (r *ScoringRepository) ListMetrics(_ context.Context, season string) ([]metrics.ProfileMetrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]metrics.ProfileMetrics, 0, len(r.metrics))
	for _, item := range r.metrics {
		if season != "" && item.Season != season {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProfileID < out[j].ProfileID })
	return out, nil
}

func (r *ScoringRepository) UpsertPotentials(_ context.Context, items []potential.ProfilePotential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.potentials[seasonRowKey{profileID: item.ProfileID, season: item.Season}] = item
	}
	return nil
}

func (r *ScoringRepository) GetPotential(_ context.Context, profileID int64, season string) (potential.ProfilePotential, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.potentials[seasonRowKey{profileID: profileID, season: season}]
	return item, ok, nil
}

func (r *ScoringRepository) ListPotentials(_ context.Context) ([]potential.ProfilePotential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]potential.ProfilePotential, 0, len(r.potentials))
	for _, item := range r.potentials {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProfileID < out[j].ProfileID })
	return out, nil
}

func (r *ScoringRepository) ListByPotential(_ context.Context, minScore float64, limit int) ([]potential.ProfilePotential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]potential.ProfilePotential, 0)
	for _, item := range r.potentials {
		if !item.Eligible || item.PotentialScore == nil || *item.PotentialScore < minScore {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if *out[i].PotentialScore != *out[j].PotentialScore {
			return *out[i].PotentialScore > *out[j].PotentialScore
		}
		return out[i].ProfileID < out[j].ProfileID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ScoringRepository) ReplaceCareers(_ context.Context, items []career.CareerPotential) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.careers = make(map[string]career.CareerPotential, len(items))
	for _, item := range items {
		r.careers[item.PlayerKey] = item
	}
	return nil
}

func (r *ScoringRepository) GetCareer(_ context.Context, playerKey string) (career.CareerPotential, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.careers[playerKey]
	return item, ok, nil
}

func (r *ScoringRepository) ListCareers(_ context.Context, minScore float64, limit int) ([]career.CareerPotential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]career.CareerPotential, 0, len(r.careers))
	for _, item := range r.careers {
		if item.UnifiedScore < minScore {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UnifiedScore != out[j].UnifiedScore {
			return out[i].UnifiedScore > out[j].UnifiedScore
		}
		return out[i].PlayerKey < out[j].PlayerKey
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

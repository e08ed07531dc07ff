package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/riskibarqy/hoops-scout/internal/domain/career"
	"github.com/riskibarqy/hoops-scout/internal/domain/identity"
	"github.com/riskibarqy/hoops-scout/internal/domain/metrics"
	"github.com/riskibarqy/hoops-scout/internal/domain/potential"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	basecache "github.com/riskibarqy/hoops-scout/internal/platform/cache"
)

const (
	profilePrefix   = "profile:"
	metricsPrefix   = "metrics:"
	potentialPrefix = "potential:"
	careerPrefix    = "career:"
	candidatePrefix = "candidate:"
)

type ProfileRepository struct {
	next  profile.Repository
	cache *basecache.Store
}

func NewProfileRepository(next profile.Repository, cache *basecache.Store) *ProfileRepository {
	return &ProfileRepository{next: next, cache: cache}
}

func (r *ProfileRepository) Upsert(ctx context.Context, item profile.Profile) (int64, error) {
	id, err := r.next.Upsert(ctx, item)
	if err != nil {
		return 0, err
	}
	r.cache.Delete(ctx, profilePrefix+"id:"+strconv.FormatInt(id, 10))
	return id, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, profileID int64) (profile.Profile, bool, error) {
	key := profilePrefix + "id:" + strconv.FormatInt(profileID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, profileID)
		if err != nil {
			return nil, err
		}
		return cachedProfileByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return profile.Profile{}, false, err
	}

	cached, _ := v.(cachedProfileByID)
	return cached.value, cached.exists, nil
}

type cachedProfileByID struct {
	value  profile.Profile
	exists bool
}

func (r *ProfileRepository) List(ctx context.Context, filter profile.Filter) ([]profile.Profile, error) {
	return r.next.List(ctx, filter)
}

func (r *ProfileRepository) UpsertGameStats(ctx context.Context, stats []profile.GameStat) error {
	return r.next.UpsertGameStats(ctx, stats)
}

func (r *ProfileRepository) ListGameStats(ctx context.Context, profileIDs []int64) ([]profile.GameStat, error) {
	return r.next.ListGameStats(ctx, profileIDs)
}

func (r *ProfileRepository) RefreshTotals(ctx context.Context, profileIDs []int64) error {
	if err := r.next.RefreshTotals(ctx, profileIDs); err != nil {
		return err
	}
	for _, id := range profileIDs {
		r.cache.Delete(ctx, profilePrefix+"id:"+strconv.FormatInt(id, 10))
	}
	return nil
}

func (r *ProfileRepository) ResetConsolidation(ctx context.Context) error {
	if err := r.next.ResetConsolidation(ctx); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, profilePrefix)
	return nil
}

func (r *ProfileRepository) ApplyConsolidation(ctx context.Context, assignments []profile.Assignment) error {
	if err := r.next.ApplyConsolidation(ctx, assignments); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, profilePrefix)
	return nil
}

func (r *ProfileRepository) ListTeamRecords(ctx context.Context) ([]profile.TeamRecord, error) {
	return r.next.ListTeamRecords(ctx)
}

type MetricsRepository struct {
	next  metrics.Repository
	cache *basecache.Store
}

func NewMetricsRepository(next metrics.Repository, cache *basecache.Store) *MetricsRepository {
	return &MetricsRepository{next: next, cache: cache}
}

func (r *MetricsRepository) UpsertMetrics(ctx context.Context, items []metrics.ProfileMetrics) error {
	if err := r.next.UpsertMetrics(ctx, items); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, metricsPrefix)
	return nil
}

func (r *MetricsRepository) GetMetrics(ctx context.Context, profileID int64, season string) (metrics.ProfileMetrics, bool, error) {
	key := seasonKey(metricsPrefix, profileID, season)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetMetrics(ctx, profileID, season)
		if err != nil {
			return nil, err
		}
		return cachedMetrics{value: item, exists: exists}, nil
	})
	if err != nil {
		return metrics.ProfileMetrics{}, false, err
	}

	cached, _ := v.(cachedMetrics)
	return cached.value, cached.exists, nil
}

type cachedMetrics struct {
	value  metrics.ProfileMetrics
	exists bool
}

func (r *MetricsRepository) ListMetrics(ctx context.Context, season string) ([]metrics.ProfileMetrics, error) {
	return r.next.ListMetrics(ctx, season)
}

type PotentialRepository struct {
	next  potential.Repository
	cache *basecache.Store
}

func NewPotentialRepository(next potential.Repository, cache *basecache.Store) *PotentialRepository {
	return &PotentialRepository{next: next, cache: cache}
}

func (r *PotentialRepository) UpsertPotentials(ctx context.Context, items []potential.ProfilePotential) error {
	if err := r.next.UpsertPotentials(ctx, items); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, potentialPrefix)
	return nil
}

func (r *PotentialRepository) GetPotential(ctx context.Context, profileID int64, season string) (potential.ProfilePotential, bool, error) {
	key := seasonKey(potentialPrefix, profileID, season)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetPotential(ctx, profileID, season)
		if err != nil {
			return nil, err
		}
		return cachedPotential{value: item, exists: exists}, nil
	})
	if err != nil {
		return potential.ProfilePotential{}, false, err
	}

	cached, _ := v.(cachedPotential)
	return cached.value, cached.exists, nil
}

type cachedPotential struct {
	value  potential.ProfilePotential
	exists bool
}

func (r *PotentialRepository) ListPotentials(ctx context.Context) ([]potential.ProfilePotential, error) {
	return r.next.ListPotentials(ctx)
}

func (r *PotentialRepository) ListByPotential(ctx context.Context, minScore float64, limit int) ([]potential.ProfilePotential, error) {
	key := fmt.Sprintf("%slist:%g:%d", potentialPrefix, minScore, limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByPotential(ctx, minScore, limit)
		if err != nil {
			return nil, err
		}
		return append([]potential.ProfilePotential(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]potential.ProfilePotential)
	return append([]potential.ProfilePotential(nil), items...), nil
}

type CareerRepository struct {
	next  career.Repository
	cache *basecache.Store
}

func NewCareerRepository(next career.Repository, cache *basecache.Store) *CareerRepository {
	return &CareerRepository{next: next, cache: cache}
}

func (r *CareerRepository) ReplaceCareers(ctx context.Context, items []career.CareerPotential) error {
	if err := r.next.ReplaceCareers(ctx, items); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, careerPrefix)
	return nil
}

func (r *CareerRepository) GetCareer(ctx context.Context, playerKey string) (career.CareerPotential, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, careerPrefix+"key:"+playerKey, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetCareer(ctx, playerKey)
		if err != nil {
			return nil, err
		}
		return cachedCareer{value: item, exists: exists}, nil
	})
	if err != nil {
		return career.CareerPotential{}, false, err
	}

	cached, _ := v.(cachedCareer)
	return cached.value, cached.exists, nil
}

type cachedCareer struct {
	value  career.CareerPotential
	exists bool
}

func (r *CareerRepository) ListCareers(ctx context.Context, minScore float64, limit int) ([]career.CareerPotential, error) {
	key := fmt.Sprintf("%slist:%g:%d", careerPrefix, minScore, limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListCareers(ctx, minScore, limit)
		if err != nil {
			return nil, err
		}
		return append([]career.CareerPotential(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]career.CareerPotential)
	return append([]career.CareerPotential(nil), items...), nil
}

// IdentityRepository caches the review queue reads. Any write drops every
// candidate entry because listings and stats depend on statuses.
type IdentityRepository struct {
	next  identity.Repository
	cache *basecache.Store
}

func NewIdentityRepository(next identity.Repository, cache *basecache.Store) *IdentityRepository {
	return &IdentityRepository{next: next, cache: cache}
}

func (r *IdentityRepository) InsertCandidates(ctx context.Context, items []identity.Candidate) (int, error) {
	n, err := r.next.InsertCandidates(ctx, items)
	if err != nil {
		return n, err
	}
	if n > 0 {
		r.cache.DeletePrefix(ctx, candidatePrefix)
	}
	return n, nil
}

// GetByID always reads through: validation depends on the current status.
func (r *IdentityRepository) GetByID(ctx context.Context, candidateID int64) (identity.Candidate, bool, error) {
	return r.next.GetByID(ctx, candidateID)
}

func (r *IdentityRepository) List(ctx context.Context, query identity.Query) ([]identity.Candidate, error) {
	key := fmt.Sprintf("%slist:%s:%g:%d", candidatePrefix, query.Status, query.MinScore, query.Limit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, query)
		if err != nil {
			return nil, err
		}
		return append([]identity.Candidate(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]identity.Candidate)
	return append([]identity.Candidate(nil), items...), nil
}

func (r *IdentityRepository) UpdateValidation(ctx context.Context, validation identity.Validation, at time.Time) (identity.Candidate, error) {
	item, err := r.next.UpdateValidation(ctx, validation, at)
	if err != nil {
		return identity.Candidate{}, err
	}
	r.cache.DeletePrefix(ctx, candidatePrefix)
	return item, nil
}

// ListConfirmed feeds consolidation and must see the latest decisions.
func (r *IdentityRepository) ListConfirmed(ctx context.Context, minScore float64) ([]identity.Candidate, error) {
	return r.next.ListConfirmed(ctx, minScore)
}

func (r *IdentityRepository) Stats(ctx context.Context) (identity.Stats, error) {
	v, err := r.cache.GetOrLoad(ctx, candidatePrefix+"stats", func(ctx context.Context) (any, error) {
		return r.next.Stats(ctx)
	})
	if err != nil {
		return identity.Stats{}, err
	}

	cached, _ := v.(identity.Stats)
	stats := identity.Stats{
		Total:        cached.Total,
		ByStatus:     make(map[identity.Status]int, len(cached.ByStatus)),
		ByConfidence: make(map[identity.Confidence]int, len(cached.ByConfidence)),
	}
	for k, n := range cached.ByStatus {
		stats.ByStatus[k] = n
	}
	for k, n := range cached.ByConfidence {
		stats.ByConfidence[k] = n
	}
	return stats, nil
}

func seasonKey(prefix string, profileID int64, season string) string {
	return prefix + strconv.FormatInt(profileID, 10) + ":" + season
}

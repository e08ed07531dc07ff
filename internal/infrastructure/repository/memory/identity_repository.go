package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/hoops-scout/internal/domain/identity"
)

type pairKey struct {
	p1 int64
	p2 int64
}

type IdentityRepository struct {
	mu         sync.RWMutex
	nextID     int64
	candidates map[int64]identity.Candidate
	byPair     map[pairKey]int64
	now        func() time.Time
}

func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{
		candidates: make(map[int64]identity.Candidate),
		byPair:     make(map[pairKey]int64),
		now:        time.Now,
	}
}

func (r *IdentityRepository) InsertCandidates(_ context.Context, items []identity.Candidate) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	inserted := 0
	for _, item := range items {
		key := pairKey{p1: item.ProfileID1, p2: item.ProfileID2}
		if _, ok := r.byPair[key]; ok {
			continue
		}
		r.nextID++
		item.ID = r.nextID
		if item.Status == "" {
			item.Status = identity.StatusPending
		}
		item.CreatedAt = r.now().UTC()
		r.candidates[item.ID] = item
		r.byPair[key] = item.ID
		inserted++
	}
	return inserted, nil
}

func (r *IdentityRepository) GetByID(_ context.Context, candidateID int64) (identity.Candidate, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.candidates[candidateID]
	return item, ok, nil
}

func (r *IdentityRepository) List(_ context.Context, query identity.Query) ([]identity.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]identity.Candidate, 0)
	for _, item := range r.candidates {
		if query.Status != "" && item.Status != query.Status {
			continue
		}
		if item.TotalScore < query.MinScore {
			continue
		}
		out = append(out, item)
	}
	sortCandidates(out)
	if query.Limit > 0 && len(out) > query.Limit {
		out = out[:query.Limit]
	}
	return out, nil
}

func (r *IdentityRepository) UpdateValidation(_ context.Context, validation identity.Validation, at time.Time) (identity.Candidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.candidates[validation.CandidateID]
	if !ok {
		return identity.Candidate{}, fmt.Errorf("candidate %d not found", validation.CandidateID)
	}
	item.Status = validation.Status
	item.ValidatedBy = validation.By
	item.Notes = validation.Notes
	validatedAt := at.UTC()
	item.ValidatedAt = &validatedAt
	r.candidates[item.ID] = item
	return item, nil
}

func (r *IdentityRepository) ListConfirmed(ctx context.Context, minScore float64) ([]identity.Candidate, error) {
	return r.List(ctx, identity.Query{Status: identity.StatusConfirmed, MinScore: minScore})
}

func (r *IdentityRepository) Stats(_ context.Context) (identity.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := identity.Stats{
		ByStatus:     make(map[identity.Status]int),
		ByConfidence: make(map[identity.Confidence]int),
	}
	for _, item := range r.candidates {
		stats.Total++
		stats.ByStatus[item.Status]++
		stats.ByConfidence[item.Confidence]++
	}
	return stats, nil
}

func sortCandidates(items []identity.Candidate) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].TotalScore != items[j].TotalScore {
			return items[i].TotalScore > items[j].TotalScore
		}
		return items[i].ID < items[j].ID
	})
}

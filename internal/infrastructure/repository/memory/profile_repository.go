package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
)

type profileKey struct {
	name   string
	teamID string
	season string
}

type ProfileRepository struct {
	mu       sync.RWMutex
	nextID   int64
	profiles map[int64]profile.Profile
	byKey    map[profileKey]int64
	games    map[int64]map[string]profile.GameStat
	now      func() time.Time
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		profiles: make(map[int64]profile.Profile),
		byKey:    make(map[profileKey]int64),
		games:    make(map[int64]map[string]profile.GameStat),
		now:      time.Now,
	}
}

func (r *ProfileRepository) Upsert(_ context.Context, item profile.Profile) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	key := profileKey{name: item.NameNormalized, teamID: item.TeamID, season: item.Season}
	if id, ok := r.byKey[key]; ok {
		existing := r.profiles[id]
		existing.Name = item.Name
		existing.TeamName = item.TeamName
		existing.Competition = item.Competition
		existing.CompetitionLevel = item.CompetitionLevel
		if item.BirthYear != nil {
			existing.BirthYear = item.BirthYear
		}
		existing.UpdatedAt = now
		r.profiles[id] = existing
		return id, nil
	}

	r.nextID++
	item.ID = r.nextID
	item.ConsolidatedPlayerID = nil
	item.IsConsolidated = false
	item.CreatedAt = now
	item.UpdatedAt = now
	r.profiles[item.ID] = item
	r.byKey[key] = item.ID
	return item.ID, nil
}

func (r *ProfileRepository) GetByID(_ context.Context, profileID int64) (profile.Profile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.profiles[profileID]
	return item, ok, nil
}

func (r *ProfileRepository) List(_ context.Context, filter profile.Filter) ([]profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids map[int64]struct{}
	if len(filter.IDs) > 0 {
		ids = make(map[int64]struct{}, len(filter.IDs))
		for _, id := range filter.IDs {
			ids[id] = struct{}{}
		}
	}

	out := make([]profile.Profile, 0, len(r.profiles))
	for _, item := range r.profiles {
		if filter.Season != "" && item.Season != filter.Season {
			continue
		}
		if filter.OnlyUnconsolidated && item.IsConsolidated {
			continue
		}
		if ids != nil {
			if _, ok := ids[item.ID]; !ok {
				continue
			}
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProfileRepository) UpsertGameStats(_ context.Context, stats []profile.GameStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range stats {
		byGame, ok := r.games[item.ProfileID]
		if !ok {
			byGame = make(map[string]profile.GameStat)
			r.games[item.ProfileID] = byGame
		}
		byGame[item.GameID] = item
	}
	return nil
}

func (r *ProfileRepository) ListGameStats(_ context.Context, profileIDs []int64) ([]profile.GameStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []profile.GameStat
	for _, id := range profileIDs {
		for _, item := range r.games[id] {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ProfileID != out[j].ProfileID {
			return out[i].ProfileID < out[j].ProfileID
		}
		if !out[i].GameDate.Equal(out[j].GameDate) {
			return out[i].GameDate.Before(out[j].GameDate)
		}
		return out[i].GameID < out[j].GameID
	})
	return out, nil
}

func (r *ProfileRepository) RefreshTotals(_ context.Context, profileIDs []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range profileIDs {
		item, ok := r.profiles[id]
		if !ok {
			continue
		}
		item.GamesPlayed, item.TotalMinutes, item.TotalPoints = 0, 0, 0
		for _, g := range r.games[id] {
			item.GamesPlayed++
			item.TotalMinutes += g.Minutes
			item.TotalPoints += g.Points
		}
		r.profiles[id] = item
	}
	return nil
}

func (r *ProfileRepository) ResetConsolidation(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.profiles {
		item.ConsolidatedPlayerID = nil
		item.IsConsolidated = false
		r.profiles[id] = item
	}
	return nil
}

func (r *ProfileRepository) ApplyConsolidation(_ context.Context, assignments []profile.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range assignments {
		item, ok := r.profiles[a.ProfileID]
		if !ok {
			continue
		}
		playerID := a.ConsolidatedPlayerID
		item.ConsolidatedPlayerID = &playerID
		item.IsConsolidated = true
		r.profiles[a.ProfileID] = item
	}
	return nil
}

func (r *ProfileRepository) ListTeamRecords(_ context.Context) ([]profile.TeamRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type recordKey struct {
		competition string
		season      string
		teamID      string
	}
	results := make(map[recordKey]map[string]bool)
	for id, byGame := range r.games {
		p, ok := r.profiles[id]
		if !ok || p.TeamID == "" {
			continue
		}
		key := recordKey{competition: p.Competition, season: p.Season, teamID: p.TeamID}
		for gameID, g := range byGame {
			won, known := g.Won()
			if !known {
				continue
			}
			if results[key] == nil {
				results[key] = make(map[string]bool)
			}
			results[key][gameID] = won
		}
	}

	out := make([]profile.TeamRecord, 0, len(results))
	for key, games := range results {
		rec := profile.TeamRecord{Competition: key.competition, Season: key.season, TeamID: key.teamID, Games: len(games)}
		for _, won := range games {
			if won {
				rec.Wins++
			}
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Competition != out[j].Competition {
			return out[i].Competition < out[j].Competition
		}
		if out[i].Season != out[j].Season {
			return out[i].Season < out[j].Season
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out, nil
}

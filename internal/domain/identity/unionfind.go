package identity

import (
	"fmt"
	"sort"

	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
)

// UnionFind is a disjoint-set forest over profile ids with path compression
// and union by rank.
type UnionFind struct {
	parent map[int64]int64
	rank   map[int64]int
}

func NewUnionFind() *UnionFind {
	return &UnionFind{
		parent: make(map[int64]int64),
		rank:   make(map[int64]int),
	}
}

func (u *UnionFind) Add(id int64) {
	if _, ok := u.parent[id]; !ok {
		u.parent[id] = id
	}
}

func (u *UnionFind) Find(id int64) int64 {
	u.Add(id)
	root := id
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for id != root {
		next := u.parent[id]
		u.parent[id] = root
		id = next
	}
	return root
}

// Union joins the sets holding a and b and returns the surviving root.
func (u *UnionFind) Union(a, b int64) int64 {
	ra, rb := u.Find(a), u.Find(b)
	if ra == rb {
		return ra
	}
	switch {
	case u.rank[ra] < u.rank[rb]:
		ra, rb = rb, ra
	case u.rank[ra] == u.rank[rb]:
		u.rank[ra]++
	}
	u.parent[rb] = ra
	return ra
}

// Components returns every set with sorted members, keyed by root.
func (u *UnionFind) Components() map[int64][]int64 {
	out := make(map[int64][]int64)
	for id := range u.parent {
		root := u.Find(id)
		out[root] = append(out[root], id)
	}
	for root := range out {
		sort.Slice(out[root], func(i, j int) bool { return out[root][i] < out[root][j] })
	}
	return out
}

// ConsolidationPlan is the outcome of merging confirmed candidates.
type ConsolidationPlan struct {
	Players     []ConsolidatedPlayer
	Assignments []profile.Assignment
	Conflicts   []MergeConflict
}

// groupSummary tracks what a merged set already claims so incompatible
// merges can be refused.
type groupSummary struct {
	birthYear *int
	slots     map[string]int64
}

// PlanConsolidation merges confirmed candidates at or above threshold into
// connected components. Stronger links merge first. A merge is refused when
// the two sets have different known birth years, or when both already hold
// a distinct profile on the same team in the same season.
func PlanConsolidation(profiles []profile.Profile, candidates []Candidate, threshold float64) ConsolidationPlan {
	uf := NewUnionFind()
	summaries := make(map[int64]*groupSummary, len(profiles))
	for _, p := range profiles {
		uf.Add(p.ID)
		s := &groupSummary{birthYear: p.BirthYear, slots: make(map[string]int64, 1)}
		if p.TeamID != "" && p.Season != "" {
			s.slots[rosterSlot(p)] = p.ID
		}
		summaries[p.ID] = s
	}

	ordered := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Status != StatusConfirmed || c.TotalScore < threshold {
			continue
		}
		if _, ok := summaries[c.ProfileID1]; !ok {
			continue
		}
		if _, ok := summaries[c.ProfileID2]; !ok {
			continue
		}
		ordered = append(ordered, c)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].TotalScore != ordered[j].TotalScore {
			return ordered[i].TotalScore > ordered[j].TotalScore
		}
		if ordered[i].ProfileID1 != ordered[j].ProfileID1 {
			return ordered[i].ProfileID1 < ordered[j].ProfileID1
		}
		return ordered[i].ProfileID2 < ordered[j].ProfileID2
	})

	plan := ConsolidationPlan{}
	for _, c := range ordered {
		ra, rb := uf.Find(c.ProfileID1), uf.Find(c.ProfileID2)
		if ra == rb {
			continue
		}
		sa, sb := summaries[ra], summaries[rb]
		if reason := mergeConflict(sa, sb); reason != "" {
			plan.Conflicts = append(plan.Conflicts, MergeConflict{
				CandidateID: c.ID,
				ProfileID1:  c.ProfileID1,
				ProfileID2:  c.ProfileID2,
				Reason:      reason,
			})
			continue
		}

		root := uf.Union(ra, rb)
		merged := sa
		other := sb
		if root == rb {
			merged, other = sb, sa
		}
		if merged.birthYear == nil {
			merged.birthYear = other.birthYear
		}
		for slot, id := range other.slots {
			merged.slots[slot] = id
		}
		summaries[root] = merged
	}

	components := uf.Components()
	for _, members := range components {
		if len(members) < 2 {
			continue
		}
		player := ConsolidatedPlayer{ID: members[0], ProfileIDs: members}
		plan.Players = append(plan.Players, player)
		for _, id := range members {
			plan.Assignments = append(plan.Assignments, profile.Assignment{
				ProfileID:            id,
				ConsolidatedPlayerID: player.ID,
			})
		}
	}
	sort.Slice(plan.Players, func(i, j int) bool { return plan.Players[i].ID < plan.Players[j].ID })
	sort.Slice(plan.Assignments, func(i, j int) bool {
		return plan.Assignments[i].ProfileID < plan.Assignments[j].ProfileID
	})
	return plan
}

func mergeConflict(a, b *groupSummary) string {
	if a.birthYear != nil && b.birthYear != nil && *a.birthYear != *b.birthYear {
		return fmt.Sprintf("birth year mismatch: %d vs %d", *a.birthYear, *b.birthYear)
	}
	for slot, id := range a.slots {
		if other, ok := b.slots[slot]; ok && other != id {
			return fmt.Sprintf("profiles %d and %d share roster slot %s", id, other, slot)
		}
	}
	return ""
}

func rosterSlot(p profile.Profile) string {
	return p.TeamID + "|" + p.Season
}

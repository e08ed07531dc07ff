package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/hoops-scout/internal/domain/identity"
	"github.com/riskibarqy/hoops-scout/internal/domain/metrics"
	"github.com/riskibarqy/hoops-scout/internal/domain/potential"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	careermock "github.com/riskibarqy/hoops-scout/internal/mocks/domain/career"
	identitymock "github.com/riskibarqy/hoops-scout/internal/mocks/domain/identity"
	metricsmock "github.com/riskibarqy/hoops-scout/internal/mocks/domain/metrics"
	potentialmock "github.com/riskibarqy/hoops-scout/internal/mocks/domain/potential"
	profilemock "github.com/riskibarqy/hoops-scout/internal/mocks/domain/profile"
	"github.com/stretchr/testify/mock"
)

type queryMocks struct {
	profiles   *profilemock.Repository
	metrics    *metricsmock.Repository
	potentials *potentialmock.Repository
	careers    *careermock.Repository
	identity   *identitymock.Repository
}

func newQueryService(t *testing.T) (*QueryService, queryMocks) {
	t.Helper()

	m := queryMocks{
		profiles:   profilemock.NewRepository(t),
		metrics:    metricsmock.NewRepository(t),
		potentials: potentialmock.NewRepository(t),
		careers:    careermock.NewRepository(t),
		identity:   identitymock.NewRepository(t),
	}
	return NewQueryService(m.profiles, m.metrics, m.potentials, m.careers, m.identity), m
}

func TestQueryService_GetProfileMetrics_DefaultsToProfileSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, m := newQueryService(t)

	m.profiles.On("GetByID", ctx, int64(5)).Return(profile.Profile{ID: 5, Season: "2023/2024"}, true, nil).Once()
	m.metrics.On("GetMetrics", ctx, int64(5), "2023/2024").Return(metrics.ProfileMetrics{ProfileID: 5, Season: "2023/2024", GamesPlayed: 12}, true, nil).Once()

	got, err := service.GetProfileMetrics(ctx, 5, "")
	if err != nil {
		t.Fatalf("get profile metrics: %v", err)
	}
	if got.GamesPlayed != 12 {
		t.Fatalf("unexpected metrics: %+v", got)
	}
}

func TestQueryService_GetProfilePotential_CanonicalizesSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, m := newQueryService(t)

	m.potentials.On("GetPotential", ctx, int64(5), "2023/2024").Return(potential.ProfilePotential{}, false, nil).Once()

	_, err := service.GetProfilePotential(ctx, 5, "2023/24")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQueryService_GetProfileMetrics_InvalidInput(t *testing.T) {
	t.Parallel()

	service, _ := newQueryService(t)
	if _, err := service.GetProfileMetrics(context.Background(), 0, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.GetCareer(context.Background(), " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestQueryService_ListCandidates_AttachesProfiles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, m := newQueryService(t)

	candidates := []identity.Candidate{
		{ID: 1, ProfileID1: 10, ProfileID2: 11, TotalScore: 0.96, Status: identity.StatusPending},
	}
	m.identity.
		On("List", ctx, identity.Query{Status: identity.StatusPending, MinScore: 0.7, Limit: defaultListLimit}).
		Return(candidates, nil).
		Once()
	m.profiles.
		On("List", ctx, mock.MatchedBy(func(f profile.Filter) bool { return len(f.IDs) == 2 })).
		Return([]profile.Profile{{ID: 10, Name: "Juan Pérez"}, {ID: 11, Name: "J. Perez"}}, nil).
		Once()

	got, err := service.ListCandidates(ctx, CandidateQuery{Status: "pending", MinScore: 0.7})
	if err != nil {
		t.Fatalf("list candidates: %v", err)
	}
	if len(got) != 1 || got[0].Profile1.Name != "Juan Pérez" || got[0].Profile2.Name != "J. Perez" {
		t.Fatalf("unexpected views: %+v", got)
	}
}

func TestQueryService_ListCandidates_RejectsBadQuery(t *testing.T) {
	t.Parallel()

	service, _ := newQueryService(t)
	tests := []CandidateQuery{
		{Status: "maybe"},
		{MinScore: 1.5},
		{Limit: -1},
	}
	for _, q := range tests {
		if _, err := service.ListCandidates(context.Background(), q); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("query %+v: expected ErrInvalidInput, got %v", q, err)
		}
	}
}

func TestQueryService_ListByPotential_CapsLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, m := newQueryService(t)

	m.potentials.On("ListByPotential", ctx, 0.5, maxListLimit).Return([]potential.ProfilePotential{}, nil).Once()

	if _, err := service.ListByPotential(ctx, 0.5, 10_000); err != nil {
		t.Fatalf("list by potential: %v", err)
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/hoops-scout/internal/domain/identity"
	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	identitymock "github.com/riskibarqy/hoops-scout/internal/mocks/domain/identity"
	profilemock "github.com/riskibarqy/hoops-scout/internal/mocks/domain/profile"
	"github.com/stretchr/testify/mock"
)

func TestIdentityService_Validate_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	service := NewIdentityService(profilemock.NewRepository(t), identitymock.NewRepository(t), IdentityConfig{}, nil)
	tests := []struct {
		name  string
		input ValidateCandidateInput
	}{
		{name: "missing id", input: ValidateCandidateInput{Status: "confirmed", By: "scout"}},
		{name: "unknown status", input: ValidateCandidateInput{CandidateID: 1, Status: "maybe", By: "scout"}},
		{name: "missing reviewer", input: ValidateCandidateInput{CandidateID: 1, Status: "rejected"}},
	}
	for _, tc := range tests {
		if _, err := service.Validate(context.Background(), tc.input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestIdentityService_Validate_NotFound(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	identityRepo := identitymock.NewRepository(t)
	service := NewIdentityService(profilemock.NewRepository(t), identityRepo, IdentityConfig{}, nil)

	identityRepo.On("GetByID", ctx, int64(42)).Return(identity.Candidate{}, false, nil).Once()

	_, err := service.Validate(ctx, ValidateCandidateInput{CandidateID: 42, Status: "confirmed", By: "scout"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIdentityService_Validate_RecordsDecision(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	identityRepo := identitymock.NewRepository(t)
	service := NewIdentityService(profilemock.NewRepository(t), identityRepo, IdentityConfig{}, nil)
	fixedNow := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixedNow }

	identityRepo.On("GetByID", ctx, int64(7)).Return(identity.Candidate{ID: 7, Status: identity.StatusPending}, true, nil).Once()
	identityRepo.
		On("UpdateValidation", ctx, identity.Validation{
			CandidateID: 7,
			Status:      identity.StatusConfirmed,
			By:          "scout",
			Notes:       "same jersey",
		}, fixedNow).
		Return(identity.Candidate{ID: 7, Status: identity.StatusConfirmed, ValidatedBy: "scout"}, nil).
		Once()

	got, err := service.Validate(ctx, ValidateCandidateInput{
		CandidateID: 7,
		Status:      " Confirmed ",
		By:          " scout ",
		Notes:       "same jersey ",
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Status != identity.StatusConfirmed {
		t.Fatalf("unexpected status: %s", got.Status)
	}
}

func TestIdentityService_GenerateCandidates_KeepsPairsAboveMinimum(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	profileRepo := profilemock.NewRepository(t)
	identityRepo := identitymock.NewRepository(t)
	service := NewIdentityService(profileRepo, identityRepo, IdentityConfig{Workers: 2}, nil)

	profiles := []profile.Profile{
		{ID: 1, NameNormalized: "JUAN PEREZ", BirthYear: intPtr(2002), TeamID: "T1", Season: "2022/2023"},
		{ID: 2, NameNormalized: "J. PEREZ", BirthYear: intPtr(2002), TeamID: "T1", Season: "2023/2024"},
		{ID: 3, NameNormalized: "PEDRO PERALTA", BirthYear: intPtr(1990), TeamID: "T7", Season: "2015/2016"},
		{ID: 4, NameNormalized: "MARC GASOL", BirthYear: intPtr(1999), TeamID: "T2", Season: "2023/2024"},
	}
	profileRepo.On("List", ctx, profile.Filter{}).Return(profiles, nil).Once()
	identityRepo.
		On("InsertCandidates", ctx, mock.MatchedBy(func(items []identity.Candidate) bool {
			return len(items) == 1 && items[0].ProfileID1 == 1 && items[0].ProfileID2 == 2 && items[0].TotalScore == 0.96
		})).
		Return(1, nil).
		Once()

	report, err := service.GenerateCandidates(ctx)
	if err != nil {
		t.Fatalf("generate candidates: %v", err)
	}
	// PEREZ and PERALTA share the PER block: three pairs, one above the minimum.
	if report.Compared != 3 || report.Candidates != 1 || report.Inserted != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestIdentityService_GenerateCandidates_SkipsPairsInsideOneCluster(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	profileRepo := profilemock.NewRepository(t)
	identityRepo := identitymock.NewRepository(t)
	service := NewIdentityService(profileRepo, identityRepo, IdentityConfig{Workers: 2}, nil)

	cluster := int64(1)
	profiles := []profile.Profile{
		{ID: 1, NameNormalized: "JUAN PEREZ", BirthYear: intPtr(2002), TeamID: "T1", Season: "2022/2023", IsConsolidated: true, ConsolidatedPlayerID: &cluster},
		{ID: 2, NameNormalized: "J. PEREZ", BirthYear: intPtr(2002), TeamID: "T1", Season: "2023/2024", IsConsolidated: true, ConsolidatedPlayerID: &cluster},
		{ID: 3, NameNormalized: "JUAN PEREZ", BirthYear: intPtr(2002), TeamID: "T1", Season: "2024/2025"},
	}
	profileRepo.On("List", ctx, profile.Filter{}).Return(profiles, nil).Once()

	var stored []identity.Candidate
	identityRepo.
		On("InsertCandidates", ctx, mock.Anything).
		Run(func(args mock.Arguments) { stored = append(stored, args.Get(1).([]identity.Candidate)...) }).
		Return(2, nil).
		Maybe()

	report, err := service.GenerateCandidates(ctx)
	if err != nil {
		t.Fatalf("generate candidates: %v", err)
	}
	if report.SameCluster != 1 || report.Compared != 2 {
		t.Fatalf("expected the merged pair to be skipped: %+v", report)
	}
	if len(stored) == 0 {
		t.Fatalf("new season should still link to the cluster")
	}
	for _, c := range stored {
		if c.ProfileID1 == 1 && c.ProfileID2 == 2 {
			t.Fatalf("already consolidated pair re-queued: %+v", c)
		}
	}
}

func TestIdentityService_Consolidate_ResetsThenApplies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	profileRepo := profilemock.NewRepository(t)
	identityRepo := identitymock.NewRepository(t)
	service := NewIdentityService(profileRepo, identityRepo, IdentityConfig{}, nil)

	profiles := []profile.Profile{
		{ID: 1, NameNormalized: "JUAN PEREZ", BirthYear: intPtr(2002), TeamID: "T1", Season: "2022/2023"},
		{ID: 2, NameNormalized: "J. PEREZ", BirthYear: intPtr(2002), TeamID: "T1", Season: "2023/2024"},
		{ID: 3, NameNormalized: "J. PEREZ", BirthYear: intPtr(1995), TeamID: "T5", Season: "2023/2024"},
	}
	confirmed := []identity.Candidate{
		{ID: 10, ProfileID1: 1, ProfileID2: 2, TotalScore: 0.96, Status: identity.StatusConfirmed},
		{ID: 11, ProfileID1: 2, ProfileID2: 3, TotalScore: 0.90, Status: identity.StatusConfirmed},
	}

	var calls []string
	profileRepo.On("List", ctx, profile.Filter{}).Return(profiles, nil).Once()
	identityRepo.On("ListConfirmed", ctx, 0.85).Return(confirmed, nil).Once()
	profileRepo.On("ResetConsolidation", ctx).
		Run(func(mock.Arguments) { calls = append(calls, "reset") }).
		Return(nil).
		Once()
	profileRepo.On("ApplyConsolidation", ctx, []profile.Assignment{
		{ProfileID: 1, ConsolidatedPlayerID: 1},
		{ProfileID: 2, ConsolidatedPlayerID: 1},
	}).
		Run(func(mock.Arguments) { calls = append(calls, "apply") }).
		Return(nil).
		Once()

	report, err := service.Consolidate(ctx)
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	if report.Players != 1 || report.Profiles != 2 || len(report.Conflicts) != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Conflicts[0].CandidateID != 11 {
		t.Fatalf("unexpected conflict: %+v", report.Conflicts[0])
	}
	if len(calls) != 2 || calls[0] != "reset" || calls[1] != "apply" {
		t.Fatalf("unexpected call order: %v", calls)
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/hoops-scout/internal/domain/profile"
	"github.com/riskibarqy/hoops-scout/internal/infrastructure/repository/memory"
	profilemock "github.com/riskibarqy/hoops-scout/internal/mocks/domain/profile"
	"github.com/stretchr/testify/mock"
)

func TestIngestionService_Ingest_UpsertsProfilesAndTotals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewProfileRepository()
	service := NewIngestionService(repo, nil, IngestionConfig{BatchSize: 5}, nil)

	rows := leagueRows()
	rows = append(rows,
		profile.GameRow{PlayerName: "  ", TeamID: "T1", Season: "2023/2024", GameID: "x-1"},
		profile.GameRow{PlayerName: "Pau Ribas", TeamID: "T3", Season: "2023/2024", GameID: "x-2", Minutes: -3},
		profile.GameRow{PlayerName: "Nico Laprovittola", TeamID: "T9", Season: "next year", Competition: "ACB", GameID: "x-3", Minutes: 20, Points: 12},
	)

	report, err := service.Ingest(ctx, sliceSource(rows))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if report.Rows != len(rows) || report.Rejected != 2 || report.MalformedSeasons != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Profiles != 7 || report.GameStats != len(rows)-2 {
		t.Fatalf("unexpected write counts: %+v", report)
	}

	profiles, err := repo.List(ctx, profile.Filter{Season: "2023/2024"})
	if err != nil {
		t.Fatalf("list profiles: %v", err)
	}
	if len(profiles) != 5 {
		t.Fatalf("short season label must be canonicalized: got %d profiles", len(profiles))
	}

	all, _ := repo.List(ctx, profile.Filter{})
	var juan profile.Profile
	for _, p := range all {
		if p.NameNormalized == "JUAN PEREZ" {
			juan = p
		}
		if p.Competition == "LEB ORO" && p.CompetitionLevel != 2 {
			t.Fatalf("unexpected level for %s: %d", p.Name, p.CompetitionLevel)
		}
		if p.Competition == "ACB" && p.Season != "next year" {
			t.Fatalf("malformed season must be kept verbatim: %q", p.Season)
		}
	}
	if juan.GamesPlayed != 12 || juan.TotalPoints != 139 {
		t.Fatalf("unexpected totals: games=%d points=%d", juan.GamesPlayed, juan.TotalPoints)
	}

	again, err := service.Ingest(ctx, sliceSource(rows))
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	if again.Profiles != report.Profiles {
		t.Fatalf("re-ingest changed profile count: %+v", again)
	}
	refreshed, _, _ := repo.GetByID(ctx, juan.ID)
	if refreshed.GamesPlayed != 12 || refreshed.TotalPoints != 139 {
		t.Fatalf("re-ingest must not double count: %+v", refreshed)
	}
}

func TestIngestionService_Ingest_ComputesAdvancedMetrics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := memory.NewProfileRepository()
	service := NewIngestionService(repo, nil, IngestionConfig{}, nil)

	rows := seasonRows(seasonSpec{name: "Ana Torres", teamID: "F1", season: "2023/2024", competition: "LIGA FEMENINA", games: 1, minutes: 20, basePoints: 12})
	if _, err := service.Ingest(ctx, sliceSource(rows)); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	all, _ := repo.List(ctx, profile.Filter{})
	if len(all) != 1 || all[0].CompetitionLevel != 1 {
		t.Fatalf("unexpected profiles: %+v", all)
	}
	stats, err := repo.ListGameStats(ctx, []int64{all[0].ID})
	if err != nil || len(stats) != 1 {
		t.Fatalf("unexpected game stats: %v %v", stats, err)
	}
	if stats[0].Advanced.TrueShootingPct == nil || stats[0].Advanced.OffensiveRating == nil {
		t.Fatalf("advanced metrics not computed: %+v", stats[0].Advanced)
	}
}

func TestIngestionService_Ingest_PropagatesRepositoryError(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := profilemock.NewRepository(t)
	service := NewIngestionService(repo, nil, IngestionConfig{}, nil)
	dbErr := errors.New("db down")

	repo.On("Upsert", mock.Anything, mock.AnythingOfType("profile.Profile")).Return(int64(0), dbErr).Once()

	rows := seasonRows(seasonSpec{name: "Marc Gasol", teamID: "T2", season: "2023/2024", competition: "ACB", games: 2, minutes: 20, basePoints: 10})
	_, err := service.Ingest(ctx, sliceSource(rows))
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestIngestionService_Ingest_RequiresSource(t *testing.T) {
	t.Parallel()

	service := NewIngestionService(memory.NewProfileRepository(), nil, IngestionConfig{}, nil)
	if _, err := service.Ingest(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

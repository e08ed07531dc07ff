package profile

import "context"

// Repository describes profile and game-stat persistence needs from use cases.
type Repository interface {
	// Upsert inserts or refreshes a profile on its natural key and returns its id.
	Upsert(ctx context.Context, item Profile) (int64, error)
	GetByID(ctx context.Context, profileID int64) (Profile, bool, error)
	List(ctx context.Context, filter Filter) ([]Profile, error)
	UpsertGameStats(ctx context.Context, stats []GameStat) error
	ListGameStats(ctx context.Context, profileIDs []int64) ([]GameStat, error)
	RefreshTotals(ctx context.Context, profileIDs []int64) error
	ResetConsolidation(ctx context.Context) error
	ApplyConsolidation(ctx context.Context, assignments []Assignment) error
	ListTeamRecords(ctx context.Context) ([]TeamRecord, error)
}

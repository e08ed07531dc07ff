package metrics

import "context"

// Repository describes profile metrics persistence needs from use cases.
type Repository interface {
	// UpsertMetrics replaces rows keyed by (profile, season).
	UpsertMetrics(ctx context.Context, items []ProfileMetrics) error
	GetMetrics(ctx context.Context, profileID int64, season string) (ProfileMetrics, bool, error)
	ListMetrics(ctx context.Context, season string) ([]ProfileMetrics, error)
}

package potential

import "context"

// Repository describes season potential persistence needs from use cases.
type Repository interface {
	// UpsertPotentials replaces rows keyed by (profile, season).
	UpsertPotentials(ctx context.Context, items []ProfilePotential) error
	GetPotential(ctx context.Context, profileID int64, season string) (ProfilePotential, bool, error)
	ListPotentials(ctx context.Context) ([]ProfilePotential, error)
	// ListByPotential returns eligible rows with PotentialScore >= minScore,
	// best first.
	ListByPotential(ctx context.Context, minScore float64, limit int) ([]ProfilePotential, error)
}

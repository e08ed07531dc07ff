package career

import "context"

// Repository describes career potential persistence needs from use cases.
type Repository interface {
	// ReplaceCareers swaps the full career set so keys that disappeared after
	// consolidation do not linger.
	ReplaceCareers(ctx context.Context, items []CareerPotential) error
	GetCareer(ctx context.Context, playerKey string) (CareerPotential, bool, error)
	ListCareers(ctx context.Context, minScore float64, limit int) ([]CareerPotential, error)
}

package identity

import (
	"context"
	"time"
)

// Repository describes candidate persistence needs from use cases.
type Repository interface {
	// InsertCandidates ignores pairs that already exist and reports how many
	// rows were written.
	InsertCandidates(ctx context.Context, items []Candidate) (int, error)
	GetByID(ctx context.Context, candidateID int64) (Candidate, bool, error)
	List(ctx context.Context, query Query) ([]Candidate, error)
	UpdateValidation(ctx context.Context, validation Validation, at time.Time) (Candidate, error)
	ListConfirmed(ctx context.Context, minScore float64) ([]Candidate, error)
	Stats(ctx context.Context) (Stats, error)
}

package cohort

import "context"

// Repository stores the baselines of the latest pipeline run for
// inspection. Scoring never reads them back.
type Repository interface {
	ReplaceBaselines(ctx context.Context, items []Baseline) error
	ListBaselines(ctx context.Context) ([]Baseline, error)
}

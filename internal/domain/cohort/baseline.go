package cohort

import (
	"math"
	"sort"
)

const (
	// MinMinutes is the minimum minutes for a game row to enter a baseline.
	MinMinutes = 10.0
	// MinSampleSize below which a baseline is still used but flagged.
	MinSampleSize = 30
)

// Builder accumulates per-game observations into cohort baselines.
// It is not safe for concurrent use.
type Builder struct {
	values map[Key]map[Metric][]float64
}

func NewBuilder() *Builder {
	return &Builder{values: make(map[Key]map[Metric][]float64)}
}

// Add records one observation. Rows under MinMinutes and non-finite values
// are ignored.
func (b *Builder) Add(key Key, minutes float64, metric Metric, value float64) {
	if minutes < MinMinutes || math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	byMetric, ok := b.values[key]
	if !ok {
		byMetric = make(map[Metric][]float64, len(Metrics))
		b.values[key] = byMetric
	}
	byMetric[metric] = append(byMetric[metric], value)
}

func (b *Builder) Build() *Baselines {
	out := &Baselines{items: make(map[Key]map[Metric]Baseline, len(b.values))}
	for key, byMetric := range b.values {
		items := make(map[Metric]Baseline, len(byMetric))
		for metric, values := range byMetric {
			mean, std := meanStd(values)
			items[metric] = Baseline{
				Key:        key,
				Metric:     metric,
				Mean:       mean,
				StdDev:     std,
				SampleSize: len(values),
			}
		}
		out.items[key] = items
	}
	return out
}

// Baselines is the immutable set of cohort baselines of one pipeline run.
// It must not outlive the run that built it.
type Baselines struct {
	items map[Key]map[Metric]Baseline
}

// FromList rebuilds a Baselines value from persisted rows.
func FromList(items []Baseline) *Baselines {
	out := &Baselines{items: make(map[Key]map[Metric]Baseline)}
	for _, item := range items {
		byMetric, ok := out.items[item.Key]
		if !ok {
			byMetric = make(map[Metric]Baseline)
			out.items[item.Key] = byMetric
		}
		byMetric[item.Metric] = item
	}
	return out
}

// Get returns the baseline, falling back to mean 0 and stddev 1 with an
// empty sample when the cohort has no data for metric.
func (b *Baselines) Get(key Key, metric Metric) Baseline {
	if b != nil {
		if item, ok := b.items[key][metric]; ok {
			return item
		}
	}
	return Baseline{Key: key, Metric: metric, Mean: 0, StdDev: 1}
}

// Z scores v against the cohort baseline of metric. It returns nil when the
// baseline is degenerate.
func (b *Baselines) Z(key Key, metric Metric, v float64) *float64 {
	base := b.Get(key, metric)
	z, ok := ZScore(v, base.Mean, base.StdDev)
	if !ok {
		return nil
	}
	return &z
}

// List returns all baselines ordered by level, season and metric.
func (b *Baselines) List() []Baseline {
	if b == nil {
		return nil
	}
	out := make([]Baseline, 0, len(b.items)*len(Metrics))
	for _, byMetric := range b.items {
		for _, item := range byMetric {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Level != out[j].Key.Level {
			return out[i].Key.Level < out[j].Key.Level
		}
		if out[i].Key.Season != out[j].Key.Season {
			return out[i].Key.Season < out[j].Key.Season
		}
		return out[i].Metric < out[j].Metric
	})
	return out
}

// Sparse returns the baselines whose sample is below MinSampleSize.
func (b *Baselines) Sparse() []Baseline {
	var out []Baseline
	for _, item := range b.List() {
		if item.Sparse() {
			out = append(out, item)
		}
	}
	return out
}

func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 1
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / float64(len(values)))
}

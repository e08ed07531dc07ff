package cohort

import "fmt"

// Key identifies a comparison context: competition level within a season.
type Key struct {
	Level  int
	Season string
}

func (k Key) String() string {
	return fmt.Sprintf("L%d:%s", k.Level, k.Season)
}

type Metric string

const (
	MetricOffensiveRating Metric = "offensive_rating"
	MetricPER             Metric = "per"
	MetricMinutes         Metric = "minutes"
	MetricPoints          Metric = "points"
	MetricTrueShooting    Metric = "true_shooting"
)

// Metrics lists every metric a cohort baseline is built for.
var Metrics = []Metric{
	MetricOffensiveRating,
	MetricPER,
	MetricMinutes,
	MetricPoints,
	MetricTrueShooting,
}

// Baseline is the distribution of one metric within one cohort.
type Baseline struct {
	Key        Key
	Metric     Metric
	Mean       float64
	StdDev     float64
	SampleSize int
}

// Sparse reports whether the sample is too small to be trusted.
func (b Baseline) Sparse() bool {
	return b.SampleSize < MinSampleSize
}

// Tier is the percentile-based standing of a value within its cohort.
type Tier string

const (
	TierElite        Tier = "elite"
	TierVeryGood     Tier = "very_good"
	TierAboveAverage Tier = "above_average"
	TierAverage      Tier = "average"
	TierBelowAverage Tier = "below_average"
)

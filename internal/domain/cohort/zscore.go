package cohort

import "math"

// ZScore returns (v-mean)/std. ok is false when std is zero or any input
// is not finite.
func ZScore(v, mean, std float64) (float64, bool) {
	if std == 0 || !finite(v) || !finite(mean) || !finite(std) {
		return 0, false
	}
	return (v - mean) / std, true
}

// Percentile maps a z-score onto the normal CDF as an integer in [0,100].
// A nil z maps to 50.
func Percentile(z *float64) int {
	if z == nil || math.IsNaN(*z) {
		return 50
	}
	p := int(math.Floor(50 * (1 + math.Erf(*z/math.Sqrt2))))
	return max(0, min(100, p))
}

// PercentileTier buckets a percentile; each bound belongs to the upper tier.
func PercentileTier(percentile int) Tier {
	switch {
	case percentile >= 95:
		return TierElite
	case percentile >= 80:
		return TierVeryGood
	case percentile >= 60:
		return TierAboveAverage
	case percentile >= 40:
		return TierAverage
	default:
		return TierBelowAverage
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

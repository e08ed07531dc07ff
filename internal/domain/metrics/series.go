package metrics

import "math"

// series collects optional per-game values in chronological order.
type series struct {
	values []float64
}

func (s *series) add(v float64) {
	s.values = append(s.values, v)
}

func (s *series) addOpt(v *float64) {
	if v != nil {
		s.values = append(s.values, *v)
	}
}

func (s *series) len() int { return len(s.values) }

func (s *series) mean() *float64 {
	if len(s.values) == 0 {
		return nil
	}
	m := meanOf(s.values)
	return &m
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdOf is the population standard deviation; 0 under two values.
func stdOf(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := meanOf(values)
	acc := 0.0
	for _, v := range values {
		d := v - m
		acc += d * d
	}
	return math.Sqrt(acc / float64(len(values)))
}

// slopeOf regresses values on their 1-based index. It needs at least three
// values and returns 0 otherwise.
func slopeOf(values []float64) float64 {
	n := len(values)
	if n < 3 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i + 1)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	den := fn*sumXX - sumX*sumX
	if den == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / den
}

// tailMean averages the last k values, or all of them when fewer exist.
func tailMean(values []float64, k int) *float64 {
	if len(values) == 0 {
		return nil
	}
	start := max(0, len(values)-k)
	m := meanOf(values[start:])
	return &m
}

func ratio(num, den float64) *float64 {
	if den == 0 || num == 0 {
		return nil
	}
	v := num / den
	return &v
}

func per36(total, minutes float64) *float64 {
	if minutes <= 0 {
		return nil
	}
	v := total * 36 / minutes
	return &v
}

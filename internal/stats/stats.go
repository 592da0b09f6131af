// Package stats computes cross-night statistics over aggregated series.
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/custodia-labs/slumber-cli/internal/core/domain"
)

// MinCorrelationPairs is the fewest paired nights a correlation needs.
const MinCorrelationPairs = 2

// TallyCategories counts latencies per category, in fixed category order.
// Every latency lands in exactly one bin, so the total equals len(latencies).
func TallyCategories(latencies []float64) domain.CategoryTally {
	counts := make(map[domain.LatencyCategory]int, 3)
	for _, l := range latencies {
		counts[domain.CategorizeLatency(l)]++
	}

	tally := make(domain.CategoryTally, 0, 3)
	for _, c := range domain.LatencyCategories() {
		tally = append(tally, domain.CategoryCount{Category: c, Count: counts[c]})
	}
	return tally
}

// Mean returns the arithmetic mean, or an absent value for no input.
func Mean(values []float64) domain.NullFloat64 {
	if len(values) == 0 {
		return domain.NullFloat64{}
	}
	return domain.Some(stat.Mean(values, nil))
}

// Pearson computes the correlation coefficient of x and y and its two-sided
// p-value from the Student t distribution with n-2 degrees of freedom.
//
// Inputs of different lengths are a caller bug and return ErrLengthMismatch.
// Fewer than two pairs, a non-finite value, or a constant series give an
// uncalculated result.
func Pearson(x, y []float64) (domain.Correlation, error) {
	if len(x) != len(y) {
		return domain.Correlation{}, fmt.Errorf("%w: %d vs %d", domain.ErrLengthMismatch, len(x), len(y))
	}

	n := len(x)
	result := domain.Correlation{N: n}
	if n < MinCorrelationPairs {
		result.Reason = domain.ErrInsufficientData.Error()
		return result, nil
	}

	for i := range x {
		if !finite(x[i]) || !finite(y[i]) {
			result.Reason = "non-finite value in series"
			return result, nil
		}
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		result.Reason = "undefined for a constant series"
		return result, nil
	}
	r = math.Max(-1, math.Min(1, r))

	result.Calculated = true
	result.R = r
	result.P = pValue(r, n)
	return result, nil
}

// PearsonPair correlates a date-aligned pair and labels the result.
func PearsonPair(pair domain.SeriesPair) (domain.Correlation, error) {
	c, err := Pearson(pair.X, pair.Y)
	if err != nil {
		return domain.Correlation{}, err
	}
	c.X = pair.XMetric
	c.Y = pair.YMetric
	return c, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// pValue is the two-sided significance of r for n pairs.
func pValue(r float64, n int) float64 {
	df := float64(n - 2)
	if df <= 0 {
		// Two points always lie on a line; the fit carries no evidence.
		return 1
	}
	if math.Abs(r) == 1 {
		return 0
	}

	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))
	return math.Max(0, math.Min(1, p))
}

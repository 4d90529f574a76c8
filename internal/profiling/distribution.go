package profiling

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"csvexplorer/domain/core"
	"csvexplorer/domain/dataset"

	"github.com/montanaflynn/stats"
)

// ErrNotNumeric is returned when a numeric statistic is requested for a categorical column
var ErrNotNumeric = errors.New("column is not numeric")

// AnalyzeNumeric computes mean, median, min and max over the non-null values
func AnalyzeNumeric(col dataset.Column) (NumericSummary, error) {
	if !col.Kind().IsNumeric() {
		return NumericSummary{}, fmt.Errorf("%w: %q", ErrNotNumeric, col.Name())
	}

	data := stats.Float64Data(col.Numbers())
	if data.Len() == 0 {
		return NumericSummary{}, core.NewEmptyColumnError(col.Name())
	}

	mean, err := columnMean(data)
	if err != nil {
		return NumericSummary{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return NumericSummary{}, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return NumericSummary{}, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return NumericSummary{}, err
	}

	return NumericSummary{Mean: mean, Median: median, Min: min, Max: max}, nil
}

// columnMean is stats.Mean, recomputed incrementally when the plain sum
// overflows for finite inputs so the mean stays between min and max.
func columnMean(data stats.Float64Data) (float64, error) {
	mean, err := stats.Mean(data)
	if err != nil || !math.IsInf(mean, 0) {
		return mean, err
	}
	m := 0.0
	for i, x := range data {
		k := float64(i + 1)
		m += x/k - m/k
	}
	return m, nil
}

// quantile returns the p-quantile (0..1) of sorted data by linear
// interpolation between closest ranks, the convention describe tables use.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	if frac == 0 {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// sortedCopy returns an ascending copy of data
func sortedCopy(data []float64) []float64 {
	out := make([]float64, len(data))
	copy(out, data)
	sort.Float64s(out)
	return out
}

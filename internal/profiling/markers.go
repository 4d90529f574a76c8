package profiling

import (
	"fmt"
	"math"

	"csvexplorer/domain/dataset"
)

// NumericSummary is the detail view of a numeric column
type NumericSummary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Frequency is one row of a frequency table
type Frequency struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalSummary is the detail view of a categorical column.
// Frequencies are ordered by descending count, ties by first appearance.
type CategoricalSummary struct {
	Unique      int         `json:"unique"`
	Frequencies []Frequency `json:"frequencies"`
}

// Total returns the number of counted (non-null) values
func (s CategoricalSummary) Total() int {
	total := 0
	for _, f := range s.Frequencies {
		total += f.Count
	}
	return total
}

// Result is the outcome of analysing one column: exactly one of Numeric or
// Categorical is set, matching Kind. Err carries a per-column failure such as
// an empty numeric column.
type Result struct {
	Column      string              `json:"column"`
	Kind        dataset.Kind        `json:"kind"`
	Numeric     *NumericSummary     `json:"numeric,omitempty"`
	Categorical *CategoricalSummary `json:"categorical,omitempty"`
	Err         error               `json:"-"`
}

// DescribeRow holds the describe statistics of one column. Statistics that do
// not apply to the column's kind, or that are undefined, are nil.
type DescribeRow struct {
	Column string       `json:"column"`
	Kind   dataset.Kind `json:"kind"`
	Count  int          `json:"count"`

	Unique *int    `json:"unique,omitempty"`
	Top    *string `json:"top,omitempty"`
	Freq   *int    `json:"freq,omitempty"`

	Mean *float64 `json:"mean,omitempty"`
	Std  *float64 `json:"std,omitempty"`
	Min  *float64 `json:"min,omitempty"`
	P25  *float64 `json:"25%,omitempty"`
	P50  *float64 `json:"50%,omitempty"`
	P75  *float64 `json:"75%,omitempty"`
	Max  *float64 `json:"max,omitempty"`
}

// FormatStat renders a statistic with three decimals
func FormatStat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return fmt.Sprintf("%.3f", v)
}

// FormatOptional renders nil as NaN, the way describe tables show gaps
func FormatOptional(v *float64) string {
	if v == nil {
		return "NaN"
	}
	return FormatStat(*v)
}

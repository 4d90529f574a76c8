package charts

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"csvexplorer/domain/dataset"
	"csvexplorer/internal/profiling"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Kind is the chart family chosen for a column
type Kind string

const (
	KindHistogram Kind = "histogram"
	KindBar       Kind = "bar"
)

const (
	DefaultBins    = 30
	HistogramColor = "#636EFA"
	BarColor       = "#EF553B"
)

// ErrNoChart is returned when the analysis has nothing to plot
var ErrNoChart = errors.New("nothing to chart")

// Bar is one plotted bar. Start and End are the bin edges of histogram bars.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Start float64 `json:"start,omitempty"`
	End   float64 `json:"end,omitempty"`
}

// Chart is a renderable description of the distribution chart
type Chart struct {
	Kind   Kind   `json:"kind"`
	Title  string `json:"title"`
	Color  string `json:"color"`
	XLabel string `json:"x_label"`
	YLabel string `json:"y_label"`
	Bars   []Bar  `json:"bars"`
}

// Select builds the chart for an analysed column: a histogram of the raw
// values for numeric columns, a frequency bar chart otherwise.
func Select(col dataset.Column, result profiling.Result, bins int) (Chart, error) {
	if result.Err != nil {
		return Chart{}, fmt.Errorf("%w: %v", ErrNoChart, result.Err)
	}

	switch {
	case result.Kind.IsNumeric():
		bars := Histogram(col.Numbers(), bins)
		if len(bars) == 0 {
			return Chart{}, fmt.Errorf("%w: %q has no finite values", ErrNoChart, col.Name())
		}
		return Chart{
			Kind:   KindHistogram,
			Title:  "Distribution of " + col.Name(),
			Color:  HistogramColor,
			XLabel: col.Name(),
			YLabel: "count",
			Bars:   bars,
		}, nil
	case result.Categorical != nil:
		bars := make([]Bar, len(result.Categorical.Frequencies))
		for i, f := range result.Categorical.Frequencies {
			bars[i] = Bar{Label: f.Value, Value: float64(f.Count)}
		}
		return Chart{
			Kind:   KindBar,
			Title:  "Category Frequency for " + col.Name(),
			Color:  BarColor,
			XLabel: col.Name(),
			YLabel: "Count",
			Bars:   bars,
		}, nil
	default:
		return Chart{}, ErrNoChart
	}
}

// Histogram counts finite values into equal-width bins spanning [min, max].
// The last bin is closed so the maximum is counted.
func Histogram(values []float64, bins int) []Bar {
	if bins <= 0 {
		bins = DefaultBins
	}

	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil
	}
	sort.Float64s(finite)

	lo, hi := finite[0], finite[len(finite)-1]
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	dividers := make([]float64, bins+1)
	if math.IsInf(hi-lo, 0) {
		spanWide(dividers, lo, hi)
	} else {
		floats.Span(dividers, lo, hi)
	}
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	counts := stat.Histogram(nil, dividers, finite, nil)

	bars := make([]Bar, bins)
	for i := range bars {
		end := dividers[i+1]
		if i == bins-1 {
			end = hi
		}
		bars[i] = Bar{
			Label: formatEdge(dividers[i]) + "–" + formatEdge(end),
			Value: counts[i],
			Start: dividers[i],
			End:   end,
		}
	}
	return bars
}

// spanWide fills dst with evenly spaced values from lo to hi when hi-lo
// overflows float64. Each point is a weighted sum of two finite endpoints.
func spanWide(dst []float64, lo, hi float64) {
	n := float64(len(dst) - 1)
	for i := range dst {
		t := float64(i) / n
		dst[i] = lo*(1-t) + hi*t
	}
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// Total sums the plotted values
func (c Chart) Total() float64 {
	return floats.Sum(barValues(c.Bars))
}

func barValues(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Value
	}
	return out
}

package charts

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"csvexplorer/adapters/excel"
	"csvexplorer/domain/dataset"
	"csvexplorer/internal/profiling"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyzed(t *testing.T, csv, name string) (dataset.Column, profiling.Result) {
	t.Helper()
	table, err := excel.LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	col, err := table.Column(name)
	require.NoError(t, err)
	return col, profiling.Analyze(col)
}

func TestSelectNumericHistogram(t *testing.T) {
	col, result := analyzed(t, "a,b\n1,x\n2,x\n3,y\n", "a")

	c, err := Select(col, result, DefaultBins)
	require.NoError(t, err)
	assert.Equal(t, KindHistogram, c.Kind)
	assert.Equal(t, "Distribution of a", c.Title)
	assert.Equal(t, HistogramColor, c.Color)
	assert.Len(t, c.Bars, DefaultBins)
	assert.Equal(t, 3.0, c.Total())
	assert.Equal(t, 1.0, c.Bars[0].Value)
	assert.Equal(t, 1.0, c.Bars[DefaultBins-1].Value, "maximum lands in the last bin")
}

func TestSelectCategoricalBars(t *testing.T) {
	col, result := analyzed(t, "a,b\n1,x\n2,x\n3,y\n", "b")

	c, err := Select(col, result, DefaultBins)
	require.NoError(t, err)
	assert.Equal(t, KindBar, c.Kind)
	assert.Equal(t, "Category Frequency for b", c.Title)
	assert.Equal(t, BarColor, c.Color)
	assert.Equal(t, "b", c.XLabel)
	assert.Equal(t, "Count", c.YLabel)
	assert.Equal(t, []Bar{{Label: "x", Value: 2}, {Label: "y", Value: 1}}, c.Bars)
}

func TestSelectEmptyNumericColumn(t *testing.T) {
	col := dataset.NewColumn("e", dataset.KindNumeric, []dataset.Cell{dataset.NullCell("")})
	_, err := Select(col, profiling.Analyze(col), DefaultBins)
	assert.True(t, errors.Is(err, ErrNoChart))
}

func TestHistogramConstantValues(t *testing.T) {
	bars := Histogram([]float64{4, 4, 4}, 10)
	require.Len(t, bars, 10)

	total := 0.0
	for _, b := range bars {
		total += b.Value
		assert.LessOrEqual(t, b.Start, 4.0+0.5)
	}
	assert.Equal(t, 3.0, total)
}

func TestHistogramSkipsInfinities(t *testing.T) {
	col, result := analyzed(t, "v\ninf\n-inf\n", "v")
	require.NoError(t, result.Err)

	_, err := Select(col, result, DefaultBins)
	assert.True(t, errors.Is(err, ErrNoChart))

	assert.Nil(t, Histogram(nil, 5))
}

func TestHistogramCountsEveryValue(t *testing.T) {
	values := []float64{-3, 0.1, 0.2, 7, 7, 9.99, 10}
	bars := Histogram(values, 0)
	require.Len(t, bars, DefaultBins)

	total := 0.0
	for i, b := range bars {
		total += b.Value
		if i > 0 {
			assert.Equal(t, bars[i-1].End, b.Start)
		}
	}
	assert.Equal(t, float64(len(values)), total)
	assert.Equal(t, -3.0, bars[0].Start)
	assert.Equal(t, 10.0, bars[len(bars)-1].End)
}

func TestHistogramRangeWiderThanFloat64(t *testing.T) {
	bars := Histogram([]float64{-1e308, 0, 1e308}, 0)
	require.Len(t, bars, DefaultBins)

	total := 0.0
	for i, b := range bars {
		total += b.Value
		assert.False(t, math.IsNaN(b.Start) || math.IsInf(b.Start, 0), "bar %d start", i)
		if i > 0 {
			assert.Less(t, bars[i-1].Start, b.Start)
		}
	}
	assert.Equal(t, 3.0, total)
	assert.Equal(t, -1e308, bars[0].Start)
	assert.Equal(t, 1e308, bars[len(bars)-1].End)
	assert.Equal(t, 1.0, bars[0].Value)
	assert.Equal(t, 1.0, bars[len(bars)-1].Value)

	col, result := analyzed(t, "v\n-1e308\n1e308\n", "v")
	c, err := Select(col, result, DefaultBins)
	require.NoError(t, err)
	assert.Equal(t, 2.0, c.Total())

	var buf bytes.Buffer
	require.NoError(t, RenderSVG(c, &buf, 900, 420))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderSVG(t *testing.T) {
	for _, name := range []string{"a", "b"} {
		col, result := analyzed(t, "a,b\n1,x\n2,x\n3,y\n", name)
		c, err := Select(col, result, DefaultBins)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, RenderSVG(c, &buf, 900, 420))
		assert.Contains(t, buf.String(), "<svg")
		assert.Contains(t, buf.String(), c.Title)
	}
}

func TestRenderEmptyChart(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderSVG(Chart{}, &buf, 900, 420), ErrNoChart)
}

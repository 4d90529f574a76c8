package coercer

import (
	"math"
	"testing"

	"csvexplorer/domain/dataset"

	"github.com/stretchr/testify/assert"
)

func TestColumnKindInference(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		name     string
		values   []string
		expected dataset.Kind
	}{
		{"integers are numeric", []string{"1", "2", "3"}, dataset.KindNumeric},
		{"floats and exponents are numeric", []string{"1.5", "-2e3", "+0.25", ".5"}, dataset.KindNumeric},
		{"nulls are ignored", []string{"1", "", "NA", "3"}, dataset.KindNumeric},
		{"infinity is numeric", []string{"inf", "-inf", "2"}, dataset.KindNumeric},
		{"one text value makes it categorical", []string{"1", "2", "x"}, dataset.KindCategorical},
		{"text is categorical", []string{"North", "South"}, dataset.KindCategorical},
		{"booleans are categorical", []string{"true", "false"}, dataset.KindCategorical},
		{"thousands separators are text", []string{"1,000", "2,000"}, dataset.KindCategorical},
		{"hex literals are text", []string{"0x10", "0x20"}, dataset.KindCategorical},
		{"all null is categorical", []string{"", "NA", "null"}, dataset.KindCategorical},
		{"no rows is categorical", nil, dataset.KindCategorical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := c.AnalyzeTypeDistribution(tt.values)
			assert.Equal(t, tt.expected, analysis.RecommendedKind, "values: %v", tt.values)
		})
	}
}

func TestAnalyzeTypeDistributionCounts(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	analysis := c.AnalyzeTypeDistribution([]string{"1", "", "x", "2"})
	assert.Equal(t, 4, analysis.TotalCount)
	assert.Equal(t, 3, analysis.ValidCount)
	assert.Equal(t, 2, analysis.NumericCount)
	assert.InDelta(t, 2.0/3.0, analysis.NumericRatio, 1e-9)
}

func TestCoerceColumnKeepsRawText(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	col := c.CoerceColumn("a", []string{"01", " 2.50", "N/A"})
	assert.Equal(t, dataset.KindNumeric, col.Kind())
	assert.Equal(t, "01", col.Cell(0).Raw)
	assert.Equal(t, 1.0, col.Cell(0).Num)
	assert.Equal(t, 2.5, col.Cell(1).Num)
	assert.True(t, col.Cell(2).Null)
	assert.Equal(t, "N/A", col.Cell(2).Raw)
}

func TestCategoricalValuesAreNotNormalized(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	col := c.CoerceColumn("b", []string{"Apple", "apple", ""})
	assert.Equal(t, dataset.KindCategorical, col.Kind())
	assert.Equal(t, []string{"Apple", "apple"}, col.Values())
}

func TestParseNumber(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	f, ok := c.ParseNumber("1e400")
	assert.True(t, ok)
	assert.True(t, math.IsInf(f, 1))

	_, ok = c.ParseNumber("1_000")
	assert.False(t, ok)

	_, ok = c.ParseNumber("   ")
	assert.False(t, ok)
}

func TestInvalidThresholdFallsBackToStrict(t *testing.T) {
	c := NewTypeCoercer(CoercionConfig{NullTokens: DefaultNullTokens, NumericThreshold: 7})
	analysis := c.AnalyzeTypeDistribution([]string{"1", "x"})
	assert.Equal(t, dataset.KindCategorical, analysis.RecommendedKind)
}

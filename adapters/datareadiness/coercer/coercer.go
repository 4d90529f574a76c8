package coercer

import (
	"math"
	"strconv"
	"strings"

	"csvexplorer/domain/dataset"
)

// TypeCoercer decides, per raw text value, whether it is missing or numeric,
// and from that which Kind a whole column gets.
type TypeCoercer struct {
	config CoercionConfig
	nulls  map[string]struct{}
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	NullTokens       []string `json:"null_tokens"`       // exact strings read as missing
	NumericThreshold float64  `json:"numeric_threshold"` // share of non-null values that must parse as numbers
}

// DefaultNullTokens mirrors the missing-value markers pandas recognises by default
var DefaultNullTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// DefaultCoercionConfig returns the strict rule: a column is numeric only when
// every non-null value is a number.
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		NullTokens:       DefaultNullTokens,
		NumericThreshold: 1.0,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	nulls := make(map[string]struct{}, len(config.NullTokens))
	for _, tok := range config.NullTokens {
		nulls[tok] = struct{}{}
	}
	if config.NumericThreshold <= 0 || config.NumericThreshold > 1 {
		config.NumericThreshold = 1.0
	}
	return &TypeCoercer{config: config, nulls: nulls}
}

// IsNull reports whether raw is a missing-value marker
func (c *TypeCoercer) IsNull(raw string) bool {
	_, ok := c.nulls[raw]
	return ok
}

// ParseNumber parses integer and floating point text, including exponents and
// infinities. Thousands separators and hex literals are not numbers.
func (c *TypeCoercer) ParseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	unsigned := strings.TrimLeft(s, "+-")
	if len(unsigned) > 1 && unsigned[0] == '0' && (unsigned[1] == 'x' || unsigned[1] == 'X') {
		return 0, false
	}
	if strings.ContainsRune(s, '_') {
		return 0, false
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// out-of-range literals still are numbers
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return val, true
		}
		return 0, false
	}
	return val, true
}

// AnalyzeTypeDistribution counts how the non-null values of a column parse
func (c *TypeCoercer) AnalyzeTypeDistribution(values []string) TypeAnalysis {
	analysis := TypeAnalysis{TotalCount: len(values)}

	for _, raw := range values {
		if c.IsNull(raw) {
			continue
		}
		analysis.ValidCount++
		if f, ok := c.ParseNumber(raw); ok && !math.IsNaN(f) {
			analysis.NumericCount++
		}
	}

	if analysis.ValidCount > 0 {
		analysis.NumericRatio = float64(analysis.NumericCount) / float64(analysis.ValidCount)
	}
	analysis.RecommendedKind = c.determineRecommendedKind(analysis)

	return analysis
}

// CoerceColumn builds a typed column from raw text values. The kind is decided
// here once and carried by the column for every later step.
func (c *TypeCoercer) CoerceColumn(name string, values []string) dataset.Column {
	analysis := c.AnalyzeTypeDistribution(values)

	cells := make([]dataset.Cell, len(values))
	for i, raw := range values {
		cells[i] = c.CoerceValue(raw, analysis.RecommendedKind)
	}
	return dataset.NewColumn(name, analysis.RecommendedKind, cells)
}

// CoerceValue converts one raw value for a column of the given kind
func (c *TypeCoercer) CoerceValue(raw string, kind dataset.Kind) dataset.Cell {
	if c.IsNull(raw) {
		return dataset.NullCell(raw)
	}
	if kind.IsNumeric() {
		f, ok := c.ParseNumber(raw)
		if !ok || math.IsNaN(f) {
			return dataset.NullCell(raw)
		}
		return dataset.NumberCell(raw, f)
	}
	return dataset.TextCell(raw)
}

// determineRecommendedKind picks numeric only with numeric evidence
func (c *TypeCoercer) determineRecommendedKind(analysis TypeAnalysis) dataset.Kind {
	if analysis.ValidCount == 0 {
		return dataset.KindCategorical
	}
	if analysis.NumericRatio >= c.config.NumericThreshold {
		return dataset.KindNumeric
	}
	return dataset.KindCategorical
}

// TypeAnalysis contains the results of type distribution analysis
type TypeAnalysis struct {
	TotalCount      int          `json:"total_count"`
	ValidCount      int          `json:"valid_count"`
	NumericCount    int          `json:"numeric_count"`
	NumericRatio    float64      `json:"numeric_ratio"`
	RecommendedKind dataset.Kind `json:"recommended_kind"`
}

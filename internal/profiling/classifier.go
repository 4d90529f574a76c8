package profiling

import (
	"csvexplorer/domain/dataset"
)

// Classify returns the kind the loader tagged the column with. It never
// re-infers, so analysis always agrees with what the preview showed.
func Classify(col dataset.Column) dataset.Kind {
	if col.Kind().IsNumeric() {
		return dataset.KindNumeric
	}
	return dataset.KindCategorical
}

// Analyze routes a column to the numeric or categorical analyzer
func Analyze(col dataset.Column) Result {
	result := Result{Column: col.Name(), Kind: Classify(col)}

	switch result.Kind {
	case dataset.KindNumeric:
		summary, err := AnalyzeNumeric(col)
		if err != nil {
			result.Err = err
			return result
		}
		result.Numeric = &summary
	default:
		summary := AnalyzeCategorical(col)
		result.Categorical = &summary
	}
	return result
}

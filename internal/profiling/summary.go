package profiling

import (
	"csvexplorer/domain/dataset"

	"gonum.org/v1/gonum/stat"
)

// Describe computes one row of descriptive statistics per column, for every
// column of the table regardless of which one is selected.
func Describe(t *dataset.Table) []DescribeRow {
	columns := t.Columns()
	rows := make([]DescribeRow, len(columns))
	for i, col := range columns {
		rows[i] = describeColumn(col)
	}
	return rows
}

func describeColumn(col dataset.Column) DescribeRow {
	row := DescribeRow{
		Column: col.Name(),
		Kind:   Classify(col),
		Count:  col.NonNullCount(),
	}

	if row.Kind.IsNumeric() {
		describeNumeric(&row, col.Numbers())
	} else {
		describeCategorical(&row, AnalyzeCategorical(col))
	}
	return row
}

func describeNumeric(row *DescribeRow, data []float64) {
	if len(data) == 0 {
		return
	}
	sorted := sortedCopy(data)

	mean, err := columnMean(data)
	if err == nil {
		row.Mean = &mean
	}
	if len(data) > 1 {
		std := stat.StdDev(data, nil)
		row.Std = &std
	}
	row.Min = ptr(sorted[0])
	row.P25 = ptr(quantile(sorted, 0.25))
	row.P50 = ptr(quantile(sorted, 0.50))
	row.P75 = ptr(quantile(sorted, 0.75))
	row.Max = ptr(sorted[len(sorted)-1])
}

func describeCategorical(row *DescribeRow, summary CategoricalSummary) {
	row.Unique = ptr(summary.Unique)
	if len(summary.Frequencies) == 0 {
		return
	}
	top := summary.Frequencies[0]
	row.Top = ptr(top.Value)
	row.Freq = ptr(top.Count)
}

func ptr[T any](v T) *T {
	return &v
}

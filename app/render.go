package app

import (
	"errors"
	"strconv"

	"csvexplorer/domain/core"
	"csvexplorer/domain/dataset"
	"csvexplorer/internal/charts"
	"csvexplorer/internal/profiling"
)

var summaryHeaders = []string{"column", "count", "unique", "top", "freq", "mean", "std", "min", "25%", "50%", "75%", "max"}

// Render builds the view for one interaction from the table, the selected
// column and the display options. It holds no state: the same inputs always
// produce the same view. A nil table yields the empty state. An empty
// selection skips the detailed column section; an unknown column is an error.
func Render(t *dataset.Table, selection string, opts Options) (ViewModel, error) {
	vm := ViewModel{Options: opts, ColumnNames: []string{}}
	if t == nil {
		return vm, nil
	}

	vm.Loaded = true
	vm.Shape = t.Shape()
	vm.NumRows = t.NumRows()
	vm.NumColumns = t.NumColumns()
	vm.ColumnNames = t.ColumnNames()
	vm.Preview = buildPreview(t, opts.PreviewRows)

	if opts.ShowSummary {
		vm.Summary = buildSummary(profiling.Describe(t))
	}

	col, err := selectColumn(t, selection)
	switch {
	case errors.Is(err, core.ErrNoSelection):
		return vm, nil
	case err != nil:
		return vm, err
	}

	vm.Selected = col.Name()
	vm.Column = buildColumnView(col, opts)
	return vm, nil
}

func selectColumn(t *dataset.Table, selection string) (dataset.Column, error) {
	if selection == "" {
		return dataset.Column{}, core.ErrNoSelection
	}
	return t.Column(selection)
}

func buildColumnView(col dataset.Column, opts Options) *ColumnView {
	result := profiling.Analyze(col)
	view := &ColumnView{
		Name:   col.Name(),
		Kind:   result.Kind,
		Result: result,
	}

	switch {
	case core.IsEmptyColumnError(result.Err):
		view.Message = NoDataMessage
	case result.Err != nil:
		view.Message = result.Err.Error()
	case result.Numeric != nil:
		n := result.Numeric
		view.Stats = []Stat{
			{"Mean", profiling.FormatStat(n.Mean)},
			{"Median", profiling.FormatStat(n.Median)},
			{"Min", profiling.FormatStat(n.Min)},
			{"Max", profiling.FormatStat(n.Max)},
		}
	case result.Categorical != nil:
		view.Unique = &result.Categorical.Unique
		view.Frequencies = result.Categorical.Frequencies
	}

	if opts.ShowChart {
		chart, err := charts.Select(col, result, opts.HistogramBins)
		if err != nil {
			view.ChartMessage = NoDataMessage
		} else {
			view.Chart = &chart
		}
	}
	return view
}

func buildPreview(t *dataset.Table, n int) Preview {
	head := t.Head(n)
	rows := make([][]PreviewCell, len(head))
	for i, row := range head {
		cells := make([]PreviewCell, len(row))
		for j, cell := range row {
			if cell.Null {
				cells[j] = PreviewCell{Text: "None", Null: true}
			} else {
				cells[j] = PreviewCell{Text: cell.Raw}
			}
		}
		rows[i] = cells
	}
	return Preview{
		Columns:   t.ColumnNames(),
		Rows:      rows,
		Truncated: len(head) < t.NumRows(),
	}
}

func buildSummary(rows []profiling.DescribeRow) *SummaryTable {
	table := &SummaryTable{Headers: summaryHeaders, Rows: make([][]string, len(rows)), Raw: rows}
	for i, r := range rows {
		table.Rows[i] = []string{
			r.Column,
			strconv.Itoa(r.Count),
			optionalInt(r.Unique),
			optionalString(r.Top),
			optionalInt(r.Freq),
			profiling.FormatOptional(r.Mean),
			profiling.FormatOptional(r.Std),
			profiling.FormatOptional(r.Min),
			profiling.FormatOptional(r.P25),
			profiling.FormatOptional(r.P50),
			profiling.FormatOptional(r.P75),
			profiling.FormatOptional(r.Max),
		}
	}
	return table
}

func optionalInt(v *int) string {
	if v == nil {
		return "NaN"
	}
	return strconv.Itoa(*v)
}

func optionalString(v *string) string {
	if v == nil {
		return "NaN"
	}
	return *v
}

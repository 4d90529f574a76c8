package app

import (
	"csvexplorer/domain/dataset"
	"csvexplorer/internal/charts"
	"csvexplorer/internal/profiling"
)

// NoDataMessage is shown in place of numeric statistics for an all-null column
const NoDataMessage = "no data"

// Options are the display toggles plus the rendering limits
type Options struct {
	ShowSummary   bool `json:"show_summary"`
	ShowChart     bool `json:"show_chart"`
	PreviewRows   int  `json:"-"`
	HistogramBins int  `json:"-"`
}

// DefaultOptions turns both sections on
func DefaultOptions() Options {
	return Options{
		ShowSummary:   true,
		ShowChart:     true,
		PreviewRows:   20,
		HistogramBins: charts.DefaultBins,
	}
}

// PreviewCell is one displayed cell of the preview grid
type PreviewCell struct {
	Text string `json:"text"`
	Null bool   `json:"null"`
}

// Preview is the head of the table
type Preview struct {
	Columns   []string        `json:"columns"`
	Rows      [][]PreviewCell `json:"rows"`
	Truncated bool            `json:"truncated"`
}

// Stat is a labelled, formatted statistic
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ColumnView is the detailed section for the selected column
type ColumnView struct {
	Name   string           `json:"name"`
	Kind   dataset.Kind     `json:"kind"`
	Result profiling.Result `json:"-"`

	// Stats holds mean, median, min and max formatted to three decimals
	Stats       []Stat                `json:"stats,omitempty"`
	Unique      *int                  `json:"unique,omitempty"`
	Frequencies []profiling.Frequency `json:"frequencies,omitempty"`
	Message     string                `json:"message,omitempty"`

	Chart        *charts.Chart `json:"chart,omitempty"`
	ChartMessage string        `json:"chart_message,omitempty"`
}

// SummaryTable is the describe output laid out for display
type SummaryTable struct {
	Headers []string                `json:"headers"`
	Rows    [][]string              `json:"rows"`
	Raw     []profiling.DescribeRow `json:"-"`
}

// ViewModel is everything the presentation layer shows for one rerun
type ViewModel struct {
	Loaded      bool          `json:"loaded"`
	Shape       string        `json:"shape,omitempty"`
	NumRows     int           `json:"rows"`
	NumColumns  int           `json:"columns"`
	ColumnNames []string      `json:"column_names"`
	Selected    string        `json:"selected,omitempty"`
	Options     Options       `json:"options"`
	Preview     Preview       `json:"preview"`
	Summary     *SummaryTable `json:"summary,omitempty"`
	Column      *ColumnView   `json:"column,omitempty"`
}

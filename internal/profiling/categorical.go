package profiling

import (
	"sort"

	"csvexplorer/domain/dataset"
)

// AnalyzeCategorical counts distinct non-null values. The frequency table is
// sorted by descending count with ties kept in first-seen order.
func AnalyzeCategorical(col dataset.Column) CategoricalSummary {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, v := range col.Values() {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	freqs := make([]Frequency, len(order))
	for i, v := range order {
		freqs[i] = Frequency{Value: v, Count: counts[v]}
	}
	sort.SliceStable(freqs, func(i, j int) bool {
		return freqs[i].Count > freqs[j].Count
	})

	return CategoricalSummary{Unique: len(order), Frequencies: freqs}
}

// Package profile computes per-column descriptive statistics and the
// categorical filter options consumed by the dashboard UI.
package profile

import (
	"sort"

	"github.com/tsakane28/notebook/pkg/dataset"
	"github.com/tsakane28/notebook/pkg/stats"
)

// NumericStats summarizes a numeric column.
type NumericStats struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	Median       float64 `json:"median"`
	Std          float64 `json:"std"`
	UniqueValues int     `json:"unique_values"`
}

// CategoricalStats summarizes a categorical column. Value counts are
// keyed by the stringified value for serialization stability.
type CategoricalStats struct {
	UniqueValues int            `json:"unique_values"`
	ValueCounts  map[string]int `json:"value_counts"`
}

// ColumnProfile is one of two variants, discriminated by Type:
// exactly one of Numeric and Categorical is set.
type ColumnProfile struct {
	Type        string            `json:"type"`
	Numeric     *NumericStats     `json:"numeric,omitempty"`
	Categorical *CategoricalStats `json:"categorical,omitempty"`
}

// Report is the profiler output. Filter options map categorical
// column names to their sorted distinct values, included only below
// the cardinality cap shared with the transformer.
type Report struct {
	Stats         map[string]ColumnProfile `json:"stats"`
	FilterOptions map[string][]string      `json:"filter_options"`
}

// Analyze profiles every column of the frame. The variant is chosen
// by the column's type tag; an empty frame yields empty maps. Analyze
// has no hidden state, so repeated calls on the same frame yield
// identical reports.
func Analyze(f *dataset.Frame) Report {
	report := Report{
		Stats:         make(map[string]ColumnProfile),
		FilterOptions: make(map[string][]string),
	}
	if f == nil || f.Len() == 0 {
		return report
	}

	for _, c := range f.Cols() {
		if c.Type == dataset.Numeric {
			values := c.ValidFloats()
			min, max := stats.MinMax(values)
			report.Stats[c.Name] = ColumnProfile{
				Type: dataset.Numeric.String(),
				Numeric: &NumericStats{
					Min:          min,
					Max:          max,
					Mean:         stats.Mean(values),
					Median:       stats.Median(values),
					Std:          stats.Std(values),
					UniqueValues: c.UniqueCount(),
				},
			}
			continue
		}

		unique := c.UniqueCount()
		report.Stats[c.Name] = ColumnProfile{
			Type: dataset.Categorical.String(),
			Categorical: &CategoricalStats{
				UniqueValues: unique,
				ValueCounts:  c.ValueCounts(),
			},
		}
		if unique < dataset.MaxFilterCardinality {
			values := c.DistinctStrings()
			sort.Strings(values)
			report.FilterOptions[c.Name] = values
		}
	}
	return report
}

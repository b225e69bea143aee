package dataprep

import (
	"github.com/tsakane28/notebook/pkg/dataset"
	"github.com/tsakane28/notebook/pkg/stats"
)

// Placeholder fills missing cells in categorical columns.
const Placeholder = "Unknown"

// Impute fills every missing cell in the frame in place: numeric
// columns with their median (computed over the present values),
// categorical columns with the placeholder. Afterwards no column has
// missing cells.
func Impute(f *dataset.Frame) {
	for _, c := range f.Cols() {
		ImputeColumn(c)
	}
}

// ImputeColumn fills one column's missing cells in place.
func ImputeColumn(c *dataset.Column) {
	if c.Missing == nil {
		return
	}
	switch c.Type {
	case dataset.Numeric:
		median := stats.Median(c.ValidFloats())
		for i, miss := range c.Missing {
			if miss {
				c.Floats[i] = median
			}
		}
	default:
		for i, miss := range c.Missing {
			if miss {
				c.Strings[i] = Placeholder
			}
		}
	}
	c.Missing = nil
}
